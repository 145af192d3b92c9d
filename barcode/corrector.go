package barcode

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/sprite/layout"
)

// Corrector snaps every barcode captured from a read to its reference name.
// Each capture is corrected against the dictionary category with the same
// name as the field, so both EVEN captures are looked up in category "EVEN".
type Corrector struct {
	dict    *Dictionary
	matcher Matcher
	// categories lists the capture names to correct, without repeats, in
	// the order their names are emitted.
	categories []string
}

// NewCorrector creates a Corrector that corrects every capture of categories,
// and leaves captures of any other name alone. Every listed category must
// exist in dict and be non-empty. The order of categories is the order of
// the names returned by Correct.
func NewCorrector(dict *Dictionary, matcher Matcher, categories ...string) (*Corrector, error) {
	if len(categories) == 0 {
		return nil, errors.E(errors.Invalid, "barcode: no categories to correct")
	}
	c := &Corrector{dict: dict, matcher: matcher}
	seen := map[string]bool{}
	for _, cat := range categories {
		if len(dict.Category(cat)) == 0 {
			return nil, errors.E(errors.Invalid,
				fmt.Sprintf("barcode: category %s missing from dictionary (have %v)", cat, dict.Categories()))
		}
		if !seen[cat] {
			seen[cat] = true
			c.categories = append(c.categories, cat)
		}
	}
	return c, nil
}

// Correct returns the corrected names of the captures in m. Names are
// grouped by category, in the order given to NewCorrector, and a category
// captured more than once lists its occurrences in read order. For the
// SPRITE layout that gives TERM, EVEN, EVEN, ODD, ODD, DPM.
// It returns false if any capture has no acceptable match.
func (c *Corrector) Correct(m layout.Match) ([]string, bool) {
	names := make([]string, 0, len(m.Captures))
	for _, cat := range c.categories {
		entries := c.dict.Category(cat)
		for _, v := range m.Values(cat) {
			name, _, ok := c.matcher.Nearest(v, entries)
			if !ok {
				return nil, false
			}
			names = append(names, name)
		}
	}
	return names, true
}

// Tag joins corrected names into the form used in read names.
func Tag(names []string) string {
	return strings.Join(names, ",")
}
