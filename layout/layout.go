// Package layout matches a read against a fixed, ordered layout of
// variable-length capture fields separated by linker motifs that tolerate a
// bounded number of sequencing errors.
//
// A layout is not a regular expression. It is a list of typed elements that
// must consume the whole read, left to right. Matching is a depth-first
// search over field lengths and linker spans; the first complete
// decomposition found is returned, so the result for a given read is always
// the same.
package layout

import (
	"fmt"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/sprite/util"
)

// Kind distinguishes capture fields from linkers.
type Kind uint8

const (
	// FieldKind is a variable-length run of bases.
	FieldKind Kind = iota
	// LinkerKind is a literal motif matched with an error budget.
	LinkerKind
)

// ErrorKind is the kind of errors a linker tolerates.
type ErrorKind uint8

const (
	// Substitutions allows mismatches only. The linker always consumes
	// exactly len(Literal) bases.
	Substitutions ErrorKind = iota
	// Edits allows insertions, deletions, and substitutions. The linker
	// consumes between len(Literal)-MaxErrors and len(Literal)+MaxErrors
	// bases.
	Edits
)

// Element is one slot of a layout.
type Element struct {
	Kind Kind
	// Name of a field. Fields with an empty name are matched but not
	// reported as captures.
	Name string
	// Min and Max bound the length of a field, inclusive.
	Min, Max int
	// Literal is the expected sequence of a linker.
	Literal string
	// MaxErrors is the error budget of a linker.
	MaxErrors int
	// Errors is the kind of errors counted against MaxErrors.
	Errors ErrorKind
}

// Field returns a named capture field of length [min, max] over ACGTN.
func Field(name string, min, max int) Element {
	return Element{Kind: FieldKind, Name: name, Min: min, Max: max}
}

// Any returns an anonymous field of exactly n bases.
func Any(n int) Element {
	return Element{Kind: FieldKind, Min: n, Max: n}
}

// Linker returns a linker that matches literal with at most maxErrors errors
// of the given kind.
func Linker(literal string, maxErrors int, kind ErrorKind) Element {
	return Element{Kind: LinkerKind, Literal: literal, MaxErrors: maxErrors, Errors: kind}
}

// Exact returns a linker that must match literal exactly.
func Exact(literal string) Element {
	return Linker(literal, 0, Substitutions)
}

// minLen and maxLen bound the number of bases the element can consume.
func (e Element) minLen() int {
	if e.Kind == FieldKind {
		return e.Min
	}
	if e.Errors == Edits {
		if n := len(e.Literal) - e.MaxErrors; n > 0 {
			return n
		}
		return 0
	}
	return len(e.Literal)
}

func (e Element) maxLen() int {
	if e.Kind == FieldKind {
		return e.Max
	}
	if e.Errors == Edits {
		return len(e.Literal) + e.MaxErrors
	}
	return len(e.Literal)
}

func (e Element) String() string {
	if e.Kind == FieldKind {
		name := e.Name
		if name == "" {
			name = "."
		}
		return fmt.Sprintf("%s[%d-%d]", name, e.Min, e.Max)
	}
	if e.MaxErrors == 0 {
		return e.Literal
	}
	kind := "s"
	if e.Errors == Edits {
		kind = "e"
	}
	return fmt.Sprintf("%s{%s<=%d}", e.Literal, kind, e.MaxErrors)
}

// Preference selects which field lengths are tried first.
type Preference uint8

const (
	// ShortestFirst tries the minimum length of each field first and
	// extends it only when the rest of the layout cannot be matched.
	ShortestFirst Preference = iota
	// LongestFirst tries the maximum length of each field first, like a
	// greedy regular expression quantifier.
	LongestFirst
)

// Option configures a Layout.
type Option func(*Layout)

// WithPreference sets the field length preference. The default is
// ShortestFirst.
func WithPreference(p Preference) Option {
	return func(l *Layout) { l.pref = p }
}

// Layout is an immutable, validated list of elements. It is safe for
// concurrent use.
type Layout struct {
	elems []Element
	pref  Preference
	// minRest[i] and maxRest[i] bound the number of bases consumed by
	// elems[i:].
	minRest, maxRest []int
}

// New validates elems and builds a Layout.
func New(elems []Element, opts ...Option) (*Layout, error) {
	if len(elems) == 0 {
		return nil, errors.E(errors.Invalid, "layout: no elements")
	}
	for i, e := range elems {
		switch e.Kind {
		case FieldKind:
			if e.Min < 0 || e.Max < e.Min {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("layout: element %d (%v): bad length range", i, e))
			}
		case LinkerKind:
			if e.Literal == "" {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("layout: element %d: empty linker", i))
			}
			if e.MaxErrors < 0 || e.MaxErrors >= len(e.Literal) {
				return nil, errors.E(errors.Invalid, fmt.Sprintf("layout: element %d (%v): bad error budget", i, e))
			}
		default:
			return nil, errors.E(errors.Invalid, fmt.Sprintf("layout: element %d: unknown kind %d", i, e.Kind))
		}
	}
	l := &Layout{
		elems:   append([]Element(nil), elems...),
		minRest: make([]int, len(elems)+1),
		maxRest: make([]int, len(elems)+1),
	}
	for _, opt := range opts {
		opt(l)
	}
	for i := len(elems) - 1; i >= 0; i-- {
		l.minRest[i] = l.minRest[i+1] + elems[i].minLen()
		l.maxRest[i] = l.maxRest[i+1] + elems[i].maxLen()
	}
	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(elems []Element, opts ...Option) *Layout {
	l, err := New(elems, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Elements returns a copy of the layout's elements.
func (l *Layout) Elements() []Element {
	return append([]Element(nil), l.elems...)
}

// Names returns the distinct capture names in the order they first appear.
func (l *Layout) Names() []string {
	var names []string
	seen := map[string]bool{}
	for _, e := range l.elems {
		if e.Kind == FieldKind && e.Name != "" && !seen[e.Name] {
			seen[e.Name] = true
			names = append(names, e.Name)
		}
	}
	return names
}

// MinLen returns the length of the shortest read that can match the layout.
func (l *Layout) MinLen() int { return l.minRest[0] }

// MaxLen returns the length of the longest read that can match the layout.
func (l *Layout) MaxLen() int { return l.maxRest[0] }

func (l *Layout) String() string {
	s := ""
	for i, e := range l.elems {
		if i > 0 {
			s += " "
		}
		s += e.String()
	}
	return s
}

// Segment is the span of the read consumed by one element.
type Segment struct {
	// Elem is the index of the element in the layout.
	Elem int
	// Name is the field name, empty for linkers and anonymous fields.
	Name string
	// Start and End delimit the half-open span [Start, End).
	Start, End int
	// Errors is the number of errors spent by a linker.
	Errors int
}

// Capture is the value of one occurrence of a named field.
type Capture struct {
	Name       string
	Start, End int
	Value      string
}

// Match is a successful decomposition of a read.
type Match struct {
	// Segments lists every element's span in layout order. Consecutive
	// segments are adjacent and together cover the whole read.
	Segments []Segment
	// Captures lists the named fields in layout order. A name that appears
	// twice in the layout appears twice here.
	Captures []Capture
}

// Capture returns the n'th (0-based) occurrence of the named field.
func (m Match) Capture(name string, n int) (Capture, bool) {
	for _, c := range m.Captures {
		if c.Name != name {
			continue
		}
		if n == 0 {
			return c, true
		}
		n--
	}
	return Capture{}, false
}

// Values returns the values of every occurrence of the named field.
func (m Match) Values(name string) []string {
	var vals []string
	for _, c := range m.Captures {
		if c.Name == name {
			vals = append(vals, c.Value)
		}
	}
	return vals
}

// Match decomposes seq according to the layout. It returns false if no
// decomposition consumes all of seq within every length range and error
// budget.
func (l *Layout) Match(seq string) (Match, bool) {
	if len(seq) < l.minRest[0] || len(seq) > l.maxRest[0] {
		return Match{}, false
	}
	s := searcher{l: l, seq: seq, segs: make([]Segment, len(l.elems))}
	if !s.search(0, 0) {
		return Match{}, false
	}
	m := Match{Segments: s.segs}
	for _, seg := range s.segs {
		if seg.Name != "" {
			m.Captures = append(m.Captures, Capture{
				Name:  seg.Name,
				Start: seg.Start,
				End:   seg.End,
				Value: seq[seg.Start:seg.End],
			})
		}
	}
	return m, true
}

type searcher struct {
	l    *Layout
	seq  string
	segs []Segment
}

func isBase(c byte) bool {
	switch c {
	case 'A', 'C', 'G', 'T', 'N':
		return true
	}
	return false
}

// search tries to match elems[ei:] against seq[pos:].
func (s *searcher) search(ei, pos int) bool {
	l := s.l
	if ei == len(l.elems) {
		return pos == len(s.seq)
	}
	rest := len(s.seq) - pos
	if rest < l.minRest[ei] || rest > l.maxRest[ei] {
		return false
	}
	e := &l.elems[ei]
	if e.Kind == FieldKind {
		lo, hi := e.Min, e.Max
		// Leave room for the remaining elements.
		if n := rest - l.maxRest[ei+1]; n > lo {
			lo = n
		}
		if n := rest - l.minRest[ei+1]; n < hi {
			hi = n
		}
		// A field cannot extend past a non-base character.
		valid := 0
		for valid < hi && isBase(s.seq[pos+valid]) {
			valid++
		}
		if valid < hi {
			hi = valid
		}
		for k := 0; k <= hi-lo; k++ {
			n := lo + k
			if l.pref == LongestFirst {
				n = hi - k
			}
			s.segs[ei] = Segment{Elem: ei, Name: e.Name, Start: pos, End: pos + n}
			if s.search(ei+1, pos+n) {
				return true
			}
		}
		return false
	}
	for _, c := range s.linkerSpans(e, pos) {
		s.segs[ei] = Segment{Elem: ei, Start: pos, End: pos + c.n, Errors: c.errs}
		if s.search(ei+1, pos+c.n) {
			return true
		}
	}
	return false
}

type span struct{ n, errs int }

// linkerSpans lists the spans starting at pos that match linker e within its
// error budget, in the order they should be tried: fewest errors first, then
// closest to the literal length, then shortest.
func (s *searcher) linkerSpans(e *Element, pos int) []span {
	lit := e.Literal
	if e.Errors == Substitutions || e.MaxErrors == 0 {
		if pos+len(lit) > len(s.seq) {
			return nil
		}
		errs := 0
		for i := 0; i < len(lit); i++ {
			if s.seq[pos+i] != lit[i] {
				if errs++; errs > e.MaxErrors {
					return nil
				}
			}
		}
		return []span{{len(lit), errs}}
	}
	var spans []span
	for n := e.minLen(); n <= e.maxLen() && pos+n <= len(s.seq); n++ {
		if d := util.BoundedLevenshtein(lit, s.seq[pos:pos+n], e.MaxErrors); d <= e.MaxErrors {
			spans = append(spans, span{n, d})
		}
	}
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].errs != spans[j].errs {
			return spans[i].errs < spans[j].errs
		}
		di, dj := abs(spans[i].n-len(lit)), abs(spans[j].n-len(lit))
		if di != dj {
			return di < dj
		}
		return spans[i].n < spans[j].n
	})
	return spans
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
