package barcode

import (
	"github.com/grailbio/sprite/util"
)

// Unbounded disables the distance threshold of a Matcher.
const Unbounded = -1

// Matcher finds the reference barcode closest to an observed sequence in
// terms of Levenshtein edit distance.
//
// With RejectTies set, a query is "snappable" only if exactly one entry is
// closer to it than all the others. Without it, ties go to the entry that
// comes first in dictionary order.
type Matcher struct {
	// MaxDistance is the largest accepted distance. Unbounded (or any
	// negative value) accepts the nearest entry however far it is.
	MaxDistance int
	// RejectTies rejects queries whose minimum distance is reached by more
	// than one entry.
	RejectTies bool
}

// DefaultMatcher always accepts the nearest entry and breaks ties by
// dictionary order.
var DefaultMatcher = Matcher{MaxDistance: Unbounded}

// Nearest returns the name of the entry closest to query and its distance.
// It returns ok=false if entries is empty, if the closest entry is farther
// than MaxDistance, or, with RejectTies, if the closest distance is shared.
func (m Matcher) Nearest(query string, entries []Entry) (name string, dist int, ok bool) {
	best, ties := -1, 0
	// bound is the largest distance worth computing exactly. Anything
	// farther than the current best cannot change the answer, except that
	// RejectTies needs to see entries at the same distance.
	bound := m.MaxDistance
	for i, e := range entries {
		d := util.BoundedLevenshtein(query, e.Seq, bound)
		if bound >= 0 && d > bound {
			continue
		}
		switch {
		case best < 0 || d < dist:
			best, dist, ties = i, d, 1
		case d == dist:
			ties++
		}
		if d == 0 && !m.RejectTies {
			break
		}
		bound = dist
	}
	if best < 0 || (m.RejectTies && ties > 1) {
		return "", -1, false
	}
	return entries[best].Name, dist, true
}
