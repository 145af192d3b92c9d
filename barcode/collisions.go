package barcode

import (
	"github.com/grailbio/sprite/util"
)

// Collision is a pair of barcodes in the same category that are within a
// given edit distance of each other. A read whose field falls between them
// may be snapped to either.
type Collision struct {
	Category string
	A, B     string
	Distance int
}

// Collisions lists the same-category barcode pairs at distance maxDistance or
// less, by category in dictionary order, then by entry order.
func Collisions(d *Dictionary, maxDistance int) []Collision {
	var c []Collision
	for _, cat := range d.Categories() {
		entries := d.Category(cat)
		for i := range entries {
			for j := i + 1; j < len(entries); j++ {
				if dist := util.BoundedLevenshtein(entries[i].Seq, entries[j].Seq, maxDistance); dist <= maxDistance {
					c = append(c, Collision{cat, entries[i].Name, entries[j].Name, dist})
				}
			}
		}
	}
	return c
}

// MinDistance returns the smallest edit distance between two entries, or -1
// if there are fewer than two entries.
func MinDistance(entries []Entry) int {
	min := -1
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if d := util.BoundedLevenshtein(entries[i].Seq, entries[j].Seq, min); min < 0 || d < min {
				min = d
			}
		}
	}
	return min
}
