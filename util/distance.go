package util

import (
	"fmt"
)

// matrix represents a 2 dimensional matrix.
type matrix struct {
	nRow, nCol int
	data       []int // row-major nRow*nCol array.
}

// matrix returns an n x m matrix.
func newMatrix(n, m int) (x matrix) {
	return matrix{
		nRow: n,
		nCol: m,
		data: make([]int, n*m),
	}
}

func (m matrix) at(i, j int) int { return m.data[i*m.nCol+j] }

func (m matrix) set(i, j, v int) { m.data[i*m.nCol+j] = v }

// computeCell computes the cell (i, j) in a Levenshtein matrix. Row 0 and
// column 0 must already be filled in.
func (m matrix) computeCell(i, j int, r1, r2 string) int {
	if r1[i-1] == r2[j-1] {
		v := m.at(i-1, j-1)
		m.set(i, j, v)
		return v
	}
	v := m.at(i-1, j) + 1 // down
	if d := m.at(i-1, j-1) + 1; d < v {
		v = d // diagonal
	}
	if r := m.at(i, j-1) + 1; r < v {
		v = r // right
	}
	m.set(i, j, v)
	return v
}

// Levenshtein computes the Levenshtein distance between s1 and s2: the number
// of single-base insertions, deletions, and substitutions it takes to
// transform one into the other. The two strings may differ in length.
func Levenshtein(s1, s2 string) (distance int) {
	rows, cols := len(s1), len(s2)
	m := newMatrix(rows+1, cols+1)
	for i := 0; i <= rows; i++ {
		m.set(i, 0, i)
	}
	for j := 0; j <= cols; j++ {
		m.set(0, j, j)
	}
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			m.computeCell(i, j, s1, s2)
		}
	}
	return m.at(rows, cols)
}

// BoundedLevenshtein returns Levenshtein(s1, s2) if it is at most max, and
// max+1 otherwise. Only the diagonal band of width max is computed, and the
// computation stops as soon as an entire row exceeds max. A negative max
// means no bound.
func BoundedLevenshtein(s1, s2 string, max int) int {
	if max < 0 {
		return Levenshtein(s1, s2)
	}
	rows, cols := len(s1), len(s2)
	if d := rows - cols; d > max || -d > max {
		return max + 1
	}
	over := max + 1
	// Two rolling rows. Cells outside the band hold "over", which is never
	// less than any in-band value that matters.
	prev := make([]int, cols+1)
	cur := make([]int, cols+1)
	for j := 0; j <= cols; j++ {
		if j <= max {
			prev[j] = j
		} else {
			prev[j] = over
		}
	}
	for i := 1; i <= rows; i++ {
		lo, hi := i-max, i+max
		if lo < 1 {
			lo = 1
		}
		if hi > cols {
			hi = cols
		}
		for j := range cur {
			cur[j] = over
		}
		if i <= max {
			cur[0] = i
		}
		rowMin := cur[0]
		for j := lo; j <= hi; j++ {
			v := prev[j-1]
			if s1[i-1] != s2[j-1] {
				v++
				if d := prev[j] + 1; d < v {
					v = d
				}
				if r := cur[j-1] + 1; r < v {
					v = r
				}
			}
			if v > over {
				v = over
			}
			cur[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		if rowMin > max {
			return over
		}
		prev, cur = cur, prev
	}
	if prev[cols] > max {
		return over
	}
	return prev[cols]
}

// Hamming returns the number of positions at which s1 and s2 differ. 'N' in
// either string matches any base. s1 and s2 must have the same length.
func Hamming(s1, s2 string) (mismatches int) {
	return BoundedHamming(s1, s2, -1)
}

// BoundedHamming returns Hamming(s1, s2) if it is at most max, and max+1
// otherwise, stopping at the first mismatch past max. A negative max means no
// bound.
func BoundedHamming(s1, s2 string, max int) (mismatches int) {
	if len(s1) != len(s2) {
		panic(fmt.Sprintf("s1 and s2 must have equal length: '%s', '%s'", s1, s2))
	}
	for i := 0; i < len(s1); i++ {
		if c1, c2 := s1[i], s2[i]; c1 != c2 && c1 != 'N' && c2 != 'N' {
			if mismatches++; max >= 0 && mismatches > max {
				return mismatches
			}
		}
	}
	return mismatches
}
