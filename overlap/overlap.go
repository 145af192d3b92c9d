// Package overlap finds read-through adapter in read one of a SPRITE pair.
//
// When the DNA fragment is shorter than read one, the sequencer reads past
// the insert into the reverse complement of read two's barcode region. That
// region is known once read two has been parsed, so it can be rebuilt and
// located in read one by ungapped overlap alignment.
package overlap

import (
	"github.com/grailbio/sprite/dna"
	"github.com/grailbio/sprite/util"
)

// AdapterSuffix is the constant tail of the reconstructed adapter, the
// reverse complement of the TT-LINKER4-CT stretch of read two.
const AdapterSuffix = "AGATCGGAAGACATGACAAGTCAA"

// Adapter returns the sequence read one runs into after its insert, given the
// SEQ and DPM captures of read two: rc(seq) + "AN" + rc(dpm) + AdapterSuffix.
func Adapter(seq, dpm string) string {
	return dna.ReverseComplement(dpm+"NT"+seq) + AdapterSuffix
}

// Opts controls Cut.
type Opts struct {
	// MinOverlap is the shortest overlap between read and adapter that is
	// considered.
	MinOverlap int
	// MaxErrorRate is the fraction of mismatches allowed in an overlap,
	// rounded down.
	MaxErrorRate float64
}

// DefaultOpts is the default alignment policy.
var DefaultOpts = Opts{
	MinOverlap:   3,
	MaxErrorRate: 0.1,
}

// Cut returns the index in read where the adapter starts. The first leftShift
// bases of read are skipped, and the last rightShift bases of adapter are
// ignored. The adapter is slid along read[leftShift:]; at each offset the
// overlap is the shorter of the read suffix and the adapter. An offset
// qualifies if its overlap is at least opts.MinOverlap long and has at most
// floor(overlap*opts.MaxErrorRate) mismatches, N matching any base. Among
// qualifying offsets the one with the highest matches-minus-mismatches score
// wins, ties going to the leftmost.
//
// If nothing qualifies, or the inputs are too short to align, Cut returns
// len(read). The result is always in [min(leftShift, len(read)), len(read)].
func Cut(read, adapter string, leftShift, rightShift int, opts Opts) int {
	if leftShift < 0 {
		leftShift = 0
	}
	if len(read) <= leftShift {
		return len(read)
	}
	if rightShift > 0 {
		if rightShift >= len(adapter) {
			return len(read)
		}
		adapter = adapter[:len(adapter)-rightShift]
	}
	minOverlap := opts.MinOverlap
	if minOverlap < 1 {
		minOverlap = 1
	}
	if len(adapter) < minOverlap {
		return len(read)
	}
	insert := read[leftShift:]
	best, bestScore := -1, 0
	for off := 0; off+minOverlap <= len(insert); off++ {
		n := len(insert) - off
		if n > len(adapter) {
			n = len(adapter)
		}
		maxErrors := int(float64(n) * opts.MaxErrorRate)
		mismatches := util.BoundedHamming(insert[off:off+n], adapter[:n], maxErrors)
		if mismatches > maxErrors {
			continue
		}
		if score := n - 2*mismatches; best < 0 || score > bestScore {
			best, bestScore = off, score
		}
	}
	if best < 0 {
		return len(read)
	}
	return leftShift + best
}
