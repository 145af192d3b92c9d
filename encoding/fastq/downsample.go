package fastq

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Downsample copies read pairs from in to out, keeping each pair with
// probability rate. The selection depends only on seed and the order of the
// input, so a run can be repeated exactly. It returns the number of pairs
// kept and read.
func Downsample(rate float64, seed int64, in *PairScanner, out *PairWriter) (kept, total int, err error) {
	if rate < 0.0 || rate > 1.0 {
		return 0, 0, errors.Errorf("rate must be between 0 and 1 (inclusive), got %v", rate)
	}
	random := rand.New(rand.NewSource(seed))
	var r1, r2 Read
	for in.Scan(&r1, &r2) {
		total++
		if random.Float64() >= rate {
			continue
		}
		if err := out.Write(&r1, &r2); err != nil {
			return kept, total, errors.Wrap(err, "error writing downsampled pairs")
		}
		kept++
	}
	if err := in.Err(); err != nil {
		return kept, total, errors.Wrapf(err, "error reading pair %d", total+1)
	}
	return kept, total, nil
}
