package fastq_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/grailbio/sprite/encoding/fastq"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
)

func fastqText(prefix string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "@%s%d\nACGT\n+\nEEEE\n", prefix, i)
	}
	return b.String()
}

func downsample(rate float64, seed int64, r1, r2 string) (string, string, int, int, error) {
	var r1Out, r2Out bytes.Buffer
	in := fastq.NewPairScanner(strings.NewReader(r1), strings.NewReader(r2), fastq.All)
	out := fastq.NewPairWriter(&r1Out, &r2Out)
	kept, total, err := fastq.Downsample(rate, seed, in, out)
	return r1Out.String(), r2Out.String(), kept, total, err
}

func TestDownsample(t *testing.T) {
	r1, r2 := fastqText("a", 100), fastqText("b", 100)

	out1, out2, kept, total, err := downsample(1.0, 0, r1, r2)
	assert.NoError(t, err)
	expect.EQ(t, out1, r1)
	expect.EQ(t, out2, r2)
	expect.EQ(t, kept, 100)
	expect.EQ(t, total, 100)

	out1, out2, kept, total, err = downsample(0.0, 0, r1, r2)
	assert.NoError(t, err)
	expect.EQ(t, out1, "")
	expect.EQ(t, out2, "")
	expect.EQ(t, kept, 0)
	expect.EQ(t, total, 100)

	out1, out2, kept, total, err = downsample(0.5, 1, r1, r2)
	assert.NoError(t, err)
	expect.EQ(t, total, 100)
	expect.GE(t, kept, 20)
	expect.LE(t, kept, 80)
	expect.EQ(t, strings.Count(out1, "\n"), 4*kept)
	// The two outputs keep the same pairs.
	expect.EQ(t, strings.Replace(out2, "@b", "@a", -1), out1)

	again1, _, againKept, _, err := downsample(0.5, 1, r1, r2)
	assert.NoError(t, err)
	expect.EQ(t, againKept, kept)
	expect.EQ(t, again1, out1)
}

func TestDownsampleErrors(t *testing.T) {
	r1, r2 := fastqText("a", 2), fastqText("b", 1)
	_, _, _, _, err := downsample(1.0, 0, r1, r2)
	expect.EQ(t, errors.Cause(err), fastq.ErrDiscordant)

	_, _, _, _, err = downsample(1.0, 0, r1+"@x\nAC", r1+r1)
	expect.EQ(t, errors.Cause(err), fastq.ErrShort)

	for _, rate := range []float64{-0.1, 1.2} {
		_, _, _, _, err = downsample(rate, 0, r1, r1)
		expect.True(t, err != nil, "rate %v", rate)
	}
}
