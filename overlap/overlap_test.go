package overlap

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

const (
	testTerm   = "ACCACAACCA"
	testSeq    = "GATTACAGGCTTAGCATCGATG"
	testDPM    = "CAACACCA"
	testInsert = "TTGCAGTCAGGTTCA"
)

func TestAdapter(t *testing.T) {
	a := Adapter(testSeq, testDPM)
	expect.EQ(t, a, "CATCGATGCTAAGCCTGTAATC"+"AN"+"TGGTGTTG"+AdapterSuffix)
	expect.EQ(t, len(a), len(testSeq)+2+len(testDPM)+24)
	expect.EQ(t, Adapter("acgN", "GGa"), "NCGT"+"AN"+"TCC"+AdapterSuffix)
	expect.EQ(t, Adapter("", ""), "AN"+AdapterSuffix)
}

func TestCut(t *testing.T) {
	adapter := Adapter(testSeq, testDPM)
	rightShift := len(testSeq) + 2
	leftShift := len(testTerm)

	mismatched := []byte(adapter)
	mismatched[4] = 'A'
	require.NotEqual(t, adapter[4], byte('A'))

	tests := []struct {
		name string
		read string
		want int
	}{
		// Read-through starts 15 bases after TERM.
		{"full adapter", testTerm + testInsert + adapter, leftShift + 15},
		{"partial adapter", testTerm + testInsert + adapter[:20], leftShift + 15},
		{"adapter with mismatch", testTerm + testInsert + string(mismatched), leftShift + 15},
		{"adapter with N", testTerm + testInsert + "N" + adapter[1:], leftShift + 15},
		{"three base tail", testTerm + "GGGGGGGGGGGGGGGGGGGG" + adapter[:3], leftShift + 20},
		{"two base tail", testTerm + "GGGGGGGGGGGGGGGGGGGG" + adapter[:2], leftShift + 22},
		{"no adapter", testTerm + "GGGGGGGGGGGGGGGGGGGGGGGGGGGGGG", leftShift + 30},
		{"shorter than left shift", "ACGT", 4},
		{"equal to left shift", testTerm, leftShift},
	}
	for _, test := range tests {
		got := Cut(test.read, adapter, leftShift, rightShift, DefaultOpts)
		expect.EQ(t, got, test.want, test.name)
	}
}

func TestCutDegenerateAdapter(t *testing.T) {
	read := testTerm + testInsert
	adapter := Adapter(testSeq, testDPM)
	expect.EQ(t, Cut(read, adapter, len(testTerm), len(adapter), DefaultOpts), len(read))
	expect.EQ(t, Cut(read, adapter, len(testTerm), len(adapter)-2, DefaultOpts), len(read))
	expect.EQ(t, Cut(read, "", 0, 0, DefaultOpts), len(read))
}

func TestCutBounds(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	randomSeq := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = "ACGTN"[r.Intn(5)]
		}
		return string(b)
	}
	for iter := 0; iter < 1000; iter++ {
		read := randomSeq(r.Intn(80))
		adapter := randomSeq(r.Intn(60))
		leftShift := r.Intn(15)
		rightShift := r.Intn(30)
		opts := Opts{MinOverlap: r.Intn(6), MaxErrorRate: r.Float64() * 0.3}
		got := Cut(read, adapter, leftShift, rightShift, opts)
		lo := leftShift
		if lo > len(read) {
			lo = len(read)
		}
		expect.GE(t, got, lo, "read %s adapter %s", read, adapter)
		expect.LE(t, got, len(read), "read %s adapter %s", read, adapter)
	}
}
