package barcode

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/sprite/layout"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	testifyassert "github.com/stretchr/testify/assert"
)

const testTable = `# category-name	sequence
EVEN-A1	CAACCACACAACCAC
EVEN-A2	ACACCAACCACCAACA
EVEN-B1	GGTTGGTGTGGTTGG
ODD-A1	ACACCAACCACCAACA
ODD-A2	TTGTTGGTTGGTGTT
TERM-1	ACCACAACCA
DPM-X	caacacca
`

func mustRead(t *testing.T, s string) *Dictionary {
	d, err := ReadDictionary(strings.NewReader(s))
	assert.NoError(t, err)
	return d
}

func TestReadDictionary(t *testing.T) {
	d := mustRead(t, testTable)
	expect.EQ(t, d.Len(), 7)
	expect.EQ(t, d.Categories(), []string{"EVEN", "ODD", "TERM", "DPM"})
	expect.EQ(t, d.Category("EVEN"), []Entry{
		{"EVEN-A1", "CAACCACACAACCAC"},
		{"EVEN-A2", "ACACCAACCACCAACA"},
		{"EVEN-B1", "GGTTGGTGTGGTTGG"},
	})
	// Sequences are upper-cased.
	expect.EQ(t, d.Category("DPM"), []Entry{{"DPM-X", "CAACACCA"}})
	expect.EQ(t, len(d.Category("SEQ")), 0)
}

func TestDictionaryDuplicate(t *testing.T) {
	d := mustRead(t, "EVEN-1\tAAAA\nEVEN-2\tCCCC\nEVEN-1\tGGGG\n")
	expect.EQ(t, d.Len(), 2)
	expect.EQ(t, d.Category("EVEN"), []Entry{{"EVEN-1", "GGGG"}, {"EVEN-2", "CCCC"}})
}

func TestCategoryOf(t *testing.T) {
	expect.EQ(t, CategoryOf("EVEN-A1"), "EVEN")
	expect.EQ(t, CategoryOf("ODD-A-1"), "ODD")
	expect.EQ(t, CategoryOf("DPM"), "DPM")
	expect.EQ(t, CategoryOf("-X"), "")
}

func TestReadDictionaryErrors(t *testing.T) {
	for _, table := range []string{
		"",
		"# only a comment\n",
		"EVEN-1\tACGU\n",
		"EVEN-1\t\n",
	} {
		_, err := ReadDictionary(strings.NewReader(table))
		expect.True(t, err != nil, "table %q", table)
		expect.True(t, errors.Is(errors.Invalid, err), "table %q: %v", table, err)
	}
}

func TestLoadDictionary(t *testing.T) {
	ctx := context.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	plain := filepath.Join(tempDir, "barcodes.tsv")
	assert.NoError(t, ioutil.WriteFile(plain, []byte(testTable), 0644))
	d, err := LoadDictionary(ctx, plain)
	assert.NoError(t, err)
	expect.EQ(t, d.Len(), 7)

	gz := filepath.Join(tempDir, "barcodes.tsv.gz")
	f, err := os.Create(gz)
	assert.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(testTable))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())
	d, err = LoadDictionary(ctx, gz)
	assert.NoError(t, err)
	expect.EQ(t, d.Category("ODD"), mustRead(t, testTable).Category("ODD"))

	_, err = LoadDictionary(ctx, filepath.Join(tempDir, "missing.tsv"))
	expect.True(t, err != nil)
}

func TestNearest(t *testing.T) {
	entries := []Entry{
		{"E-1", "AAAAAA"},
		{"E-2", "CCCCCC"},
		{"E-3", "AAAAAC"},
		{"E-4", "AAAACC"},
	}
	tests := []struct {
		m     Matcher
		query string
		name  string
		dist  int
		ok    bool
	}{
		{DefaultMatcher, "AAAAAA", "E-1", 0, true},
		{DefaultMatcher, "CCCCCA", "E-2", 1, true},
		// Equidistant from E-1 and E-4; the earlier one wins.
		{DefaultMatcher, "AAAACA", "E-1", 1, true},
		{Matcher{MaxDistance: Unbounded, RejectTies: true}, "AAAACA", "", -1, false},
		// Far from everything, but still accepted without a threshold.
		{DefaultMatcher, "GGGGGG", "E-1", 6, true},
		{Matcher{MaxDistance: 2}, "GGGGGG", "", -1, false},
		{Matcher{MaxDistance: 2}, "AAGAAA", "E-1", 1, true},
		{Matcher{MaxDistance: 0}, "AAGAAA", "", -1, false},
		// Length differences count as edits.
		{DefaultMatcher, "CCCCC", "E-2", 1, true},
		{DefaultMatcher, "AAAAAAA", "E-1", 1, true},
		{Matcher{MaxDistance: 1, RejectTies: true}, "AAAAAG", "", -1, false},
	}
	for _, test := range tests {
		name, dist, ok := test.m.Nearest(test.query, entries)
		expect.EQ(t, name, test.name, "%+v", test)
		expect.EQ(t, dist, test.dist, "%+v", test)
		expect.EQ(t, ok, test.ok, "%+v", test)
	}

	_, _, ok := DefaultMatcher.Nearest("ACGT", nil)
	expect.False(t, ok)
}

func TestNearestSelf(t *testing.T) {
	d := mustRead(t, testTable)
	for _, cat := range d.Categories() {
		for _, e := range d.Category(cat) {
			name, dist, ok := DefaultMatcher.Nearest(e.Seq, []Entry{e})
			testifyassert.True(t, ok)
			testifyassert.Equal(t, e.Name, name)
			testifyassert.Equal(t, 0, dist)
		}
	}
}

func match(captures ...layout.Capture) layout.Match {
	return layout.Match{Captures: captures}
}

func TestCorrector(t *testing.T) {
	d := mustRead(t, testTable)
	c, err := NewCorrector(d, DefaultMatcher, "TERM", "EVEN", "ODD", "DPM")
	assert.NoError(t, err)

	names, ok := c.Correct(match(
		layout.Capture{Name: "TERM", Value: "ACCACAACCA"},
		// One substitution away from EVEN-A1.
		layout.Capture{Name: "EVEN", Value: "CAACCACTCAACCAC"},
		layout.Capture{Name: "ODD", Value: "ACACCAACCACCAACA"},
		// One deletion away from EVEN-B1.
		layout.Capture{Name: "EVEN", Value: "GGTTGGTGTGGTTG"},
		layout.Capture{Name: "ODD", Value: "TTGTTGGTTGGTGTT"},
		layout.Capture{Name: "DPM", Value: "CAACACCA"},
		layout.Capture{Name: "SEQ", Value: "GATTACAGGCTTAGCATCGATG"},
	))
	assert.True(t, ok)
	expect.EQ(t, names, []string{"TERM-1", "EVEN-A1", "EVEN-B1", "ODD-A1", "ODD-A2", "DPM-X"})
	expect.EQ(t, Tag(names), "TERM-1,EVEN-A1,EVEN-B1,ODD-A1,ODD-A2,DPM-X")

	strict, err := NewCorrector(d, Matcher{MaxDistance: 1}, "EVEN", "ODD")
	assert.NoError(t, err)
	names, ok = strict.Correct(match(
		layout.Capture{Name: "EVEN", Value: "CAACCACTCAACCAC"},
		layout.Capture{Name: "ODD", Value: "GGGGGGGGGGGGGGG"},
	))
	expect.False(t, ok)
	expect.EQ(t, len(names), 0)
}

func TestCorrectorCategoryOrder(t *testing.T) {
	d := mustRead(t, testTable)
	m := match(
		layout.Capture{Name: "EVEN", Value: "CAACCACACAACCAC"},
		layout.Capture{Name: "ODD", Value: "ACACCAACCACCAACA"},
		layout.Capture{Name: "EVEN", Value: "GGTTGGTGTGGTTGG"},
		layout.Capture{Name: "ODD", Value: "TTGTTGGTTGGTGTT"},
	)
	for _, test := range []struct {
		categories []string
		want       string
	}{
		{[]string{"EVEN", "ODD"}, "EVEN-A1,EVEN-B1,ODD-A1,ODD-A2"},
		{[]string{"ODD", "EVEN"}, "ODD-A1,ODD-A2,EVEN-A1,EVEN-B1"},
		{[]string{"ODD", "EVEN", "ODD"}, "ODD-A1,ODD-A2,EVEN-A1,EVEN-B1"},
	} {
		c, err := NewCorrector(d, DefaultMatcher, test.categories...)
		assert.NoError(t, err)
		names, ok := c.Correct(m)
		assert.True(t, ok)
		expect.EQ(t, Tag(names), test.want, "categories %v", test.categories)
	}
}

func TestNewCorrectorErrors(t *testing.T) {
	d := mustRead(t, testTable)
	_, err := NewCorrector(d, DefaultMatcher, "EVEN", "SEQ")
	expect.True(t, errors.Is(errors.Invalid, err))
	_, err = NewCorrector(d, DefaultMatcher)
	expect.True(t, errors.Is(errors.Invalid, err))
}

func TestCollisions(t *testing.T) {
	d := NewDictionary()
	d.Add("EVEN-1", "AAAAAA")
	d.Add("EVEN-2", "AAAAAC")
	d.Add("EVEN-3", "CCCCCC")
	d.Add("ODD-1", "AAAAAA")
	d.Add("ODD-2", "GGGGGG")

	expect.EQ(t, Collisions(d, 1), []Collision{{"EVEN", "EVEN-1", "EVEN-2", 1}})
	expect.EQ(t, len(Collisions(d, 0)), 0)
	expect.EQ(t, len(Collisions(d, 6)), 4)

	expect.EQ(t, MinDistance(d.Category("EVEN")), 1)
	expect.EQ(t, MinDistance(d.Category("ODD")), 6)
	expect.EQ(t, MinDistance(d.Category("ODD")[:1]), -1)
}

func TestMain(m *testing.M) {
	shutdown := grail.Init()
	status := m.Run()
	shutdown()
	os.Exit(status)
}
