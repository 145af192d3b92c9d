// Package barcode holds the reference barcode tables used to correct the
// fields captured from SPRITE reads, and the nearest-neighbor lookup that
// snaps an observed field to a reference name.
package barcode

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/sprite/dna"
)

// Entry is one reference barcode.
type Entry struct {
	// Name is the full barcode name, e.g. "EVEN-A3".
	Name string
	// Seq is the barcode sequence, upper case.
	Seq string
}

// Dictionary maps a category to its reference barcodes. Categories and the
// entries within each category keep the order in which they were added.
//
// A Dictionary is built once and then shared read-only; concurrent calls to
// Category and Categories are safe as long as nobody calls Add.
type Dictionary struct {
	categories []string
	entries    map[string][]Entry
	// index maps a barcode name to its position in its category.
	index map[string]int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: map[string][]Entry{},
		index:   map[string]int{},
	}
}

// CategoryOf returns the category of a barcode name: the prefix before the
// first '-', or the whole name if it has no '-'.
func CategoryOf(name string) string {
	if i := strings.IndexByte(name, '-'); i >= 0 {
		return name[:i]
	}
	return name
}

// Add adds a barcode. If a barcode with the same name already exists, its
// sequence is replaced in place and Add returns true.
func (d *Dictionary) Add(name, seq string) (replaced bool) {
	seq = strings.ToUpper(seq)
	cat := CategoryOf(name)
	if i, ok := d.index[name]; ok {
		d.entries[cat][i].Seq = seq
		return true
	}
	if _, ok := d.entries[cat]; !ok {
		d.categories = append(d.categories, cat)
	}
	d.index[name] = len(d.entries[cat])
	d.entries[cat] = append(d.entries[cat], Entry{Name: name, Seq: seq})
	return false
}

// Category returns the entries of the named category, in insertion order. The
// result must not be modified.
func (d *Dictionary) Category(cat string) []Entry {
	return d.entries[cat]
}

// Categories returns the category names in the order they first appeared.
func (d *Dictionary) Categories() []string {
	return append([]string(nil), d.categories...)
}

// Len returns the total number of barcodes.
func (d *Dictionary) Len() int {
	return len(d.index)
}

// dictionaryRow is one line of a barcode table.
type dictionaryRow struct {
	Name string
	Seq  string
}

// ReadDictionary reads a barcode table: two tab-separated columns, the
// barcode name and its sequence, without a header. Lines starting with '#'
// are ignored. Duplicate names are logged and the later sequence wins.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	tr := tsv.NewReader(r)
	tr.Comment = '#'
	d := NewDictionary()
	for nLine := 1; ; nLine++ {
		var row dictionaryRow
		if err := tr.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, fmt.Sprintf("barcode table row %d", nLine), err)
		}
		name, seq := strings.TrimSpace(row.Name), strings.TrimSpace(row.Seq)
		if name == "" || seq == "" {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("barcode table row %d: empty name or sequence", nLine))
		}
		if !dna.IsACGTN(strings.ToUpper(seq)) {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("barcode table row %d: %s: invalid base in %q", nLine, name, seq))
		}
		if d.Add(name, seq) {
			log.Error.Printf("barcode %s appears more than once, using sequence %s", name, seq)
		}
	}
	if d.Len() == 0 {
		return nil, errors.E(errors.Invalid, "barcode table is empty")
	}
	return d, nil
}

// LoadDictionary reads a barcode table from path, which may be any path
// understood by grailbio/base/file. Compressed tables are decompressed
// according to the file suffix.
func LoadDictionary(ctx context.Context, path string) (*Dictionary, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	var inr io.Reader = in.Reader(ctx)
	if u := compress.NewReaderPath(inr, in.Name()); u != nil {
		inr = u
	}
	d, err := ReadDictionary(inr)
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	if err := once.Err(); err != nil {
		return nil, errors.E(fmt.Sprintf("load barcodes %s", path), err)
	}
	return d, nil
}
