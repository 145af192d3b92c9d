// Package sprite extracts SPRITE barcodes from paired-end reads.
//
// Read two of a SPRITE pair starts with a combinatorial barcode: a terminal
// tag, two rounds each of EVEN and ODD tags separated by linkers, and a DPM
// tag, followed by a short stretch of genomic sequence (SEQ). For every
// pair, read two is parsed against that layout, each tag is snapped to the
// nearest reference barcode, read one is trimmed where it runs into the
// barcode region, and both reads are rewritten with the barcode names
// appended to their names.
package sprite

import (
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/sprite/barcode"
	"github.com/grailbio/sprite/encoding/fastq"
	"github.com/grailbio/sprite/layout"
	"github.com/grailbio/sprite/overlap"
)

// Outcome is the fate of a read pair.
type Outcome uint8

const (
	// Emitted means the pair was rewritten and should be written out.
	Emitted Outcome = iota
	// LayoutMismatch means read two does not match the barcode layout.
	LayoutMismatch
	// BarcodeUnresolved means some barcode field has no acceptable
	// reference barcode.
	BarcodeUnresolved
)

func (o Outcome) String() string {
	switch o {
	case Emitted:
		return "emitted"
	case LayoutMismatch:
		return "layout mismatch"
	case BarcodeUnresolved:
		return "barcode unresolved"
	}
	return fmt.Sprintf("Outcome(%d)", o)
}

// Processor turns raw read pairs into barcoded pairs. It is safe for
// concurrent use; all state that changes per pair lives in the Stats passed
// to Process.
type Processor struct {
	opts      Opts
	layout    *layout.Layout
	corrector *barcode.Corrector
}

// NewProcessor creates a Processor. Every barcode field of the SPRITE layout
// that is not listed in opts.Uncorrected must have a non-empty category in
// dict.
func NewProcessor(dict *barcode.Dictionary, opts Opts) (*Processor, error) {
	l, err := layout.New(layout.SpriteElements(), layout.WithPreference(opts.Preference))
	if err != nil {
		return nil, err
	}
	skip := map[string]bool{}
	for _, name := range opts.Uncorrected {
		skip[name] = true
	}
	if !skip[layout.Seq] {
		return nil, errors.E(errors.Invalid, fmt.Sprintf("sprite: field %s holds genomic sequence and cannot be corrected", layout.Seq))
	}
	var categories []string
	for _, name := range l.Names() {
		if !skip[name] {
			categories = append(categories, name)
		}
	}
	c, err := barcode.NewCorrector(dict, opts.Matcher, categories...)
	if err != nil {
		return nil, err
	}
	return &Processor{opts: opts, layout: l, corrector: c}, nil
}

// Process handles one read pair and updates stats. If the outcome is
// Emitted, r1 and r2 have been rewritten in place: both names become the
// first word of r1's name followed by the barcode tag, r1 keeps the bases
// between the terminal tag and any read-through adapter, and r2 is replaced
// by its SEQ field. Otherwise r1 and r2 are unchanged.
func (p *Processor) Process(r1, r2 *fastq.Read, stats *Stats) Outcome {
	stats.Pairs++
	m, ok := p.layout.Match(r2.Seq)
	if !ok {
		stats.LayoutMismatch++
		log.Debug.Printf("%s: read two does not match the barcode layout", r1.Name())
		return LayoutMismatch
	}
	names, ok := p.corrector.Correct(m)
	if !ok {
		stats.BarcodeUnresolved++
		log.Debug.Printf("%s: unresolved barcode in %v", r1.Name(), m.Captures)
		return BarcodeUnresolved
	}

	term, _ := m.Capture(layout.Term, 0)
	dpm, _ := m.Capture(layout.DPM, 0)
	seq, _ := m.Capture(layout.Seq, 0)
	leftShift := term.End - term.Start
	cut := overlap.Cut(r1.Seq, overlap.Adapter(seq.Value, dpm.Value), leftShift, len(seq.Value)+2, p.opts.Overlap)
	if cut < len(r1.Seq) {
		stats.Trimmed++
	}

	id := r1.Name() + " " + p.opts.TagPrefix + barcode.Tag(names)
	r1.ID, r1.Unk = id, "+"
	r1.Slice(leftShift, cut)
	r2.ID, r2.Unk = id, "+"
	r2.Slice(seq.Start, seq.End)
	stats.Emitted++
	return Emitted
}
