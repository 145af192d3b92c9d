package sprite

import "fmt"

// Stats counts what happened to the read pairs seen by a Processor.
type Stats struct {
	// Pairs is the number of read pairs processed.
	Pairs int
	// Emitted is the number of pairs whose barcode was resolved.
	Emitted int
	// LayoutMismatch is the number of pairs whose read two did not match the
	// barcode layout.
	LayoutMismatch int
	// BarcodeUnresolved is the number of pairs with a barcode field that no
	// reference barcode was accepted for.
	BarcodeUnresolved int
	// Trimmed is the number of emitted pairs whose read one was cut at a
	// read-through adapter.
	Trimmed int
}

// Merge adds the field values of the two Stats objects and creates new Stats.
func (s Stats) Merge(o Stats) Stats {
	s.Pairs += o.Pairs
	s.Emitted += o.Emitted
	s.LayoutMismatch += o.LayoutMismatch
	s.BarcodeUnresolved += o.BarcodeUnresolved
	s.Trimmed += o.Trimmed
	return s
}

// Rejected is the number of pairs dropped for any reason.
func (s Stats) Rejected() int {
	return s.LayoutMismatch + s.BarcodeUnresolved
}

// BarcodeFraction is the fraction of pairs emitted, or 0 before any pair is
// processed.
func (s Stats) BarcodeFraction() float64 {
	if s.Pairs == 0 {
		return 0
	}
	return float64(s.Emitted) / float64(s.Pairs)
}

func (s Stats) String() string {
	return fmt.Sprintf("%d pairs, %d with full barcodes (%.2f%%), %d not matching the layout, %d with unresolved barcodes, %d read ones trimmed",
		s.Pairs, s.Emitted, 100*s.BarcodeFraction(), s.LayoutMismatch, s.BarcodeUnresolved, s.Trimmed)
}
