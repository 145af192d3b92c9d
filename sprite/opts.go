package sprite

import (
	"github.com/grailbio/sprite/barcode"
	"github.com/grailbio/sprite/layout"
	"github.com/grailbio/sprite/overlap"
)

// Opts configures barcode extraction.
type Opts struct {
	// Matcher is the barcode correction policy. The default accepts the
	// nearest reference barcode however far it is.
	Matcher barcode.Matcher
	// Overlap controls the search for read-through adapter in read one.
	Overlap overlap.Opts
	// Preference is the field length preference of the read two layout.
	Preference layout.Preference

	// TagPrefix precedes the barcode names appended to read names.
	TagPrefix string
	// Uncorrected lists the layout fields that are not barcodes and are
	// never looked up in the dictionary.
	Uncorrected []string

	// Parallelism is the number of goroutines processing pairs in Run.
	// Output order does not depend on it.
	Parallelism int
	// BatchSize is the number of pairs handed to a goroutine at a time.
	BatchSize int
	// ProgressInterval is the number of input pairs between progress
	// messages. Zero disables them.
	ProgressInterval int
}

// DefaultOpts is the default configuration.
var DefaultOpts = Opts{
	Matcher:          barcode.DefaultMatcher,
	Overlap:          overlap.DefaultOpts,
	Preference:       layout.ShortestFirst,
	TagPrefix:        "CB:",
	Uncorrected:      []string{layout.Seq},
	Parallelism:      1,
	BatchSize:        1024,
	ProgressInterval: 10000,
}
