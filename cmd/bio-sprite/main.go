// bio-sprite extracts SPRITE barcodes from paired-end FASTQ files.
//
// Usage:
//
//	bio-sprite extract [flags] r1.fastq.gz r2.fastq.gz out_R1.fastq.gz out_R2.fastq.gz barcodes.tsv
//	bio-sprite barcodes [flags] barcodes.tsv
//	bio-sprite downsample [flags] r1.fastq.gz r2.fastq.gz out_R1.fastq.gz out_R2.fastq.gz
//
// extract parses read two of every pair against the SPRITE barcode layout,
// corrects each barcode against barcodes.tsv, trims read-through from read
// one, and writes the pairs whose barcodes all resolved. Read names get a
// "CB:" tag listing the barcode names.
//
// barcodes loads a barcode table and reports, per category, the number of
// barcodes and the smallest edit distance between two of them, followed by
// the pairs of barcodes that are close enough to be confused.
//
// downsample keeps a random subset of the pairs, for a quick look at a
// library before a full run.
package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/sprite/barcode"
	"github.com/grailbio/sprite/layout"
	"github.com/grailbio/sprite/sprite"
	"v.io/x/lib/cmdline"
)

func newCmdExtract() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "extract",
		Short:    "Extract and correct SPRITE barcodes from read pairs",
		ArgsName: "r1 r2 out-r1 out-r2 barcodes",
	}
	opts := sprite.DefaultOpts
	cmd.Flags.IntVar(&opts.Parallelism, "parallelism", opts.Parallelism, "Number of goroutines processing pairs. Output order does not depend on it.")
	cmd.Flags.IntVar(&opts.BatchSize, "batch-size", opts.BatchSize, "Number of pairs handed to a goroutine at a time")
	cmd.Flags.IntVar(&opts.ProgressInterval, "progress", opts.ProgressInterval, "Log progress every this many input pairs. 0 disables progress messages.")
	cmd.Flags.IntVar(&opts.Matcher.MaxDistance, "max-distance", opts.Matcher.MaxDistance,
		"Largest edit distance between a barcode field and its reference barcode. A negative value accepts the nearest barcode however far it is.")
	cmd.Flags.BoolVar(&opts.Matcher.RejectTies, "reject-ties", opts.Matcher.RejectTies,
		"Reject a barcode field when two reference barcodes are equally close to it. By default the one listed first wins.")
	cmd.Flags.IntVar(&opts.Overlap.MinOverlap, "min-overlap", opts.Overlap.MinOverlap, "Shortest read-through overlap trimmed from read one")
	cmd.Flags.Float64Var(&opts.Overlap.MaxErrorRate, "max-error-rate", opts.Overlap.MaxErrorRate, "Fraction of mismatches allowed in a read-through overlap")
	cmd.Flags.StringVar(&opts.TagPrefix, "tag-prefix", opts.TagPrefix, "Prefix of the barcode tag appended to read names")
	longestFirst := cmd.Flags.Bool("longest-first", false,
		"Try the longest length of each barcode field first instead of the shortest. "+
			"The older regex-based SPRITE pipeline is greedy; set this to reproduce its field boundaries.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 5 {
			return fmt.Errorf("extract takes r1 r2 out-r1 out-r2 barcodes, but got %v", argv)
		}
		if *longestFirst {
			opts.Preference = layout.LongestFirst
		}
		ctx := vcontext.Background()
		dict, err := barcode.LoadDictionary(ctx, argv[4])
		if err != nil {
			return err
		}
		log.Printf("%s: %d barcodes in categories %v", argv[4], dict.Len(), dict.Categories())
		paths := sprite.Paths{R1In: argv[0], R2In: argv[1], R1Out: argv[2], R2Out: argv[3]}
		stats, err := sprite.Run(ctx, paths, dict, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Stdout, "Total: %d\nFailed: %d\n", stats.Pairs, stats.Rejected())
		return nil
	})
	return cmd
}

func main() {
	shutdown := grail.Init()
	defer shutdown()
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-sprite",
			Short:    "Tools for SPRITE barcoded read pairs",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdExtract(),
				newCmdBarcodes(),
				newCmdDownsample(),
			},
		})
}
