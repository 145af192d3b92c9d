package main

import (
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/sprite/barcode"
	"v.io/x/lib/cmdline"
)

func newCmdBarcodes() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "barcodes",
		Short:    "Report barcode table categories and near-collisions",
		ArgsName: "barcodes",
	}
	maxDistance := cmd.Flags.Int("max-distance", 2, "List same-category barcode pairs at this edit distance or less")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return fmt.Errorf("barcodes takes one pathname argument, but got %v", argv)
		}
		dict, err := barcode.LoadDictionary(vcontext.Background(), argv[0])
		if err != nil {
			return err
		}
		return writeBarcodeReport(env.Stdout, dict, *maxDistance)
	})
	return cmd
}

// writeBarcodeReport writes one "category" row per category with its size
// and minimum pairwise distance (-1 for a single barcode), then one
// "collision" row per pair of barcodes within maxDistance.
func writeBarcodeReport(out io.Writer, dict *barcode.Dictionary, maxDistance int) error {
	w := tsv.NewWriter(out)
	for _, cat := range dict.Categories() {
		entries := dict.Category(cat)
		w.WriteString("category")
		w.WriteString(cat)
		w.WriteInt64(int64(len(entries)))
		w.WriteInt64(int64(barcode.MinDistance(entries)))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	for _, c := range barcode.Collisions(dict, maxDistance) {
		w.WriteString("collision")
		w.WriteString(c.Category)
		w.WriteString(c.A)
		w.WriteString(c.B)
		w.WriteInt64(int64(c.Distance))
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
