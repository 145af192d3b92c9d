package main

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/sprite/encoding/fastq"
	"v.io/x/lib/cmdline"
)

func newCmdDownsample() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "downsample",
		Short:    "Keep a random subset of read pairs",
		ArgsName: "r1 r2 out-r1 out-r2",
	}
	rate := cmd.Flags.Float64("rate", 0.01, "Fraction of pairs to keep, in [0, 1]")
	seed := cmd.Flags.Int64("seed", 0, "Random seed. The same seed keeps the same pairs.")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 4 {
			return fmt.Errorf("downsample takes r1 r2 out-r1 out-r2, but got %v", argv)
		}
		return downsample(vcontext.Background(), argv, *rate, *seed)
	})
	return cmd
}

func downsample(ctx context.Context, paths []string, rate float64, seed int64) (err error) {
	var (
		readers [2]io.Reader
		writers [2]io.Writer
	)
	for i := 0; i < 2; i++ {
		in, e := file.Open(ctx, paths[i])
		if e != nil {
			return e
		}
		defer file.CloseAndReport(ctx, in, &err)
		readers[i] = in.Reader(ctx)
		if u := compress.NewReaderPath(readers[i], in.Name()); u != nil {
			readers[i] = u
		}
	}
	for i := 0; i < 2; i++ {
		out, e := fastq.Create(ctx, paths[2+i])
		if e != nil {
			return e
		}
		writers[i] = out
		defer func() {
			if e := out.Close(ctx); e != nil && err == nil {
				err = e
			}
		}()
	}
	kept, total, err := fastq.Downsample(rate, seed,
		fastq.NewPairScanner(readers[0], readers[1], fastq.All),
		fastq.NewPairWriter(writers[0], writers[1]))
	if err != nil {
		return err
	}
	log.Printf("%s: kept %d of %d pairs", paths[0], kept, total)
	return nil
}
