package sprite

import (
	"context"
	"io"
	"sync"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/syncqueue"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/sprite/barcode"
	"github.com/grailbio/sprite/encoding/fastq"
)

// Paths names the input and output FASTQ files of Run. Any path understood
// by grailbio/base/file can be used. Compressed inputs are recognized by
// their suffix; outputs ending in ".gz" are gzip-compressed.
type Paths struct {
	R1In, R2In   string
	R1Out, R2Out string
}

type pair struct {
	r1, r2 fastq.Read
	keep   bool
}

// batch is a run of consecutive input pairs, processed by one goroutine.
type batch struct {
	seq   int
	pairs []pair
	stats Stats
}

// Run extracts barcodes from every pair in paths.R1In and paths.R2In and
// writes the pairs with resolved barcodes to paths.R1Out and paths.R2Out, in
// input order. Rejected pairs are counted in the returned Stats. Errors
// reading or writing files, including input files with different numbers of
// reads, abort the run.
func Run(ctx context.Context, paths Paths, dict *barcode.Dictionary, opts Opts) (stats Stats, err error) {
	p, err := NewProcessor(dict, opts)
	if err != nil {
		return stats, err
	}
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	in1, err := openInput(ctx, paths.R1In)
	if err != nil {
		return stats, err
	}
	defer file.CloseAndReport(ctx, in1.f, &err)
	in2, err := openInput(ctx, paths.R2In)
	if err != nil {
		return stats, err
	}
	defer file.CloseAndReport(ctx, in2.f, &err)
	out1, err := fastq.Create(ctx, paths.R1Out)
	if err != nil {
		return stats, err
	}
	out2, err := fastq.Create(ctx, paths.R2Out)
	if err != nil {
		out1.Close(ctx) // nolint: errcheck
		return stats, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var (
		once    errors.Once
		wg      sync.WaitGroup
		batches = make(chan *batch, parallelism)
		queue   = syncqueue.NewOrderedQueue(2 * parallelism)
	)

	// Reader.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(batches)
		sc := fastq.NewPairScanner(in1.r, in2.r, fastq.All)
		b := &batch{pairs: make([]pair, 0, batchSize)}
		send := func() bool {
			select {
			case batches <- b:
			case <-runCtx.Done():
				return false
			}
			b = &batch{seq: b.seq + 1, pairs: make([]pair, 0, batchSize)}
			return true
		}
		for {
			b.pairs = append(b.pairs, pair{})
			pr := &b.pairs[len(b.pairs)-1]
			if !sc.Scan(&pr.r1, &pr.r2) {
				b.pairs = b.pairs[:len(b.pairs)-1]
				break
			}
			if len(b.pairs) == batchSize && !send() {
				return
			}
		}
		if err := sc.Err(); err != nil {
			once.Set(errors.E(errors.Invalid, "read "+paths.R1In+", "+paths.R2In, err))
			cancel()
			return
		}
		if len(b.pairs) > 0 {
			send()
		}
	}()

	// Writer.
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := fastq.NewPairWriter(out1, out2)
		for {
			v, ok, err := queue.Next()
			if err != nil || !ok {
				return
			}
			b := v.(*batch)
			for i := range b.pairs {
				pr := &b.pairs[i]
				if !pr.keep {
					continue
				}
				if err := w.Write(&pr.r1, &pr.r2); err != nil {
					err = errors.E("write "+paths.R1Out+", "+paths.R2Out, err)
					once.Set(err)
					queue.Close(err)
					cancel()
					return
				}
			}
			prev := stats.Pairs
			stats = stats.Merge(b.stats)
			if n := opts.ProgressInterval; n > 0 && stats.Pairs/n > prev/n {
				log.Printf("%s: %d pairs processed, %d written", paths.R1In, stats.Pairs, stats.Emitted)
			}
		}
	}()

	once.Set(traverse.Each(parallelism, func(int) error {
		for b := range batches {
			for i := range b.pairs {
				pr := &b.pairs[i]
				pr.keep = p.Process(&pr.r1, &pr.r2, &b.stats) == Emitted
			}
			if err := queue.Insert(b.seq, b); err != nil {
				cancel()
				return err
			}
		}
		return nil
	}))
	queue.Close(once.Err())
	wg.Wait()
	once.Set(out1.Close(ctx))
	once.Set(out2.Close(ctx))
	if err := once.Err(); err != nil {
		return stats, err
	}
	log.Printf("%s: done: %v", paths.R1In, stats)
	return stats, nil
}

type input struct {
	f file.File
	r io.Reader
}

func openInput(ctx context.Context, path string) (input, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return input{}, err
	}
	var r io.Reader = f.Reader(ctx)
	if u := compress.NewReaderPath(r, f.Name()); u != nil {
		r = u
	}
	return input{f, r}, nil
}
