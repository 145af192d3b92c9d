package fastq

import (
	"bufio"
	"context"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// FileWriter is a buffered output file for FASTQ data. Paths ending in ".gz"
// are gzip-compressed. Close must be called to flush the data.
type FileWriter struct {
	f   file.File
	gz  *gzip.Writer
	buf *bufio.Writer
}

// Create creates the output file path, which may be any path understood by
// grailbio/base/file.
func Create(ctx context.Context, path string) (*FileWriter, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, err
	}
	w := &FileWriter{f: f}
	out := f.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		w.gz = gzip.NewWriter(out)
		w.buf = bufio.NewWriterSize(w.gz, 1<<20)
	} else {
		w.buf = bufio.NewWriterSize(out, 1<<20)
	}
	return w, nil
}

// Write implements io.Writer.
func (w *FileWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

// Close flushes buffered data and closes the file. It returns the first
// error encountered.
func (w *FileWriter) Close(ctx context.Context) error {
	once := errors.Once{}
	once.Set(w.buf.Flush())
	if w.gz != nil {
		once.Set(w.gz.Close())
	}
	once.Set(w.f.Close(ctx))
	return once.Err()
}
