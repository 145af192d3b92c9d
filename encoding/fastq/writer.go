package fastq

import "io"

var newline = []byte{'\n'}

// Writer is a FASTQ file writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTQ writer
// that writes reads to the underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes the read r in FASTQ format.
// An error is returned if the write failed.
func (w *Writer) Write(r *Read) error {
	w.writeln(r.ID)
	w.writeln(r.Seq)
	w.writeln(r.Unk)
	w.writeln(r.Qual)
	return w.err
}

func (w *Writer) writeln(line string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, line)
	if w.err == nil {
		_, w.err = w.w.Write(newline)
	}
}

// PairWriter writes read pairs to a pair of FASTQ streams, keeping them in
// step.
type PairWriter struct {
	w1, w2 *Writer
}

// NewPairWriter creates a PairWriter that writes R1 reads to w1 and R2 reads
// to w2.
func NewPairWriter(w1, w2 io.Writer) *PairWriter {
	return &PairWriter{NewWriter(w1), NewWriter(w2)}
}

// Write writes r1 and r2. Once either stream fails, every later call
// returns the first error.
func (p *PairWriter) Write(r1, r2 *Read) error {
	if err := p.w1.Write(r1); err != nil {
		return err
	}
	return p.w2.Write(r2)
}
