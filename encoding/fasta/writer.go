package fasta

import "io"

var newline = []byte{'\n'}

// Writer is a FASTA file writer.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter constructs a new FASTA writer that writes records to the
// underlying writer w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rec as a '>' header line followed by the sequence on a
// single line. An error is returned if the write failed.
func (w *Writer) Write(rec *Record) error {
	w.writeln(">" + rec.ID)
	w.writeln(rec.Seq)
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
