package compress

import (
	"bufio"
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

// NewReader inspects the first bytes of r and returns a reader yielding
// uncompressed data: a gzip or bzip2 decompressor when the stream opens
// with that format's magic, or the stream itself, buffered, when it does
// not. The inspected bytes are never lost; they are replayed from the
// buffer to whichever reader is returned. A stream shorter than the
// longest magic, or one with an unrecognized prefix, is passed through
// as plain data. An error is returned only if reading from r fails or
// if a recognized compression header is malformed.
//
// If r is already a *bufio.Reader it is peeked at directly; otherwise it
// is wrapped. Callers that need the eventual Close of a file should
// close the underlying source; the returned reader does not own it.
func NewReader(r io.Reader) (io.Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	magic, err := br.Peek(len(bzip2Magic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return gzip.NewReader(br)
	case bytes.HasPrefix(magic, bzip2Magic):
		return bzip2.NewReader(br, nil)
	}
	return br, nil
}
