package lineio

import (
	"bufio"
	"io"
)

// A Reader yields logical lines from an underlying io.Reader. Lines end
// at '\n' or "\r\n"; the terminator is stripped from the returned slice.
// A final line without a terminator is still a line. The underlying
// reader is consumed destructively.
//
// Readers are not safe for concurrent use.
type Reader struct {
	r      *bufio.Reader
	buf    *Buffer // accumulates the current line across read fragments
	line   []byte  // most recently returned line
	num    int     // 1-based number of the most recently returned line
	pushed bool    // line is scheduled for redelivery
	valid  bool    // the latest Next call returned a line
	err    error   // sticky; io.EOF after a clean end of stream
}

// NewReader returns a Reader drawing from r. The hint is the initial
// line buffer capacity in bytes, to be tuned for the expected line
// length; zero or a negative value selects DefaultBufferSize. The
// buffer doubles whenever a line outgrows it and never shrinks for the
// life of the Reader. If r is already a *bufio.Reader it is used
// directly rather than wrapped again.
func NewReader(r io.Reader, hint int) *Reader {
	if hint <= 0 {
		hint = DefaultBufferSize
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br, buf: NewBuffer(hint)}
}

// Next returns the next line with its terminator stripped, or io.EOF
// once the stream is exhausted. The returned slice is valid only until
// the following Next call. After io.EOF or a read error, every later
// call reports the same error.
func (r *Reader) Next() ([]byte, error) {
	if r.pushed {
		r.pushed = false
		return r.line, nil
	}
	if r.err != nil {
		r.valid = false
		return nil, r.err
	}
	r.buf.Reset()
	for {
		frag, err := r.r.ReadSlice('\n')
		r.buf.Append(frag)
		switch err {
		case nil:
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			if r.buf.Len() == 0 {
				r.err = io.EOF
				r.valid = false
				return nil, io.EOF
			}
			// The stream ended without a terminator; what accumulated
			// is the final line.
			r.err = io.EOF
		default:
			r.err = err
			r.valid = false
			return nil, err
		}
		line := r.buf.Bytes()
		if n := len(line); n > 0 && line[n-1] == '\n' {
			line = line[:n-1]
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
		}
		r.line = line
		r.num++
		r.valid = true
		return line, nil
	}
}

// Unread pushes the line most recently returned by Next back into the
// Reader; the following Next call redelivers it. Only that line may be
// pushed back, and only once at a time. Unread panics if the latest
// Next call did not return a line or if the line is already pushed
// back.
func (r *Reader) Unread() {
	if r.pushed || !r.valid {
		panic("lineio: Unread without a preceding Next")
	}
	r.pushed = true
}

// Line returns the 1-based number of the line most recently returned by
// Next, or 0 before the first line. A pushed-back line keeps its number
// when redelivered.
func (r *Reader) Line() int { return r.num }
