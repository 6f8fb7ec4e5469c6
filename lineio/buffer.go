package lineio

const (
	// DefaultBufferSize is the initial capacity of a Reader's line buffer
	// when no size hint is given. It suits short-read sequencing data;
	// callers handling long sequences should pass a larger hint.
	DefaultBufferSize = 64 * 1024

	// minBufferSize is the smallest capacity a Buffer will allocate.
	minBufferSize = 64
)

// A Buffer is an append-only byte buffer whose capacity grows by doubling
// and never shrinks. Unlike bytes.Buffer, Reset retains the underlying
// storage, so a Buffer can accumulate one record after another without
// reallocating. The zero value is ready for use.
type Buffer struct {
	buf []byte
}

// NewBuffer returns a Buffer with an initial capacity of at least hint
// bytes. Hints smaller than the minimum are raised to the minimum.
func NewBuffer(hint int) *Buffer {
	if hint < minBufferSize {
		hint = minBufferSize
	}
	return &Buffer{buf: make([]byte, 0, hint)}
}

// Grow ensures that the buffer has room for at least n more bytes,
// doubling the capacity as many times as needed.
func (b *Buffer) Grow(n int) {
	need := len(b.buf) + n
	if need <= cap(b.buf) {
		return
	}
	newCap := cap(b.buf)
	if newCap < minBufferSize {
		newCap = minBufferSize
	}
	for newCap < need {
		newCap *= 2
	}
	buf := make([]byte, len(b.buf), newCap)
	copy(buf, b.buf)
	b.buf = buf
}

// Append appends p to the buffer.
func (b *Buffer) Append(p []byte) {
	b.Grow(len(p))
	b.buf = append(b.buf, p...)
}

// Len returns the number of bytes accumulated.
func (b *Buffer) Len() int { return len(b.buf) }

// Cap returns the current capacity.
func (b *Buffer) Cap() int { return cap(b.buf) }

// Bytes returns the accumulated bytes. The slice is valid only until the
// next Append, Grow or Reset.
func (b *Buffer) Bytes() []byte { return b.buf }

// String returns a copy of the accumulated bytes as a string.
func (b *Buffer) String() string { return string(b.buf) }

// Reset truncates the buffer to zero length, keeping its capacity.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }
