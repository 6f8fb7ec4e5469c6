// Package fastq provides streaming readers and a writer for FASTQ
// sequencing reads. Each read is a four-block record: an '@' header, a
// sequence, a '+' separator that may repeat the header ID, and a
// quality string exactly as long as the sequence. Sequence and quality
// blocks may span multiple lines; blank lines between blocks are
// ignored, and LF and CRLF line endings are both accepted.
package fastq

import (
	"fmt"
	"io"
	"strconv"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/seqio/lineio"
	"github.com/pkg/errors"
)

// ErrDiscordant is returned when two paired FASTQ streams hold
// different numbers of reads.
var ErrDiscordant = errors.New("discordant FASTQ pairs")

// A Record is a single FASTQ read.
type Record struct {
	// ID is the header line with the leading '@' and the line terminator
	// stripped.
	ID string
	// Seq is the read sequence, concatenated across lines.
	Seq string
	// Qual is the quality string; its length always equals len(Seq) in
	// records produced by a Scanner.
	Qual string
}

// Trim cuts the sequence and quality strings to at most n characters.
func (r *Record) Trim(n int) {
	if n < len(r.Seq) {
		r.Seq = r.Seq[:n]
		r.Qual = r.Qual[:n]
	}
}

// A FormatError reports a structural violation of the FASTQ grammar and
// the 1-based input line at which it was found.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("fastq: line %d: %s", e.Line, e.Msg)
}

var errEOF = errors.New("eof")

// scanState is the assembler's position within a record.
type scanState int

const (
	expectHeader scanState = iota
	accumulateSequence
	accumulateQuality
)

// Scanner reads FASTQ records from a stream, one Scan call per record.
//
// Scanner validates record structure: the header must begin with '@',
// the sequence must be followed by a '+' separator, a non-empty
// separator ID must equal the header ID, and the quality must match the
// sequence length exactly. Sequence and quality content is not
// validated. Scanners are not threadsafe.
type Scanner struct {
	lr    *lineio.Reader
	seq   lineio.Buffer
	qual  lineio.Buffer
	state scanState
	err   baseerrors.Once
	close func() error
}

// ScannerOpts defines options accepted by the Scanner constructors.
type ScannerOpts struct {
	// BufferSize is the initial size in bytes of the line buffer, a hint
	// to be tuned for the expected read length. Zero selects a 64 KiB
	// default. The buffer grows as needed regardless of the hint.
	BufferSize int
}

func mergeOpts(optList []ScannerOpts) ScannerOpts {
	opts := ScannerOpts{}
	for _, o := range optList {
		if o.BufferSize != 0 {
			opts.BufferSize = o.BufferSize
		}
	}
	return opts
}

// NewScanner returns a Scanner that reads FASTQ records from r. The
// caller keeps ownership of r: the Scanner never closes it, and
// compressed data must be decompressed by the caller, for example by
// wrapping r with compress.NewReader.
func NewScanner(r io.Reader, optList ...ScannerOpts) *Scanner {
	opts := mergeOpts(optList)
	return &Scanner{lr: lineio.NewReader(r, opts.BufferSize)}
}

// Scan reads the next record into rec, returning false when the input
// is exhausted or an error occurs. Once Scan returns false, it never
// returns true again; check Err to distinguish end of input from
// failure. The record's fields are copies and stay valid across later
// Scan calls.
func (s *Scanner) Scan(rec *Record) bool {
	if s.err.Err() != nil {
		return false
	}
	s.state = expectHeader
	s.seq.Reset()
	s.qual.Reset()
	var id string
	for {
		line, err := s.lr.Next()
		if err == io.EOF {
			switch s.state {
			case expectHeader:
				s.err.Set(errEOF)
			case accumulateSequence:
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg:  "unexpected end of input before the '+' separator",
				})
			case accumulateQuality:
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg: fmt.Sprintf("record truncated: quality length %d, sequence length %d",
						s.qual.Len(), s.seq.Len()),
				})
			}
			return false
		}
		if err != nil {
			s.err.Set(errors.Wrap(err, "couldn't read FASTQ data"))
			return false
		}
		if len(line) == 0 {
			continue
		}
		switch s.state {
		case expectHeader:
			if line[0] != '@' {
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg:  fmt.Sprintf("expected an '@' header, found %s", excerpt(line)),
				})
				return false
			}
			id = string(line[1:])
			s.state = accumulateSequence
		case accumulateSequence:
			if line[0] != '+' {
				s.seq.Append(line)
				continue
			}
			// The '+' line closes the sequence block. Any text after
			// the '+' is an optional repeat of the header ID.
			if sep := line[1:]; len(sep) > 0 && string(sep) != id {
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg:  fmt.Sprintf("separator ID %q does not match header ID %q", sep, id),
				})
				return false
			}
			s.state = accumulateQuality
			if s.seq.Len() == 0 {
				// An empty sequence needs no quality lines.
				rec.ID, rec.Seq, rec.Qual = id, "", ""
				return true
			}
		case accumulateQuality:
			// Quality runs until it covers the sequence, so lines
			// starting with '@' or '+' are quality data here.
			s.qual.Append(line)
			if s.qual.Len() < s.seq.Len() {
				continue
			}
			if s.qual.Len() > s.seq.Len() {
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg: fmt.Sprintf("quality length %d does not match sequence length %d",
						s.qual.Len(), s.seq.Len()),
				})
				return false
			}
			rec.ID = id
			rec.Seq = s.seq.String()
			rec.Qual = s.qual.String()
			return true
		}
	}
}

// Err returns the first error encountered by Scan, or nil if scanning
// stopped at a clean end of stream.
func (s *Scanner) Err() error {
	if err := s.err.Err(); err != errEOF {
		return err
	}
	return nil
}

// Close releases the file underlying the Scanner, if the Scanner owns
// one; it is a no-op for Scanners reading a caller-owned stream. Close
// may be called more than once. Errors already reported by Err are not
// repeated here.
func (s *Scanner) Close() error {
	if s.close == nil {
		return nil
	}
	c := s.close
	s.close = nil
	return c()
}

// excerpt renders the start of line for use in an error message.
func excerpt(line []byte) string {
	const max = 40
	if len(line) > max {
		return strconv.Quote(string(line[:max])) + "..."
	}
	return strconv.Quote(string(line))
}

// PairScanner composes a pair of Scanners to scan a pair of FASTQ
// streams.
type PairScanner struct {
	r1, r2 *Scanner
	err    error
}

// NewPairScanner creates a new FASTQ pair scanner from the provided
// R1 and R2 readers.
func NewPairScanner(r1, r2 io.Reader, optList ...ScannerOpts) *PairScanner {
	return &PairScanner{
		r1: NewScanner(r1, optList...),
		r2: NewScanner(r2, optList...),
	}
}

// Scan scans the next read pair into rec1, rec2. Scan returns a boolean
// indicating whether the scan succeeded. Once Scan returns false, it
// never returns true again. Upon completion, the user should check
// the Err method to determine whether scanning stopped because of an
// error or because the end of the stream was reached.
func (p *PairScanner) Scan(rec1, rec2 *Record) bool {
	ok1 := p.r1.Scan(rec1)
	ok2 := p.r2.Scan(rec2)
	if ok1 != ok2 {
		p.err = ErrDiscordant
	}
	return ok1 && ok2
}

// Err returns the scanning error, if any. It should be checked
// after Scan returns false.
func (p *PairScanner) Err() error {
	if err := p.r1.Err(); err != nil {
		return err
	}
	if err := p.r2.Err(); err != nil {
		return err
	}
	return p.err
}
