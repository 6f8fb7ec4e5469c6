// Package fasta provides streaming readers and a writer for FASTA
// sequence data. A FASTA stream holds zero or more records, each a
// header line starting with '>' followed by any number of sequence
// lines that are concatenated to form the record's sequence:
//
// >chr7 some free text
// ACGTAC
// GAGGAC
// >chr8
// ACGT
//
// The header text after '>' is kept whole, spaces included. Blank lines
// are ignored anywhere. LF and CRLF line endings are both accepted. No
// alphabet validation is performed; sequence lines are appended as-is.
//
// Readers consume their input in a single forward pass and work on any
// stream, including pipes; there is no seeking and no index support.
package fasta

import (
	"fmt"
	"io"
	"strconv"

	baseerrors "github.com/grailbio/base/errors"
	"github.com/grailbio/seqio/lineio"
	"github.com/pkg/errors"
)

// A Record is a single FASTA entry.
type Record struct {
	// ID is the header line with the leading '>' and the line terminator
	// stripped. It may contain spaces.
	ID string
	// Seq is the concatenation of the record's sequence lines, with no
	// separators inserted. It may be empty.
	Seq string
}

// A FormatError reports a structural violation of the FASTA grammar and
// the 1-based input line at which it was found.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("fasta: line %d: %s", e.Line, e.Msg)
}

var errEOF = errors.New("eof")

// scanState is the assembler's position within a record.
type scanState int

const (
	expectHeader scanState = iota
	accumulateSequence
)

// Scanner reads FASTA records from a stream, one Scan call per record.
// Scanners are not threadsafe.
type Scanner struct {
	lr    *lineio.Reader
	seq   lineio.Buffer
	state scanState
	err   baseerrors.Once
	close func() error
}

// ScannerOpts defines options accepted by the Scanner constructors.
type ScannerOpts struct {
	// BufferSize is the initial size in bytes of the line buffer, a hint
	// to be tuned for the expected sequence line length: small for short
	// reads, large for whole contigs. Zero selects a 64 KiB default. The
	// buffer grows as needed regardless of the hint.
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

// NewScanner returns a Scanner that reads FASTA records from r. The
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
	var id string
	for {
		line, err := s.lr.Next()
		if err == io.EOF {
			if s.state == accumulateSequence {
				// A header with no sequence lines is still a record,
				// with an empty sequence.
				rec.ID = id
				rec.Seq = s.seq.String()
				return true
			}
			s.err.Set(errEOF)
			return false
		}
		if err != nil {
			s.err.Set(errors.Wrap(err, "couldn't read FASTA data"))
			return false
		}
		if len(line) == 0 {
			continue
		}
		switch s.state {
		case expectHeader:
			if line[0] != '>' {
				s.err.Set(&FormatError{
					Line: s.lr.Line(),
					Msg:  fmt.Sprintf("expected a '>' header, found %s", excerpt(line)),
				})
				return false
			}
			id = string(line[1:])
			s.state = accumulateSequence
		case accumulateSequence:
			if line[0] == '>' {
				// The next record starts here; hand the header back.
				s.lr.Unread()
				rec.ID = id
				rec.Seq = s.seq.String()
				return true
			}
			s.seq.Append(line)
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
