package fastq

import (
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqio/compress"
)

// Open returns a Scanner that reads FASTQ records from the file at
// path. The path may name a local file or anything else understood by
// grailbio/base/file, such as an S3 URL. Gzip- and bzip2-compressed
// files are decompressed transparently; compression is detected from
// the file contents, not from the name. The caller must call Close to
// release the file.
func Open(path string, optList ...ScannerOpts) (*Scanner, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	r, err := compress.NewReader(f.Reader(ctx))
	if err != nil {
		_ = f.Close(ctx)
		return nil, err
	}
	sc := NewScanner(r, optList...)
	sc.close = func() error { return f.Close(vcontext.Background()) }
	return sc, nil
}

// NewStdinScanner returns a Scanner that reads FASTQ records from
// standard input, with the same content-based decompression as Open.
// Close does not close standard input.
func NewStdinScanner(optList ...ScannerOpts) (*Scanner, error) {
	r, err := compress.NewReader(os.Stdin)
	if err != nil {
		return nil, err
	}
	return NewScanner(r, optList...), nil
}

// ReadAll reads records from r until end of input and returns them in
// input order. The read is all or nothing: any error discards the
// records read so far. As with NewScanner, the caller controls
// compression.
func ReadAll(r io.Reader, optList ...ScannerOpts) ([]Record, error) {
	return readAll(NewScanner(r, optList...))
}

// ReadFile reads every record from the file at path, handling paths and
// compression as Open does.
func ReadFile(path string, optList ...ScannerOpts) ([]Record, error) {
	sc, err := Open(path, optList...)
	if err != nil {
		return nil, err
	}
	e := errors.Once{}
	recs, err := readAll(sc)
	e.Set(err)
	e.Set(sc.Close())
	if e.Err() != nil {
		return nil, e.Err()
	}
	return recs, nil
}

func readAll(sc *Scanner) ([]Record, error) {
	var recs []Record
	var rec Record
	for sc.Scan(&rec) {
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
