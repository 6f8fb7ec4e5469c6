package fastq

import (
	"context"
	"io"
	"math/rand"

	"github.com/grailbio/base/file"
	"github.com/grailbio/seqio/compress"
	"github.com/pkg/errors"
)

// Downsample copies a random subset of the read pairs in the files at
// r1Path and r2Path to r1Out and r2Out. Pairs are selected for
// inclusion at the given sampling rate; rates above 1 select every
// pair. Selection is deterministic for a given pair of inputs. The
// inputs may be gzip- or bzip2-compressed; records are written in
// four-line form regardless of the input layout.
func Downsample(ctx context.Context, rate float64, r1Path, r2Path string, r1Out, r2Out io.Writer) error {
	if rate < 0.0 {
		return errors.New("rate must be non-negative")
	}
	return downsample(ctx, rate, r1Path, r2Path, r1Out, r2Out)
}

// DownsampleToCount is like Downsample, with the rate chosen to yield
// approximately count read pairs in the output. The R1 input is read
// twice, first to count the pairs it holds, so r1Path must name a
// re-openable source.
func DownsampleToCount(ctx context.Context, count int64, r1Path, r2Path string, r1Out, r2Out io.Writer) error {
	if count <= 0 {
		return errors.New("count must be positive")
	}
	total, err := countRecords(ctx, r1Path)
	if err != nil {
		return errors.Wrap(err, "error counting reads in R1 input")
	}
	rate := 1.0
	if count < total {
		rate = float64(count) / float64(total)
	}
	return downsample(ctx, rate, r1Path, r2Path, r1Out, r2Out)
}

func downsample(ctx context.Context, rate float64, r1Path, r2Path string, r1Out, r2Out io.Writer) (err error) {
	in1, err := file.Open(ctx, r1Path)
	if err != nil {
		return errors.Wrap(err, "error opening R1 input")
	}
	defer func() {
		if cerr := in1.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	in2, err := file.Open(ctx, r2Path)
	if err != nil {
		return errors.Wrap(err, "error opening R2 input")
	}
	defer func() {
		if cerr := in2.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	ur1, err := compress.NewReader(in1.Reader(ctx))
	if err != nil {
		return errors.Wrap(err, "error reading R1 input")
	}
	ur2, err := compress.NewReader(in2.Reader(ctx))
	if err != nil {
		return errors.Wrap(err, "error reading R2 input")
	}
	random := rand.New(rand.NewSource(0))
	r1Scanner := NewScanner(ur1)
	r2Scanner := NewScanner(ur2)
	r1Writer := NewWriter(r1Out)
	r2Writer := NewWriter(r2Out)
	var rec1, rec2 Record
	for {
		ok1 := r1Scanner.Scan(&rec1)
		ok2 := r2Scanner.Scan(&rec2)
		if !ok1 || !ok2 {
			if serr := r1Scanner.Err(); serr != nil {
				return errors.Wrap(serr, "error reading R1 input")
			}
			if serr := r2Scanner.Err(); serr != nil {
				return errors.Wrap(serr, "error reading R2 input")
			}
			if ok1 {
				return errors.New("more reads in R1 input than in R2 input")
			}
			if ok2 {
				return errors.New("more reads in R2 input than in R1 input")
			}
			// Both inputs ended after the same number of pairs.
			return nil
		}
		if random.Float64() < rate {
			if werr := r1Writer.Write(&rec1); werr != nil {
				return errors.Wrap(werr, "error writing R1 output")
			}
			if werr := r2Writer.Write(&rec2); werr != nil {
				return errors.Wrap(werr, "error writing R2 output")
			}
		}
	}
}

func countRecords(ctx context.Context, path string) (n int64, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	r, err := compress.NewReader(in.Reader(ctx))
	if err != nil {
		return 0, err
	}
	sc := NewScanner(r)
	var rec Record
	for sc.Scan(&rec) {
		n++
	}
	return n, sc.Err()
}
