package fasta_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/grailbio/seqio/encoding/fasta"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []fasta.Record
	}{
		{
			"two records",
			">seq1 first sequence\nATCG\nGCTA\n>seq2 second sequence\nGGCC\n",
			[]fasta.Record{
				{ID: "seq1 first sequence", Seq: "ATCGGCTA"},
				{ID: "seq2 second sequence", Seq: "GGCC"},
			},
		},
		{"empty input", "", nil},
		{"blank lines only", "\n\n\n", nil},
		{"header only", ">only\n", []fasta.Record{{ID: "only", Seq: ""}}},
		{"header only, no terminator", ">only", []fasta.Record{{ID: "only", Seq: ""}}},
		{"no trailing terminator", ">a\nACGT", []fasta.Record{{ID: "a", Seq: "ACGT"}}},
		{
			"empty record between records",
			">a\nAC\n>empty\n>b\nGT\n",
			[]fasta.Record{{ID: "a", Seq: "AC"}, {ID: "empty", Seq: ""}, {ID: "b", Seq: "GT"}},
		},
		{
			"blank lines between and inside records",
			"\n\n>a\nAC\n\nGT\n\n>b\nTT\n\n",
			[]fasta.Record{{ID: "a", Seq: "ACGT"}, {ID: "b", Seq: "TT"}},
		},
		{"empty id", ">\nACGT\n", []fasta.Record{{ID: "", Seq: "ACGT"}}},
		{"id keeps surrounding spaces", ">  chr1 x \nA\n", []fasta.Record{{ID: "  chr1 x ", Seq: "A"}}},
		{
			// Only truly empty lines are blank; lines of spaces are
			// sequence data and are appended verbatim.
			"whitespace lines are data",
			">a\nAC\n  \nGT\n",
			[]fasta.Record{{ID: "a", Seq: "AC  GT"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := fasta.ReadAll(strings.NewReader(test.in))
			assert.NoError(t, err)
			expect.EQ(t, got, test.want)
		})
	}
}

func TestCRLF(t *testing.T) {
	lf := ">a b\nACGT\nGG\n>c\nTT\n"
	crlf := strings.Replace(lf, "\n", "\r\n", -1)
	fromLF, err := fasta.ReadAll(strings.NewReader(lf))
	assert.NoError(t, err)
	fromCRLF, err := fasta.ReadAll(strings.NewReader(crlf))
	assert.NoError(t, err)
	expect.EQ(t, fromCRLF, fromLF)
}

func TestLazyMatchesEager(t *testing.T) {
	in := ">seq1 first sequence\nATCG\nGCTA\n>seq2\nGGCC\n>last\n"
	eager, err := fasta.ReadAll(strings.NewReader(in))
	assert.NoError(t, err)

	sc := fasta.NewScanner(strings.NewReader(in))
	var lazy []fasta.Record
	var rec fasta.Record
	for sc.Scan(&rec) {
		lazy = append(lazy, rec)
	}
	assert.NoError(t, sc.Err())
	assert.NoError(t, sc.Close())
	expect.EQ(t, lazy, eager)
}

func TestMissingHeader(t *testing.T) {
	sc := fasta.NewScanner(strings.NewReader("ATCG\n>a\nGG\n"))
	var rec fasta.Record
	// Once Scan fails it keeps failing, and Err stays stable.
	for i := 0; i < 3; i++ {
		if sc.Scan(&rec) {
			t.Fatal("Scan succeeded on input without a header")
		}
	}
	err := sc.Err()
	assert.NotNil(t, err)
	fe, ok := err.(*fasta.FormatError)
	assert.True(t, ok)
	expect.EQ(t, fe.Line, 1)
	assert.HasSubstr(t, err.Error(), "expected a '>' header")
	expect.EQ(t, sc.Err(), err)
}

func TestMissingHeaderAfterBlanks(t *testing.T) {
	sc := fasta.NewScanner(strings.NewReader("\n\nATCG\n"))
	var rec fasta.Record
	if sc.Scan(&rec) {
		t.Fatal("Scan succeeded on input without a header")
	}
	fe, ok := sc.Err().(*fasta.FormatError)
	assert.True(t, ok)
	expect.EQ(t, fe.Line, 3)
}

func TestReadErrorDiscardsRecord(t *testing.T) {
	// TimeoutReader fails on its second read, so the error arrives while
	// the first record is still accumulating; no partial record may
	// surface.
	recs, err := fasta.ReadAll(iotest.TimeoutReader(strings.NewReader(">a\nACGT\n")))
	assert.NotNil(t, err)
	assert.Nil(t, recs)
	assert.HasSubstr(t, err.Error(), "couldn't read FASTA data")
}

func TestSmallBuffer(t *testing.T) {
	long := strings.Repeat("ACGT", 5000)
	in := ">a\n" + long + "\n" + long + "\n>b\n" + long + "\n"
	recs, err := fasta.ReadAll(strings.NewReader(in), fasta.ScannerOpts{BufferSize: 1})
	assert.NoError(t, err)
	assert.EQ(t, len(recs), 2)
	expect.EQ(t, recs[0], fasta.Record{ID: "a", Seq: long + long})
	expect.EQ(t, recs[1], fasta.Record{ID: "b", Seq: long})
}

func TestWriter(t *testing.T) {
	recs := []fasta.Record{
		{ID: "seq1 first sequence", Seq: "ATCGGCTA"},
		{ID: "empty", Seq: ""},
		{ID: "seq2", Seq: "GGCC"},
	}
	b := new(bytes.Buffer)
	w := fasta.NewWriter(b)
	for i := range recs {
		assert.NoError(t, w.Write(&recs[i]))
	}
	got, err := fasta.ReadAll(b)
	assert.NoError(t, err)
	expect.EQ(t, got, recs)
}
