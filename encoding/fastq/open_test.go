package fastq_test

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/grailbio/seqio/encoding/fastq"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const openTestData = "@r1\nACGT\n+\nIIII\n@r2 desc\nGGCC\n+r2 desc\nFFFF\n"

var openTestWant = []fastq.Record{
	{ID: "r1", Seq: "ACGT", Qual: "IIII"},
	{ID: "r2 desc", Seq: "GGCC", Qual: "FFFF"},
}

func gzipBytes(t *testing.T, s string) []byte {
	buf := bytes.Buffer{}
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(s))
	assert.NoError(t, err)
	assert.NoError(t, gz.Close())
	return buf.Bytes()
}

func bzip2Bytes(t *testing.T, s string) []byte {
	buf := bytes.Buffer{}
	bz, err := bzip2.NewWriter(&buf, nil)
	assert.NoError(t, err)
	_, err = bz.Write([]byte(s))
	assert.NoError(t, err)
	assert.NoError(t, bz.Close())
	return buf.Bytes()
}

func TestReadFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	for _, test := range []struct {
		name string
		data []byte
	}{
		{"plain", []byte(openTestData)},
		{"gzip", gzipBytes(t, openTestData)},
		{"bzip2", bzip2Bytes(t, openTestData)},
	} {
		t.Run(test.name, func(t *testing.T) {
			path := tempDir + "/" + test.name + ".fastq"
			assert.NoError(t, ioutil.WriteFile(path, test.data, 0600))
			recs, err := fastq.ReadFile(path)
			assert.NoError(t, err)
			expect.EQ(t, recs, openTestWant)
		})
	}
}

func TestOpenScanClose(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := tempDir + "/reads.fastq.gz"
	assert.NoError(t, ioutil.WriteFile(path, gzipBytes(t, openTestData), 0600))
	sc, err := fastq.Open(path)
	assert.NoError(t, err)
	var recs []fastq.Record
	var rec fastq.Record
	for sc.Scan(&rec) {
		recs = append(recs, rec)
	}
	assert.NoError(t, sc.Err())
	expect.EQ(t, recs, openTestWant)
	assert.NoError(t, sc.Close())
	// Close is idempotent.
	assert.NoError(t, sc.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := fastq.Open("/no/such/file.fastq")
	assert.NotNil(t, err)
}

func TestStdinScanner(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	_, err = w.Write(gzipBytes(t, openTestData))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	saved := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = saved }()
	sc, err := fastq.NewStdinScanner()
	assert.NoError(t, err)
	var recs []fastq.Record
	var rec fastq.Record
	for sc.Scan(&rec) {
		recs = append(recs, rec)
	}
	assert.NoError(t, sc.Err())
	expect.EQ(t, recs, openTestWant)
	assert.NoError(t, sc.Close())
}
