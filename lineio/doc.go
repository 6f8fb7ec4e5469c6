// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package lineio provides line-oriented reading on top of an io.Reader,
// with a reusable growable buffer and one-line pushback. It is the
// transport layer under the fasta and fastq codecs, which need to hand a
// just-read line back to the reader when it turns out to begin the next
// record.
package lineio
