// Copyright 2019 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package compress detects gzip and bzip2 streams by their magic bytes
// and wraps them in the matching decompressor. Detection peeks through a
// buffered reader rather than seeking, so it works on pipes and standard
// input, and on files regardless of their extension.
package compress
