/*
Package textfile loads UTF-8 text files as a sequence of grapheme buffers.

Loading is synchronous: the file is stat-ed, read in one go and chunked into
buffers of bounded capacity, cut on grapheme cluster boundaries. Files which
are not regular files or do not contain valid UTF-8 are rejected before any
buffer is built.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}
