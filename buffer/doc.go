/*
Package buffer provides immutable text buffers with a compact grapheme-cluster
index.

A Buffer holds at most MaxSize bytes of text. Cursor positions in an editor
are counted in grapheme clusters, while text is stored as bytes, so a buffer
translates between both in either direction. Instead of a table with one
entry per cluster, a buffer stores two kinds of records:

  - an AsciiRange covers a run of two or more single-byte ASCII clusters in
    O(1) space, however long the run is,
  - a UnicodeRange lists the byte offsets of all other clusters, grouped by
    the number of ASCII ranges preceding them, so that neighbouring clusters
    share one record.

Most edited text consists of long ASCII runs, which keeps the index small.
Segmentation follows the Unicode default rules (UAX #29) as implemented by
github.com/rivo/uniseg.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package buffer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
