/*
Package piecetable is the text-storage core of a terminal text editor.

Piece Tables

A Document represents the content of an open file as a sequence of pieces.
Each piece is a view into an immutable grapheme buffer. Buffers are never
changed: inserting text allocates a new buffer for the inserted content and
splits the piece at the insertion point, deleting text trims or drops pieces.
The document text is the concatenation of its pieces.

Pieces are held in a rank tree (package ranktree), which aggregates three
measures over every subtree: grapheme clusters, newlines and bytes. This gives
O(log n) translation between

  - grapheme positions and pieces (for edits),
  - line numbers and pieces (for line access),
  - byte offsets and pieces (for readers),

without rescanning the document. Positions are 0-based grapheme cluster
indices, line numbers are 0-based as well.

Grapheme clusters are segmented per buffer. Text is not re-segmented across
piece boundaries, i.e. inserting a combining mark right behind a base
character yields two clusters.

A Document is not safe for concurrent use. Collaborators may observe edits
by subscribing to a document; subscribers receive immutable Change values.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Please refer to the License file in the repository root.

*/
package piecetable

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'piecetable'
func tracer() tracing.Trace {
	return tracing.Select("piecetable")
}

// DocumentError is an error type for the piecetable module
type DocumentError string

func (e DocumentError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a document position or range
// exceeds the length of the document.
const ErrIndexOutOfBounds = DocumentError("piecetable: index out of bounds")

// ErrInvalidConfig is flagged for configuration values out of range.
const ErrInvalidConfig = DocumentError("piecetable: invalid configuration")

// ErrIO is flagged if a document cannot be loaded from a file. It wraps the
// underlying error.
const ErrIO = DocumentError("piecetable: I/O error")

// ErrClosed is flagged when subscribing to a closed document.
const ErrClosed = DocumentError("piecetable: document closed")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
