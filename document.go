package piecetable

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/piecetable/buffer"
	"github.com/npillmayer/piecetable/ranktree"
	"github.com/npillmayer/piecetable/textfile"
)

// Document is an editable text, stored as a piece table.
//
// Positions are grapheme cluster indices in [0, Len()], line numbers are in
// [0, LineCount()). A document holding n lines contains n-1 newlines; a text
// ending with a newline thus has an empty last line.
//
//	Operation          |  Cost
//	-------------------+----------------------------------------
//	Insert, Delete     |  O(log n) + O(pieces touched)
//	line → position    |  O(log n)
//	Line(n)            |  O(log n) + O(length of line)
//	String             |  O(size of text)
//
// with n being the number of pieces.
//
// A document is not safe for concurrent edits. Change notifications are
// started on the first call to Subscribe; only then does a document hold a
// background goroutine, until Close is called.
type Document struct {
	conf    Config
	tree    *ranktree.Tree[node]
	scratch *buffer.Buffer // buffer of the latest insert, may absorb follow-ups
	mu      sync.Mutex     // guards cast and closed
	cast    *caster.Caster // broadcaster for change notifications, created lazily
	closed  bool
}

// New creates an empty document.
func New(conf Config) (*Document, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	tree, err := ranktree.NewSequence(conf.Alpha, pieceDimensions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Document{
		conf: conf,
		tree: tree,
	}, nil
}

// FromString creates a document with default configuration from a string.
func FromString(text string) *Document {
	doc, err := New(DefaultConfig())
	assert(err == nil, "piecetable: default configuration is invalid")
	doc.append(buffer.Split(text, doc.conf.BufferCapacity))
	return doc
}

// Open loads a document from a text file, using the default configuration.
func Open(path string) (*Document, error) {
	return OpenWithConfig(path, DefaultConfig())
}

// OpenWithConfig loads a document from a text file. Content is chunked into
// buffers of at most conf.BufferCapacity bytes, with one piece per buffer.
//
// Failure to read the file is reported as ErrIO, wrapping the cause. No
// document is created in this case.
func OpenWithConfig(path string, conf Config) (*Document, error) {
	doc, err := New(conf)
	if err != nil {
		return nil, err
	}
	bufs, err := textfile.Load(path, conf.BufferCapacity)
	if err != nil {
		tracer().Errorf("piecetable: cannot open %q: %v", path, err)
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	doc.append(bufs)
	tracer().Infof("piecetable: opened %q with %d pieces", path, doc.tree.Len())
	return doc, nil
}

// append adds one piece per buffer at the end of the document.
func (doc *Document) append(bufs []*buffer.Buffer) {
	for _, buf := range bufs {
		if buf.GraphemeCount() == 0 {
			continue
		}
		err := doc.tree.InsertAt(doc.tree.Len(), wholeBuffer(buf))
		assert(err == nil, "piecetable: cannot append piece")
	}
}

// Config returns the configuration of the document.
func (doc *Document) Config() Config {
	return doc.conf
}

// Len returns the length of the document in grapheme clusters.
func (doc *Document) Len() int {
	return doc.tree.Sum(dimGraphemes)
}

// Size returns the length of the document in bytes.
func (doc *Document) Size() int {
	return doc.tree.Sum(dimBytes)
}

// LineCount returns the number of lines, which is the number of newlines
// plus one.
func (doc *Document) LineCount() int {
	return doc.tree.Sum(dimLines) + 1
}

// String returns the complete document text. This may be an expensive
// operation, as it will collect all pieces into a single string.
func (doc *Document) String() string {
	var sb strings.Builder
	sb.Grow(doc.Size())
	doc.tree.ForEachItem(func(n node) bool {
		sb.WriteString(n.text())
		return true
	})
	return sb.String()
}

// Text returns the text between grapheme positions [start, end).
func (doc *Document) Text(start, end int) (string, error) {
	if start < 0 || start > end || end > doc.Len() {
		return "", fmt.Errorf("%w: range [%d, %d) of %d", ErrIndexOutOfBounds, start, end, doc.Len())
	}
	if start == end {
		return "", nil
	}
	idx, residual, _, ok := doc.tree.Seek(dimGraphemes, start)
	assert(ok, "piecetable: position not covered by a piece")
	var sb strings.Builder
	remaining := end - start
	for _, n := range doc.tree.From(idx) {
		if remaining == 0 {
			break
		}
		p := n.piece
		s := p.start + residual
		e := min(p.end, s+remaining)
		text, err := p.buf.Slice(s, e)
		assert(err == nil, "piecetable: piece spans beyond its buffer")
		sb.WriteString(text)
		remaining -= e - s
		residual = 0
	}
	return sb.String(), nil
}

// Stats describes the internal layout of a document.
type Stats struct {
	Pieces  int // number of pieces
	Buffers int // number of distinct buffers referenced by pieces
	Height  int // height of the piece tree
	MaxSize int // high-water mark of pieces since the last full tree rebuild
}

// Stats returns statistics on the pieces of a document. Counting buffers
// visits every piece.
func (doc *Document) Stats() Stats {
	bufs := make(map[*buffer.Buffer]struct{})
	doc.tree.ForEachItem(func(n node) bool {
		bufs[n.piece.buf] = struct{}{}
		return true
	})
	return Stats{
		Pieces:  doc.tree.Len(),
		Buffers: len(bufs),
		Height:  doc.tree.Height(),
		MaxSize: doc.tree.MaxSize(),
	}
}
