package piecetable

import (
	"fmt"

	"github.com/npillmayer/piecetable/buffer"
	"github.com/npillmayer/piecetable/ranktree"
)

// piece is a view into a buffer, spanning graphemes [start, end). The byte
// span of the view is cached.
type piece struct {
	buf        *buffer.Buffer
	start, end int
	bstart     int
	bend       int
}

// node is the payload of the piece tree.
type node struct {
	lines int // number of newlines in piece
	piece piece
}

// Dimensions of the piece tree.
const (
	dimGraphemes = iota
	dimLines
	dimBytes
)

func pieceDimensions() []ranktree.Dimension[node] {
	return []ranktree.Dimension[node]{
		dimGraphemes: ranktree.DimensionFunc[node](func(n node) int { return n.length() }),
		dimLines:     ranktree.DimensionFunc[node](func(n node) int { return n.lines }),
		dimBytes:     ranktree.DimensionFunc[node](func(n node) int { return n.piece.bend - n.piece.bstart }),
	}
}

// newNode creates a node for the grapheme span [start, end) of buf. The span
// must be valid.
func newNode(buf *buffer.Buffer, start, end int) node {
	bs, be, err := buf.ByteRange(start, end)
	assert(err == nil, "piecetable: piece spans beyond its buffer")
	lines, _ := buf.NewlinesIn(start, end)
	return node{
		lines: lines,
		piece: piece{buf: buf, start: start, end: end, bstart: bs, bend: be},
	}
}

// wholeBuffer creates a node spanning all of buf.
func wholeBuffer(buf *buffer.Buffer) node {
	return newNode(buf, 0, buf.GraphemeCount())
}

func (n node) length() int {
	return n.piece.end - n.piece.start
}

// text returns the text of the piece.
func (n node) text() string {
	return n.piece.buf.String()[n.piece.bstart:n.piece.bend]
}

// split cuts a node at grapheme offset at, 0 < at < n.length().
func (n node) split(at int) (node, node) {
	assert(at > 0 && at < n.length(), "piecetable: split point outside of piece")
	p := n.piece
	return newNode(p.buf, p.start, p.start+at), newNode(p.buf, p.start+at, p.end)
}

// head returns the first at graphemes of a node.
func (n node) head(at int) node {
	return newNode(n.piece.buf, n.piece.start, n.piece.start+at)
}

// tail returns a node without its first at graphemes.
func (n node) tail(at int) node {
	return newNode(n.piece.buf, n.piece.start+at, n.piece.end)
}

// continuedBy reports whether m starts in the same buffer where n ends.
func (n node) continuedBy(m node) bool {
	return n.piece.buf == m.piece.buf && n.piece.end == m.piece.start
}

// join concatenates n with a node m continuing it.
func (n node) join(m node) node {
	return node{
		lines: n.lines + m.lines,
		piece: piece{
			buf:    n.piece.buf,
			start:  n.piece.start,
			end:    m.piece.end,
			bstart: n.piece.bstart,
			bend:   m.piece.bend,
		},
	}
}

// nthNewline returns the grapheme offset of the k-th newline within the
// piece, relative to the piece start.
func (n node) nthNewline(k int) (int, bool) {
	p := n.piece
	off, ok := p.buf.NthNewline(p.start, p.end, k)
	if !ok {
		return 0, false
	}
	g, err := p.buf.ByteOffsetToGrapheme(off)
	if err != nil {
		return 0, false
	}
	return g - p.start, true
}

func (n node) String() string {
	return fmt.Sprintf("[%d,%d)#%d", n.piece.start, n.piece.end, n.lines)
}
