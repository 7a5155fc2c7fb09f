package piecetable

import "fmt"

// Cursor navigates a document by grapheme clusters.
//
// A cursor holds an absolute grapheme position. It stays usable across edits,
// but is not adjusted by them.
type Cursor struct {
	doc *Document
	pos int
}

// NewCursor creates a cursor at the start of the document.
func (doc *Document) NewCursor() *Cursor {
	return &Cursor{doc: doc}
}

// Pos returns the current cursor position.
func (c *Cursor) Pos() int {
	if c == nil {
		return 0
	}
	return c.pos
}

// Seek moves the cursor to grapheme position pos, 0 ≤ pos ≤ Len().
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.doc.Len() {
		return fmt.Errorf("%w: seek to %d of %d", ErrIndexOutOfBounds, pos, c.doc.Len())
	}
	c.pos = pos
	return nil
}

// SeekLine moves the cursor to the start of line n.
func (c *Cursor) SeekLine(n int) error {
	pos, ok := c.doc.LineStart(n)
	if !ok {
		return fmt.Errorf("%w: line %d of %d", ErrIndexOutOfBounds, n, c.doc.LineCount())
	}
	c.pos = pos
	return nil
}

// Next returns the grapheme cluster at the current cursor position and
// advances by one cluster.
//
// If the cursor is at end-of-document, ok is false.
func (c *Cursor) Next() (cluster string, ok bool) {
	if c == nil || c.pos >= c.doc.Len() {
		return "", false
	}
	cluster = c.doc.clusterAt(c.pos)
	c.pos++
	return cluster, true
}

// Prev returns the grapheme cluster before the current cursor position and
// moves back by one cluster.
//
// If the cursor is at start-of-document, ok is false.
func (c *Cursor) Prev() (cluster string, ok bool) {
	if c == nil || c.pos == 0 {
		return "", false
	}
	c.pos = min(c.pos, c.doc.Len()) - 1
	return c.doc.clusterAt(c.pos), true
}

// clusterAt returns the cluster at position pos, 0 ≤ pos < Len().
func (doc *Document) clusterAt(pos int) string {
	_, residual, nd, ok := doc.tree.Seek(dimGraphemes, pos)
	assert(ok, "piecetable: position not covered by a piece")
	p := nd.piece
	s, err := p.buf.Slice(p.start+residual, p.start+residual+1)
	assert(err == nil, "piecetable: piece spans beyond its buffer")
	return s
}
