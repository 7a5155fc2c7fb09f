package piecetable

import (
	"fmt"

	"github.com/npillmayer/piecetable/buffer"
)

// absorbLimit is the maximum size in bytes of a piece which will be re-built
// to take in text typed right after it.
const absorbLimit = 512

// Insert inserts text at grapheme position pos, 0 ≤ pos ≤ Len().
//
// The text is stored in newly allocated buffers. If pos falls inside a piece,
// the piece is split in two. Short text continuing the latest insert is
// merged into the piece of that insert, so typing does not create a piece per
// keystroke. Insert either fully succeeds or leaves the document unchanged.
func (doc *Document) Insert(pos int, text string) error {
	if pos < 0 || pos > doc.Len() {
		tracer().Errorf("piecetable: insert position %d out of bounds", pos)
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfBounds, pos, doc.Len())
	}
	if text == "" {
		return nil
	}
	var fresh []node
	for _, buf := range buffer.Split(text, doc.conf.BufferCapacity) {
		fresh = append(fresh, wholeBuffer(buf))
	}
	inserted := 0
	for _, n := range fresh {
		inserted += n.length()
	}
	// from here on nothing can fail
	at := doc.tree.Len()
	if pos < doc.Len() {
		idx, residual, n, ok := doc.tree.Seek(dimGraphemes, pos)
		assert(ok, "piecetable: position not covered by a piece")
		at = idx
		if residual > 0 {
			left, right := n.split(residual)
			doc.tree.ReplaceAt(idx, left)
			doc.insertNodes(idx+1, right)
			at = idx + 1
		}
	}
	if !doc.absorb(at, text, inserted) {
		doc.insertNodes(at, fresh...)
		doc.scratch = fresh[len(fresh)-1].piece.buf
	}
	tracer().Debugf("piecetable: inserted %d graphemes at %d", inserted, pos)
	doc.publish(Change{Kind: Inserted, Start: pos, End: pos + inserted, Text: text})
	return nil
}

// Delete removes the graphemes in [start, end), 0 ≤ start ≤ end ≤ Len().
//
// Pieces completely inside the range are dropped, pieces overlapping a range
// boundary are trimmed. Neighbours which end up as adjacent views into the
// same buffer are merged into a single piece. Delete either fully succeeds or
// leaves the document unchanged.
func (doc *Document) Delete(start, end int) error {
	if start < 0 || start > end || end > doc.Len() {
		tracer().Errorf("piecetable: delete range [%d, %d) out of bounds", start, end)
		return fmt.Errorf("%w: delete [%d, %d) of %d", ErrIndexOutOfBounds, start, end, doc.Len())
	}
	if start == end {
		return nil
	}
	first, rs, fn, ok := doc.tree.Seek(dimGraphemes, start)
	assert(ok, "piecetable: range start not covered by a piece")
	last, re, ln, ok := doc.tree.Seek(dimGraphemes, end-1)
	assert(ok, "piecetable: range end not covered by a piece")
	re++ // exclusive end within the last piece
	var remainders []node
	if rs > 0 {
		remainders = append(remainders, fn.head(rs))
	}
	if re < ln.length() {
		remainders = append(remainders, ln.tail(re))
	}
	// overwrite the first touched pieces, then drop or add as needed
	touched := last - first + 1
	for k, n := range remainders {
		if k < touched {
			doc.tree.ReplaceAt(first+k, n)
		} else {
			doc.insertNodes(first+k, n)
		}
	}
	for k := len(remainders); k < touched; k++ {
		_, ok := doc.tree.DeleteAt(first + len(remainders))
		assert(ok, "piecetable: cannot drop piece")
	}
	for i := first + len(remainders) - 1; i >= first-1; i-- {
		doc.coalesce(i)
	}
	tracer().Debugf("piecetable: deleted [%d, %d), %d pieces touched", start, end, touched)
	doc.publish(Change{Kind: Deleted, Start: start, End: end})
	return nil
}

// absorb replaces the piece before tree position at by a new buffer holding
// the piece's text followed by text. This is done only for pieces cut from the
// buffer of the latest insert, as long as the result stays small and no
// grapheme cluster boundary moves.
func (doc *Document) absorb(at int, text string, inserted int) bool {
	if at == 0 || doc.scratch == nil {
		return false
	}
	prev, ok := doc.tree.Get(at - 1)
	if !ok || prev.piece.buf != doc.scratch {
		return false
	}
	if prev.piece.bend-prev.piece.bstart+len(text) > min(absorbLimit, doc.conf.BufferCapacity) {
		return false
	}
	buf := buffer.New(prev.text() + text)
	if buf.GraphemeCount() != prev.length()+inserted {
		return false
	}
	doc.tree.ReplaceAt(at-1, wholeBuffer(buf))
	doc.scratch = buf
	return true
}

// coalesce merges the pieces at tree positions i and i+1 if they are
// adjacent views into the same buffer.
func (doc *Document) coalesce(i int) {
	if i < 0 || i+1 >= doc.tree.Len() {
		return
	}
	a, _ := doc.tree.Get(i)
	b, _ := doc.tree.Get(i + 1)
	if !a.continuedBy(b) {
		return
	}
	doc.tree.ReplaceAt(i, a.join(b))
	_, ok := doc.tree.DeleteAt(i + 1)
	assert(ok, "piecetable: cannot drop merged piece")
}

// insertNodes inserts nodes at consecutive tree positions starting at at.
func (doc *Document) insertNodes(at int, nodes ...node) {
	for k, n := range nodes {
		err := doc.tree.InsertAt(at+k, n)
		assert(err == nil, "piecetable: cannot insert piece")
	}
}
