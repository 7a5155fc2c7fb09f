package piecetable

import (
	"fmt"
	"strings"
)

// lineToPiece locates the piece holding newline k (0-based) of the document.
// It returns the position of the piece in the tree and the number of
// newlines in that piece preceding newline k.
//
// The descent is keyed on the accumulated newline counts of left subtrees:
// k < left goes left, k < left + lines stops at this piece, anything else
// subtracts and goes right.
func (doc *Document) lineToPiece(k int) (idx int, residual int, n node, ok bool) {
	return doc.tree.Seek(dimLines, k)
}

// LineStart returns the grapheme position of the first cluster of line n.
// It reports false if n is not in [0, LineCount()).
func (doc *Document) LineStart(n int) (int, bool) {
	if n < 0 || n >= doc.LineCount() {
		return 0, false
	}
	if n == 0 {
		return 0, true
	}
	idx, residual, nd, ok := doc.lineToPiece(n - 1)
	assert(ok, "piecetable: newline not covered by a piece")
	g, ok := nd.nthNewline(residual)
	assert(ok, "piecetable: piece newline count out of sync with its buffer")
	return doc.tree.PrefixSum(dimGraphemes, idx) + g + 1, true
}

// Line returns the text of line n, without its line terminator ("\n" or
// "\r\n"). It reports false if n is not in [0, LineCount()).
func (doc *Document) Line(n int) (string, bool) {
	if n < 0 || n >= doc.LineCount() {
		return "", false
	}
	idx, boff := 0, 0 // piece and byte offset within the piece where line n starts
	if n > 0 {
		var nd node
		var residual int
		var ok bool
		idx, residual, nd, ok = doc.lineToPiece(n - 1)
		assert(ok, "piecetable: newline not covered by a piece")
		p := nd.piece
		off, found := p.buf.NthNewline(p.start, p.end, residual)
		assert(found, "piecetable: piece newline count out of sync with its buffer")
		boff = off + 1 - p.bstart
	}
	var sb strings.Builder
	for _, nd := range doc.tree.From(idx) {
		text := nd.text()[boff:]
		boff = 0
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			sb.WriteString(text[:i])
			break
		}
		sb.WriteString(text)
	}
	return strings.TrimSuffix(sb.String(), "\r"), true
}

// LineColumn translates a grapheme position into a line number and the
// grapheme offset within that line.
func (doc *Document) LineColumn(pos int) (line, col int, err error) {
	if pos < 0 || pos > doc.Len() {
		return 0, 0, fmt.Errorf("%w: position %d of %d", ErrIndexOutOfBounds, pos, doc.Len())
	}
	if pos == doc.Len() {
		line = doc.LineCount() - 1
	} else {
		idx, residual, nd, ok := doc.tree.Seek(dimGraphemes, pos)
		assert(ok, "piecetable: position not covered by a piece")
		p := nd.piece
		inPiece, e := p.buf.NewlinesIn(p.start, p.start+residual)
		assert(e == nil, "piecetable: piece spans beyond its buffer")
		line = doc.tree.PrefixSum(dimLines, idx) + inPiece
	}
	start, _ := doc.LineStart(line)
	return line, pos - start, nil
}
