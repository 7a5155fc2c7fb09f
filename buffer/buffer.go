package buffer

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// MaxSize is the maximum text length of a buffer in bytes. All offsets inside
// a buffer fit into 16 bits.
const MaxSize = math.MaxUint16

// AsciiRange is a run of at least two consecutive single-byte ASCII grapheme
// clusters.
type AsciiRange struct {
	ByteStart     uint16
	Length        uint16
	GraphemeStart uint16
}

// UnicodeRange groups adjacent grapheme clusters not covered by an
// AsciiRange. Offset is the number of ASCII ranges preceding the group, which
// places the group directly behind ASCII range Offset-1. Offsets holds the
// start byte of each cluster of the group.
type UnicodeRange struct {
	Offset  uint16
	Offsets []uint16
}

// Buffer is an immutable text blob of at most MaxSize bytes, indexed by
// grapheme clusters.
//
// A buffer created by
//
//	Buffer{}
//
// is a valid, empty buffer.
type Buffer struct {
	text      string
	graphemes int
	ascii     []AsciiRange
	unicode   []UnicodeRange
	newlines  []uint16 // byte offsets of '\n'
}

// New creates a buffer from text.
//
// Text longer than MaxSize bytes violates the contract of this package and
// panics; clients have to chunk larger input, e.g. with Split.
func New(text string) *Buffer {
	assert(len(text) <= MaxSize, "buffer: text exceeds buffer capacity")
	b := &Buffer{text: text}
	// open ASCII run: number of clusters, first grapheme and first byte
	var run, runGrapheme, runByte int
	closeRun := func() {
		switch {
		case run >= 2:
			b.ascii = append(b.ascii, AsciiRange{
				ByteStart:     uint16(runByte),
				Length:        uint16(run),
				GraphemeStart: uint16(runGrapheme),
			})
		case run == 1:
			b.addUnicode(runByte)
		}
		run = 0
	}
	g, pos, state := 0, 0, -1
	rest := text
	for len(rest) > 0 {
		cluster, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		if len(cluster) == 1 && cluster[0] < utf8.RuneSelf {
			if run == 0 {
				runGrapheme, runByte = g, pos
			}
			run++
		} else {
			closeRun()
			b.addUnicode(pos)
		}
		g++
		pos += len(cluster)
		rest, state = r, st
	}
	closeRun()
	b.graphemes = g
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.newlines = append(b.newlines, uint16(i))
		}
	}
	return b
}

// addUnicode records a cluster starting at byte pos. Clusters are coalesced
// into the last group as long as no ASCII range has been committed since.
func (b *Buffer) addUnicode(pos int) {
	key := uint16(len(b.ascii))
	if n := len(b.unicode); n > 0 && b.unicode[n-1].Offset == key {
		b.unicode[n-1].Offsets = append(b.unicode[n-1].Offsets, uint16(pos))
		return
	}
	b.unicode = append(b.unicode, UnicodeRange{Offset: key, Offsets: []uint16{uint16(pos)}})
}

// Len returns the text length in bytes.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.text)
}

// GraphemeCount returns the number of grapheme clusters.
func (b *Buffer) GraphemeCount() int {
	if b == nil {
		return 0
	}
	return b.graphemes
}

// String returns the buffer text.
func (b *Buffer) String() string {
	if b == nil {
		return ""
	}
	return b.text
}

// AsciiRanges returns a copy of the ASCII run records.
func (b *Buffer) AsciiRanges() []AsciiRange {
	if b == nil {
		return nil
	}
	return slices.Clone(b.ascii)
}

// UnicodeRanges returns a copy of the cluster group records.
func (b *Buffer) UnicodeRanges() []UnicodeRange {
	if b == nil {
		return nil
	}
	ranges := make([]UnicodeRange, len(b.unicode))
	for i, u := range b.unicode {
		ranges[i] = UnicodeRange{Offset: u.Offset, Offsets: slices.Clone(u.Offsets)}
	}
	return ranges
}

// GraphemeToByteOffset returns the start byte of grapheme cluster g.
// g == GraphemeCount() is allowed and maps to Len().
func (b *Buffer) GraphemeToByteOffset(g int) (int, error) {
	if g < 0 || g > b.GraphemeCount() {
		return 0, fmt.Errorf("%w: grapheme %d of %d", ErrIndexOutOfBounds, g, b.GraphemeCount())
	}
	if g == b.graphemes {
		return len(b.text), nil
	}
	i := sort.Search(len(b.ascii), func(i int) bool {
		return int(b.ascii[i].GraphemeStart) > g
	}) - 1
	if i >= 0 {
		a := b.ascii[i]
		if g < int(a.GraphemeStart)+int(a.Length) {
			return int(a.ByteStart) + g - int(a.GraphemeStart), nil
		}
	}
	u := b.group(i + 1)
	return int(b.unicode[u].Offsets[g-b.groupStart(u)]), nil
}

// ByteOffsetToGrapheme returns the index of the grapheme cluster containing
// byte offset off. off == Len() is allowed and maps to GraphemeCount().
func (b *Buffer) ByteOffsetToGrapheme(off int) (int, error) {
	if off < 0 || off > b.Len() {
		return 0, fmt.Errorf("%w: byte offset %d of %d", ErrIndexOutOfBounds, off, b.Len())
	}
	if off == len(b.text) {
		return b.graphemes, nil
	}
	i := sort.Search(len(b.ascii), func(i int) bool {
		return int(b.ascii[i].ByteStart) > off
	}) - 1
	if i >= 0 {
		a := b.ascii[i]
		if off < int(a.ByteStart)+int(a.Length) {
			return int(a.GraphemeStart) + off - int(a.ByteStart), nil
		}
	}
	u := b.group(i + 1)
	offsets := b.unicode[u].Offsets
	j := sort.Search(len(offsets), func(j int) bool {
		return int(offsets[j]) > off
	}) - 1
	assert(j >= 0, "buffer: byte offset precedes its cluster group")
	return b.groupStart(u) + j, nil
}

// group returns the index of the cluster group following ASCII range key-1.
func (b *Buffer) group(key int) int {
	u, found := slices.BinarySearchFunc(b.unicode, uint16(key), func(r UnicodeRange, k uint16) int {
		return cmp.Compare(r.Offset, k)
	})
	assert(found, "buffer: cluster group missing between ASCII ranges")
	return u
}

// groupStart returns the grapheme index of the first cluster of group u.
func (b *Buffer) groupStart(u int) int {
	k := int(b.unicode[u].Offset)
	if k == 0 {
		return 0
	}
	a := b.ascii[k-1]
	return int(a.GraphemeStart) + int(a.Length)
}

// ByteRange returns the byte offsets of the grapheme span [gs, ge).
func (b *Buffer) ByteRange(gs, ge int) (int, int, error) {
	if gs > ge {
		return 0, 0, fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, gs, ge)
	}
	bs, err := b.GraphemeToByteOffset(gs)
	if err != nil {
		return 0, 0, err
	}
	be, err := b.GraphemeToByteOffset(ge)
	if err != nil {
		return 0, 0, err
	}
	return bs, be, nil
}

// Slice returns the text of the grapheme span [gs, ge).
func (b *Buffer) Slice(gs, ge int) (string, error) {
	bs, be, err := b.ByteRange(gs, ge)
	if err != nil {
		return "", err
	}
	return b.text[bs:be], nil
}

// NewlineCount returns the number of '\n' bytes in the buffer.
func (b *Buffer) NewlineCount() int {
	if b == nil {
		return 0
	}
	return len(b.newlines)
}

// NewlinesIn returns the number of '\n' bytes in the grapheme span [gs, ge).
func (b *Buffer) NewlinesIn(gs, ge int) (int, error) {
	bs, be, err := b.ByteRange(gs, ge)
	if err != nil {
		return 0, err
	}
	return b.newlineIndex(be) - b.newlineIndex(bs), nil
}

// NthNewline returns the byte offset of the k-th (0-based) '\n' inside the
// grapheme span [gs, ge). It reports false if the span holds fewer newlines.
func (b *Buffer) NthNewline(gs, ge, k int) (int, bool) {
	bs, be, err := b.ByteRange(gs, ge)
	if err != nil || k < 0 {
		return 0, false
	}
	n := b.newlineIndex(bs) + k
	if n >= len(b.newlines) || int(b.newlines[n]) >= be {
		return 0, false
	}
	return int(b.newlines[n]), true
}

// newlineIndex returns the number of newlines before byte offset off.
func (b *Buffer) newlineIndex(off int) int {
	return sort.Search(len(b.newlines), func(i int) bool {
		return int(b.newlines[i]) >= off
	})
}
