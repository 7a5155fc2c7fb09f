package buffer

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Split chunks text into buffers of at most capacity bytes each. Cuts are
// placed on grapheme cluster boundaries, so every buffer segments exactly as
// its part of the whole text does. A single cluster longer than capacity is
// cut on a rune boundary.
//
// A capacity outside of (0, MaxSize] is treated as MaxSize, a capacity below
// utf8.UTFMax is raised to utf8.UTFMax.
func Split(text string, capacity int) []*Buffer {
	if capacity <= 0 || capacity > MaxSize {
		capacity = MaxSize
	} else if capacity < utf8.UTFMax {
		capacity = utf8.UTFMax
	}
	var bufs []*Buffer
	for len(text) > 0 {
		n := cut(text, capacity)
		bufs = append(bufs, New(text[:n]))
		text = text[n:]
	}
	tracer().Debugf("buffer: split text into %d buffers of capacity %d", len(bufs), capacity)
	return bufs
}

// cut returns the length of the longest prefix of text which is at most
// capacity bytes long and ends on a cluster boundary.
func cut(text string, capacity int) int {
	if len(text) <= capacity {
		return len(text)
	}
	n, state := 0, -1
	rest := text
	for len(rest) > 0 {
		cluster, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		if n+len(cluster) > capacity {
			break
		}
		n += len(cluster)
		rest, state = r, st
	}
	if n > 0 {
		return n
	}
	n = capacity
	for n > 0 && !utf8.RuneStart(text[n]) {
		n--
	}
	if n == 0 { // no rune boundary in reach
		n = capacity
	}
	return n
}
