package buffer

import "errors"

var (
	// ErrIndexOutOfBounds signals a grapheme index or byte offset outside a
	// buffer.
	ErrIndexOutOfBounds = errors.New("buffer: index out of bounds")
	// ErrInvalidRange signals a grapheme span with start > end.
	ErrInvalidRange = errors.New("buffer: invalid range")
)
