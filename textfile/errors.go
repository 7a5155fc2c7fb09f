package textfile

import "errors"

var (
	// ErrNotRegular signals a path which does not name a regular file.
	ErrNotRegular = errors.New("textfile: not a regular file")
	// ErrInvalidUTF8 signals file content which is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("textfile: invalid UTF-8")
	// ErrShortRead signals a file which shrank while it was being read.
	ErrShortRead = errors.New("textfile: not all bytes loaded")
)
