package textfile

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/npillmayer/piecetable/buffer"
)

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// textFile represents an OS file which will be loaded into buffers.
type textFile struct {
	info os.FileInfo // result from Stat
	file *os.File    // file handle
}

// Load reads a file, which must be a UTF-8 text file, and chunks its content
// into buffers of at most capacity bytes. A capacity outside of
// (0, buffer.MaxSize] means buffer.MaxSize.
//
// An empty file results in an empty slice and no error. If Load returns an
// error, no buffer has been built.
func Load(name string, capacity int) ([]*buffer.Buffer, error) {
	text, err := ReadText(name)
	if err != nil {
		return nil, err
	}
	bufs := buffer.Split(text, capacity)
	tracer().Debugf("textfile: loaded %q, %d bytes in %d buffers", name, len(text), len(bufs))
	return bufs, nil
}

// ReadText reads a UTF-8 text file in one go.
func ReadText(name string) (string, error) {
	tf, err := openFile(name)
	if err != nil {
		return "", err
	}
	defer tf.file.Close()
	size := tf.info.Size()
	buf := make([]byte, size)
	cnt, err := io.ReadFull(tf.file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("textfile: error loading %q: %w", name, err)
	} else if int64(cnt) < size {
		return "", fmt.Errorf("%w: %d of %d bytes from %q", ErrShortRead, cnt, size, name)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUTF8, name)
	}
	return string(buf), nil
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %q", ErrNotRegular, name)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	tf := &textFile{
		info: fi,
		file: file,
	}
	return tf, nil
}
