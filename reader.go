package piecetable

import "io"

// Reader returns a reader for the bytes of a document.
//
// The reader walks the live document. Editing the document while reading
// from it results in undefined content.
func (doc *Document) Reader() io.Reader {
	return &docReader{doc: doc}
}

type docReader struct {
	doc    *Document
	cursor int // byte offset
}

func (dr *docReader) Read(p []byte) (n int, err error) {
	if dr.cursor >= dr.doc.Size() {
		return 0, io.EOF
	}
	for n < len(p) {
		_, residual, nd, ok := dr.doc.tree.Seek(dimBytes, dr.cursor)
		if !ok {
			break
		}
		c := copy(p[n:], nd.text()[residual:])
		n += c
		dr.cursor += c
	}
	return n, nil
}

// WriteTo writes the document text to w. It implements io.WriterTo.
func (doc *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var err error
	doc.tree.ForEachItem(func(nd node) bool {
		var c int
		c, err = io.WriteString(w, nd.text())
		total += int64(c)
		return err == nil
	})
	return total, err
}
