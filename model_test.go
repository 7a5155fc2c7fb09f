package piecetable

import (
	"io"
	"math/rand"
	"slices"
	"strings"
	"testing"
)

// clusters which segment the same way in any context
var alphabet = []string{"a", "b", "c", " ", "\n", "\r\n", "\u00e9", "世", "😀"}

// textModel is a document represented as a plain slice of grapheme clusters.
type textModel []string

func (m textModel) String() string {
	return strings.Join(m, "")
}

func (m textModel) lineColumn(pos int) (int, int) {
	line, col := 0, 0
	for _, c := range m[:pos] {
		if strings.HasSuffix(c, "\n") {
			line, col = line+1, 0
		} else {
			col++
		}
	}
	return line, col
}

func randomClusters(r *rand.Rand, n int) []string {
	cs := make([]string, n)
	for i := range cs {
		cs[i] = alphabet[r.Intn(len(alphabet))]
	}
	return cs
}

func assertDocumentMatchesModel(t *testing.T, doc *Document, model textModel) {
	t.Helper()
	text := model.String()
	if doc.String() != text {
		t.Fatalf("text mismatch:\n got=%q\nwant=%q", doc.String(), text)
	}
	if doc.Len() != len(model) {
		t.Fatalf("length mismatch: got=%d want=%d", doc.Len(), len(model))
	}
	if doc.Size() != len(text) {
		t.Fatalf("size mismatch: got=%d want=%d", doc.Size(), len(text))
	}
	assertLines(t, doc, text)
	if err := doc.tree.Check(); err != nil {
		t.Fatal(err)
	}
	var prev *node
	for i, n := range doc.tree.From(0) {
		if prev != nil && prev.continuedBy(n) {
			t.Fatalf("pieces %d and %d are not merged: %v %v", i-1, i, *prev, n)
		}
		prev = &n
	}
}

func runDocumentModel(t *testing.T, r *rand.Rand, conf Config, steps int) {
	doc, err := New(conf)
	if err != nil {
		t.Fatal(err)
	}
	var model textModel
	for step := range steps {
		if op := r.Intn(10); op < 6 || len(model) == 0 {
			pos := r.Intn(len(model) + 1)
			cs := randomClusters(r, 1+r.Intn(12))
			if err := doc.Insert(pos, strings.Join(cs, "")); err != nil {
				t.Fatalf("step %d: Insert(%d) failed: %v", step, pos, err)
			}
			model = slices.Insert(model, pos, cs...)
		} else {
			start := r.Intn(len(model))
			end := start + r.Intn(min(len(model)-start, 15)+1)
			if err := doc.Delete(start, end); err != nil {
				t.Fatalf("step %d: Delete(%d,%d) failed: %v", step, start, end, err)
			}
			model = slices.Delete(model, start, end)
		}
		if step%10 == 0 {
			assertDocumentMatchesModel(t, doc, model)
		}
	}
	assertDocumentMatchesModel(t, doc, model)
	// positional queries
	for range 50 {
		start := r.Intn(len(model) + 1)
		end := start + r.Intn(len(model)-start+1)
		got, err := doc.Text(start, end)
		if err != nil || got != strings.Join(model[start:end], "") {
			t.Fatalf("Text(%d,%d) = %q, %v", start, end, got, err)
		}
		line, col, err := doc.LineColumn(start)
		wantLine, wantCol := model.lineColumn(start)
		if err != nil || line != wantLine || col != wantCol {
			t.Fatalf("LineColumn(%d) = %d, %d, %v; want %d, %d", start, line, col, err, wantLine, wantCol)
		}
	}
	b, err := io.ReadAll(doc.Reader())
	if err != nil || string(b) != model.String() {
		t.Fatalf("reader mismatch: %v", err)
	}
}

func TestDocumentRandomizedEdits(t *testing.T) {
	for seed, conf := range []Config{
		{Alpha: 0.6, BufferCapacity: 8},
		{Alpha: 0.7, BufferCapacity: 4},
		DefaultConfig(),
	} {
		r := rand.New(rand.NewSource(int64(seed + 11)))
		runDocumentModel(t, r, conf, 400)
	}
}

func TestLineToPiece(t *testing.T) {
	doc, _ := New(Config{Alpha: 0.6, BufferCapacity: 6})
	_ = doc.Insert(0, "ab\ncd\nef\n\ngh")
	for k := range doc.LineCount() - 1 {
		idx, residual, nd, ok := doc.lineToPiece(k)
		if !ok {
			t.Fatalf("newline %d not found", k)
		}
		before := doc.tree.PrefixSum(dimLines, idx)
		if before+residual != k || residual >= nd.lines {
			t.Errorf("newline %d: piece %d holds %d lines, %d before, residual %d",
				k, idx, nd.lines, before, residual)
		}
	}
	if _, _, _, ok := doc.lineToPiece(doc.LineCount() - 1); ok {
		t.Errorf("expected no piece for a newline beyond the last one")
	}
}

func FuzzDocumentModel(f *testing.F) {
	f.Add(int64(3), uint8(120))
	f.Fuzz(func(t *testing.T, seed int64, steps uint8) {
		runDocumentModel(t, rand.New(rand.NewSource(seed)), Config{Alpha: 0.65, BufferCapacity: 5}, int(steps))
	})
}
