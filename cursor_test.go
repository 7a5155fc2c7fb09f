package piecetable

import (
	"errors"
	"slices"
	"testing"
)

func TestCursorNextPrevRoundtrip(t *testing.T) {
	doc := FromString("a😀ב\r\nz")
	_ = doc.Insert(2, "e\u0301")
	want := []string{"a", "😀", "e\u0301", "ב", "\r\n", "z"}
	cc := doc.NewCursor()
	var got []string
	for {
		s, ok := cc.Next()
		if !ok {
			break
		}
		got = append(got, s)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("forward clusters = %q, want %q", got, want)
	}
	var back []string
	for {
		s, ok := cc.Prev()
		if !ok {
			break
		}
		back = append(back, s)
	}
	slices.Reverse(back)
	if !slices.Equal(back, want) {
		t.Fatalf("backward clusters = %q, want %q", back, want)
	}
}

func TestCursorSeek(t *testing.T) {
	doc := FromString("one\ntwo\nthree")
	cc := doc.NewCursor()
	if err := cc.Seek(5); err != nil {
		t.Fatal(err)
	}
	if s, _ := cc.Next(); s != "w" {
		t.Errorf("expected 'w' at position 5, got %q", s)
	}
	if err := cc.SeekLine(2); err != nil || cc.Pos() != 8 {
		t.Errorf("SeekLine(2): pos=%d, err=%v", cc.Pos(), err)
	}
	if err := cc.Seek(14); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := cc.SeekLine(3); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if cc.Pos() != 8 {
		t.Errorf("failed seeks moved the cursor to %d", cc.Pos())
	}
}
