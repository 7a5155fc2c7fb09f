package textfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "piecetable")
	defer teardown()
	//
	content := strings.Repeat("Lorem ipsum dolor sit amet, 世界.\n", 40)
	bufs, err := Load(writeFile(t, content), 100)
	if err != nil {
		t.Fatal(err.Error())
	}
	if len(bufs) < 2 {
		t.Fatalf("expected content to be split, got %d buffers", len(bufs))
	}
	var sb strings.Builder
	for _, b := range bufs {
		if b.Len() > 100 {
			t.Errorf("buffer exceeds capacity: %d bytes", b.Len())
		}
		sb.WriteString(b.String())
	}
	if sb.String() != content {
		t.Errorf("loaded buffers do not reassemble the file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	bufs, err := Load(writeFile(t, ""), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(bufs) != 0 {
		t.Errorf("expected no buffers for an empty file, got %d", len(bufs))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"), 0)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir(), 0)
	if !errors.Is(err, ErrNotRegular) {
		t.Fatalf("expected ErrNotRegular, got %v", err)
	}
}

func TestLoadInvalidUTF8(t *testing.T) {
	_, err := Load(writeFile(t, "abc\xffdef"), 0)
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}
