package summarizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/user/bvfplay/pkg/mocks"
)

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("reports/cycle.md", NewSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, ok := fs.GetFile("reports/cycle.md")
	if !ok {
		t.Fatal("expected summary file to be written")
	}
	if !strings.HasPrefix(string(data), "# Playback Summary") {
		t.Errorf("unexpected content: %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}
	w := NewWriter(FormatFunc(func(*Summary) string { return "x" }), fs)
	if err := w.Write("cycle.md", NewSummary()); err == nil {
		t.Error("expected write error")
	}
}
