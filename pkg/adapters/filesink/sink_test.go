package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/bvfplay/pkg/mocks"
	"github.com/user/bvfplay/pkg/ports"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem(), &mocks.Renderer{})
	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveFrame(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat) ([]byte, error) {
			if format != ports.FormatPNG {
				t.Errorf("expected PNG format, got %v", format)
			}
			return []byte("png"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveFrame(3, 12, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "part-003", "frame-0012.png")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s, have %v", expectedPath, fs.Paths())
	}
	if string(saved) != "png" {
		t.Errorf("unexpected contents %q", saved)
	}
}

func TestSink_SaveFrameEncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	if err := sink.SaveFrame(1, 1, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Error("expected encode error")
	}
	if len(fs.Paths()) != 0 {
		t.Errorf("expected nothing written, got %v", fs.Paths())
	}
}

func TestSink_SavePartStats(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	data := []byte(`{"part": 2}`)
	if err := sink.SavePartStats(2, data); err != nil {
		t.Fatalf("SavePartStats failed: %v", err)
	}

	saved, ok := fs.GetFile(filepath.Join(testBaseDir, "part-002", "stats.json"))
	if !ok || string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}
