// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/bvfplay/pkg/ports"
)

// Sink saves frame snapshots and part statistics under baseDir:
//
//	<baseDir>/part-NNN/frame-NNNN.png
//	<baseDir>/part-NNN/stats.json
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.FrameRenderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.FrameRenderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveFrame encodes img as PNG.
func (s *Sink) SaveFrame(part, frame int, img image.Image) error {
	dir := s.partDir(part)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", frame, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", frame)), data)
}

// SavePartStats saves the statistics JSON of one part.
func (s *Sink) SavePartStats(part int, data []byte) error {
	dir := s.partDir(part)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, "stats.json"), data)
}

func (s *Sink) partDir(part int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("part-%03d", part))
}

var _ ports.DebugSink = (*Sink)(nil)
