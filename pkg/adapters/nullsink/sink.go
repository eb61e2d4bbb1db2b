// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/bvfplay/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false, so callers skip rasterizing snapshots entirely.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) SaveFrame(part, frame int, img image.Image) error {
	return nil
}

func (s *Sink) SavePartStats(part int, data []byte) error {
	return nil
}

var _ ports.DebugSink = (*Sink)(nil)
