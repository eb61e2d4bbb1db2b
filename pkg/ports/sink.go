package ports

import (
	"image"
)

// DebugSink receives intermediate playback artifacts for offline inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveFrame saves a rasterized snapshot of one displayed frame.
	SaveFrame(part, frame int, img image.Image) error

	// SavePartStats saves the playback statistics of one part as JSON.
	SavePartStats(part int, data []byte) error
}
