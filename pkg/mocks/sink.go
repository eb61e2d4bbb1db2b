package mocks

import (
	"image"
	"sync"

	"github.com/user/bvfplay/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Frames map[[2]int]image.Image
	Stats  map[int][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Frames:  make(map[[2]int]image.Image),
		Stats:   make(map[int][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveFrame(part, frame int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[[2]int{part, frame}] = img
	return nil
}

func (m *DebugSink) SavePartStats(part int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Stats[part] = data
	return nil
}

// FrameCount returns the number of saved frame snapshots.
func (m *DebugSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
