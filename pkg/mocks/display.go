package mocks

import (
	"sync"

	"github.com/user/bvfplay/pkg/ports"
)

// RenderCall records one Render invocation.
type RenderCall struct {
	Text []string
	FG   []string
	BG   []string
}

// Display is a mock implementation of ports.Display.
type Display struct {
	mu sync.Mutex

	RenderFunc  func(text, fg, bg []string) error
	MessageFunc func(text string) error

	Renders  []RenderCall
	Messages []string
	Clears   int
}

func (m *Display) Render(text, fg, bg []string) error {
	m.mu.Lock()
	m.Renders = append(m.Renders, RenderCall{Text: text, FG: fg, BG: bg})
	m.mu.Unlock()
	if m.RenderFunc != nil {
		return m.RenderFunc(text, fg, bg)
	}
	return nil
}

func (m *Display) Message(text string) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, text)
	m.mu.Unlock()
	if m.MessageFunc != nil {
		return m.MessageFunc(text)
	}
	return nil
}

func (m *Display) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	return nil
}

// RenderCount returns the number of rendered frames.
func (m *Display) RenderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Renders)
}

// LastMessage returns the most recent message, or "" if none was shown.
func (m *Display) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

var _ ports.Display = (*Display)(nil)
