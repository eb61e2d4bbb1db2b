package mocks

import (
	"context"
	"sync"

	"github.com/user/bvfplay/pkg/ports"
)

// Fetcher is a mock implementation of ports.Fetcher. Without a FetchPartFunc it
// serves Parts by 1-based index and reports ports.ErrPartNotFound past the end.
type Fetcher struct {
	mu sync.Mutex

	FetchPartFunc func(ctx context.Context, index int) ([]byte, error)
	Parts         [][]byte

	Calls []int
}

func (m *Fetcher) FetchPart(ctx context.Context, index int) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, index)
	m.mu.Unlock()
	if m.FetchPartFunc != nil {
		return m.FetchPartFunc(ctx, index)
	}
	if index < 1 || index > len(m.Parts) {
		return nil, ports.ErrPartNotFound
	}
	return m.Parts[index-1], nil
}

// CallCount returns how many times FetchPart was called for index.
func (m *Fetcher) CallCount(index int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == index {
			n++
		}
	}
	return n
}

var _ ports.Fetcher = (*Fetcher)(nil)
