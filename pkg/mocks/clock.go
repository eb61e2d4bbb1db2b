package mocks

import (
	"sync"
	"time"

	"github.com/user/bvfplay/pkg/ports"
)

// Clock is a fake ports.Clock. Time only moves through Sleep and Advance.
type Clock struct {
	mu  sync.Mutex
	now time.Time

	Sleeps []time.Duration
}

// NewClock creates a fake clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Sleeps = append(c.Sleeps, d)
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Advance moves the clock forward without recording a sleep.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var _ ports.Clock = (*Clock)(nil)
