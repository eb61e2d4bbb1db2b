package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/user/bvfplay/pkg/ports"
)

// Trigger is a mock implementation of ports.Trigger. It fires Fires times and then
// blocks until the context is cancelled.
type Trigger struct {
	mu sync.Mutex

	AwaitTriggerFunc func(ctx context.Context) (time.Time, error)
	Fires            int

	Calls int
}

func (m *Trigger) AwaitTrigger(ctx context.Context) (time.Time, error) {
	m.mu.Lock()
	m.Calls++
	fire := m.Fires > 0
	if fire {
		m.Fires--
	}
	m.mu.Unlock()

	if m.AwaitTriggerFunc != nil {
		return m.AwaitTriggerFunc(ctx)
	}
	if fire {
		return time.Now(), nil
	}
	<-ctx.Done()
	return time.Time{}, ctx.Err()
}

// LevelSensor is a mock implementation of ports.LevelSensor that replays Levels
// and then holds the last value.
type LevelSensor struct {
	mu sync.Mutex

	ActiveFunc func(ctx context.Context) (bool, error)
	Levels     []bool

	Reads int
}

func (m *LevelSensor) Active(ctx context.Context) (bool, error) {
	if m.ActiveFunc != nil {
		return m.ActiveFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if len(m.Levels) == 0 {
		return false, nil
	}
	level := m.Levels[0]
	if len(m.Levels) > 1 {
		m.Levels = m.Levels[1:]
	}
	return level, nil
}

var (
	_ ports.Trigger     = (*Trigger)(nil)
	_ ports.LevelSensor = (*LevelSensor)(nil)
)
