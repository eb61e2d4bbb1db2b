// Package leveltrigger turns a polled LevelSensor into an edge-triggered start signal.
package leveltrigger

import (
	"context"
	"time"

	"github.com/user/bvfplay/pkg/ports"
)

// Default polling policy.
const (
	DefaultPollInterval = 100 * time.Millisecond
	DefaultReadTimeout  = time.Second
)

// Options configures polling.
type Options struct {
	PollInterval time.Duration
	ReadTimeout  time.Duration // Bound on a single sensor read
}

// Trigger implements ports.Trigger over a LevelSensor.
type Trigger struct {
	sensor ports.LevelSensor
	clock  ports.Clock
	logger ports.Logger
	opts   Options
}

// New creates a new Trigger.
func New(sensor ports.LevelSensor, clock ports.Clock, logger ports.Logger, opts Options) *Trigger {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	return &Trigger{
		sensor: sensor,
		clock:  clock,
		logger: logger.WithComponent("trigger"),
		opts:   opts,
	}
}

// AwaitTrigger blocks until the sensor goes from inactive to active. A signal
// that is already asserted must clear first. Failed reads are logged and count
// as no change.
func (t *Trigger) AwaitTrigger(ctx context.Context) (time.Time, error) {
	active, _ := t.read(ctx)
	if active {
		t.logger.Debug("Start signal held, waiting for release")
		if err := t.waitFor(ctx, false); err != nil {
			return time.Time{}, err
		}
	}
	if err := t.waitFor(ctx, true); err != nil {
		return time.Time{}, err
	}
	at := t.clock.Now()
	t.logger.Debug("Start signal at %s", at.Format(time.RFC3339Nano))
	return at, nil
}

func (t *Trigger) waitFor(ctx context.Context, level bool) error {
	ticker := time.NewTicker(t.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		active, ok := t.read(ctx)
		if ok && active == level {
			return nil
		}
	}
}

func (t *Trigger) read(ctx context.Context) (bool, bool) {
	readCtx, cancel := context.WithTimeout(ctx, t.opts.ReadTimeout)
	defer cancel()
	active, err := t.sensor.Active(readCtx)
	if err != nil {
		if ctx.Err() == nil {
			t.logger.Warn("Sensor read failed: %v", err)
		}
		return false, false
	}
	return active, true
}

var _ ports.Trigger = (*Trigger)(nil)
