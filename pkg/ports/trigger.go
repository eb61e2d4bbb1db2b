package ports

import (
	"context"
	"time"
)

// Trigger blocks until an external start signal arrives.
type Trigger interface {
	// AwaitTrigger waits for the next activation and returns when it happened.
	// If the signal is already active it first waits for it to clear, so a
	// held signal never fires twice.
	AwaitTrigger(ctx context.Context) (time.Time, error)
}

// LevelSensor reports the instantaneous state of a start signal.
type LevelSensor interface {
	// Active reports whether the signal is currently asserted.
	Active(ctx context.Context) (bool, error)
}
