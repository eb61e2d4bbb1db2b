package ports

import "time"

// Clock is the time source for frame pacing.
type Clock interface {
	Now() time.Time

	// Sleep blocks for d. Non-positive durations return immediately.
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep when d is positive.
func (SystemClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
