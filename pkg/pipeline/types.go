package pipeline

import (
	"fmt"
	"time"

	"github.com/user/bvfplay/pkg/bvf"
)

// =============================================================================
// Fetch Stage Types
// =============================================================================

// FetchInput names the part to make available locally.
type FetchInput struct {
	Index int    // 1-based part index
	Path  string // Destination path for the part file
}

// FetchResult describes a part file written to local storage.
type FetchResult struct {
	Index    int
	Path     string
	Size     int
	Attempts int // Attempts used, 1 if the first try succeeded
}

// =============================================================================
// Play Stage Types
// =============================================================================

// PlayInput is an opened part ready for playback.
type PlayInput struct {
	Part   int         // 1-based part index, for reporting
	Stream *bvf.Stream // Positioned at the first frame to play
}

// PlayResult is the outcome of playing one part to completion.
type PlayResult struct {
	Stats PartStats
}

// FrameFailure reports a frame that could not be decoded. Nothing of the frame
// was displayed, and playback of the part stopped there.
type FrameFailure struct {
	Part  int
	Index int
	Err   error
}

func (e *FrameFailure) Error() string {
	return fmt.Sprintf("part %d frame %d: %v", e.Part, e.Index, e.Err)
}

func (e *FrameFailure) Unwrap() error {
	return e.Err
}

// =============================================================================
// Playback Clock
// =============================================================================

// PlaybackClock tracks the anchored schedule of one part. Frame targets are always
// derived from PartStart, never from the completion time of the previous frame,
// so drift does not compound.
type PlaybackClock struct {
	PartStart         time.Time
	Interval          time.Duration
	CumulativeDrift   time.Duration
	MaxDrift          time.Duration
	CumulativeProcess time.Duration
	Frames            int
}

// NewPlaybackClock starts a schedule at start with one frame every interval.
func NewPlaybackClock(start time.Time, interval time.Duration) *PlaybackClock {
	return &PlaybackClock{PartStart: start, Interval: interval}
}

// Target returns the scheduled start of frame i (1-based).
func (c *PlaybackClock) Target(i int) time.Time {
	return c.PartStart.Add(time.Duration(i-1) * c.Interval)
}

// Deadline returns the time by which frame i should be finished.
func (c *PlaybackClock) Deadline(i int) time.Time {
	return c.Target(i).Add(c.Interval)
}

// Record accumulates the drift and processing time of one played frame.
func (c *PlaybackClock) Record(drift, process time.Duration) {
	c.Frames++
	c.CumulativeDrift += drift
	if drift > c.MaxDrift {
		c.MaxDrift = drift
	}
	c.CumulativeProcess += process
}

// Stats summarizes the schedule as of end.
func (c *PlaybackClock) Stats(part int, end time.Time) PartStats {
	s := PartStats{
		Part:     part,
		Frames:   c.Frames,
		Elapsed:  end.Sub(c.PartStart),
		MaxDrift: c.MaxDrift,
	}
	if c.Frames > 0 {
		s.AvgDrift = c.CumulativeDrift / time.Duration(c.Frames)
		s.AvgProcess = c.CumulativeProcess / time.Duration(c.Frames)
	}
	if ms := s.Elapsed.Milliseconds(); c.Frames > 0 && ms > 0 {
		s.AchievedFPS = 1000 * float64(c.Frames) / float64(ms)
	}
	return s
}

// PartStats is the terminal snapshot of a part's playback.
type PartStats struct {
	Part        int           `json:"part" msgpack:"part"`
	Frames      int           `json:"frames" msgpack:"frames"`
	Elapsed     time.Duration `json:"elapsed" msgpack:"elapsed"`
	AvgDrift    time.Duration `json:"avgDrift" msgpack:"avg_drift"`
	MaxDrift    time.Duration `json:"maxDrift" msgpack:"max_drift"`
	AvgProcess  time.Duration `json:"avgProcess" msgpack:"avg_process"`
	AchievedFPS float64       `json:"achievedFps" msgpack:"achieved_fps"`
}
