// Package summarizer provides summary generation for playback cycles.
package summarizer

import (
	"time"

	"github.com/user/bvfplay/pkg/orchestrator"
	"github.com/user/bvfplay/pkg/pipeline"
)

// Summary contains all data collected during one playback cycle.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Cycle information
	Cycle CycleInfo

	// Per-part playback statistics in play order
	Parts []pipeline.PartStats

	// Frames that failed to decode
	Failures []FailureInfo

	// Playback settings
	Settings Settings
}

// CycleInfo describes how a cycle started and ended.
type CycleInfo struct {
	SessionID string
	Source    string // File path or URL template
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Error     string // Cause of an early end
}

// FailureInfo describes a frame that stopped its part.
type FailureInfo struct {
	Part  int
	Frame int
	Error string
}

// Settings contains the playback configuration.
type Settings struct {
	DefaultFPS    int
	FetchAttempts int
	MaxParts      int
	Trigger       string
}

// TotalFrames returns the number of frames displayed across all parts.
func (s *Summary) TotalFrames() int {
	n := 0
	for _, p := range s.Parts {
		n += p.Frames
	}
	return n
}

// MaxDrift returns the largest drift observed in any part.
func (s *Summary) MaxDrift() time.Duration {
	var max time.Duration
	for _, p := range s.Parts {
		if p.MaxDrift > max {
			max = p.MaxDrift
		}
	}
	return max
}

// AchievedFPS returns the frame rate over the time spent playing, or 0 when
// nothing was played.
func (s *Summary) AchievedFPS() float64 {
	var elapsed time.Duration
	for _, p := range s.Parts {
		elapsed += p.Elapsed
	}
	ms := elapsed.Milliseconds()
	frames := s.TotalFrames()
	if frames == 0 || ms <= 0 {
		return 0
	}
	return 1000 * float64(frames) / float64(ms)
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithCycle copies the session, outcome, part stats and failures of a cycle.
func (b *Builder) WithCycle(result orchestrator.CycleResult) *Builder {
	b.summary.Cycle.SessionID = result.Session.ID
	b.summary.Cycle.StartedAt = result.Session.CycleStart
	b.summary.Cycle.Duration = result.Duration
	b.summary.Cycle.Outcome = result.Outcome.String()
	if result.Err != nil {
		b.summary.Cycle.Error = result.Err.Error()
	}
	b.summary.Parts = append([]pipeline.PartStats(nil), result.Parts...)
	for _, f := range result.Failures {
		b.WithFailure(f.Part, f.Index, f.Err)
	}
	return b
}

// WithSource sets where parts came from.
func (b *Builder) WithSource(source string) *Builder {
	b.summary.Cycle.Source = source
	return b
}

// WithPart appends the stats of one played part.
func (b *Builder) WithPart(stats pipeline.PartStats) *Builder {
	b.summary.Parts = append(b.summary.Parts, stats)
	return b
}

// WithFailure records a frame that failed to decode.
func (b *Builder) WithFailure(part, frame int, err error) *Builder {
	info := FailureInfo{Part: part, Frame: frame}
	if err != nil {
		info.Error = err.Error()
	}
	b.summary.Failures = append(b.summary.Failures, info)
	return b
}

// WithSettings sets playback settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
