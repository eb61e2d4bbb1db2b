package summarizer

import (
	"errors"
	"testing"
	"time"

	"github.com/user/bvfplay/pkg/bvf"
	"github.com/user/bvfplay/pkg/orchestrator"
	"github.com/user/bvfplay/pkg/pipeline"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithCycle(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	failure := &pipeline.FrameFailure{Part: 2, Index: 7, Err: bvf.ErrTruncatedFrame}
	result := orchestrator.CycleResult{
		Session: orchestrator.SessionState{ID: "abc", PartIndex: 1, CycleStart: start},
		Outcome: orchestrator.FetchFailed,
		Parts: []pipeline.PartStats{
			{Part: 1, Frames: 10, Elapsed: time.Second},
			{Part: 2, Frames: 6, Elapsed: 600 * time.Millisecond},
		},
		Failures: []*pipeline.FrameFailure{failure},
		Err:      errors.New("connection refused"),
		Duration: 5 * time.Second,
	}

	s := NewBuilder().WithCycle(result).WithSource("https://example.com/p-%d.bvf").Build()

	if s.Cycle.SessionID != "abc" || !s.Cycle.StartedAt.Equal(start) {
		t.Errorf("unexpected cycle info: %+v", s.Cycle)
	}
	if s.Cycle.Outcome != "fetch failed" || s.Cycle.Error != "connection refused" {
		t.Errorf("unexpected outcome: %q %q", s.Cycle.Outcome, s.Cycle.Error)
	}
	if len(s.Parts) != 2 || s.TotalFrames() != 16 {
		t.Errorf("expected 2 parts with 16 frames, got %d parts, %d frames", len(s.Parts), s.TotalFrames())
	}
	if len(s.Failures) != 1 || s.Failures[0].Part != 2 || s.Failures[0].Frame != 7 {
		t.Errorf("unexpected failures: %+v", s.Failures)
	}
	if s.Failures[0].Error != failure.Err.Error() {
		t.Errorf("expected failure error %q, got %q", failure.Err.Error(), s.Failures[0].Error)
	}
}

func TestSummary_Aggregates(t *testing.T) {
	s := NewBuilder().
		WithPart(pipeline.PartStats{Part: 1, Frames: 10, Elapsed: time.Second, MaxDrift: 5 * time.Millisecond}).
		WithPart(pipeline.PartStats{Part: 2, Frames: 10, Elapsed: time.Second, MaxDrift: 40 * time.Millisecond}).
		Build()

	if s.MaxDrift() != 40*time.Millisecond {
		t.Errorf("expected max drift 40ms, got %v", s.MaxDrift())
	}
	if s.AchievedFPS() != 10 {
		t.Errorf("expected 10 fps, got %v", s.AchievedFPS())
	}
}

func TestSummary_AchievedFPSEmpty(t *testing.T) {
	s := NewSummary()
	if fps := s.AchievedFPS(); fps != 0 {
		t.Errorf("expected 0 fps for an empty summary, got %v", fps)
	}
	s.Parts = []pipeline.PartStats{{Part: 1}}
	if fps := s.AchievedFPS(); fps != 0 {
		t.Errorf("expected 0 fps for zero frames, got %v", fps)
	}
}
