// Package orchestrator drives playback cycles across a sequence of parts.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/user/bvfplay/pkg/bvf"
	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
	"github.com/user/bvfplay/pkg/stages/fetch"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	PartDir  string // Where part files are stored while resident
	MaxParts int    // Stop after this many parts, 0 for no limit

	// CyclePause is waited before re-arming the trigger after a cycle that played
	// no parts, so an always-firing trigger cannot spin on a missing sequence.
	CyclePause time.Duration

	// Display messages shown between cycles. Keys are translated with l10n.
	IdleMessage     string
	FinishedMessage string
	FailedMessage   string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		PartDir:         "parts",
		CyclePause:      time.Second,
		IdleMessage:     "Waiting for start signal",
		FinishedMessage: "Playback finished",
		FailedMessage:   "Playback stopped: part unavailable",
	}
}

// SessionState is the mutable state of one playback cycle. A fresh state starting
// at part 1 is created for every trigger.
type SessionState struct {
	ID         string
	PartIndex  int
	Playing    bool
	CycleStart time.Time
}

// Outcome describes how a cycle ended.
type Outcome int

const (
	// Exhausted means the sequence ran out of parts normally.
	Exhausted Outcome = iota
	// FetchFailed means a part could not be retrieved after all retries.
	FetchFailed
	// OpenFailed means a part could not be opened or its header was invalid.
	OpenFailed
	// Aborted means playback stopped for another reason, such as a display failure.
	Aborted
	// Cancelled means the context was cancelled mid-cycle.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Exhausted:
		return "exhausted"
	case FetchFailed:
		return "fetch failed"
	case OpenFailed:
		return "open failed"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CycleResult summarizes one playback cycle.
type CycleResult struct {
	Session  SessionState
	Outcome  Outcome
	Parts    []pipeline.PartStats
	Failures []*pipeline.FrameFailure
	Err      error // Cause of a non-exhausted outcome
	Duration time.Duration
}

// Frames returns the number of frames displayed during the cycle.
func (r CycleResult) Frames() int {
	n := 0
	for _, p := range r.Parts {
		n += p.Frames
	}
	return n
}

// Orchestrator waits for triggers and plays the part sequence once per trigger.
type Orchestrator struct {
	fetchStage pipeline.Stage[pipeline.FetchInput, pipeline.FetchResult]
	playStage  pipeline.Stage[pipeline.PlayInput, pipeline.PlayResult]
	trigger    ports.Trigger
	display    ports.Display
	fs         ports.FileSystem
	clock      ports.Clock
	sink       ports.DebugSink
	reporter   ports.StatsReporter
	logger     ports.Logger
	config     Config

	onCycle func(CycleResult)
}

// New creates a new Orchestrator. reporter may be nil.
func New(
	fetchStage pipeline.Stage[pipeline.FetchInput, pipeline.FetchResult],
	playStage pipeline.Stage[pipeline.PlayInput, pipeline.PlayResult],
	trigger ports.Trigger,
	display ports.Display,
	fs ports.FileSystem,
	clock ports.Clock,
	sink ports.DebugSink,
	reporter ports.StatsReporter,
	logger ports.Logger,
	config Config,
) *Orchestrator {
	return &Orchestrator{
		fetchStage: fetchStage,
		playStage:  playStage,
		trigger:    trigger,
		display:    display,
		fs:         fs,
		clock:      clock,
		sink:       sink,
		reporter:   reporter,
		logger:     logger,
		config:     config,
	}
}

// OnCycle registers fn to be called after every cycle.
func (o *Orchestrator) OnCycle(fn func(CycleResult)) {
	o.onCycle = fn
}

// Run waits for a trigger, plays one cycle, and repeats until ctx is cancelled.
// Failed cycles are not errors: the display shows a message and the next trigger
// starts again from part 1. Run returns nil on cancellation.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		o.showMessage(o.config.IdleMessage)
		o.logger.Info(l10n.T("Waiting for start signal"))

		at, err := o.trigger.AwaitTrigger(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("await trigger: %w", err)
		}

		result := o.cycle(ctx, at)
		if ctx.Err() != nil {
			return nil
		}
		if len(result.Parts) == 0 && o.config.CyclePause > 0 {
			o.logger.Debug(l10n.F("No parts played, pausing %s", o.config.CyclePause))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(o.config.CyclePause):
			}
		}
	}
}

// RunOnce plays a single cycle immediately, without waiting for a trigger.
func (o *Orchestrator) RunOnce(ctx context.Context) (CycleResult, error) {
	result := o.cycle(ctx, o.clock.Now())
	if result.Outcome == Cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

type prefetchResult struct {
	index int
	path  string
	err   error
}

func (o *Orchestrator) cycle(ctx context.Context, at time.Time) CycleResult {
	state := SessionState{ID: uuid.NewString(), PartIndex: 1, CycleStart: at}
	result := CycleResult{}
	o.logger.Info(l10n.F("Starting playback cycle %s", state.ID))

	var pending chan prefetchResult

	for {
		if o.config.MaxParts > 0 && state.PartIndex > o.config.MaxParts {
			result.Outcome = Exhausted
			break
		}
		index := state.PartIndex
		path := fetch.PartPath(o.config.PartDir, index)

		var err error
		if pending != nil {
			// The prefetch already spent the retry budget for this part.
			r := <-pending
			pending = nil
			err = r.err
		} else {
			err = o.ensureLocal(ctx, index, path)
		}
		if err != nil {
			switch {
			case errors.Is(err, fetch.ErrPartNotFound):
				result.Outcome = Exhausted
			case ctx.Err() != nil:
				result.Outcome = Cancelled
				result.Err = ctx.Err()
			default:
				o.logger.Error(l10n.F("Failed to fetch part %d: %s", index, err))
				result.Outcome = FetchFailed
				result.Err = err
			}
			break
		}

		stream, err := o.open(path)
		if err != nil {
			o.logger.Error(l10n.F("Failed to open part %d: %s", index, err))
			o.fs.Remove(path)
			result.Outcome = OpenFailed
			result.Err = fmt.Errorf("open part %d: %w", index, err)
			break
		}

		if o.config.MaxParts == 0 || index < o.config.MaxParts {
			pending = o.prefetch(ctx, index+1)
		}

		o.logger.Info(l10n.F("Playing part %d (%dx%d, %d frames at %d fps)",
			index, stream.Header.Width, stream.Header.Height, stream.Header.FrameCount, stream.Header.FPS))
		state.Playing = true
		played, err := o.playStage.Execute(ctx, pipeline.PlayInput{Part: index, Stream: stream})
		state.Playing = false

		stream.Close()
		if rmErr := o.fs.Remove(path); rmErr != nil {
			o.logger.Warn(l10n.F("Failed to remove %s: %s", path, rmErr))
		}
		o.recordStats(ctx, played.Stats)
		result.Parts = append(result.Parts, played.Stats)

		if err != nil {
			var failure *pipeline.FrameFailure
			switch {
			case errors.As(err, &failure):
				o.logger.Warn(l10n.F("Skipping rest of part %d: frame %d failed: %s", index, failure.Index, failure.Err))
				result.Failures = append(result.Failures, failure)
			case ctx.Err() != nil:
				result.Outcome = Cancelled
				result.Err = ctx.Err()
			default:
				o.logger.Error(l10n.F("Playback of part %d failed: %s", index, err))
				result.Outcome = Aborted
				result.Err = err
			}
			if result.Outcome == Cancelled || result.Outcome == Aborted {
				break
			}
		}

		state.PartIndex++
	}

	if pending != nil {
		r := <-pending
		if r.err == nil {
			o.fs.Remove(r.path)
		}
	}

	state.PartIndex = 1
	result.Session = state
	result.Duration = o.clock.Now().Sub(at)

	switch result.Outcome {
	case Exhausted:
		o.showMessage(o.config.FinishedMessage)
		o.logger.Info(l10n.F("Playback cycle finished: %d parts, %d frames", len(result.Parts), result.Frames()))
	case Cancelled:
		if err := o.display.Clear(); err != nil {
			o.logger.Warn(l10n.F("Failed to update display: %s", err))
		}
		o.logger.Info(l10n.F("Playback cycle ended early: %s", result.Outcome))
	default:
		o.showMessage(o.config.FailedMessage)
		o.logger.Info(l10n.F("Playback cycle ended early: %s", result.Outcome))
	}

	if o.onCycle != nil {
		o.onCycle(result)
	}
	return result
}

func (o *Orchestrator) ensureLocal(ctx context.Context, index int, path string) error {
	exists, err := o.fs.Exists(path)
	if err != nil {
		return fmt.Errorf("check part %d: %w", index, err)
	}
	if exists {
		return nil
	}
	_, err = o.fetchStage.Execute(ctx, pipeline.FetchInput{Index: index, Path: path})
	return err
}

func (o *Orchestrator) open(path string) (*bvf.Stream, error) {
	f, err := o.fs.Open(path)
	if err != nil {
		return nil, err
	}
	return bvf.Open(f)
}

// prefetch fetches part index in the background unless it is already resident.
// The returned channel always receives exactly one result.
func (o *Orchestrator) prefetch(ctx context.Context, index int) chan prefetchResult {
	path := fetch.PartPath(o.config.PartDir, index)
	ch := make(chan prefetchResult, 1)

	if exists, err := o.fs.Exists(path); err == nil && exists {
		ch <- prefetchResult{index: index, path: path}
		return ch
	}

	go func() {
		_, err := o.fetchStage.Execute(ctx, pipeline.FetchInput{Index: index, Path: path})
		ch <- prefetchResult{index: index, path: path, err: err}
	}()
	return ch
}

func (o *Orchestrator) recordStats(ctx context.Context, stats pipeline.PartStats) {
	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(stats, "", "  "); err == nil {
			o.sink.SavePartStats(stats.Part, data)
		}
	}
	if o.reporter != nil {
		if err := o.reporter.Report(ctx, stats); err != nil {
			o.logger.Warn(l10n.F("Failed to report stats: %s", err))
		}
	}
}

func (o *Orchestrator) showMessage(key string) {
	if key == "" {
		return
	}
	if err := o.display.Message(l10n.T(key)); err != nil {
		o.logger.Warn(l10n.F("Failed to update display: %s", err))
	}
}
