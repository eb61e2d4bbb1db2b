// Package play implements the drift-compensated playback stage.
package play

import (
	"context"
	"fmt"
	"time"

	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
)

// DefaultFPS applies when a part does not declare a usable frame rate.
const DefaultFPS = 10

// Options configures playback.
type Options struct {
	DefaultFPS    int // Fallback frame rate
	SnapshotEvery int // Save every Nth frame to the debug sink, 0 disables
}

// Stage plays the frames of one opened part onto a display at the part's declared
// frame rate. Frame targets are anchored to the part start, so a slow frame delays
// only itself: later frames are not pushed back and sleeps are never negative.
type Stage struct {
	display  ports.Display
	clock    ports.Clock
	renderer ports.FrameRenderer
	sink     ports.DebugSink
	logger   ports.Logger
	opts     Options
}

// New creates a new play stage.
func New(display ports.Display, clock ports.Clock, renderer ports.FrameRenderer, sink ports.DebugSink, logger ports.Logger, opts Options) *Stage {
	if opts.DefaultFPS <= 0 {
		opts.DefaultFPS = DefaultFPS
	}
	return &Stage{
		display:  display,
		clock:    clock,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("play"),
		opts:     opts,
	}
}

// Interval returns the frame interval for a declared frame rate.
func (s *Stage) Interval(fps uint) time.Duration {
	if fps == 0 {
		fps = uint(s.opts.DefaultFPS)
	}
	return time.Second / time.Duration(fps)
}

// Execute plays every remaining frame of input.Stream in order. A frame that fails
// to decode stops the part with a *pipeline.FrameFailure; frames already shown
// are counted in the returned stats. The context is only checked between frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlayInput) (pipeline.PlayResult, error) {
	stream := input.Stream
	first := stream.NextIndex()
	total := int(stream.Header.FrameCount) - first + 1

	clock := pipeline.NewPlaybackClock(s.clock.Now(), s.Interval(stream.Header.FPS))
	s.logger.Debug("Playing part %d: %d frames at %s per frame", input.Part, total, clock.Interval)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return pipeline.PlayResult{Stats: clock.Stats(input.Part, s.clock.Now())}, err
		}

		index := first + i - 1
		begin := s.clock.Now()
		drift := begin.Sub(clock.Target(i))

		frame, err := stream.Next()
		if err != nil {
			return pipeline.PlayResult{Stats: clock.Stats(input.Part, s.clock.Now())},
				&pipeline.FrameFailure{Part: input.Part, Index: index, Err: err}
		}
		if err := s.display.Render(frame.Text, frame.FG, frame.BG); err != nil {
			return pipeline.PlayResult{Stats: clock.Stats(input.Part, s.clock.Now())},
				fmt.Errorf("render frame %d: %w", index, err)
		}

		process := s.clock.Now().Sub(begin)
		clock.Record(drift, process)
		if process > clock.Interval {
			s.logger.Debug("Frame %d overran its slot by %s", index, process-clock.Interval)
		}

		if s.opts.SnapshotEvery > 0 && index%s.opts.SnapshotEvery == 0 && s.sink.Enabled() {
			img := s.renderer.Rasterize(frame.Text, frame.FG, frame.BG)
			if err := s.sink.SaveFrame(input.Part, index, img); err != nil {
				s.logger.Debug("Failed to save snapshot of frame %d: %v", index, err)
			}
		}

		if wait := clock.Deadline(i).Sub(s.clock.Now()); wait > 0 {
			s.clock.Sleep(wait)
		}
	}

	stats := clock.Stats(input.Part, s.clock.Now())
	s.logger.Debug("Part %d finished: %d frames, %.2f fps, max drift %s",
		input.Part, stats.Frames, stats.AchievedFPS, stats.MaxDrift)
	return pipeline.PlayResult{Stats: stats}, nil
}
