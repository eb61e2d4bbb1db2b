// Package fetch implements the part retrieval stage.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
)

// ErrPartNotFound marks the end of a part sequence.
var ErrPartNotFound = ports.ErrPartNotFound

// Default retry policy.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 2 * time.Second
)

// FetchError reports a part that could not be retrieved after every attempt.
type FetchError struct {
	Index    int
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch part %d failed after %d attempts: %v", e.Index, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures the retry policy.
type Options struct {
	Attempts int           // Total attempts per part
	Backoff  time.Duration // Fixed delay between attempts
}

// DefaultOptions returns the default retry policy.
func DefaultOptions() Options {
	return Options{Attempts: DefaultAttempts, Backoff: DefaultBackoff}
}

// PartPath returns the local path of part index under dir.
func PartPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("part-%03d.bvf", index))
}

// Stage fetches a part and persists it to local storage.
type Stage struct {
	fetcher ports.Fetcher
	fs      ports.FileSystem
	logger  ports.Logger
	opts    Options
}

// New creates a new fetch stage.
func New(fetcher ports.Fetcher, fs ports.FileSystem, logger ports.Logger, opts Options) *Stage {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Stage{
		fetcher: fetcher,
		fs:      fs,
		logger:  logger.WithComponent("fetch"),
		opts:    opts,
	}
}

// Execute retrieves the part, retrying transient failures with a fixed backoff.
// ErrPartNotFound is returned as is without further attempts.
func (s *Stage) Execute(ctx context.Context, input pipeline.FetchInput) (pipeline.FetchResult, error) {
	result := pipeline.FetchResult{Index: input.Index, Path: input.Path}

	var lastErr error
	for attempt := 1; attempt <= s.opts.Attempts; attempt++ {
		result.Attempts = attempt

		data, err := s.fetcher.FetchPart(ctx, input.Index)
		if err == nil {
			if err := s.persist(input.Path, data); err != nil {
				return result, fmt.Errorf("persist part %d: %w", input.Index, err)
			}
			result.Size = len(data)
			s.logger.Debug("Fetched part %d (%d bytes) on attempt %d", input.Index, len(data), attempt)
			return result, nil
		}

		if errors.Is(err, ErrPartNotFound) {
			s.logger.Debug("Part %d does not exist", input.Index)
			return result, err
		}
		lastErr = err
		s.logger.Debug("Fetch attempt %d/%d for part %d failed: %v", attempt, s.opts.Attempts, input.Index, err)

		if attempt == s.opts.Attempts {
			break
		}
		select {
		case <-time.After(s.opts.Backoff):
		case <-ctx.Done():
			return result, ctx.Err()
		}
	}

	return result, &FetchError{Index: input.Index, Attempts: s.opts.Attempts, Err: lastErr}
}

func (s *Stage) persist(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := s.fs.MkdirAll(dir); err != nil {
			return err
		}
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		s.fs.Remove(path)
		return err
	}
	return nil
}
