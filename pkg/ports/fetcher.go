package ports

import (
	"context"
	"errors"
)

// ErrPartNotFound is returned by a Fetcher when the requested part does not exist.
// It marks the normal end of a sequence and is never retried.
var ErrPartNotFound = errors.New("part not found")

// Fetcher retrieves the raw bytes of one part of a video sequence.
type Fetcher interface {
	// FetchPart returns the contents of part index (1-based).
	FetchPart(ctx context.Context, index int) ([]byte, error)
}
