package ports

import (
	"context"

	"github.com/user/bvfplay/pkg/pipeline"
)

// StatsReporter publishes per-part playback statistics to an external collector.
type StatsReporter interface {
	Report(ctx context.Context, stats pipeline.PartStats) error
}
