package mocks

import (
	"context"
	"sync"

	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
)

// StatsReporter is a mock implementation of ports.StatsReporter.
type StatsReporter struct {
	mu sync.Mutex

	ReportFunc func(ctx context.Context, stats pipeline.PartStats) error

	Reports []pipeline.PartStats
}

func (m *StatsReporter) Report(ctx context.Context, stats pipeline.PartStats) error {
	m.mu.Lock()
	m.Reports = append(m.Reports, stats)
	m.mu.Unlock()
	if m.ReportFunc != nil {
		return m.ReportFunc(ctx, stats)
	}
	return nil
}

var _ ports.StatsReporter = (*StatsReporter)(nil)
