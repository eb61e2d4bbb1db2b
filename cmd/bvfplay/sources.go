package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/user/bvfplay/pkg/ports"
)

// fileFetcher reads parts from a local path template such as
// /media/show/part-%03d.bvf.
type fileFetcher struct {
	template string
	fs       ports.FileSystem
}

func (f *fileFetcher) FetchPart(ctx context.Context, index int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := f.fs.ReadFile(fmt.Sprintf(f.template, index))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ports.ErrPartNotFound
	}
	return data, err
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// immediateTrigger fires as soon as it is awaited.
type immediateTrigger struct {
	clock ports.Clock
}

func (t immediateTrigger) AwaitTrigger(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	return t.clock.Now(), nil
}

var (
	_ ports.Fetcher = (*fileFetcher)(nil)
	_ ports.Trigger = immediateTrigger{}
)
