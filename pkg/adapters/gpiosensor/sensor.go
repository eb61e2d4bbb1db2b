// Package gpiosensor reads a start signal from a sysfs-style GPIO value file.
package gpiosensor

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/bvfplay/pkg/ports"
)

// Sensor implements ports.LevelSensor by reading a file containing "0" or "1",
// such as /sys/class/gpio/gpio17/value.
type Sensor struct {
	fs        ports.FileSystem
	path      string
	activeLow bool
}

// New creates a new Sensor. With activeLow the signal is asserted when the
// file reads "0".
func New(fs ports.FileSystem, path string, activeLow bool) *Sensor {
	return &Sensor{fs: fs, path: path, activeLow: activeLow}
}

// Active reports whether the signal is asserted.
func (s *Sensor) Active(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.path, err)
	}

	var high bool
	switch v := strings.TrimSpace(string(data)); v {
	case "1":
		high = true
	case "0":
		high = false
	default:
		return false, fmt.Errorf("read %s: unexpected value %q", s.path, v)
	}
	return high != s.activeLow, nil
}

var _ ports.LevelSensor = (*Sensor)(nil)
