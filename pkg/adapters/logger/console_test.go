package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/bvfplay/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWriter(ports.LevelInfo, &out, &errOut)

	l.Debug("hidden %d", 1)
	l.Info("part %d", 2)
	l.Warn("slow frame")
	l.Error("fetch failed")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(out.String(), "part 2") {
		t.Errorf("expected info on out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "slow frame") || !strings.Contains(errOut.String(), "fetch failed") {
		t.Errorf("expected warn and error on errOut, got %q", errOut.String())
	}
}

func TestConsoleLogger_ComponentPrefix(t *testing.T) {
	var out bytes.Buffer
	l := NewWriter(ports.LevelDebug, &out, &out).WithComponent("play")

	l.Debug("frame %d", 7)

	if got := strings.TrimSpace(out.String()); got != "[play] frame 7" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	var out bytes.Buffer
	l := NewWriter(ports.LevelQuiet, &out, &out)
	l.Error("nothing")
	if out.Len() != 0 {
		t.Errorf("quiet logger wrote %q", out.String())
	}
}
