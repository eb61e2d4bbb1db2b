package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/bvfplay/pkg/bvf"
)

func writePart(t *testing.T, dir, name string, compressed bool, frames int) string {
	t.Helper()
	var buf bytes.Buffer
	h := bvf.Header{Width: 3, Height: 1, FPS: 100, Compressed: compressed}
	fs := make([]bvf.Frame, frames)
	for i := range fs {
		fs[i] = bvf.Frame{Text: []string{"abc"}, FG: []string{"777"}, BG: []string{"000"}}
	}
	if err := bvf.Encode(&buf, h, 1, fs); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write part: %v", err)
	}
	return path
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "bvfplay-cli")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"bvfplay"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestInspect(t *testing.T) {
	dir := tempDir(t)
	path := writePart(t, dir, "part-001.bvf", true, 4)

	out, _, err := run(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}
	for _, want := range []string{"3x1", "4 frames", "compressed", "Lines per frame: 1", "All 4 frames decoded"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestInspect_Truncated(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "short.bvf")
	os.WriteFile(path, []byte("3 1 10\n2\n\nabc\n123\n000\n"), 0644)

	_, _, err := run(t, "inspect", path)
	if err == nil {
		t.Fatal("expected inspect to fail on a truncated file")
	}
	if !strings.Contains(err.Error(), "frame 2") {
		t.Errorf("expected error to name frame 2, got %v", err)
	}
}

func TestInspect_MissingArgument(t *testing.T) {
	if _, _, err := run(t, "inspect"); err == nil {
		t.Error("expected error without a file argument")
	}
}

func TestPlay(t *testing.T) {
	dir := tempDir(t)
	path := writePart(t, dir, "clip.bvf", false, 3)
	summary := filepath.Join(dir, "summary.md")

	out, _, err := run(t, "play", "--quiet", "--summary", summary, path)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if strings.Count(out, "abc") != 3 {
		t.Errorf("expected 3 rendered frames, got output %q", out)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("expected summary file: %v", err)
	}
	if !strings.Contains(string(data), "| 1 | 3 |") {
		t.Errorf("expected summary row for 3 frames, got:\n%s", data)
	}
}

func TestPlay_StartFrame(t *testing.T) {
	dir := tempDir(t)
	path := writePart(t, dir, "clip.bvf", true, 5)

	out, _, err := run(t, "play", "--quiet", "--start-frame", "4", path)
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if strings.Count(out, "abc") != 2 {
		t.Errorf("expected frames 4 and 5 only, got output %q", out)
	}
}

func TestStream_Once(t *testing.T) {
	src := tempDir(t)
	writePart(t, src, "part-001.bvf", true, 2)
	writePart(t, src, "part-002.bvf", false, 2)
	parts := tempDir(t)

	out, _, err := run(t, "stream", "--once", "--quiet",
		"--source", filepath.Join(src, "part-%03d.bvf"),
		"--part-dir", parts,
		"--cols", "3", "--rows", "1")
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}
	if strings.Count(out, "abc") != 4 {
		t.Errorf("expected 4 rendered frames, got output %q", out)
	}

	left, _ := os.ReadDir(parts)
	if len(left) != 0 {
		t.Errorf("expected part directory to be empty, found %d entries", len(left))
	}
}

func TestStream_RequiresSource(t *testing.T) {
	if _, _, err := run(t, "stream", "--once", "--quiet"); err == nil {
		t.Error("expected error without a source")
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("expected version in output, got %q", out)
	}
}
