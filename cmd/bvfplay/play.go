package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bvfplay/pkg/adapters/ggrenderer"
	"github.com/user/bvfplay/pkg/adapters/osfilesystem"
	"github.com/user/bvfplay/pkg/adapters/termdisplay"
	"github.com/user/bvfplay/pkg/bvf"
	"github.com/user/bvfplay/pkg/pipeline"
	"github.com/user/bvfplay/pkg/ports"
	"github.com/user/bvfplay/pkg/stages/play"
	"github.com/user/bvfplay/pkg/summarizer"
)

func playCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:     "start-frame",
			Aliases:  []string{"s"},
			Value:    1,
			Usage:    l10n.T("Frame to start playback at (1-based)"),
			Category: l10n.T(categoryPlayback),
		},
		&cli.BoolFlag{
			Name:     "loop",
			Usage:    l10n.T("Replay the file until interrupted"),
			Category: l10n.T(categoryPlayback),
		},
		&cli.IntFlag{
			Name:     "fps",
			Value:    play.DefaultFPS,
			Usage:    l10n.T("Frame rate used when the file declares none"),
			Category: l10n.T(categoryPlayback),
		},
	}
	flags = append(flags, debugFlags()...)
	flags = append(flags, loggingFlags()...)

	return &cli.Command{
		Name:      "play",
		Usage:     l10n.T("Play a local BVF file"),
		ArgsUsage: "<file>",
		Flags:     flags,
		Action:    runPlay,
	}
}

func runPlay(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("A file argument is required"), 2)
	}
	path := c.Args().First()
	log := newLogger(c, "")

	ctx, cancel := withInterrupt(c.Context, log)
	defer cancel()

	fs := osfilesystem.New()
	renderer := ggrenderer.New(c.Int("snapshot-scale"))
	sink, err := newSink(c.String("debug-dir"), fs, renderer)
	if err != nil {
		return err
	}
	opts := play.Options{DefaultFPS: c.Int("fps")}
	if c.String("debug-dir") != "" {
		opts.SnapshotEvery = c.Int("snapshot-every")
	}

	summary := summarizer.NewBuilder().
		WithSource(path).
		WithSettings(summarizer.Settings{DefaultFPS: opts.DefaultFPS, Trigger: "none"})

	var display *termdisplay.Display
	defer func() {
		if display != nil {
			display.Close()
		}
	}()

	log.Info(l10n.F("Playing %s", path))
	start := c.Int("start-frame")
	var playErr error
	for pass := 1; ; pass++ {
		stream, err := openPart(fs, path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		if display == nil {
			display = newTerminal(c.App.Writer, int(stream.Header.Width), int(stream.Header.Height))
		}
		if pass == 1 && start > 1 {
			if err := stream.Skip(start - 1); err != nil {
				stream.Close()
				return fmt.Errorf("skip to frame %d: %w", start, err)
			}
		}

		stage := play.New(display, ports.SystemClock{}, renderer, sink, log, opts)
		result, err := stage.Execute(ctx, pipeline.PlayInput{Part: pass, Stream: stream})
		stream.Close()
		summary.WithPart(result.Stats)

		var failure *pipeline.FrameFailure
		switch {
		case ctx.Err() != nil:
		case errors.As(err, &failure):
			log.Warn(l10n.F("Frame %d failed to decode: %v", failure.Index, failure.Err))
			summary.WithFailure(failure.Part, failure.Index, failure.Err)
			playErr = err
		case err != nil:
			return err
		}

		if !c.Bool("loop") || ctx.Err() != nil {
			break
		}
	}

	if p := c.String("summary"); p != "" {
		if err := summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs).Write(p, summary.Build()); err != nil {
			log.Error(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", p))
		}
	}

	if playErr != nil {
		return cli.Exit(playErr.Error(), 1)
	}
	return nil
}

func openPart(fs ports.FileSystem, path string) (*bvf.Stream, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	return bvf.Open(f)
}

// newTerminal uses the real stdout display when writing to the process stdout.
func newTerminal(w io.Writer, cols, rows int) *termdisplay.Display {
	if f, ok := w.(*os.File); ok && f == os.Stdout {
		return termdisplay.NewStdout(cols, rows)
	}
	return termdisplay.New(w, cols, rows)
}
