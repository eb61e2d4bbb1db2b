// Package main provides the CLI entry point for bvfplay.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/bvfplay/pkg/adapters/filesink"
	"github.com/user/bvfplay/pkg/adapters/logger"
	"github.com/user/bvfplay/pkg/adapters/nullsink"
	"github.com/user/bvfplay/pkg/ports"
)

var version = "dev"

// Flag categories
const (
	categorySource   = "Source"
	categoryPlayback = "Playback"
	categoryTrigger  = "Trigger"
	categoryMQTT     = "MQTT"
	categoryDebug    = "Debug"
	categoryLogging  = "Logging"
)

func main() {
	// A missing .env is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
	}

	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "bvfplay",
		Usage:     l10n.T("Play BVF character-cell video on a terminal"),
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			playCommand(),
			streamCommand(),
			inspectCommand(),
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, l10n.F("bvfplay version %s", version))
					return nil
				},
			},
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "log-level",
			Aliases:  []string{"l"},
			Value:    "info",
			Usage:    l10n.T("Log level (debug, info, warn, error)"),
			EnvVars:  []string{"BVFPLAY_LOG_LEVEL"},
			Category: l10n.T(categoryLogging),
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Aliases:  []string{"Q"},
			Usage:    l10n.T("Suppress all log output"),
			Category: l10n.T(categoryLogging),
		},
	}
}

func debugFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "debug-dir",
			Usage:    l10n.T("Save frame snapshots and part stats to this directory"),
			EnvVars:  []string{"BVFPLAY_DEBUG_DIR"},
			Category: l10n.T(categoryDebug),
		},
		&cli.IntFlag{
			Name:     "snapshot-every",
			Value:    30,
			Usage:    l10n.T("Save every Nth frame as PNG when a debug directory is set"),
			Category: l10n.T(categoryDebug),
		},
		&cli.IntFlag{
			Name:     "snapshot-scale",
			Value:    1,
			Usage:    l10n.T("Scale factor of frame snapshots"),
			Category: l10n.T(categoryDebug),
		},
		&cli.StringFlag{
			Name:     "summary",
			Usage:    l10n.T("Output playback summary to file (Markdown format)"),
			Category: l10n.T(categoryDebug),
		},
	}
}

// newLogger writes to stderr since the display owns stdout.
func newLogger(c *cli.Context, level string) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	if c.IsSet("log-level") || level == "" {
		level = c.String("log-level")
	}
	return logger.NewWriter(ports.ParseLogLevel(level), c.App.ErrWriter, c.App.ErrWriter)
}

func newSink(dir string, fs ports.FileSystem, renderer ports.FrameRenderer) (ports.DebugSink, error) {
	if dir == "" {
		return nullsink.New(), nil
	}
	if err := fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(dir, fs, renderer), nil
}

// withInterrupt cancels the returned context on SIGINT or SIGTERM.
func withInterrupt(parent context.Context, log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
