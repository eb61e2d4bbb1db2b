package main

import (
	"errors"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/bvfplay/pkg/adapters/osfilesystem"
	"github.com/user/bvfplay/pkg/bvf"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     l10n.T("Validate a BVF file and print its header"),
		ArgsUsage: "<file>",
		Action:    runInspect,
	}
}

func runInspect(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit(l10n.T("A file argument is required"), 2)
	}
	out := c.App.Writer

	stream, err := openPart(osfilesystem.New(), c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer stream.Close()

	h := stream.Header
	mode := "uncompressed"
	if h.Compressed {
		mode = "compressed"
	}
	fmt.Fprintln(out, l10n.F("Header: %dx%d at %d fps, %d frames, %s", h.Width, h.Height, h.FPS, h.FrameCount, mode))
	fmt.Fprintln(out, l10n.F("Lines per frame: %d", stream.LinesPerFrame))

	for i := 1; i <= int(h.FrameCount); i++ {
		if _, err := stream.Next(); err != nil {
			var derr *bvf.DecodeError
			if errors.As(err, &derr) && derr.Kind == bvf.TruncatedFrame && derr.Block == "count" {
				return cli.Exit(l10n.F("Header declares %d frames but %d were found", h.FrameCount, i-1), 1)
			}
			return cli.Exit(l10n.F("Frame %d failed to decode: %v", i, err), 1)
		}
	}
	fmt.Fprintln(out, l10n.F("All %d frames decoded successfully", h.FrameCount))
	return nil
}
