// Package bvf reads BVF video containers: a three-line text header followed by
// frame blocks that are either plain lines or a base64 zlib payload.
//
// Frames are decoded one at a time through a Cursor, so memory stays bounded by the
// size of a single frame for uncompressed parts and by the size of the inflated part
// for compressed ones.
package bvf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CompressedMarker is the exact third header line that marks a compressed payload.
const CompressedMarker = "COMPRESSED"

// Header is the parsed container header. It is immutable once parsed.
type Header struct {
	Width      uint
	Height     uint
	FPS        uint
	FrameCount uint
	Compressed bool
}

// DimensionsLine formats the first header line.
func (h Header) DimensionsLine() string {
	return fmt.Sprintf("%d %d %d", h.Width, h.Height, h.FPS)
}

// String formats the three header lines, each terminated by '\n'. Output is
// canonical: single spaces and no leading zeros, so a header parsed from "010  2 3"
// formats as "10 2 3". Canonical headers round-trip byte for byte.
func (h Header) String() string {
	marker := ""
	if h.Compressed {
		marker = CompressedMarker
	}
	return fmt.Sprintf("%s\n%d\n%s\n", h.DimensionsLine(), h.FrameCount, marker)
}

// ParseHeader reads exactly three lines from c: dimensions with FPS, frame count,
// and the compression marker. A missing marker line means uncompressed.
func ParseHeader(c *Cursor) (Header, error) {
	var h Header

	line, err := c.Next()
	if err != nil {
		return h, &ParseError{Kind: MalformedDimensions, Err: err}
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return h, &ParseError{Kind: MalformedDimensions, Line: line}
	}
	values := make([]uint, 3)
	for i, f := range fields {
		v, err := parsePositive(f)
		if err != nil {
			return h, &ParseError{Kind: MalformedDimensions, Line: line, Err: err}
		}
		values[i] = v
	}
	h.Width, h.Height, h.FPS = values[0], values[1], values[2]

	line, err = c.Next()
	if err != nil {
		return h, &ParseError{Kind: MalformedFrameCount, Err: err}
	}
	count, err := strconv.ParseUint(strings.TrimSpace(line), 10, 0)
	if err != nil {
		return h, &ParseError{Kind: MalformedFrameCount, Line: line, Err: err}
	}
	h.FrameCount = uint(count)

	line, err = c.Next()
	if err != nil && !errors.Is(err, ErrEndOfData) {
		return h, err
	}
	h.Compressed = err == nil && line == CompressedMarker

	return h, nil
}

func parsePositive(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return uint(v), nil
}

// parseCount parses a non-negative line count.
func parseCount(s string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 31)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
