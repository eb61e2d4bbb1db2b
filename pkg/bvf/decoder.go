package bvf

import (
	"errors"
	"fmt"
	"io"
)

// Mode selects how frames are laid out after the header.
type Mode int

const (
	// Uncompressed frames use the header's fixed line count and carry no count line.
	Uncompressed Mode = iota
	// Compressed frames start with their own line count.
	Compressed
)

// Frame is one displayable unit: text lines and their foreground and background
// attribute lines. The three slices always have the same length.
type Frame struct {
	Text []string
	FG   []string
	BG   []string
}

// Lines returns the number of lines in each block.
func (f Frame) Lines() int {
	return len(f.Text)
}

// DecodeFrame reads one frame from c. In compressed mode a count line comes first and
// falls back to linesPerFrame when it does not parse. Text, fg, and bg blocks follow in
// that order with the same count, so the blocks can never disagree in length.
// index is 1-based and only used for error reporting.
func DecodeFrame(c *Cursor, mode Mode, linesPerFrame, index int) (Frame, error) {
	count := linesPerFrame
	if mode == Compressed {
		line, err := c.Next()
		if err != nil {
			return Frame{}, blockErr(err, "count", index)
		}
		if n, err := parseCount(line); err == nil {
			count = n
		}
	}
	if count < 0 {
		return Frame{}, &DecodeError{Kind: InvalidLineCount, Frame: index}
	}

	text, err := readBlock(c, count, "text", index)
	if err != nil {
		return Frame{}, err
	}
	fg, err := readBlock(c, count, "fg", index)
	if err != nil {
		return Frame{}, err
	}
	bg, err := readBlock(c, count, "bg", index)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Text: text, FG: fg, BG: bg}, nil
}

// maxPrealloc caps the capacity reserved from a count read out of the file. Larger
// blocks grow as lines actually arrive, so a corrupt count ends in TruncatedFrame.
const maxPrealloc = 256

func readBlock(c *Cursor, count int, block string, index int) ([]string, error) {
	lines := make([]string, 0, min(count, maxPrealloc))
	for len(lines) < count {
		line, err := c.Next()
		if err != nil {
			return nil, blockErr(err, block, index)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func blockErr(err error, block string, index int) error {
	if errors.Is(err, ErrEndOfData) {
		return &DecodeError{Kind: TruncatedFrame, Block: block, Frame: index}
	}
	return fmt.Errorf("read frame %d %s block: %w", index, block, err)
}

// Stream is an opened part: the parsed header plus a cursor positioned at the
// next undecoded frame.
type Stream struct {
	Header        Header
	LinesPerFrame int

	cursor *Cursor
	next   int
}

// Open parses the header from r and prepares the frame source. For compressed parts
// the first inflated line (lines per frame) is consumed here. For uncompressed parts
// each frame has Header.Height lines. If r is an io.Closer it is owned by the Stream.
func Open(r io.Reader) (*Stream, error) {
	file := NewFileSource(r)
	cursor := NewCursor(file)

	header, err := ParseHeader(cursor)
	if err != nil {
		file.Close()
		return nil, err
	}

	src, err := Prepare(file, header.Compressed)
	if err != nil {
		file.Close()
		return nil, err
	}

	s := &Stream{Header: header, cursor: cursor, next: 1}
	if !header.Compressed {
		s.LinesPerFrame = int(header.Height)
		return s, nil
	}

	cursor.swap(src)
	line, err := cursor.Next()
	if err != nil {
		cursor.Close()
		return nil, &DecodeError{Kind: InvalidLineCount, Err: err}
	}
	n, err := parseCount(line)
	if err != nil {
		cursor.Close()
		return nil, &DecodeError{Kind: InvalidLineCount, Err: err}
	}
	s.LinesPerFrame = n
	return s, nil
}

// Mode reports how frames in this stream are laid out.
func (s *Stream) Mode() Mode {
	if s.Header.Compressed {
		return Compressed
	}
	return Uncompressed
}

// NextIndex returns the 1-based index of the frame Next will decode.
func (s *Stream) NextIndex() int {
	return s.next
}

// Position returns the number of frame-data lines consumed so far. For compressed
// streams this includes the lines-per-frame line.
func (s *Stream) Position() int {
	return s.cursor.Consumed()
}

// Next decodes the next frame, or returns ErrEndOfData after the last declared frame.
func (s *Stream) Next() (Frame, error) {
	if s.next > int(s.Header.FrameCount) {
		return Frame{}, ErrEndOfData
	}
	frame, err := DecodeFrame(s.cursor, s.Mode(), s.LinesPerFrame, s.next)
	if err != nil {
		return Frame{}, err
	}
	s.next++
	return frame, nil
}

// Skip consumes n frames without decoding them, using the cached lines-per-frame
// value: 1+3*LinesPerFrame lines per compressed frame, 3*LinesPerFrame otherwise.
// It is meant for resuming playback at a later frame.
func (s *Stream) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if remaining := int(s.Header.FrameCount) - s.next + 1; n > remaining {
		return fmt.Errorf("bvf: cannot skip %d frames, %d remain", n, remaining)
	}
	perFrame := 3 * s.LinesPerFrame
	if s.Mode() == Compressed {
		perFrame++
	}
	for i := 0; i < n; i++ {
		for j := 0; j < perFrame; j++ {
			if _, err := s.cursor.Next(); err != nil {
				return blockErr(err, "skip", s.next)
			}
		}
		s.next++
	}
	return nil
}

// Close releases the underlying file or buffer.
func (s *Stream) Close() error {
	return s.cursor.Close()
}
