package bvf

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

// LineSource yields logical lines from either a live file or a decompressed buffer.
type LineSource interface {
	// NextLine returns the next line without its terminator, or ErrEndOfData.
	NextLine() (string, error)

	// Close releases the underlying storage.
	Close() error
}

// FileSource reads lines on demand from a live reader.
type FileSource struct {
	r      *bufio.Reader
	closer io.Closer
}

// NewFileSource wraps r. If r is an io.Closer it is closed by Close.
func NewFileSource(r io.Reader) *FileSource {
	s := &FileSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// NextLine reads up to the next '\n'. A final line without a terminator is returned as is.
func (s *FileSource) NextLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrEndOfData
			}
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Remaining drains every unread byte from the source.
func (s *FileSource) Remaining() ([]byte, error) {
	return io.ReadAll(s.r)
}

// Close closes the wrapped reader when it is closable.
func (s *FileSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// BufferSource reads lines from an in-memory buffer.
type BufferSource struct {
	buf []byte
	off int
}

// NewBufferSource returns a source positioned at the start of buf.
func NewBufferSource(buf []byte) *BufferSource {
	return &BufferSource{buf: buf}
}

// NextLine scans from the current offset to the next '\n'.
func (s *BufferSource) NextLine() (string, error) {
	if s.off >= len(s.buf) {
		return "", ErrEndOfData
	}
	rest := s.buf[s.off:]
	end := bytes.IndexByte(rest, '\n')
	if end < 0 {
		s.off = len(s.buf)
		return string(bytes.TrimSuffix(rest, []byte("\r"))), nil
	}
	s.off += end + 1
	return string(bytes.TrimSuffix(rest[:end], []byte("\r"))), nil
}

// Offset returns the byte offset of the next unread line.
func (s *BufferSource) Offset() int {
	return s.off
}

// Close drops the buffer.
func (s *BufferSource) Close() error {
	s.buf = nil
	s.off = 0
	return nil
}

var (
	_ LineSource = (*FileSource)(nil)
	_ LineSource = (*BufferSource)(nil)
)

// Cursor is the single read seam used by the header parser and the frame decoder.
// Callers never learn which LineSource is active.
type Cursor struct {
	src      LineSource
	consumed int
}

// NewCursor returns a cursor over src.
func NewCursor(src LineSource) *Cursor {
	return &Cursor{src: src}
}

// Next returns the next logical line or ErrEndOfData.
func (c *Cursor) Next() (string, error) {
	if c.src == nil {
		return "", ErrEndOfData
	}
	line, err := c.src.NextLine()
	if err != nil {
		return "", err
	}
	c.consumed++
	return line, nil
}

// Consumed returns the number of lines read through this cursor.
func (c *Cursor) Consumed() int {
	return c.consumed
}

// swap replaces the active source; the line counter restarts for the new source.
func (c *Cursor) swap(src LineSource) {
	c.src = src
	c.consumed = 0
}

// Close closes the active source.
func (c *Cursor) Close() error {
	if c.src == nil {
		return nil
	}
	err := c.src.Close()
	c.src = nil
	return err
}
