// Package termdisplay renders frames onto an ANSI terminal.
package termdisplay

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/user/bvfplay/pkg/palette"
	"github.com/user/bvfplay/pkg/ports"
)

const (
	csi         = "\x1b["
	resetAttrs  = csi + "0m"
	clearScreen = csi + "2J" + csi + "H"
	hideCursor  = csi + "?25l"
	showCursor  = csi + "?25h"
)

// Display writes frames as positioned lines of colored cells. A cell is one rune of
// the text line, and the fg and bg codes at the same cell position are mapped
// through the 16-color palette using 256-color SGR sequences; cells without a code
// use the terminal defaults. Each frame is assembled in memory and written with a
// single Write.
type Display struct {
	mu    sync.Mutex
	w     io.Writer
	cols  int
	rows  int
	plain bool
	buf   bytes.Buffer
}

// New creates a display of cols x rows cells writing escape sequences to w.
func New(w io.Writer, cols, rows int) *Display {
	return &Display{w: w, cols: cols, rows: rows}
}

// NewStdout creates a display on stdout. When stdout is not a terminal, frames are
// written as plain text without escape sequences.
func NewStdout(cols, rows int) *Display {
	d := New(os.Stdout, cols, rows)
	d.plain = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	if !d.plain {
		io.WriteString(d.w, hideCursor+clearScreen)
	}
	return d
}

// Render draws text line i at row i+1, clipped to the display size.
func (d *Display) Render(text, fg, bg []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buf.Reset()
	for row, line := range text {
		if d.rows > 0 && row >= d.rows {
			break
		}
		cells := d.clip(line)
		if d.plain {
			d.buf.WriteString(string(cells))
			d.buf.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&d.buf, "%s%d;1H", csi, row+1)
		d.writeCells(cells, lineAt(fg, row), lineAt(bg, row))
	}
	if !d.plain {
		d.buf.WriteString(resetAttrs)
	}
	_, err := d.w.Write(d.buf.Bytes())
	return err
}

// clip splits line into cells, cut to the display width.
func (d *Display) clip(line string) []rune {
	cells := []rune(line)
	if d.cols > 0 && len(cells) > d.cols {
		cells = cells[:d.cols]
	}
	return cells
}

func (d *Display) writeCells(cells []rune, fg, bg string) {
	lastFG, lastBG := -1, -1
	for col, cell := range cells {
		f, fok := palette.Index(palette.At(fg, col))
		b, bok := palette.Index(palette.At(bg, col))
		if !fok {
			f = -2
		}
		if !bok {
			b = -2
		}
		if f != lastFG {
			if f < 0 {
				d.buf.WriteString(csi + "39m")
			} else {
				fmt.Fprintf(&d.buf, "%s38;5;%dm", csi, f)
			}
			lastFG = f
		}
		if b != lastBG {
			if b < 0 {
				d.buf.WriteString(csi + "49m")
			} else {
				fmt.Fprintf(&d.buf, "%s48;5;%dm", csi, b)
			}
			lastBG = b
		}
		d.buf.WriteRune(cell)
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// Message clears the screen and centers text on the middle row.
func (d *Display) Message(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.plain {
		_, err := fmt.Fprintln(d.w, text)
		return err
	}

	cells := d.clip(strings.TrimRight(text, "\n"))
	row, col := 1, 1
	if d.rows > 0 {
		row = d.rows/2 + 1
	}
	if d.cols > 0 {
		col = (d.cols-len(cells))/2 + 1
	}

	d.buf.Reset()
	d.buf.WriteString(resetAttrs + clearScreen)
	fmt.Fprintf(&d.buf, "%s%d;%dH%s", csi, row, col, string(cells))
	_, err := d.w.Write(d.buf.Bytes())
	return err
}

// Clear blanks the screen.
func (d *Display) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.plain {
		return nil
	}
	_, err := io.WriteString(d.w, resetAttrs+clearScreen)
	return err
}

// Close restores the cursor.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.plain {
		return nil
	}
	_, err := io.WriteString(d.w, resetAttrs+showCursor)
	return err
}

var _ ports.Display = (*Display)(nil)
