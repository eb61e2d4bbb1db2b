// Package ggrenderer rasterizes character-cell frames using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"

	"github.com/user/bvfplay/pkg/palette"
	"github.com/user/bvfplay/pkg/ports"
)

// Cell size of the built-in 7x13 bitmap face.
const (
	CellWidth  = 7
	CellHeight = 13
)

// jpegQuality is used when snapshots are written as JPEG.
const jpegQuality = 85

// Renderer implements ports.FrameRenderer using the gg library.
type Renderer struct {
	scale int
}

// New creates a new Renderer. Output images are scaled by an integer factor,
// values below 1 mean no scaling.
func New(scale int) *Renderer {
	if scale < 1 {
		scale = 1
	}
	return &Renderer{scale: scale}
}

// Rasterize draws every cell: a background rectangle in the bg color and the glyph
// in the fg color. The image is as wide as the longest text line.
func (r *Renderer) Rasterize(text, fg, bg []string) image.Image {
	cols := 1
	for _, line := range text {
		if n := utf8.RuneCountInString(line); n > cols {
			cols = n
		}
	}
	rows := len(text)
	if rows == 0 {
		rows = 1
	}

	dc := gg.NewContext(cols*CellWidth, rows*CellHeight)
	dc.SetColor(palette.DefaultBG)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for row, line := range text {
		y := float64(row * CellHeight)
		for col, ch := range []rune(line) {
			x := float64(col * CellWidth)

			if i, ok := palette.Index(palette.At(lineAt(bg, row), col)); ok {
				dc.SetColor(palette.RGBA(i))
				dc.DrawRectangle(x, y, CellWidth, CellHeight)
				dc.Fill()
			}

			if ch == ' ' {
				continue
			}
			dc.SetColor(palette.Resolve(palette.At(lineAt(fg, row), col), palette.DefaultFG))
			dc.DrawString(string(ch), x, y+float64(basicfont.Face7x13.Ascent))
		}
	}

	img := dc.Image()
	if r.scale == 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*r.scale, b.Dy()*r.scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

var _ ports.FrameRenderer = (*Renderer)(nil)
