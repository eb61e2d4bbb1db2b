package mocks

import (
	"image"

	"github.com/user/bvfplay/pkg/ports"
)

// Renderer is a mock implementation of ports.FrameRenderer.
type Renderer struct {
	RasterizeFunc   func(text, fg, bg []string) image.Image
	EncodeImageFunc func(img image.Image, format ports.ImageFormat) ([]byte, error)

	Rasterized int
}

func (m *Renderer) Rasterize(text, fg, bg []string) image.Image {
	m.Rasterized++
	if m.RasterizeFunc != nil {
		return m.RasterizeFunc(text, fg, bg)
	}
	width := 0
	for _, line := range text {
		if len(line) > width {
			width = len(line)
		}
	}
	return image.NewRGBA(image.Rect(0, 0, width, len(text)))
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format)
	}
	return []byte{}, nil
}

var _ ports.FrameRenderer = (*Renderer)(nil)
