package ports

import (
	"image"
)

// FrameRenderer rasterizes character-cell frames into images.
type FrameRenderer interface {
	// Rasterize draws text with per-cell fg and bg palette codes onto a new image.
	Rasterize(text, fg, bg []string) image.Image

	// EncodeImage encodes an image to the specified format.
	EncodeImage(img image.Image, format ImageFormat) ([]byte, error)
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)
