// Package palette maps BVF cell color codes to the 16-color terminal palette.
//
// Each character of an fg or bg line is one hex digit naming a palette entry.
// Any other character selects the display's default color for that cell.
package palette

import "image/color"

// Size is the number of palette entries.
const Size = 16

// Index returns the palette entry of code, or false for the default color.
func Index(code byte) (int, bool) {
	switch {
	case code >= '0' && code <= '9':
		return int(code - '0'), true
	case code >= 'a' && code <= 'f':
		return int(code-'a') + 10, true
	case code >= 'A' && code <= 'F':
		return int(code-'A') + 10, true
	}
	return 0, false
}

// Code returns the code character for palette entry i.
func Code(i int) byte {
	return "0123456789abcdef"[i&0xf]
}

// xterm default values for the 16 standard colors.
var colors = [Size]color.RGBA{
	{0, 0, 0, 255},
	{205, 0, 0, 255},
	{0, 205, 0, 255},
	{205, 205, 0, 255},
	{0, 0, 238, 255},
	{205, 0, 205, 255},
	{0, 205, 205, 255},
	{229, 229, 229, 255},
	{127, 127, 127, 255},
	{255, 0, 0, 255},
	{0, 255, 0, 255},
	{255, 255, 0, 255},
	{92, 92, 255, 255},
	{255, 0, 255, 255},
	{0, 255, 255, 255},
	{255, 255, 255, 255},
}

// Default colors for cells without a palette code.
var (
	DefaultFG = colors[7]
	DefaultBG = colors[0]
)

// RGBA returns the color of palette entry i.
func RGBA(i int) color.RGBA {
	return colors[i&0xf]
}

// Resolve returns the color for code, falling back to def.
func Resolve(code byte, def color.RGBA) color.RGBA {
	if i, ok := Index(code); ok {
		return colors[i]
	}
	return def
}

// At returns the code for column col of line, or 0 when line is shorter.
func At(line string, col int) byte {
	if col < len(line) {
		return line[col]
	}
	return 0
}
