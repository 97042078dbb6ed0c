/*
Package gimp implements a decoder and encoder for the GIMP "C source header"
image format.

The format is a C header declaring the image width and height as
`static unsigned int` variables, followed by `static char *header_data`
holding the pixels as one or more string literals. Every pixel is written as
four printable characters, each carrying six bits offset by 33, which
together make up the 24-bit RGB value:

	r = (d0-33)<<2 | (d1-33)>>4
	g = ((d1-33)&0xf)<<4 | (d2-33)>>2
	b = ((d2-33)&0x3)<<6 | (d3-33)

There is no palette; colors are embedded directly in the data.
*/
package gimp

import (
	"image"
	"image/color"
	"math"
)

const (
	charsPerPixel = 4
	offset        = 33
	maxValue      = 1<<6 - 1
	pixelsPerLine = 16
	maxPixels     = math.MaxInt32
)

// A FormatError reports that the input is not a valid GIMP header image.
type FormatError string

func (e FormatError) Error() string { return "gimp: invalid format: " + string(e) }

// Image is a decoded header image. Pixels holds 0xRRGGBB values in
// row-major order and may be shorter than Width*Height if the data was.
type Image struct {
	Width  int
	Height int
	Pixels []uint32
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image. Pixels missing from the data are black.
func (m *Image) At(x, y int) color.Color {
	if !image.Pt(x, y).In(m.Bounds()) {
		return color.RGBA{}
	}
	i := y*m.Width + x
	if i >= len(m.Pixels) {
		return color.RGBA{A: 0xff}
	}
	v := m.Pixels[i]
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}
