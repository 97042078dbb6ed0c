/*
Package xpm implements an XPM pixmap decoder and encoder.

Only the parts of the format needed to turn a pixmap into a flat list of
colors are understood: the values line, the color table and the quoted pixel
rows. Extensions and hotspots are tolerated but ignored.

Pixmaps that use the space character as a pixel symbol have it replaced with
the lowest unused printable character while decoding, see
ReplaceSpaceSymbol.
*/
package xpm

import "errors"

const (
	firstPrintable = 33
	lastPrintable  = 126

	// Space is the pixel symbol that gets replaced while decoding
	Space = " "
)

var (
	// ErrSymbolsExhausted is returned when a space symbol needs replacing
	// but every printable character is already in use
	ErrSymbolsExhausted = errors.New("xpm: no unused printable character left")

	// ErrUnsupportedColor is returned for color specifications that can't
	// be expressed as a 24-bit value
	ErrUnsupportedColor = errors.New("xpm: unsupported color format")
)

// A FormatError reports that the input is not a valid XPM pixmap.
type FormatError string

func (e FormatError) Error() string { return "xpm: invalid format: " + string(e) }

// Header holds the four values from the XPM values line.
type Header struct {
	Width         int
	Height        int
	NumColors     int
	CharsPerPixel int
}

// Pixmap is a decoded XPM image.
type Pixmap struct {
	Header

	// Colors maps each pixel symbol to its raw color specification
	Colors map[string]string
	// Order lists the symbols in the order they were first defined
	Order []string
	// Pixels holds exactly Width*Height symbols in row-major order
	Pixels []string

	// Replaced is the symbol used instead of a space symbol, if any
	Replaced string
}

// Color returns the color specification for the symbol s.
func (p *Pixmap) Color(s string) (string, bool) {
	c, ok := p.Colors[s]
	return c, ok
}
