package img2array

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/giep/img2array/carray"
	"github.com/giep/img2array/gimp"
	"github.com/giep/img2array/xpm"
)

// Format is a supported input image format.
type Format int

const (
	// Unknown is returned by DetectFormat for unsupported extensions
	Unknown Format = iota
	// XPM pixmap
	XPM
	// Header is the GIMP C source header format
	Header
)

func (f Format) String() string {
	switch f {
	case XPM:
		return "xpm"
	case Header:
		return "header"
	default:
		return "unknown"
	}
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(file string) Format {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xpm":
		return XPM
	case ".h":
		return Header
	default:
		return Unknown
	}
}

// MapXPM maps every pixel of p to a 0xRRGGBB literal. Symbols missing from
// the color table get the default color; colors are only normalized for
// symbols that are actually used.
func (c *Converter) MapXPM(p *xpm.Pixmap) ([]string, error) {
	opts := c.opts.colorOptions()
	cache := make(map[string]string, len(p.Colors))
	values := make([]string, 0, len(p.Pixels))

	for _, s := range p.Pixels {
		v, ok := cache[s]
		if !ok {
			spec, found := p.Color(s)
			if found {
				var err error
				if v, err = xpm.NormalizeColor(spec, opts); err != nil {
					return nil, fmt.Errorf("symbol '%s': %w", s, err)
				}
			} else {
				v = c.opts.defaultColor()
				c.logger.Printf("Unknown symbol '%s', using %s\n", s, v)
			}
			cache[s] = v
		}
		values = append(values, v)
	}

	return values, nil
}

func (c *Converter) newArray(width, height int, values []string) (*carray.Array, error) {
	if c.opts.Colors > 0 {
		var err error
		if values, err = quantizeLiterals(values, c.opts.Colors); err != nil {
			return nil, err
		}
		c.logger.Printf("Reduced to at most %d colors\n", c.opts.Colors)
	}

	return &carray.Array{
		Name:   c.opts.Name,
		Type:   c.opts.Type,
		Indent: c.opts.Indent,
		Width:  width,
		Height: height,
		Values: values,
	}, nil
}

// DecodeXPM converts an XPM pixmap read from r into an array.
func (c *Converter) DecodeXPM(r io.Reader) (*carray.Array, error) {
	p, err := xpm.Decode(r)
	if err != nil {
		return nil, err
	}
	if p.Replaced != "" {
		c.logger.Printf("Replaced space symbol with '%s'\n", p.Replaced)
	}

	values, err := c.MapXPM(p)
	if err != nil {
		return nil, err
	}

	a, err := c.newArray(p.Width, p.Height, values)
	if err != nil {
		return nil, err
	}
	for _, s := range p.Order {
		a.Colors = append(a.Colors, carray.Comment{Symbol: s, Value: p.Colors[s]})
	}
	return a, nil
}

// DecodeHeader converts a GIMP header image read from r into an array.
func (c *Converter) DecodeHeader(r io.Reader) (*carray.Array, error) {
	m, err := gimp.Decode(r)
	if err != nil {
		return nil, err
	}
	if n := m.Width * m.Height; len(m.Pixels) < n {
		c.logger.Printf("Header data has %d of %d pixels\n", len(m.Pixels), n)
	}

	values := make([]string, len(m.Pixels))
	for i, p := range m.Pixels {
		values[i] = formatLiteral(p)
	}

	return c.newArray(m.Width, m.Height, values)
}

func (c *Converter) convertFile(file string, decode func(io.Reader) (*carray.Array, error)) (*carray.Array, error) {
	if err := CheckFile(file); err != nil {
		return nil, err
	}
	c.logger.Printf("Input file: %s\n", file)

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decode(f)
}

// ConvertXPM converts the XPM file into an array.
func (c *Converter) ConvertXPM(file string) (*carray.Array, error) {
	return c.convertFile(file, c.DecodeXPM)
}

// ConvertHeader converts the GIMP header file into an array.
func (c *Converter) ConvertHeader(file string) (*carray.Array, error) {
	return c.convertFile(file, c.DecodeHeader)
}

// Convert converts file using the format implied by its extension.
func (c *Converter) Convert(file string) (*carray.Array, error) {
	switch DetectFormat(file) {
	case XPM:
		return c.ConvertXPM(file)
	case Header:
		return c.ConvertHeader(file)
	default:
		return nil, fmt.Errorf("unsupported file type \"%s\"", filepath.Ext(file))
	}
}
