package gimp

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const macro = `/*  Call this macro repeatedly.  After each use, the pixel data can be extracted  */

#define HEADER_PIXEL(data,pixel) {\
pixel[0] = (((data[0] - 33) << 2) | ((data[1] - 33) >> 4)); \
pixel[1] = ((((data[1] - 33) & 0xF) << 4) | ((data[2] - 33) >> 2)); \
pixel[2] = ((((data[2] - 33) & 0x3) << 6) | ((data[3] - 33))); \
data += 4; \
}
`

type encoder struct {
	w *bufio.Writer
}

// encodePixel packs an RGB triple into four characters, escaping the ones
// that can't appear as is in a C string literal.
func encodePixel(r, g, b uint8) string {
	v := [charsPerPixel]byte{
		r >> 2,
		(r&0x3)<<4 | g>>4,
		(g&0xf)<<2 | b>>6,
		b & 0x3f,
	}

	s := make([]byte, 0, charsPerPixel*2)
	for _, c := range v {
		c += offset
		if c == '"' || c == '\\' {
			s = append(s, '\\')
		}
		s = append(s, c)
	}
	return string(s)
}

func (e *encoder) encode(m image.Image, name string) error {
	b := m.Bounds()

	fmt.Fprintf(e.w, "/*  GIMP header image file format (RGB): %s  */\n\n", name)
	fmt.Fprintf(e.w, "static unsigned int width = %d;\n", b.Dx())
	fmt.Fprintf(e.w, "static unsigned int height = %d;\n\n", b.Dy())
	e.w.WriteString(macro)
	e.w.WriteString("static char *header_data =")

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if i%pixelsPerLine == 0 {
				if i > 0 {
					e.w.WriteByte('"')
				}
				e.w.WriteString("\n\t\"")
			}
			c := color.RGBAModel.Convert(m.At(x, y)).(color.RGBA)
			e.w.WriteString(encodePixel(c.R, c.G, c.B))
			i++
		}
	}
	e.w.WriteString("\";\n")

	return e.w.Flush()
}

// Encode writes the Image m to w in GIMP header format. The alpha channel is
// discarded and name only appears in the leading comment.
func Encode(w io.Writer, m image.Image, name string) error {
	if m.Bounds().Empty() {
		return errors.New("gimp: image is empty")
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(m, name)
}
