package xpm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) line(format string, a ...interface{}) {
	fmt.Fprintf(e.w, format, a...)
	e.w.WriteByte('\n')
}

func symbols(p *Pixmap) []string {
	if len(p.Order) == len(p.Colors) {
		return p.Order
	}
	s := make([]string, 0, len(p.Colors))
	for k := range p.Colors {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

func (e *encoder) encode(p *Pixmap, name string) error {
	syms := symbols(p)

	e.line("/* XPM */")
	e.line("static char *%s[] = {", name)
	e.line("/* columns rows colors chars-per-pixel */")
	e.line(`"%d %d %d %d",`, p.Width, p.Height, len(syms), p.CharsPerPixel)
	for _, s := range syms {
		e.line(`"%s c %s",`, s, p.Colors[s])
	}
	e.line("/* pixels */")
	for y := 0; y < p.Height; y++ {
		row := strings.Join(p.Pixels[y*p.Width:(y+1)*p.Width], "")
		if y == p.Height-1 {
			e.line(`"%s"`, row)
		} else {
			e.line(`"%s",`, row)
		}
	}
	e.line("};")

	return e.w.Flush()
}

// Encode writes the pixmap p to w in XPM format using name as the C
// variable name.
func Encode(w io.Writer, p *Pixmap, name string) error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return errors.New("xpm: image dimensions must be positive")
	case len(p.Pixels) != p.Width*p.Height:
		return fmt.Errorf("xpm: have %d pixels, need %d", len(p.Pixels), p.Width*p.Height)
	case p.CharsPerPixel <= 0:
		return errors.New("xpm: chars per pixel must be positive")
	}
	for _, s := range p.Pixels {
		if len(s) != p.CharsPerPixel {
			return fmt.Errorf("xpm: symbol %q is not %d characters", s, p.CharsPerPixel)
		}
		if _, ok := p.Colors[s]; !ok {
			return fmt.Errorf("xpm: symbol %q has no color", s)
		}
	}

	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(p, name)
}
