package xpm

import (
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Width*Height*CharsPerPixel must stay below this
const maxSymbols = math.MaxInt32

var valuesLine = regexp.MustCompile(`^\s*"\s*(\d+)\s+(\d+)\s+(\d+)\s+(\d+)(?:\s+\d+\s+\d+)?(?:\s+XPMEXT)?\s*"`)

// Keys that may precede a color in the color table
var visualKeys = map[string]struct{}{
	"c":  {},
	"m":  {},
	"g":  {},
	"g4": {},
	"s":  {},
}

type decoder struct {
	lines []string
	pos   int

	pixmap *Pixmap
}

// quoted returns the content between the first and last double quote of
// line, and whether the line is a quoted string at all.
func quoted(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, `"`) {
		return "", false
	}
	end := strings.LastIndex(line, `"`)
	if end == 0 {
		return line[1:], true
	}
	return line[1:end], true
}

// nextQuoted advances to the next quoted line, skipping comments and other
// C syntax in between.
func (d *decoder) nextQuoted() (string, bool) {
	for d.pos < len(d.lines) {
		s, ok := quoted(d.lines[d.pos])
		d.pos++
		if ok {
			return s, true
		}
	}
	return "", false
}

func (d *decoder) readHeader() error {
	for i, line := range d.lines {
		m := valuesLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		var v [4]int
		for j := range v {
			n, err := strconv.Atoi(m[j+1])
			if err != nil {
				return FormatError("bad values line")
			}
			v[j] = n
		}

		h := Header{
			Width:         v[0],
			Height:        v[1],
			NumColors:     v[2],
			CharsPerPixel: v[3],
		}
		switch {
		case h.Width <= 0 || h.Height <= 0:
			return FormatError("image dimensions must be positive")
		case h.CharsPerPixel <= 0:
			return FormatError("chars per pixel must be positive")
		case h.Width > maxSymbols/h.Height/h.CharsPerPixel:
			return FormatError(fmt.Sprintf("image too large: %dx%d", h.Width, h.Height))
		}

		d.pixmap.Header = h
		d.pos = i + 1
		return nil
	}
	return FormatError("could not find dimension information")
}

// parseColor splits a color table entry after the symbol into the color
// specification, preferring the "c" key when several are given.
func parseColor(rest string) string {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	if _, ok := visualKeys[fields[0]]; !ok || len(fields) == 1 {
		return strings.Join(fields, " ")
	}

	values := make(map[string][]string)
	var first, key string
	for _, f := range fields {
		if _, ok := visualKeys[f]; ok {
			key = f
			if first == "" {
				first = f
			}
			continue
		}
		values[key] = append(values[key], f)
	}

	if v, ok := values["c"]; ok {
		return strings.Join(v, " ")
	}
	return strings.Join(values[first], " ")
}

func (d *decoder) readColors() error {
	p := d.pixmap
	p.Colors = make(map[string]string)

	for i := 0; i < p.NumColors; i++ {
		s, ok := d.nextQuoted()
		if !ok {
			return FormatError(fmt.Sprintf("expected %d colors, found %d", p.NumColors, i))
		}
		if len(s) < p.CharsPerPixel {
			return FormatError(fmt.Sprintf("color entry %q too short", s))
		}

		symbol := s[:p.CharsPerPixel]
		if _, ok := p.Colors[symbol]; !ok {
			p.Order = append(p.Order, symbol)
		}
		// Later definitions win
		p.Colors[symbol] = parseColor(s[p.CharsPerPixel:])
	}
	return nil
}

func (d *decoder) readPixels() error {
	p := d.pixmap

	var b strings.Builder
	for {
		s, ok := d.nextQuoted()
		if !ok {
			break
		}
		b.WriteString(s)
	}
	data := b.String()

	n := p.Width * p.Height
	if len(data) < n*p.CharsPerPixel {
		return FormatError(fmt.Sprintf("not enough pixel data: have %d symbols, need %d", len(data)/p.CharsPerPixel, n))
	}

	p.Pixels = make([]string, n)
	for i := range p.Pixels {
		p.Pixels[i] = data[i*p.CharsPerPixel : (i+1)*p.CharsPerPixel]
	}
	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}

	d.lines = strings.Split(strings.TrimSpace(string(b)), "\n")
	for i, l := range d.lines {
		d.lines[i] = strings.TrimRight(l, "\r")
	}
	d.pixmap = &Pixmap{}

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readColors(); err != nil {
		return err
	}

	if err := d.readPixels(); err != nil {
		return err
	}

	return ReplaceSpaceSymbol(d.pixmap)
}

// Decode reads an XPM pixmap from r.
func Decode(r io.Reader) (*Pixmap, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.pixmap, nil
}

// DecodeConfig returns the values line of an XPM pixmap without decoding the
// color table or pixels.
func DecodeConfig(r io.Reader) (Header, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Header{}, err
	}
	return d.pixmap.Header, nil
}
