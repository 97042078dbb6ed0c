package gimp

import (
	"fmt"
	"io"
	"io/ioutil"
	"regexp"
	"strconv"
	"strings"
)

var (
	widthRe  = regexp.MustCompile(`\bwidth\s*=\s*(\d+)\s*;`)
	heightRe = regexp.MustCompile(`\bheight\s*=\s*(\d+)\s*;`)
	dataRe   = regexp.MustCompile(`static\s+(?:const\s+)?char\s*\*\s*header_data\s*=\s*((?:"(?:[^"\\]|\\.)*"\s*)+);`)
	stringRe = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

type decoder struct {
	src   string
	data  string
	image *Image
}

func (d *decoder) readDimension(re *regexp.Regexp, name string) (int, error) {
	m := re.FindStringSubmatch(d.src)
	if m == nil {
		return 0, FormatError("could not find " + name)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, FormatError(fmt.Sprintf("bad %s %q", name, m[1]))
	}
	return n, nil
}

func (d *decoder) readData() error {
	m := dataRe.FindStringSubmatch(d.src)
	if m == nil {
		return FormatError("could not find header_data")
	}

	var b strings.Builder
	for _, s := range stringRe.FindAllStringSubmatch(m[1], -1) {
		b.WriteString(unescaper.Replace(s[1]))
	}
	d.data = b.String()

	if len(d.data)%charsPerPixel != 0 {
		return FormatError(fmt.Sprintf("header_data length %d is not a multiple of %d", len(d.data), charsPerPixel))
	}
	return nil
}

// decodePixel unpacks four characters into a 0xRRGGBB value.
func decodePixel(s string) (uint32, error) {
	var v [charsPerPixel]uint32
	for i := range v {
		c := int(s[i]) - offset
		if c < 0 || c > maxValue {
			return 0, FormatError(fmt.Sprintf("character %q out of range", s[i]))
		}
		v[i] = uint32(c)
	}

	r := v[0]<<2 | v[1]>>4
	g := (v[1]&0xf)<<4 | v[2]>>2
	b := (v[2]&0x3)<<6 | v[3]

	return r<<16 | g<<8 | b, nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	d.src = string(b)
	d.image = &Image{}

	if d.image.Width, err = d.readDimension(widthRe, "width"); err != nil {
		return err
	}
	if d.image.Height, err = d.readDimension(heightRe, "height"); err != nil {
		return err
	}
	if d.image.Width > maxPixels/d.image.Height {
		return FormatError(fmt.Sprintf("image too large: %dx%d", d.image.Width, d.image.Height))
	}

	if configOnly {
		return nil
	}

	if err := d.readData(); err != nil {
		return err
	}

	n := len(d.data) / charsPerPixel
	if max := d.image.Width * d.image.Height; n > max {
		n = max
	}

	d.image.Pixels = make([]uint32, n)
	for i := range d.image.Pixels {
		p, err := decodePixel(d.data[i*charsPerPixel:])
		if err != nil {
			return err
		}
		d.image.Pixels[i] = p
	}

	return nil
}

// Decode reads a GIMP header image from r. Pixel data beyond Width*Height
// is ignored; shorter data is returned as is.
func Decode(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the dimensions of a GIMP header image without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (width, height int, err error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return 0, 0, err
	}
	return d.image.Width, d.image.Height, nil
}
