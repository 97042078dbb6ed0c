package img2array

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// MaxColors is the largest palette an image.Paletted can index
	MaxColors = 256

	refineIterations = 8
)

func formatLiteral(v uint32) string {
	return fmt.Sprintf("0x%02X%02X%02X", v>>16&0xff, v>>8&0xff, v&0xff)
}

// parseLiteral parses a 0xRRGGBB literal.
func parseLiteral(s string) (uint32, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return 0, fmt.Errorf("\"%s\" is not a hex literal", s)
	}
	v, err := strconv.ParseUint(s[2:], 16, 24)
	if err != nil {
		return 0, fmt.Errorf("\"%s\" is not a 24-bit color", s)
	}
	return uint32(v), nil
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// refinePalette moves every palette entry to the rounded mean of the colors
// nearest to it, weighted by how often they occur. Median cut can leave
// unrelated colors in one box on small images; a few rounds of this pull
// them apart again.
func refinePalette(p color.Palette, counts map[uint32]int) color.Palette {
	rp := make(color.Palette, len(p))
	for i, c := range p {
		rp[i] = color.RGBAModel.Convert(c)
	}
	p = rp

	for i := 0; i < refineIterations; i++ {
		sums := make([][4]int, len(p)) // r, g, b, n
		for v, n := range counts {
			j := p.Index(rgb(v))
			sums[j][0] += int(v>>16&0xff) * n
			sums[j][1] += int(v>>8&0xff) * n
			sums[j][2] += int(v&0xff) * n
			sums[j][3] += n
		}

		changed := false
		for j, s := range sums {
			n := s[3]
			if n == 0 {
				continue
			}
			c := color.RGBA{
				uint8((s[0] + n/2) / n),
				uint8((s[1] + n/2) / n),
				uint8((s[2] + n/2) / n),
				0xff,
			}
			if c != color.RGBAModel.Convert(p[j]) {
				p[j] = c
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return p
}

// quantizeLiterals reduces values to at most n distinct colors using median
// cut. Values that already use n colors or fewer are returned unchanged.
func quantizeLiterals(values []string, n int) ([]string, error) {
	if n > MaxColors {
		n = MaxColors
	}

	pixels := make([]uint32, len(values))
	counts := make(map[uint32]int)
	for i, s := range values {
		v, err := parseLiteral(s)
		if err != nil {
			return nil, err
		}
		pixels[i] = v
		counts[v]++
	}
	if len(counts) <= n {
		return values, nil
	}

	// Pixel layout doesn't matter to the quantizer, a single row avoids
	// padding out short header data
	bounds := image.Rect(0, 0, len(pixels), 1)
	m := image.NewRGBA(bounds)
	for i, v := range pixels {
		m.SetRGBA(i, 0, rgb(v))
	}

	q := quantize.MedianCutQuantizer{Aggregation: quantize.Mean}
	palette := refinePalette(q.Quantize(make(color.Palette, 0, n), m), counts)

	pm := image.NewPaletted(bounds, palette)
	draw.Draw(pm, bounds, m, bounds.Min, draw.Src)

	out := make([]string, len(pixels))
	for i := range out {
		c := color.RGBAModel.Convert(pm.Palette[pm.ColorIndexAt(i, 0)]).(color.RGBA)
		out[i] = formatLiteral(uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B))
	}
	return out, nil
}
