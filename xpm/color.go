package xpm

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

const hexDigits = "0123456789abcdefABCDEF"

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(hexDigits, c) {
			return false
		}
	}
	return true
}

// ColorOptions controls how non-hex color specifications are handled.
type ColorOptions struct {
	// NamedColors resolves CSS and X11 color names
	NamedColors bool
	// Transparent is used for "None" entries; empty means they are an error
	Transparent string
}

// NormalizeColor converts an XPM color specification into a 0xRRGGBB
// literal. The case of hex digits is preserved.
func NormalizeColor(spec string, opts ColorOptions) (string, error) {
	if strings.HasPrefix(spec, "#") && isHex(spec[1:]) {
		switch h := spec[1:]; len(h) {
		case 6:
			return "0x" + h, nil
		case 3:
			return "0x" + string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}), nil
		}
	}

	if strings.EqualFold(spec, "None") || strings.EqualFold(spec, "transparent") {
		if opts.Transparent != "" {
			return opts.Transparent, nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedColor, spec)
	}

	if opts.NamedColors {
		// X11 names may contain spaces ("light grey")
		c, err := csscolorparser.Parse(strings.ReplaceAll(spec, " ", ""))
		if err == nil {
			r, g, b, _ := c.RGBA255()
			return fmt.Sprintf("0x%02X%02X%02X", r, g, b), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedColor, spec)
}
