package xpm

// unusedSymbol returns the lowest printable character that is neither a
// color table symbol nor present in the pixel stream.
func unusedSymbol(p *Pixmap) (string, error) {
	var used [lastPrintable + 1]bool
	for s := range p.Colors {
		if len(s) == 1 && s[0] <= lastPrintable {
			used[s[0]] = true
		}
	}
	for _, s := range p.Pixels {
		if len(s) == 1 && s[0] <= lastPrintable {
			used[s[0]] = true
		}
	}

	for c := firstPrintable; c <= lastPrintable; c++ {
		if !used[c] {
			return string(rune(c)), nil
		}
	}
	return "", ErrSymbolsExhausted
}

// ReplaceSpaceSymbol rewrites a space pixel symbol to the lowest unused
// printable character, in both the color table and the pixel stream. It
// does nothing if the pixmap has no space symbol, so running it twice is
// harmless.
func ReplaceSpaceSymbol(p *Pixmap) error {
	if p.CharsPerPixel != 1 {
		return nil
	}
	color, ok := p.Colors[Space]
	if !ok {
		return nil
	}

	r, err := unusedSymbol(p)
	if err != nil {
		return err
	}

	delete(p.Colors, Space)
	p.Colors[r] = color

	for i, s := range p.Order {
		if s == Space {
			p.Order[i] = r
		}
	}
	for i, s := range p.Pixels {
		if s == Space {
			p.Pixels[i] = r
		}
	}

	p.Replaced = r
	return nil
}
