// Package carray renders flat pixel data as a C array declaration.
package carray

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iancoleman/strcase"
)

const (
	// DefaultName is used when an array has no name
	DefaultName = "BITMAP"
	// DefaultType is the element type of the array
	DefaultType = "uint32_t"
	// DefaultIndent prefixes every row of values
	DefaultIndent = "    "
)

// Comment is a traceability entry printed after the array, typically one
// color table entry.
type Comment struct {
	Symbol string
	Value  string
}

// Array is a C array of Width*Height values laid out in rows.
type Array struct {
	Name   string
	Type   string
	Indent string

	Width  int
	Height int
	Values []string

	// Colors, if any, are listed after the dimensions
	Colors []Comment
}

// Identifier returns the C identifier for the array name.
func Identifier(name string) string {
	if name == "" {
		return DefaultName
	}
	return strcase.ToScreamingSnake(name)
}

// Size is the declared number of elements.
func (a *Array) Size() int {
	return a.Width * a.Height
}

// Emit writes the array declaration and trailing comments to w.
func (a *Array) Emit(w io.Writer) error {
	if a.Width <= 0 {
		return fmt.Errorf("carray: invalid width %d", a.Width)
	}

	typ := a.Type
	if typ == "" {
		typ = DefaultType
	}
	indent := a.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	b := bufio.NewWriter(w)

	fmt.Fprintf(b, "const %s %s[%d] = {\n", typ, Identifier(a.Name), a.Size())
	for i := 0; i < len(a.Values); i += a.Width {
		end := i + a.Width
		if end > len(a.Values) {
			end = len(a.Values)
		}
		b.WriteString(indent)
		b.WriteString(strings.Join(a.Values[i:end], ", "))
		if end < len(a.Values) {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("};\n")

	fmt.Fprintf(b, "\n// Image dimensions: %dx%d\n", a.Width, a.Height)
	if len(a.Colors) > 0 {
		b.WriteString("// Color definitions:\n")
		for _, c := range a.Colors {
			fmt.Fprintf(b, "//   '%s': %s\n", c.Symbol, c.Value)
		}
	}

	return b.Flush()
}
