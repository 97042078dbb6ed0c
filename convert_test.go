package img2array

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giep/img2array/xpm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checker = `/* XPM */
static char *checker[] = {
"2 2 2 1",
". c #000000",
"X c #FFFFFF",
".X",
"X."
};
`

func writeFile(t *testing.T, dir, name, content string) string {
	file := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(file, []byte(content), 0644))
	return file
}

func testLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "img2array")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestConvertXPM(t *testing.T) {
	file := writeFile(t, tempDir(t), "checker.xpm", checker)

	a, err := New(Options{}, nil).ConvertXPM(file)
	require.NoError(t, err)

	b := new(bytes.Buffer)
	require.NoError(t, a.Emit(b))
	assert.Equal(t, `const uint32_t BITMAP[4] = {
    0x000000, 0xFFFFFF,
    0xFFFFFF, 0x000000
};

// Image dimensions: 2x2
// Color definitions:
//   '.': #000000
//   'X': #FFFFFF
`, b.String())
}

func TestConvertMissingFile(t *testing.T) {
	file := filepath.Join(tempDir(t), "missing.xpm")

	_, err := New(Options{}, nil).ConvertXPM(file)
	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, file, fe.Path)
	assert.Equal(t, "File '"+file+"' does not exist.", err.Error())

	_, err = New(Options{}, nil).ConvertHeader(file)
	assert.IsType(t, &FileError{}, err)
}

func TestCheckFileDirectory(t *testing.T) {
	assert.IsType(t, &FileError{}, CheckFile(tempDir(t)))
}

func TestMapXPM(t *testing.T) {
	p := &xpm.Pixmap{
		Header: xpm.Header{Width: 4, Height: 1, NumColors: 2, CharsPerPixel: 1},
		Colors: map[string]string{"a": "#aBcDeF", "n": "None"},
		Pixels: []string{"a", "?", "a", "?"},
	}

	values, err := New(Options{}, nil).MapXPM(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"0xaBcDeF", "0xFFFFFF", "0xaBcDeF", "0xFFFFFF"}, values)
	assert.Len(t, values, p.Width*p.Height)

	values, err = New(Options{Default: "0x123456"}, nil).MapXPM(p)
	require.NoError(t, err)
	assert.Equal(t, "0x123456", values[1])
}

func TestMapXPMUnsupportedColor(t *testing.T) {
	p := &xpm.Pixmap{
		Header: xpm.Header{Width: 2, Height: 1, NumColors: 2, CharsPerPixel: 1},
		Colors: map[string]string{"a": "#000000", "n": "None"},
		Pixels: []string{"a", "n"},
	}

	_, err := New(Options{}, nil).MapXPM(p)
	assert.True(t, errors.Is(err, xpm.ErrUnsupportedColor))

	values, err := New(Options{Transparent: "0x000000"}, nil).MapXPM(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x000000", "0x000000"}, values)
}

func TestDecodeXPMSpaceSymbol(t *testing.T) {
	in := `"2 1 2 1",
"  c #00FF00",
"x c #0000FF",
" x"`

	b := new(bytes.Buffer)
	c := New(Options{}, testLogger(b))
	a, err := c.DecodeXPM(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"0x00FF00", "0x0000FF"}, a.Values)
	assert.Equal(t, "!", a.Colors[0].Symbol)
	assert.Contains(t, b.String(), "Replaced space symbol with '!'")
}

func TestDecodeHeader(t *testing.T) {
	in := "static unsigned int width = 2;\nstatic unsigned int height = 1;\nstatic char *header_data =\n\t\"`Q!!!!$)\";\n"

	a, err := New(Options{Name: "led strip"}, nil).DecodeHeader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "led strip", a.Name)
	assert.Equal(t, []string{"0xFF0000", "0x0000C8"}, a.Values)
	assert.Empty(t, a.Colors)
}

func TestDecodeHeaderShort(t *testing.T) {
	in := "width = 2;\nheight = 1;\nstatic char *header_data = \"`Q!!\";\n"

	b := new(bytes.Buffer)
	a, err := New(Options{}, testLogger(b)).DecodeHeader(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"0xFF0000"}, a.Values)
	assert.Equal(t, 2, a.Size())
	assert.Contains(t, b.String(), "Header data has 1 of 2 pixels")
}

func TestQuantize(t *testing.T) {
	in := `"4 1 4 1",
"a c #FF0000",
"b c #FE0000",
"c c #0000FF",
"d c #0000FE",
"abcd"`

	a, err := New(Options{Colors: 2}, nil).DecodeXPM(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, a.Values, 4)

	assert.Equal(t, []string{"0xFF0000", "0xFF0000", "0x0000FF", "0x0000FF"}, a.Values)
}

func TestQuantizeFewColors(t *testing.T) {
	values := []string{"0xaBcDeF", "0x000000", "0xaBcDeF"}

	out, err := quantizeLiterals(values, 2)
	require.NoError(t, err)
	assert.Equal(t, values, out)
}

func TestQuantizePaletteLimit(t *testing.T) {
	values := make([]string, 0, 400)
	for i := 0; i < 400; i++ {
		values = append(values, formatLiteral(uint32(i*0x9E3779)&0xffffff))
	}

	out, err := quantizeLiterals(values, 400)
	require.NoError(t, err)
	require.Len(t, out, len(values))

	distinct := make(map[string]struct{})
	for _, v := range out {
		distinct[v] = struct{}{}
	}
	assert.True(t, len(distinct) <= MaxColors)

	// Every pixel keeps a nearby color rather than an arbitrary palette entry
	for i, v := range values {
		want, err := parseLiteral(v)
		require.NoError(t, err)
		got, err := parseLiteral(out[i])
		require.NoError(t, err)
		for shift := uint(0); shift < 24; shift += 8 {
			d := int(want>>shift&0xff) - int(got>>shift&0xff)
			assert.True(t, d < 128 && d > -128, "pixel %d: %s became %s", i, v, out[i])
		}
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, XPM, DetectFormat("logo.XPM"))
	assert.Equal(t, Header, DetectFormat("include/GIEP4x14.h"))
	assert.Equal(t, Unknown, DetectFormat("logo.png"))

	_, err := New(Options{}, nil).Convert("logo.png")
	assert.Error(t, err)
}
