package carray

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmit(t *testing.T) {
	a := &Array{
		Width:  2,
		Height: 2,
		Values: []string{"0x000000", "0xFFFFFF", "0xFFFFFF", "0x000000"},
		Colors: []Comment{
			{".", "#000000"},
			{"X", "#FFFFFF"},
		},
	}

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

func TestEmitPartialRow(t *testing.T) {
	a := &Array{
		Name:   "secondary led bitmap",
		Type:   "uint16_t",
		Indent: "\t",
		Width:  2,
		Height: 2,
		Values: []string{"1", "2", "3"},
	}

	b := new(bytes.Buffer)
	require.NoError(t, a.Emit(b))

	assert.Equal(t, "const uint16_t SECONDARY_LED_BITMAP[4] = {\n\t1, 2,\n\t3\n};\n\n// Image dimensions: 2x2\n", b.String())
}

func TestEmitInvalidWidth(t *testing.T) {
	assert.Error(t, (&Array{}).Emit(new(bytes.Buffer)))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestEmitWriteError(t *testing.T) {
	a := &Array{Width: 1, Height: 1, Values: []string{"0x000000"}}
	assert.EqualError(t, a.Emit(failingWriter{}), "write failed")
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "BITMAP", Identifier(""))
	assert.Equal(t, "SECONDARY_LED_BITMAP", Identifier("secondaryLedBitmap"))
	assert.Equal(t, "ARCADE_LOGO", Identifier("arcade-logo"))
}
