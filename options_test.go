package img2array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	file := writeFile(t, tempDir(t), "img2array.yaml", `name: secondary led bitmap
type: uint32_t
named_colors: true
transparent: "0x000000"
colors: 8
`)

	o, err := LoadOptions(file)
	require.NoError(t, err)
	assert.Equal(t, Options{
		Name:        "secondary led bitmap",
		Type:        "uint32_t",
		NamedColors: true,
		Transparent: "0x000000",
		Colors:      8,
	}, o)
}

func TestLoadOptionsEmpty(t *testing.T) {
	file := writeFile(t, tempDir(t), "empty.yaml", "")

	o, err := LoadOptions(file)
	require.NoError(t, err)
	assert.Equal(t, Options{}, o)
}

func TestLoadOptionsErrors(t *testing.T) {
	dir := tempDir(t)

	tables := map[string]string{
		"unknown key":  "colour: 3\n",
		"bad default":  "default: white\n",
		"bad colors":   "colors: -1\n",
		"too many":     "colors: 257\n",
		"invalid yaml": "name: [\n",
	}

	for name, content := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := LoadOptions(writeFile(t, dir, name+".yaml", content))
			assert.Error(t, err)
		})
	}

	_, err := LoadOptions(dir + "/missing.yaml")
	assert.Error(t, err)
}

func TestParseLiteral(t *testing.T) {
	v, err := parseLiteral("0xaBcDeF")
	require.NoError(t, err)
	assert.Equal(t, uint32(0xabcdef), v)

	for _, s := range []string{"#FFFFFF", "0x1000000", "0xZZ"} {
		_, err := parseLiteral(s)
		assert.Error(t, err, s)
	}
}
