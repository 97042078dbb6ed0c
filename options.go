package img2array

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/giep/img2array/xpm"
	"gopkg.in/yaml.v3"
)

// Options controls how images are turned into arrays. It can be loaded from
// a YAML file, see LoadOptions.
type Options struct {
	// Name of the C array, converted to SCREAMING_SNAKE_CASE
	Name string `yaml:"name"`
	// Type of the array elements
	Type string `yaml:"type"`
	// Indent prefixes each row of values
	Indent string `yaml:"indent"`

	// Default replaces pixel symbols missing from the color table
	Default string `yaml:"default"`
	// NamedColors resolves CSS and X11 color names in XPM color tables
	NamedColors bool `yaml:"named_colors"`
	// Transparent replaces "None" colors; empty means they are an error
	Transparent string `yaml:"transparent"`

	// Colors reduces the image to at most this many colors if non-zero
	Colors int `yaml:"colors"`
}

func (o Options) defaultColor() string {
	if o.Default == "" {
		return DefaultColor
	}
	return o.Default
}

func (o Options) colorOptions() xpm.ColorOptions {
	return xpm.ColorOptions{
		NamedColors: o.NamedColors,
		Transparent: o.Transparent,
	}
}

// Validate checks the options for values that can't be used.
func (o Options) Validate() error {
	if o.Colors < 0 {
		return errors.New("colors must not be negative")
	}
	if o.Colors > MaxColors {
		return fmt.Errorf("colors must not exceed %d", MaxColors)
	}
	for _, v := range []string{o.Default, o.Transparent} {
		if v == "" {
			continue
		}
		if _, err := parseLiteral(v); err != nil {
			return err
		}
	}
	return nil
}

// LoadOptions reads options from a YAML file. Unknown keys are an error.
func LoadOptions(file string) (Options, error) {
	var o Options

	b, err := ioutil.ReadFile(file)
	if err != nil {
		return o, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil && err != io.EOF {
		return o, err
	}

	return o, o.Validate()
}
