/*
Package img2array converts XPM pixmaps and GIMP header images into C array
literals so they can be compiled directly into firmware.
*/
package img2array

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
)

// DefaultColor is used for pixel symbols missing from the color table.
const DefaultColor = "0xFFFFFF"

// FileError reports an input path that doesn't exist.
type FileError struct {
	Path string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("File '%s' does not exist.", e.Path)
}

// CheckFile returns a *FileError if file isn't an existing regular file.
func CheckFile(file string) error {
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return &FileError{Path: file}
	}
	return nil
}

type Converter struct {
	opts   Options
	logger *log.Logger
}

func New(opts Options, logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Converter{
		opts:   opts,
		logger: logger,
	}
}
