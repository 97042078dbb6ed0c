package img2array

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/giep/img2array/gimp"
)

// OutputSuffix is appended to the base name of every image converted by Scan.
const OutputSuffix = ".bitmap.h"

const numWorkers = 4

// OutputFile returns the path Scan writes the array for file to.
func OutputFile(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + OutputSuffix
}

func (c *Converter) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			// Don't convert our own output
			if strings.HasSuffix(file, OutputSuffix) || DetectFormat(file) == Unknown {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (c *Converter) imageWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if ctx.Err() != nil {
				return
			}

			// Each file gets its own identifier unless one was configured
			conv := c
			if c.opts.Name == "" {
				opts := c.opts
				opts.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
				conv = New(opts, c.logger)
			}

			a, err := conv.Convert(file)
			if err != nil {
				var fe gimp.FormatError
				if errors.As(err, &fe) {
					// Plenty of .h files aren't images
					c.logger.Printf("Skipping \"%s\": %s\n", file, err)
					continue
				}
				errc <- err
				return
			}

			f, err := os.Create(OutputFile(file))
			if err != nil {
				errc <- err
				return
			}

			err = a.Emit(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				errc <- err
				return
			}
			c.logger.Printf("Wrote \"%s\"\n", OutputFile(file))
		}
	}()
	return errc, nil
}

// firstError drains every stage and returns the first error any of them
// reported, cancelling the rest of the pipeline as soon as it sees one.
func firstError(cancel context.CancelFunc, stages ...<-chan error) error {
	var (
		wg    sync.WaitGroup
		once  sync.Once
		first error
	)
	wg.Add(len(stages))
	for _, errc := range stages {
		go func(errc <-chan error) {
			defer wg.Done()
			for err := range errc {
				if err != nil {
					once.Do(func() {
						first = err
						cancel()
					})
				}
			}
		}(errc)
	}
	wg.Wait()
	return first
}

// Scan converts every XPM and GIMP header image below path, writing each
// array next to its source with OutputSuffix replacing the extension.
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := c.imageWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return firstError(cancelFunc, errcList...)
}
