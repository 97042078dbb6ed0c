package main

import (
	"io/ioutil"
	"log"
	"os"

	"github.com/giep/img2array"
	"github.com/giep/img2array/carray"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func options(c *cli.Context) (img2array.Options, error) {
	var opts img2array.Options
	if file := c.String("config"); file != "" {
		var err error
		if opts, err = img2array.LoadOptions(file); err != nil {
			return opts, err
		}
	}

	if c.IsSet("name") {
		opts.Name = c.String("name")
	}
	if c.IsSet("type") {
		opts.Type = c.String("type")
	}
	if c.IsSet("default") {
		opts.Default = c.String("default")
	}
	if c.IsSet("named-colors") {
		opts.NamedColors = c.Bool("named-colors")
	}
	if c.IsSet("transparent") {
		opts.Transparent = c.String("transparent")
	}
	if c.IsSet("colors") {
		opts.Colors = c.Int("colors")
	}

	return opts, opts.Validate()
}

func newConverter(c *cli.Context) (*img2array.Converter, error) {
	opts, err := options(c)
	if err != nil {
		return nil, err
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return img2array.New(opts, logger), nil
}

// requireArg shows the command help and fails unless exactly one argument
// was given.
func requireArg(c *cli.Context) error {
	if c.NArg() == 1 {
		return nil
	}
	if err := cli.ShowCommandHelp(c, c.Command.Name); err != nil {
		return err
	}
	return cli.NewExitError("", 1)
}

// convertAction builds the action for a command taking exactly one image
// file and printing the array to stdout.
func convertAction(convert func(*img2array.Converter, string) (*carray.Array, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := requireArg(c); err != nil {
			return err
		}
		file := c.Args().First()

		if err := img2array.CheckFile(file); err != nil {
			return cli.NewExitError("Error: "+err.Error(), 1)
		}

		conv, err := newConverter(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		a, err := convert(conv, file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if err := a.Emit(c.App.Writer); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "img2array"
	app.Usage = "Convert XPM and GIMP header images into C arrays"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"IMG2ARRAY_CONFIG"},
			Usage:   "path to YAML options file",
		},
		&cli.StringFlag{
			Name:  "name",
			Value: carray.DefaultName,
			Usage: "array name",
		},
		&cli.StringFlag{
			Name:  "type",
			Value: carray.DefaultType,
			Usage: "array element type",
		},
		&cli.StringFlag{
			Name:  "default",
			Value: img2array.DefaultColor,
			Usage: "color for pixel symbols missing from the color table",
		},
		&cli.BoolFlag{
			Name:  "named-colors",
			Usage: "resolve CSS/X11 color names in XPM files",
		},
		&cli.StringFlag{
			Name:  "transparent",
			Usage: "color to use for \"None\" in XPM files",
		},
		&cli.IntFlag{
			Name:  "colors",
			Usage: "reduce the image to at most this many colors",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "xpm",
			Usage:     "Convert an XPM pixmap",
			ArgsUsage: "FILE",
			Action:    convertAction((*img2array.Converter).ConvertXPM),
		},
		{
			Name:      "header",
			Usage:     "Convert a GIMP C source header image",
			ArgsUsage: "FILE",
			Action:    convertAction((*img2array.Converter).ConvertHeader),
		},
		{
			Name:      "convert",
			Usage:     "Convert an image, guessing the format from its extension",
			ArgsUsage: "FILE",
			Action:    convertAction((*img2array.Converter).Convert),
		},
		{
			Name:        "scan",
			Usage:       "Convert every image below a directory",
			Description: "Writes each array next to its image as NAME" + img2array.OutputSuffix,
			ArgsUsage:   "DIRECTORY",
			Action: func(c *cli.Context) error {
				if err := requireArg(c); err != nil {
					return err
				}

				conv, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
