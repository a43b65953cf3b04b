package main

import (
	"io"
	"log"
	"os"

	"github.com/citygame/gbaasset"
	"github.com/citygame/gbaasset/audio"
	"github.com/citygame/gbaasset/unifont"
	"github.com/urfave/cli/v2"
)

var defaultFrames = []string{
	"Images/Tiles/tile_0008.png",
	"Images/Tiles/tile_0009.png",
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func converter(c *cli.Context) *gbaasset.Converter {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return gbaasset.New(logger)
}

func main() {
	app := cli.NewApp()

	app.Name = "gbaasset"
	app.Usage = "Game Boy Advance asset preparation"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "map",
			Usage:       "Convert a TMX map, its tileset and the player frames to C++ arrays",
			Description: "Only the first four layers are converted; layer data must be base64 encoded and zlib compressed.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					EnvVars: []string{"GBAASSET_MAP_OUTPUT"},
					Value:   "src/generated_assets.cpp",
					Usage:   "generated source file",
				},
				&cli.StringSliceFlag{
					Name:    "frame",
					Aliases: []string{"f"},
					EnvVars: []string{"GBAASSET_FRAMES"},
					Value:   cli.NewStringSlice(defaultFrames...),
					Usage:   "player animation frame, in order",
				},
				&cli.StringFlag{
					Name:    "catalog",
					EnvVars: []string{"GBAASSET_CATALOG"},
					Usage:   "also write a sqlite catalog of the generated tables",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				cfg := gbaasset.MapConfig{
					Map:     c.Args().First(),
					Frames:  c.StringSlice("frame"),
					Output:  c.String("output"),
					Catalog: c.String("catalog"),
				}
				if err := converter(c).BuildMap(cfg); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "font",
			Usage:     "Generate the 6x12 ASCII raster font",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				if err := converter(c).BuildFont(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "audio",
			Usage:       "Transcode music to padded signed 8-bit mono PCM",
			Description: "Requires ffmpeg, found through --ffmpeg, $FFMPEG or the search path. SOURCE may be a cue sheet.",
			ArgsUsage:   "SOURCE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "rate",
					EnvVars: []string{"GBAASSET_SAMPLE_RATE"},
					Value:   audio.DefaultSampleRate,
					Usage:   "sample rate in Hz",
				},
				&cli.StringFlag{
					Name:    "ffmpeg",
					EnvVars: []string{"FFMPEG"},
					Usage:   "path to ffmpeg",
				},
				&cli.StringFlag{
					Name:  "preview",
					Usage: "also write a WAV rendition of the output",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				cfg := audio.Config{
					Source:     c.Args().Get(0),
					Output:     c.Args().Get(1),
					SampleRate: c.Int("rate"),
					FFmpeg:     c.String("ffmpeg"),
					Preview:    c.String("preview"),
				}
				if err := converter(c).BuildAudio(cfg); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "unifont",
			Usage:     "Convert a GNU Unifont .hex file to a flat 16x16 glyph table",
			ArgsUsage: "SOURCE DESTINATION",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				cfg := unifont.Config{
					Source:      c.Args().Get(0),
					Destination: c.Args().Get(1),
				}
				if err := converter(c).BuildUnifont(cfg); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
