/*
Package gbaasset prepares game assets for the Game Boy Advance.

It converts a Tiled map, its tileset and the player's animation frames into
a C++ source file of constant arrays, generates the ASC12 raster font,
transcodes music into padded 8-bit PCM and converts GNU Unifont into a flat
16x16 glyph table. Every conversion is a single pass that recomputes its
output from the inputs and replaces the output file only on success.
*/
package gbaasset

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"github.com/citygame/gbaasset/audio"
	"github.com/citygame/gbaasset/font"
	"github.com/citygame/gbaasset/output"
	"github.com/citygame/gbaasset/unifont"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
)

type Converter struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Converter {
	return &Converter{
		logger: logger,
	}
}

func loadImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode \"%s\"", file)
	}
	return m, nil
}

// BuildFont writes the ASC12 font to file.
func (c *Converter) BuildFont(file string) error {
	if err := output.Bytes(file, font.Generate()); err != nil {
		return err
	}
	c.logger.Printf("Wrote %d glyphs to \"%s\"\n", font.Count, file)
	return nil
}

// BuildUnifont converts the Unifont .hex file named by cfg.
func (c *Converter) BuildUnifont(cfg unifont.Config) error {
	f, err := os.Open(cfg.Source)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := unifont.Convert(f)
	if err != nil {
		return err
	}

	if err := output.Bytes(cfg.Destination, b); err != nil {
		return err
	}
	c.logger.Printf("Wrote %d bytes to \"%s\"\n", len(b), cfg.Destination)
	return nil
}

// BuildAudio transcodes the music track named by cfg.
func (c *Converter) BuildAudio(cfg audio.Config) error {
	return audio.Transcode(cfg, c.logger)
}
