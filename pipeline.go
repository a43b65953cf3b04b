package gbaasset

import (
	"image"
	"path/filepath"

	"github.com/citygame/gbaasset/bundle"
	"github.com/citygame/gbaasset/catalog"
	"github.com/citygame/gbaasset/output"
	"github.com/citygame/gbaasset/palette"
	"github.com/citygame/gbaasset/sprite"
	"github.com/citygame/gbaasset/tile"
	"github.com/citygame/gbaasset/tileset"
	"github.com/citygame/gbaasset/tmx"
	"github.com/pkg/errors"
)

// MapConfig names the inputs and outputs of a map conversion.
type MapConfig struct {
	// Map is the TMX file. Its tileset image is resolved relative to it.
	Map string
	// Frames are the player animation frames, in order.
	Frames []string
	// Output receives the generated C++ source.
	Output string
	// Catalog optionally receives a sqlite catalog of the same tables.
	Catalog string
}

// Result is everything derived from one map conversion.
type Result struct {
	Bundle  *bundle.Bundle
	Sprites *sprite.Sheet
}

// Assemble runs the conversion pipeline in memory: decode layers, enumerate
// tiles, quantize the shared palette, then re-encode tiles and frames.
func Assemble(m *tmx.Map, tilesetImage image.Image, frames []sprite.Frame) (*Result, error) {
	ts, err := m.Tileset()
	if err != nil {
		return nil, err
	}

	layers, err := m.DecodeLayers(bundle.Layers)
	if err != nil {
		return nil, err
	}

	grids := make([][]tmx.GID, len(layers))
	for i, l := range layers {
		grids[i] = l.GIDs
	}
	gids := tileset.UsedGIDs(grids...)

	sheet, err := tileset.New(tilesetImage, ts, m.TileWidth, m.TileHeight)
	if err != nil {
		return nil, err
	}

	sources := make([]image.Image, 0, len(gids)+len(frames))
	for _, gid := range gids {
		t, err := sheet.Tile(gid)
		if err != nil {
			return nil, err
		}
		sources = append(sources, t)
	}
	tiles := sources[:len(gids)]
	for _, f := range frames {
		sources = append(sources, f.Image)
	}

	pal, err := palette.Build(palette.Composite(sources...))
	if err != nil {
		return nil, err
	}

	enc, err := tile.NewEncoder(m.TileWidth, m.TileHeight)
	if err != nil {
		return nil, err
	}
	for i, gid := range gids {
		if _, err := enc.Add(uint32(gid), palette.Apply(tiles[i], pal)); err != nil {
			return nil, err
		}
	}

	sprites, err := sprite.Pack(frames, pal)
	if err != nil {
		return nil, err
	}

	b := &bundle.Bundle{
		MapWidth:      m.Width,
		MapHeight:     m.Height,
		TileWidth:     m.TileWidth,
		TileHeight:    m.TileHeight,
		UsedTileCount: len(gids),
		BgTileCount:   enc.Count(),
		Palette:       palette.Hardware(pal),
		GidToBase:     enc.Lookup(),
		BgTiles:       enc.Bytes(),
		Width:         sprites.Width,
		Height:        sprites.Height,
		FrameTiles:    sprites.TileIDs,
		ObjTiles:      sprites.Data,
	}
	for _, l := range layers {
		cells := make([]uint32, len(l.GIDs))
		for i, gid := range l.GIDs {
			cells[i] = uint32(gid)
		}
		b.Layers = append(b.Layers, bundle.Layer{Name: l.Name, GIDs: cells})
	}

	return &Result{Bundle: b, Sprites: sprites}, nil
}

// BuildMap converts the map named by cfg and writes the generated source,
// and the catalog if requested.
func (c *Converter) BuildMap(cfg MapConfig) error {
	m, err := tmx.Open(cfg.Map)
	if err != nil {
		return err
	}

	ts, err := m.Tileset()
	if err != nil {
		return err
	}
	tilesetImage, err := loadImage(filepath.Join(filepath.Dir(cfg.Map), ts.Image.Source))
	if err != nil {
		return errors.Wrap(err, "tileset image")
	}

	frames := make([]sprite.Frame, 0, len(cfg.Frames))
	for _, file := range cfg.Frames {
		fm, err := loadImage(file)
		if err != nil {
			return errors.Wrap(err, "sprite frame")
		}
		frames = append(frames, sprite.Frame{Name: filepath.Base(file), Image: fm})
	}

	r, err := Assemble(m, tilesetImage, frames)
	if err != nil {
		return err
	}
	r.Bundle.Source = filepath.Base(cfg.Map)

	c.logger.Printf("Map %dx%d, %d unique tiles, %d background blocks, %d frames\n", m.Width, m.Height, r.Bundle.UsedTileCount, r.Bundle.BgTileCount, len(frames))
	for _, gid := range r.Bundle.Truncated() {
		c.logger.Printf("Warning: gid %d does not fit a 16-bit layer cell and is truncated to %d\n", gid, gid&0xffff)
	}

	text, err := r.Bundle.MarshalText()
	if err != nil {
		return err
	}
	src, err := output.StageBytes(cfg.Output, text)
	if err != nil {
		return err
	}

	pending := []*output.Pending{src}
	if cfg.Catalog != "" {
		cf := make([]catalog.Frame, len(frames))
		for i, f := range frames {
			b := f.Image.Bounds()
			cf[i] = catalog.Frame{
				Name:   f.Name,
				Width:  b.Dx(),
				Height: b.Dy(),
				Top:    r.Sprites.Tops[i],
				TileID: r.Sprites.TileIDs[i],
			}
		}
		cat, err := catalog.Stage(cfg.Catalog, r.Bundle, cf)
		if err != nil {
			src.Discard()
			return err
		}
		pending = append(pending, cat)
	}

	for i, p := range pending {
		if err := p.Commit(); err != nil {
			for _, rest := range pending[i+1:] {
				rest.Discard()
			}
			return err
		}
		c.logger.Printf("Wrote \"%s\"\n", p.Path())
	}

	return nil
}
