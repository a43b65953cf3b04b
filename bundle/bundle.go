/*
Package bundle serializes converted map assets as a C++ source file of named
constant arrays.

The firmware links the generated file directly and reads the arrays with no
parsing step, so array names, element types and element order are fixed:

	g_MapWidth, g_MapHeight, g_TileWidth, g_TileHeight   map geometry
	g_UsedTileCount, g_BgTileCount                       tile counts
	g_Palette          256 BGR555 words, index 0 transparent
	g_Layer0..3        one u16 gid per cell, row-major, 0 = empty
	g_GidToBaseTile8   gid -> first 8x8 background block
	g_BgTiles          8x8 background blocks, one byte per pixel
	g_PlayerWidth, g_PlayerHeight
	g_PlayerObjFrameNTileId  first object tile of frame N
	g_PlayerObjTiles   32x32 sprite frames as 8x8 blocks
*/
package bundle

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Layers is the number of map layers the hardware renders.
const Layers = 4

const header = `/*------------------------------------------------------------------------
Generated by gbaasset from %s.
Palette, map layers, background tiles and player frames. Do not edit.
------------------------------------------------------------------------*/
`

type Layer struct {
	Name string
	GIDs []uint32
}

// Bundle is every table derived from one map conversion.
type Bundle struct {
	Source string

	MapWidth, MapHeight   int
	TileWidth, TileHeight int

	UsedTileCount int
	BgTileCount   int

	Palette    []uint16
	Layers     []Layer
	GidToBase  []uint16
	BgTiles    []byte
	Width      int
	Height     int
	FrameTiles []uint16
	ObjTiles   []byte
}

// Truncated returns every distinct gid that does not fit the 16-bit layer
// cells and will be silently truncated on output.
func (b *Bundle) Truncated() []uint32 {
	var out []uint32
	seen := make(map[uint32]struct{})
	for _, l := range b.Layers {
		for _, gid := range l.GIDs {
			if gid > 0xffff {
				if _, ok := seen[gid]; !ok {
					seen[gid] = struct{}{}
					out = append(out, gid)
				}
			}
		}
	}
	return out
}

func u16Array(name string, values []uint16, perLine int) string {
	lines := []string{fmt.Sprintf("extern const unsigned short %s[] __attribute__((aligned(4))) = {", name)}
	for i := 0; i < len(values); i += perLine {
		end := i + perLine
		if end > len(values) {
			end = len(values)
		}
		words := make([]string, 0, end-i)
		for _, v := range values[i:end] {
			words = append(words, fmt.Sprintf("0x%04X", v))
		}
		lines = append(lines, "    "+strings.Join(words, ", ")+",")
	}
	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

func u8Array(name string, values []byte, perLine int) string {
	lines := []string{fmt.Sprintf("extern const unsigned char %s[] __attribute__((aligned(4))) = {", name)}
	for i := 0; i < len(values); i += perLine {
		end := i + perLine
		if end > len(values) {
			end = len(values)
		}
		bs := make([]string, 0, end-i)
		for _, v := range values[i:end] {
			bs = append(bs, fmt.Sprint(v))
		}
		lines = append(lines, "    "+strings.Join(bs, ", ")+",")
	}
	lines = append(lines, "};")
	return strings.Join(lines, "\n")
}

// MarshalText renders the bundle as C++ source.
func (b *Bundle) MarshalText() ([]byte, error) {
	if len(b.Layers) != Layers {
		return nil, errors.Errorf("bundle: need %d layers, have %d", Layers, len(b.Layers))
	}
	if len(b.Palette) != 256 {
		return nil, errors.Errorf("bundle: palette has %d colors, want 256", len(b.Palette))
	}

	parts := []string{
		fmt.Sprintf(header, b.Source),
		fmt.Sprintf("extern const int g_MapWidth = %d;\nextern const int g_MapHeight = %d;\nextern const int g_TileWidth = %d;\nextern const int g_TileHeight = %d;\n", b.MapWidth, b.MapHeight, b.TileWidth, b.TileHeight),
		fmt.Sprintf("extern const unsigned int g_UsedTileCount = %d;\n", b.UsedTileCount),
		fmt.Sprintf("extern const unsigned int g_BgTileCount = %d;\n", b.BgTileCount),
		u16Array("g_Palette", b.Palette, 12),
		"",
	}

	// Cells above 16 bits are truncated; see Truncated.
	for i, l := range b.Layers {
		cells := make([]uint16, len(l.GIDs))
		for j, gid := range l.GIDs {
			cells[j] = uint16(gid & 0xffff)
		}
		parts = append(parts, u16Array(fmt.Sprintf("g_Layer%d", i), cells, 16), "")
	}

	parts = append(parts, u16Array("g_GidToBaseTile8", b.GidToBase, 16), "")
	parts = append(parts, u8Array("g_BgTiles", b.BgTiles, 32), "")

	parts = append(parts, fmt.Sprintf("extern const int g_PlayerWidth = %d;\nextern const int g_PlayerHeight = %d;\n", b.Width, b.Height))
	for i, id := range b.FrameTiles {
		parts = append(parts, fmt.Sprintf("extern const unsigned short g_PlayerObjFrame%dTileId = %d;\n", i, id))
	}
	parts = append(parts, u8Array("g_PlayerObjTiles", b.ObjTiles, 32), "")

	return []byte(strings.Join(parts, "\n")), nil
}
