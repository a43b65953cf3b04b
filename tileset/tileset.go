/*
Package tileset enumerates the tiles referenced by a map and crops them out
of the tileset raster.
*/
package tileset

import (
	"image"
	"sort"

	"github.com/citygame/gbaasset/tmx"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var (
	ErrTileOutOfRange = errors.New("tileset: tile out of range")
	errBadGeometry    = errors.New("tileset: invalid tile geometry")
)

// UsedGIDs returns every distinct nonzero gid across the given layers in
// ascending order.
func UsedGIDs(layers ...[]tmx.GID) []tmx.GID {
	seen := make(map[tmx.GID]struct{})
	for _, l := range layers {
		for _, gid := range l {
			if gid != 0 {
				seen[gid] = struct{}{}
			}
		}
	}

	gids := make([]tmx.GID, 0, len(seen))
	for gid := range seen {
		gids = append(gids, gid)
	}
	sort.Slice(gids, func(i, j int) bool { return gids[i] < gids[j] })
	return gids
}

// Sheet is a tileset raster together with its grid geometry.
type Sheet struct {
	image      image.Image
	firstGID   tmx.GID
	tileWidth  int
	tileHeight int
	spacing    int
	margin     int
	columns    int
	count      int
}

// New describes m using the geometry of ts. When the TMX omits the column
// or tile count they are derived from the raster size.
func New(m image.Image, ts *tmx.Tileset, tileWidth, tileHeight int) (*Sheet, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, errBadGeometry
	}

	s := &Sheet{
		image:      m,
		firstGID:   ts.FirstGID,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		spacing:    ts.Spacing,
		margin:     ts.Margin,
		columns:    ts.Columns,
		count:      ts.TileCount,
	}
	if s.firstGID == 0 {
		s.firstGID = 1
	}

	b := m.Bounds()
	if s.columns <= 0 {
		s.columns = (b.Dx() - 2*s.margin + s.spacing) / (tileWidth + s.spacing)
	}
	if s.count <= 0 {
		rows := (b.Dy() - 2*s.margin + s.spacing) / (tileHeight + s.spacing)
		s.count = rows * s.columns
	}
	if s.columns <= 0 {
		return nil, errBadGeometry
	}

	return s, nil
}

// Tile returns a copy of the pixels for gid, with its top-left corner at
// (0, 0).
func (s *Sheet) Tile(gid tmx.GID) (image.Image, error) {
	if gid < s.firstGID || int(gid-s.firstGID) >= s.count {
		return nil, errors.Wrapf(ErrTileOutOfRange, "gid %d", gid)
	}
	i := int(gid - s.firstGID)

	x := s.margin + (i%s.columns)*(s.tileWidth+s.spacing)
	y := s.margin + (i/s.columns)*(s.tileHeight+s.spacing)

	b := s.image.Bounds()
	r := image.Rect(x, y, x+s.tileWidth, y+s.tileHeight).Add(b.Min)
	if !r.In(b) {
		return nil, errors.Wrapf(ErrTileOutOfRange, "gid %d at %v outside %v", gid, r, b)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, s.tileWidth, s.tileHeight))
	draw.Draw(dst, dst.Bounds(), s.image, r.Min, draw.Src)
	return dst, nil
}
