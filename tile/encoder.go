package tile

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

var (
	ErrTileSize  = errors.New("tile: tile dimensions must be positive multiples of 8")
	ErrDuplicate = errors.New("tile: gid already added")
	ErrTooMany   = errors.New("tile: base block index does not fit 16 bits")
	errWrongSize = errors.New("tile: image is wrong size")
)

// Encoder accumulates background blocks for a fixed logical tile size.
type Encoder struct {
	width, height int
	perTile       int

	blocks []byte
	bases  map[uint32]uint16
	maxGID uint32
}

// NewEncoder returns an Encoder for tiles of the given size, with the
// reserved empty block already in place.
func NewEncoder(width, height int) (*Encoder, error) {
	if width <= 0 || height <= 0 || width%blockWidth != 0 || height%blockHeight != 0 {
		return nil, errors.Wrapf(ErrTileSize, "got %dx%d", width, height)
	}
	return &Encoder{
		width:   width,
		height:  height,
		perTile: (width / blockWidth) * (height / blockHeight),
		blocks:  make([]byte, blockPixels),
		bases:   make(map[uint32]uint16),
	}, nil
}

// Add appends the blocks for m and records gid as starting at the returned
// base block index.
func (e *Encoder) Add(gid uint32, m *image.Paletted) (uint16, error) {
	if gid == 0 {
		return 0, errors.Wrap(ErrDuplicate, "gid 0 is reserved")
	}
	if _, ok := e.bases[gid]; ok {
		return 0, errors.Wrapf(ErrDuplicate, "gid %d", gid)
	}
	b := m.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return 0, errors.Wrapf(errWrongSize, "got %dx%d, want %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}

	if e.Count() > math.MaxUint16 {
		return 0, errors.Wrapf(ErrTooMany, "gid %d would start at block %d", gid, e.Count())
	}
	base := uint16(e.Count())
	for ty := 0; ty < e.height/blockHeight; ty++ {
		for tx := 0; tx < e.width/blockWidth; tx++ {
			for y := 0; y < blockHeight; y++ {
				dx := b.Min.X + tx*blockWidth
				dy := b.Min.Y + ty*blockHeight + y
				i := m.PixOffset(dx, dy)
				e.blocks = append(e.blocks, m.Pix[i:i+blockWidth]...)
			}
		}
	}

	e.bases[gid] = base
	if gid > e.maxGID {
		e.maxGID = gid
	}
	return base, nil
}

// Count returns the number of blocks, including the reserved block 0.
func (e *Encoder) Count() int {
	return len(e.blocks) / blockPixels
}

// Bytes returns the block data, one palette index per pixel.
func (e *Encoder) Bytes() []byte {
	return e.blocks
}

// Lookup returns a table indexed by gid holding each tile's base block.
// Entry 0 always points at the reserved empty block.
func (e *Encoder) Lookup() []uint16 {
	table := make([]uint16, e.maxGID+1)
	for gid, base := range e.bases {
		table[gid] = base
	}
	return table
}
