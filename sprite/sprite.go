/*
Package sprite packs animation frames for a movable object into hardware
sprite blocks.

Every frame is centered in a 32 by 32 canvas, the largest square object the
hardware supports, and frames are vertically aligned on the topmost visible
row so that frames with different bounding boxes do not jump while the
animation plays. The canvas is then written out as sixteen 8 by 8 blocks in
row-major order, one palette index per pixel.
*/
package sprite

import (
	"image"
	"image/color"

	"github.com/citygame/gbaasset/palette"
	"github.com/pkg/errors"
)

const (
	canvasSize  = 32
	blockSize   = 8
	blockPixels = blockSize * blockSize
	blocks      = (canvasSize / blockSize) * (canvasSize / blockSize)

	// FrameBytes is the size of one packed frame.
	FrameBytes = canvasSize * canvasSize

	// TilesPerFrame is the number of 32 byte object tile units a frame
	// occupies; a 256 colour block takes two units.
	TilesPerFrame = FrameBytes / 32
)

var ErrNoFrames = errors.New("sprite: no frames")

type Frame struct {
	Name  string
	Image image.Image
}

// Sheet holds the packed frames of one animation.
type Sheet struct {
	Width, Height int
	Tops          []int
	TileIDs       []uint16
	Data          []byte
}

// Top returns the first row, relative to the image bounds, that holds a
// non-transparent pixel, or 0 if there is none.
func Top(m image.Image) int {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := m.At(x, y).RGBA(); a != 0 {
				return y - b.Min.Y
			}
		}
	}
	return 0
}

// Pack renders each frame against p and packs them in order. Frame k
// starts at object tile id k*TilesPerFrame.
func Pack(frames []Frame, p color.Palette) (*Sheet, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	s := &Sheet{
		Width:  frames[0].Image.Bounds().Dx(),
		Height: frames[0].Image.Bounds().Dy(),
	}

	ref := 0
	for _, f := range frames {
		top := Top(f.Image)
		s.Tops = append(s.Tops, top)
		if top > ref {
			ref = top
		}
	}

	for i, f := range frames {
		s.TileIDs = append(s.TileIDs, uint16(i*TilesPerFrame))
		s.Data = append(s.Data, pack(palette.Apply(f.Image, p), ref-s.Tops[i])...)
	}

	return s, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// pack centers m on the canvas, shifted down by shift rows, and returns the
// canvas as row-major blocks.
func pack(m *image.Paletted, shift int) []byte {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	var canvas [canvasSize][canvasSize]byte
	ox := floorDiv(canvasSize-w, 2)
	oy := floorDiv(canvasSize-h, 2) + shift
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cx, cy := ox+x, oy+y
			if cx < 0 || cx >= canvasSize || cy < 0 || cy >= canvasSize {
				continue
			}
			canvas[cy][cx] = m.ColorIndexAt(b.Min.X+x, b.Min.Y+y)
		}
	}

	out := make([]byte, 0, blocks*blockPixels)
	for ty := 0; ty < canvasSize/blockSize; ty++ {
		for tx := 0; tx < canvasSize/blockSize; tx++ {
			for y := 0; y < blockSize; y++ {
				row := canvas[ty*blockSize+y]
				out = append(out, row[tx*blockSize:tx*blockSize+blockSize]...)
			}
		}
	}
	return out
}
