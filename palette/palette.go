/*
Package palette builds the single 256 colour palette shared by every
background tile and sprite frame.

Transparency is tracked through quantization with a sentinel colour, opaque
magenta, which no legitimate game graphic uses. Every transparent pixel is
flattened onto the sentinel before quantization and the sentinel always ends
up in palette slot 0, which the hardware treats as transparent.
*/
package palette

import (
	"image"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Size is the number of palette entries.
const Size = 256

// Sentinel marks pixels that were transparent in the source images.
var Sentinel = color.RGBA{0xff, 0x00, 0xff, 0xff}

var ErrNoSentinel = errors.New("palette: quantized palette does not contain the transparency colour")

// Flatten composites m over a canvas filled with the sentinel colour,
// returning an opaque image with its top-left corner at (0, 0).
func Flatten(m image.Image) *image.RGBA {
	b := m.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(Sentinel), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Over)
	return dst
}

// Composite lays the images out left to right on a transparent canvas. The
// canvas is at least one pixel in each direction.
func Composite(images ...image.Image) *image.NRGBA {
	w, h := 0, 1
	for _, m := range images {
		b := m.Bounds()
		w += b.Dx()
		if b.Dy() > h {
			h = b.Dy()
		}
	}
	if w == 0 {
		w = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	x := 0
	for _, m := range images {
		b := m.Bounds()
		draw.Draw(dst, image.Rect(x, 0, x+b.Dx(), b.Dy()), m, b.Min, draw.Over)
		x += b.Dx()
	}
	return dst
}

// Build quantizes the composite down to exactly Size colours with the
// sentinel in slot 0.
//
// Sentinel pixels carry no weight in the median cut, so the quantizer only
// clusters real colours into Size-1 slots and the sentinel is added back
// verbatim. It can never be merged into a neighbouring bucket.
func Build(composite image.Image) (color.Palette, error) {
	m := Flatten(composite)

	// Pixel (0, 0) is always treated as transparent.
	m.SetRGBA(0, 0, Sentinel)

	q := quantize.MedianCutQuantizer{
		Aggregation: quantize.Mode,
		Weighting:   opaqueOnly,
	}
	p := q.Quantize(make(color.Palette, 0, Size-1), m)
	p = append(p, Sentinel)

	p = canonical(p)
	for len(p) < Size {
		p = append(p, color.RGBA{0, 0, 0, 0xff})
	}

	i := find(p, Sentinel)
	if i < 0 {
		return nil, ErrNoSentinel
	}
	p[0], p[i] = p[i], p[0]

	return p, nil
}

// opaqueOnly weights every pixel equally except the sentinel, which is left
// out of clustering.
func opaqueOnly(m image.Image, x, y int) uint32 {
	if color.RGBAModel.Convert(m.At(x, y)).(color.RGBA) == Sentinel {
		return 0
	}
	return 1
}

// canonical converts every entry to opaque RGBA and sorts them by value so
// the slot a colour lands in does not depend on the quantizer's internal
// ordering.
func canonical(p color.Palette) color.Palette {
	out := make(color.Palette, len(p))
	key := make([]uint32, len(p))
	for i, c := range p {
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		rgba.A = 0xff
		out[i] = rgba
		key[i] = uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B)
	}
	sort.Sort(byKey{out, key})
	return out
}

type byKey struct {
	p   color.Palette
	key []uint32
}

func (b byKey) Len() int {
	return len(b.p)
}

func (b byKey) Swap(i, j int) {
	b.p[i], b.p[j] = b.p[j], b.p[i]
	b.key[i], b.key[j] = b.key[j], b.key[i]
}

func (b byKey) Less(i, j int) bool {
	return b.key[i] < b.key[j]
}

func find(p color.Palette, c color.RGBA) int {
	for i := range p {
		if rgba, ok := p[i].(color.RGBA); ok && rgba == c {
			return i
		}
	}
	return -1
}

// Apply renders m against p, flattening transparency onto the sentinel
// first so transparent pixels map to index 0.
func Apply(m image.Image, p color.Palette) *image.Paletted {
	flat := Flatten(m)
	b := flat.Bounds()
	pm := image.NewPaletted(b, p)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pm.SetColorIndex(x, y, uint8(p.Index(flat.RGBAAt(x, y))))
		}
	}
	return pm
}

// BGR555 packs c into the palette word layout the game copies into
// palette RAM: five bits per channel, blue in the low bits and red in the
// high bits.
func BGR555(c color.Color) uint16 {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return uint16(rgba.B>>3) | uint16(rgba.G>>3)<<5 | uint16(rgba.R>>3)<<10
}

// Hardware converts a palette into BGR555 words.
func Hardware(p color.Palette) []uint16 {
	out := make([]uint16, len(p))
	for i, c := range p {
		out[i] = BGR555(c)
	}
	return out
}
