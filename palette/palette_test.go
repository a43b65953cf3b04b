package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{0xff, 0x00, 0x00, 0xff}
	blue = color.RGBA{0x00, 0x00, 0xff, 0xff}
)

func solid(w, h int, c color.Color) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, c)
		}
	}
	return m
}

func TestFlatten(t *testing.T) {
	m := image.NewNRGBA(image.Rect(10, 10, 12, 11))
	m.Set(11, 10, red)

	flat := Flatten(m)
	assert.Equal(t, image.Rect(0, 0, 2, 1), flat.Bounds())
	assert.Equal(t, Sentinel, flat.RGBAAt(0, 0))
	assert.Equal(t, red, flat.RGBAAt(1, 0))
}

func TestComposite(t *testing.T) {
	c := Composite(solid(2, 3, red), solid(4, 1, blue))
	assert.Equal(t, image.Rect(0, 0, 6, 3), c.Bounds())
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, c.NRGBAAt(1, 2))
	assert.Equal(t, color.NRGBA{0, 0, 0xff, 0xff}, c.NRGBAAt(5, 0))
	assert.Equal(t, color.NRGBA{}, c.NRGBAAt(5, 2))

	empty := Composite()
	assert.Equal(t, image.Rect(0, 0, 1, 1), empty.Bounds())
}

func TestBuild(t *testing.T) {
	p, err := Build(Composite(solid(4, 4, red), solid(4, 4, blue)))
	require.NoError(t, err)

	assert.Len(t, p, Size)
	assert.Equal(t, Sentinel, p[0])
	assert.GreaterOrEqual(t, find(p, red), 1)
	assert.GreaterOrEqual(t, find(p, blue), 1)
}

func TestBuildWithoutTransparency(t *testing.T) {
	// No pixel is transparent, the sentinel is still forced into slot 0.
	p, err := Build(solid(8, 8, red))
	require.NoError(t, err)
	assert.Equal(t, Sentinel, p[0])
	assert.GreaterOrEqual(t, find(p, red), 1)
}

func TestBuildDeterministic(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			m.Set(x, y, color.NRGBA{uint8(x * 8), uint8(y * 8), 0x40, 0xff})
		}
	}

	first, err := Build(m)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Build(m)
		require.NoError(t, err)
		assert.Equal(t, Hardware(first), Hardware(again))
	}
}

// rich returns a composite with far more than Size colours where every
// other 4x4 cell is transparent.
func rich(seed int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, 256, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 256; x++ {
			if (x/4+y/4)%2 == 0 {
				continue
			}
			m.Set(x, y, color.NRGBA{uint8(x), uint8(y*4 + seed), uint8(x ^ y + seed*7), 0xff})
		}
	}
	return m
}

func TestBuildManyColoursWithTransparency(t *testing.T) {
	for seed := 0; seed < 20; seed++ {
		m := rich(seed)
		p, err := Build(m)
		require.NoError(t, err, "seed %d", seed)
		require.Len(t, p, Size)
		assert.Equal(t, Sentinel, p[0], "seed %d", seed)

		n := 0
		for _, c := range p {
			if c == color.Color(Sentinel) {
				n++
			}
		}
		assert.Equal(t, 1, n, "seed %d", seed)

		pm := Apply(m, p)
		for y := 0; y < 64; y++ {
			for x := 0; x < 256; x++ {
				if m.NRGBAAt(x, y).A == 0 {
					require.Equal(t, uint8(0), pm.ColorIndexAt(x, y), "seed %d at %d,%d", seed, x, y)
				}
			}
		}
	}
}

func TestBuildFullyTransparent(t *testing.T) {
	p, err := Build(image.NewNRGBA(image.Rect(0, 0, 16, 16)))
	require.NoError(t, err)
	assert.Equal(t, Sentinel, p[0])
	assert.Equal(t, color.RGBA{0, 0, 0, 0xff}, p[1])
}

func TestApply(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, red)
	src.Set(1, 1, color.NRGBA{0x00, 0x00, 0xf8, 0xff})

	p := color.Palette{Sentinel, red, blue, color.RGBA{0, 0xff, 0, 0xff}}
	pm := Apply(src, p)

	assert.Equal(t, []uint8{1, 0, 0, 2}, pm.Pix)
}

func TestBGR555(t *testing.T) {
	tables := []struct {
		c    color.Color
		want uint16
	}{
		{color.RGBA{0x00, 0x00, 0x00, 0xff}, 0x0000},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 0x7fff},
		{red, 0x7c00},
		{color.RGBA{0x00, 0xff, 0x00, 0xff}, 0x03e0},
		{blue, 0x001f},
		{Sentinel, 0x7c1f},
		{color.RGBA{0x08, 0x10, 0x18, 0xff}, 0x0443},
		{color.RGBA{0xc8, 0x64, 0x20, 0xff}, 0x6584},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, BGR555(table.c), "%v", table.c)
	}
}
