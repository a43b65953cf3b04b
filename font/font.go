/*
Package font generates the ASC12 raster font: printable ASCII drawn into 6
by 12 pixel cells from a table of stroke instructions.

Each glyph is stored as 12 bytes, one per row, with bit 7 holding the
leftmost pixel. The file covers codes 0x20 to 0x7F inclusive; 0x7F (DEL) is
blank.
*/
package font

const (
	Width  = 6
	Height = 12

	First = 0x20
	Last  = 0x7f

	// Count is the number of glyph records in the generated font.
	Count = Last - First + 1

	// Size is the size in bytes of the generated font.
	Size = Count * Height
)

type grid [Height][Width]bool

func (g *grid) set(x, y int) {
	if x >= 0 && x < Width && y >= 0 && y < Height {
		g[y][x] = true
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (g *grid) draw(s stroke) {
	switch s.op {
	case opDot:
		g.set(s.a, s.b)
	case opHLine:
		x0, x1 := s.b, s.c
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			g.set(x, s.a)
		}
	case opVLine:
		y0, y1 := s.b, s.c
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		for y := y0; y <= y1; y++ {
			g.set(s.a, y)
		}
	case opLine:
		dx, dy := s.c-s.a, s.d-s.b
		steps := abs(dx)
		if abs(dy) > steps {
			steps = abs(dy)
		}
		if steps == 0 {
			g.set(s.a, s.b)
			return
		}
		for i := 0; i <= steps; i++ {
			g.set(s.a+floorDiv(dx*i, steps), s.b+floorDiv(dy*i, steps))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (g *grid) pack() (out [Height]byte) {
	for y := range g {
		for x, on := range g[y] {
			if on {
				out[y] |= 1 << (7 - x)
			}
		}
	}
	return
}

// Glyph renders r. Runes with no strokes defined render as '?'.
func Glyph(r rune) [Height]byte {
	strokes, ok := glyphs[r]
	if !ok {
		strokes = glyphs['?']
	}

	var g grid
	for _, s := range strokes {
		g.draw(s)
	}
	return g.pack()
}

// Generate returns the complete font.
func Generate() []byte {
	out := make([]byte, 0, Size)
	for code := First; code <= Last; code++ {
		if code == Last {
			out = append(out, make([]byte, Height)...)
			continue
		}
		g := Glyph(rune(code))
		out = append(out, g[:]...)
	}
	return out
}
