package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(font []byte, r rune) []byte {
	i := int(r-First) * Height
	return font[i : i+Height]
}

func TestGenerate(t *testing.T) {
	f := Generate()
	require.Len(t, f, Size)
	assert.Equal(t, 1152, Size)

	assert.Equal(t, make([]byte, Height), record(f, ' '))
	assert.Equal(t, make([]byte, Height), record(f, 0x7f))

	q := Glyph('?')
	assert.Equal(t, q[:], record(f, '#'))
	assert.Equal(t, q[:], record(f, '?'))
	assert.NotEqual(t, q[:], record(f, 'A'))

	assert.Equal(t, Generate(), f)
}

func TestGlyph(t *testing.T) {
	tables := []struct {
		r    rune
		want [Height]byte
	}{
		{'.', [Height]byte{10: 0x10}},
		{',', [Height]byte{10: 0x10, 11: 0x20}},
		{'-', [Height]byte{6: 0x78}},
		{'8', [Height]byte{0, 0x78, 0x48, 0x48, 0x48, 0x48, 0x78, 0x48, 0x48, 0x48, 0x78, 0}},
		{'1', [Height]byte{0, 0, 0x08, 0x08, 0x08, 0x08, 0, 0x08, 0x08, 0x08, 0, 0}},
		{'v', [Height]byte{6: 0x48, 7: 0x50, 8: 0x30, 9: 0x30, 10: 0x10}},
		{'T', [Height]byte{1: 0x78, 2: 0x10, 3: 0x10, 4: 0x10, 5: 0x10, 6: 0x10, 7: 0x10, 8: 0x10, 9: 0x10, 10: 0x10}},
		{'?', [Height]byte{1: 0x78, 2: 0x08, 3: 0x08, 4: 0x08, 6: 0x10, 8: 0x10, 10: 0x10}},
		{'é', [Height]byte{1: 0x78, 2: 0x08, 3: 0x08, 4: 0x08, 6: 0x10, 8: 0x10, 10: 0x10}},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, Glyph(table.r), "%q", table.r)
	}
}

func TestLineClipped(t *testing.T) {
	var g grid
	g.draw(line(4, 10, 5, 14))
	g.draw(hline(0, -3, 9))

	assert.True(t, g[10][4])
	assert.True(t, g[11][4])
	for x := 0; x < Width; x++ {
		assert.True(t, g[0][x])
	}
}

func TestDigitsAndLettersDefined(t *testing.T) {
	for r := '0'; r <= '9'; r++ {
		assert.NotEmpty(t, glyphs[r], "%q", r)
	}
	for r := 'a'; r <= 'z'; r++ {
		assert.NotEmpty(t, glyphs[r], "%q", r)
		assert.NotEmpty(t, glyphs[r-'a'+'A'], "%q", r-'a'+'A')
	}
}
