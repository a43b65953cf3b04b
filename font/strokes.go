package font

type op int

const (
	opDot op = iota + 1
	opHLine
	opVLine
	opLine
)

type stroke struct {
	op         op
	a, b, c, d int
}

func dot(x, y int) stroke            { return stroke{op: opDot, a: x, b: y} }
func hline(y, x0, x1 int) stroke     { return stroke{op: opHLine, a: y, b: x0, c: x1} }
func vline(x, y0, y1 int) stroke     { return stroke{op: opVLine, a: x, b: y0, c: y1} }
func line(x0, y0, x1, y1 int) stroke { return stroke{op: opLine, a: x0, b: y0, c: x1, d: y1} }

// Seven segment layout used for digits:
//
//	 a
//	f b
//	 g
//	e c
//	 d
var segments = map[rune]stroke{
	'a': hline(1, 1, 4),
	'd': hline(10, 1, 4),
	'g': hline(6, 1, 4),
	'f': vline(1, 2, 5),
	'b': vline(4, 2, 5),
	'e': vline(1, 7, 9),
	'c': vline(4, 7, 9),
}

var digits = map[rune]string{
	'0': "abcdef",
	'1': "bc",
	'2': "abdeg",
	'3': "abcdg",
	'4': "bcfg",
	'5': "acdfg",
	'6': "acdefg",
	'7': "abc",
	'8': "abcdefg",
	'9': "abcdfg",
}

func sevenSegment(segs string) []stroke {
	strokes := make([]stroke, 0, len(segs))
	for _, s := range segs {
		strokes = append(strokes, segments[s])
	}
	return strokes
}

func init() {
	for r, segs := range digits {
		glyphs[r] = sevenSegment(segs)
	}
}

var glyphs = map[rune][]stroke{
	' ': nil,

	'a': {hline(6, 2, 4), hline(10, 2, 4), vline(1, 7, 9), vline(4, 6, 10), hline(8, 2, 4)},
	'b': {vline(1, 2, 10), hline(6, 2, 4), hline(8, 2, 4), vline(4, 7, 7), vline(4, 9, 9)},
	'c': {hline(6, 2, 4), hline(10, 2, 4), vline(1, 7, 9)},
	'd': {vline(4, 2, 10), hline(6, 1, 3), hline(10, 1, 3), vline(1, 7, 9)},
	'e': {hline(6, 2, 4), hline(10, 2, 4), hline(8, 2, 4), vline(1, 7, 9)},
	'f': {vline(3, 2, 10), hline(3, 2, 4), hline(6, 1, 4)},
	'g': {hline(6, 2, 4), hline(10, 2, 4), vline(1, 7, 9), vline(4, 6, 11), hline(8, 2, 4), dot(2, 11)},
	'h': {vline(1, 2, 10), hline(6, 2, 4), vline(4, 7, 10)},
	'i': {dot(3, 3), vline(3, 6, 10), hline(10, 2, 4)},
	'j': {dot(3, 3), vline(3, 6, 11), hline(11, 1, 3)},
	'k': {vline(1, 2, 10), line(4, 6, 2, 8), line(2, 8, 4, 10)},
	'l': {vline(3, 2, 10), hline(10, 2, 4)},
	'm': {vline(1, 6, 10), vline(3, 7, 10), vline(4, 7, 10), hline(6, 1, 4)},
	'n': {vline(1, 6, 10), hline(6, 1, 4), vline(4, 7, 10)},
	'o': {hline(6, 2, 4), hline(10, 2, 4), vline(1, 7, 9), vline(4, 7, 9)},
	'p': {vline(1, 6, 11), hline(6, 2, 4), hline(8, 2, 4), vline(4, 7, 7)},
	'q': {vline(4, 6, 11), hline(6, 1, 3), hline(10, 1, 3), vline(1, 7, 9)},
	'r': {vline(2, 6, 10), hline(6, 2, 4), dot(4, 7)},
	's': {hline(6, 2, 4), hline(8, 2, 4), hline(10, 2, 4), dot(1, 7), dot(4, 9)},
	't': {vline(3, 3, 10), hline(3, 2, 4), hline(6, 1, 4)},
	'u': {vline(1, 6, 9), vline(4, 6, 9), hline(10, 2, 4)},
	'v': {line(1, 6, 3, 10), line(4, 6, 3, 10)},
	'w': {line(1, 6, 2, 10), line(2, 10, 3, 8), line(3, 8, 4, 10), line(4, 10, 5, 6)},
	'x': {line(1, 6, 4, 10), line(4, 6, 1, 10)},
	'y': {line(1, 6, 3, 10), line(4, 6, 3, 10), vline(3, 10, 11)},
	'z': {hline(6, 1, 4), hline(10, 1, 4), line(4, 7, 1, 9)},

	'A': {hline(1, 1, 4), vline(1, 2, 10), vline(4, 2, 10), hline(6, 1, 4)},
	'B': {vline(1, 1, 10), hline(1, 1, 4), hline(6, 1, 4), hline(10, 1, 4), vline(4, 2, 5), vline(4, 7, 9)},
	'C': {hline(1, 1, 4), hline(10, 1, 4), vline(1, 2, 9)},
	'D': {vline(1, 1, 10), hline(1, 1, 3), hline(10, 1, 3), vline(4, 2, 9)},
	'E': {vline(1, 1, 10), hline(1, 1, 4), hline(6, 1, 4), hline(10, 1, 4)},
	'F': {vline(1, 1, 10), hline(1, 1, 4), hline(6, 1, 4)},
	'G': {hline(1, 1, 4), hline(10, 1, 4), vline(1, 2, 9), hline(6, 2, 4), vline(4, 6, 9)},
	'H': {vline(1, 1, 10), vline(4, 1, 10), hline(6, 1, 4)},
	'I': {hline(1, 1, 4), hline(10, 1, 4), vline(3, 2, 9)},
	'J': {hline(1, 1, 4), vline(3, 2, 9), hline(10, 1, 3), vline(1, 8, 9)},
	'K': {vline(1, 1, 10), line(4, 1, 2, 6), line(2, 6, 4, 10)},
	'L': {vline(1, 1, 10), hline(10, 1, 4)},
	'M': {vline(1, 1, 10), vline(4, 1, 10), line(1, 1, 2, 4), line(4, 1, 3, 4)},
	'N': {vline(1, 1, 10), vline(4, 1, 10), line(1, 1, 4, 10)},
	'O': {hline(1, 1, 4), hline(10, 1, 4), vline(1, 2, 9), vline(4, 2, 9)},
	'P': {vline(1, 1, 10), hline(1, 1, 4), hline(6, 1, 4), vline(4, 2, 5)},
	'Q': {hline(1, 1, 4), hline(10, 1, 4), vline(1, 2, 9), vline(4, 2, 9), dot(3, 9), dot(4, 11)},
	'R': {vline(1, 1, 10), hline(1, 1, 4), hline(6, 1, 4), vline(4, 2, 5), line(2, 6, 4, 10)},
	'S': {hline(1, 1, 4), hline(6, 1, 4), hline(10, 1, 4), vline(1, 2, 5), vline(4, 7, 9)},
	'T': {hline(1, 1, 4), vline(3, 2, 10)},
	'U': {vline(1, 1, 9), vline(4, 1, 9), hline(10, 1, 4)},
	'V': {line(1, 1, 3, 10), line(4, 1, 3, 10)},
	'W': {vline(1, 1, 10), vline(4, 1, 10), line(1, 10, 2, 7), line(4, 10, 3, 7)},
	'X': {line(1, 1, 4, 10), line(4, 1, 1, 10)},
	'Y': {line(1, 1, 3, 6), line(4, 1, 3, 6), vline(3, 6, 10)},
	'Z': {hline(1, 1, 4), hline(10, 1, 4), line(4, 2, 1, 9)},

	'.':  {dot(3, 10)},
	',':  {dot(3, 10), dot(2, 11)},
	':':  {dot(3, 5), dot(3, 10)},
	';':  {dot(3, 5), dot(3, 10), dot(2, 11)},
	'!':  {vline(3, 2, 8), dot(3, 10)},
	'?':  {hline(1, 1, 4), vline(4, 2, 4), dot(3, 6), dot(3, 8), dot(3, 10)},
	'-':  {hline(6, 1, 4)},
	'_':  {hline(10, 1, 4)},
	'+':  {hline(6, 1, 4), vline(3, 4, 8)},
	'=':  {hline(5, 1, 4), hline(7, 1, 4)},
	'/':  {line(4, 1, 1, 10)},
	'\\': {line(1, 1, 4, 10)},
	'(':  {vline(2, 2, 9), dot(3, 1), dot(3, 10)},
	')':  {vline(3, 2, 9), dot(2, 1), dot(2, 10)},
	'[':  {vline(2, 2, 9), hline(1, 2, 4), hline(10, 2, 4)},
	']':  {vline(3, 2, 9), hline(1, 1, 3), hline(10, 1, 3)},
	'*':  {dot(3, 5), dot(2, 6), dot(4, 6), dot(3, 7), dot(2, 8), dot(4, 8)},
	'\'': {dot(3, 2), dot(3, 3)},
	'"':  {dot(2, 2), dot(2, 3), dot(4, 2), dot(4, 3)},
}
