/*
Package unifont converts a GNU Unifont .hex file into a flat glyph table.

The table holds one 32 byte record for every code point in the Basic
Multilingual Plane, so a glyph is found at offset codepoint*32 with no index.
Full width glyphs (16x16) are copied as-is, two bytes per row. Half width
glyphs (8x16) are widened by following each row byte with a zero byte.
Code points missing from the source stay blank.
*/
package unifont

import (
	"bufio"
	"encoding/hex"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// RecordSize is the number of bytes per code point.
	RecordSize = 32

	// CodePoints is the number of code points in the table.
	CodePoints = 0x10000

	// Size is the size in bytes of the converted table.
	Size = CodePoints * RecordSize

	halfWidthDigits = 32
	fullWidthDigits = 64
)

// Config names the source .hex file and the destination table.
type Config struct {
	Source      string
	Destination string
}

// Convert reads .hex lines from r and returns the glyph table. Lines that
// are malformed, out of range, or of an unknown width are skipped.
func Convert(r io.Reader) ([]byte, error) {
	out := make([]byte, Size)

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), 1<<20)
	for s.Scan() {
		cp, record, ok := parseLine(s.Text())
		if !ok {
			continue
		}
		copy(out[cp*RecordSize:], record[:])
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "unifont: read")
	}

	return out, nil
}

func parseLine(line string) (int, [RecordSize]byte, bool) {
	var record [RecordSize]byte

	cpHex, data, ok := strings.Cut(strings.TrimSpace(line), ":")
	if !ok {
		return 0, record, false
	}
	cp, err := strconv.ParseUint(strings.TrimSpace(cpHex), 16, 32)
	if err != nil || cp >= CodePoints {
		return 0, record, false
	}

	data = strings.TrimSpace(data)
	switch len(data) {
	case halfWidthDigits:
		b, err := hex.DecodeString(data)
		if err != nil {
			return 0, record, false
		}
		for i, row := range b {
			record[2*i] = row
		}
	case fullWidthDigits:
		if _, err := hex.Decode(record[:], []byte(data)); err != nil {
			return 0, record, false
		}
	default:
		return 0, record, false
	}

	return int(cp), record, true
}
