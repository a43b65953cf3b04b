/*
Package tmx reads the subset of Tiled's TMX map format used by the map
converter.

A map carries a single tileset backed by one image and an ordered list of
tile layers. Layer cells must be stored as base64 encoded, zlib compressed
little-endian 32-bit gids; any other encoding is rejected.
*/
package tmx

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"io"
	"os"

	"github.com/pkg/errors"
)

// Only this encoding and compression pair is supported for layer data.
const (
	Encoding    = "base64"
	Compression = "zlib"
)

var (
	ErrNoTileset           = errors.New("tmx: map has no tileset")
	ErrNoTilesetImage      = errors.New("tmx: tileset has no image source")
	ErrNotEnoughLayers     = errors.New("tmx: not enough layers")
	ErrNoLayerData         = errors.New("tmx: layer has no data")
	ErrUnsupportedEncoding = errors.New("tmx: only base64+zlib layer data is supported")
	ErrInvalidDataLength   = errors.New("tmx: invalid decoded data length")
)

// GID is a map cell value referencing a tile; zero means empty.
type GID uint32

type Map struct {
	Width      int       `xml:"width,attr"`
	Height     int       `xml:"height,attr"`
	TileWidth  int       `xml:"tilewidth,attr"`
	TileHeight int       `xml:"tileheight,attr"`
	Tilesets   []Tileset `xml:"tileset"`
	Layers     []Layer   `xml:"layer"`
}

type Tileset struct {
	FirstGID   GID    `xml:"firstgid,attr"`
	Name       string `xml:"name,attr"`
	TileWidth  int    `xml:"tilewidth,attr"`
	TileHeight int    `xml:"tileheight,attr"`
	Spacing    int    `xml:"spacing,attr"`
	Margin     int    `xml:"margin,attr"`
	TileCount  int    `xml:"tilecount,attr"`
	Columns    int    `xml:"columns,attr"`
	Image      *Image `xml:"image"`
}

type Image struct {
	Source string `xml:"source,attr"`
	Width  int    `xml:"width,attr"`
	Height int    `xml:"height,attr"`
}

type Layer struct {
	Name string `xml:"name,attr"`
	Data *Data  `xml:"data"`
}

type Data struct {
	Encoding    string `xml:"encoding,attr"`
	Compression string `xml:"compression,attr"`
	RawData     []byte `xml:",chardata"`
}

// DecodedLayer is a layer with its cells unpacked in row-major order.
type DecodedLayer struct {
	Name string
	GIDs []GID
}

// Read parses a TMX document from r.
func Read(r io.Reader) (*Map, error) {
	m := new(Map)
	if err := xml.NewDecoder(r).Decode(m); err != nil {
		return nil, errors.Wrap(err, "tmx: parse")
	}
	return m, nil
}

// Open parses the TMX file at path.
func Open(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Tileset returns the first tileset of the map, which must reference an
// image.
func (m *Map) Tileset() (*Tileset, error) {
	if len(m.Tilesets) == 0 {
		return nil, ErrNoTileset
	}
	ts := &m.Tilesets[0]
	if ts.Image == nil || ts.Image.Source == "" {
		return nil, ErrNoTilesetImage
	}
	return ts, nil
}

// DecodeLayers decodes the first n layers. Any failure aborts the whole
// decode; no partial result is returned.
func (m *Map) DecodeLayers(n int) ([]DecodedLayer, error) {
	if len(m.Layers) < n {
		return nil, errors.Wrapf(ErrNotEnoughLayers, "have %d, need %d", len(m.Layers), n)
	}

	layers := make([]DecodedLayer, 0, n)
	for i := range m.Layers[:n] {
		l := &m.Layers[i]
		gids, err := m.decodeLayer(l)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d (%q)", i, l.Name)
		}
		layers = append(layers, DecodedLayer{Name: l.Name, GIDs: gids})
	}
	return layers, nil
}

func (m *Map) decodeLayer(l *Layer) ([]GID, error) {
	if l.Data == nil {
		return nil, ErrNoLayerData
	}
	if l.Data.Encoding != Encoding || l.Data.Compression != Compression {
		return nil, errors.Wrapf(ErrUnsupportedEncoding, "got encoding %q compression %q", l.Data.Encoding, l.Data.Compression)
	}

	b, err := l.Data.decode()
	if err != nil {
		return nil, err
	}

	cells := m.Width * m.Height
	if len(b) != cells*4 {
		return nil, errors.Wrapf(ErrInvalidDataLength, "got %d bytes for %d cells", len(b), cells)
	}

	gids := make([]GID, cells)
	for i := range gids {
		gids[i] = GID(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return gids, nil
}

func (d *Data) decode() ([]byte, error) {
	r := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(bytes.TrimSpace(d.RawData)))

	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "tmx: zlib")
	}
	defer zr.Close()

	b, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "tmx: zlib")
	}
	return b, nil
}
