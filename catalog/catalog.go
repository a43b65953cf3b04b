/*
Package catalog exports a converted map bundle as a sqlite database, so that
editors and debugging tools can query palette slots, tile placement and
sprite frames without parsing the generated source.

The catalog is an output like any other: it is rebuilt from scratch on every
run and never read back by the converter.
*/
package catalog

import (
	"database/sql"
	"fmt"

	"github.com/citygame/gbaasset/bundle"
	"github.com/citygame/gbaasset/output"
	"github.com/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

var schema = []string{
	"CREATE TABLE palette (idx INTEGER PRIMARY KEY NOT NULL, bgr555 INTEGER NOT NULL, rgb TEXT NOT NULL)",
	"CREATE TABLE tile (gid INTEGER PRIMARY KEY NOT NULL, base_block INTEGER NOT NULL)",
	"CREATE TABLE layer (idx INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL)",
	"CREATE TABLE frame (idx INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, top INTEGER NOT NULL, tile_id INTEGER NOT NULL)",
}

// Frame describes one packed sprite frame.
type Frame struct {
	Name          string
	Width, Height int
	Top           int
	TileID        uint16
}

// Stage writes a catalog of b and frames next to file, ready to be
// committed together with the other outputs of the run.
func Stage(file string, b *bundle.Bundle, frames []Frame) (*output.Pending, error) {
	return output.Stage(file, func(tmp string) error {
		db, err := sql.Open("sqlite3", tmp)
		if err != nil {
			return err
		}
		defer db.Close()

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if err := populate(tx, b, frames); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "catalog")
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		return db.Close()
	})
}

func populate(tx *sql.Tx, b *bundle.Bundle, frames []Frame) error {
	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	for i, c := range b.Palette {
		if _, err := tx.Exec("INSERT INTO palette (idx, bgr555, rgb) VALUES (?, ?, ?)", i, c, rgb(c)); err != nil {
			return err
		}
	}

	for gid, base := range b.GidToBase {
		if gid == 0 || base == 0 {
			continue
		}
		if _, err := tx.Exec("INSERT INTO tile (gid, base_block) VALUES (?, ?)", gid, base); err != nil {
			return err
		}
	}

	for i, l := range b.Layers {
		if _, err := tx.Exec("INSERT INTO layer (idx, name, width, height) VALUES (?, ?, ?, ?)", i, l.Name, b.MapWidth, b.MapHeight); err != nil {
			return err
		}
	}

	for i, f := range frames {
		if _, err := tx.Exec("INSERT INTO frame (idx, name, width, height, top, tile_id) VALUES (?, ?, ?, ?, ?, ?)", i, f.Name, f.Width, f.Height, f.Top, f.TileID); err != nil {
			return err
		}
	}

	return nil
}

// rgb expands a BGR555 word to an HTML style colour.
func rgb(c uint16) string {
	r := uint8(c>>10&0x1f) << 3
	g := uint8(c>>5&0x1f) << 3
	b := uint8(c&0x1f) << 3
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
