/*
Package output writes generated files so that a failed run never leaves a
partial or stale file at the destination.

Content is produced in a temporary file next to the destination and only
renamed over it once everything succeeded. Runs that produce several files
stage each of them first and commit them together.
*/
package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Pending is a fully written temporary file waiting to replace its
// destination.
type Pending struct {
	path, tmp string
}

// Stage calls fn with the name of a fresh temporary file in the destination
// directory. The temporary file is removed if fn fails, otherwise it is kept
// until Commit or Discard.
func Stage(path string, fn func(tmp string) error) (p *Pending, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, errors.Wrap(err, "output: create temporary file")
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return nil, err
	}

	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if err = fn(tmp); err != nil {
		return nil, err
	}

	if err = os.Chmod(tmp, 0o644); err != nil {
		return nil, err
	}

	return &Pending{path: path, tmp: tmp}, nil
}

// Commit renames the staged file over its destination.
func (p *Pending) Commit() error {
	if err := os.Rename(p.tmp, p.path); err != nil {
		os.Remove(p.tmp)
		return err
	}
	return nil
}

// Path returns the destination of the staged file.
func (p *Pending) Path() string {
	return p.path
}

// Discard removes the staged file, leaving the destination untouched.
func (p *Pending) Discard() {
	os.Remove(p.tmp)
}

// Path stages fn's temporary file and commits it straight away.
func Path(path string, fn func(tmp string) error) error {
	p, err := Stage(path, fn)
	if err != nil {
		return err
	}
	return p.Commit()
}

// StageFile stages fn's output for path.
func StageFile(path string, fn func(w io.Writer) error) (*Pending, error) {
	return Stage(path, func(tmp string) error {
		f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return err
		}
		if err := fn(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

// StageBytes stages b for path.
func StageBytes(path string, b []byte) (*Pending, error) {
	return StageFile(path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

// Bytes writes b to path.
func Bytes(path string, b []byte) error {
	p, err := StageBytes(path, b)
	if err != nil {
		return err
	}
	return p.Commit()
}
