package localstorage

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
)

// writeFileAtomic writes path through a temp file in the same directory:
// write, flush, fsync, close, rename. Readers see the old file or the new one.
func writeFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return eris.Wrapf(err, "failed to create temp file for %s", name)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	buf := bufio.NewWriter(tmp)
	if err = write(buf); err != nil {
		return eris.Wrapf(err, "failed to write %s", name)
	}
	if err = buf.Flush(); err != nil {
		return eris.Wrapf(err, "failed to flush %s", name)
	}
	if err = tmp.Sync(); err != nil {
		return eris.Wrapf(err, "failed to sync %s", name)
	}
	if err = tmp.Close(); err != nil {
		return eris.Wrapf(err, "failed to close %s", name)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "failed to replace %s", name)
	}

	syncDir(dir)
	return nil
}

// syncDir persists the rename. Not every platform supports fsync on directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
