// Package writer persists serialized declaration modules as .pypredef
// stub files.
package writer

import (
	"os"
	"path/filepath"

	"github.com/teranos/predef/errors"
)

// Extension is the stub file suffix completion backends look for.
const Extension = ".pypredef"

// Writer persists generated stubs under a single output directory.
type Writer struct {
	dir string
}

func New(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the output path for a namespace's stub file.
func (w *Writer) Path(namespace string) string {
	return filepath.Join(w.dir, namespace+Extension)
}

// Write persists one namespace's serialized stub and returns its path.
// The output directory is created when missing. The text lands in a temp
// file first and renames into place, so readers never observe a partial
// stub.
func (w *Writer) Write(namespace, text string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", errors.Wrapf(err, "creating output directory %s", w.dir)
	}

	tmp, err := os.CreateTemp(w.dir, namespace+".*.tmp")
	if err != nil {
		return "", errors.Wrapf(err, "creating temp file for %s", namespace)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "writing %s stub", namespace)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "closing %s stub", namespace)
	}

	path := w.Path(namespace)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", errors.Wrapf(err, "moving %s stub into place", namespace)
	}
	return path, nil
}
