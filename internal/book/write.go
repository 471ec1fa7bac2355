// write.go provides all-or-nothing file replacement.
//
// Each file is written to a temporary sibling and renamed into place, so a
// reader sees either the old or the new content. This holds per file only;
// there is no atomicity across the text and tag files of one book.

package book

import (
	"os"
	"path/filepath"
)

// WriteFile replaces path with data via a temporary sibling and rename.
func WriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
