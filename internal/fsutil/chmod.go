package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Chmod sets mode on path, and on everything below it when recursive is set.
// Symlinks are skipped.
func Chmod(path string, mode os.FileMode, recursive bool) error {
	if !recursive {
		return os.Chmod(path, mode)
	}
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		return os.Chmod(p, mode)
	})
}
