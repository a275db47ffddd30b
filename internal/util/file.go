package util

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/sdlppx/errors"
)

// WriteFileAtomic streams content into a temp file next to path and renames it
// into place once write and close both succeed. On failure nothing is left behind.
// The parent directory is created if absent.
func WriteFileAtomic(path string, perm os.FileMode, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.WrapPersistence(err, "failed to create output directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapPersistence(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return errors.WrapPersistence(err, "failed to flush output")
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.WrapPersistence(err, "failed to set output permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapPersistence(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapPersistence(err, "failed to move output into place")
	}
	return nil
}

var unsafeNameChars = strings.NewReplacer("/", "_", "\\", "_", ":", "_")

// SafeFileName replaces path separators and drive colons so name stays one path element
func SafeFileName(name string) string {
	return unsafeNameChars.Replace(name)
}

// TrimExt returns the base name of path without its final extension
func TrimExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
