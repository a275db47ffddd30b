// Package archive exposes a zip file as an in-memory file tree.
//
// An Archive is loaded fully into an afero.MemMapFs on Open. Entries can be
// searched, read, and exchanged with the OS filesystem; Close writes the tree
// back only if something changed, through a sibling temp file renamed over the
// original so a failed commit never corrupts it.
package archive

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"go.nhat.io/aferocopy/v2"
	"go.uber.org/zap"

	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/logger"
)

const copyBufferSize uint = 512 * 1024

// Archive is one open zip file
type Archive struct {
	path   string
	perm   os.FileMode
	mem    afero.Fs
	os     afero.Fs
	reader *zip.ReadCloser
	log    *zap.SugaredLogger

	order    []string
	original map[string]*zip.File
	modified map[string]bool
	closed   bool
}

// Open loads the zip at path into memory
func Open(archivePath string, log *zap.SugaredLogger) (*Archive, error) {
	log = logger.OrNop(log)

	info, err := os.Stat(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputf("archive %s does not exist", archivePath)
		}
		return nil, errors.Wrapf(err, "failed to stat archive %s", archivePath)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open archive %s", archivePath)
	}

	a := &Archive{
		path:     archivePath,
		perm:     info.Mode().Perm(),
		mem:      afero.NewMemMapFs(),
		os:       afero.NewOsFs(),
		reader:   r,
		log:      log,
		original: make(map[string]*zip.File, len(r.File)),
		modified: make(map[string]bool),
	}

	for _, f := range r.File {
		if err := a.load(f); err != nil {
			r.Close()
			return nil, errors.Wrapf(err, "failed to load entry %s", f.Name)
		}
	}

	log.Debugw("Archive opened", logger.FieldArchive, archivePath, logger.FieldCount, len(a.order))
	return a, nil
}

func (a *Archive) load(f *zip.File) error {
	name := path.Clean(f.Name)
	if _, seen := a.original[name]; !seen {
		a.order = append(a.order, name)
	}
	a.original[name] = f

	if f.FileInfo().IsDir() {
		return a.mem.MkdirAll(memPath(name), 0755)
	}
	if err := a.mem.MkdirAll(memPath(path.Dir(name)), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	dst, err := a.mem.Create(memPath(name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, rc)
	return err
}

// Path returns the file the archive was opened from
func (a *Archive) Path() string {
	return a.path
}

// Entries returns entry names in archive order
func (a *Archive) Entries() []string {
	return append([]string(nil), a.order...)
}

// Modified reports whether Close will rewrite the archive
func (a *Archive) Modified() bool {
	return len(a.modified) > 0
}

// Exists reports whether a file entry with the given name exists
func (a *Archive) Exists(name string) bool {
	info, err := a.mem.Stat(memPath(name))
	return err == nil && !info.IsDir()
}

// ReadFile returns the content of an entry
func (a *Archive) ReadFile(name string) ([]byte, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(a.mem, memPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewMissingInputf("entry %s not found in %s", name, a.path)
		}
		return nil, errors.Wrapf(err, "failed to read entry %s", name)
	}
	return data, nil
}

// CopyIn copies the OS file src into the entry dst
func (a *Archive) CopyIn(src, dst string, overwrite bool) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return errors.NewMissingInputf("source file %s does not exist", src)
		}
		return errors.Wrapf(err, "failed to stat %s", src)
	}

	name := path.Clean(dst)
	if a.Exists(name) && !overwrite {
		return errors.Newf("entry %s already exists", name)
	}
	if err := a.mem.MkdirAll(memPath(path.Dir(name)), 0755); err != nil {
		return errors.Wrapf(err, "failed to create folder for %s", name)
	}
	if err := copyFile(a.os, src, a.mem, memPath(name)); err != nil {
		return errors.Wrapf(err, "failed to copy %s into %s", src, name)
	}

	if _, known := a.original[name]; !known && !a.modified[name] {
		a.order = append(a.order, name)
	}
	a.modified[name] = true

	a.log.Debugw("Entry replaced", logger.FieldSource, src, logger.FieldEntry, name)
	return nil
}

// CopyOut copies the entry src to the OS file dst
func (a *Archive) CopyOut(src, dst string, overwrite bool) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	name := path.Clean(src)
	if !a.Exists(name) {
		return errors.NewMissingInputf("entry %s not found in %s", name, a.path)
	}
	if _, err := os.Stat(dst); err == nil && !overwrite {
		return errors.Newf("destination %s already exists", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, "failed to create folder for %s", dst)
	}
	if err := copyFile(a.mem, memPath(name), a.os, dst); err != nil {
		return errors.Wrapf(err, "failed to copy %s out to %s", name, dst)
	}

	a.log.Debugw("Entry copied out", logger.FieldEntry, name, logger.FieldTarget, dst)
	return nil
}

// Close commits pending changes and releases the archive.
// Calling Close again is a no-op.
func (a *Archive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if !a.Modified() {
		return a.reader.Close()
	}

	err := a.commit()
	if err != nil {
		a.reader.Close()
		return err
	}
	return nil
}

// Discard releases the archive without writing pending changes
func (a *Archive) Discard() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.reader.Close()
}

func (a *Archive) checkOpen() error {
	if a.closed {
		return errors.Newf("archive %s is closed", a.path)
	}
	return nil
}

// commit re-serializes every entry in original order. Untouched entries are
// copied raw with their original headers; modified and new entries are deflated.
func (a *Archive) commit() (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(a.path), "."+filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return errors.WrapPersistence(err, "failed to create temp archive")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := zip.NewWriter(tmp)
	if a.reader.Comment != "" {
		if err := w.SetComment(a.reader.Comment); err != nil {
			return errors.WrapPersistence(err, "failed to copy archive comment")
		}
	}

	for _, name := range a.order {
		orig, known := a.original[name]
		if known && !a.modified[name] {
			if err := w.Copy(orig); err != nil {
				return errors.WrapPersistence(err, "failed to copy entry "+name)
			}
			continue
		}
		if err := a.writeEntry(w, name, orig); err != nil {
			return errors.WrapPersistence(err, "failed to write entry "+name)
		}
	}

	if err := w.Close(); err != nil {
		return errors.WrapPersistence(err, "failed to finish archive")
	}
	if err := tmp.Chmod(a.perm); err != nil {
		return errors.WrapPersistence(err, "failed to set archive permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapPersistence(err, "failed to close temp archive")
	}
	if err := a.reader.Close(); err != nil {
		return errors.WrapPersistence(err, "failed to release archive")
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		return errors.WrapPersistence(err, "failed to replace archive")
	}

	a.log.Debugw("Archive committed", logger.FieldArchive, a.path, logger.FieldCount, len(a.modified))
	return nil
}

func (a *Archive) writeEntry(w *zip.Writer, name string, orig *zip.File) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	if orig != nil {
		header.Comment = orig.Comment
		header.SetMode(orig.Mode())
	}

	dst, err := w.CreateHeader(header)
	if err != nil {
		return err
	}
	src, err := a.mem.Open(memPath(name))
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = io.Copy(dst, src)
	return err
}

func copyFile(srcFs afero.Fs, src string, dstFs afero.Fs, dst string) error {
	return aferocopy.Copy(src, dst, aferocopy.Options{
		SrcFs:          srcFs,
		DestFs:         dstFs,
		Sync:           false,
		CopyBufferSize: copyBufferSize,
	})
}

func memPath(name string) string {
	return "/" + name
}
