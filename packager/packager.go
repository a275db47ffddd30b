// Package packager turns an SDL Trados project package into a return package.
//
// The descriptor inside the archive is flipped from ProjectPackage to
// ReturnPackage, the bilingual documents of the target language are replaced
// with their translated versions, and the archive is renamed to the return
// package extension. A backup copy is made before anything is touched.
package packager

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.nhat.io/aferocopy/v2"
	"go.uber.org/zap"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/archive"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/ixgest/types"
	"github.com/teranos/sdlppx/logger"
)

// Packager performs package transformations
type Packager struct {
	cfg    am.PackageConfig
	osFs   afero.Fs
	logger *zap.SugaredLogger
}

// New creates a packager
func New(cfg am.PackageConfig, log *zap.SugaredLogger) *Packager {
	return &Packager{
		cfg:    cfg,
		osFs:   afero.NewOsFs(),
		logger: logger.ComponentLogger(log, "packager"),
	}
}

// Transform converts the package at archivePath into a return package using
// the translated documents found in targetDir.
func (p *Packager) Transform(archivePath, targetDir string) (*types.PackageResult, error) {
	result := &types.PackageResult{
		ArchivePath: archivePath,
		NewPath:     archivePath,
		StartTime:   time.Now(),
	}
	defer func() { result.EndTime = time.Now() }()

	if err := requireExists(archivePath, false); err != nil {
		return result, err
	}
	if err := requireExists(targetDir, true); err != nil {
		return result, err
	}

	backup, err := p.backup(archivePath)
	if err != nil {
		return result, err
	}
	result.BackupPath = backup

	a, err := archive.Open(archivePath, p.logger)
	if err != nil {
		return result, err
	}
	// Close after a successful commit is a no-op
	defer a.Discard()

	desc, err := p.Inspect(a)
	if err != nil {
		return result, err
	}
	if desc == nil {
		p.logger.Warnw("No project descriptor found, package not updated",
			logger.FieldArchive, archivePath,
			"suffix", p.cfg.DescriptorSuffix)
		return result, nil
	}
	result.Descriptor = desc.Entry
	result.TargetLanguage = desc.TargetLanguage
	result.PackageType = string(desc.Type)

	if !desc.MarkReturned() {
		p.logger.Infow("Already a return package, nothing to do",
			logger.FieldArchive, archivePath,
			logger.FieldDescriptor, desc.Entry)
		return result, nil
	}

	if err := p.persist(a, desc); err != nil {
		return result, err
	}
	result.Updated = true

	replaced, missing, err := p.replaceDocuments(a, desc.TargetLanguage, targetDir)
	if err != nil {
		return result, err
	}
	result.Replaced = replaced
	result.Missing = missing

	if err := a.Close(); err != nil {
		return result, errors.Wrapf(err, "failed to commit %s", archivePath)
	}

	newPath := p.returnPath(archivePath)
	if newPath != archivePath {
		if err := os.Rename(archivePath, newPath); err != nil {
			return result, errors.WrapPersistence(err, "failed to rename package")
		}
	}
	result.NewPath = newPath

	p.logger.Infow("Package converted to return package",
		logger.FieldArchive, archivePath,
		logger.FieldTarget, newPath,
		logger.FieldLanguage, desc.TargetLanguage,
		"replaced", len(replaced),
		"missing", len(missing))

	return result, nil
}

// Inspect locates and parses the project descriptor without changing anything.
// Returns a nil descriptor when the archive has none.
func (p *Packager) Inspect(a *archive.Archive) (*Descriptor, error) {
	found, err := a.Find("", p.cfg.DescriptorDepth, archive.Suffix(p.cfg.DescriptorSuffix))
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	if len(found) > 1 {
		p.logger.Warnw("Multiple project descriptors found, using the first",
			logger.FieldArchive, a.Path(),
			logger.FieldDescriptor, found[0],
			logger.FieldCount, len(found))
	}

	data, err := a.ReadFile(found[0])
	if err != nil {
		return nil, err
	}
	desc, err := ParseDescriptor(found[0], data)
	if err != nil {
		return nil, err
	}

	if desc.Directions > 1 {
		p.logger.Warnw("Multiple language directions found, only the first is used",
			logger.FieldDescriptor, desc.Entry,
			logger.FieldLanguage, desc.TargetLanguage,
			logger.FieldCount, desc.Directions)
	}
	if !desc.ValidLanguage() {
		p.logger.Warnw("Target language is not a valid language tag",
			logger.FieldDescriptor, desc.Entry,
			logger.FieldLanguage, desc.TargetLanguage)
	}

	return desc, nil
}

// backup copies the package to a temp sibling and renames it over any previous
// backup, which survives a failed copy.
func (p *Packager) backup(archivePath string) (string, error) {
	backup := archivePath + p.cfg.BackupSuffix
	tmp := backup + ".tmp"
	err := aferocopy.Copy(archivePath, tmp, aferocopy.Options{
		SrcFs:  p.osFs,
		DestFs: p.osFs,
		Sync:   true,
	})
	if err != nil {
		p.osFs.Remove(tmp)
		return "", errors.WrapPersistence(err, "failed to back up package")
	}
	if err := p.osFs.Rename(tmp, backup); err != nil {
		p.osFs.Remove(tmp)
		return "", errors.WrapPersistence(err, "failed to replace existing backup")
	}
	p.logger.Debugw("Backup written", logger.FieldBackup, backup)
	return backup, nil
}

// persist swaps the descriptor entry through a temp file that is removed on return
func (p *Packager) persist(a *archive.Archive, desc *Descriptor) error {
	data, err := desc.Bytes()
	if err != nil {
		return errors.Mark(err, errors.ErrPersistence)
	}

	tmp, err := os.CreateTemp("", "sdlppx-descriptor-*"+p.cfg.DescriptorSuffix)
	if err != nil {
		return errors.WrapPersistence(err, "failed to create temp descriptor")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WrapPersistence(err, "failed to write temp descriptor")
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapPersistence(err, "failed to close temp descriptor")
	}

	if err := a.CopyIn(tmp.Name(), desc.Entry, true); err != nil {
		return errors.WrapPersistence(err, "failed to replace descriptor entry")
	}
	return nil
}

// replaceDocuments overwrites each translated document of lang with the file of
// the same base name in targetDir. Files that cannot be copied are only reported.
func (p *Packager) replaceDocuments(a *archive.Archive, lang, targetDir string) ([]string, []string, error) {
	if lang == "" {
		p.logger.Warnw("Descriptor has no target language, no documents replaced")
		return nil, nil, nil
	}

	match, err := archive.Glob(p.cfg.DocumentPattern)
	if err != nil {
		return nil, nil, err
	}
	entries, err := a.Find(lang, p.cfg.DocumentDepth, match)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		p.logger.Warnw("No documents found for target language",
			logger.FieldLanguage, lang,
			"pattern", p.cfg.DocumentPattern)
	}

	var replaced, missing []string
	for _, entry := range entries {
		src := filepath.Join(targetDir, path.Base(entry))
		if err := a.CopyIn(src, entry, true); err != nil {
			p.logger.Warnw("Translated document not copied",
				logger.FieldEntry, entry,
				logger.FieldSource, src,
				logger.FieldError, err)
			missing = append(missing, entry)
			continue
		}
		replaced = append(replaced, entry)
	}
	return replaced, missing, nil
}

func (p *Packager) returnPath(archivePath string) string {
	if strings.HasSuffix(archivePath, p.cfg.ProjectExtension) {
		return strings.TrimSuffix(archivePath, p.cfg.ProjectExtension) + p.cfg.ReturnExtension
	}
	if strings.HasSuffix(archivePath, p.cfg.ReturnExtension) {
		return archivePath
	}
	return archivePath + p.cfg.ReturnExtension
}

func requireExists(p string, dir bool) error {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewMissingInputf("%s does not exist", p)
		}
		return errors.Wrapf(err, "failed to stat %s", p)
	}
	if dir && !info.IsDir() {
		return errors.NewMissingInputf("%s is not a directory", p)
	}
	if !dir && info.IsDir() {
		return errors.NewMissingInputf("%s is a directory, expected a package file", p)
	}
	return nil
}
