// Package convert runs the conversion steps for one package and keeps each
// step's failure from affecting the others.
package convert

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/archive"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/internal/util"
	"github.com/teranos/sdlppx/ixgest/sdltb"
	"github.com/teranos/sdlppx/ixgest/sdltm"
	"github.com/teranos/sdlppx/ixgest/types"
	"github.com/teranos/sdlppx/logger"
	"github.com/teranos/sdlppx/packager"
)

// Runner executes conversion steps with a fixed configuration
type Runner struct {
	cfg      *am.Config
	logger   *zap.SugaredLogger
	packager *packager.Packager
	glossary *sdltb.Extractor
	memory   *sdltm.Extractor
}

// New creates a runner
func New(cfg *am.Config, log *zap.SugaredLogger) *Runner {
	log = logger.OrNop(log)
	return &Runner{
		cfg:      cfg,
		logger:   log.Named("convert"),
		packager: packager.New(cfg.Package, log),
		glossary: sdltb.New(cfg.Glossary, log),
		memory:   sdltm.New(log),
	}
}

// Return turns the project package into a return package
func (r *Runner) Return(archivePath, targetDir string) *types.RunResult {
	result := r.begin(archivePath)
	r.returnStep(result, targetDir)
	return r.finish(result)
}

// Extract copies the source documents out of the package and exports its
// translation memories and termbases into outputDir
func (r *Runner) Extract(archivePath, outputDir string) *types.RunResult {
	result := r.begin(archivePath)
	r.extractSteps(result, archivePath, outputDir)
	return r.finish(result)
}

// Run returns the package, then extracts from the renamed archive
func (r *Runner) Run(archivePath, targetDir, outputDir string) *types.RunResult {
	result := r.begin(archivePath)
	r.returnStep(result, targetDir)
	r.extractSteps(result, result.FinalPath, outputDir)
	return r.finish(result)
}

func (r *Runner) begin(archivePath string) *types.RunResult {
	return &types.RunResult{
		ArchivePath: archivePath,
		FinalPath:   archivePath,
		StartTime:   time.Now(),
	}
}

func (r *Runner) finish(result *types.RunResult) *types.RunResult {
	result.EndTime = time.Now()
	result.Success = result.ExitCode() == types.ExitOK
	return result
}

func (r *Runner) returnStep(result *types.RunResult, targetDir string) {
	r.step(result, types.StepPackage, false, func() (interface{}, error) {
		pkg, err := r.packager.Transform(result.ArchivePath, targetDir)
		if pkg != nil && err == nil {
			result.FinalPath = pkg.NewPath
		}
		return pkg, err
	})
}

// extractSteps opens the archive read-only once and runs the three extract steps
func (r *Runner) extractSteps(result *types.RunResult, archivePath, outputDir string) {
	a, err := archive.Open(archivePath, r.logger)
	if err != nil {
		// Without the archive every enabled step fails on the same cause
		for _, s := range []struct {
			name string
			skip bool
		}{
			{types.StepSourceDocuments, r.cfg.SourceDocuments.Skip},
			{types.StepTranslationMemory, r.cfg.TranslationMemory.Skip},
			{types.StepGlossary, r.cfg.Glossary.Skip},
		} {
			r.step(result, s.name, s.skip, func() (interface{}, error) { return nil, err })
		}
		return
	}
	defer a.Discard()

	r.step(result, types.StepSourceDocuments, r.cfg.SourceDocuments.Skip, func() (interface{}, error) {
		return r.sourceDocuments(a, outputDir)
	})
	r.step(result, types.StepTranslationMemory, r.cfg.TranslationMemory.Skip, func() (interface{}, error) {
		return r.translationMemories(a, outputDir)
	})
	r.step(result, types.StepGlossary, r.cfg.Glossary.Skip, func() (interface{}, error) {
		return r.glossaries(a, outputDir)
	})
}

// step runs fn and records its outcome; errors never escape the step
func (r *Runner) step(result *types.RunResult, name string, skip bool, fn func() (interface{}, error)) {
	s := types.StepResult{Name: name}
	if skip {
		s.Status = types.StatusSkipped
		r.logger.Infow("Step skipped", logger.FieldStep, name)
		result.Steps = append(result.Steps, s)
		return
	}

	start := time.Now()
	detail, err := fn()
	s.Duration = time.Since(start)
	s.Detail = detail

	if err != nil {
		s.Status = types.StatusFailed
		s.Error = err.Error()
		s.Hint = errors.FlattenHints(err)
		r.logger.Errorw("Step failed",
			logger.FieldStep, name,
			logger.FieldError, err,
			logger.FieldDurationMS, s.Duration.Milliseconds())
	} else {
		s.Status = types.StatusOK
		r.logger.Infow("Step completed",
			logger.FieldStep, name,
			logger.FieldDurationMS, s.Duration.Milliseconds())
	}
	result.Steps = append(result.Steps, s)
}

func (r *Runner) sourceDocuments(a *archive.Archive, outputDir string) (*types.SourceDocumentsResult, error) {
	desc, err := r.packager.Inspect(a)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, errors.NewMissingInputf("%s has no project descriptor", a.Path())
	}
	if desc.TargetLanguage == "" {
		return nil, errors.NewMissingInputf("descriptor %s has no target language", desc.Entry)
	}

	match, err := archive.Glob(r.cfg.Package.DocumentPattern)
	if err != nil {
		return nil, err
	}
	entries, err := a.Find(desc.TargetLanguage, r.cfg.Package.DocumentDepth, match)
	if err != nil {
		return nil, err
	}

	res := &types.SourceDocumentsResult{
		TargetLanguage: desc.TargetLanguage,
		OutputDir:      filepath.Join(outputDir, desc.TargetLanguage),
	}
	for _, entry := range entries {
		dst := filepath.Join(res.OutputDir, path.Base(entry))
		if err := a.CopyOut(entry, dst, true); err != nil {
			return res, err
		}
		res.Files = append(res.Files, dst)
	}
	r.logger.Infow("Source documents extracted",
		logger.FieldLanguage, desc.TargetLanguage,
		logger.FieldOutput, res.OutputDir,
		logger.FieldCount, len(res.Files))
	return res, nil
}

func (r *Runner) translationMemories(a *archive.Archive, outputDir string) ([]*types.TMResult, error) {
	stores, err := r.findStores(a, r.cfg.TranslationMemory.StorePattern, r.cfg.TranslationMemory.SearchDepth)
	if err != nil {
		return nil, err
	}

	var results []*types.TMResult
	var errs error
	written := make(map[string]string)
	for _, entry := range stores {
		res, err := withStore(a, entry, func(local string) (*types.TMResult, error) {
			return r.memory.Extract(local, outputDir)
		})
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "translation memory %s", entry))
			continue
		}
		res.SourceFile = entry
		r.warnOverwrite(written, res.OutputFile, entry)
		results = append(results, res)
	}
	return results, errs
}

func (r *Runner) glossaries(a *archive.Archive, outputDir string) ([]*types.GlossaryResult, error) {
	stores, err := r.findStores(a, r.cfg.Glossary.StorePattern, r.cfg.Glossary.SearchDepth)
	if err != nil {
		return nil, err
	}

	var results []*types.GlossaryResult
	var errs error
	written := make(map[string]string)
	for _, entry := range stores {
		prefix := glossaryPrefix(a.Path(), entry, len(stores))
		res, err := withStore(a, entry, func(local string) (*types.GlossaryResult, error) {
			return r.glossary.Extract(local, outputDir, prefix)
		})
		if err != nil {
			errs = errors.CombineErrors(errs, errors.Wrapf(err, "termbase %s", entry))
			continue
		}
		res.SourceFile = entry
		r.warnOverwrite(written, res.OutputFile, entry)
		results = append(results, res)
	}
	return results, errs
}

// glossaryPrefix is the archive base name, extended with the store name when
// the package holds more than one termbase so their outputs stay apart.
func glossaryPrefix(archivePath, entry string, stores int) string {
	prefix := util.TrimExt(archivePath)
	if stores > 1 {
		prefix += "_" + util.TrimExt(path.Base(entry))
	}
	return prefix
}

// warnOverwrite records output as written by entry and warns when an earlier
// store of the same step already wrote it.
func (r *Runner) warnOverwrite(written map[string]string, output, entry string) {
	if prev, ok := written[output]; ok {
		r.logger.Warnw("Output file overwritten by another store",
			logger.FieldOutput, output,
			logger.FieldSource, entry,
			"previous", prev)
	}
	written[output] = entry
}

func (r *Runner) findStores(a *archive.Archive, pattern string, depth int) ([]string, error) {
	match, err := archive.Glob(pattern)
	if err != nil {
		return nil, err
	}
	stores, err := a.Find("", depth, match)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		r.logger.Infow("No stores found", "pattern", pattern, logger.FieldArchive, a.Path())
	}
	return stores, nil
}

// withStore copies an embedded store to a temp dir for the duration of fn.
// SQLite only opens stores from disk.
func withStore[T any](a *archive.Archive, entry string, fn func(local string) (T, error)) (T, error) {
	var zero T
	dir, err := os.MkdirTemp("", "sdlppx-store-*")
	if err != nil {
		return zero, errors.WrapPersistence(err, "failed to create temp dir")
	}
	defer os.RemoveAll(dir)

	local := filepath.Join(dir, path.Base(entry))
	if err := a.CopyOut(entry, local, false); err != nil {
		return zero, err
	}
	return fn(local)
}
