package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/sdlppx/am"
	sdltest "github.com/teranos/sdlppx/internal/testing"
	"github.com/teranos/sdlppx/ixgest/types"
)

const descriptor = `<?xml version="1.0" encoding="utf-8"?>
<PackageProject PackageType="ProjectPackage">
  <LanguageDirections><LanguageDirection SourceLanguageCode="en-US" TargetLanguageCode="fr-FR"/></LanguageDirections>
</PackageProject>`

const entry = `<cG><lG><l type="English"/><tG><t>proton</t></tG></lG><lG><l type="French"/><tG><t>proton</t></tG></lG></cG>`

func segment(lang, text string) string {
	return `<Segment><Elements><Text><Value>` + text + `</Value></Text></Elements><CultureName>` + lang + `</CultureName></Segment>`
}

type fixture struct {
	archive   string
	targetDir string
	outputDir string
}

// newFixture builds a project package holding one document, one TM and one termbase.
// A nil tmBytes embeds a valid translation memory.
func newFixture(t *testing.T, tmBytes []byte) fixture {
	t.Helper()
	dir := t.TempDir()

	tmPath := filepath.Join(dir, "main.sdltm")
	sdltest.CreateTMStore(t, tmPath,
		[]sdltest.TMHeader{{Name: "main", SourceLanguage: "en-US", UnitCount: 1}},
		[]sdltest.TMUnit{{ID: 1, Source: segment("en-US", "Hello"), Target: segment("fr-FR", "Bonjour")}})
	if tmBytes == nil {
		var err error
		tmBytes, err = os.ReadFile(tmPath)
		require.NoError(t, err)
	}

	tbPath := filepath.Join(dir, "terms.sdltb")
	sdltest.CreateTBStore(t, tbPath, []sdltest.TBRow{{ConceptID: 1, Text: entry}})
	tbBytes, err := os.ReadFile(tbPath)
	require.NoError(t, err)

	f := fixture{
		archive:   filepath.Join(dir, "Job.sdlppx"),
		targetDir: filepath.Join(dir, "translated"),
		outputDir: filepath.Join(dir, "out"),
	}
	sdltest.BuildArchive(t, f.archive,
		sdltest.Entry("Job.sdlproj", descriptor),
		sdltest.Entry("en-US/doc.sdlxliff", "source"),
		sdltest.Entry("fr-FR/doc.sdlxliff", "untranslated"),
		sdltest.ArchiveEntry{Name: "Tm/en-US_fr-FR/main.sdltm", Body: tmBytes},
		sdltest.ArchiveEntry{Name: "Termbases/terms.sdltb", Body: tbBytes},
	)

	require.NoError(t, os.MkdirAll(f.targetDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(f.targetDir, "doc.sdlxliff"), []byte("traduit"), 0644))
	return f
}

func newRunner(t *testing.T, mutate func(cfg *am.Config)) *Runner {
	cfg := am.Default()
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, zaptest.NewLogger(t).Sugar())
}

func stepStatuses(r *types.RunResult) map[string]string {
	statuses := make(map[string]string)
	for _, s := range r.Steps {
		statuses[s.Name] = s.Status
	}
	return statuses
}

func TestRun(t *testing.T) {
	f := newFixture(t, nil)

	result := newRunner(t, nil).Run(f.archive, f.targetDir, f.outputDir)

	assert.True(t, result.Success)
	assert.Equal(t, types.ExitOK, result.ExitCode())
	assert.Equal(t, map[string]string{
		types.StepPackage:           types.StatusOK,
		types.StepSourceDocuments:   types.StatusOK,
		types.StepTranslationMemory: types.StatusOK,
		types.StepGlossary:          types.StatusOK,
	}, stepStatuses(result))
	assert.Equal(t, strings.TrimSuffix(f.archive, ".sdlppx")+".sdlrpx", result.FinalPath)

	doc, err := os.ReadFile(filepath.Join(f.outputDir, "fr-FR", "doc.sdlxliff"))
	require.NoError(t, err)
	assert.Equal(t, "traduit", string(doc), "documents are extracted from the returned package")

	assert.FileExists(t, filepath.Join(f.outputDir, "main.tmx"))
	glossary, err := os.ReadFile(filepath.Join(f.outputDir, "Job_glossary_English_French.txt"))
	require.NoError(t, err)
	assert.Equal(t, "proton\tproton\n", string(glossary))
}

func TestExtract_StepIsolation(t *testing.T) {
	f := newFixture(t, []byte(strings.Repeat("not a database ", 300)))

	result := newRunner(t, nil).Extract(f.archive, f.outputDir)

	assert.False(t, result.Success)
	assert.Equal(t, types.ExitTranslationMemory, result.ExitCode())

	statuses := stepStatuses(result)
	assert.Equal(t, types.StatusOK, statuses[types.StepSourceDocuments])
	assert.Equal(t, types.StatusFailed, statuses[types.StepTranslationMemory])
	assert.Equal(t, types.StatusOK, statuses[types.StepGlossary], "a broken TM never blocks the glossary")

	tm, ok := result.Step(types.StepTranslationMemory)
	require.True(t, ok)
	assert.Contains(t, tm.Error, "main.sdltm")
	assert.FileExists(t, filepath.Join(f.outputDir, "Job_glossary_English_French.txt"))

	_, err := os.Stat(f.archive)
	assert.NoError(t, err, "extract never renames the archive")
}

func TestExtract_Skips(t *testing.T) {
	f := newFixture(t, nil)

	result := newRunner(t, func(cfg *am.Config) {
		cfg.Glossary.Skip = true
		cfg.SourceDocuments.Skip = true
	}).Extract(f.archive, f.outputDir)

	assert.True(t, result.Success)
	assert.Equal(t, map[string]string{
		types.StepSourceDocuments:   types.StatusSkipped,
		types.StepTranslationMemory: types.StatusOK,
		types.StepGlossary:          types.StatusSkipped,
	}, stepStatuses(result))
	assert.NoDirExists(t, filepath.Join(f.outputDir, "fr-FR"))
}

func TestExtract_MissingArchive(t *testing.T) {
	result := newRunner(t, func(cfg *am.Config) {
		cfg.Glossary.Skip = true
	}).Extract(filepath.Join(t.TempDir(), "absent.sdlppx"), t.TempDir())

	assert.Equal(t, types.ExitSourceDocuments, result.ExitCode())
	statuses := stepStatuses(result)
	assert.Equal(t, types.StatusFailed, statuses[types.StepTranslationMemory])
	assert.Equal(t, types.StatusSkipped, statuses[types.StepGlossary])
}

func TestReturn(t *testing.T) {
	t.Run("converts", func(t *testing.T) {
		f := newFixture(t, nil)
		result := newRunner(t, nil).Return(f.archive, f.targetDir)
		assert.Equal(t, types.ExitOK, result.ExitCode())
		require.Len(t, result.Steps, 1)

		pkg, ok := result.Steps[0].Detail.(*types.PackageResult)
		require.True(t, ok)
		assert.True(t, pkg.Updated)
		assert.Equal(t, []string{"fr-FR/doc.sdlxliff"}, pkg.Replaced)
	})

	t.Run("missing target dir fails the package step", func(t *testing.T) {
		f := newFixture(t, nil)
		result := newRunner(t, nil).Return(f.archive, filepath.Join(t.TempDir(), "absent"))
		assert.Equal(t, types.ExitPackage, result.ExitCode())
		assert.Equal(t, f.archive, result.FinalPath)
	})
}

func TestRun_PackageFailureStillExtracts(t *testing.T) {
	f := newFixture(t, nil)

	result := newRunner(t, nil).Run(f.archive, filepath.Join(t.TempDir(), "absent"), f.outputDir)

	assert.Equal(t, types.ExitPackage, result.ExitCode())
	statuses := stepStatuses(result)
	assert.Equal(t, types.StatusFailed, statuses[types.StepPackage])
	assert.Equal(t, types.StatusOK, statuses[types.StepTranslationMemory])
	assert.Equal(t, types.StatusOK, statuses[types.StepGlossary])
}

func TestExtract_TermbasesWithSameLanguagesKeepSeparateOutputs(t *testing.T) {
	dir := t.TempDir()
	tbPath := filepath.Join(dir, "terms.sdltb")
	sdltest.CreateTBStore(t, tbPath, []sdltest.TBRow{{ConceptID: 1, Text: entry}})
	tbBytes, err := os.ReadFile(tbPath)
	require.NoError(t, err)

	archivePath := filepath.Join(dir, "Job.sdlppx")
	sdltest.BuildArchive(t, archivePath,
		sdltest.ArchiveEntry{Name: "Termbases/client.sdltb", Body: tbBytes},
		sdltest.ArchiveEntry{Name: "Termbases/legal.sdltb", Body: tbBytes},
	)

	outputDir := filepath.Join(dir, "out")
	result := newRunner(t, func(cfg *am.Config) {
		cfg.SourceDocuments.Skip = true
		cfg.TranslationMemory.Skip = true
	}).Extract(archivePath, outputDir)

	assert.True(t, result.Success)
	assert.FileExists(t, filepath.Join(outputDir, "Job_client_glossary_English_French.txt"))
	assert.FileExists(t, filepath.Join(outputDir, "Job_legal_glossary_English_French.txt"))
}

func TestGlossaryPrefix(t *testing.T) {
	assert.Equal(t, "Job", glossaryPrefix("/work/Job.sdlppx", "Termbases/terms.sdltb", 1))
	assert.Equal(t, "Job_terms", glossaryPrefix("/work/Job.sdlppx", "Termbases/terms.sdltb", 2))
}
