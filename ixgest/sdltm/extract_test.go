package sdltm

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/sdlppx/errors"
	sdltest "github.com/teranos/sdlppx/internal/testing"
)

func segmentXML(lang, text string) string {
	return `<Segment><Elements><Text><Value>` + text + `</Value></Text></Elements><CultureName>` + lang + `</CultureName></Segment>`
}

func newExtractor(t *testing.T) *Extractor {
	return New(zaptest.NewLogger(t).Sugar())
}

func readTMX(t *testing.T, path string) *etree.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	return doc
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "main.sdltm")
	sdltest.CreateTMStore(t, store,
		[]sdltest.TMHeader{{Name: "Client/EN-FR", SourceLanguage: "en-US", UnitCount: 4}},
		[]sdltest.TMUnit{
			{ID: 1, Source: helloSegment, Target: segmentXML("fr-FR", "Bonjour le monde")},
			{ID: 2, Source: `<Segment><Elements>`, Target: segmentXML("fr-FR", "cassé")},
			{ID: 3, Source: segmentXML("en-US", "Goodbye"), Target: segmentXML("fr-FR", "Au revoir")},
			{ID: 4, Source: segmentXML("en-US", "No target"), Target: `<Segment/>`},
		})
	outputDir := filepath.Join(dir, "tmx")

	result, err := newExtractor(t).Extract(store, outputDir)
	require.NoError(t, err)

	assert.Equal(t, store, result.SourceFile)
	assert.Equal(t, "Client/EN-FR", result.Name)
	assert.Equal(t, "en-US", result.SourceLanguage)
	assert.Equal(t, 4, result.DeclaredUnits)
	assert.Equal(t, 2, result.ExportedUnits, "exported count is the valid row count")
	assert.Equal(t, 2, result.SkippedUnits)
	assert.Equal(t, filepath.Join(outputDir, "Client_EN-FR.tmx"), result.OutputFile)

	doc := readTMX(t, result.OutputFile)
	header := doc.FindElement("/tmx/header")
	require.NotNil(t, header)
	assert.Equal(t, "en-US", header.SelectAttrValue("srclang", ""))
	assert.Equal(t, "sdlppx", header.SelectAttrValue("creationtool", ""))
	assert.Equal(t, "SDLTM", header.SelectAttrValue("o-tmf", ""))

	tus := doc.FindElements("/tmx/body/tu")
	require.Len(t, tus, 2)
	segs := tus[1].FindElements("tuv/seg")
	require.Len(t, segs, 2)
	assert.Equal(t, "Goodbye", segs[0].Text())
	assert.Equal(t, "Au revoir", segs[1].Text())

	bpt := tus[0].FindElement("tuv[@lang='en-US']/seg/bpt")
	require.NotNil(t, bpt)
	assert.Equal(t, "1", bpt.SelectAttrValue("type", ""))
	assert.Equal(t, "0", bpt.SelectAttrValue("i", ""))
	assert.Equal(t, "3", bpt.SelectAttrValue("x", ""))
}

func TestExtract_MultipleHeaderRows(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "multi.sdltm")
	sdltest.CreateTMStore(t, store,
		[]sdltest.TMHeader{
			{Name: "first", SourceLanguage: "en-GB", UnitCount: 1},
			{Name: "second", SourceLanguage: "de-DE", UnitCount: 9},
		},
		[]sdltest.TMUnit{{ID: 1, Source: segmentXML("en-GB", "a"), Target: segmentXML("it-IT", "b")}})

	result, err := newExtractor(t).Extract(store, dir)
	require.NoError(t, err)
	assert.Equal(t, "first", result.Name)
	assert.Equal(t, "en-GB", result.SourceLanguage)
	assert.FileExists(t, filepath.Join(dir, "first.tmx"))
}

func TestExtract_NoHeader(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "empty.sdltm")
	sdltest.CreateTMStore(t, store, nil, nil)

	_, err := newExtractor(t).Extract(store, dir)
	require.Error(t, err)
	assert.True(t, errors.IsMissingInput(err))
}

func TestExtract_NotATranslationMemory(t *testing.T) {
	dir := t.TempDir()
	store := filepath.Join(dir, "terms.sdltb")
	sdltest.CreateTBStore(t, store, nil)

	_, err := newExtractor(t).Extract(store, dir)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), ".sdltm")
}

func TestExport_ConnectionFailure(t *testing.T) {
	store, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer store.Close()

	mock.ExpectQuery(regexp.QuoteMeta(headerQuery)).WillReturnError(errors.New("database is locked"))

	outputDir := t.TempDir()
	_, err = newExtractor(t).Export(store, outputDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_UnitQueryFailure(t *testing.T) {
	store, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer store.Close()

	mock.ExpectQuery(regexp.QuoteMeta(headerQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "source_language", "tucount"}).AddRow("m", "en-US", 3))
	mock.ExpectQuery(regexp.QuoteMeta(unitQuery)).WillReturnError(errors.New("no such table"))

	_, err = newExtractor(t).Export(store, t.TempDir())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExport_NullSegmentsSkipped(t *testing.T) {
	store, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer store.Close()

	mock.ExpectQuery(regexp.QuoteMeta(headerQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "source_language", "tucount"}).AddRow("", "en-US", nil))
	mock.ExpectQuery(regexp.QuoteMeta(unitQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_segment", "target_segment"}).
			AddRow(1, nil, segmentXML("fr-FR", "x")).
			AddRow(2, segmentXML("en-US", "a &amp; b"), segmentXML("fr-FR", "c")))

	outputDir := t.TempDir()
	result, err := newExtractor(t).Export(store, outputDir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ExportedUnits)
	assert.Equal(t, 1, result.SkippedUnits)
	assert.Equal(t, filepath.Join(outputDir, "translation_memory.tmx"), result.OutputFile)

	data, err := os.ReadFile(result.OutputFile)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("<seg>a &amp; b</seg>")))
}
