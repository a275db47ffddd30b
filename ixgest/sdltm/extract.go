// Package sdltm exports SDL Trados translation memories as TMX 1.1.
package sdltm

import (
	"database/sql"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/db"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/internal/util"
	"github.com/teranos/sdlppx/ixgest/types"
	"github.com/teranos/sdlppx/logger"
	"github.com/teranos/sdlppx/tmx"
	"github.com/teranos/sdlppx/version"
)

// Store tables
const (
	HeaderTable = "translation_memories"
	UnitTable   = "translation_units"
)

const (
	headerQuery = "SELECT name, source_language, tucount FROM " + HeaderTable
	unitQuery   = "SELECT id, source_segment, target_segment FROM " + UnitTable + " ORDER BY id"

	// fallbackName names the export when the store header carries no name
	fallbackName = "translation_memory"
)

// StoreHeader is the first row of the translation_memories table
type StoreHeader struct {
	Name           string
	SourceLanguage string
	UnitCount      int
}

// Extractor exports translation memory stores
type Extractor struct {
	logger *zap.SugaredLogger
}

// New creates a translation memory extractor
func New(log *zap.SugaredLogger) *Extractor {
	return &Extractor{logger: logger.ComponentLogger(log, "sdltm")}
}

// Extract exports the store at sourceFile to <outputDir>/<name>.tmx
func (e *Extractor) Extract(sourceFile, outputDir string) (*types.TMResult, error) {
	store, err := db.OpenStore(sourceFile, e.logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := db.RequireTables(store, HeaderTable, UnitTable); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "%s is not a translation memory", sourceFile),
			"expected an SDL Trados file-based translation memory (.sdltm)",
		)
	}

	result, err := e.Export(store, outputDir)
	if result != nil {
		result.SourceFile = sourceFile
	}
	return result, err
}

// Export reads the header and every unit from store and writes the TMX file.
// Units whose segments cannot be parsed are skipped.
func (e *Extractor) Export(store *sql.DB, outputDir string) (*types.TMResult, error) {
	result := &types.TMResult{StartTime: time.Now()}
	defer func() { result.EndTime = time.Now() }()

	header, err := e.readHeader(store)
	if err != nil {
		return result, err
	}
	result.Name = header.Name
	result.SourceLanguage = header.SourceLanguage
	result.DeclaredUnits = header.UnitCount

	units, skipped, err := e.readUnits(store)
	if err != nil {
		return result, err
	}
	result.ExportedUnits = len(units)
	result.SkippedUnits = skipped

	info := version.Get()
	doc := &tmx.Document{
		Header: tmx.Header{
			CreationTool:        version.Name,
			CreationToolVersion: info.ToolVersion(),
			SrcLang:             header.SourceLanguage,
		},
		Units: units,
	}

	name := header.Name
	if name == "" {
		name = fallbackName
	}
	outputFile := filepath.Join(outputDir, util.SafeFileName(name)+".tmx")

	err = util.WriteFileAtomic(outputFile, am.DefaultFilePermissions, func(w io.Writer) error {
		_, err := doc.WriteTo(w)
		return err
	})
	if err != nil {
		return result, errors.Wrapf(err, "failed to write %s", outputFile)
	}
	result.OutputFile = outputFile

	e.logger.Infow("Translation memory exported",
		logger.FieldOutput, outputFile,
		logger.FieldCount, len(units),
		logger.FieldSkipped, skipped,
		logger.FieldDeclared, header.UnitCount,
		logger.FieldLanguage, header.SourceLanguage)

	return result, nil
}

func (e *Extractor) readHeader(store *sql.DB) (*StoreHeader, error) {
	rows, err := store.Query(headerQuery)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to query %s", HeaderTable)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", HeaderTable)
		}
		return nil, errors.NewMissingInputf("translation memory has no header row in %s", HeaderTable)
	}

	var name, lang sql.NullString
	var count sql.NullInt64
	if err := rows.Scan(&name, &lang, &count); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", HeaderTable)
	}
	header := &StoreHeader{Name: name.String, SourceLanguage: lang.String, UnitCount: int(count.Int64)}

	if rows.Next() {
		e.logger.Warnw("Multiple source languages in translation memory, only the first is used",
			logger.FieldLanguage, header.SourceLanguage)
	}
	return header, rows.Err()
}

func (e *Extractor) readUnits(store *sql.DB) ([]tmx.Unit, int, error) {
	rows, err := store.Query(unitQuery)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to query %s", UnitTable)
	}
	defer rows.Close()

	var units []tmx.Unit
	skipped := 0
	for rows.Next() {
		var id int64
		var source, target sql.NullString
		if err := rows.Scan(&id, &source, &target); err != nil {
			e.logger.Warnw("Skipping unreadable unit", logger.FieldError, err)
			skipped++
			continue
		}

		unit, err := parseUnit(source, target)
		if err != nil {
			e.logger.Warnw("Skipping malformed unit", logger.FieldRow, id, logger.FieldError, err)
			skipped++
			continue
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, skipped, errors.Wrapf(err, "failed to read %s", UnitTable)
	}
	return units, skipped, nil
}

func parseUnit(source, target sql.NullString) (tmx.Unit, error) {
	if !source.Valid || !target.Valid {
		return tmx.Unit{}, errors.NewMalformedRecordf("unit has an empty segment column")
	}
	src, err := ParseSegment(source.String)
	if err != nil {
		return tmx.Unit{}, errors.Wrap(err, "source segment")
	}
	tgt, err := ParseSegment(target.String)
	if err != nil {
		return tmx.Unit{}, errors.Wrap(err, "target segment")
	}
	return tmx.Unit{Source: src, Target: tgt}, nil
}
