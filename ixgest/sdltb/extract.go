// Package sdltb exports SDL MultiTerm termbases to delimited text or an
// OmegaT glossary.
package sdltb

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
	"github.com/teranos/sdlppx/termbase"
)

// ConceptTable holds one entry document per row
const ConceptTable = "mtConcepts"

const conceptQuery = "SELECT conceptid, text FROM " + ConceptTable + " ORDER BY conceptid"

// Extractor exports termbase stores
type Extractor struct {
	cfg    am.GlossaryConfig
	logger *zap.SugaredLogger
}

// New creates a termbase extractor
func New(cfg am.GlossaryConfig, log *zap.SugaredLogger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		logger: logger.ComponentLogger(log, "sdltb"),
	}
}

// Extract exports the termbase store at sourceFile into outputDir
func (e *Extractor) Extract(sourceFile, outputDir, prefix string) (*types.GlossaryResult, error) {
	store, err := db.OpenStore(sourceFile, e.logger)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if err := db.RequireTables(store, ConceptTable); err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "%s is not a termbase", sourceFile),
			"expected an SDL MultiTerm termbase with an mtConcepts table",
		)
	}

	result, err := e.Export(store, outputDir, prefix)
	if result != nil {
		result.SourceFile = sourceFile
	}
	return result, err
}

// Export reads every concept from store and writes the export file
func (e *Extractor) Export(store *sql.DB, outputDir, prefix string) (*types.GlossaryResult, error) {
	result := &types.GlossaryResult{
		Format:    string(e.cfg.OutputFormat),
		Layout:    string(e.cfg.SynonymLayout),
		StartTime: time.Now(),
	}
	defer func() { result.EndTime = time.Now() }()

	tb, skipped, err := e.load(store)
	if err != nil {
		return result, err
	}
	result.Concepts = tb.Len()
	result.Skipped = skipped
	result.Languages = tb.Languages()
	result.MetaKeys = tb.MetaKeys()

	name, err := OutputName(prefix, tb.Languages(), e.cfg.OutputFormat)
	if err != nil {
		return result, err
	}
	outputFile := filepath.Join(outputDir, name)

	err = util.WriteFileAtomic(outputFile, am.DefaultFilePermissions, func(w io.Writer) error {
		return Render(w, tb, e.cfg.OutputFormat, e.cfg.SynonymLayout)
	})
	if err != nil {
		return result, errors.Wrapf(err, "failed to write %s", outputFile)
	}
	result.OutputFile = outputFile

	if ids, _ := MisalignedConcepts(tb, e.cfg.OutputFormat, e.cfg.SynonymLayout); len(ids) > 0 {
		e.logger.Warnw("Fields hold separators or line breaks, these rows do not line up with the header",
			logger.FieldOutput, outputFile,
			logger.FieldCount, len(ids),
			"concepts", ids)
	}

	e.logger.Infow("Termbase exported",
		logger.FieldOutput, outputFile,
		logger.FieldCount, result.Concepts,
		logger.FieldSkipped, skipped,
		logger.FieldLanguages, result.Languages,
		logger.FieldFormat, result.Format,
		logger.FieldLayout, result.Layout)

	return result, nil
}

// load parses all rows; a row that cannot be read or parsed is skipped
// and contributes nothing to the termbase.
func (e *Extractor) load(store *sql.DB) (*termbase.TermBase, int, error) {
	rows, err := store.Query(conceptQuery)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to query %s", ConceptTable)
	}
	defer rows.Close()

	builder := termbase.NewBuilder()
	skipped := 0
	row := 0
	for rows.Next() {
		row++
		var id int
		var text sql.NullString
		if err := rows.Scan(&id, &text); err != nil {
			e.logger.Warnw("Skipping unreadable concept row", logger.FieldRow, row, logger.FieldError, err)
			skipped++
			continue
		}
		if !text.Valid {
			e.logger.Warnw("Skipping concept without entry document", logger.FieldRow, row, "concept", id)
			skipped++
			continue
		}

		c, err := ParseConcept(id, text.String)
		if err != nil {
			e.logger.Warnw("Skipping malformed concept", logger.FieldRow, row, "concept", id, logger.FieldError, err)
			skipped++
			continue
		}
		builder.Add(c)
	}
	if err := rows.Err(); err != nil {
		return nil, skipped, errors.Wrapf(err, "failed to read %s", ConceptTable)
	}

	e.logger.Debugw("Concepts loaded", logger.FieldTable, ConceptTable, logger.FieldCount, builder.Len())
	return builder.Build(), skipped, nil
}
