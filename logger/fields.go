package logger

import "go.uber.org/zap"

// Standard field names for consistent structured logging across sdlppx.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"
	FieldStep      = "step"

	// Archives
	FieldArchive    = "archive"
	FieldEntry      = "entry"
	FieldDescriptor = "descriptor"
	FieldBackup     = "backup"
	FieldSource     = "source"
	FieldTarget     = "target"

	// Stores
	FieldStore = "store"
	FieldTable = "table"
	FieldRow   = "row"

	// Languages
	FieldLanguage  = "language"
	FieldLanguages = "languages"

	// Output
	FieldOutput = "output"
	FieldFormat = "format"
	FieldLayout = "layout"

	// Counts
	FieldCount    = "count"
	FieldSkipped  = "skipped"
	FieldDeclared = "declared"

	// Errors
	FieldError = "error"

	// Timing
	FieldDurationMS = "duration_ms"
)

// ComponentLogger returns a named child of parent for a specific component.
// A nil parent yields a no-op logger so constructors can accept nil.
//
// Example:
//
//	func New(cfg am.PackageConfig, l *zap.SugaredLogger) *Packager {
//	    return &Packager{cfg: cfg, logger: logger.ComponentLogger(l, "packager")}
//	}
func ComponentLogger(parent *zap.SugaredLogger, name string) *zap.SugaredLogger {
	return OrNop(parent).Named(name)
}
