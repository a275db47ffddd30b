// Package types holds the result records reported by the conversion steps.
// Every record is JSON-taggable so commands can print it with --json.
package types

import "time"

// Step names, in the order the runner executes them
const (
	StepPackage           = "package"
	StepSourceDocuments   = "source-documents"
	StepTranslationMemory = "translation-memory"
	StepGlossary          = "glossary"
)

// Step statuses
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Exit codes. A run reports the code of its first failed step.
const (
	ExitOK                = 0
	ExitUsage             = 1
	ExitPackage           = 2
	ExitSourceDocuments   = 3
	ExitTranslationMemory = 4
	ExitGlossary          = 5
)

// PackageResult represents the result of a package transformation
type PackageResult struct {
	ArchivePath    string    `json:"archive_path"`
	BackupPath     string    `json:"backup_path"`
	Descriptor     string    `json:"descriptor,omitempty"`
	TargetLanguage string    `json:"target_language,omitempty"`
	PackageType    string    `json:"package_type,omitempty"`
	Updated        bool      `json:"updated"`
	NewPath        string    `json:"new_path"`
	Replaced       []string  `json:"replaced,omitempty"`
	Missing        []string  `json:"missing,omitempty"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// GlossaryResult represents the result of one termbase export
type GlossaryResult struct {
	SourceFile string    `json:"source_file"`
	OutputFile string    `json:"output_file"`
	Format     string    `json:"format"`
	Layout     string    `json:"layout"`
	Languages  []string  `json:"languages"`
	MetaKeys   []string  `json:"meta_keys,omitempty"`
	Concepts   int       `json:"concepts"`
	Skipped    int       `json:"skipped"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// TMResult represents the result of one translation memory export
type TMResult struct {
	SourceFile     string    `json:"source_file"`
	OutputFile     string    `json:"output_file"`
	Name           string    `json:"name"`
	SourceLanguage string    `json:"source_language"`
	DeclaredUnits  int       `json:"declared_units"`
	ExportedUnits  int       `json:"exported_units"`
	SkippedUnits   int       `json:"skipped_units"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// SourceDocumentsResult represents the bilingual files copied out of a package
type SourceDocumentsResult struct {
	TargetLanguage string   `json:"target_language"`
	OutputDir      string   `json:"output_dir"`
	Files          []string `json:"files"`
}

// StepResult records the outcome of one isolated step
type StepResult struct {
	Name     string        `json:"name"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	Hint     string        `json:"hint,omitempty"`
	Detail   interface{}   `json:"detail,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// Failed reports whether the step ran and failed
func (s StepResult) Failed() bool {
	return s.Status == StatusFailed
}

// RunResult represents one invocation of the runner
type RunResult struct {
	ArchivePath string       `json:"archive_path"`
	FinalPath   string       `json:"final_path,omitempty"`
	Steps       []StepResult `json:"steps"`
	Success     bool         `json:"success"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
}

// Step returns the named step, if it was recorded
func (r *RunResult) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// ExitCode maps the first failed step to its process exit status
func (r *RunResult) ExitCode() int {
	for _, s := range r.Steps {
		if s.Failed() {
			return StepExitCode(s.Name)
		}
	}
	return ExitOK
}

// StepExitCode returns the exit status reported when the named step fails
func StepExitCode(name string) int {
	switch name {
	case StepPackage:
		return ExitPackage
	case StepSourceDocuments:
		return ExitSourceDocuments
	case StepTranslationMemory:
		return ExitTranslationMemory
	case StepGlossary:
		return ExitGlossary
	default:
		return ExitUsage
	}
}
