// Package am holds the sdlppx configuration ("I am").
//
// A Config is loaded once per process by the CLI and passed explicitly to each
// component constructor; nothing in this package caches it.
package am

// Config represents the sdlppx configuration
type Config struct {
	Package           PackageConfig           `mapstructure:"package" toml:"package" json:"package" yaml:"package"`
	Glossary          GlossaryConfig          `mapstructure:"glossary" toml:"glossary" json:"glossary" yaml:"glossary"`
	TranslationMemory TranslationMemoryConfig `mapstructure:"translation_memory" toml:"translation_memory" json:"translation_memory" yaml:"translation_memory"`
	SourceDocuments   SourceDocumentsConfig   `mapstructure:"source_documents" toml:"source_documents" json:"source_documents" yaml:"source_documents"`
	Log               LogConfig               `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// PackageConfig configures the project package transformer
type PackageConfig struct {
	ProjectExtension string `mapstructure:"project_extension" toml:"project_extension" json:"project_extension" yaml:"project_extension"` // e.g. ".sdlppx"
	ReturnExtension  string `mapstructure:"return_extension" toml:"return_extension" json:"return_extension" yaml:"return_extension"`     // e.g. ".sdlrpx"
	BackupSuffix     string `mapstructure:"backup_suffix" toml:"backup_suffix" json:"backup_suffix" yaml:"backup_suffix"`                 // appended to the archive name
	DescriptorSuffix string `mapstructure:"descriptor_suffix" toml:"descriptor_suffix" json:"descriptor_suffix" yaml:"descriptor_suffix"` // e.g. ".sdlproj"
	DescriptorDepth  int    `mapstructure:"descriptor_depth" toml:"descriptor_depth" json:"descriptor_depth" yaml:"descriptor_depth"`     // 1 = archive root only
	DocumentPattern  string `mapstructure:"document_pattern" toml:"document_pattern" json:"document_pattern" yaml:"document_pattern"`     // glob on the entry base name
	DocumentDepth    int    `mapstructure:"document_depth" toml:"document_depth" json:"document_depth" yaml:"document_depth"`             // below the target-language folder
}

// GlossaryConfig configures the termbase export
type GlossaryConfig struct {
	Skip          bool          `mapstructure:"skip" toml:"skip" json:"skip" yaml:"skip"`
	OutputFormat  OutputFormat  `mapstructure:"output_format" toml:"output_format" json:"output_format" yaml:"output_format"`
	SynonymLayout SynonymLayout `mapstructure:"synonym_layout" toml:"synonym_layout" json:"synonym_layout" yaml:"synonym_layout"`
	StorePattern  string        `mapstructure:"store_pattern" toml:"store_pattern" json:"store_pattern" yaml:"store_pattern"`
	SearchDepth   int           `mapstructure:"search_depth" toml:"search_depth" json:"search_depth" yaml:"search_depth"`
}

// TranslationMemoryConfig configures the translation memory export
type TranslationMemoryConfig struct {
	Skip         bool   `mapstructure:"skip" toml:"skip" json:"skip" yaml:"skip"`
	StorePattern string `mapstructure:"store_pattern" toml:"store_pattern" json:"store_pattern" yaml:"store_pattern"`
	SearchDepth  int    `mapstructure:"search_depth" toml:"search_depth" json:"search_depth" yaml:"search_depth"`
}

// SourceDocumentsConfig configures extraction of bilingual documents
type SourceDocumentsConfig struct {
	Skip bool `mapstructure:"skip" toml:"skip" json:"skip" yaml:"skip"`
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"`
	Color     bool `mapstructure:"color" toml:"color" json:"color" yaml:"color"`
}

// OutputFormat selects the termbase export dialect
type OutputFormat string

const (
	FormatComma     OutputFormat = "comma"     // quoted CSV, ","
	FormatSemicolon OutputFormat = "semicolon" // quoted CSV, ";"
	FormatTab       OutputFormat = "tab"       // raw tab-delimited text
	FormatGlossary  OutputFormat = "glossary"  // OmegaT glossary
)

// OutputFormats lists every supported OutputFormat
var OutputFormats = []OutputFormat{FormatComma, FormatSemicolon, FormatTab, FormatGlossary}

// SynonymLayout selects how synonyms of one language are laid out
type SynonymLayout string

const (
	LayoutColumn SynonymLayout = "column" // one column set per synonym slot
	LayoutPipe   SynonymLayout = "pipe"   // one pipe-joined column per language
)

// SynonymLayouts lists every supported SynonymLayout
var SynonymLayouts = []SynonymLayout{LayoutColumn, LayoutPipe}

// Configuration keys bound to CLI flags
const (
	KeySkipGlossary          = "glossary.skip"
	KeySkipTranslationMemory = "translation_memory.skip"
	KeySkipSourceDocuments   = "source_documents.skip"
	KeySynonymLayout         = "glossary.synonym_layout"
	KeyOutputFormat          = "glossary.output_format"
	KeyLogJSON               = "log.json"
	KeyLogVerbosity          = "log.verbosity"
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
