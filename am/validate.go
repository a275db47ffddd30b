package am

import (
	"slices"
	"strings"

	"github.com/teranos/sdlppx/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.Glossary.OutputFormat) {
		return errors.NewUnsupportedf("glossary.output_format must be one of comma, semicolon, tab, glossary, got %q", c.Glossary.OutputFormat)
	}
	if !slices.Contains(SynonymLayouts, c.Glossary.SynonymLayout) {
		return errors.NewUnsupportedf("glossary.synonym_layout must be column or pipe, got %q", c.Glossary.SynonymLayout)
	}

	// Extensions are matched literally against file names
	for key, ext := range map[string]string{
		"package.project_extension": c.Package.ProjectExtension,
		"package.return_extension":  c.Package.ReturnExtension,
		"package.descriptor_suffix": c.Package.DescriptorSuffix,
	} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return errors.Newf("%s must start with a dot, got %q", key, ext)
		}
	}
	if c.Package.ProjectExtension == c.Package.ReturnExtension {
		return errors.Newf("package.return_extension must differ from package.project_extension (%q)", c.Package.ProjectExtension)
	}
	if c.Package.BackupSuffix == "" {
		return errors.New("package.backup_suffix cannot be empty")
	}

	for key, pattern := range map[string]string{
		"package.document_pattern":         c.Package.DocumentPattern,
		"glossary.store_pattern":           c.Glossary.StorePattern,
		"translation_memory.store_pattern": c.TranslationMemory.StorePattern,
	} {
		if pattern == "" {
			return errors.Newf("%s cannot be empty", key)
		}
	}

	// Depths: 0 would never match anything below the search root
	for key, depth := range map[string]int{
		"package.descriptor_depth":        c.Package.DescriptorDepth,
		"package.document_depth":          c.Package.DocumentDepth,
		"glossary.search_depth":           c.Glossary.SearchDepth,
		"translation_memory.search_depth": c.TranslationMemory.SearchDepth,
	} {
		if depth <= 0 {
			return errors.Newf("%s must be > 0, got %d", key, depth)
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	return nil
}
