package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Package transformer defaults (SDL Trados Studio conventions)
	v.SetDefault("package.project_extension", ".sdlppx")
	v.SetDefault("package.return_extension", ".sdlrpx")
	v.SetDefault("package.backup_suffix", ".bak")
	v.SetDefault("package.descriptor_suffix", ".sdlproj")
	v.SetDefault("package.descriptor_depth", 1)
	v.SetDefault("package.document_pattern", "*.sdlxliff")
	v.SetDefault("package.document_depth", 1)

	// Termbase export defaults
	v.SetDefault(KeySkipGlossary, false)
	v.SetDefault(KeyOutputFormat, string(FormatGlossary))
	v.SetDefault(KeySynonymLayout, string(LayoutColumn))
	v.SetDefault("glossary.store_pattern", "*.sdltb")
	v.SetDefault("glossary.search_depth", 3)

	// Translation memory export defaults
	v.SetDefault(KeySkipTranslationMemory, false)
	v.SetDefault("translation_memory.store_pattern", "*.sdltm")
	v.SetDefault("translation_memory.search_depth", 3)

	v.SetDefault(KeySkipSourceDocuments, false)

	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyLogVerbosity, 0)
	v.SetDefault("log.color", true)
}

// Default returns the configuration with every default applied
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults are static and always decode
		panic(err)
	}
	return cfg
}
