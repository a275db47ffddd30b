package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/ixgest/types"
	"github.com/teranos/sdlppx/logger"
)

// RootCmd is the sdlppx entry point
var RootCmd = &cobra.Command{
	Use:   "sdlppx",
	Short: "sdlppx - SDL Trados project package converter",
	Long: `sdlppx - Convert SDL Trados project packages and their embedded resources.

A project package (.sdlppx) is turned into a return package (.sdlrpx) holding
the translated bilingual documents. Translation memories embedded in a package
are exported to TMX 1.1, termbases to CSV, tab-delimited text or an OmegaT
glossary.

Available commands:
  return   - Turn a project package into a return package
  extract  - Copy documents, TMs and termbases out of a package
  run      - return, then extract from the renamed package
  tb       - Export a termbase store
  tm       - Export a translation memory store
  am       - Show and validate configuration ("I am")
  version  - Show version information

Exit codes:
  0 success, 1 usage or configuration, 2 package, 3 source documents,
  4 translation memory, 5 glossary

Examples:
  sdlppx return Job.sdlppx ./translated
  sdlppx extract Job.sdlrpx ./out --output-format comma
  sdlppx run Job.sdlppx ./translated ./out --skip-glossary
  sdlppx tm main.sdltm ./out --json`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup(app.log)
	},
}

// app is the process state built once by setup
var app struct {
	v   *viper.Viper
	cfg *am.Config
	log *zap.SugaredLogger
}

var configFile string

// flagKeys maps persistent flag names to the configuration keys they override
var flagKeys = map[string]string{
	"skip-glossary":           am.KeySkipGlossary,
	"skip-translation-memory": am.KeySkipTranslationMemory,
	"skip-source-documents":   am.KeySkipSourceDocuments,
	"synonym-layout":          am.KeySynonymLayout,
	"output-format":           am.KeyOutputFormat,
	"json":                    am.KeyLogJSON,
	"verbose":                 am.KeyLogVerbosity,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	flags.Bool("json", false, "Output results as JSON")
	flags.StringVar(&configFile, "config", "", "Read configuration from this TOML file as well")
	flags.Bool("skip-glossary", false, "Do not export termbases")
	flags.Bool("skip-translation-memory", false, "Do not export translation memories")
	flags.Bool("skip-source-documents", false, "Do not copy bilingual documents out of the package")
	flags.String("synonym-layout", string(am.LayoutColumn), "Synonym layout: column, pipe")
	flags.String("output-format", string(am.FormatGlossary), "Termbase format: comma, semicolon, tab, glossary")

	RootCmd.AddCommand(ReturnCmd)
	RootCmd.AddCommand(ExtractCmd)
	RootCmd.AddCommand(RunCmd)
	RootCmd.AddCommand(TbCmd)
	RootCmd.AddCommand(TmCmd)
	RootCmd.AddCommand(AmCmd)
	RootCmd.AddCommand(VersionCmd)
}

// setup loads configuration and builds the process logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	v := am.NewViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.MergeInConfig(); err != nil {
			return usageError(errors.Wrapf(err, "failed to read config file %s", configFile))
		}
	}

	flags := cmd.Root().PersistentFlags()
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return usageError(errors.Wrapf(err, "failed to bind --%s", name))
		}
	}

	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return usageError(err)
	}

	log, err := logger.New(logger.Options{
		JSON:      cfg.Log.JSON,
		Verbosity: cfg.Log.Verbosity,
		Color:     cfg.Log.Color,
	})
	if err != nil {
		return usageError(errors.Wrap(err, "failed to initialize logger"))
	}

	log.Debugw("Configuration loaded",
		"verbosity", logger.LevelName(cfg.Log.Verbosity),
		"config_file", configFile)

	app.v = v
	app.cfg = cfg
	app.log = log
	return nil
}

// validConfig returns the loaded configuration, refusing to convert with an invalid one
func validConfig() (*am.Config, error) {
	if err := app.cfg.Validate(); err != nil {
		return nil, usageError(errors.Wrap(err, "invalid configuration"))
	}
	return app.cfg, nil
}

// exitError carries the process exit status for a failed command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: types.ExitUsage, err: err}
}

// ExitCode returns the process exit status for an error returned by RootCmd.
// Errors raised by cobra itself (unknown flags, wrong argument counts) are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return types.ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return types.ExitUsage
}
