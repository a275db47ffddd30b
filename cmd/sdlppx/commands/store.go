package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/sdlppx/display"
	"github.com/teranos/sdlppx/internal/util"
	"github.com/teranos/sdlppx/ixgest/sdltb"
	"github.com/teranos/sdlppx/ixgest/sdltm"
	"github.com/teranos/sdlppx/ixgest/types"
)

// TbCmd exports a termbase store that is not inside a package
var TbCmd = &cobra.Command{
	Use:   "tb <store> <output-dir>",
	Short: "Export a termbase store",
	Long: `Export a termbase store in the mtConcepts layout to the configured
format. The output file is named <prefix>_glossary_<languages><ext>; the
prefix defaults to the store path without its extension.

Termbases saved in the Microsoft Access format must be converted to SQLite
before they can be read.

Examples:
  sdlppx tb terms.sdltb ./out
  sdlppx tb terms.sdltb ./out --output-format semicolon --prefix Job`,
	Args: cobra.ExactArgs(2),
	RunE: runTb,
}

// TmCmd exports a translation memory store that is not inside a package
var TmCmd = &cobra.Command{
	Use:   "tm <store> <output-dir>",
	Short: "Export a translation memory store",
	Long: `Export a translation memory store to TMX 1.1. The output file is named
after the memory recorded in the store.

Examples:
  sdlppx tm main.sdltm ./out
  sdlppx tm main.sdltm ./out --json`,
	Args: cobra.ExactArgs(2),
	RunE: runTm,
}

var tbPrefix string

func init() {
	TbCmd.Flags().StringVar(&tbPrefix, "prefix", "", "Output file name prefix (default: store path without extension)")
}

func runTb(cmd *cobra.Command, args []string) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}

	prefix := tbPrefix
	if prefix == "" {
		prefix = util.TrimExt(args[0])
	}

	result, err := sdltb.New(cfg.Glossary, app.log).Extract(args[0], args[1], prefix)
	if err != nil {
		return &exitError{code: types.ExitGlossary, err: err}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSONTo(cmd.OutOrStdout(), result)
	}
	printGlossaries([]*types.GlossaryResult{result})
	pterm.Success.Printfln("Termbase exported to %s", result.OutputFile)
	return nil
}

func runTm(cmd *cobra.Command, args []string) error {
	if _, err := validConfig(); err != nil {
		return err
	}

	result, err := sdltm.New(app.log).Extract(args[0], args[1])
	if err != nil {
		return &exitError{code: types.ExitTranslationMemory, err: err}
	}

	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSONTo(cmd.OutOrStdout(), result)
	}
	printMemories([]*types.TMResult{result})
	pterm.Success.Printfln("Translation memory exported to %s", result.OutputFile)
	return nil
}
