package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/sdlppx/convert"
	"github.com/teranos/sdlppx/display"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/ixgest/types"
)

// ReturnCmd turns a project package into a return package
var ReturnCmd = &cobra.Command{
	Use:   "return <archive> <target-dir>",
	Short: "Turn a project package into a return package",
	Long: `Replace the target-language documents of a project package with the
translated files found in <target-dir>, mark the descriptor as a return
package and rename the archive to the return extension.

A backup of the original archive is written next to it first.

Examples:
  sdlppx return Job.sdlppx ./translated
  sdlppx return Job.sdlppx ./translated --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, func(r *convert.Runner) *types.RunResult {
			return r.Return(args[0], args[1])
		})
	},
}

// ExtractCmd copies documents, translation memories and termbases out of a package
var ExtractCmd = &cobra.Command{
	Use:   "extract <archive> <output-dir>",
	Short: "Copy documents, TMs and termbases out of a package",
	Long: `Copy the bilingual documents of the target language into
<output-dir>/<language>, export every embedded translation memory to TMX and
every embedded termbase to the configured glossary format.

Each step runs on its own: a failing translation memory does not stop the
termbase export.

Examples:
  sdlppx extract Job.sdlrpx ./out
  sdlppx extract Job.sdlrpx ./out --output-format tab --synonym-layout pipe
  sdlppx extract Job.sdlrpx ./out --skip-source-documents`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, func(r *convert.Runner) *types.RunResult {
			return r.Extract(args[0], args[1])
		})
	},
}

// RunCmd returns a package and extracts from the result
var RunCmd = &cobra.Command{
	Use:   "run <archive> <target-dir> <output-dir>",
	Short: "return, then extract from the renamed package",
	Long: `Run return followed by extract. Extraction reads the renamed return
package, or the original archive when the package step did not rename it.

Examples:
  sdlppx run Job.sdlppx ./translated ./out
  sdlppx run Job.sdlppx ./translated ./out --skip-glossary -v`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, func(r *convert.Runner) *types.RunResult {
			return r.Run(args[0], args[1], args[2])
		})
	},
}

func runConversion(cmd *cobra.Command, fn func(r *convert.Runner) *types.RunResult) error {
	cfg, err := validConfig()
	if err != nil {
		return err
	}

	result := fn(convert.New(cfg, app.log))

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSONTo(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		printRun(result)
	}

	if code := result.ExitCode(); code != types.ExitOK {
		return &exitError{code: code, err: firstFailure(result)}
	}
	return nil
}

func firstFailure(result *types.RunResult) error {
	for _, s := range result.Steps {
		if s.Failed() {
			return errors.Newf("%s step failed: %s", s.Name, s.Error)
		}
	}
	return errors.New("conversion failed")
}
