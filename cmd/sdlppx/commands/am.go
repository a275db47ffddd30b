package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Show and validate sdlppx configuration",
	Long: `am - Show and validate sdlppx configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. --config file
3. Environment variables (SDLPPX_* prefix, e.g. SDLPPX_GLOSSARY_OUTPUT_FORMAT)
4. Project config (./sdlppx.toml, searched up the directory tree)
5. User config (~/.sdlppx/config.toml)
6. Default values

Examples:
  sdlppx am show                    # Show current configuration
  sdlppx am show --format json      # Show configuration as JSON
  sdlppx am get glossary.synonym_layout
  sdlppx am validate                # Validate current configuration`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective sdlppx configuration from all sources",
	RunE:  runAmShow,
}

var amGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., package.backup_suffix, glossary.search_depth)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAmGet,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the effective sdlppx configuration is usable for a conversion",
	RunE:  runAmValidate,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration files that are checked, in merge order,
and whether each one exists.`,
	RunE: runAmWhere,
}

var configFormat string

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amGetCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	data, err := am.Render(app.cfg, configFormat)
	if err != nil {
		return usageError(err)
	}

	if configFormat != "json" {
		fmt.Fprintln(cmd.OutOrStdout(), "# sdlppx configuration")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	if configFormat == "json" {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}

func runAmGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !app.v.IsSet(key) {
		return usageError(errors.Newf("configuration key %q not found", key))
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.v.Get(key))
	return nil
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	if err := app.cfg.Validate(); err != nil {
		return usageError(errors.Wrap(err, "configuration validation failed"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  [DEFAULT]  Built-in defaults")

	for _, path := range am.ConfigPaths() {
		status := "missing"
		if _, err := os.Stat(path); err == nil {
			status = "found"
		}
		fmt.Fprintf(out, "  [FILE]     %s (%s)\n", path, status)
	}
	if configFile != "" {
		fmt.Fprintf(out, "  [CONFIG]   %s\n", configFile)
	}
	fmt.Fprintln(out, "  [ENV]      SDLPPX_* environment variables")
	fmt.Fprintln(out, "  [FLAGS]    Command line flags")
	return nil
}
