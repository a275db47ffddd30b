package display

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/teranos/sdlppx/errors"
)

// ShouldOutputJSON determines if a command should output JSON based on its flags
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}

	// Check if --json flag was explicitly set on the command itself
	if cmd.Flags().Changed("json") {
		jsonFlag, _ := cmd.Flags().GetBool("json")
		return jsonFlag
	}

	// Check global --json flag
	jsonFlag, _ := cmd.Root().PersistentFlags().GetBool("json")
	return jsonFlag
}

// OutputJSONTo prints v as JSON on w, usually cmd.OutOrStdout()
func OutputJSONTo(w io.Writer, v interface{}) error {
	if err := WriteJSON(w, v); err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}
	return nil
}
