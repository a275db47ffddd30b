package main

import (
	"fmt"
	"os"

	"github.com/teranos/sdlppx/cmd/sdlppx/commands"
	"github.com/teranos/sdlppx/errors"
)

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(commands.ExitCode(err))
	}
}
