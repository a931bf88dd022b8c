package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NoArgs rejects positional arguments. On a command with subcommands the
// stray word is most likely a mistyped subcommand, so those are listed.
func NoArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}

	if cmd.HasAvailableSubCommands() {
		names := []string{}
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				names = append(names, c.Name())
			}
		}

		return fmt.Errorf("unknown command %q for %q, available: %s",
			args[0], cmd.CommandPath(), strings.Join(names, ", "))
	}

	return fmt.Errorf("%q takes no arguments, got %q\nRun '%s --help' for usage",
		cmd.CommandPath(), strings.Join(args, " "), cmd.CommandPath())
}
