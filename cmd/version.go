package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-mods-go/version"
)

// NewVersionCommand creates a command printing the module version.
func NewVersionCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, version.Version())
			return err
		},
	}
}
