package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates a new root command for a mods CLI.
func NewRootCommand(name, description string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: description,
		Long: description + `

This CLI evaluates config mods against the native iOS and Android projects
of an app, or introspects what they would produce without writing files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags available to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	return cmd
}
