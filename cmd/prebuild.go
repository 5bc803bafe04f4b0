package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-mods-go/prebuild"
)

// NewPrebuildCommand creates a new prebuild command that uses the provided Prebuilder.
func NewPrebuildCommand(prebuilder Prebuilder) *cobra.Command {
	var opts prebuild.Options
	var platforms []string

	cmd := &cobra.Command{
		Use:   "prebuild",
		Short: "Apply config mods to the native projects",
		Long: `Prebuild loads mods.yaml (or mods.toml), registers the base mods of
every platform and evaluates the mod chains, writing the resulting native
project files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			var err error
			if opts.Platforms, err = parsePlatforms(platforms); err != nil {
				return err
			}

			if _, err := prebuilder.Prebuild(cmd.Context(), opts); err != nil {
				return fmt.Errorf("prebuild failed: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Prebuild completed successfully")
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectDir, "path", "p", ".", "Project directory")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Platforms to prebuild (ios, android)")
	cmd.Flags().BoolVar(&opts.AllowMissingProviders, "allow-missing-providers", false, "Skip mods without a base mod instead of failing")

	return cmd
}
