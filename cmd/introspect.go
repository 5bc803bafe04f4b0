package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/wetwire-mods-go/mods"
	"github.com/lex00/wetwire-mods-go/prebuild"
	"github.com/lex00/wetwire-mods-go/serialize"
)

// introspection is the rendered result of the introspect command.
type introspection struct {
	Name       string                           `json:"name,omitempty" yaml:"name,omitempty"`
	ModResults map[mods.Platform]map[string]any `json:"modResults" yaml:"modResults"`
}

// NewIntrospectCommand creates a new introspect command that uses the provided Introspector.
func NewIntrospectCommand(introspector Introspector) *cobra.Command {
	var opts prebuild.Options
	var platforms []string
	var format string

	cmd := &cobra.Command{
		Use:   "introspect",
		Short: "Show what the config mods would produce",
		Long: `Introspect evaluates the mods that support introspection without writing
any file and prints the resulting state of every native file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			f, err := serialize.ParseFormat(format)
			if err != nil {
				return err
			}
			if opts.Platforms, err = parsePlatforms(platforms); err != nil {
				return err
			}

			out, err := introspector.Introspect(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("introspect failed: %w", err)
			}

			view := introspection{ModResults: map[mods.Platform]map[string]any{}}
			if out != nil {
				view.Name = out.Name
				if out.Internal != nil && out.Internal.ModResults != nil {
					view.ModResults = out.Internal.ModResults
				}
			}

			data, err := serialize.Marshal(view, f, serialize.Pretty)
			if err != nil {
				return fmt.Errorf("failed to render introspection: %w", err)
			}
			_, _ = cmd.OutOrStdout().Write(data)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectDir, "path", "p", ".", "Project directory")
	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "Platforms to introspect (ios, android)")
	cmd.Flags().StringVarP(&format, "format", "f", string(serialize.FormatYAML), "Output format (yaml, json)")

	return cmd
}
