// Package cmd provides the cobra commands of the mods CLI.
//
// Commands depend on small interfaces so the binary can wire in a
// prebuild.Runner and tests can substitute fakes.
package cmd

import (
	"context"

	"github.com/lex00/wetwire-mods-go/config"
	"github.com/lex00/wetwire-mods-go/mods"
	"github.com/lex00/wetwire-mods-go/prebuild"
)

// Prebuilder evaluates every mod of a project and writes the native files.
type Prebuilder interface {
	Prebuild(ctx context.Context, opts prebuild.Options) (*mods.ExportedConfig, error)
}

// Introspector evaluates the introspectable mods of a project without writing.
type Introspector interface {
	Introspect(ctx context.Context, opts prebuild.Options) (*mods.ExportedConfig, error)
}

// parsePlatforms validates platform flag values.
func parsePlatforms(names []string) ([]mods.Platform, error) {
	return (&config.Config{Platforms: names}).ModPlatforms()
}
