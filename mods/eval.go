package mods

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
)

// EvalOptions configures EvalMods.
type EvalOptions struct {
	// ProjectRoot is the directory holding the native projects. It defaults to
	// Internal.ProjectRoot of the evaluated document.
	ProjectRoot string

	// Platforms limits evaluation to the listed platforms (all when empty)
	Platforms []Platform

	// Introspect is passed to every mod through its ModRequest
	Introspect bool

	// AllowMissingProviders logs and skips chains whose outermost mod is not a
	// provider instead of failing
	AllowMissingProviders bool
}

// EvalMods runs every registered mod chain and returns the resulting document.
// Platforms run in sorted order. Within a platform the dangerous mod runs first
// and the rest follow in registration order, each one receiving the document
// returned by the previous one.
func EvalMods(ctx context.Context, cfg *ExportedConfig, opts EvalOptions) (*ExportedConfig, error) {
	if cfg == nil {
		return nil, errors.New("cannot evaluate mods of a nil config")
	}
	logger := log.FromContext(ctx)

	projectRoot := opts.ProjectRoot
	if projectRoot == "" && cfg.Internal != nil {
		projectRoot = cfg.Internal.ProjectRoot
	}
	platformRoot := func(p Platform) string {
		if projectRoot == "" {
			return ""
		}
		return filepath.Join(projectRoot, string(p))
	}

	current := cfg.Clone()
	modConfig := cfg.Mods
	for _, platform := range modConfig.Platforms() {
		if len(opts.Platforms) > 0 && !slices.Contains(opts.Platforms, platform) {
			logger.Debug("skipping platform", "platform", platform)
			continue
		}

		for _, mod := range modConfig[platform].evalOrder() {
			key := fmt.Sprintf("%s.%s", platform, mod.Name)
			if !mod.IsProvider {
				if !opts.AllowMissingProviders {
					return nil, fmt.Errorf("%w: initial base modifier for %q is not a provider and therefore will not provide modResults to child mods", ErrMissingProvider, key)
				}
				logger.Warn("skipping mod without provider", "mod", key)
				continue
			}

			in := &ExportedConfigWithProps{
				ExportedConfig: *current,
				ModRequest: ModRequest{
					Platform:            platform,
					ModName:             mod.Name,
					ProjectRoot:         projectRoot,
					PlatformProjectRoot: platformRoot(platform),
					Introspect:          opts.Introspect,
				},
			}
			out, err := mod.Run(ctx, in)
			if err != nil {
				return nil, err
			}

			results, err := AssertModResults(out, platform, mod.Name)
			if err != nil {
				return nil, err
			}
			next := results.ExportedConfig
			current = &next
		}
	}
	return current, nil
}
