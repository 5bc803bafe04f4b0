package mods

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// NextMod continues a mod chain. It is handed to each action as an argument and
// is never stored on the document.
type NextMod = ModFunc

// ModAction is the body of a registered mod. It receives the rest of the chain as next.
type ModAction func(ctx context.Context, cfg *ExportedConfigWithProps, next NextMod) (*ExportedConfigWithProps, error)

// BaseModOptions configures a mod registration.
type BaseModOptions struct {
	Platform Platform
	Mod      string

	// Label names the registration in debug traces
	Label string

	// SkipEmptyMod skips the registration when nothing is registered for the mod yet
	SkipEmptyMod bool

	// SaveToInternal records the working state of the chain under Internal.ModResults
	SaveToInternal bool

	IsProvider      bool
	IsIntrospective bool

	Action ModAction
}

// WithBaseMod registers a mod that intercepts whatever is currently registered
// for the platform and mod name. The intercepted mod becomes the next argument
// of the action. The returned document is a copy; cfg is left untouched.
func WithBaseMod(cfg *ExportedConfig, opts BaseModOptions) (*ExportedConfig, error) {
	key := fmt.Sprintf("%s.%s", opts.Platform, opts.Mod)
	if opts.Action == nil {
		return nil, fmt.Errorf("mod %q has no action", key)
	}

	out := cfg.Clone()
	if out == nil {
		out = &ExportedConfig{}
	}
	if out.Mods == nil {
		out.Mods = make(ModConfig)
	}

	intercepted := out.Mods.Get(opts.Platform, opts.Mod)
	if intercepted == nil {
		if opts.SkipEmptyMod {
			return out, nil
		}
		intercepted = &Mod{Name: opts.Mod, Label: "noop", run: noopMod}
	}

	// Providers ignore incoming working state, so nothing may wrap one but another mod.
	if intercepted.IsProvider {
		if opts.IsProvider {
			return nil, fmt.Errorf("%w: cannot set provider mod for %q because another is already being used", ErrConflictingProvider, key)
		}
		return nil, fmt.Errorf("%w: cannot add mod to %q because the provider has already been added; the provider must be the last mod added", ErrInvalidModOrder, key)
	}

	next := intercepted.run
	action := opts.Action
	mod := &Mod{
		Name:            opts.Mod,
		Label:           opts.Label,
		IsProvider:      opts.IsProvider,
		IsIntrospective: opts.IsIntrospective,
	}
	mod.run = func(ctx context.Context, cfg *ExportedConfigWithProps) (*ExportedConfigWithProps, error) {
		log.FromContext(ctx).Debug("running mod", "mod", key, "label", mod.Label)

		results, err := action(ctx, cfg, next)
		if err != nil {
			return nil, err
		}
		if opts.SaveToInternal && results != nil {
			saved := *results
			saved.ExportedConfig = results.withModResult(opts.Platform, opts.Mod, results.ModResults)
			return &saved, nil
		}
		return results, nil
	}

	out.Mods.set(opts.Platform, mod)
	return out, nil
}

// WithMod registers a transformer for the working state of a mod. The action
// runs before the rest of the chain and its result is passed on to it.
func WithMod(cfg *ExportedConfig, platform Platform, mod string, action ModFunc) (*ExportedConfig, error) {
	if action == nil {
		return nil, errors.New("WithMod requires an action")
	}
	return WithBaseMod(cfg, BaseModOptions{
		Platform: platform,
		Mod:      mod,
		Label:    "withMod",
		Action: func(ctx context.Context, cfg *ExportedConfigWithProps, next NextMod) (*ExportedConfigWithProps, error) {
			results, err := action(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return next(ctx, results)
		},
	})
}

// WithDangerousMod registers a transformer that runs before any other mod of the platform.
// Dangerous mods have no file of their own and may change the native project directly.
func WithDangerousMod(cfg *ExportedConfig, platform Platform, action ModFunc) (*ExportedConfig, error) {
	return WithMod(cfg, platform, ModDangerous, action)
}

func noopMod(_ context.Context, cfg *ExportedConfigWithProps) (*ExportedConfigWithProps, error) {
	return cfg, nil
}
