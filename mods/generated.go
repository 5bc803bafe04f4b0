package mods

import "context"

// BaseModProvider is implemented by ProviderMethods of any working-state type.
type BaseModProvider interface {
	baseMod(platform Platform, modName string, introspective bool) *BaseMod
}

func (m ProviderMethods[T]) baseMod(platform Platform, modName string, introspective bool) *BaseMod {
	if introspective {
		m.Write = skipWrite
	}
	return CreatePlatformBaseMod(PlatformBaseModConfig[T]{
		Platform:        platform,
		ModName:         modName,
		IsIntrospective: introspective,
		ProviderMethods: m,
	})
}

func skipWrite(context.Context, string, *ExportedConfigWithProps, Props) error {
	return nil
}

// NamedProvider pairs a mod name with its provider methods.
// A nil Provider is skipped.
type NamedProvider struct {
	ModName  string
	Provider BaseModProvider
}

// GeneratedBaseModsOptions configures WithGeneratedBaseMods.
type GeneratedBaseModsOptions struct {
	Platform Platform

	// Providers are applied in order; later base mods see the document
	// produced by earlier ones.
	Providers []NamedProvider

	// Introspective marks every base mod introspective and turns its Write into a no-op.
	Introspective bool

	// Options are forwarded to every base mod.
	Options []Option
}

// WithGeneratedBaseMods creates a platform base mod for every provider and
// applies them to cfg one after another.
func WithGeneratedBaseMods(cfg *ExportedConfig, opts GeneratedBaseModsOptions) (*ExportedConfig, error) {
	for _, entry := range opts.Providers {
		if entry.Provider == nil {
			continue
		}
		baseMod := entry.Provider.baseMod(opts.Platform, entry.ModName, opts.Introspective)
		next, err := baseMod.Apply(cfg, opts.Options...)
		if err != nil {
			return nil, err
		}
		cfg = next
	}
	return cfg, nil
}
