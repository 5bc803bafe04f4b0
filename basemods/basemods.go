// Package basemods provides the base mods that read and write the native
// project files of each platform, and Compile, which registers them and runs
// the pipeline.
package basemods

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"

	"github.com/lex00/wetwire-mods-go/mods"
)

// platformProjectRoot returns the native project directory for cfg.
func platformProjectRoot(cfg *mods.ExportedConfigWithProps, platform mods.Platform) string {
	if cfg.ModRequest.PlatformProjectRoot != "" {
		return cfg.ModRequest.PlatformProjectRoot
	}
	root := cfg.ModRequest.ProjectRoot
	if root == "" && cfg.Internal != nil {
		root = cfg.Internal.ProjectRoot
	}
	return filepath.Join(root, string(platform))
}

// dangerousProvider backs the dangerous mod. It has no file; dangerous mods
// change the native project themselves.
func dangerousProvider() mods.ProviderMethods[any] {
	return mods.Provider(mods.ProviderMethods[any]{
		GetFilePath: func(context.Context, *mods.ExportedConfigWithProps, mods.Props) (string, error) {
			return "", nil
		},
		Read: func(context.Context, string, *mods.ExportedConfigWithProps, mods.Props) (any, error) {
			return nil, nil
		},
		Write: func(context.Context, string, *mods.ExportedConfigWithProps, mods.Props) error {
			return nil
		},
	})
}

// providerSet lists the providers of a platform and which of them support introspection.
type providerSet struct {
	providers     []mods.NamedProvider
	introspective map[string]bool
}

func (s providerSet) introspectable() []mods.NamedProvider {
	var out []mods.NamedProvider
	for _, p := range s.providers {
		if s.introspective[p.ModName] {
			out = append(out, p)
		}
	}
	return out
}

// WithDefaultBaseMods registers the base mods of every platform.
func WithDefaultBaseMods(cfg *mods.ExportedConfig, fsys afero.Fs, opts ...mods.Option) (*mods.ExportedConfig, error) {
	cfg, err := WithIOSBaseMods(cfg, fsys, opts...)
	if err != nil {
		return nil, err
	}
	return WithAndroidBaseMods(cfg, fsys, opts...)
}

// WithIntrospectionBaseMods registers the introspectable base mods of every
// platform so the pipeline can run without writing anything. Each base mod
// records its result under Internal.ModResults. Mods that cannot be
// introspected, such as dangerous mods, are removed.
func WithIntrospectionBaseMods(cfg *mods.ExportedConfig, fsys afero.Fs, opts ...mods.Option) (*mods.ExportedConfig, error) {
	opts = append(slices.Clone(opts), mods.SaveToInternal(true), mods.SkipEmptyMod(false))

	sets := map[mods.Platform]providerSet{
		mods.PlatformIOS:     iosProviders(fsys),
		mods.PlatformAndroid: androidProviders(fsys),
	}
	for _, platform := range []mods.Platform{mods.PlatformIOS, mods.PlatformAndroid} {
		var err error
		cfg, err = mods.WithGeneratedBaseMods(cfg, mods.GeneratedBaseModsOptions{
			Platform:      platform,
			Providers:     sets[platform].introspectable(),
			Introspective: true,
			Options:       opts,
		})
		if err != nil {
			return nil, err
		}
	}

	out := cfg.Clone()
	out.Mods = out.Mods.Filter(func(_ mods.Platform, m *mods.Mod) bool {
		return m.IsIntrospective
	})
	return out, nil
}

// CompileOptions configures Compile.
type CompileOptions struct {
	Fs          afero.Fs
	ProjectRoot string
	Platforms   []mods.Platform

	// Introspect runs the pipeline without writing files
	Introspect bool

	AllowMissingProviders bool

	// Options are forwarded to every base mod.
	Options []mods.Option
}

// Compile registers the base mods and evaluates every mod of cfg.
func Compile(ctx context.Context, cfg *mods.ExportedConfig, opts CompileOptions) (*mods.ExportedConfig, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	var err error
	if opts.Introspect {
		cfg, err = WithIntrospectionBaseMods(cfg, fsys, opts.Options...)
	} else {
		cfg, err = WithDefaultBaseMods(cfg, fsys, opts.Options...)
	}
	if err != nil {
		return nil, err
	}

	return mods.EvalMods(ctx, cfg, mods.EvalOptions{
		ProjectRoot:           opts.ProjectRoot,
		Platforms:             opts.Platforms,
		Introspect:            opts.Introspect,
		AllowMissingProviders: opts.AllowMissingProviders,
	})
}
