package mods

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Props are the options a base mod resolves before registering. They are
// also passed to every provider method.
type Props struct {
	SkipEmptyMod   bool `json:"skipEmptyMod"`
	SaveToInternal bool `json:"saveToInternal"`
}

// Option configures Props.
type Option func(*Props)

// SkipEmptyMod sets whether the base mod is skipped when no mod is registered
// for its platform and name. Defaults to true.
func SkipEmptyMod(skip bool) Option {
	return func(p *Props) {
		p.SkipEmptyMod = skip
	}
}

// SaveToInternal sets whether the working state is also recorded under
// Internal.ModResults. Defaults to false.
func SaveToInternal(save bool) Option {
	return func(p *Props) {
		p.SaveToInternal = save
	}
}

// NewProps resolves opts over the defaults.
func NewProps(opts ...Option) Props {
	p := Props{
		SkipEmptyMod:   true,
		SaveToInternal: false,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

// ProviderMethods describes how to locate, read and write the file behind one mod.
// Implementations must return the same path for the same document.
type ProviderMethods[T any] struct {
	GetFilePath func(ctx context.Context, cfg *ExportedConfigWithProps, props Props) (string, error)
	Read        func(ctx context.Context, filePath string, cfg *ExportedConfigWithProps, props Props) (T, error)
	Write       func(ctx context.Context, filePath string, cfg *ExportedConfigWithProps, props Props) error
}

// Provider returns m unchanged. It exists so declaration sites get T inferred
// from the Read method.
func Provider[T any](m ProviderMethods[T]) ProviderMethods[T] {
	return m
}

func (m ProviderMethods[T]) validate() error {
	switch {
	case m.GetFilePath == nil:
		return fmt.Errorf("%w: GetFilePath is not set", ErrInvalidProvider)
	case m.Read == nil:
		return fmt.Errorf("%w: Read is not set", ErrInvalidProvider)
	case m.Write == nil:
		return fmt.Errorf("%w: Write is not set", ErrInvalidProvider)
	}
	return nil
}

// readModifyWrite locates and reads the file, runs the rest of the chain on it,
// then writes whatever the chain returned.
func (m ProviderMethods[T]) readModifyWrite(ctx context.Context, platform Platform, modName string, cfg *ExportedConfigWithProps, next NextMod, props Props) (*ExportedConfigWithProps, error) {
	filePath, err := m.GetFilePath(ctx, cfg, props)
	if err != nil {
		return nil, err
	}

	modResults, err := m.Read(ctx, filePath, cfg, props)
	if err != nil {
		return nil, err
	}

	returned, err := next(ctx, cfg.WithModResults(modResults))
	if err != nil {
		return nil, err
	}

	results, err := AssertModResults(returned, platform, modName)
	if err != nil {
		return nil, err
	}

	if err := m.Write(ctx, filePath, results, props); err != nil {
		return nil, err
	}
	return results, nil
}

// CreateBaseModConfig configures CreateBaseMod.
type CreateBaseModConfig[T any] struct {
	// MethodName names the base mod in errors and debug traces
	MethodName string

	Platform        Platform
	ModName         string
	IsIntrospective bool

	ProviderMethods[T]
}

// BaseMod is a provider stage ready to be applied to a document.
type BaseMod struct {
	// Name is the method name the stage reports in errors
	Name     string
	Platform Platform
	ModName  string

	apply func(cfg *ExportedConfig, props Props) (*ExportedConfig, error)
}

// Apply registers the base mod on cfg and returns the new document.
func (b *BaseMod) Apply(cfg *ExportedConfig, opts ...Option) (*ExportedConfig, error) {
	return b.apply(cfg, NewProps(opts...))
}

// CreateBaseMod wraps provider methods into a base mod. Every error that
// leaves the stage, including errors from deeper in the chain, is wrapped in
// a *StageError naming the platform, mod and method.
func CreateBaseMod[T any](c CreateBaseModConfig[T]) *BaseMod {
	methods := c.ProviderMethods
	b := &BaseMod{
		Name:     c.MethodName,
		Platform: c.Platform,
		ModName:  c.ModName,
	}
	b.apply = func(cfg *ExportedConfig, props Props) (*ExportedConfig, error) {
		if err := methods.validate(); err != nil {
			return nil, b.stageError(err)
		}
		return WithBaseMod(cfg, BaseModOptions{
			Platform:        c.Platform,
			Mod:             c.ModName,
			Label:           c.MethodName,
			SkipEmptyMod:    props.SkipEmptyMod,
			SaveToInternal:  props.SaveToInternal,
			IsProvider:      true,
			IsIntrospective: c.IsIntrospective,
			Action: func(ctx context.Context, cfg *ExportedConfigWithProps, next NextMod) (*ExportedConfigWithProps, error) {
				results, err := methods.readModifyWrite(ctx, c.Platform, c.ModName, cfg, next, props)
				if err != nil {
					return nil, b.stageError(err)
				}
				return results, nil
			},
		})
	}
	return b
}

func (b *BaseMod) stageError(err error) error {
	return &StageError{
		Platform: b.Platform,
		ModName:  b.ModName,
		Method:   b.Name,
		Err:      err,
	}
}

// PlatformBaseModConfig configures CreatePlatformBaseMod.
type PlatformBaseModConfig[T any] struct {
	Platform        Platform
	ModName         string
	IsIntrospective bool

	ProviderMethods[T]
}

// CreatePlatformBaseMod is CreateBaseMod with the method name derived by BaseModName.
func CreatePlatformBaseMod[T any](c PlatformBaseModConfig[T]) *BaseMod {
	return CreateBaseMod(CreateBaseModConfig[T]{
		MethodName:      BaseModName(c.Platform, c.ModName),
		Platform:        c.Platform,
		ModName:         c.ModName,
		IsIntrospective: c.IsIntrospective,
		ProviderMethods: c.ProviderMethods,
	})
}

// BaseModName returns the method name of the base mod for platform and mod name,
// e.g. "withIosPodfilePropertiesBaseMod".
func BaseModName(platform Platform, modName string) string {
	return "with" + upperFirst(string(platform)) + upperFirst(modName) + "BaseMod"
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
