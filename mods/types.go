package mods

import (
	"context"
	"maps"
	"reflect"
	"slices"
)

// Platform identifies the native project a mod targets.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// ModDangerous is the mod that runs before every other mod of a platform.
const ModDangerous = "dangerous"

// ModFunc runs a mod chain and returns the updated document.
type ModFunc func(ctx context.Context, cfg *ExportedConfigWithProps) (*ExportedConfigWithProps, error)

// Mod is a registered link of a mod chain.
type Mod struct {
	// Name is the mod name within its platform (e.g., "podfileProperties")
	Name string `json:"name"`

	// Label identifies the registration in debug traces (e.g., "withIosPodfilePropertiesBaseMod")
	Label string `json:"label,omitempty"`

	// IsProvider is set on base mods that produce the working state of the chain
	IsProvider bool `json:"isProvider,omitempty"`

	// IsIntrospective marks mods kept when the document is introspected
	IsIntrospective bool `json:"isIntrospective,omitempty"`

	run ModFunc
}

// Run invokes the chain starting at this mod.
func (m *Mod) Run(ctx context.Context, cfg *ExportedConfigWithProps) (*ExportedConfigWithProps, error) {
	if m == nil || m.run == nil {
		return nil, ErrUnregisteredMod
	}
	return m.run(ctx, cfg)
}

// PlatformMods holds the mods of one platform in registration order.
type PlatformMods []*Mod

// Get returns the mod with the given name, or nil if not found.
func (p PlatformMods) Get(name string) *Mod {
	for _, m := range p {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Names returns the mod names in registration order.
func (p PlatformMods) Names() []string {
	names := make([]string, 0, len(p))
	for _, m := range p {
		names = append(names, m.Name)
	}
	return names
}

// evalOrder returns the mods with the dangerous mod moved first.
func (p PlatformMods) evalOrder() PlatformMods {
	ordered := slices.Clone(p)
	slices.SortStableFunc(ordered, func(a, b *Mod) int {
		switch {
		case a.Name == ModDangerous && b.Name != ModDangerous:
			return -1
		case b.Name == ModDangerous && a.Name != ModDangerous:
			return 1
		}
		return 0
	})
	return ordered
}

// ModConfig maps each platform to its registered mods.
type ModConfig map[Platform]PlatformMods

// Get returns the mod registered for platform and name, or nil.
func (c ModConfig) Get(platform Platform, name string) *Mod {
	if c == nil {
		return nil
	}
	return c[platform].Get(name)
}

// Platforms returns the platforms with registered mods in sorted order.
func (c ModConfig) Platforms() []Platform {
	platforms := slices.Collect(maps.Keys(c))
	slices.Sort(platforms)
	return platforms
}

// Filter returns a copy holding only the mods keep accepts.
func (c ModConfig) Filter(keep func(Platform, *Mod) bool) ModConfig {
	out := make(ModConfig, len(c))
	for platform, mods := range c {
		kept := make(PlatformMods, 0, len(mods))
		for _, m := range mods {
			if keep(platform, m) {
				kept = append(kept, m)
			}
		}
		out[platform] = kept
	}
	return out
}

func (c ModConfig) clone() ModConfig {
	if c == nil {
		return nil
	}
	out := make(ModConfig, len(c))
	for platform, mods := range c {
		out[platform] = slices.Clone(mods)
	}
	return out
}

// set replaces the mod with the same name in place or appends it.
// The receiver must be a clone owned by the caller.
func (c ModConfig) set(platform Platform, mod *Mod) {
	mods := c[platform]
	for i, m := range mods {
		if m.Name == mod.Name {
			mods[i] = mod
			return
		}
	}
	c[platform] = append(mods, mod)
}

// Internal holds values the pipeline records for itself.
type Internal struct {
	ProjectRoot string `json:"projectRoot,omitempty" yaml:"projectRoot,omitempty"`

	// ModResults holds the results saved by mods registered with SaveToInternal.
	ModResults map[Platform]map[string]any `json:"modResults,omitempty" yaml:"modResults,omitempty"`
}

func (in *Internal) clone() *Internal {
	if in == nil {
		return nil
	}
	out := *in
	if in.ModResults != nil {
		out.ModResults = make(map[Platform]map[string]any, len(in.ModResults))
		for platform, results := range in.ModResults {
			out.ModResults[platform] = maps.Clone(results)
		}
	}
	return &out
}

// ExportedConfig is the configuration document threaded through the pipeline.
// Mods never change a document they received; they return a new one.
type ExportedConfig struct {
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Extra    map[string]any `json:"extra,omitempty" yaml:"extra,omitempty"`
	Mods     ModConfig      `json:"mods,omitempty" yaml:"-"`
	Internal *Internal      `json:"_internal,omitempty" yaml:"_internal,omitempty"`
}

// Clone returns a copy of the document that can be changed without affecting c.
func (c *ExportedConfig) Clone() *ExportedConfig {
	if c == nil {
		return nil
	}
	out := *c
	out.Extra = maps.Clone(c.Extra)
	out.Mods = c.Mods.clone()
	out.Internal = c.Internal.clone()
	return &out
}

// ModResult returns the result saved for platform and mod name, if any.
func (c *ExportedConfig) ModResult(platform Platform, modName string) (any, bool) {
	if c == nil || c.Internal == nil {
		return nil, false
	}
	v, ok := c.Internal.ModResults[platform][modName]
	return v, ok
}

// withModResult returns a copy of c whose internal record holds value for platform and mod name.
func (c ExportedConfig) withModResult(platform Platform, modName string, value any) ExportedConfig {
	internal := c.Internal.clone()
	if internal == nil {
		internal = &Internal{}
	}
	if internal.ModResults == nil {
		internal.ModResults = make(map[Platform]map[string]any)
	}
	if internal.ModResults[platform] == nil {
		internal.ModResults[platform] = make(map[string]any)
	}
	internal.ModResults[platform][modName] = value
	c.Internal = internal
	return c
}

// ModRequest describes the mod being evaluated.
type ModRequest struct {
	Platform            Platform `json:"platform"`
	ModName             string   `json:"modName"`
	ProjectRoot         string   `json:"projectRoot,omitempty"`
	PlatformProjectRoot string   `json:"platformProjectRoot,omitempty"`
	Introspect          bool     `json:"introspect,omitempty"`
}

// ExportedConfigWithProps is the document as seen by a running mod: the
// configuration plus the working state of the mod and its request.
type ExportedConfigWithProps struct {
	ExportedConfig
	ModResults any        `json:"modResults,omitempty"`
	ModRequest ModRequest `json:"modRequest"`
}

// WithModResults returns a copy of cfg carrying results as its working state.
func (cfg *ExportedConfigWithProps) WithModResults(results any) *ExportedConfigWithProps {
	out := *cfg
	out.ModResults = results
	return &out
}

// ModResultsAs returns the working state of cfg as T.
func ModResultsAs[T any](cfg *ExportedConfigWithProps) (T, error) {
	var zero T
	if cfg == nil {
		return zero, &ModResultsTypeError{Want: reflect.TypeFor[T]().String()}
	}
	v, ok := cfg.ModResults.(T)
	if !ok {
		return zero, &ModResultsTypeError{
			Platform: cfg.ModRequest.Platform,
			ModName:  cfg.ModRequest.ModName,
			Want:     reflect.TypeFor[T]().String(),
			Got:      cfg.ModResults,
		}
	}
	return v, nil
}
