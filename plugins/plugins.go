// Package plugins provides config plugins that edit native project files
// through the base mods of the basemods package.
package plugins

import (
	"context"
	"maps"
	"slices"

	"github.com/lex00/wetwire-mods-go/basemods"
	"github.com/lex00/wetwire-mods-go/formats"
	"github.com/lex00/wetwire-mods-go/mods"
)

// WithPodfileProperties sets keys of ios/Podfile.properties.json.
func WithPodfileProperties(cfg *mods.ExportedConfig, props map[string]string) (*mods.ExportedConfig, error) {
	if len(props) == 0 {
		return cfg, nil
	}
	return mods.WithMod(cfg, mods.PlatformIOS, basemods.ModPodfileProperties,
		func(_ context.Context, c *mods.ExportedConfigWithProps) (*mods.ExportedConfigWithProps, error) {
			doc, err := mods.ModResultsAs[formats.JSONDocument](c)
			if err != nil {
				return nil, err
			}
			for _, key := range slices.Sorted(maps.Keys(props)) {
				doc, err = doc.Set(formats.Key(key), props[key])
				if err != nil {
					return nil, err
				}
			}
			return c.WithModResults(doc), nil
		})
}

// WithGradleProperties sets keys of android/gradle.properties. Existing keys
// keep their position; new keys are appended in sorted order.
func WithGradleProperties(cfg *mods.ExportedConfig, props map[string]string) (*mods.ExportedConfig, error) {
	if len(props) == 0 {
		return cfg, nil
	}
	return mods.WithMod(cfg, mods.PlatformAndroid, basemods.ModGradleProperties,
		func(_ context.Context, c *mods.ExportedConfigWithProps) (*mods.ExportedConfigWithProps, error) {
			current, err := mods.ModResultsAs[formats.Properties](c)
			if err != nil {
				return nil, err
			}
			for _, key := range slices.Sorted(maps.Keys(props)) {
				current, err = current.Set(key, props[key])
				if err != nil {
					return nil, err
				}
			}
			return c.WithModResults(current), nil
		})
}
