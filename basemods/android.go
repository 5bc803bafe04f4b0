package basemods

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lex00/wetwire-mods-go/formats"
	"github.com/lex00/wetwire-mods-go/mods"
)

// ModGradleProperties is the Android mod backed by android/gradle.properties.
// Its working state is a formats.Properties.
const ModGradleProperties = "gradleProperties"

// GradlePropertiesFile is the file name of the gradleProperties mod.
const GradlePropertiesFile = "gradle.properties"

func gradlePropertiesProvider(fsys afero.Fs) mods.ProviderMethods[formats.Properties] {
	return mods.Provider(mods.ProviderMethods[formats.Properties]{
		GetFilePath: func(_ context.Context, cfg *mods.ExportedConfigWithProps, _ mods.Props) (string, error) {
			return filepath.Join(platformProjectRoot(cfg, mods.PlatformAndroid), GradlePropertiesFile), nil
		},
		Read: func(_ context.Context, filePath string, _ *mods.ExportedConfigWithProps, _ mods.Props) (formats.Properties, error) {
			return formats.ReadProperties(fsys, filePath)
		},
		Write: func(_ context.Context, filePath string, cfg *mods.ExportedConfigWithProps, _ mods.Props) error {
			props, err := mods.ModResultsAs[formats.Properties](cfg)
			if err != nil {
				return err
			}
			return formats.WriteProperties(fsys, filePath, props)
		},
	})
}

func androidProviders(fsys afero.Fs) providerSet {
	return providerSet{
		providers: []mods.NamedProvider{
			{ModName: mods.ModDangerous, Provider: dangerousProvider()},
			{ModName: ModGradleProperties, Provider: gradlePropertiesProvider(fsys)},
		},
		introspective: map[string]bool{
			ModGradleProperties: true,
		},
	}
}

// AndroidProviders returns the Android base mod providers in registration order.
func AndroidProviders(fsys afero.Fs) []mods.NamedProvider {
	return androidProviders(fsys).providers
}

// WithAndroidBaseMods registers the Android base mods on cfg.
func WithAndroidBaseMods(cfg *mods.ExportedConfig, fsys afero.Fs, opts ...mods.Option) (*mods.ExportedConfig, error) {
	return mods.WithGeneratedBaseMods(cfg, mods.GeneratedBaseModsOptions{
		Platform:  mods.PlatformAndroid,
		Providers: AndroidProviders(fsys),
		Options:   opts,
	})
}
