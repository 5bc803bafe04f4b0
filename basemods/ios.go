package basemods

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lex00/wetwire-mods-go/formats"
	"github.com/lex00/wetwire-mods-go/mods"
)

// ModPodfileProperties is the iOS mod backed by ios/Podfile.properties.json.
// Its working state is a formats.JSONDocument.
const ModPodfileProperties = "podfileProperties"

// PodfilePropertiesFile is the file name of the podfileProperties mod.
const PodfilePropertiesFile = "Podfile.properties.json"

func podfilePropertiesProvider(fsys afero.Fs) mods.ProviderMethods[formats.JSONDocument] {
	return mods.Provider(mods.ProviderMethods[formats.JSONDocument]{
		GetFilePath: func(_ context.Context, cfg *mods.ExportedConfigWithProps, _ mods.Props) (string, error) {
			return filepath.Join(platformProjectRoot(cfg, mods.PlatformIOS), PodfilePropertiesFile), nil
		},
		Read: func(_ context.Context, filePath string, _ *mods.ExportedConfigWithProps, _ mods.Props) (formats.JSONDocument, error) {
			return formats.ReadJSON(fsys, filePath)
		},
		Write: func(_ context.Context, filePath string, cfg *mods.ExportedConfigWithProps, _ mods.Props) error {
			doc, err := mods.ModResultsAs[formats.JSONDocument](cfg)
			if err != nil {
				return err
			}
			return formats.WriteJSON(fsys, filePath, doc)
		},
	})
}

func iosProviders(fsys afero.Fs) providerSet {
	return providerSet{
		providers: []mods.NamedProvider{
			{ModName: mods.ModDangerous, Provider: dangerousProvider()},
			{ModName: ModPodfileProperties, Provider: podfilePropertiesProvider(fsys)},
		},
		introspective: map[string]bool{
			ModPodfileProperties: true,
		},
	}
}

// IOSProviders returns the iOS base mod providers in registration order.
func IOSProviders(fsys afero.Fs) []mods.NamedProvider {
	return iosProviders(fsys).providers
}

// WithIOSBaseMods registers the iOS base mods on cfg.
func WithIOSBaseMods(cfg *mods.ExportedConfig, fsys afero.Fs, opts ...mods.Option) (*mods.ExportedConfig, error) {
	return mods.WithGeneratedBaseMods(cfg, mods.GeneratedBaseModsOptions{
		Platform:  mods.PlatformIOS,
		Providers: IOSProviders(fsys),
		Options:   opts,
	})
}
