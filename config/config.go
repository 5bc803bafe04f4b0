// Package config loads the project file that drives a prebuild: which
// platforms to run, base mod options, and the properties the built-in
// plugins apply.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lex00/wetwire-mods-go/mods"
)

// ConfigFilename is the standard name of the project file.
const ConfigFilename = "mods.yaml"

// TOMLConfigFilename is looked up next to ConfigFilename in every directory.
const TOMLConfigFilename = "mods.toml"

// ErrUnknownPlatform is returned for a platform no base mods exist for.
var ErrUnknownPlatform = errors.New("unknown platform")

// Config represents the project file
type Config struct {
	Name      string         `yaml:"name,omitempty" toml:"name,omitempty"`
	Platforms []string       `yaml:"platforms,omitempty" toml:"platforms,omitempty"`
	Debug     bool           `yaml:"debug,omitempty" toml:"debug,omitempty"`
	Options   *OptionsConfig `yaml:"options,omitempty" toml:"options,omitempty"`
	IOS       *IOSConfig     `yaml:"ios,omitempty" toml:"ios,omitempty"`
	Android   *AndroidConfig `yaml:"android,omitempty" toml:"android,omitempty"`
	Extra     map[string]any `yaml:",inline" toml:"-"`
}

// OptionsConfig overrides the base mod defaults. Unset fields keep them.
type OptionsConfig struct {
	SaveToInternal *bool `yaml:"saveToInternal,omitempty" toml:"saveToInternal,omitempty"`
	SkipEmptyMod   *bool `yaml:"skipEmptyMod,omitempty" toml:"skipEmptyMod,omitempty"`
}

// IOSConfig represents iOS plugin configuration
type IOSConfig struct {
	PodfileProperties map[string]string `yaml:"podfileProperties,omitempty" toml:"podfileProperties,omitempty"`
}

// AndroidConfig represents Android plugin configuration
type AndroidConfig struct {
	GradleProperties map[string]string `yaml:"gradleProperties,omitempty" toml:"gradleProperties,omitempty"`
}

// ModPlatforms returns the configured platforms, or nil for all of them.
func (c *Config) ModPlatforms() ([]mods.Platform, error) {
	var out []mods.Platform
	for _, name := range c.Platforms {
		p := mods.Platform(name)
		if p != mods.PlatformIOS && p != mods.PlatformAndroid {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, name)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ModOptions converts the options section into base mod options.
func (c *Config) ModOptions() []mods.Option {
	if c.Options == nil {
		return nil
	}
	var opts []mods.Option
	if c.Options.SaveToInternal != nil {
		opts = append(opts, mods.SaveToInternal(*c.Options.SaveToInternal))
	}
	if c.Options.SkipEmptyMod != nil {
		opts = append(opts, mods.SkipEmptyMod(*c.Options.SkipEmptyMod))
	}
	return opts
}

// PodfileProperties returns the iOS Podfile properties, if any.
func (c *Config) PodfileProperties() map[string]string {
	if c.IOS == nil {
		return nil
	}
	return c.IOS.PodfileProperties
}

// GradleProperties returns the Android gradle properties, if any.
func (c *Config) GradleProperties() map[string]string {
	if c.Android == nil {
		return nil
	}
	return c.Android.GradleProperties
}

// LoadConfigFrom loads starting from startDir, walking up the tree. In each
// directory mods.yaml wins over mods.toml. A missing file yields an empty
// config and an empty path.
func LoadConfigFrom(fsys afero.Fs, startDir string) (*Config, string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	currentDir := absDir
	for {
		for _, name := range []string{ConfigFilename, TOMLConfigFilename} {
			configPath := filepath.Join(currentDir, name)
			exists, err := afero.Exists(fsys, configPath)
			if err != nil {
				return nil, "", fmt.Errorf("failed to stat %s: %w", configPath, err)
			}
			if exists {
				cfg, err := LoadConfigFile(fsys, configPath)
				if err != nil {
					return nil, "", err
				}
				return cfg, configPath, nil
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return &Config{}, "", nil
		}
		currentDir = parentDir
	}
}

// LoadConfigFile loads from a specific path. The format follows the extension.
func LoadConfigFile(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	if _, err := cfg.ModPlatforms(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfigTo saves cfg as YAML to path.
func SaveConfigTo(fsys afero.Fs, cfg *Config, path string) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
