package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// SettingsFileName is the user settings file inside the config directory
	SettingsFileName = "settings.toml"

	// EnvPrefix prefixes every environment variable read as a setting
	EnvPrefix = "DOTLINK_"
)

// Settings are the user's defaults for the command line. Flags given on
// the command line override them.
type Settings struct {
	// Preset used when --preset is not given
	DefaultPreset string `koanf:"default_preset"`
	// Output format: auto, term, text or json
	Format  string `koanf:"format"`
	NoColor bool   `koanf:"no_color"`
	// Strict makes every failed link fail the run
	Strict bool `koanf:"strict"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() map[string]interface{} {
	return map[string]interface{}{
		"default_preset": DefaultPreset,
		"format":         "auto",
		"no_color":       false,
		"strict":         false,
	}
}

// SettingsPath returns where the user settings file is looked up
func SettingsPath() string {
	return filepath.Join(paths.ConfigDir(), SettingsFileName)
}

// LoadSettings merges defaults, the settings file at path (when it exists)
// and DOTLINK_* environment variables, in that order.
func LoadSettings(path string) (*Settings, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(DefaultSettings(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load default settings")
	}

	// 2. Load the settings file if it exists
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
					WithDetail("path", path)
			}
			log.Debug().Str("path", path).Msg("Loaded settings file")
		}
	}

	// 3. Load environment overrides, DOTLINK_DEFAULT_PRESET -> default_preset
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load settings from environment")
	}

	var settings Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &settings,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &settings, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to unmarshal settings")
	}

	return &settings, nil
}
