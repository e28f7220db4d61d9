package internal

import (
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// PresetOptions locates a preset file and selects one preset in it.
type PresetOptions struct {
	// DotfilesRoot holds the files to link; defaults to the working directory
	DotfilesRoot string
	// ConfigPath is an explicit config file or directory, may be empty
	ConfigPath string
	// Preset is the preset to select; defaults to config.DefaultPreset
	Preset string
	// Home overrides the home directory lookup when set
	Home string
}

// LoadedPreset is everything needed to expand a preset.
type LoadedPreset struct {
	Resolver   *paths.Resolver
	SourceDir  string
	ConfigPath string
	Preset     types.Preset
}

// LoadPreset resolves home and the dotfiles directory, then loads the
// selected preset. Every failure here is fatal to the run; a missing home
// directory is not a failure until a path needs it.
func LoadPreset(opts PresetOptions) (*LoadedPreset, error) {
	logger := logging.GetLogger("commands.internal")

	// 1. Home directory, passed explicitly to the resolver. A failed lookup
	// only matters to paths starting with ~, which the resolver rejects.
	home := opts.Home
	if home == "" {
		var err error
		home, err = paths.GetHomeDirectory()
		if err != nil {
			logger.Debug().Err(err).Msg("Home directory unavailable")
		}
	}
	resolver := paths.NewResolver(home)

	// 2. Canonical dotfiles directory
	root := opts.DotfilesRoot
	if root == "" {
		root = "."
	}
	sourceDir, err := resolver.Resolve(root)
	if err != nil {
		return nil, err
	}

	// 3. Config file and preset
	configPath, presets, err := LoadPresets(sourceDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	name := opts.Preset
	if name == "" {
		name = config.DefaultPreset
	}
	preset, err := presets.Get(name)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("sourceDir", sourceDir).
		Str("configPath", configPath).
		Str("preset", name).
		Int("entries", len(preset.Entries)).
		Msg("Preset loaded")

	return &LoadedPreset{
		Resolver:   resolver,
		SourceDir:  sourceDir,
		ConfigPath: configPath,
		Preset:     preset,
	}, nil
}

// LoadPresets finds and parses the config file for sourceDir.
func LoadPresets(sourceDir, explicit string) (string, *config.Presets, error) {
	configPath, err := config.FindConfigFile(sourceDir, explicit)
	if err != nil {
		return "", nil, err
	}
	presets, err := config.LoadPresets(configPath)
	if err != nil {
		return "", nil, err
	}
	return configPath, presets, nil
}
