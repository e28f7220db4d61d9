package list

import (
	"github.com/arthur-debert/dotlink/pkg/commands/internal"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// ListPresetsOptions defines the options for the ListPresets command.
type ListPresetsOptions struct {
	// DotfilesRoot is the path to the dotfiles directory.
	DotfilesRoot string
	// ConfigPath is an explicit config file or directory.
	ConfigPath string
}

// ListPresets returns the presets of the config file, sorted by name.
func ListPresets(opts ListPresetsOptions) (*types.ListPresetsResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListPresets").Msg("Executing command")

	root := opts.DotfilesRoot
	if root == "" {
		root = "."
	}
	// Listing never expands the home marker
	sourceDir, err := paths.NewResolver("").Resolve(root)
	if err != nil {
		return nil, err
	}

	configPath, presets, err := internal.LoadPresets(sourceDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	result := &types.ListPresetsResult{ConfigPath: configPath}
	for _, name := range presets.Names() {
		preset, err := presets.Get(name)
		if err != nil {
			return nil, err
		}
		result.Presets = append(result.Presets, types.PresetInfo{
			Name:    name,
			Entries: len(preset.Entries),
		})
	}

	log.Info().Str("command", "ListPresets").Int("presetCount", len(result.Presets)).Msg("Command finished")
	return result, nil
}
