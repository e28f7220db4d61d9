package check

import (
	"github.com/arthur-debert/dotlink/pkg/commands/internal"
	"github.com/arthur-debert/dotlink/pkg/expand"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// CheckPresetOptions defines the options for the CheckPreset command.
type CheckPresetOptions struct {
	DotfilesRoot string
	ConfigPath   string
	Preset       string
	Home         string
}

// CheckPreset expands the preset without reconciling it and reports the
// destinations requested more than once.
func CheckPreset(opts CheckPresetOptions) (*types.CheckResult, error) {
	log := logging.GetLogger("commands.check")
	log.Debug().Str("command", "CheckPreset").Msg("Executing command")

	loaded, err := internal.LoadPreset(internal.PresetOptions{
		DotfilesRoot: opts.DotfilesRoot,
		ConfigPath:   opts.ConfigPath,
		Preset:       opts.Preset,
		Home:         opts.Home,
	})
	if err != nil {
		return nil, err
	}

	requests, err := expand.ExpandAll(loaded.Preset.Entries, loaded.SourceDir, loaded.Resolver)
	if err != nil {
		return nil, err
	}

	result := &types.CheckResult{
		ConfigPath: loaded.ConfigPath,
		Preset:     loaded.Preset.Name,
		Requests:   requests,
		Duplicates: FindDuplicates(requests),
	}

	log.Info().
		Str("command", "CheckPreset").
		Int("requests", len(requests)).
		Int("duplicates", len(result.Duplicates)).
		Msg("Command finished")
	return result, nil
}

// FindDuplicates groups requests by destination and keeps the groups with
// more than one request, in order of first appearance.
func FindDuplicates(requests []types.LinkRequest) []types.DuplicateDestination {
	sources := make(map[string][]string)
	var order []string
	for _, req := range requests {
		if _, seen := sources[req.Destination]; !seen {
			order = append(order, req.Destination)
		}
		sources[req.Destination] = append(sources[req.Destination], req.Source)
	}

	var duplicates []types.DuplicateDestination
	for _, dst := range order {
		if len(sources[dst]) > 1 {
			duplicates = append(duplicates, types.DuplicateDestination{
				Destination: dst,
				Sources:     sources[dst],
			})
		}
	}
	return duplicates
}
