package link

import (
	"github.com/arthur-debert/dotlink/pkg/commands/internal"
	"github.com/arthur-debert/dotlink/pkg/expand"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	dotlink "github.com/arthur-debert/dotlink/pkg/link"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// LinkPresetOptions defines the options for the LinkPreset command.
type LinkPresetOptions struct {
	// DotfilesRoot is the directory holding the files to link.
	DotfilesRoot string
	// ConfigPath is an explicit config file or directory.
	ConfigPath string
	// Preset is the name of the preset to apply.
	Preset string
	// DryRun reports what would happen without creating links.
	DryRun bool
	// Home overrides the home directory lookup.
	Home string
	// FS is the filesystem links are created on; the OS when nil.
	FS types.FS
}

// LinkPreset expands every entry of the preset, then reconciles the
// requests one at a time in order. An error is returned only for failures
// before reconciliation starts; per-link failures are in the log.
func LinkPreset(opts LinkPresetOptions) (*report.Log, error) {
	log := logging.GetLogger("commands.link")
	log.Debug().Str("command", "LinkPreset").Bool("dryRun", opts.DryRun).Msg("Executing command")
	defer logging.LogOperationStart(log, "LinkPreset")()

	loaded, err := internal.LoadPreset(internal.PresetOptions{
		DotfilesRoot: opts.DotfilesRoot,
		ConfigPath:   opts.ConfigPath,
		Preset:       opts.Preset,
		Home:         opts.Home,
	})
	if err != nil {
		return nil, err
	}

	// Expansion fails fast so that no link is touched for a broken preset
	requests, err := expand.ExpandAll(loaded.Preset.Entries, loaded.SourceDir, loaded.Resolver)
	if err != nil {
		log.Error().Err(err).Msg("Link failed")
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	reporter := report.NewReporter(opts.DryRun)
	reporter.SetPreset(loaded.Preset.Name)
	result := reconcileInto(reporter, fsys, requests, opts.DryRun)

	log.Info().
		Str("command", "LinkPreset").
		Str("preset", loaded.Preset.Name).
		Int("requests", result.Len()).
		Int("failed", len(result.Failed())).
		Msg("Command finished")
	return result, nil
}

// Reconcile applies requests sequentially, in order, and records every
// outcome. A failed request never stops the ones after it.
func Reconcile(fsys types.FS, requests []types.LinkRequest, dryRun bool) *report.Log {
	return reconcileInto(report.NewReporter(dryRun), fsys, requests, dryRun)
}

func reconcileInto(reporter *report.Reporter, fsys types.FS, requests []types.LinkRequest, dryRun bool) *report.Log {
	reconciler := dotlink.NewReconciler(fsys)
	for _, req := range requests {
		reporter.Record(req, reconciler.Reconcile(req, dryRun))
	}
	return reporter.Finalize()
}
