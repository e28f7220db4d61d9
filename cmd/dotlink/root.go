package dotlink

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/arthur-debert/dotlink/internal/version"
	"github.com/arthur-debert/dotlink/pkg/cobrax/topics"
	"github.com/arthur-debert/dotlink/pkg/commands/check"
	"github.com/arthur-debert/dotlink/pkg/commands/link"
	"github.com/arthur-debert/dotlink/pkg/commands/list"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

// silentError is an error already shown to the user; it only sets the
// exit status.
type silentError struct{ err error }

func (e silentError) Error() string { return e.err.Error() }
func (e silentError) Unwrap() error { return e.err }

// errLinksFailed signals a run whose results were rendered but whose exit
// status must be 1.
var errLinksFailed = silentError{stderrors.New("some links failed")}

// rootOptions holds flag values shared by the commands
type rootOptions struct {
	verbosity  int
	configPath string
	preset     string
	list       bool
	dryRun     bool
	strict     bool
	format     string
	noColor    bool

	// settingsPath is where user settings are read; empty skips the file
	settingsPath string
	// home overrides the home directory lookup, for tests
	home string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{settingsPath: config.SettingsPath()})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "dotlink [path]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return applySettings(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				return runList(cmd, opts, pathArg(args))
			}
			return runLink(cmd, opts, pathArg(args))
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configPath, "file", "F", "", MsgFlagFile)
	flags.StringVarP(&opts.preset, "preset", "p", config.DefaultPreset, MsgFlagPreset)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	flags.BoolVar(&opts.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.Flags().BoolVarP(&opts.list, "list", "l", false, MsgFlagList)
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.Flags().BoolVar(&opts.strict, "strict", false, MsgFlagStrict)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		if _, err := topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// applySettings fills every flag the user did not set from the settings
func applySettings(cmd *cobra.Command, opts *rootOptions) error {
	settings, err := config.LoadSettings(opts.settingsPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("preset") && settings.DefaultPreset != "" {
		opts.preset = settings.DefaultPreset
	}
	if !flags.Changed("format") && settings.Format != "" {
		opts.format = settings.Format
	}
	if !flags.Changed("no-color") {
		opts.noColor = settings.NoColor
	}
	if flags.Lookup("strict") != nil && !flags.Changed("strict") {
		opts.strict = settings.Strict
	}
	return nil
}

// output renders results in the format chosen by the flags
type output struct {
	ui.Renderer
	format ui.Format
}

func newOutput(cmd *cobra.Command, opts *rootOptions) (*output, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	if opts.noColor && (format == ui.FormatAuto || format == ui.FormatTerminal) {
		format = ui.FormatText
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	return &output{Renderer: renderer, format: format}, nil
}

// fatal reports err. JSON output carries the error itself so that
// consumers always get a document; other formats leave it to stderr.
func (o *output) fatal(err error) error {
	if o.format != ui.FormatJSON {
		return err
	}
	if rerr := o.RenderError(err); rerr != nil {
		return err
	}
	return silentError{err}
}

func runLink(cmd *cobra.Command, opts *rootOptions, path string) error {
	out, err := newOutput(cmd, opts)
	if err != nil {
		return err
	}

	result, err := link.LinkPreset(link.LinkPresetOptions{
		DotfilesRoot: path,
		ConfigPath:   opts.configPath,
		Preset:       opts.preset,
		DryRun:       opts.dryRun,
		Home:         opts.home,
	})
	if err != nil {
		return out.fatal(err)
	}

	if err := out.RenderLog(result); err != nil {
		return err
	}
	return exitStatus(result, opts.strict)
}

// exitStatus turns a finished run into errLinksFailed when it must exit 1:
// on any system error, or on any failure at all in strict mode.
func exitStatus(result *report.Log, strict bool) error {
	if result.HasSystemErrors() {
		return errLinksFailed
	}
	if strict && !result.Succeeded() {
		return errLinksFailed
	}
	return nil
}

func runList(cmd *cobra.Command, opts *rootOptions, path string) error {
	out, err := newOutput(cmd, opts)
	if err != nil {
		return err
	}

	result, err := list.ListPresets(list.ListPresetsOptions{
		DotfilesRoot: path,
		ConfigPath:   opts.configPath,
	})
	if err != nil {
		return out.fatal(err)
	}
	return out.RenderPresets(result)
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: MsgCheckShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := newOutput(cmd, opts)
			if err != nil {
				return err
			}

			result, err := check.CheckPreset(check.CheckPresetOptions{
				DotfilesRoot: pathArg(args),
				ConfigPath:   opts.configPath,
				Preset:       opts.preset,
				Home:         opts.home,
			})
			if err != nil {
				return out.fatal(err)
			}
			return out.RenderCheck(result)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
