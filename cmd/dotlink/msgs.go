package dotlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Link dotfiles into place from a declarative preset"
	MsgCheckShort      = "Report destinations requested more than once in a preset"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Show what would be linked without creating any link"
	MsgFlagFile    = "Config file, or directory holding dotlink.{toml,yaml,yml,json}"
	MsgFlagPreset  = "Preset to apply (default from settings, else \"default\")"
	MsgFlagList    = "List the presets of the config file and exit"
	MsgFlagStrict  = "Exit with status 1 when any link could not be made"
	MsgFlagFormat  = "Output format: auto, term, text or json"
	MsgFlagNoColor = "Disable colored output"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
