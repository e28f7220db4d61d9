// Package config loads the preset file that drives a dotlink run and the
// user's own settings for the tool.
//
// A preset file maps preset names to ordered lists of entries. It is
// written in TOML, YAML or JSON, chosen by its extension:
//
//	[[default]]
//	name = "vimrc"
//	to = "~"
//	rename = ".vimrc"
//
//	[[default]]
//	names = ["nvim", "kitty"]
//	to = "~/.config"
//
// Settings come from built-in defaults, then settings.toml in the dotlink
// config directory, then DOTLINK_* environment variables.
package config
