package types

// ListPresetsResult holds the result of the 'list' command.
type ListPresetsResult struct {
	ConfigPath string       `json:"configPath"`
	Presets    []PresetInfo `json:"presets"`
}

// PresetInfo contains summary information about a single preset.
type PresetInfo struct {
	Name    string `json:"name"`
	Entries int    `json:"entries"`
}

// CheckResult holds the result of the 'check' command.
type CheckResult struct {
	ConfigPath string                 `json:"configPath"`
	Preset     string                 `json:"preset"`
	Requests   []LinkRequest          `json:"requests"`
	Duplicates []DuplicateDestination `json:"duplicates"`
}

// DuplicateDestination is a destination requested more than once within
// a preset. Only the first request can end up linked.
type DuplicateDestination struct {
	Destination string   `json:"destination"`
	Sources     []string `json:"sources"`
}

// HasDuplicates reports whether any destination is requested twice
func (r *CheckResult) HasDuplicates() bool {
	return len(r.Duplicates) > 0
}
