package types

// ConfigEntry is one entry of a preset. It is either a SingleEntry or a
// MultipleEntry; the unexported method keeps the set closed.
type ConfigEntry interface {
	// Target is the unresolved destination directory of the entry
	Target() string
	isConfigEntry()
}

// SingleEntry links one name, optionally under a different file name.
type SingleEntry struct {
	Name   string
	To     string
	Rename *string
}

// MultipleEntry links several names into the same directory.
type MultipleEntry struct {
	Names []string
	To    string
}

func (e SingleEntry) Target() string   { return e.To }
func (e MultipleEntry) Target() string { return e.To }

func (SingleEntry) isConfigEntry()   {}
func (MultipleEntry) isConfigEntry() {}

// DestinationName is the file name the link gets in the target directory.
func (e SingleEntry) DestinationName() string {
	if e.Rename != nil && *e.Rename != "" {
		return *e.Rename
	}
	return e.Name
}

// Preset is a named, ordered list of entries.
type Preset struct {
	Name    string
	Entries []ConfigEntry
}
