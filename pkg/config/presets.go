package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var log = logging.GetLogger("config")

// DefaultPreset is used when no preset is named
const DefaultPreset = "default"

// ConfigFileNames are looked up, in order, in a config directory
var ConfigFileNames = []string{"dotlink.toml", "dotlink.yaml", "dotlink.yml", "dotlink.json"}

// Format is the serialization of a preset file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.ErrConfigFormat, "invalid config file extension for %s", filepath.Base(path)).
			WithDetail("path", path)
	}
}

// Presets holds every preset of a config file by name.
type Presets struct {
	path    string
	presets map[string]types.Preset
}

// Path is the file the presets were read from, empty when parsed from bytes
func (p *Presets) Path() string {
	return p.path
}

// Names returns the preset names in lexical order.
func (p *Presets) Names() []string {
	names := make([]string, 0, len(p.presets))
	for name := range p.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named preset.
func (p *Presets) Get(name string) (types.Preset, error) {
	preset, ok := p.presets[name]
	if !ok {
		return types.Preset{}, errors.Newf(errors.ErrPresetNotFound, "preset %q not found", name).
			WithDetail("preset", name).
			WithDetail("available", p.Names())
	}
	return preset, nil
}

// FindConfigFile locates the preset file. An explicit path wins; it may
// name a file or a directory to search. Otherwise dotfilesDir is searched,
// then the dotlink config directory.
func FindConfigFile(dotfilesDir, explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigNotFound, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		if !info.IsDir() {
			return explicit, nil
		}
		if found, ok := searchDir(explicit); ok {
			return found, nil
		}
		return "", errors.Newf(errors.ErrConfigNotFound, "no config file found in %s", explicit).
			WithDetail("path", explicit)
	}

	searched := []string{dotfilesDir, paths.ConfigDir()}
	for _, dir := range searched {
		if found, ok := searchDir(dir); ok {
			return found, nil
		}
	}
	return "", errors.New(errors.ErrConfigNotFound, "config file not found").
		WithDetail("searched", searched)
}

func searchDir(dir string) (string, bool) {
	for _, name := range ConfigFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			log.Debug().Str("path", candidate).Msg("Found config file")
			return candidate, true
		}
	}
	return "", false
}

// LoadPresets reads and parses the preset file at path.
func LoadPresets(path string) (*Presets, error) {
	logger := log.With().Str("configPath", path).Logger()

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigRead, "couldn't read config file %s", path).
			WithDetail("path", path)
	}

	presets, err := ParsePresets(data, format)
	if err != nil {
		if de, ok := err.(*errors.DotlinkError); ok {
			return nil, de.WithDetail("path", path)
		}
		return nil, err
	}
	presets.path = path

	logger.Debug().Int("presets", len(presets.presets)).Msg("Loaded presets")
	return presets, nil
}

// ParsePresets decodes preset file content in the given format.
func ParsePresets(data []byte, format Format) (*Presets, error) {
	raw := make(map[string]interface{})

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errors.Newf(errors.ErrConfigFormat, "unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "couldn't parse %s config", format)
	}

	presets := &Presets{presets: make(map[string]types.Preset, len(raw))}
	for name, value := range raw {
		entries, err := decodePreset(value)
		if err != nil {
			if de, ok := err.(*errors.DotlinkError); ok {
				return nil, de.WithDetail("preset", name)
			}
			return nil, err
		}
		presets.presets[name] = types.Preset{Name: name, Entries: entries}
	}
	return presets, nil
}

// rawEntry is the union of the fields a single or multiple entry may have
type rawEntry struct {
	Name   string   `mapstructure:"name"`
	Names  []string `mapstructure:"names"`
	To     string   `mapstructure:"to"`
	Rename *string  `mapstructure:"rename"`
}

func decodePreset(value interface{}) ([]types.ConfigEntry, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "preset must be a list of entries, got %T", value)
	}

	entries := make([]types.ConfigEntry, 0, len(items))
	for i, item := range items {
		entry, err := decodeEntry(item)
		if err != nil {
			return nil, err.WithDetail("entry", i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeEntry(item interface{}) (types.ConfigEntry, *errors.DotlinkError) {
	fields, ok := item.(map[string]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrConfigInvalid, "entry must be a table, got %T", item)
	}

	var raw rawEntry
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &raw,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "couldn't create entry decoder")
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid entry")
	}

	_, hasName := fields["name"]
	_, hasNames := fields["names"]

	switch {
	case hasName && hasNames:
		return nil, errors.New(errors.ErrConfigInvalid, "entry has both name and names")
	case !hasName && !hasNames:
		return nil, errors.New(errors.ErrConfigInvalid, "entry needs name or names")
	case raw.To == "":
		return nil, errors.New(errors.ErrConfigInvalid, "entry needs a non-empty to")
	}

	if hasName {
		if raw.Name == "" {
			return nil, errors.New(errors.ErrConfigInvalid, "entry has an empty name")
		}
		if raw.Rename != nil && *raw.Rename == "" {
			return nil, errors.Newf(errors.ErrConfigInvalid, "entry %q has an empty rename", raw.Name)
		}
		if raw.Rename != nil && !isFileName(*raw.Rename) {
			return nil, errors.Newf(errors.ErrConfigInvalid, "rename %q must be a file name", *raw.Rename).
				WithDetail("rename", *raw.Rename)
		}
		if escapesDir(raw.Name) {
			return nil, errors.Newf(errors.ErrConfigInvalid, "name %q leaves its directory", raw.Name)
		}
		return types.SingleEntry{Name: raw.Name, To: raw.To, Rename: raw.Rename}, nil
	}

	if raw.Rename != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "rename is only allowed with name")
	}
	if len(raw.Names) == 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "entry has an empty names list")
	}
	for _, name := range raw.Names {
		if name == "" {
			return nil, errors.New(errors.ErrConfigInvalid, "entry names contain an empty name")
		}
		if escapesDir(name) {
			return nil, errors.Newf(errors.ErrConfigInvalid, "name %q leaves its directory", name)
		}
	}
	return types.MultipleEntry{Names: raw.Names, To: raw.To}, nil
}

// isFileName reports whether s names a single entry of a directory.
func isFileName(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, "/"+string(filepath.Separator))
}

// escapesDir reports whether joining name to a directory lands outside it.
// Nested names such as "nvim/init.lua" stay inside.
func escapesDir(name string) bool {
	if filepath.IsAbs(name) {
		return true
	}
	clean := filepath.Clean(name)
	return clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
