package list_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/commands/list"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPresets(t *testing.T) {
	dotfiles := testutil.TempDir(t)
	t.Setenv("DOTLINK_CONFIG_DIR", filepath.Join(dotfiles, "no-config"))
	path := testutil.CreateFile(t, dotfiles, "dotlink.yaml", `
work:
  - name: gitconfig
    to: "~"
default:
  - name: vimrc
    to: "~"
  - names: [a, b, c]
    to: /tmp
`)

	result, err := list.ListPresets(list.ListPresetsOptions{DotfilesRoot: dotfiles})
	require.NoError(t, err)

	assert.Equal(t, path, result.ConfigPath)
	assert.Equal(t, []types.PresetInfo{
		{Name: "default", Entries: 2},
		{Name: "work", Entries: 1},
	}, result.Presets)
}

func TestListPresets_ExplicitConfig(t *testing.T) {
	configDir := testutil.TempDir(t)
	path := testutil.CreateFile(t, configDir, "mine.json", `{"laptop": []}`)

	result, err := list.ListPresets(list.ListPresetsOptions{
		DotfilesRoot: testutil.TempDir(t),
		ConfigPath:   path,
	})
	require.NoError(t, err)

	assert.Equal(t, []types.PresetInfo{{Name: "laptop", Entries: 0}}, result.Presets)
}

func TestListPresets_NoConfig(t *testing.T) {
	dotfiles := testutil.TempDir(t)
	t.Setenv("DOTLINK_CONFIG_DIR", filepath.Join(dotfiles, "no-config"))

	_, err := list.ListPresets(list.ListPresetsOptions{DotfilesRoot: dotfiles})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}
