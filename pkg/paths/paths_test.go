package paths

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canonicalTempDir returns t.TempDir() with symlinks resolved, so that
// results compare equal on systems where the temp dir is itself a link.
func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolver_ExpandHome(t *testing.T) {
	r := NewResolver("/home/u")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"marker with subpath", "~/.config/app", "/home/u/.config/app"},
		{"bare marker", "~", "/home/u"},
		{"marker with trailing slash", "~/", "/home/u"},
		{"absolute path unchanged", "/etc/app", "/etc/app"},
		{"other user form unchanged", "~bob/.vimrc", "~bob/.vimrc"},
		{"marker not leading", "/tmp/~/x", "/tmp/~/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ExpandHome(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_ExpandHome_NoHome(t *testing.T) {
	r := NewResolver("")

	_, err := r.ExpandHome("~/.vimrc")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHomeUnavailable))

	// Paths without the marker never need a home directory
	got, err := r.ExpandHome("/etc/app")
	require.NoError(t, err)
	assert.Equal(t, "/etc/app", got)
}

func TestResolver_Resolve(t *testing.T) {
	home := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config", "app"), 0755))

	r := NewResolver(home)

	t.Run("tilde expands and canonicalizes", func(t *testing.T) {
		got, err := r.Resolve("~/.config/app")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "app"), got)
	})

	t.Run("dot-dot segments are removed", func(t *testing.T) {
		got, err := r.Resolve("~/.config/app/../app")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "app"), got)
	})

	t.Run("absolute path keeps its structure", func(t *testing.T) {
		got, err := r.Resolve(filepath.Join(home, ".config"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config"), got)
	})

	t.Run("symlinked directory resolves to its target", func(t *testing.T) {
		link := filepath.Join(home, "cfg")
		require.NoError(t, os.Symlink(filepath.Join(home, ".config"), link))

		got, err := r.Resolve("~/cfg/app")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "app"), got)
	})

	t.Run("missing component fails with filesystem error", func(t *testing.T) {
		_, err := r.Resolve("~/does/not/exist")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrFilesystem))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Equal(t, "~/does/not/exist", errors.GetErrorDetails(err)["path"])
	})

	t.Run("repeatable", func(t *testing.T) {
		first, err := r.Resolve("~/.config")
		require.NoError(t, err)
		second, err := r.Resolve("~/.config")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestResolver_Resolve_NoHome(t *testing.T) {
	_, err := NewResolver("").Resolve("~/.config")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHomeUnavailable))
}

func TestGetHomeDirectory(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestConfigDir(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		t.Setenv(EnvDotlinkConfigDir, "/custom/dotlink")
		assert.Equal(t, "/custom/dotlink", ConfigDir())
	})

	t.Run("xdg default", func(t *testing.T) {
		t.Setenv(EnvDotlinkConfigDir, "")
		assert.Equal(t, DotlinkDirName, filepath.Base(ConfigDir()))
	})
}
