package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFS_SymlinkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	fsys := NewOS()
	require.NoError(t, fsys.Symlink(src, dst))

	target, err := fsys.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, src, target)

	linfo, err := fsys.Lstat(dst)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&fs.ModeSymlink)

	info, err := fsys.Stat(dst)
	require.NoError(t, err)
	assert.Zero(t, info.Mode()&fs.ModeSymlink)
}

func TestOSFS_SymlinkExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(dst, []byte("keep"), 0644))

	err := NewOS().Symlink(filepath.Join(dir, "src"), dst)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
}
