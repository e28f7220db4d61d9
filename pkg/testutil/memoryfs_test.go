package testutil

import (
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS_FilesAndDirs(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/home/u/.bashrc", []byte("export A=1"), 0644))

	info, err := m.Stat("/home/u")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	content, err := m.ReadFile("/home/u/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "export A=1", string(content))

	_, err = m.Stat("/home/u/missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.Stat("/home/u/.bashrc/child")
	assert.ErrorIs(t, err, syscall.ENOTDIR)
}

func TestMemoryFS_Symlinks(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.WriteFile("/dotfiles/vimrc", []byte("set nu"), 0644))
	require.NoError(t, m.MkdirAll("/home/u", 0755))

	require.NoError(t, m.Symlink("/dotfiles/vimrc", "/home/u/.vimrc"))

	t.Run("readlink returns stored target", func(t *testing.T) {
		target, err := m.Readlink("/home/u/.vimrc")
		require.NoError(t, err)
		assert.Equal(t, "/dotfiles/vimrc", target)
	})

	t.Run("lstat sees the link, stat sees the file", func(t *testing.T) {
		linfo, err := m.Lstat("/home/u/.vimrc")
		require.NoError(t, err)
		assert.NotZero(t, linfo.Mode()&fs.ModeSymlink)

		info, err := m.Stat("/home/u/.vimrc")
		require.NoError(t, err)
		assert.Zero(t, info.Mode()&fs.ModeSymlink)
		assert.Equal(t, int64(len("set nu")), info.Size())
	})

	t.Run("creating over an existing entry fails with ErrExist", func(t *testing.T) {
		err := m.Symlink("/elsewhere", "/home/u/.vimrc")
		assert.ErrorIs(t, err, fs.ErrExist)
	})

	t.Run("dangling link exists for lstat only", func(t *testing.T) {
		require.NoError(t, m.Symlink("/nowhere", "/home/u/dangling"))

		_, err := m.Stat("/home/u/dangling")
		assert.ErrorIs(t, err, fs.ErrNotExist)

		_, err = m.Lstat("/home/u/dangling")
		assert.NoError(t, err)
	})

	t.Run("directory links are followed in the middle of a path", func(t *testing.T) {
		require.NoError(t, m.Symlink("/dotfiles", "/home/u/df"))

		info, err := m.Stat("/home/u/df/vimrc")
		require.NoError(t, err)
		assert.False(t, info.IsDir())
	})

	t.Run("relative link targets resolve against the link's directory", func(t *testing.T) {
		require.NoError(t, m.Symlink("../../dotfiles/vimrc", "/home/u/rel"))

		content, err := m.ReadFile("/home/u/rel")
		require.NoError(t, err)
		assert.Equal(t, "set nu", string(content))
	})

	t.Run("link loops are reported", func(t *testing.T) {
		require.NoError(t, m.Symlink("/loop/b", "/home/u/loop-a"))
		require.NoError(t, m.MkdirAll("/loop", 0755))
		require.NoError(t, m.Symlink("/home/u/loop-a", "/loop/b"))

		_, err := m.Stat("/home/u/loop-a")
		assert.ErrorIs(t, err, syscall.ELOOP)
	})
}

func TestMemoryFS_SymlinkNeedsParent(t *testing.T) {
	m := NewMemoryFS()

	err := m.Symlink("/src", "/missing/dir/link")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemoryFS_FailOn(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/home/u", 0755))
	m.FailOn(OpSymlink, "/home/u/.vimrc", fs.ErrPermission)

	err := m.Symlink("/src", "/home/u/.vimrc")
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, 1, m.SymlinkCalls())

	_, err = m.Lstat("/home/u/.vimrc")
	assert.ErrorIs(t, err, fs.ErrNotExist, "a failed create leaves nothing behind")
}

func TestMemoryFS_BeforeSymlink(t *testing.T) {
	m := NewMemoryFS()
	require.NoError(t, m.MkdirAll("/home/u", 0755))

	var seen []string
	m.BeforeSymlink(func(oldname, newname string) {
		seen = append(seen, oldname+" -> "+newname)
	})

	require.NoError(t, m.Symlink("/src", "/home/u/link"))
	assert.Equal(t, []string{"/src -> /home/u/link"}, seen)
}
