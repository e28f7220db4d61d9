package types

import (
	"io/fs"
)

// FS is the filesystem surface the link reconciler needs.
type FS interface {
	// Stat follows symlinks
	Stat(name string) (fs.FileInfo, error)
	// Lstat reports the entry itself, including dangling symlinks
	Lstat(name string) (fs.FileInfo, error)

	Readlink(name string) (string, error)
	Symlink(oldname, newname string) error
}
