package link

import (
	stderrors "errors"
	"io/fs"
	"syscall"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

func isNotExist(err error) bool {
	// ENOTDIR: some component of the path is a regular file
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}

func isExist(err error) bool {
	return stderrors.Is(err, fs.ErrExist)
}

// classifyCreateError maps a failed symlink syscall to the kind carried by
// a SystemError outcome.
func classifyCreateError(err error) errors.ErrorCode {
	switch {
	case stderrors.Is(err, fs.ErrPermission):
		return errors.ErrPermission
	case stderrors.Is(err, syscall.ENOSPC), stderrors.Is(err, syscall.EDQUOT):
		return errors.ErrNoSpace
	case stderrors.Is(err, stderrors.ErrUnsupported),
		stderrors.Is(err, syscall.ENOTSUP),
		stderrors.Is(err, syscall.EOPNOTSUPP):
		return errors.ErrNotSupported
	default:
		return errors.ErrSymlinkCreate
	}
}
