// Package link decides, for one link request at a time, whether the
// filesystem already holds the desired symlink, whether one can be created
// safely, or whether something else is in the way.
//
// The reconciler never removes or overwrites an existing entry. Every
// ambiguity, whether seen before or during creation, ends in a reported
// outcome rather than a mutation, so running it twice over the same
// requests is a no-op the second time.
package link

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/rs/zerolog"
)

// Reconciler classifies and applies link requests against a filesystem.
type Reconciler struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewReconciler creates a Reconciler working on fsys.
func NewReconciler(fsys types.FS) *Reconciler {
	return &Reconciler{
		fs:     fsys,
		logger: logging.GetLogger("link.reconciler"),
	}
}

// Reconcile brings req about, unless simulate is set, and reports what
// happened. Checks run in a fixed order and the first failing one decides
// the outcome without touching the filesystem.
func (r *Reconciler) Reconcile(req types.LinkRequest, simulate bool) types.LinkOutcome {
	logger := r.logger.With().
		Str("source", req.Source).
		Str("destination", req.Destination).
		Bool("simulate", simulate).
		Logger()

	outcome := r.reconcile(req, simulate)

	if outcome.Kind == types.OutcomeSystemError {
		logger.Warn().Err(outcome.Err).Str("outcome", outcome.Kind.String()).Msg("Link reconciled")
	} else {
		logger.Debug().Str("outcome", outcome.Kind.String()).Msg("Link reconciled")
	}

	return outcome
}

func (r *Reconciler) reconcile(req types.LinkRequest, simulate bool) types.LinkOutcome {
	if _, err := r.fs.Stat(req.Source); err != nil {
		if isNotExist(err) {
			return types.SourceNotFound()
		}
		return types.SystemError(errors.ErrFileAccess, err)
	}

	parent, err := r.fs.Stat(filepath.Dir(req.Destination))
	if err != nil {
		if isNotExist(err) {
			return types.DestinationDirectoryMissing()
		}
		return types.SystemError(errors.ErrFileAccess, err)
	}
	if !parent.IsDir() {
		return types.DestinationDirectoryMissing()
	}

	if outcome, exists := r.inspectDestination(req); exists {
		return outcome
	}

	if simulate {
		return types.Created()
	}

	err = r.fs.Symlink(req.Source, req.Destination)
	if err == nil {
		return types.Created()
	}

	// Something appeared between the check above and the syscall. The
	// syscall is authoritative: classify whatever is there now.
	if isExist(err) {
		r.logger.Debug().
			Str("destination", req.Destination).
			Msg("Destination appeared during link creation, re-checking")
		if outcome, exists := r.inspectDestination(req); exists {
			return outcome
		}
	}

	return types.SystemError(classifyCreateError(err), err)
}

// inspectDestination classifies an existing destination. The boolean is
// false when nothing exists at the destination.
func (r *Reconciler) inspectDestination(req types.LinkRequest) (types.LinkOutcome, bool) {
	info, err := r.fs.Lstat(req.Destination)
	if err != nil {
		if isNotExist(err) {
			return types.LinkOutcome{}, false
		}
		return types.SystemError(errors.ErrFileAccess, err), true
	}

	if info.Mode()&fs.ModeSymlink == 0 {
		return types.DestinationConflict(), true
	}

	target, err := r.fs.Readlink(req.Destination)
	if err != nil {
		return types.SystemError(errors.ErrSymlinkRead, err), true
	}

	// Plain string comparison: an equivalent but differently spelled
	// target is still a conflict.
	if target == req.Source {
		return types.AlreadyLinked(), true
	}
	return types.DestinationConflict(), true
}
