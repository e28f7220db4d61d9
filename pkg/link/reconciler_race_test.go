package link_test

import (
	"io/fs"
	"syscall"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/link"
	"github.com/arthur-debert/dotlink/pkg/testutil"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryFixture(t *testing.T) (*testutil.MemoryFS, types.LinkRequest) {
	t.Helper()
	m := testutil.NewMemoryFS()
	require.NoError(t, m.WriteFile("/dotfiles/vimrc", []byte("set nu"), 0644))
	require.NoError(t, m.MkdirAll("/home/u", 0755))
	return m, types.LinkRequest{Source: "/dotfiles/vimrc", Destination: "/home/u/.vimrc"}
}

func TestReconcile_RaceWithMatchingLink(t *testing.T) {
	m, req := memoryFixture(t)
	m.BeforeSymlink(func(oldname, newname string) {
		// Another process creates the very same link first
		m.BeforeSymlink(nil)
		require.NoError(t, m.Symlink(oldname, newname))
	})

	outcome := link.NewReconciler(m).Reconcile(req, false)

	assert.Equal(t, types.OutcomeAlreadyLinked, outcome.Kind)
}

func TestReconcile_RaceWithForeignFile(t *testing.T) {
	m, req := memoryFixture(t)
	m.BeforeSymlink(func(oldname, newname string) {
		require.NoError(t, m.WriteFile(newname, []byte("written concurrently"), 0644))
	})

	outcome := link.NewReconciler(m).Reconcile(req, false)

	assert.Equal(t, types.OutcomeDestinationConflict, outcome.Kind)
	content, err := m.ReadFile(req.Destination)
	require.NoError(t, err)
	assert.Equal(t, "written concurrently", string(content))
}

func TestReconcile_ExistErrorWithNothingThere(t *testing.T) {
	m, req := memoryFixture(t)
	m.FailOn(testutil.OpSymlink, req.Destination, fs.ErrExist)

	outcome := link.NewReconciler(m).Reconcile(req, false)

	assert.Equal(t, types.OutcomeSystemError, outcome.Kind)
	assert.Equal(t, errors.ErrSymlinkCreate, outcome.SystemKind())
}

func TestReconcile_DryRunNeverCallsSymlink(t *testing.T) {
	m, req := memoryFixture(t)

	outcome := link.NewReconciler(m).Reconcile(req, true)

	assert.Equal(t, types.OutcomeCreated, outcome.Kind)
	assert.Equal(t, 0, m.SymlinkCalls())
	_, err := m.Lstat(req.Destination)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReconcile_CreateFailuresAreClassified(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"permission denied", fs.ErrPermission, errors.ErrPermission},
		{"EACCES", syscall.EACCES, errors.ErrPermission},
		{"disk full", syscall.ENOSPC, errors.ErrNoSpace},
		{"quota", syscall.EDQUOT, errors.ErrNoSpace},
		{"unsupported filesystem", syscall.EOPNOTSUPP, errors.ErrNotSupported},
		{"read-only filesystem", syscall.EROFS, errors.ErrSymlinkCreate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, req := memoryFixture(t)
			m.FailOn(testutil.OpSymlink, req.Destination, tt.err)

			outcome := link.NewReconciler(m).Reconcile(req, false)

			require.Equal(t, types.OutcomeSystemError, outcome.Kind)
			assert.Equal(t, tt.want, outcome.SystemKind())
			assert.ErrorIs(t, outcome.Err, tt.err)
			assert.Contains(t, outcome.Message(), string(tt.want))
		})
	}
}

func TestReconcile_InspectionFailures(t *testing.T) {
	t.Run("source stat fails for another reason", func(t *testing.T) {
		m, req := memoryFixture(t)
		m.FailOn(testutil.OpStat, req.Source, fs.ErrPermission)

		outcome := link.NewReconciler(m).Reconcile(req, false)

		assert.Equal(t, types.OutcomeSystemError, outcome.Kind)
		assert.Equal(t, errors.ErrFileAccess, outcome.SystemKind())
	})

	t.Run("destination lstat fails", func(t *testing.T) {
		m, req := memoryFixture(t)
		m.FailOn(testutil.OpLstat, req.Destination, fs.ErrPermission)

		outcome := link.NewReconciler(m).Reconcile(req, false)

		assert.Equal(t, types.OutcomeSystemError, outcome.Kind)
		assert.Equal(t, 0, m.SymlinkCalls())
	})

	t.Run("readlink fails", func(t *testing.T) {
		m, req := memoryFixture(t)
		require.NoError(t, m.Symlink(req.Source, req.Destination))
		m.FailOn(testutil.OpReadlink, req.Destination, fs.ErrPermission)

		outcome := link.NewReconciler(m).Reconcile(req, false)

		assert.Equal(t, types.OutcomeSystemError, outcome.Kind)
		assert.Equal(t, errors.ErrSymlinkRead, outcome.SystemKind())
	})
}

func TestReconcile_MemoryScenarioVimrc(t *testing.T) {
	m, req := memoryFixture(t)
	r := link.NewReconciler(m)

	assert.Equal(t, types.OutcomeCreated, r.Reconcile(req, false).Kind)

	target, err := m.Readlink("/home/u/.vimrc")
	require.NoError(t, err)
	assert.Equal(t, "/dotfiles/vimrc", target)

	assert.Equal(t, types.OutcomeAlreadyLinked, r.Reconcile(req, false).Kind)
	assert.Equal(t, 1, m.SymlinkCalls(), "second run performs no mutation")
}
