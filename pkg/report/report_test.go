package report_test

import (
	"io/fs"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(name string) types.LinkRequest {
	return types.LinkRequest{Source: "/dotfiles/" + name, Destination: "/home/u/" + name}
}

func TestReporter_PreservesOrder(t *testing.T) {
	r := report.NewReporter(false)
	r.Record(req("a"), types.DestinationConflict())
	r.Record(req("b"), types.Created())
	r.Record(req("c"), types.AlreadyLinked())

	log := r.Finalize()
	require.Equal(t, 3, log.Len())

	entries := log.Entries()
	assert.Equal(t, "/dotfiles/a", entries[0].Request.Source)
	assert.Equal(t, types.OutcomeDestinationConflict, entries[0].Outcome.Kind)
	assert.Equal(t, "/dotfiles/b", entries[1].Request.Source)
	assert.Equal(t, types.OutcomeCreated, entries[1].Outcome.Kind)
	assert.Equal(t, types.OutcomeAlreadyLinked, entries[2].Outcome.Kind)
	assert.False(t, log.DryRun())
}

func TestReporter_RecordAfterFinalizePanics(t *testing.T) {
	r := report.NewReporter(true)
	log := r.Finalize()

	assert.Panics(t, func() { r.Record(req("a"), types.Created()) })
	assert.Equal(t, 0, log.Len())
	assert.True(t, log.DryRun())
}

func TestReporter_Preset(t *testing.T) {
	r := report.NewReporter(false)
	assert.Equal(t, "", report.NewReporter(false).Finalize().Preset())

	r.SetPreset("default")
	log := r.Finalize()

	assert.Equal(t, "default", log.Preset())
	assert.Panics(t, func() { r.SetPreset("other") })
}

func TestLog_EntriesIsACopy(t *testing.T) {
	r := report.NewReporter(false)
	r.Record(req("a"), types.Created())
	log := r.Finalize()

	entries := log.Entries()
	entries[0].Outcome = types.DestinationConflict()

	assert.Equal(t, types.OutcomeCreated, log.Entries()[0].Outcome.Kind)
}

func TestLog_Aggregates(t *testing.T) {
	r := report.NewReporter(false)
	r.Record(req("a"), types.Created())
	r.Record(req("b"), types.Created())
	r.Record(req("c"), types.SourceNotFound())
	r.Record(req("d"), types.SystemError(errors.ErrPermission, fs.ErrPermission))
	log := r.Finalize()

	counts := log.Counts()
	assert.Len(t, counts, len(types.AllOutcomeKinds))
	assert.Equal(t, 2, counts[types.OutcomeCreated])
	assert.Equal(t, 1, counts[types.OutcomeSourceNotFound])
	assert.Equal(t, 1, counts[types.OutcomeSystemError])
	assert.Equal(t, 0, counts[types.OutcomeDestinationConflict])

	failed := log.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, "/dotfiles/c", failed[0].Request.Source)
	assert.Equal(t, "/dotfiles/d", failed[1].Request.Source)

	assert.True(t, log.HasSystemErrors())
	assert.False(t, log.Succeeded())
}

func TestLog_AllSuccess(t *testing.T) {
	r := report.NewReporter(false)
	r.Record(req("a"), types.Created())
	r.Record(req("b"), types.AlreadyLinked())
	log := r.Finalize()

	assert.Empty(t, log.Failed())
	assert.False(t, log.HasSystemErrors())
	assert.True(t, log.Succeeded())
}
