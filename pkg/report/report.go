// Package report collects the outcome of every link request of a run, in
// the order the requests were reconciled. It performs no formatting.
package report

import (
	"github.com/arthur-debert/dotlink/pkg/types"
)

// LogEntry pairs a request with what reconciling it produced.
type LogEntry struct {
	Request types.LinkRequest `json:"request"`
	Outcome types.LinkOutcome `json:"-"`
}

// Log is the ordered record of a finished run.
type Log struct {
	entries []LogEntry
	dryRun  bool
	preset  string
}

// Reporter appends entries during a run. Once finalized it accepts no more.
type Reporter struct {
	log    *Log
	sealed bool
}

// NewReporter creates an empty Reporter.
func NewReporter(dryRun bool) *Reporter {
	return &Reporter{log: &Log{dryRun: dryRun}}
}

// SetPreset names the preset the run applies.
func (r *Reporter) SetPreset(name string) {
	if r.sealed {
		panic("report: SetPreset called after Finalize")
	}
	r.log.preset = name
}

// Record appends one entry. Recording after Finalize is a programming error.
func (r *Reporter) Record(req types.LinkRequest, outcome types.LinkOutcome) {
	if r.sealed {
		panic("report: Record called after Finalize")
	}
	r.log.entries = append(r.log.entries, LogEntry{Request: req, Outcome: outcome})
}

// Finalize seals the reporter and returns the log.
func (r *Reporter) Finalize() *Log {
	r.sealed = true
	return r.log
}

// Entries returns a copy of the entries in input order.
func (l *Log) Entries() []LogEntry {
	entries := make([]LogEntry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// DryRun reports whether outcomes were simulated.
func (l *Log) DryRun() bool {
	return l.dryRun
}

// Preset returns the name of the applied preset, empty when not set.
func (l *Log) Preset() string {
	return l.preset
}

// Counts returns how many entries ended with each kind. Every kind is
// present, with zero when it never occurred.
func (l *Log) Counts() map[types.OutcomeKind]int {
	counts := make(map[types.OutcomeKind]int, len(types.AllOutcomeKinds))
	for _, kind := range types.AllOutcomeKinds {
		counts[kind] = 0
	}
	for _, e := range l.entries {
		counts[e.Outcome.Kind]++
	}
	return counts
}

// Failed returns the entries whose outcome is not a success, in order.
func (l *Log) Failed() []LogEntry {
	var failed []LogEntry
	for _, e := range l.entries {
		if !e.Outcome.IsSuccess() {
			failed = append(failed, e)
		}
	}
	return failed
}

// HasSystemErrors reports whether any entry ended in a SystemError.
func (l *Log) HasSystemErrors() bool {
	for _, e := range l.entries {
		if e.Outcome.Kind == types.OutcomeSystemError {
			return true
		}
	}
	return false
}

// Succeeded reports whether every entry ended in a success.
func (l *Log) Succeeded() bool {
	return len(l.Failed()) == 0
}
