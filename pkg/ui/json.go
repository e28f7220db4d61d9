package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

// jsonResult is one reconciled request
type jsonResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Outcome     string `json:"outcome"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	ErrorKind   string `json:"errorKind,omitempty"`
}

type jsonLog struct {
	Preset  string         `json:"preset,omitempty"`
	DryRun  bool           `json:"dryRun"`
	Results []jsonResult   `json:"results"`
	Counts  map[string]int `json:"counts"`
}

func (r *jsonRenderer) RenderLog(log *report.Log) error {
	out := jsonLog{
		Preset:  log.Preset(),
		DryRun:  log.DryRun(),
		Results: make([]jsonResult, 0, log.Len()),
		Counts:  make(map[string]int),
	}
	for _, entry := range log.Entries() {
		result := jsonResult{
			Source:      entry.Request.Source,
			Destination: entry.Request.Destination,
			Outcome:     entry.Outcome.Kind.String(),
			Success:     entry.Outcome.IsSuccess(),
			Message:     entry.Outcome.Message(),
		}
		if entry.Outcome.Kind == types.OutcomeSystemError {
			result.ErrorKind = string(entry.Outcome.SystemKind())
		}
		out.Results = append(out.Results, result)
	}
	for kind, n := range log.Counts() {
		out.Counts[kind.String()] = n
	}
	return r.encoder.Encode(out)
}

func (r *jsonRenderer) RenderPresets(result *types.ListPresetsResult) error {
	return r.encoder.Encode(result)
}

func (r *jsonRenderer) RenderCheck(result *types.CheckResult) error {
	return r.encoder.Encode(result)
}

func (r *jsonRenderer) RenderError(err error) error {
	errorObj := map[string]interface{}{
		"error": err.Error(),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		errorObj["code"] = string(code)
	}
	return r.encoder.Encode(errorObj)
}
