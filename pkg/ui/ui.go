// Package ui renders command results in the format the user asked for:
// styled terminal tables, plain text tables or JSON.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderLog renders the outcome of every link request of a run
	RenderLog(log *report.Log) error

	// RenderPresets renders the presets of a config file
	RenderPresets(result *types.ListPresetsResult) error

	// RenderCheck renders the duplicate destinations of a preset
	RenderCheck(result *types.CheckResult) error

	// RenderError renders a fatal error
	RenderError(err error) error
}

// NewRenderer creates a renderer for format. FormatAuto is resolved from
// the output when it is a file, and means terminal output otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return newTableRenderer(output, true), nil
	case FormatText:
		return newTableRenderer(output, false), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
