package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/output"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// tableRenderer writes tables for humans, styled or plain
type tableRenderer struct {
	w      io.Writer
	layout output.Layout
}

func newTableRenderer(w io.Writer, styled bool) *tableRenderer {
	return &tableRenderer{w: w, layout: output.Layout{Styled: styled}}
}

func (r *tableRenderer) RenderLog(log *report.Log) error {
	_, err := fmt.Fprint(r.w, r.layout.Log(log))
	return err
}

func (r *tableRenderer) RenderPresets(result *types.ListPresetsResult) error {
	_, err := fmt.Fprint(r.w, r.layout.Presets(result))
	return err
}

func (r *tableRenderer) RenderCheck(result *types.CheckResult) error {
	_, err := fmt.Fprint(r.w, r.layout.Check(result))
	return err
}

func (r *tableRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}
