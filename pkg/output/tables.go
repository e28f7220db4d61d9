package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/output/styles"
	"github.com/arthur-debert/dotlink/pkg/report"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	// SuccessSymbol marks a request that left the desired link in place
	SuccessSymbol = "✓"
	// FailureSymbol marks every other request
	FailureSymbol = "✗"

	// DryRunBanner is printed before simulated results
	DryRunBanner = "Running in dry-run mode"
	// LoadedPresetLine precedes the name of the applied preset
	LoadedPresetLine = "Loaded preset:"
)

// Layout renders results, with styles applied when Styled is set.
type Layout struct {
	Styled bool
}

func (l Layout) style(name string) lipgloss.Style {
	if !l.Styled {
		return lipgloss.NewStyle()
	}
	return styles.GetStyle(name)
}

// newTable returns a borderless table with the header row styled.
func (l Layout) newTable(headers ...string) *table.Table {
	header := l.style("TableHeader")
	cell := lipgloss.NewStyle().PaddingRight(2)

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(false).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.PaddingRight(2)
			}
			return cell
		})
}

// ResultCell is the symbol and message describing one outcome.
func (l Layout) ResultCell(outcome types.LinkOutcome) string {
	if outcome.IsSuccess() {
		return l.style("Success").Render(SuccessSymbol + " " + outcome.Message())
	}
	return l.style("Error").Render(FailureSymbol + " " + outcome.Message())
}

// Log renders a reconciliation log as Name / Destination / Result rows,
// in request order, followed by a summary line.
func (l Layout) Log(log *report.Log) string {
	var b strings.Builder

	if log.Preset() != "" {
		b.WriteString(LoadedPresetLine + " " + l.style("PresetName").Render(log.Preset()))
		b.WriteString("\n")
	}
	if log.DryRun() {
		b.WriteString(l.style("DryRunBanner").Render(DryRunBanner))
		b.WriteString("\n")
	}

	if log.Len() == 0 {
		b.WriteString(l.style("Muted").Render("Nothing to link"))
		b.WriteString("\n")
		return b.String()
	}

	t := l.newTable("Name", "Destination", "Result")
	for _, entry := range log.Entries() {
		t.Row(
			filepath.Base(entry.Request.Source),
			l.style("FilePath").Render(entry.Request.Destination),
			l.ResultCell(entry.Outcome),
		)
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(l.style("Summary").Render(Summary(log)))
	b.WriteString("\n")
	return b.String()
}

// Summary counts the outcomes of a log, e.g. "2 linked, 1 failed".
func Summary(log *report.Log) string {
	counts := log.Counts()
	linked := counts[types.OutcomeCreated]
	already := counts[types.OutcomeAlreadyLinked]
	failed := log.Len() - linked - already

	verb := "linked"
	if log.DryRun() {
		verb = "to link"
	}
	return fmt.Sprintf("%d %s, %d already linked, %d failed", linked, verb, already, failed)
}

// Presets renders the preset names with their entry counts.
func (l Layout) Presets(result *types.ListPresetsResult) string {
	if len(result.Presets) == 0 {
		return l.style("Muted").Render("No presets in "+result.ConfigPath) + "\n"
	}

	t := l.newTable("Preset", "Entries")
	for _, p := range result.Presets {
		t.Row(p.Name, fmt.Sprintf("%d", p.Entries))
	}
	return t.String() + "\n"
}

// Check renders the duplicate destinations of a preset.
func (l Layout) Check(result *types.CheckResult) string {
	if !result.HasDuplicates() {
		return l.style("Success").Render(fmt.Sprintf(
			"%s %d links in preset %s, no duplicate destinations",
			SuccessSymbol, len(result.Requests), result.Preset)) + "\n"
	}

	var b strings.Builder
	b.WriteString(l.style("Warning").Render(fmt.Sprintf(
		"%d destinations requested more than once in preset %s; later requests report AlreadyLinked or DestinationConflict",
		len(result.Duplicates), result.Preset)))
	b.WriteString("\n")

	t := l.newTable("Destination", "Sources")
	for _, d := range result.Duplicates {
		t.Row(l.style("FilePath").Render(d.Destination), strings.Join(d.Sources, "\n"))
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
