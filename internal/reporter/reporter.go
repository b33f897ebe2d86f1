// Package reporter renders snapshots and remediation results for the
// terminal and exports them for node_exporter.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
	"github.com/janyksteenbeek/hostcheckr/internal/config"
	"github.com/janyksteenbeek/hostcheckr/internal/health"
	"github.com/janyksteenbeek/hostcheckr/internal/remediation"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

type Options struct {
	Format  string
	NoColor bool
}

// WriteSnapshot renders snap in the requested format.
func WriteSnapshot(w io.Writer, snap health.Snapshot, opts Options) error {
	if opts.Format == config.OutputJSON {
		return writeJSON(w, snap)
	}

	fmt.Fprintln(w, bandStyle(snap.Band, opts.NoColor).Render(
		fmt.Sprintf("Optimization score: %d (%s)", snap.Score, snap.Band)))
	fmt.Fprintln(w, snap.RecommendationText)
	fmt.Fprintln(w)

	if err := writeMetricsTable(w, snap); err != nil {
		return err
	}
	if len(snap.Penalties) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewWriter(w)
	table.Header("Penalty", "Value", "Above", "Points")
	for _, p := range snap.Penalties {
		table.Append(string(p.Metric), formatFloat(p.Value), formatFloat(p.Above), "-"+strconv.Itoa(p.Points))
	}
	return table.Render()
}

// WriteResult renders a remediation result in the requested format.
func WriteResult(w io.Writer, res remediation.Result, opts Options) error {
	if opts.Format == config.OutputJSON {
		return writeJSON(w, res)
	}

	fmt.Fprintln(w, bandStyle(res.Band, opts.NoColor).Render(
		fmt.Sprintf("Optimization score: %d -> %d (%s)", res.ScoreBefore, res.ScoreAfter, res.Band)))
	fmt.Fprintf(w, "%s [%s]\n", res.Message, res.Status)
	fmt.Fprintf(w, "Run: %s\n\n", res.RunID)

	table := tablewriter.NewWriter(w)
	table.Header("Step", "Outcome", "Duration", "Error")
	for _, s := range res.Steps {
		outcome := outcomeStyle(s.Outcome, opts.NoColor).Render(string(s.Outcome))
		table.Append(s.Name, outcome, s.Duration.Round(time.Millisecond).String(), s.Error)
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return writeMetricsTable(w, res.Metrics)
}

func writeMetricsTable(w io.Writer, snap health.Snapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	table.Append("CPU load (1m)", formatFloat(snap.CPULoad))
	table.Append("Memory", memoryCell(snap))
	table.Append("Disk ("+config.RootMount+")", strconv.Itoa(snap.DiskPercent)+"%")
	table.Append(config.AuxServiceName, activeCell(snap.AuxServiceActive))
	for _, key := range []string{collector.DetailErrorMemory, collector.DetailErrorLoad, collector.DetailErrorDisk} {
		if v, ok := snap.Details[key]; ok {
			table.Append(key, fmt.Sprint(v))
		}
	}
	return table.Render()
}

func memoryCell(snap health.Snapshot) string {
	cell := strconv.Itoa(snap.MemoryPercent) + "%"
	used, okUsed := snap.Details[collector.DetailMemoryUsedMB]
	total, okTotal := snap.Details[collector.DetailMemoryTotalMB]
	if okUsed && okTotal {
		cell += fmt.Sprintf(" (%v / %v MB)", used, total)
	}
	return cell
}

func activeCell(active bool) string {
	if active {
		return "running"
	}
	return "not running"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	return nil
}

func bandStyle(b score.Band, noColor bool) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	if noColor {
		return style
	}
	switch b {
	case score.BandCritical:
		return style.Foreground(lipgloss.Color("9")) // Red
	case score.BandDegraded:
		return style.Foreground(lipgloss.Color("11")) // Yellow
	default:
		return style.Foreground(lipgloss.Color("10")) // Green
	}
}

func outcomeStyle(o remediation.Outcome, noColor bool) lipgloss.Style {
	style := lipgloss.NewStyle()
	if noColor {
		return style
	}
	switch o {
	case remediation.OutcomeOK:
		return style.Foreground(lipgloss.Color("10"))
	case remediation.OutcomeError, remediation.OutcomeTimeout:
		return style.Foreground(lipgloss.Color("9"))
	default:
		return style.Foreground(lipgloss.Color("8")) // Gray
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
