package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/aclements/go-moremath/stats"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/natefinch/atomic"

	"github.com/shivanshkc/abench/pkg/bench"
)

// Percentile histogram bounds: one microsecond to one hour, recorded at
// microsecond resolution with three significant figures.
const (
	histMinMicros = 1
	histMaxMicros = 3600000000
	histSigFigs   = 3
)

// renderReport prints the statistics of the measured runs as a table.
func renderReport(w io.Writer, clock bench.ClockKind, report bench.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRows([]table.Row{
		{"Runs", report.Count},
		{"Mean", formatDuration(report.Mean)},
		{"Stdev", formatDuration(report.Stdev)},
		{"Min", formatDuration(report.Min)},
		{"Max", formatDuration(report.Max)},
		{"Total", formatDuration(report.Total)},
	})
	t.AppendFooter(table.Row{"Clock", clock.String()})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// renderPercentiles prints a percentile table of the run times, computed
// from an HDR histogram of the samples.
func renderPercentiles(w io.Writer, samples bench.Samples) {
	hist := hdrhistogram.New(histMinMicros, histMaxMicros, histSigFigs)
	for _, d := range samples {
		micros := d.Microseconds()
		if micros < histMinMicros {
			micros = histMinMicros
		}
		if micros > histMaxMicros {
			micros = histMaxMicros
		}
		_ = hist.RecordValue(micros)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Percentile", "Run Time"})
	for _, p := range []float64{50, 90, 95, 99} {
		value := time.Duration(hist.ValueAtQuantile(p)) * time.Microsecond
		t.AppendRow(table.Row{fmt.Sprintf("p%g", p), formatDuration(value)})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// resultDocument is the exported JSON shape. It is compatible with
// hyperfine's --export-json output, so analysis scripts written against that
// format can consume abench results unchanged.
type resultDocument struct {
	Results []resultEntry `json:"results"`
}

// resultEntry holds the results of one benchmarked command, all durations in
// float seconds.
type resultEntry struct {
	Command string    `json:"command"`
	Mean    float64   `json:"mean"`
	Stddev  float64   `json:"stddev"`
	Median  float64   `json:"median"`
	Min     float64   `json:"min"`
	Max     float64   `json:"max"`
	Count   int       `json:"count"`
	Times   []float64 `json:"times"`
}

// newResultEntry assembles the export entry from the report and raw samples.
func newResultEntry(command string, report bench.Report, samples bench.Samples) resultEntry {
	times := samples.Seconds()
	return resultEntry{
		Command: command,
		Mean:    report.Mean.Seconds(),
		Stddev:  report.Stdev.Seconds(),
		Median:  stats.Sample{Xs: times}.Quantile(0.5),
		Min:     report.Min.Seconds(),
		Max:     report.Max.Seconds(),
		Count:   report.Count,
		Times:   times,
	}
}

// marshalResults renders the benchmark results as an indented JSON document.
func marshalResults(command string, report bench.Report, samples bench.Samples) ([]byte, error) {
	doc := resultDocument{Results: []resultEntry{newResultEntry(command, report, samples)}}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}
	return raw, nil
}

// exportResults writes the JSON results document to the given path. The
// write is atomic: the file either has the old content or the new, never a
// truncated mix.
func exportResults(path, command string, report bench.Report, samples bench.Samples) error {
	raw, err := marshalResults(command, report, samples)
	if err != nil {
		return err
	}
	raw = append(raw, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// heading colors a heading for terminal output. Colors are suppressed when
// stdout is not a terminal, e.g. when piped into another tool.
func heading(s string) string {
	if !stdoutIsTTY() {
		return s
	}
	return text.FgCyan.Sprint(s)
}

func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatDuration renders a duration at a precision appropriate for its
// magnitude.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	case d < time.Minute:
		return fmt.Sprintf("%.3fs", d.Seconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
