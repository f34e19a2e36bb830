package reporter

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pthm/squares/internal/pipeline"
)

// MarkdownReporter outputs results as GitHub-flavoured Markdown tables
type MarkdownReporter struct {
	w io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

// Report writes one row per result, then the nearest archetypes of a single
// classified result or the type counts of a batch.
func (r *MarkdownReporter) Report(results []pipeline.Result) error {
	t := newTable(true)
	t.AppendHeader(table.Row{"Assessment", "Spectrum", "Type", "Confidence", "Error"})
	for _, res := range results {
		run := glyphs(res)
		if res.Conversion != nil {
			run = coreGlyphs(res.Conversion.Core.Scores())
			if g := glyphs(res); g != "" {
				run = g + " → " + run
			}
		}
		t.AppendRow(table.Row{title(res), run, typeLabel(res.Classification), confidence(res), res.Error})
	}
	if _, err := fmt.Fprintln(r.w, t.RenderMarkdown()); err != nil {
		return err
	}

	if len(results) == 1 && results[0].Classification != nil {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, "Nearest archetypes:")
		fmt.Fprintln(r.w)
		_, err := fmt.Fprintln(r.w, nearestTable(results[0].Classification, true).RenderMarkdown())
		return err
	}

	summary := pipeline.Summarize(results)
	if len(results) < 2 || len(summary.ByCode) == 0 {
		return nil
	}
	codes := make([]string, 0, len(summary.ByCode))
	for code := range summary.ByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	counts := newTable(true)
	counts.AppendHeader(table.Row{"Type", "Count"})
	for _, code := range codes {
		counts.AppendRow(table.Row{code, summary.ByCode[code]})
	}
	counts.AppendFooter(table.Row{"Failed", summary.Failed})
	fmt.Fprintln(r.w)
	_, err := fmt.Fprintln(r.w, counts.RenderMarkdown())
	return err
}
