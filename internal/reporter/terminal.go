package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
	"github.com/pthm/squares/internal/ui"
)

// TerminalReporter outputs results to the terminal with colored squares
type TerminalReporter struct {
	w     io.Writer
	ui    *ui.UI
	table *typology.Table
}

// NewTerminalReporter creates a new terminal reporter. Square colors come
// from table's palette.
func NewTerminalReporter(w io.Writer, u *ui.UI, table *typology.Table) *TerminalReporter {
	return &TerminalReporter{w: w, ui: u, table: table}
}

// Report outputs results to the terminal
func (r *TerminalReporter) Report(results []pipeline.Result) error {
	s := r.ui.Styles
	if len(results) == 0 {
		fmt.Fprintln(r.w, s.Subheader.Render("No assessments found"))
		return nil
	}

	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		if !res.OK() {
			r.printFailure(res)
			continue
		}
		r.printResult(res)
	}

	if len(results) > 1 {
		r.printSummary(results)
	}
	return nil
}

func (r *TerminalReporter) printFailure(res pipeline.Result) {
	s := r.ui.Styles
	name := res.Source
	if name == "" {
		name = title(res)
	}
	fmt.Fprintf(r.w, "%s %s\n", s.Failed.Render(s.IconFailed), s.Header.Render(name))
	fmt.Fprintf(r.w, "    %s\n", res.Error)
}

func (r *TerminalReporter) printResult(res pipeline.Result) {
	s := r.ui.Styles

	header := s.Header.Render(title(res))
	if g := glyphs(res); g != "" {
		header += " " + g
	}
	if c := res.Classification; c != nil {
		header += " " + s.Code.Render(c.Code)
	}
	fmt.Fprintln(r.w, header)
	if res.Source != "" && res.Record != nil && res.Record.Name != "" {
		fmt.Fprintf(r.w, "  %s\n", s.Path.Render(res.Source))
	}

	if res.Record != nil {
		r.printDimensions(scheme(res), res.Record.Spectrum)
		if c := confidence(res); c != "" {
			fmt.Fprintf(r.w, "  %s %s\n", s.Subheader.Render("Confidence"), c)
		}
		if res.Record.Reasoning != "" {
			fmt.Fprintf(r.w, "  %s %s\n", s.Subheader.Render("Reasoning"), res.Record.Reasoning)
		}
	}

	if conv := res.Conversion; conv != nil {
		if res.Record == nil {
			r.printLegacyInput(legacyValues(conv.From))
		}
		fmt.Fprintf(r.w, "  %s %s (confidence %.0f%%)\n",
			s.Subheader.Render("Converted"), coreGlyphs(conv.Core.Scores()), conv.Confidence*100)
		core := conv.Core.Scores()
		scores := make([]spectrum.Score, len(core))
		for i, v := range core {
			scores[i] = spectrum.Score(v)
		}
		r.printDimensions(spectrum.Current(), scores)
		if len(conv.Clamped) > 0 {
			fmt.Fprintf(r.w, "  %s\n", s.Warning.Render(fmt.Sprintf("%s clamped: %s", s.IconWarning, strings.Join(conv.Clamped, ", "))))
		}
	}

	c := res.Classification
	if c == nil {
		if res.Record != nil && !res.Record.Known() {
			fmt.Fprintf(r.w, "  %s\n", s.Subheader.Render("Not classified: spectrum has unknown scores"))
		}
		return
	}

	fmt.Fprintf(r.w, "  %s %s\n", s.Subheader.Render("Type"), typeLabel(c))
	if scores, ok := coreScores(res); ok && s.Enabled() {
		r.printGrid(scores, c.Code)
	}
	if len(c.Nearest) > 0 {
		fmt.Fprintln(r.w, indent(nearestTable(c, false).Render(), "  "))
	}
}

func (r *TerminalReporter) printDimensions(sch *spectrum.Scheme, scores []spectrum.Score) {
	width := 0
	for _, d := range sch.Dimensions {
		width = max(width, len(d.Name))
	}
	for i, d := range sch.Dimensions {
		if i >= len(scores) {
			break
		}
		sc := scores[i]
		fmt.Fprintf(r.w, "  %-*s %s %s  %s\n", width, d.Name, r.square(sch, sc), sc, r.ui.Styles.Subheader.Render(sch.Describe(i, sc)))
	}
}

func (r *TerminalReporter) printLegacyInput(values []float64) {
	parts := make([]string, 0, len(values))
	for i, d := range spectrum.Legacy().Dimensions {
		if i < len(values) {
			parts = append(parts, fmt.Sprintf("%s %g", d.Name, values[i]))
		}
	}
	fmt.Fprintf(r.w, "  %s %s\n", r.ui.Styles.Subheader.Render("Input"), strings.Join(parts, ", "))
}

// square draws a score as a colored square, or as its glyph when styling
// is off or the palette has no color for it.
func (r *TerminalReporter) square(sch *spectrum.Scheme, sc spectrum.Score) string {
	glyph := sch.Glyph(sc)
	n, ok := sc.Int()
	if !ok {
		return glyph
	}
	if sch == spectrum.Current() {
		return r.ui.Styles.Square(r.table.DimensionColor(n), glyph)
	}
	tok, _ := sch.Token(sc)
	return r.ui.Styles.Square(r.table.Color(tok.Color, ""), glyph)
}

func (r *TerminalReporter) printGrid(scores [4]int, code string) {
	cells := r.table.Grid(scores, code)
	for row := 0; row < 3; row++ {
		var b strings.Builder
		b.WriteString("  ")
		for _, c := range cells[row*3 : row*3+3] {
			b.WriteString(r.ui.Styles.Square(c.Background, "  "))
		}
		fmt.Fprintln(r.w, b.String())
	}
}

func (r *TerminalReporter) printSummary(results []pipeline.Result) {
	s := r.ui.Styles
	summary := pipeline.Summarize(results)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	if len(summary.ByCode) > 0 {
		codes := make([]string, 0, len(summary.ByCode))
		for code := range summary.ByCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		t := newTable(false)
		t.AppendHeader(table.Row{"Type", "Count"})
		for _, code := range codes {
			label := code
			if typ, ok := r.table.Type(code); ok {
				label += " " + typ.Name
			}
			t.AppendRow(table.Row{label, summary.ByCode[code]})
		}
		fmt.Fprintln(r.w, t.Render())
	}

	parts := []string{s.OK.Render(fmt.Sprintf("%d classified", summary.Classified))}
	if unclassified := summary.Parsed - summary.Classified; unclassified > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d unclassified", unclassified)))
	}
	if summary.Failed > 0 {
		parts = append(parts, s.Failed.Render(fmt.Sprintf("%d failed", summary.Failed)))
	}
	fmt.Fprintf(r.w, "Processed %d assessments: %s\n", summary.Total, strings.Join(parts, ", "))
}

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
