package reporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pthm/squares/internal/convert"
	"github.com/pthm/squares/internal/pipeline"
	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
)

// Reporter defines the interface for outputting pipeline results
type Reporter interface {
	// Report outputs the results
	Report(results []pipeline.Result) error
}

// title names a result for display.
func title(r pipeline.Result) string {
	switch {
	case r.Record != nil && r.Record.Name != "":
		return r.Record.Name
	case r.Source != "":
		return filepath.Base(r.Source)
	case r.Conversion != nil:
		return "Converted scores"
	default:
		return "Scores"
	}
}

// scheme returns the scheme a result was read with.
func scheme(r pipeline.Result) *spectrum.Scheme {
	s, err := spectrum.SchemeNamed(r.Scheme)
	if err != nil {
		return spectrum.Current()
	}
	return s
}

// glyphs renders the extracted spectrum as scheme tokens.
func glyphs(r pipeline.Result) string {
	if r.Record == nil {
		return ""
	}
	sch := scheme(r)
	var b strings.Builder
	for _, s := range r.Record.Spectrum {
		b.WriteString(sch.Glyph(s))
	}
	return b.String()
}

// coreScores returns the current-scheme scores of r, converted if needed.
func coreScores(r pipeline.Result) ([4]int, bool) {
	var out [4]int
	if r.Conversion != nil {
		return r.Conversion.Core.Scores(), true
	}
	if r.Record == nil {
		return out, false
	}
	v, ok := r.Record.Current()
	if !ok {
		return out, false
	}
	for i, s := range v {
		n, known := s.Int()
		if !known {
			return out, false
		}
		out[i] = n
	}
	return out, true
}

// coreGlyphs renders current-scheme scores as tokens.
func coreGlyphs(scores [4]int) string {
	var b strings.Builder
	for _, v := range scores {
		b.WriteString(spectrum.Current().Glyph(spectrum.Score(v)))
	}
	return b.String()
}

// typeLabel describes a classification as "CODE Name (Family)".
func typeLabel(c *typology.Classification) string {
	if c == nil {
		return ""
	}
	if c.Type == nil {
		return c.Code + " (unlisted)"
	}
	label := c.Code + " " + c.Type.Name
	if c.Family != nil {
		label += " (" + c.Family.Name + ")"
	}
	return label
}

// legacyValues lists legacy inputs in scheme dimension order.
func legacyValues(l convert.Legacy) []float64 {
	return []float64{l.Trade, l.Abortion, l.Migration, l.Economics, l.Rights}
}

func confidence(r pipeline.Result) string {
	if r.Record == nil || r.Record.Confidence == nil {
		return ""
	}
	return fmt.Sprintf("%d%%", *r.Record.Confidence)
}

// newTable returns a go-pretty writer styled for the terminal, or bare for
// Markdown rendering.
func newTable(markdown bool) table.Writer {
	t := table.NewWriter()
	if !markdown {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func nearestTable(c *typology.Classification, markdown bool) table.Writer {
	t := newTable(markdown)
	t.AppendHeader(table.Row{"#", "Type", "Variation", "Family", "Distance"})
	for i, m := range c.Nearest {
		t.AppendRow(table.Row{i + 1, m.TypeCode + " " + m.TypeName, m.VariationName, m.FamilyName, fmt.Sprintf("%.2f", m.Distance)})
	}
	return t
}
