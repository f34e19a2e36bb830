package reporter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pthm/squares/internal/spectrum"
	"github.com/pthm/squares/internal/typology"
	"github.com/pthm/squares/internal/ui"
)

// WriteTypes lists a typology in the output mode of u.
func WriteTypes(u *ui.UI, types []typology.Type) error {
	if u.IsJSON() {
		encoder := json.NewEncoder(u.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(types)
	}

	markdown := u.IsMarkdown()
	t := newTable(markdown)
	t.AppendHeader(table.Row{"Code", "Type", "Family", "Moderate", "Default", "Extreme"})
	for _, typ := range types {
		row := table.Row{typ.Code, typ.Name, typ.FamilyName}
		for _, v := range typ.Variations {
			row = append(row, fmt.Sprintf("%s %s", coreGlyphs(v.Scores), v.Name))
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d types", len(types))})

	var out string
	if markdown {
		out = t.RenderMarkdown()
	} else {
		out = t.Render()
	}
	if _, err := fmt.Fprintln(u.Writer, out); err != nil {
		return err
	}

	if !markdown {
		var legend []string
		for _, d := range spectrum.Current().Dimensions {
			legend = append(legend, fmt.Sprintf("%s %s (%c %s / %c %s)", d.Key, d.Name, d.Low, d.LowPole, d.High, d.HighPole))
		}
		fmt.Fprintln(u.Writer, u.Styles.Subheader.Render(strings.Join(legend, "  ")))
	}
	return nil
}
