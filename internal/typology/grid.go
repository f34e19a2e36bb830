package typology

import (
	"fmt"

	"github.com/pthm/squares/internal/spectrum"
)

// Cell is one square of the 3x3 glyph that visualises a classification.
//
// The top-right 2x2 block carries one intensity color per dimension, the
// left column and bottom row carry the binary side of each call-sign letter,
// and the bottom-left cell is the indicator.
type Cell struct {
	Key        string `json:"key"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Background string `json:"background"`
	Label      string `json:"label,omitempty"`
	Dimension  string `json:"dimension,omitempty"`
}

const (
	sideLess = "less_government"
	sideMore = "more_government"
)

// Intensity returns the variation preset a single score corresponds to.
func Intensity(score int) VariationKey {
	switch score {
	case 0, 5:
		return Extreme
	case 1, 4:
		return DefaultVariation
	default:
		return Moderate
	}
}

// Color returns a named palette color, or fallback when it is missing.
func (t *Table) Color(name, fallback string) string {
	if c, ok := t.colors[name]; ok && c != "" {
		return c
	}
	return fallback
}

// DimensionColor returns the hex color for a single dimension score.
func (t *Table) DimensionColor(score int) string {
	side := sideMore
	if score <= lowCut {
		side = sideLess
	}
	if name := t.intensityColors[Intensity(score)][side]; name != "" {
		if c, ok := t.colors[name]; ok {
			return c
		}
	}
	if side == sideLess {
		return t.Color("blue", "#1F6ADB")
	}
	return t.Color("orange", "#E67E22")
}

// Grid lays out the nine cells for scores in row-major order. When code is
// empty the call sign is derived from scores.
func (t *Table) Grid(scores [4]int, code string) []Cell {
	if code == "" {
		code = CallSign(scores)
	}
	dims := spectrum.Current().Dimensions
	light := t.Color("light", "#D9D9D9")
	dark := t.Color("dark", "#232323")

	binary := func(axis int) string {
		if len(code) > axis && code[axis] == dims[axis].Low {
			return light
		}
		return dark
	}

	cells := make([]Cell, 0, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			c := Cell{
				Key:        fmt.Sprintf("%d_%d", col, row),
				Row:        row,
				Col:        col,
				Background: t.Color("background", "#121113"),
			}
			switch {
			case row < 2 && col > 0:
				axis := row*2 + col - 1
				c.Background = t.DimensionColor(scores[axis])
				c.Dimension = dims[axis].Key
			case row < 2 && col == 0:
				c.Background = binary(row)
			case row == 2 && col > 0:
				c.Background = binary(col + 1)
			default:
				c.Label = "indicator"
				c.Background = dark
			}
			cells = append(cells, c)
		}
	}
	return cells
}
