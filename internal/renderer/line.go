package renderer

import "github.com/dshills/pyide/internal/renderer/core"

// DefaultTabWidth is used when a view does not set one.
const DefaultTabWidth = 4

// LineCells lays text out for display. Tabs expand to the next tab stop,
// wide characters take two cells (the second a continuation cell) and
// zero-width runes are dropped.
func LineCells(text string, tabWidth int, style core.Style) []core.Cell {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	cells := make([]core.Cell, 0, len(text))
	for _, r := range text {
		if r == '\t' {
			for n := tabWidth - len(cells)%tabWidth; n > 0; n-- {
				cells = append(cells, core.NewStyledCell(' ', style))
			}
			continue
		}
		switch w := core.RuneWidth(r); w {
		case 0:
		case 2:
			cells = append(cells, core.Cell{Rune: r, Width: 2, Style: style}, core.Cell{Style: style})
		default:
			cells = append(cells, core.Cell{Rune: r, Width: 1, Style: style})
		}
	}
	return cells
}

// VisualColumn returns the display column of the rune at index col.
func VisualColumn(text string, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	vis, i := 0, 0
	for _, r := range text {
		if i >= col {
			break
		}
		if r == '\t' {
			vis += tabWidth - vis%tabWidth
		} else {
			vis += core.RuneWidth(r)
		}
		i++
	}
	return vis
}
