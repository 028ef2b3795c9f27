package renderer

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/renderer/core"
)

// drawText draws s starting at (x, y), stopping before column maxX. It
// returns the column after the last cell drawn.
func drawText(b backend.Backend, x, y, maxX int, s string, style core.Style) int {
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r := []rune(cluster)[0]
		b.SetCell(x, y, core.Cell{Rune: r, Width: w, Style: style})
		if w == 2 {
			b.SetCell(x+1, y, core.Cell{Style: style})
		}
		x += w
	}
	return x
}

// fillRect paints rect with blanks in style.
func fillRect(b backend.Backend, rect core.ScreenRect, style core.Style) {
	if rect.IsEmpty() {
		return
	}
	b.Fill(rect, core.NewStyledCell(' ', style))
}

// wrap splits s into lines no wider than width, breaking at newlines and,
// where possible, at spaces.
func wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(s, "\n") {
		for core.StringWidth(para) > width {
			head := core.Truncate(para, width)
			if i := strings.LastIndexByte(head, ' '); i > 0 {
				head = head[:i]
			}
			if head == "" {
				break
			}
			out = append(out, head)
			para = strings.TrimLeft(para[len(head):], " ")
		}
		out = append(out, para)
	}
	return out
}
