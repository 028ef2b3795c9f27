package renderer

import (
	"strconv"
	"strings"

	"github.com/dshills/pyide/internal/input/menu"
	"github.com/dshills/pyide/internal/renderer/backend"
	"github.com/dshills/pyide/internal/renderer/core"
)

// TabLabel is one entry of the tab bar.
type TabLabel struct {
	Label    string
	Modified bool
}

// Text returns the label as drawn, with a "*" on modified tabs.
func (t TabLabel) Text() string {
	if t.Modified {
		return " " + t.Label + "* "
	}
	return " " + t.Label + " "
}

// TextSource is the text shown by the editor view.
type TextSource interface {
	LineCount() int
	Line(i int) string
}

// EditorView describes the active tab's editing area.
type EditorView struct {
	Text       TextSource
	CursorLine int
	CursorCol  int // rune index in the cursor line
	Scroll     *Scroll
	TabWidth   int
	Palette    Palette
}

// OutputView describes the output pane. When the text does not fit, the
// last lines are shown.
type OutputView struct {
	Title   string
	Text    string
	Palette Palette
}

// PromptView is a single-line input drawn over the status line.
type PromptView struct {
	Title  string
	Input  string
	Cursor int // rune index in Input
}

// ModalView is a notification acknowledged with OK.
type ModalView struct {
	Title   string
	Message string
}

const emptyHint = "No open tabs. Ctrl+N new tab, Ctrl+O open, F10 menu."

func drawMenuBar(b backend.Backend, area core.ScreenRect, m *menu.Menu, p Palette) {
	fillRect(b, area, p.Bar)
	if m == nil || area.IsEmpty() {
		return
	}
	groups := m.Groups()
	for i, span := range m.TitleSpans() {
		style := p.Bar
		if m.IsOpen() && m.OpenIndex() == i {
			style = p.Selection
			fillRect(b, core.ScreenRect{Top: area.Top, Left: span.Start, Bottom: area.Bottom, Right: min(span.End, area.Right)}, style)
		}
		drawText(b, span.Start+1, area.Top, area.Right, groups[i].Title, style)
	}
}

// DropdownRect returns where the open menu group's items are drawn, one
// item per row. It is empty when no group is open.
func DropdownRect(l Layout, m *menu.Menu) core.ScreenRect {
	if m == nil || !m.IsOpen() {
		return core.ScreenRect{}
	}
	g := m.Groups()[m.OpenIndex()]
	span := m.TitleSpans()[m.OpenIndex()]
	width := menu.DropdownWidth(g)
	left := span.Start
	if left+width > l.MenuBar.Right {
		left = max(l.MenuBar.Right-width, 0)
	}
	return core.RectFromSize(l.MenuBar.Bottom, left, len(g.Items), width)
}

func drawDropdown(b backend.Backend, rect core.ScreenRect, m *menu.Menu, p Palette) {
	g := m.Groups()[m.OpenIndex()]
	for i, item := range g.Items {
		style := p.Bar
		if i == m.Selected() {
			style = p.Selection
		}
		row := core.RectFromSize(rect.Top+i, rect.Left, 1, rect.Width())
		fillRect(b, row, style)
		drawText(b, rect.Left, row.Top, rect.Right, menu.ItemLabel(item, rect.Width()), style)
	}
}

// TabSpans returns the columns covered by each tab label. When the labels
// do not fit in width they are shifted left until the active one is fully
// visible; spans may then start at negative columns.
func TabSpans(tabs []TabLabel, active, width int) []menu.Span {
	spans := make([]menu.Span, len(tabs))
	x := 0
	for i, t := range tabs {
		w := core.StringWidth(t.Text())
		spans[i] = menu.Span{Start: x, End: x + w}
		x += w
	}
	if active >= 0 && active < len(spans) && spans[active].End > width {
		shift := spans[active].End - width
		for i := range spans {
			spans[i].Start -= shift
			spans[i].End -= shift
		}
	}
	return spans
}

// TabAt returns the index of the tab drawn at column x, or -1.
func TabAt(tabs []TabLabel, active, width, x int) int {
	for i, s := range TabSpans(tabs, active, width) {
		if x >= s.Start && x < s.End {
			return i
		}
	}
	return -1
}

func drawTabBar(b backend.Backend, area core.ScreenRect, tabs []TabLabel, active int, p Palette) {
	fillRect(b, area, p.Bar)
	for i, span := range TabSpans(tabs, active, area.Width()) {
		if span.End <= 0 {
			continue
		}
		style := p.Bar
		if i == active {
			style = p.Selection.Bold()
		}
		text := tabs[i].Text()
		if span.Start < 0 {
			// Cut the hidden part off the front.
			cut := core.StringWidth(text) + span.Start
			runes := []rune(text)
			for core.StringWidth(string(runes)) > cut {
				runes = runes[1:]
			}
			text = string(runes)
		}
		drawText(b, max(span.Start, 0)+area.Left, area.Top, area.Right, text, style)
	}
}

func gutterWidth(lines int) int {
	return len(strconv.Itoa(max(lines, 1))) + 1
}

func drawEditor(b backend.Backend, area core.ScreenRect, v *EditorView, chrome Palette) {
	if v == nil {
		fillRect(b, area, chrome.Text)
		if !area.IsEmpty() {
			hint := area.Center(core.StringWidth(emptyHint), 1)
			drawText(b, hint.Left, hint.Top, area.Right, emptyHint, chrome.Gutter)
		}
		return
	}

	p := v.Palette
	fillRect(b, area, p.Text)
	if area.IsEmpty() {
		return
	}

	count := v.Text.LineCount()
	gutter := gutterWidth(count)
	textWidth := area.Width() - gutter

	cursorText := v.Text.Line(v.CursorLine)
	cursorVis := VisualColumn(cursorText, v.CursorCol, v.TabWidth)
	scroll := v.Scroll
	if scroll == nil {
		scroll = &Scroll{}
	}
	scroll.Reveal(v.CursorLine, cursorVis, area.Height(), textWidth)

	for row := 0; row < area.Height(); row++ {
		line := scroll.Top + row
		y := area.Top + row
		if line >= count {
			break
		}

		num := strconv.Itoa(line + 1)
		drawText(b, area.Left+gutter-1-len(num), y, area.Left+gutter, num, p.Gutter)

		cells := LineCells(v.Text.Line(line), v.TabWidth, p.Text)
		for x := 0; x < textWidth; x++ {
			col := scroll.Left + x
			if col >= len(cells) {
				break
			}
			cell := cells[col]
			if cell.Width == 2 && x == textWidth-1 {
				cell = core.NewStyledCell(' ', p.Text)
			}
			b.SetCell(area.Left+gutter+x, y, cell)
		}
	}

	cx := area.Left + gutter + cursorVis - scroll.Left
	cy := area.Top + v.CursorLine - scroll.Top
	if textWidth > 0 && area.Contains(cx, cy) {
		caret := b.GetCell(cx, cy)
		if caret.IsContinuation() || caret.Rune == 0 {
			caret = core.NewStyledCell(' ', p.Caret)
		}
		caret.Style = p.Caret
		b.SetCell(cx, cy, caret)
		b.ShowCursor(cx, cy)
	}
}

// EditorPosition maps a click at (x, y) in the editor area to a line and
// rune column of v, using the scroll position of the last frame. Clicks
// past the end of a line land at its end.
func EditorPosition(area core.ScreenRect, v *EditorView, x, y int) (line, col int, ok bool) {
	if v == nil || !area.Contains(x, y) {
		return 0, 0, false
	}
	count := v.Text.LineCount()
	scroll := Scroll{}
	if v.Scroll != nil {
		scroll = *v.Scroll
	}
	line = min(scroll.Top+y-area.Top, count-1)
	if line < 0 {
		return 0, 0, false
	}

	target := x - area.Left - gutterWidth(count) + scroll.Left
	text := v.Text.Line(line)
	runes := []rune(text)
	for col = 0; col < len(runes); col++ {
		if VisualColumn(text, col+1, v.TabWidth) > target {
			break
		}
	}
	return line, col, true
}

func drawOutput(b backend.Backend, titleArea, area core.ScreenRect, v OutputView, chrome Palette) {
	fillRect(b, titleArea, chrome.Bar)
	title := v.Title
	if title == "" {
		title = "Output"
	}
	drawText(b, titleArea.Left+1, titleArea.Top, titleArea.Right, title, chrome.Bar.Bold())

	p := v.Palette
	fillRect(b, area, p.Text)
	if area.IsEmpty() || v.Text == "" {
		return
	}

	lines := strings.Split(strings.TrimSuffix(v.Text, "\n"), "\n")
	if len(lines) > area.Height() {
		lines = lines[len(lines)-area.Height():]
	}
	for i, line := range lines {
		cells := LineCells(line, DefaultTabWidth, p.Text)
		for x := 0; x < area.Width() && x < len(cells); x++ {
			b.SetCell(area.Left+x, area.Top+i, cells[x])
		}
	}
}

func drawStatus(b backend.Backend, area core.ScreenRect, msg string, isErr bool, p Palette) {
	style := p.Bar
	if isErr {
		style = p.Selection.Bold()
	}
	fillRect(b, area, style)
	drawText(b, area.Left+1, area.Top, area.Right, msg, style)
}

func drawPrompt(b backend.Backend, area core.ScreenRect, v *PromptView, p Palette) {
	if area.IsEmpty() {
		return
	}
	fillRect(b, area, p.Text)
	x := drawText(b, area.Left, area.Top, area.Right, v.Title+": ", p.Bar.Bold())

	// Scroll the input so the cursor stays visible.
	input := []rune(v.Input)
	cursor := min(max(v.Cursor, 0), len(input))
	room := area.Right - x - 1
	start := 0
	for room > 0 && core.StringWidth(string(input[start:cursor])) > room {
		start++
	}
	drawText(b, x, area.Top, area.Right, string(input[start:]), p.Text)
	b.ShowCursor(x+core.StringWidth(string(input[start:cursor])), area.Top)
}

// ModalRect returns the box of modal m centered in screen and the row of
// its OK button.
func ModalRect(screen core.ScreenRect, m *ModalView) (box, ok core.ScreenRect) {
	width := min(max(core.StringWidth(m.Title)+8, 44), screen.Width())
	lines := wrap(m.Message, width-4)
	box = screen.Center(width, len(lines)+4)
	ok = box.Center(6, 1)
	ok.Top = box.Bottom - 2
	ok.Bottom = ok.Top + 1
	return box, ok
}

func drawModal(b backend.Backend, screen core.ScreenRect, m *ModalView, p Palette) {
	box, ok := ModalRect(screen, m)
	if box.Width() < 4 || box.Height() < 4 {
		return
	}
	fillRect(b, box, p.Bar)

	border := p.Bar.Bold()
	right, bottom := box.Right-1, box.Bottom-1
	for x := box.Left + 1; x < right; x++ {
		b.SetCell(x, box.Top, core.NewStyledCell('─', border))
		b.SetCell(x, bottom, core.NewStyledCell('─', border))
	}
	for y := box.Top + 1; y < bottom; y++ {
		b.SetCell(box.Left, y, core.NewStyledCell('│', border))
		b.SetCell(right, y, core.NewStyledCell('│', border))
	}
	b.SetCell(box.Left, box.Top, core.NewStyledCell('┌', border))
	b.SetCell(right, box.Top, core.NewStyledCell('┐', border))
	b.SetCell(box.Left, bottom, core.NewStyledCell('└', border))
	b.SetCell(right, bottom, core.NewStyledCell('┘', border))
	drawText(b, box.Left+2, box.Top, right-1, " "+m.Title+" ", border)

	for i, line := range wrap(m.Message, box.Width()-4) {
		y := box.Top + 1 + i
		if y >= ok.Top {
			break
		}
		drawText(b, box.Left+2, y, right-1, line, p.Bar)
	}

	fillRect(b, ok, p.Selection)
	drawText(b, ok.Left+2, ok.Top, ok.Right, "OK", p.Selection.Bold())
}
