// Package menu models the editor's menu bar: the File, Run and Theme groups
// with their items, which item is highlighted, and where each group title
// sits on screen.
package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/pyide/internal/input"
	"github.com/dshills/pyide/internal/input/keymap"
)

// Item is one entry of a menu group.
type Item struct {
	// Label is the text shown in the menu.
	Label string

	// Action is the command the item runs.
	Action string

	// Name is passed as the action's Name argument, e.g. a theme name.
	Name string

	// Shortcut is the first key bound to the action, if any.
	Shortcut string
}

// ToAction returns the action the item runs.
func (i Item) ToAction() input.Action {
	return input.NewAction(i.Action, input.SourceMenu).WithName(i.Name)
}

// Group is a titled list of items.
type Group struct {
	Title string
	Items []Item
}

// Span is a half-open range of screen columns.
type Span struct {
	Start, End int
}

// titlePadding is the number of columns around each group title.
const titlePadding = 1

// Menu is the menu bar state. The zero value is not usable; use Build.
type Menu struct {
	groups   []Group
	open     int
	selected int
}

// Build creates the menu bar. themes lists every theme by name, the
// built-in light and dark themes first; km supplies shortcut hints and may
// be nil.
func Build(themes []string, km *keymap.Keymap) *Menu {
	groups := []Group{
		{Title: "File", Items: []Item{
			{Label: "Open", Action: "file.open"},
			{Label: "Save", Action: "file.save"},
			{Label: "Save As", Action: "file.saveAs"},
			{Label: "New Tab", Action: "file.new"},
			{Label: "Close Tab", Action: "file.close"},
			{Label: "Exit", Action: "app.exit"},
		}},
		{Title: "Run", Items: []Item{
			{Label: "Run", Action: "run.run"},
		}},
	}

	themeGroup := Group{Title: "Theme"}
	for _, name := range themes {
		item := Item{Label: titleCase(name), Action: "theme.apply", Name: name}
		switch name {
		case "light":
			item = Item{Label: "Light", Action: "theme.light"}
		case "dark":
			item = Item{Label: "Dark", Action: "theme.dark"}
		}
		themeGroup.Items = append(themeGroup.Items, item)
	}
	groups = append(groups, themeGroup)

	if km != nil {
		for gi := range groups {
			for ii := range groups[gi].Items {
				item := &groups[gi].Items[ii]
				if item.Name != "" {
					continue
				}
				if keys := km.KeysFor(item.Action); len(keys) > 0 {
					item.Shortcut = keys[0]
				}
			}
		}
	}

	return &Menu{groups: groups, open: -1}
}

func titleCase(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Groups returns the menu groups.
func (m *Menu) Groups() []Group {
	return m.groups
}

// IsOpen reports whether a group is dropped down.
func (m *Menu) IsOpen() bool {
	return m.open >= 0
}

// OpenIndex returns the open group, or -1.
func (m *Menu) OpenIndex() int {
	return m.open
}

// Selected returns the highlighted item of the open group.
func (m *Menu) Selected() int {
	return m.selected
}

// Open drops down group i with its first item highlighted.
func (m *Menu) Open(i int) {
	if i < 0 || i >= len(m.groups) {
		return
	}
	m.open = i
	m.selected = 0
}

// Close closes the menu.
func (m *Menu) Close() {
	m.open = -1
	m.selected = 0
}

// Left opens the group to the left, wrapping around.
func (m *Menu) Left() {
	if m.IsOpen() {
		m.Open((m.open - 1 + len(m.groups)) % len(m.groups))
	}
}

// Right opens the group to the right, wrapping around.
func (m *Menu) Right() {
	if m.IsOpen() {
		m.Open((m.open + 1) % len(m.groups))
	}
}

// Up highlights the previous item, wrapping around.
func (m *Menu) Up() {
	if n := m.itemCount(); n > 0 {
		m.selected = (m.selected - 1 + n) % n
	}
}

// Down highlights the next item, wrapping around.
func (m *Menu) Down() {
	if n := m.itemCount(); n > 0 {
		m.selected = (m.selected + 1) % n
	}
}

// Select highlights item i of the open group.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= m.itemCount() {
		return false
	}
	m.selected = i
	return true
}

func (m *Menu) itemCount() int {
	if !m.IsOpen() {
		return 0
	}
	return len(m.groups[m.open].Items)
}

// Current returns the highlighted item.
func (m *Menu) Current() (Item, bool) {
	if m.itemCount() == 0 {
		return Item{}, false
	}
	return m.groups[m.open].Items[m.selected], true
}

// Activate closes the menu and returns the highlighted item's action.
func (m *Menu) Activate() (input.Action, bool) {
	item, ok := m.Current()
	m.Close()
	if !ok {
		return input.Action{}, false
	}
	return item.ToAction(), true
}

// TitleSpans returns the columns occupied by each group title, laid out
// left to right from column 0 with padding on both sides.
func (m *Menu) TitleSpans() []Span {
	spans := make([]Span, len(m.groups))
	x := 0
	for i, g := range m.groups {
		w := uniseg.StringWidth(g.Title) + 2*titlePadding
		spans[i] = Span{Start: x, End: x + w}
		x += w
	}
	return spans
}

// TitleAt returns the group whose title covers column x.
func (m *Menu) TitleAt(x int) (int, bool) {
	for i, s := range m.TitleSpans() {
		if x >= s.Start && x < s.End {
			return i, true
		}
	}
	return -1, false
}

// ItemLabel formats an item for a drop-down of the given inner width, with
// the shortcut right-aligned.
func ItemLabel(item Item, width int) string {
	label := " " + item.Label
	if item.Shortcut == "" {
		return label
	}
	gap := width - uniseg.StringWidth(label) - uniseg.StringWidth(item.Shortcut) - 1
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + item.Shortcut + " "
}

// DropdownWidth returns the inner width needed to show every item of
// group g.
func DropdownWidth(g Group) int {
	w := 0
	for _, item := range g.Items {
		n := uniseg.StringWidth(item.Label) + 2
		if item.Shortcut != "" {
			n += uniseg.StringWidth(item.Shortcut) + 2
		}
		w = max(w, n)
	}
	return w
}
