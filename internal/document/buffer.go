package document

import "strings"

// Point is a cursor position in runes: zero-based line and column.
type Point struct {
	Line int
	Col  int
}

// Buffer is an in-memory text buffer with a single cursor.
//
// Text is stored as lines of runes. Joining the lines with "\n" restores
// the exact text the buffer was seeded with, so content round-trips
// byte-for-byte (carriage returns stay part of their line).
type Buffer struct {
	lines    [][]rune
	cursor   Point
	revision uint64
}

// NewBuffer creates a buffer holding text with the cursor at the start.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.load(text)
	return b
}

func (b *Buffer) load(text string) {
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, p := range parts {
		b.lines[i] = []rune(p)
	}
	b.cursor = Point{}
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// SetText replaces the whole content and moves the cursor to the start.
func (b *Buffer) SetText(text string) {
	b.load(text)
	b.revision++
}

// Revision increases on every modification.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// LineCount returns the number of lines (at least one).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Point {
	return b.cursor
}

// SetCursor moves the cursor, clamping to the buffer bounds.
func (b *Buffer) SetCursor(p Point) {
	b.cursor = b.clamp(p)
}

func (b *Buffer) clamp(p Point) Point {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	return p
}

// Insert inserts s at the cursor and leaves the cursor after it.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.splitLine()
		}
		b.insertRunes([]rune(part))
	}
	b.revision++
}

// InsertRune inserts a single rune at the cursor.
func (b *Buffer) InsertRune(r rune) {
	if r == '\n' {
		b.Newline()
		return
	}
	b.insertRunes([]rune{r})
	b.revision++
}

// Newline splits the current line at the cursor.
func (b *Buffer) Newline() {
	b.splitLine()
	b.revision++
}

func (b *Buffer) insertRunes(rs []rune) {
	if len(rs) == 0 {
		return
	}
	line := b.lines[b.cursor.Line]
	col := b.cursor.Col
	out := make([]rune, 0, len(line)+len(rs))
	out = append(out, line[:col]...)
	out = append(out, rs...)
	out = append(out, line[col:]...)
	b.lines[b.cursor.Line] = out
	b.cursor.Col += len(rs)
}

func (b *Buffer) splitLine() {
	line := b.lines[b.cursor.Line]
	head := append([]rune(nil), line[:b.cursor.Col]...)
	tail := append([]rune(nil), line[b.cursor.Col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:b.cursor.Line]...)
	lines = append(lines, head, tail)
	lines = append(lines, b.lines[b.cursor.Line+1:]...)
	b.lines = lines
	b.cursor = Point{Line: b.cursor.Line + 1}
}

// Backspace deletes the rune before the cursor, joining lines at column 0.
// It reports whether anything was deleted.
func (b *Buffer) Backspace() bool {
	c := b.cursor
	switch {
	case c.Col > 0:
		line := b.lines[c.Line]
		b.lines[c.Line] = append(line[:c.Col-1:c.Col-1], line[c.Col:]...)
		b.cursor.Col--
	case c.Line > 0:
		prev := b.lines[c.Line-1]
		b.cursor = Point{Line: c.Line - 1, Col: len(prev)}
		b.joinNext(c.Line - 1)
	default:
		return false
	}
	b.revision++
	return true
}

// Delete deletes the rune under the cursor, joining lines at end of line.
func (b *Buffer) Delete() bool {
	c := b.cursor
	line := b.lines[c.Line]
	switch {
	case c.Col < len(line):
		b.lines[c.Line] = append(line[:c.Col:c.Col], line[c.Col+1:]...)
	case c.Line < len(b.lines)-1:
		b.joinNext(c.Line)
	default:
		return false
	}
	b.revision++
	return true
}

func (b *Buffer) joinNext(i int) {
	joined := append(append([]rune(nil), b.lines[i]...), b.lines[i+1]...)
	b.lines[i] = joined
	b.lines = append(b.lines[:i+1], b.lines[i+2:]...)
}

// MoveLeft moves one rune left, wrapping to the previous line.
func (b *Buffer) MoveLeft() {
	if b.cursor.Col > 0 {
		b.cursor.Col--
	} else if b.cursor.Line > 0 {
		b.cursor.Line--
		b.cursor.Col = len(b.lines[b.cursor.Line])
	}
}

// MoveRight moves one rune right, wrapping to the next line.
func (b *Buffer) MoveRight() {
	if b.cursor.Col < len(b.lines[b.cursor.Line]) {
		b.cursor.Col++
	} else if b.cursor.Line < len(b.lines)-1 {
		b.cursor.Line++
		b.cursor.Col = 0
	}
}

// MoveUp moves n lines up.
func (b *Buffer) MoveUp(n int) {
	b.cursor = b.clamp(Point{Line: b.cursor.Line - n, Col: b.cursor.Col})
}

// MoveDown moves n lines down.
func (b *Buffer) MoveDown(n int) {
	b.cursor = b.clamp(Point{Line: b.cursor.Line + n, Col: b.cursor.Col})
}

// Home moves to the start of the line.
func (b *Buffer) Home() {
	b.cursor.Col = 0
}

// End moves to the end of the line.
func (b *Buffer) End() {
	b.cursor.Col = len(b.lines[b.cursor.Line])
}
