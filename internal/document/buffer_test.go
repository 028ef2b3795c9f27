package document

import "testing"

func TestBuffer_RoundTrip(t *testing.T) {
	tests := []string{
		"",
		"print(\"hi\")",
		"print(\"hi\")\n",
		"a\n\nb\n\n",
		"windows\r\nline endings\r\n",
		"ünïcödé ✓ 日本語\n",
	}

	for _, text := range tests {
		b := NewBuffer(text)
		if got := b.Text(); got != text {
			t.Errorf("round trip of %q gave %q", text, got)
		}
	}
}

func TestBuffer_Insert(t *testing.T) {
	b := NewBuffer("")

	b.Insert("def f():\n    return 1")
	if got := b.Text(); got != "def f():\n    return 1" {
		t.Errorf("Text = %q", got)
	}
	if c := b.Cursor(); c != (Point{Line: 1, Col: 12}) {
		t.Errorf("cursor = %+v", c)
	}
	if b.LineCount() != 2 {
		t.Errorf("LineCount = %d", b.LineCount())
	}
}

func TestBuffer_InsertMiddle(t *testing.T) {
	b := NewBuffer("helo")
	b.SetCursor(Point{Line: 0, Col: 3})
	b.InsertRune('l')
	if b.Text() != "hello" {
		t.Errorf("Text = %q", b.Text())
	}

	b.Newline()
	if b.Text() != "hell\no" {
		t.Errorf("Text after newline = %q", b.Text())
	}
	if c := b.Cursor(); c != (Point{Line: 1, Col: 0}) {
		t.Errorf("cursor = %+v", c)
	}
}

func TestBuffer_Backspace(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(Point{Line: 1, Col: 0})

	if !b.Backspace() {
		t.Fatal("expected backspace to join lines")
	}
	if b.Text() != "abcd" {
		t.Errorf("Text = %q", b.Text())
	}
	if c := b.Cursor(); c != (Point{Line: 0, Col: 2}) {
		t.Errorf("cursor = %+v", c)
	}

	b.Backspace()
	if b.Text() != "acd" {
		t.Errorf("Text = %q", b.Text())
	}

	b.SetCursor(Point{})
	if b.Backspace() {
		t.Error("backspace at start should do nothing")
	}
}

func TestBuffer_Delete(t *testing.T) {
	b := NewBuffer("ab\ncd")
	b.SetCursor(Point{Line: 0, Col: 2})

	if !b.Delete() {
		t.Fatal("expected delete to join lines")
	}
	if b.Text() != "abcd" {
		t.Errorf("Text = %q", b.Text())
	}

	b.SetCursor(Point{Line: 0, Col: 4})
	if b.Delete() {
		t.Error("delete at end should do nothing")
	}
}

func TestBuffer_Movement(t *testing.T) {
	b := NewBuffer("short\na much longer line\nx")

	b.SetCursor(Point{Line: 1, Col: 10})
	b.MoveUp(1)
	if c := b.Cursor(); c != (Point{Line: 0, Col: 5}) {
		t.Errorf("MoveUp clamp: %+v", c)
	}

	b.MoveRight()
	if c := b.Cursor(); c != (Point{Line: 1, Col: 0}) {
		t.Errorf("MoveRight wrap: %+v", c)
	}

	b.MoveLeft()
	if c := b.Cursor(); c != (Point{Line: 0, Col: 5}) {
		t.Errorf("MoveLeft wrap: %+v", c)
	}

	b.MoveDown(10)
	if c := b.Cursor(); c.Line != 2 {
		t.Errorf("MoveDown clamp: %+v", c)
	}

	b.SetCursor(Point{Line: 1, Col: 3})
	b.End()
	if c := b.Cursor(); c.Col != len([]rune("a much longer line")) {
		t.Errorf("End: %+v", c)
	}
	b.Home()
	if c := b.Cursor(); c.Col != 0 {
		t.Errorf("Home: %+v", c)
	}
}

func TestBuffer_RevisionTracksEdits(t *testing.T) {
	b := NewBuffer("x")
	r0 := b.Revision()

	b.MoveRight()
	if b.Revision() != r0 {
		t.Error("cursor movement must not change revision")
	}

	b.InsertRune('y')
	if b.Revision() == r0 {
		t.Error("insert must change revision")
	}
}
