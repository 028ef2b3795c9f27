package renderer

// Scroll is the position of a view's top-left corner in its content.
type Scroll struct {
	Top  int // first visible line
	Left int // first visible column
}

// Reveal scrolls the minimum amount needed to bring (line, col) into a
// window of the given size.
func (s *Scroll) Reveal(line, col, height, width int) {
	if height > 0 {
		switch {
		case line < s.Top:
			s.Top = line
		case line >= s.Top+height:
			s.Top = line - height + 1
		}
	}
	if width > 0 {
		switch {
		case col < s.Left:
			s.Left = col
		case col >= s.Left+width:
			s.Left = col - width + 1
		}
	}
	s.Top = max(s.Top, 0)
	s.Left = max(s.Left, 0)
}
