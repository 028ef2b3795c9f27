// Package backend provides the screen abstraction the application draws on
// and reads events from.
package backend

import (
	"errors"

	"github.com/dshills/pyide/internal/input/key"
	"github.com/dshills/pyide/internal/renderer/core"
)

// ErrQueueFull is returned by PostEvent when the event queue is full.
var ErrQueueFull = errors.New("backend: event queue full")

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventPaste
	// EventInterrupt carries a function posted from another goroutine to
	// be run on the event loop.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// PasteStart is true at the start of a bracketed paste and false at
	// its end. The pasted text arrives as key events in between.
	PasteStart bool

	// Interrupt is run by the event loop for EventInterrupt.
	Interrupt func()
}

// KeyEvent creates an event for a key press.
func KeyEvent(ev key.Event) Event {
	return Event{Type: EventKey, Key: ev}
}

// InterruptEvent creates an event that runs fn on the event loop.
func InterruptEvent(fn func()) Event {
	return Event{Type: EventInterrupt, Interrupt: fn}
}

// MouseButton represents mouse button state.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current screen dimensions.
	Size() (width, height int)

	// SetCell sets a single cell at the given position.
	// Positions outside the screen are silently ignored.
	SetCell(x, y int, cell core.Cell)

	// GetCell returns the cell at the given position.
	// Returns an empty cell for positions outside the screen.
	GetCell(x, y int) core.Cell

	// Fill fills a rectangular region with the given cell.
	Fill(rect core.ScreenRect, cell core.Cell)

	// Clear clears the entire screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// Sync redraws the whole display, e.g. after a resize.
	Sync()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next event.
	// It returns an event of type EventNone after Shutdown.
	PollEvent() Event

	// PostEvent queues an event without blocking.
	PostEvent(event Event) error

	// Beep produces an audible or visual bell.
	Beep()
}

// NullBackend is an in-memory backend for tests and headless use.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	beeps         int
	events        chan Event
	done          chan struct{}
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.cells = newGrid(b.width, b.height)
	return nil
}

func newGrid(width, height int) [][]core.Cell {
	cells := make([][]core.Cell, height)
	for i := range cells {
		cells[i] = make([]core.Cell, width)
		for j := range cells[i] {
			cells[i][j] = core.EmptyCell()
		}
	}
	return cells
}

// Shutdown makes pending and future PollEvent calls return EventNone.
func (b *NullBackend) Shutdown() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := max(rect.Top, 0); y < rect.Bottom && y < b.height; y++ {
		for x := max(rect.Left, 0); x < rect.Right && x < b.width; x++ {
			b.cells[y][x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.Fill(core.RectFromSize(0, 0, b.height, b.width), core.EmptyCell())
}

func (b *NullBackend) Show() {}
func (b *NullBackend) Sync() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventNone}
	}
}

func (b *NullBackend) PostEvent(event Event) error {
	select {
	case b.events <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (b *NullBackend) Beep() { b.beeps++ }

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int { return b.beeps }

// Row returns the text of row y with trailing blanks removed.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	runes := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		if !c.IsContinuation() {
			runes = append(runes, c.Rune)
		}
	}
	end := len(runes)
	for end > 0 && runes[end-1] == ' ' {
		end--
	}
	return string(runes[:end])
}

// Resize simulates a terminal resize: the screen is cleared and an
// EventResize is queued.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.cells = newGrid(width, height)
	_ = b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
