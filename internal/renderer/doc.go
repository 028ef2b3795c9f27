// Package renderer draws the editor screen.
//
// The application describes what is visible in a Frame: menu bar, tab bar,
// the active tab's text, the output pane, the status line and at most one
// prompt or modal. Render lays the frame out for the backend's size and
// draws it. The renderer holds no state of its own; scroll positions live
// in Scroll values owned by the caller.
//
// Layout, top to bottom:
//
//	menu bar      1 row
//	tab bar       1 row
//	editor        remaining rows
//	output title  1 row
//	output pane   a third of the body
//	status line   1 row
package renderer
