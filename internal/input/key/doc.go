// Package key provides key event types and parsing for key bindings.
//
//   - Key: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press with modifiers
//
// # Key Specifications
//
// Key specifications can be written as "a", "F5", "Ctrl+S", "Alt+Left" or
// in bracketed form such as "<C-s>". Every event has one canonical
// specification, returned by Event.String, which is what key maps store.
package key
