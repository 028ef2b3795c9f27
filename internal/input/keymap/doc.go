// Package keymap maps key presses to editor actions.
//
// The default keymap binds the menu commands to their usual shortcuts
// (Ctrl+O, Ctrl+S, F5 and so on) and the editing keys to editor actions.
// Users can layer their own bindings on top from the [keymap] table of the
// configuration file:
//
//	[keymap]
//	"Ctrl+R" = "none"       # remove a default binding
//	"F6"     = "run.run"
//
// Key specifications are normalized before they are stored, so lookups
// compare canonical forms rather than the spelling used in configuration.
package keymap
