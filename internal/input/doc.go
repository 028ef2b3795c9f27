// Package input turns user input into editor actions.
//
// An Action names a command ("file.save", "run.run") plus its arguments
// and where it came from. Key presses are parsed and normalized by the key
// subpackage, mapped to actions by keymap, and the menu bar offers the
// same actions by title in menu.
package input
