// Package key defines keyboard events as the modal engine consumes them.
//
//   - Key: a special key, or KeyRune for characters
//   - Modifier: Shift, Ctrl, Alt and Meta as a bitmask
//   - Event: one key press
//
// # Notation
//
// Keys can be written in Vim notation, which ParseKeys turns into events
// and FormatKeys produces:
//
//	dw            two rune events
//	<Esc>         Escape
//	<C-r>         Ctrl+r
//	<S-F8>        Shift+F8
//	ihello<Esc>   a whole insert session
//
// A '<' that does not open a known key name is taken literally; write <lt>
// to be explicit.
package key
