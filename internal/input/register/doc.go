// Package register stores yanked and deleted text.
//
// Registers follow Vim:
//
//	"        unnamed, written by every yank and delete
//	0        last yank
//	1-9      line deletes, shifted down on each new one
//	-        small (within one line) deletes
//	a-z      named; A-Z appends to the lowercase register
//	_        black hole, discards writes and reads empty
//	. % # : /  read-only, written by the engine
//	+ *      proxied to a Clipboard
//
// A Store belongs to one editor session and is not safe for concurrent use.
package register
