// Package buffer provides the text store at the heart of the editing engine.
//
// A Buffer holds UTF-8 bytes in a gap buffer that always ends with a single
// sentinel 0 byte, plus an ordered list of line-end offsets. The sentinel
// means there is always a valid location to put a cursor on, even in an
// empty buffer, and the line-end list always has at least one entry whose
// last value equals the buffer length.
//
// Basic usage:
//
//	buf := buffer.New()
//	buf.SetText("hello\nworld", false)
//
//	buf.Insert(5, ",")              // "hello,\nworld"
//	buf.Delete(0, 1)                // "ello,\nworld"
//	end := buf.LinePos(0, buffer.LineLastNonCR)
//
// Location Types:
//
//   - Location: a signed byte offset; -1 (InvalidLocation) means unset
//   - Range: a half-open [Start, End) pair of locations
//
// Notifications:
//
// Every mutation first broadcasts a PreBufferChange message with the range
// about to change, then performs the change, then broadcasts one of
// TextAdded, TextDeleted, TextChanged or Loaded. Messages go to the Notifier
// supplied with WithNotifier. Handlers must not mutate the buffer that is
// notifying them.
//
// Range trackers (see RangeTracker) are adjusted synchronously inside Insert
// and Delete, before the post-change message is sent.
//
// Thread Safety:
//
// A Buffer is not safe for concurrent use. All mutation and reads happen on
// the goroutine that drives the editor.
package buffer
