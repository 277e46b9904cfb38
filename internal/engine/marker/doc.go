// Package marker keeps annotated ranges (diagnostics, search hits) attached
// to buffer text.
//
// Markers live in an arena addressed by stable IDs. An ordered index keyed
// by start offset holds IDs, so a marker can be found by position and by ID
// without shared ownership. An Index implements buffer.RangeTracker: attach
// it with buf.AddTracker and every Insert and Delete shifts, grows or
// shrinks the markers it covers before the text moves.
package marker
