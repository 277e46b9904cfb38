// Package history provides reversible edits and undo/redo stacks.
//
// A Command is a closed tagged variant: Insert, Delete or Replace. Each one
// records the range it touches, the text it removes (captured when the
// command is built) and the text it writes, plus the cursor positions to
// restore before and after. Apply(Redo) performs the edit and Apply(Undo)
// reverses it exactly.
//
//	h := history.New(history.WithMaxEntries(1000))
//	cmd := history.NewInsert(buf, 0, "hello", 0, 5)
//	cursor, err := h.AddCommand(cmd)
//
// # Groups
//
// Commands added between BeginGroup and EndGroup form one undo unit. The
// first and last command of the unit carry GroupBoundary; Undo and Redo keep
// popping until the matching boundary is consumed.
//
//	h.BeginGroup()
//	h.AddCommand(a)
//	h.AddCommand(b)
//	h.EndGroup()
//	h.Undo() // reverts b then a
package history
