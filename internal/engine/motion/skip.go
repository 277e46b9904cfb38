package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// Skip moves *loc in dir while the byte under it matches pred. It returns
// true if it moved. *loc may end one step outside the buffer.
func Skip(t Text, pred Predicate, loc *buffer.Location, dir buffer.Direction) bool {
	if !t.Valid(*loc) {
		return false
	}
	moved := false
	for t.Valid(*loc) && pred(t.ByteAt(*loc)) {
		*loc += dir.Step()
		moved = true
	}
	return moved
}

// SkipOne moves *loc one step in dir if the byte under it matches pred.
func SkipOne(t Text, pred Predicate, loc *buffer.Location, dir buffer.Direction) bool {
	if !t.Valid(*loc) || !pred(t.ByteAt(*loc)) {
		return false
	}
	*loc += dir.Step()
	return true
}

// SkipNot moves *loc in dir while the byte under it does not match pred.
func SkipNot(t Text, pred Predicate, loc *buffer.Location, dir buffer.Direction) bool {
	return Skip(t, func(c byte) bool { return !pred(c) }, loc, dir)
}
