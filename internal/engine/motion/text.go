package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// Text is the read-only view of a buffer the motions need.
// *buffer.Buffer satisfies it.
type Text interface {
	ByteAt(loc buffer.Location) byte
	Valid(loc buffer.Location) bool
	Clamp(loc buffer.Location) buffer.Location
	MotionBegin(loc *buffer.Location) bool
	LinePos(loc buffer.Location, kind buffer.LineLocation) buffer.Location
	EndLocation() buffer.Location
	Slice(start, end buffer.Location) string
}

var _ Text = (*buffer.Buffer)(nil)

// Class selects the word granularity of a word motion.
type Class uint8

const (
	// Word is a run of letters, digits and underscores.
	Word Class = iota
	// WORD is a run of non-blank characters.
	WORD
)

// String returns the class name.
func (c Class) String() string {
	if c == WORD {
		return "WORD"
	}
	return "word"
}

func (c Class) isWord() Predicate {
	if c == WORD {
		return IsWORDChar
	}
	return IsWordChar
}

func (c Class) isWordOrSep() Predicate {
	if c == WORD {
		return IsWORDOrSep
	}
	return IsWordOrSep
}
