package key

import (
	"fmt"
	"time"
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
	Timestamp time.Time
}

// NewRuneEvent returns a character event stamped with the current time.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods, Timestamp: time.Now()}
}

// NewSpecialEvent returns a special key event stamped with the current time.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods, Timestamp: time.Now()}
}

// IsRune returns true for character events.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for printable characters typed without Ctrl, Alt or
// Meta.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.IsModified() && unicode.IsPrint(e.Rune)
}

// IsModified reports Ctrl, Alt or Meta. Shift on a character is part of
// the character and does not count.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Modifiers != ModNone
}

// Is returns true for the special key k with exactly mods held.
func (e Event) Is(k Key, mods Modifier) bool {
	return e.Key == k && e.Modifiers == mods
}

// IsCtrl returns true for Ctrl+r (any Shift state is ignored).
func (e Event) IsCtrl(r rune) bool {
	return e.IsRune() && e.Modifiers.Without(ModShift) == ModCtrl && unicode.ToLower(e.Rune) == unicode.ToLower(r)
}

// IsEscape returns true for an unmodified Escape.
func (e Event) IsEscape() bool { return e.Is(KeyEscape, ModNone) }

// IsEnter returns true for an unmodified Enter.
func (e Event) IsEnter() bool { return e.Is(KeyEnter, ModNone) }

// Equals compares key, rune and modifiers, ignoring timestamps.
func (e Event) Equals(o Event) bool {
	return e.Key == o.Key && e.Rune == o.Rune && e.Modifiers == o.Modifiers
}

// String returns the Vim notation of the event: "a", "<Esc>", "<C-r>".
func (e Event) String() string {
	if e.IsRune() && !e.IsModified() {
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return " "
		}
		return string(e.Rune)
	}

	mods := e.Modifiers
	name := e.Key.String()
	if e.IsRune() {
		mods = mods.Without(ModShift)
		name = string(e.Rune)
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		}
	}
	return "<" + mods.String() + name + ">"
}

// GoString implements fmt.GoStringer.
func (e Event) GoString() string {
	return fmt.Sprintf("key.Event{Key: %s, Rune: %q, Modifiers: %q}", e.Key, e.Rune, e.Modifiers.String())
}
