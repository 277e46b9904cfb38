package buffer

import "strings"

// Flags records file and state attributes of a buffer.
type Flags uint32

const (
	// FlagStrippedCR is set when '\r' bytes were removed on load; Save
	// restores "\r\n" line endings.
	FlagStrippedCR Flags = 1 << iota

	// FlagTerminatedWithZero is set when the sentinel 0 was appended by the
	// buffer rather than read from the file.
	FlagTerminatedWithZero

	// FlagReadOnly refuses Save.
	FlagReadOnly

	// FlagLocked refuses Save and every command issued through history.
	FlagLocked

	// FlagDirty is set by every mutation and cleared by load and save.
	FlagDirty

	flagReserved

	// FlagHasWarnings and FlagHasErrors are set by diagnostic collaborators.
	FlagHasWarnings
	FlagHasErrors

	// FlagDefaultBuffer marks the scratch buffer created with a session.
	FlagDefaultBuffer
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagStrippedCR, "StrippedCR"},
	{FlagTerminatedWithZero, "TerminatedWithZero"},
	{FlagReadOnly, "ReadOnly"},
	{FlagLocked, "Locked"},
	{FlagDirty, "Dirty"},
	{FlagHasWarnings, "HasWarnings"},
	{FlagHasErrors, "HasErrors"},
	{FlagDefaultBuffer, "DefaultBuffer"},
}

// Has returns true if all bits of mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// String returns the set flag names joined by '|'.
func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Type distinguishes ordinary buffers from those owned by helper UIs.
type Type uint8

const (
	TypeNormal Type = iota
	TypeSearch
	TypeRepl
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeSearch:
		return "search"
	case TypeRepl:
		return "repl"
	default:
		return "normal"
	}
}
