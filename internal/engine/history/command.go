package history

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Target is the buffer a command edits. *buffer.Buffer satisfies it.
type Target interface {
	Insert(loc buffer.Location, text string) error
	Delete(start, end buffer.Location) error
	Replace(start, end buffer.Location, text string) error
	Slice(start, end buffer.Location) string
	TestFlags(mask buffer.Flags) bool
}

var _ Target = (*buffer.Buffer)(nil)

// Kind tags the command variant.
type Kind uint8

const (
	KindInsert Kind = iota
	KindDelete
	KindReplace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindReplace:
		return "replace"
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ReplaceMode selects how a Replace command rewrites its range.
type ReplaceMode uint8

const (
	// ReplaceFill overwrites every character of the range with the
	// replacement character; newlines are kept.
	ReplaceFill ReplaceMode = iota
	// ReplaceReplace swaps the range for the replacement text, which may
	// have any length.
	ReplaceReplace
)

// Direction selects which way Apply runs a command.
type Direction uint8

const (
	Redo Direction = iota
	Undo
)

// Flags are command flags.
type Flags uint8

const (
	// GroupBoundary marks the first and last command of an undo group.
	GroupBoundary Flags = 1 << iota
)

// Command is one reversible edit.
type Command struct {
	kind   Kind
	mode   ReplaceMode
	target Target

	start, end buffer.Location
	text       string // written on Redo
	removed    string // restored on Undo
	inPlace    bool   // Fill that rewrites bytes without moving lines

	cursorBefore buffer.Location
	cursorAfter  buffer.Location
	flags        Flags
}

// NewInsert returns a command inserting text at loc.
func NewInsert(t Target, loc buffer.Location, text string, cursorBefore, cursorAfter buffer.Location) *Command {
	return &Command{
		kind:         KindInsert,
		target:       t,
		start:        loc,
		end:          loc + buffer.Location(len(text)),
		text:         text,
		cursorBefore: cursorBefore,
		cursorAfter:  cursorAfter,
	}
}

// NewDelete returns a command removing [start, end). The removed text is
// captured now.
func NewDelete(t Target, start, end buffer.Location, cursorBefore, cursorAfter buffer.Location) *Command {
	return &Command{
		kind:         KindDelete,
		target:       t,
		start:        start,
		end:          end,
		removed:      t.Slice(start, end),
		cursorBefore: cursorBefore,
		cursorAfter:  cursorAfter,
	}
}

// NewReplace returns a command rewriting [start, end) with text according
// to mode. For ReplaceFill, text is the fill character.
func NewReplace(t Target, mode ReplaceMode, start, end buffer.Location, text string, cursorBefore, cursorAfter buffer.Location) *Command {
	c := &Command{
		kind:         KindReplace,
		mode:         mode,
		target:       t,
		start:        start,
		end:          end,
		removed:      t.Slice(start, end),
		cursorBefore: cursorBefore,
		cursorAfter:  cursorAfter,
	}
	c.text = text
	if mode == ReplaceFill {
		c.text = fill(c.removed, text)
		c.inPlace = len(c.removed) > 0 && len(c.text) == len(c.removed) &&
			!strings.Contains(c.removed, "\n") && !strings.Contains(c.text, "\n")
	}
	return c
}

// fill replaces every rune of s except newlines with ch.
func fill(s, ch string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\n' {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(ch)
	}
	return sb.String()
}

// Kind returns the command variant.
func (c *Command) Kind() Kind { return c.kind }

// Mode returns the replace mode. It is only meaningful for KindReplace.
func (c *Command) Mode() ReplaceMode { return c.mode }

// Range returns the range the command removes or overwrites. For an insert
// it is the range the inserted text occupies.
func (c *Command) Range() buffer.Range { return buffer.Range{Start: c.start, End: c.end} }

// Text returns the text written by Redo.
func (c *Command) Text() string { return c.text }

// Removed returns the text restored by Undo.
func (c *Command) Removed() string { return c.removed }

// CursorBefore returns the cursor to restore on Undo, or InvalidLocation.
func (c *Command) CursorBefore() buffer.Location { return c.cursorBefore }

// CursorAfter returns the cursor to set after Redo, or InvalidLocation.
func (c *Command) CursorAfter() buffer.Location { return c.cursorAfter }

// Flags returns the command flags.
func (c *Command) Flags() Flags { return c.flags }

// SetFlags replaces the command flags.
func (c *Command) SetFlags(f Flags) { c.flags = f }

// IsGroupBoundary returns true if GroupBoundary is set.
func (c *Command) IsGroupBoundary() bool { return c.flags&GroupBoundary != 0 }

// Target returns the buffer the command edits.
func (c *Command) Target() Target { return c.target }

// Apply runs the command forward (Redo) or backward (Undo).
func (c *Command) Apply(d Direction) error {
	if d == Undo {
		return c.undo()
	}
	return c.redo()
}

func (c *Command) redo() error {
	switch c.kind {
	case KindInsert:
		return c.target.Insert(c.start, c.text)
	case KindDelete:
		return c.target.Delete(c.start, c.end)
	case KindReplace:
		if c.inPlace {
			return c.target.Replace(c.start, c.end, c.text)
		}
		return c.swap(c.end, c.text)
	}
	return fmt.Errorf("apply %s: unknown command", c.kind)
}

func (c *Command) undo() error {
	switch c.kind {
	case KindInsert:
		return c.target.Delete(c.start, c.start+buffer.Location(len(c.text)))
	case KindDelete:
		return c.target.Insert(c.start, c.removed)
	case KindReplace:
		if c.inPlace {
			return c.target.Replace(c.start, c.end, c.removed)
		}
		return c.swap(c.start+buffer.Location(len(c.text)), c.removed)
	}
	return fmt.Errorf("undo %s: unknown command", c.kind)
}

// swap deletes [start, end) and inserts text at start.
func (c *Command) swap(end buffer.Location, text string) error {
	if err := c.target.Delete(c.start, end); err != nil {
		return err
	}
	return c.target.Insert(c.start, text)
}

// String describes the command for logs.
func (c *Command) String() string {
	switch c.kind {
	case KindInsert:
		return fmt.Sprintf("insert %d %q", c.start, c.text)
	case KindDelete:
		return fmt.Sprintf("delete [%d:%d)", c.start, c.end)
	}
	return fmt.Sprintf("replace [%d:%d) %q", c.start, c.end, c.text)
}
