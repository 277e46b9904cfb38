package history

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Errors returned by History.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
	ErrLocked        = errors.New("buffer is locked")
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// History holds the undo and redo stacks of one buffer.
type History struct {
	undo []*Command
	redo []*Command

	// groups holds the undo stack length at each open BeginGroup.
	groups []int

	maxEntries int
	log        *zap.Logger
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries bounds the undo stack. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		h.maxEntries = max(0, n)
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.log = l.Named("history")
		}
	}
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// AddCommand refuses commands on a locked buffer. Otherwise it runs cmd,
// pushes it on the undo stack and discards the redo stack. It returns the
// command's cursor-after location, InvalidLocation when there is none.
func (h *History) AddCommand(cmd *Command) (buffer.Location, error) {
	if cmd.target.TestFlags(buffer.FlagLocked) {
		h.log.Debug("command refused on locked buffer", zap.Stringer("cmd", cmd))
		return buffer.InvalidLocation, ErrLocked
	}
	if err := cmd.Apply(Redo); err != nil {
		h.log.Debug("command failed", zap.Stringer("cmd", cmd), zap.Error(err))
		return buffer.InvalidLocation, err
	}

	h.undo = append(h.undo, cmd)
	h.redo = nil
	if len(h.groups) == 0 {
		h.trim()
	}
	return cmd.cursorAfter, nil
}

// Undo reverts the last command, or the whole group it closes. It returns
// the cursor to restore, InvalidLocation when the commands carry none.
func (h *History) Undo() (buffer.Location, error) {
	if len(h.undo) == 0 {
		return buffer.InvalidLocation, ErrNothingToUndo
	}
	return h.step(&h.undo, &h.redo, Undo)
}

// Redo re-applies the last undone command or group.
func (h *History) Redo() (buffer.Location, error) {
	if len(h.redo) == 0 {
		return buffer.InvalidLocation, ErrNothingToRedo
	}
	return h.step(&h.redo, &h.undo, Redo)
}

// step pops from src and pushes to dst until the group boundary toggles back.
func (h *History) step(src, dst *[]*Command, d Direction) (buffer.Location, error) {
	cursor := buffer.InvalidLocation
	inGroup := false
	for {
		cmd := (*src)[len(*src)-1]
		if err := cmd.Apply(d); err != nil {
			h.log.Debug("history step failed", zap.Stringer("cmd", cmd), zap.Error(err))
			return cursor, err
		}
		if cmd.IsGroupBoundary() {
			inGroup = !inGroup
		}

		at := cmd.cursorAfter
		if d == Undo {
			at = cmd.cursorBefore
		}
		if at != buffer.InvalidLocation {
			cursor = at
		}

		*src = (*src)[:len(*src)-1]
		*dst = append(*dst, cmd)
		if len(*src) == 0 || !inGroup {
			return cursor, nil
		}
	}
}

// Groups

// BeginGroup starts collecting commands into one undo unit. Groups nest;
// only the outermost EndGroup closes the unit.
func (h *History) BeginGroup() {
	h.groups = append(h.groups, len(h.undo))
}

// EndGroup closes the current group. A group of one command is a plain
// command; an empty group leaves no trace.
func (h *History) EndGroup() {
	if len(h.groups) == 0 {
		return
	}
	start := h.groups[len(h.groups)-1]
	h.groups = h.groups[:len(h.groups)-1]
	if len(h.groups) > 0 {
		return
	}

	cmds := h.undo[min(start, len(h.undo)):]
	switch len(cmds) {
	case 0:
	case 1:
		cmds[0].flags &^= GroupBoundary
	default:
		cmds[0].flags |= GroupBoundary
		cmds[len(cmds)-1].flags |= GroupBoundary
	}
	h.trim()
}

// CancelGroup closes the innermost open group and reverts the commands
// added since its BeginGroup. Enclosing groups stay open with their earlier
// commands intact. The reverted commands are not redoable.
func (h *History) CancelGroup() error {
	if len(h.groups) == 0 {
		return nil
	}
	start := h.groups[len(h.groups)-1]
	h.groups = h.groups[:len(h.groups)-1]
	for len(h.undo) > start {
		cmd := h.undo[len(h.undo)-1]
		h.undo = h.undo[:len(h.undo)-1]
		if err := cmd.Apply(Undo); err != nil {
			return err
		}
	}
	return nil
}

// InGroup returns true while a group is open.
func (h *History) InGroup() bool {
	return len(h.groups) > 0
}

// trim drops the oldest entries beyond maxEntries, whole groups at a time.
func (h *History) trim() {
	if h.maxEntries == 0 {
		return
	}
	for len(h.undo) > h.maxEntries {
		drop := 1
		if h.undo[0].IsGroupBoundary() {
			for drop < len(h.undo) && !h.undo[drop].IsGroupBoundary() {
				drop++
			}
			drop = min(drop+1, len(h.undo))
		}
		h.undo = h.undo[drop:]
	}
}

// State

// CanUndo returns true if there is something to undo.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if there is something to redo.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoCount returns the number of commands on the undo stack.
func (h *History) UndoCount() int {
	return len(h.undo)
}

// RedoCount returns the number of commands on the redo stack.
func (h *History) RedoCount() int {
	return len(h.redo)
}

// Clear empties both stacks and closes any open group.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.groups = nil
}
