package mode

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
)

// ErrNoWindow is returned when the host has no active window to edit.
var ErrNoWindow = errors.New("no active window")

// Base implements the parts of Mode every mode shares. Embed it and call
// NewBase from the mode's constructor.
type Base struct {
	host    Host
	current EditorMode
	log     *zap.Logger

	insertBegin buffer.Location
	visualBegin buffer.Location
	visualEnd   buffer.Location

	// ctrlPrefix is set after Ctrl+i while waiting for the second key.
	ctrlPrefix bool
}

// NewBase returns a Base editing through host.
func NewBase(host Host, log *zap.Logger) Base {
	if log == nil {
		log = zap.NewNop()
	}
	return Base{host: host, current: None, log: log}
}

// Host returns the host.
func (b *Base) Host() Host { return b.host }

// Log returns the mode's logger.
func (b *Base) Log() *zap.Logger { return b.log }

// Window returns the host's active window, or nil.
func (b *Base) Window() Window { return b.host.Window() }

// Buffer returns the active window's buffer, or nil.
func (b *Base) Buffer() *buffer.Buffer {
	if w := b.host.Window(); w != nil {
		return w.Buffer()
	}
	return nil
}

// History returns the history of the active buffer, or nil.
func (b *Base) History() *history.History {
	if buf := b.Buffer(); buf != nil {
		return b.host.History(buf)
	}
	return nil
}

// Cursor returns the active window's cursor.
func (b *Base) Cursor() buffer.Location {
	if w := b.host.Window(); w != nil {
		return w.Cursor()
	}
	return buffer.InvalidLocation
}

// SetCursor moves the active window's cursor.
func (b *Base) SetCursor(loc buffer.Location) {
	if w := b.host.Window(); w != nil {
		w.SetCursor(loc)
	}
}

// EditorMode returns the editing state.
func (b *Base) EditorMode() EditorMode { return b.current }

// SetEditorMode changes the editing state.
func (b *Base) SetEditorMode(m EditorMode) {
	if m != b.current {
		b.log.Debug("editor mode", zap.Stringer("from", b.current), zap.Stringer("to", m))
	}
	b.current = m
}

// VisualRange returns the selection recorded by the mode.
func (b *Base) VisualRange() buffer.Range {
	return buffer.Range{Start: b.visualBegin, End: b.visualEnd}
}

// SetVisualRange records the selection.
func (b *Base) SetVisualRange(r buffer.Range) {
	b.visualBegin, b.visualEnd = r.Start, r.End
}

// InsertBegin returns where the current insert session started.
func (b *Base) InsertBegin() buffer.Location { return b.insertBegin }

// SetInsertBegin records where an insert session starts.
func (b *Base) SetInsertBegin(loc buffer.Location) { b.insertBegin = loc }

// AddCommand runs cmd through the active buffer's history and moves the
// cursor to the command's cursor-after location. Commands on a locked
// buffer are refused with history.ErrLocked.
func (b *Base) AddCommand(cmd *history.Command) error {
	w := b.host.Window()
	if w == nil {
		return ErrNoWindow
	}
	cursor, err := b.host.History(w.Buffer()).AddCommand(cmd)
	if err != nil {
		b.log.Debug("command refused", zap.Stringer("cmd", cmd), zap.Error(err))
		return err
	}
	if cursor != buffer.InvalidLocation {
		w.SetCursor(cursor)
	}
	return nil
}

// Undo reverts the last command or group and restores its cursor.
func (b *Base) Undo() error {
	return b.step(true)
}

// Redo re-applies the last undone command or group.
func (b *Base) Redo() error {
	return b.step(false)
}

func (b *Base) step(undo bool) error {
	w := b.host.Window()
	if w == nil {
		return ErrNoWindow
	}
	h := b.host.History(w.Buffer())

	var (
		cursor buffer.Location
		err    error
	)
	if undo {
		cursor, err = h.Undo()
	} else {
		cursor, err = h.Redo()
	}
	if cursor != buffer.InvalidLocation {
		w.SetCursor(cursor)
	}
	return err
}
