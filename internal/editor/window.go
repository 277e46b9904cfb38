package editor

import (
	"slices"

	"github.com/google/uuid"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/mode"
)

// Window shows one buffer with a cursor. It remembers the cursor of each
// buffer it has shown, so switching back restores the position.
type Window struct {
	buf    *buffer.Buffer
	cursor buffer.Location
	last   map[uuid.UUID]buffer.Location
}

var _ mode.Window = (*Window)(nil)

func newWindow(b *buffer.Buffer) *Window {
	return &Window{buf: b, last: make(map[uuid.UUID]buffer.Location)}
}

// Buffer returns the shown buffer.
func (w *Window) Buffer() *buffer.Buffer { return w.buf }

// SetBuffer shows b at the cursor it last had in this window.
func (w *Window) SetBuffer(b *buffer.Buffer) {
	if b == w.buf {
		return
	}
	if w.buf != nil {
		w.last[w.buf.ID()] = w.cursor
	}
	w.buf = b
	w.cursor = b.Clamp(w.last[b.ID()])
}

// Cursor returns the cursor.
func (w *Window) Cursor() buffer.Location { return w.cursor }

// SetCursor moves the cursor, clamped to the buffer.
func (w *Window) SetCursor(loc buffer.Location) {
	w.cursor = w.buf.Clamp(loc)
}

func (w *Window) forget(b *buffer.Buffer) {
	delete(w.last, b.ID())
}

// Windows returns the open windows in split order.
func (s *Session) Windows() []*Window {
	return slices.Clone(s.windows)
}

// Window returns the active window, or nil once every window is closed.
func (s *Session) Window() mode.Window {
	if w := s.ActiveWindow(); w != nil {
		return w
	}
	return nil
}

// ActiveWindow returns the active window, or nil.
func (s *Session) ActiveWindow() *Window {
	if len(s.windows) == 0 {
		return nil
	}
	return s.windows[s.active]
}

// ActiveBuffer returns the buffer of the active window, or nil.
func (s *Session) ActiveBuffer() *buffer.Buffer {
	if w := s.ActiveWindow(); w != nil {
		return w.buf
	}
	return nil
}

// Split opens a window on b to the right of the active one and makes it
// active.
func (s *Session) Split(b *buffer.Buffer) *Window {
	w := newWindow(b)
	if len(s.windows) == 0 {
		s.windows = []*Window{w}
		s.active = 0
	} else {
		at := s.active + 1
		s.windows = slices.Insert(s.windows, at, w)
		s.active = at
	}
	s.quit = false
	s.events.Broadcast(Message{Kind: WindowChanged, Buffer: b})
	return w
}

// MoveSplit activates the neighbouring window. Windows are laid out in a
// single row, so left and up move back, right and down move forward. It
// does nothing at either end.
func (s *Session) MoveSplit(dir mode.SplitMotion) {
	next := s.active
	switch dir {
	case mode.SplitLeft, mode.SplitUp:
		next--
	case mode.SplitRight, mode.SplitDown:
		next++
	}
	if next < 0 || next >= len(s.windows) || next == s.active {
		return
	}
	s.active = next
	s.events.Broadcast(Message{Kind: WindowChanged, Buffer: s.windows[next].buf})
}

// Quit closes the active window. Closing the last one sets QuitRequested.
func (s *Session) Quit() {
	if len(s.windows) == 0 {
		return
	}
	s.windows = slices.Delete(s.windows, s.active, s.active+1)
	if s.active >= len(s.windows) {
		s.active = max(len(s.windows)-1, 0)
	}
	if len(s.windows) > 0 {
		s.events.Broadcast(Message{Kind: WindowChanged, Buffer: s.windows[s.active].buf})
		return
	}
	s.quit = true
	s.log.Debug("last window closed")
	s.events.Broadcast(Message{Kind: QuitRequested})
}
