// Package standard implements the non-modal input mode of a conventional
// editor: keys type text, Shift extends a selection and Ctrl chords cut,
// copy, paste, undo and redo.
package standard

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
)

// Name is the registry name of the mode.
const Name = "Standard"

// DefaultTabWidth is the number of spaces Tab inserts.
const DefaultTabWidth = 4

// Standard is the non-modal mode. It stays in mode.Insert, switching to
// mode.Visual while a selection is held.
type Standard struct {
	mode.Base

	log      *zap.Logger
	tabWidth int

	// anchor is the fixed end of the selection, InvalidLocation when none.
	anchor     buffer.Location
	goalColumn int
}

var _ mode.Mode = (*Standard)(nil)

// Option configures a Standard mode.
type Option func(*Standard)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Standard) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTabWidth sets the number of spaces Tab inserts.
func WithTabWidth(n int) Option {
	return func(s *Standard) {
		if n > 0 {
			s.tabWidth = n
		}
	}
}

// New creates a Standard mode editing through host.
func New(host mode.Host, opts ...Option) *Standard {
	s := &Standard{
		log:        zap.NewNop(),
		tabWidth:   DefaultTabWidth,
		anchor:     buffer.InvalidLocation,
		goalColumn: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("standard")
	s.Base = mode.NewBase(host, s.log)
	return s
}

// Name returns "Standard".
func (s *Standard) Name() string { return Name }

// Begin drops any selection and starts typing.
func (s *Standard) Begin() {
	s.anchor = buffer.InvalidLocation
	s.goalColumn = -1
	if buf := s.Buffer(); buf != nil {
		buf.ClearSelection()
		s.SetCursor(buf.Clamp(s.Cursor()))
	}
	s.SetVisualRange(buffer.Range{})
	s.Base.SetEditorMode(mode.Insert)
}

// SetEditorMode accepts Insert and Visual. Any other state is treated as
// Insert since the mode has no command state.
func (s *Standard) SetEditorMode(m mode.EditorMode) {
	if m != mode.Visual {
		s.clearSelection()
		m = mode.Insert
	}
	s.Base.SetEditorMode(m)
}

// AddCommandText feeds keys written in key notation.
func (s *Standard) AddCommandText(text string) (mode.Result, error) {
	return mode.FeedKeys(s, text)
}

// AddKeyPress handles one key.
func (s *Standard) AddKeyPress(ev key.Event) mode.Result {
	if s.Window() == nil || s.Buffer() == nil {
		return mode.Result{}
	}
	if handled, needMore := s.HandleGlobalCommand(ev); handled {
		return mode.Result{NeedMoreChars: needMore}
	}

	if ev.IsRune() && ev.Modifiers.HasCtrl() {
		s.handleCtrl(ev.Rune)
		return mode.Result{}
	}

	switch {
	case ev.IsChar():
		s.typeText(string(ev.Rune))
	case ev.IsEscape():
		s.clearSelection()
	case ev.Key == key.KeyEnter:
		s.typeText("\n")
	case ev.Key == key.KeyTab:
		s.typeText(strings.Repeat(" ", s.tabWidth))
	case ev.Key == key.KeyBackspace:
		s.deleteBack()
	case ev.Key == key.KeyDelete:
		s.deleteForward()
	case ev.Key.IsNavigationKey():
		s.navigate(ev)
	default:
		s.log.Debug("unhandled key", zap.Stringer("key", ev))
	}
	return mode.Result{}
}

func (s *Standard) handleCtrl(r rune) {
	switch r {
	case 'z', 'Z':
		s.clearSelection()
		if err := s.Undo(); err != nil {
			s.log.Debug("undo", zap.Error(err))
		}
	case 'y', 'Y':
		s.clearSelection()
		if err := s.Redo(); err != nil {
			s.log.Debug("redo", zap.Error(err))
		}
	case 'a', 'A':
		buf := s.Buffer()
		s.anchor = 0
		s.moveTo(buf.EndLocation(), true)
	case 'c', 'C':
		s.copySelection(false)
	case 'x', 'X':
		s.copySelection(true)
	case 'v', 'V':
		s.paste()
	}
}

// clipboard returns the register the Ctrl chords go through.
func (s *Standard) clipboard() rune {
	if s.Host().Registers().HasClipboard() {
		return register.Clipboard
	}
	return register.Unnamed
}

// selection returns the selected range and whether there is one.
func (s *Standard) selection() (buffer.Range, bool) {
	if s.anchor == buffer.InvalidLocation {
		return buffer.Range{}, false
	}
	cursor := s.Cursor()
	r := buffer.Range{Start: min(s.anchor, cursor), End: max(s.anchor, cursor)}
	return r, !r.IsEmpty()
}

func (s *Standard) clearSelection() {
	s.anchor = buffer.InvalidLocation
	if buf := s.Buffer(); buf != nil {
		buf.ClearSelection()
	}
	s.SetVisualRange(buffer.Range{})
	if s.EditorMode() == mode.Visual {
		s.Base.SetEditorMode(mode.Insert)
	}
}

func (s *Standard) updateSelection() {
	r, ok := s.selection()
	if !ok {
		s.Buffer().ClearSelection()
		s.SetVisualRange(buffer.Range{})
		s.Base.SetEditorMode(mode.Insert)
		return
	}
	s.Buffer().SetSelection(r)
	s.SetVisualRange(r)
	s.Base.SetEditorMode(mode.Visual)
}

// moveTo moves the cursor, extending the selection when extend is set and
// dropping it otherwise.
func (s *Standard) moveTo(loc buffer.Location, extend bool) {
	if extend {
		if s.anchor == buffer.InvalidLocation {
			s.anchor = s.Cursor()
		}
		s.SetCursor(loc)
		s.updateSelection()
		return
	}
	s.clearSelection()
	s.SetCursor(loc)
}

func (s *Standard) navigate(ev key.Event) {
	buf := s.Buffer()
	cursor := s.Cursor()
	extend := ev.Modifiers.HasShift()
	word := ev.Modifiers.HasCtrl()

	if ev.Key != key.KeyUp && ev.Key != key.KeyDown {
		s.goalColumn = -1
	}

	// Without Shift, Left and Right collapse a selection to its edge.
	if r, ok := s.selection(); ok && !extend && !word {
		switch ev.Key {
		case key.KeyLeft:
			s.moveTo(r.Start, false)
			return
		case key.KeyRight:
			s.moveTo(r.End, false)
			return
		}
	}

	var target buffer.Location
	switch ev.Key {
	case key.KeyLeft:
		if word {
			target = motion.StandardCtrlMotion(buf, cursor, buffer.Backward).End
		} else {
			target = motion.PrevCluster(buf, cursor)
		}
		if target == cursor && cursor > 0 {
			// Wrap onto the end of the previous line.
			target = cursor - 1
		}
	case key.KeyRight:
		if word {
			target = motion.StandardCtrlMotion(buf, cursor, buffer.Forward).End
		} else {
			target = motion.NextCluster(buf, cursor)
		}
		if target == cursor && buf.ByteAt(cursor) == '\n' {
			target = cursor + 1
		}
	case key.KeyUp:
		target = s.lineWithGoal(buf.Line(cursor)-1, cursor)
	case key.KeyDown:
		target = s.lineWithGoal(buf.Line(cursor)+1, cursor)
	case key.KeyHome:
		target = buf.LinePos(cursor, buffer.LineBegin)
		if word {
			target = 0
		}
	case key.KeyEnd:
		target = buf.LinePos(cursor, buffer.LineCRBegin)
		if word {
			target = buf.EndLocation()
		}
	default:
		return
	}
	s.moveTo(target, extend)
}

// lineWithGoal returns the location on line nearest the remembered display
// column. Moving off the first or last line goes to its start or end.
func (s *Standard) lineWithGoal(line int, cursor buffer.Location) buffer.Location {
	buf := s.Buffer()
	if line < 0 {
		return 0
	}
	if line >= buf.LineCount() {
		return buf.EndLocation()
	}
	if s.goalColumn < 0 {
		s.goalColumn = motion.DisplayColumn(buf, cursor)
	}
	r, _ := buf.LineOffsets(line)
	end := buf.LinePos(r.Start, buffer.LineCRBegin)
	if s.goalColumn >= motion.DisplayColumn(buf, end) {
		return end
	}
	return motion.LocationAtColumn(buf, r.Start, s.goalColumn)
}

// typeText replaces the selection, if any, with text.
func (s *Standard) typeText(text string) {
	s.goalColumn = -1
	buf := s.Buffer()
	hist := s.History()

	cursor := s.Cursor()
	r, hasSel := s.selection()
	err := hist.Transaction(func() error {
		at := cursor
		if hasSel {
			if err := s.AddCommand(history.NewDelete(buf, r.Start, r.End, cursor, r.Start)); err != nil {
				return err
			}
			at = r.Start
		}
		after := at + buffer.Location(len(text))
		return s.AddCommand(history.NewInsert(buf, at, text, at, after))
	})
	if err != nil {
		s.SetCursor(cursor)
		s.report(err)
		return
	}
	s.clearSelection()
}

// deleteSelection removes the selection. It returns false when there is
// none.
func (s *Standard) deleteSelection() bool {
	r, ok := s.selection()
	if !ok {
		return false
	}
	s.clearSelection()
	s.report(s.AddCommand(history.NewDelete(s.Buffer(), r.Start, r.End, s.Cursor(), r.Start)))
	return true
}

func (s *Standard) deleteBack() {
	s.goalColumn = -1
	if s.deleteSelection() {
		return
	}
	s.clearSelection()
	buf := s.Buffer()
	cursor := s.Cursor()
	if cursor <= 0 {
		return
	}
	start := motion.PrevCluster(buf, cursor)
	if start == cursor {
		start = cursor - 1
	}
	s.report(s.AddCommand(history.NewDelete(buf, start, cursor, cursor, start)))
}

func (s *Standard) deleteForward() {
	s.goalColumn = -1
	if s.deleteSelection() {
		return
	}
	s.clearSelection()
	buf := s.Buffer()
	cursor := s.Cursor()
	if cursor >= buf.EndLocation() {
		return
	}
	end := motion.NextCluster(buf, cursor)
	if end == cursor {
		end++
	}
	s.report(s.AddCommand(history.NewDelete(buf, cursor, end, cursor, cursor)))
}

// copySelection writes the selection to the clipboard register, removing
// it from the buffer when cut is set.
func (s *Standard) copySelection(cut bool) {
	r, ok := s.selection()
	if !ok {
		return
	}
	buf := s.Buffer()
	reg := register.Register{Text: buf.Slice(r.Start, r.End)}
	regs := s.Host().Registers()

	if !cut {
		if err := regs.Yank(s.clipboard(), reg); err != nil {
			s.report(err)
		}
		return
	}
	if err := s.AddCommand(history.NewDelete(buf, r.Start, r.End, s.Cursor(), r.Start)); err != nil {
		s.report(err)
		return
	}
	s.clearSelection()
	if err := regs.Delete(s.clipboard(), reg); err != nil {
		s.report(err)
	}
}

func (s *Standard) paste() {
	reg, err := s.Host().Registers().Get(s.clipboard())
	if err != nil {
		s.report(err)
		return
	}
	if reg.IsEmpty() {
		return
	}
	s.typeText(reg.Text)
}

func (s *Standard) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, history.ErrLocked) {
		s.Host().SetCommandText("Buffer is locked")
		return
	}
	s.Host().SetCommandText(err.Error())
}
