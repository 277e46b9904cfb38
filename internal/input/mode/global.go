package mode

import (
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/input/key"
)

// Font size limits for Ctrl+= and Ctrl+-.
const (
	MinFontSize = 10.0
	MaxFontSize = 20.0
)

// HandleGlobalCommand runs the bindings that apply in every editor mode:
//
//	Ctrl+i o        swap to the alternate file
//	Ctrl+= Ctrl+-   grow or shrink the font
//	Ctrl+h/j/k/l    move between splits
//	Ctrl+p Ctrl+,   open search
//	Ctrl+r          redo
//	F8 Shift+F8     next or previous message marker
//
// handled is false when ev is not a global binding. needMore is set after
// Ctrl+i while the second key is outstanding.
func (b *Base) HandleGlobalCommand(ev key.Event) (handled, needMore bool) {
	if b.ctrlPrefix {
		b.ctrlPrefix = false
		if ev.IsCtrl('o') || (ev.IsChar() && ev.Rune == 'o') {
			if err := b.host.SwapAlternate(); err != nil {
				b.host.SetCommandText(err.Error())
			}
		}
		return true, false
	}

	if ev.Key == key.KeyF8 {
		dir := buffer.Forward
		if ev.Modifiers.HasShift() {
			dir = buffer.Backward
		}
		b.jumpToMarker(dir)
		return true, false
	}

	if !ev.IsRune() || !ev.Modifiers.HasCtrl() {
		return false, false
	}

	switch ev.Rune {
	case 'i', 'I':
		b.ctrlPrefix = true
		return true, true
	case '=', '+':
		b.host.SetFontSize(min(b.host.FontSize()+1, MaxFontSize))
	case '-', '_':
		b.host.SetFontSize(max(MinFontSize, b.host.FontSize()-1))
	case 'h', 'H':
		b.host.MoveSplit(SplitLeft)
	case 'l', 'L':
		b.host.MoveSplit(SplitRight)
	case 'k', 'K':
		b.host.MoveSplit(SplitUp)
	case 'j', 'J':
		b.host.MoveSplit(SplitDown)
	case 'p', 'P', ',':
		b.host.OpenSearch()
	case 'r', 'R':
		if err := b.Redo(); err != nil {
			b.log.Debug("redo", zap.Error(err))
		}
	default:
		return false, false
	}
	return true, false
}

func (b *Base) jumpToMarker(dir buffer.Direction) {
	w := b.host.Window()
	if w == nil {
		return
	}
	idx := b.host.Markers(w.Buffer())
	if idx == nil {
		return
	}
	if m, ok := idx.FindNext(w.Cursor(), dir, marker.TypeMessage); ok {
		w.SetCursor(m.Range.Start)
	}
}
