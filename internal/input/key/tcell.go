package key

import "github.com/gdamore/tcell/v2"

var fromTcellKeys = map[tcell.Key]Key{
	tcell.KeyDelete: KeyDelete,
	tcell.KeyInsert: KeyInsert,
	tcell.KeyHome:   KeyHome,
	tcell.KeyEnd:    KeyEnd,
	tcell.KeyPgUp:   KeyPageUp,
	tcell.KeyPgDn:   KeyPageDown,
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyF1:     KeyF1,
	tcell.KeyF2:     KeyF2,
	tcell.KeyF3:     KeyF3,
	tcell.KeyF4:     KeyF4,
	tcell.KeyF5:     KeyF5,
	tcell.KeyF6:     KeyF6,
	tcell.KeyF7:     KeyF7,
	tcell.KeyF8:     KeyF8,
	tcell.KeyF9:     KeyF9,
	tcell.KeyF10:    KeyF10,
	tcell.KeyF11:    KeyF11,
	tcell.KeyF12:    KeyF12,
}

// FromTcell converts a tcell key event. Control characters arrive from
// tcell as their own keys and become Ctrl+letter rune events.
func FromTcell(ev *tcell.EventKey) Event {
	out := Event{Modifiers: fromTcellMod(ev.Modifiers()), Timestamp: ev.When()}

	// tcell aliases Tab, Enter and Backspace with Ctrl+I, M and H, so these
	// must be matched before the control range.
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		out.Key, out.Rune = KeyRune, ev.Rune()
	case k == tcell.KeyEnter:
		out.Key = KeyEnter
	case k == tcell.KeyTab:
		out.Key = KeyTab
	case k == tcell.KeyBacktab:
		out.Key = KeyTab
		out.Modifiers |= ModShift
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		out.Key = KeyBackspace
	case k == tcell.KeyEscape:
		out.Key = KeyEscape
	case k == tcell.KeyCtrlSpace:
		out.Key, out.Rune = KeyRune, ' '
		out.Modifiers |= ModCtrl
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out.Key, out.Rune = KeyRune, 'a'+rune(k-tcell.KeyCtrlA)
		out.Modifiers |= ModCtrl
	default:
		out.Key = fromTcellKeys[k]
	}
	return out
}

// ToTcell converts an event back to a tcell key event.
func ToTcell(e Event) *tcell.EventKey {
	mod := toTcellMod(e.Modifiers)
	switch e.Key {
	case KeyRune:
		return tcell.NewEventKey(tcell.KeyRune, e.Rune, mod)
	case KeyEnter:
		return tcell.NewEventKey(tcell.KeyEnter, 0, mod)
	case KeyTab:
		return tcell.NewEventKey(tcell.KeyTab, 0, mod)
	case KeyBackspace:
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, mod)
	case KeyEscape:
		return tcell.NewEventKey(tcell.KeyEscape, 0, mod)
	}
	for tk, k := range fromTcellKeys {
		if k == e.Key {
			return tcell.NewEventKey(tk, 0, mod)
		}
	}
	return tcell.NewEventKey(tcell.KeyNUL, 0, mod)
}

func fromTcellMod(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= ModMeta
	}
	return out
}

func toTcellMod(m Modifier) tcell.ModMask {
	var out tcell.ModMask
	if m.HasShift() {
		out |= tcell.ModShift
	}
	if m.HasCtrl() {
		out |= tcell.ModCtrl
	}
	if m.HasAlt() {
		out |= tcell.ModAlt
	}
	if m.HasMeta() {
		out |= tcell.ModMeta
	}
	return out
}
