package vim

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
)

// beginInsert opens the undo group that collects the insert session.
func (v *Vim) beginInsert() {
	v.History().BeginGroup()
	v.SetInsertBegin(v.Cursor())
	v.inserted.Reset()
	v.insertCount = 1
	v.insertOpened = false
	v.escapeLoc = buffer.InvalidLocation
	v.goalColumn = -1
}

// endInsert repeats the typed text for a count, closes the undo group and
// steps the cursor back onto the last typed character.
func (v *Vim) endInsert() {
	buf := v.Buffer()
	text := v.inserted.String()

	if v.insertCount > 1 && text != "" {
		unit := text
		if v.insertOpened {
			unit = "\n" + text
		}
		v.insertText(RepeatText(unit, v.insertCount-1))
	}
	v.History().EndGroup()

	_ = v.Host().Registers().SetReadOnly(register.LastInserted, text)
	if v.pendingChange != nil && !v.replaying {
		v.lastChange = v.pendingChange
		v.lastInserted = text
		v.pendingChange = nil
	}

	cursor := v.Cursor()
	if cursor > buf.LinePos(cursor, buffer.LineBegin) {
		cursor = motion.PrevCluster(buf, cursor)
	}
	v.SetCursor(buf.ClampToVisibleLine(cursor))

	v.insertCount = 1
	v.insertOpened = false
	v.escapeLoc = buffer.InvalidLocation
}

// insertText inserts text at the cursor as part of the insert session.
func (v *Vim) insertText(text string) {
	if text == "" {
		return
	}
	cursor := v.Cursor()
	e := edit{
		op:          opInsert,
		r:           buffer.Range{Start: cursor, End: cursor},
		text:        text,
		cursorAfter: cursor + buffer.Location(len(text)),
	}
	if v.apply(e) == nil {
		v.inserted.WriteString(text)
	}
}

// handleInsert handles one Insert mode key.
func (v *Vim) handleInsert(ev key.Event) {
	buf := v.Buffer()
	cursor := v.Cursor()

	if ev.IsEscape() {
		v.SwitchMode(mode.Normal)
		return
	}
	if v.insertEscape(ev) {
		return
	}
	v.escapeLoc = buffer.InvalidLocation

	switch {
	case ev.IsChar():
		v.insertText(string(ev.Rune))
		v.armEscape(ev.Rune)
	case ev.Is(key.KeyEnter, key.ModNone):
		v.insertText("\n")
	case ev.Is(key.KeyTab, key.ModNone):
		v.insertText(strings.Repeat(" ", max(v.settings.TabWidth, 1)))
	case ev.Is(key.KeyBackspace, key.ModNone):
		v.backspace()
	case ev.Is(key.KeyDelete, key.ModNone):
		if cursor >= buf.EndLocation() {
			return
		}
		end := motion.NextCluster(buf, cursor)
		if end == cursor {
			end++
		}
		v.report(v.AddCommand(history.NewDelete(buf, cursor, end, cursor, cursor)))
	case ev.Key == key.KeyLeft:
		v.SetCursor(motion.PrevCluster(buf, cursor))
	case ev.Key == key.KeyRight:
		v.SetCursor(motion.NextCluster(buf, cursor))
	case ev.Key == key.KeyUp:
		v.SetCursor(v.lineWithGoal(max(0, buf.Line(cursor)-1), cursor))
	case ev.Key == key.KeyDown:
		v.SetCursor(v.lineWithGoal(min(buf.LineCount()-1, buf.Line(cursor)+1), cursor))
	case ev.Key == key.KeyHome:
		v.SetCursor(buf.LinePos(cursor, buffer.LineBegin))
	case ev.Key == key.KeyEnd:
		v.SetCursor(buf.LinePos(cursor, buffer.LineCRBegin))
	}
}

// backspace removes the character before the cursor, joining lines at a
// line start.
func (v *Vim) backspace() {
	buf := v.Buffer()
	cursor := v.Cursor()
	if cursor <= 0 {
		return
	}
	start := motion.PrevCluster(buf, cursor)
	if start == cursor {
		start = cursor - 1
	}
	if err := v.AddCommand(history.NewDelete(buf, start, cursor, cursor, start)); err != nil {
		v.report(err)
		return
	}
	if s := v.inserted.String(); s != "" {
		_, size := utf8.DecodeLastRuneInString(s)
		v.inserted.Reset()
		v.inserted.WriteString(s[:len(s)-size])
	}
}

// armEscape notes the first key of the insert escape sequence.
func (v *Vim) armEscape(r rune) {
	seq := []rune(v.settings.InsertEscape)
	if len(seq) == 2 && r == seq[0] {
		v.escapeLoc = v.Cursor()
		v.escapeAt = v.now()
	}
}

// insertEscape completes the insert escape sequence: the first key, already
// typed, is taken back and Insert mode ends.
func (v *Vim) insertEscape(ev key.Event) bool {
	seq := []rune(v.settings.InsertEscape)
	if len(seq) != 2 || v.escapeLoc == buffer.InvalidLocation || !ev.IsChar() || ev.Rune != seq[1] {
		return false
	}
	armed := v.escapeLoc
	v.escapeLoc = buffer.InvalidLocation
	if v.Cursor() != armed || v.now().Sub(v.escapeAt) > v.settings.InsertEscapeTimeout {
		return false
	}

	buf := v.Buffer()
	start := armed - buffer.Location(utf8.RuneLen(seq[0]))
	if err := v.AddCommand(history.NewDelete(buf, start, armed, armed, start)); err != nil {
		v.report(err)
		return false
	}
	if s := v.inserted.String(); strings.HasSuffix(s, string(seq[0])) {
		v.inserted.Reset()
		v.inserted.WriteString(strings.TrimSuffix(s, string(seq[0])))
	}
	v.SwitchMode(mode.Normal)
	return true
}
