package vim

import (
	"fmt"
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
)

// runAction runs a command that has no operator or motion.
func (v *Vim) runAction(cmd *Command) {
	buf := v.Buffer()
	cursor := v.Cursor()
	count := cmd.GetCount()

	switch cmd.Action {
	case ActionInsert:
		v.startInsert(cursor, count)
	case ActionAppend:
		v.startInsert(motion.NextCluster(buf, cursor), count)
	case ActionInsertLineStart:
		v.startInsert(buf.LinePos(cursor, buffer.LineFirstGraphChar), count)
	case ActionAppendLineEnd:
		v.startInsert(buf.LinePos(cursor, buffer.LineCRBegin), count)
	case ActionOpenBelow, ActionOpenAbove:
		v.openLine(cmd.Action == ActionOpenBelow, count)

	case ActionVisual, ActionVisualLine:
		line := cmd.Action == ActionVisualLine
		if v.EditorMode() == mode.Visual && v.visualLine == line {
			v.SwitchMode(mode.Normal)
			return
		}
		v.visualLine = line
		v.SwitchMode(mode.Visual)

	case ActionSwapAnchor:
		v.anchor, cursor = cursor, v.anchor
		v.SetCursor(cursor)
		v.updateVisual()

	case ActionEx:
		v.exPrefix = ':'
		v.SwitchMode(mode.Ex)
	case ActionSearchForward:
		v.exPrefix = '/'
		v.SwitchMode(mode.Ex)
	case ActionSearchBackward:
		v.exPrefix = '?'
		v.SwitchMode(mode.Ex)

	case ActionUndo:
		for range count {
			if err := v.Undo(); err != nil {
				break
			}
		}
		v.clampNormal()

	case ActionPutAfter, ActionPutBefore:
		v.put(cmd.Register, cmd.Action == ActionPutAfter, count)

	case ActionJoin:
		if v.EditorMode() == mode.Visual {
			r := v.VisualRange()
			count = buf.Line(max(r.Start, r.End-1)) - buf.Line(r.Start) + 1
			v.SwitchMode(mode.Normal)
			v.SetCursor(r.Start)
		}
		v.join(count)

	case ActionReplaceChar:
		v.replaceChars(cmd.CharArg, count)

	case ActionToggleCaseChar:
		end := cursor
		for range count {
			next := motion.NextCluster(buf, end)
			if next == end {
				break
			}
			end = next
		}
		v.changeCase(buffer.Range{Start: cursor, End: end}, OpToggleCase)
		v.SetCursor(end)
		v.clampNormal()

	case ActionRepeat:
		v.repeat(cmd)
	}
}

// startInsert enters Insert mode at loc. A count repeats the typed text
// when Insert mode ends.
func (v *Vim) startInsert(loc buffer.Location, count int) {
	v.SetCursor(loc)
	v.SwitchMode(mode.Insert)
	v.insertCount = count
}

// openLine adds an empty line below or above the cursor line and starts
// inserting on it.
func (v *Vim) openLine(below bool, count int) {
	buf := v.Buffer()
	cursor := v.Cursor()
	v.SwitchMode(mode.Insert)

	at := buf.LinePos(cursor, buffer.LineBegin)
	after := at
	if below {
		at = buf.LinePos(cursor, buffer.LineCRBegin)
		after = at + 1
	}
	_ = v.apply(edit{op: opInsert, r: buffer.Range{Start: at, End: at}, text: "\n", cursorAfter: after})
	v.SetInsertBegin(v.Cursor())
	v.insertCount = count
	v.insertOpened = true
}

// put inserts a register's contents count times. Line-wise text goes on
// its own lines; character-wise text goes after or before the cursor.
func (v *Vim) put(name rune, after bool, count int) {
	buf := v.Buffer()
	cursor := v.Cursor()
	if name == 0 {
		name = register.Unnamed
	}
	reg, err := v.Host().Registers().Get(name)
	if err != nil {
		v.report(err)
		return
	}
	if reg.IsEmpty() {
		v.Host().SetCommandText(fmt.Sprintf("Nothing in register %c", name))
		return
	}
	text := RepeatText(reg.Text, count)

	if reg.Linewise {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		at := buf.LinePos(cursor, buffer.LineBegin)
		first := at
		if after {
			if buf.Line(cursor) == buf.LineCount()-1 {
				// No newline to put after on the last line.
				at = buf.LinePos(cursor, buffer.LineCRBegin)
				text = "\n" + strings.TrimSuffix(text, "\n")
				first = at + 1
			} else {
				at = buf.LinePos(cursor, buffer.BeyondLineEnd)
				first = at
			}
		}
		if v.apply(edit{op: opInsert, r: buffer.Range{Start: at, End: at}, text: text, cursorAfter: first}) == nil {
			v.SetCursor(buf.LinePos(first, buffer.LineFirstGraphChar))
		}
		return
	}

	at := cursor
	if after {
		at = motion.NextCluster(buf, cursor)
	}
	last := at + buffer.Location(len(text)) - 1
	if v.apply(edit{op: opInsert, r: buffer.Range{Start: at, End: at}, text: text, cursorAfter: last}) == nil {
		v.SetCursor(motion.ClusterStart(buf, last))
		v.clampNormal()
	}
}

// join joins count lines (at least two) into one. Leading blanks of each
// joined line become a single space.
func (v *Vim) join(count int) {
	buf := v.Buffer()
	h := v.History()
	defer h.GroupScope().End()

	for range max(count, 2) - 1 {
		cursor := v.Cursor()
		if buf.Line(cursor) >= buf.LineCount()-1 {
			break
		}
		begin := buf.LinePos(cursor, buffer.LineBegin)
		cr := buf.LinePos(cursor, buffer.LineCRBegin)
		next := cr + 1
		for next < buf.EndLocation() && motion.IsSpace(buf.ByteAt(next)) {
			next++
		}

		sep := " "
		switch c := buf.ByteAt(next); {
		case cr == begin, c == '\n', next == buf.EndLocation(), c == ')':
			sep = ""
		case motion.IsSpace(buf.ByteAt(cr - 1)):
			sep = ""
		}
		e := edit{
			op:          opReplace,
			r:           buffer.Range{Start: cr, End: next},
			text:        sep,
			mode:        history.ReplaceReplace,
			cursorAfter: cr,
		}
		if v.apply(e) != nil {
			break
		}
	}
	v.clampNormal()
}

// replaceChars overwrites count characters with ch, as r. Nothing happens
// if the line is too short.
func (v *Vim) replaceChars(ch rune, count int) {
	buf := v.Buffer()
	cursor := v.Cursor()
	end := cursor
	for range count {
		next := motion.NextCluster(buf, end)
		if next == end {
			return
		}
		end = next
	}

	fill := string(ch)
	removed := buf.Slice(cursor, end)
	last := cursor + buffer.Location((len([]rune(removed))-1)*len(fill))
	e := edit{
		op:          opReplace,
		r:           buffer.Range{Start: cursor, End: end},
		text:        fill,
		mode:        history.ReplaceFill,
		cursorAfter: last,
	}
	_ = v.apply(e)
}

// repeat replays the last change, with cmd's count when one was typed.
func (v *Vim) repeat(cmd *Command) {
	if v.lastChange == nil {
		return
	}
	last := *v.lastChange
	if cmd.Count > 0 {
		last.Count = cmd.Count
	}
	inserted := v.lastInserted

	v.replaying = true
	defer func() { v.replaying = false }()

	v.execute(&last)
	if v.EditorMode() == mode.Insert {
		v.insertText(inserted)
		v.SwitchMode(mode.Normal)
	}
	v.lastInserted = inserted
}
