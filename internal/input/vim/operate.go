package vim

import (
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
)

// operation is what a resolved command does to the buffer.
type operation uint8

const (
	opNone operation = iota
	opDelete
	opDeleteLines
	opInsert
	opCopy
	opCopyLines
	opReplace
)

func (o operation) String() string {
	switch o {
	case opDelete:
		return "delete"
	case opDeleteLines:
		return "deleteLines"
	case opInsert:
		return "insert"
	case opCopy:
		return "copy"
	case opCopyLines:
		return "copyLines"
	case opReplace:
		return "replace"
	}
	return "none"
}

// edit is a resolved operation waiting to be applied.
type edit struct {
	op       operation
	r        buffer.Range
	text     string
	mode     history.ReplaceMode
	register rune
	// regText overrides the register contents taken from r.
	regText     string
	cursorAfter buffer.Location
}

// apply turns e into a history command, or a register write for copies.
func (v *Vim) apply(e edit) error {
	buf := v.Buffer()
	cursor := v.Cursor()
	regs := v.Host().Registers()

	v.log.Debug("apply", zap.Stringer("op", e.op), zap.Stringer("range", e.r))

	switch e.op {
	case opNone:
		return nil

	case opDelete, opDeleteLines:
		if e.r.IsEmpty() {
			return nil
		}
		text := e.regText
		if text == "" {
			text = buf.Slice(e.r.Start, e.r.End)
		}
		if err := v.AddCommand(history.NewDelete(buf, e.r.Start, e.r.End, cursor, e.cursorAfter)); err != nil {
			v.report(err)
			return err
		}
		err := regs.Delete(e.register, register.Register{Text: text, Linewise: e.op == opDeleteLines})
		v.report(err)
		return err

	case opCopy, opCopyLines:
		text := e.regText
		if text == "" {
			text = buf.Slice(e.r.Start, e.r.End)
		}
		if err := regs.Yank(e.register, register.Register{Text: text, Linewise: e.op == opCopyLines}); err != nil {
			v.report(err)
			return err
		}
		if e.cursorAfter != buffer.InvalidLocation {
			v.SetCursor(e.cursorAfter)
		}
		return nil

	case opInsert:
		if e.text == "" {
			return nil
		}
		err := v.AddCommand(history.NewInsert(buf, e.r.Start, e.text, cursor, e.cursorAfter))
		v.report(err)
		return err

	case opReplace:
		err := v.AddCommand(history.NewReplace(buf, e.mode, e.r.Start, e.r.End, e.text, cursor, e.cursorAfter))
		v.report(err)
		return err
	}
	return nil
}

// report shows err on the command line.
func (v *Vim) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, history.ErrLocked) {
		v.Host().SetCommandText("Buffer is locked")
		return
	}
	v.Host().SetCommandText(err.Error())
}

// applyOperator resolves the range of an operator command and runs it.
func (v *Vim) applyOperator(cmd *Command) {
	r, linewise, ok := v.operatorRange(cmd, v.Cursor())
	if !ok {
		return
	}
	v.operate(cmd.Operator, r, linewise, cmd.Register)
}

// applyVisualOperator runs an operator on the selection.
func (v *Vim) applyVisualOperator(cmd *Command) {
	buf := v.Buffer()
	r := v.VisualRange()
	linewise := v.visualLine || cmd.Linewise
	if linewise && !v.visualLine {
		r = v.lineRange(buf.Line(r.Start), buf.Line(max(r.Start, r.End-1)))
	}

	v.SwitchMode(mode.Normal)
	v.SetCursor(r.Start)
	v.operate(cmd.Operator, r, linewise, cmd.Register)
	if v.EditorMode() == mode.Normal {
		v.clampNormal()
	}
}

// operatorRange returns the range an operator acts on.
func (v *Vim) operatorRange(cmd *Command, cursor buffer.Location) (r buffer.Range, linewise, ok bool) {
	buf := v.Buffer()
	count := cmd.GetCount()

	switch {
	case cmd.Linewise:
		first := buf.Line(cursor)
		last := min(buf.LineCount()-1, first+count-1)
		return v.lineRange(first, last), true, true

	case cmd.TextObject != nil:
		r, ok = v.textObjectRange(cmd.TextObject, cmd.TextObjectPrefix, cursor)
		return r, false, ok

	case cmd.Motion == nil:
		return buffer.Range{}, false, false
	}

	m := cmd.Motion
	// cw changes to the end of the word rather than the start of the next.
	if cmd.Operator.Kind == OpChange && (m.ID == MotionWordForward || m.ID == MotionWORDForward) &&
		!motion.IsSpaceOrNewline(buf.ByteAt(cursor)) {
		class := classOf(m.ID == MotionWORDForward)
		end := cursor
		for i := range count {
			if i > 0 {
				end = motion.WordMotion(buf, end, class, buffer.Forward)
			}
			end = motion.ChangeWordMotion(buf, end, class, buffer.Forward)
		}
		return buffer.Range{Start: cursor, End: end}, false, true
	}

	target, ok := v.motionTarget(m, cmd, cursor, true)
	if !ok {
		return buffer.Range{}, false, false
	}
	if m.IsLinewise() {
		return v.lineRange(buf.Line(cursor), buf.Line(target)), true, true
	}

	r = buffer.Range{Start: cursor, End: target}.Normalize()
	switch {
	case m.Inclusive:
		r.End = motion.NextCluster(buf, r.End)
	case r.End > r.Start && buf.Line(r.End) > buf.Line(r.Start) && r.End == buf.LinePos(r.End, buffer.LineBegin):
		// An exclusive motion ending at a line start stops before the newline.
		r.End--
	}
	return r, false, true
}

// lineRange returns the lines from a to b, either order, newlines included.
// The sentinel is never part of the range.
func (v *Vim) lineRange(a, b int) buffer.Range {
	buf := v.Buffer()
	first, last := min(a, b), max(a, b)
	start, _ := buf.LineOffsets(first)
	end, _ := buf.LineOffsets(last)
	return buffer.Range{Start: start.Start, End: min(end.End, buf.EndLocation())}
}

// linesText returns the register text of a line-wise range, newline
// terminated.
func (v *Vim) linesText(r buffer.Range) string {
	text := v.Buffer().Slice(r.Start, r.End)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

func (v *Vim) textObjectRange(obj *TextObject, prefix TextObjectPrefix, loc buffer.Location) (buffer.Range, bool) {
	buf := v.Buffer()
	around := prefix == PrefixAround

	switch obj.Kind {
	case ObjectWord, ObjectWORD:
		class := classOf(obj.Kind == ObjectWORD)
		var r buffer.Range
		if around {
			r = motion.AWordMotion(buf, loc, class)
		} else {
			r = motion.InnerWordMotion(buf, loc, class)
		}
		return r, !r.IsEmpty()
	case ObjectPair:
		return motion.InnerPair(buf, loc, obj.Open, obj.Close, around)
	case ObjectQuote:
		return motion.InnerQuote(buf, loc, obj.Open, around)
	}
	return buffer.Range{}, false
}

// operate runs op on r.
func (v *Vim) operate(op *Operator, r buffer.Range, linewise bool, reg rune) {
	buf := v.Buffer()
	cursor := v.Cursor()

	switch op.Kind {
	case OpDelete:
		e := edit{op: opDelete, r: r, register: reg, cursorAfter: r.Start}
		if linewise {
			e.op = opDeleteLines
			e.regText = v.linesText(r)
			// The last line has no newline of its own; take the one before it.
			if !strings.HasSuffix(buf.Slice(r.Start, r.End), "\n") && r.Start > 0 {
				e.r.Start--
				e.cursorAfter = e.r.Start
			}
		}
		if v.apply(e) != nil {
			return
		}
		if linewise {
			v.SetCursor(buf.LinePos(v.Cursor(), buffer.LineFirstGraphChar))
		}
		v.clampNormal()

	case OpYank:
		e := edit{op: opCopy, r: r, register: reg, cursorAfter: r.Start}
		if linewise {
			e.op = opCopyLines
			e.regText = v.linesText(r)
			e.cursorAfter = buffer.InvalidLocation
			if r.Start < buf.LinePos(cursor, buffer.LineBegin) {
				e.cursorAfter = v.lineWithGoal(buf.Line(r.Start), cursor)
			}
		}
		_ = v.apply(e)

	case OpChange:
		e := edit{op: opDelete, r: r, register: reg, cursorAfter: r.Start}
		if linewise {
			e.op = opDeleteLines
			e.regText = v.linesText(r)
			// Keep the final newline so an empty line is left to type on.
			if strings.HasSuffix(buf.Slice(r.Start, r.End), "\n") {
				e.r.End--
			}
		}
		// The delete and the typing that follows undo together.
		v.SwitchMode(mode.Insert)
		v.SetCursor(r.Start)
		if e.r.IsEmpty() && e.op == opDeleteLines {
			_ = v.Host().Registers().Delete(reg, register.Register{Text: e.regText, Linewise: true})
		}
		_ = v.apply(e)
		v.SetInsertBegin(v.Cursor())

	case OpIndentRight, OpIndentLeft:
		v.indent(r, op.Kind == OpIndentRight)

	case OpLower, OpUpper, OpToggleCase:
		v.changeCase(r, op.Kind)
		v.clampNormal()
	}
}

// indent shifts every line touched by r by the shift width.
func (v *Vim) indent(r buffer.Range, right bool) {
	buf := v.Buffer()
	lr := v.lineRange(buf.Line(r.Start), buf.Line(max(r.Start, r.End-1)))
	text := buf.Slice(lr.Start, lr.End)
	width := max(v.settings.ShiftWidth, 1)
	pad := strings.Repeat(" ", width)

	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		content := strings.TrimSuffix(line, "\n")
		if content == "" {
			continue
		}
		if right {
			lines[i] = pad + line
			continue
		}
		n := 0
		for n < width && n < len(line) && line[n] == ' ' {
			n++
		}
		lines[i] = line[n:]
	}

	out := strings.Join(lines, "")
	if out != text {
		if v.apply(edit{op: opReplace, r: lr, text: out, mode: history.ReplaceReplace, cursorAfter: lr.Start}) != nil {
			return
		}
	}
	v.SetCursor(buf.LinePos(lr.Start, buffer.LineFirstGraphChar))
}

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// convertCase applies a case operator to s.
func convertCase(s string, kind OperatorKind) string {
	switch kind {
	case OpLower:
		return lowerCaser.String(s)
	case OpUpper:
		return upperCaser.String(s)
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			sb.WriteString(lowerCaser.String(string(r)))
		case unicode.IsLower(r):
			sb.WriteString(upperCaser.String(string(r)))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// changeCase rewrites r with a case operator and leaves the cursor at its
// start.
func (v *Vim) changeCase(r buffer.Range, kind OperatorKind) {
	buf := v.Buffer()
	text := buf.Slice(r.Start, r.End)
	out := convertCase(text, kind)
	if out != text {
		if v.apply(edit{op: opReplace, r: r, text: out, mode: history.ReplaceReplace, cursorAfter: r.Start}) != nil {
			return
		}
	}
	v.SetCursor(r.Start)
}
