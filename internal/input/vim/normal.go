package vim

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/mode"
)

// execute runs a complete command.
func (v *Vim) execute(cmd *Command) {
	v.log.Debug("command",
		zap.Int("count", cmd.Count),
		zap.Stringer("action", cmd.Action),
		zap.Bool("linewise", cmd.Linewise))

	if !v.replaying && v.EditorMode() == mode.Normal && v.isChange(cmd) {
		c := *cmd
		v.pendingChange = &c
	}

	switch {
	case cmd.Visual && cmd.Operator != nil:
		v.applyVisualOperator(cmd)
	case cmd.Action == ActionSelectObject:
		v.selectObject(cmd)
	case cmd.Operator != nil:
		v.applyOperator(cmd)
	case cmd.Motion != nil:
		v.moveCursor(cmd)
	default:
		v.runAction(cmd)
	}
	if cmd.Motion == nil || cmd.Operator != nil {
		v.goalColumn = -1
	}

	// Changes that did not enter Insert mode are complete now.
	if v.pendingChange != nil && v.EditorMode() != mode.Insert {
		v.lastChange = v.pendingChange
		v.lastInserted = ""
		v.pendingChange = nil
	}
}

func (v *Vim) isChange(cmd *Command) bool {
	if cmd.Operator != nil {
		return cmd.Operator.ChangesText
	}
	return cmd.Action.ChangesText()
}

// moveCursor moves the cursor by a motion, extending the selection in
// Visual mode.
func (v *Vim) moveCursor(cmd *Command) {
	target, ok := v.motionTarget(cmd.Motion, cmd, v.Cursor(), false)
	if !ok {
		return
	}
	if id := cmd.Motion.ID; id != MotionUp && id != MotionDown {
		v.goalColumn = -1
		if id == MotionLineEnd {
			v.goalColumn = math.MaxInt
		}
	}
	v.SetCursor(target)
	if v.EditorMode() == mode.Visual {
		v.updateVisual()
	}
}

// motionTarget resolves where m goes from from. Operator-pending motions
// may land on the newline so the last character of the line is reachable.
// ok is false when the motion fails, dropping the command.
func (v *Vim) motionTarget(m *Motion, cmd *Command, from buffer.Location, pending bool) (buffer.Location, bool) {
	buf := v.Buffer()
	count := cmd.GetCount()
	loc := from

	repeat := func(step func(buffer.Location) buffer.Location) buffer.Location {
		for range count {
			next := step(loc)
			if next == loc {
				break
			}
			loc = next
		}
		return loc
	}

	switch m.ID {
	case MotionLeft:
		return repeat(func(l buffer.Location) buffer.Location { return motion.PrevCluster(buf, l) }), true

	case MotionRight:
		limit := buf.LinePos(loc, buffer.LineLastNonCR)
		if pending || v.EditorMode() == mode.Visual {
			limit = buf.LinePos(loc, buffer.LineCRBegin)
		}
		return repeat(func(l buffer.Location) buffer.Location {
			return min(motion.NextCluster(buf, l), limit)
		}), true

	case MotionUp, MotionDown:
		line := buf.Line(loc)
		if m.ID == MotionUp {
			line = max(0, line-count)
		} else {
			line = min(buf.LineCount()-1, line+count)
		}
		return v.lineWithGoal(line, loc), true

	case MotionWordForward, MotionWORDForward:
		class := classOf(m.ID == MotionWORDForward)
		return repeat(func(l buffer.Location) buffer.Location {
			return motion.WordMotion(buf, l, class, buffer.Forward)
		}), true

	case MotionWordBackward, MotionWORDBackward:
		class := classOf(m.ID == MotionWORDBackward)
		return repeat(func(l buffer.Location) buffer.Location {
			return motion.WordMotion(buf, l, class, buffer.Backward)
		}), true

	case MotionWordEnd, MotionWORDEnd:
		class := classOf(m.ID == MotionWORDEnd)
		return repeat(func(l buffer.Location) buffer.Location {
			return motion.EndWordMotion(buf, l, class, buffer.Forward)
		}), true

	case MotionWordEndBackward, MotionWORDEndBackward:
		class := classOf(m.ID == MotionWORDEndBackward)
		return repeat(func(l buffer.Location) buffer.Location {
			return motion.EndWordMotion(buf, l, class, buffer.Backward)
		}), true

	case MotionLineStart:
		return buf.LinePos(loc, buffer.LineBegin), true

	case MotionFirstNonBlank:
		return buf.LinePos(loc, buffer.LineFirstGraphChar), true

	case MotionLineEnd:
		line := min(buf.LineCount()-1, buf.Line(loc)+count-1)
		r, _ := buf.LineOffsets(line)
		return buf.LinePos(r.Start, buffer.LineLastNonCR), true

	case MotionFileStart, MotionFileEnd:
		line := 0
		switch {
		case cmd.Count > 0:
			line = min(cmd.Count, buf.LineCount()) - 1
		case m.ID == MotionFileEnd:
			line = buf.LineCount() - 1
		}
		r, _ := buf.LineOffsets(line)
		return buf.LinePos(r.Start, buffer.LineFirstGraphChar), true

	case MotionFindForward, MotionFindBackward, MotionTillForward, MotionTillBackward:
		if cmd.CharArg > 0x7f {
			return loc, false
		}
		v.lastFind.ch, v.lastFind.id, v.lastFind.set = byte(cmd.CharArg), m.ID, true
		return v.findOnLine(m.ID, byte(cmd.CharArg), loc, count, false)

	case MotionRepeatFind, MotionRepeatFindReverse:
		if !v.lastFind.set {
			return loc, false
		}
		id := v.lastFind.id
		if m.ID == MotionRepeatFindReverse {
			id = reverseFind(id)
		}
		return v.findOnLine(id, v.lastFind.ch, loc, count, true)

	case MotionSearchNext, MotionSearchPrev:
		dir := v.lastSearchDir
		if m.ID == MotionSearchPrev {
			dir = dir.Reverse()
		}
		for range count {
			next, ok := v.searchFrom(loc, v.lastSearch, dir)
			if !ok {
				return from, false
			}
			loc = next
		}
		return loc, true

	case MotionParagraphForward, MotionParagraphBackward:
		return repeat(func(l buffer.Location) buffer.Location {
			return v.paragraph(l, m.ID == MotionParagraphForward)
		}), true

	case MotionMatchPair:
		return motion.MatchingDelimiter(buf, loc)
	}
	return loc, false
}

func classOf(big bool) motion.Class {
	if big {
		return motion.WORD
	}
	return motion.Word
}

// lineWithGoal returns the location on line nearest the goal column.
func (v *Vim) lineWithGoal(line int, from buffer.Location) buffer.Location {
	buf := v.Buffer()
	if v.goalColumn < 0 {
		v.goalColumn = motion.DisplayColumn(buf, from)
	}
	r, _ := buf.LineOffsets(line)
	return motion.LocationAtColumn(buf, r.Start, v.goalColumn)
}

func (v *Vim) findOnLine(id MotionID, ch byte, loc buffer.Location, count int, again bool) (buffer.Location, bool) {
	buf := v.Buffer()
	dir := buffer.Forward
	if id == MotionFindBackward || id == MotionTillBackward {
		dir = buffer.Backward
	}
	till := id == MotionTillForward || id == MotionTillBackward

	for i := range count {
		from := loc
		// A repeated till would stop in front of the same character.
		if till && (again || i > 0) {
			from += dir.Step()
		}
		var next buffer.Location
		if till {
			next = motion.TillOnLine(buf, from, ch, dir)
		} else {
			next = motion.FindOnLine(buf, from, ch, dir)
		}
		if next == from {
			return loc, false
		}
		loc = next
	}
	return loc, true
}

func reverseFind(id MotionID) MotionID {
	switch id {
	case MotionFindForward:
		return MotionFindBackward
	case MotionFindBackward:
		return MotionFindForward
	case MotionTillForward:
		return MotionTillBackward
	default:
		return MotionTillForward
	}
}

// paragraph returns the next (or previous) empty line after a run of
// non-empty lines, or the buffer end.
func (v *Vim) paragraph(loc buffer.Location, forward bool) buffer.Location {
	buf := v.Buffer()
	line := buf.Line(loc)
	empty := func(l int) bool { return buf.LineText(l) == "" }

	step, last := 1, buf.LineCount()-1
	if !forward {
		step, last = -1, 0
	}
	for line != last && empty(line) {
		line += step
	}
	for line != last && !empty(line) {
		line += step
	}
	r, _ := buf.LineOffsets(line)
	if forward && line == buf.LineCount()-1 && !empty(line) {
		return buf.LinePos(r.Start, buffer.LineLastNonCR)
	}
	return r.Start
}

// searchFrom finds needle from loc, reporting wraps on the command line.
func (v *Vim) searchFrom(loc buffer.Location, needle string, dir buffer.Direction) (buffer.Location, bool) {
	if needle == "" {
		v.Host().SetCommandText("No previous search")
		return loc, false
	}
	found, wrapped := motion.Search(v.Buffer(), loc, needle, dir)
	if found == buffer.InvalidLocation {
		v.Host().SetCommandText(fmt.Sprintf("Pattern not found: %s", needle))
		return loc, false
	}
	if wrapped {
		if dir == buffer.Forward {
			v.Host().SetCommandText("search hit BOTTOM, continuing at TOP")
		} else {
			v.Host().SetCommandText("search hit TOP, continuing at BOTTOM")
		}
	}
	return found, true
}

// clampNormal keeps the cursor off the newline, as Normal mode requires.
func (v *Vim) clampNormal() {
	if buf := v.Buffer(); buf != nil {
		v.SetCursor(buf.ClampToVisibleLine(v.Cursor()))
	}
}
