package vim

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/mode"
)

// updateVisual recomputes the selection from the anchor and cursor. The
// character under the later end is included; line-wise selections cover
// whole lines.
func (v *Vim) updateVisual() {
	buf := v.Buffer()
	cursor := v.Cursor()
	start, end := min(v.anchor, cursor), max(v.anchor, cursor)

	var r buffer.Range
	if v.visualLine {
		r = v.lineRange(buf.Line(start), buf.Line(end))
	} else {
		next := motion.NextCluster(buf, end)
		if next == end && end < buf.EndLocation() {
			// On a newline: select it.
			next = end + 1
		}
		r = buffer.Range{Start: start, End: next}
	}
	v.SetVisualRange(r)
	buf.SetSelection(r)
}

// selectObject selects a text object in Visual mode.
func (v *Vim) selectObject(cmd *Command) {
	if v.EditorMode() != mode.Visual {
		return
	}
	r, ok := v.textObjectRange(cmd.TextObject, cmd.TextObjectPrefix, v.Cursor())
	if !ok || r.IsEmpty() {
		return
	}
	v.anchor = r.Start
	v.SetCursor(motion.ClusterStart(v.Buffer(), r.End-1))
	v.updateVisual()
}
