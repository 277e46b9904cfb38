package marker

import (
	"slices"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// Index is the set of markers of one buffer, ordered by start offset.
type Index struct {
	arena  map[ID]*Marker
	starts []buffer.Location        // sorted, unique
	byPos  map[buffer.Location][]ID // ids sorted ascending
	nextID ID

	onChange func()
}

var _ buffer.RangeTracker = (*Index)(nil)

// NewIndex creates an empty index. onChange, if not nil, is called whenever
// markers are added, removed or restyled.
func NewIndex(onChange func()) *Index {
	return &Index{
		arena:    make(map[ID]*Marker),
		byPos:    make(map[buffer.Location][]ID),
		onChange: onChange,
	}
}

// SetOnChange replaces the change callback.
func (x *Index) SetOnChange(fn func()) {
	x.onChange = fn
}

func (x *Index) changed() {
	if x.onChange != nil {
		x.onChange()
	}
}

// Len returns the number of markers.
func (x *Index) Len() int {
	return len(x.arena)
}

// Add stores m and returns its new ID. Any ID already on m is replaced.
func (x *Index) Add(m Marker) ID {
	x.nextID++
	m.ID = x.nextID
	m.Range = m.Range.Normalize()
	x.arena[m.ID] = &m
	x.link(m.ID, m.Range.Start)
	x.changed()
	return m.ID
}

// Get returns a copy of the marker with id.
func (x *Index) Get(id ID) (Marker, bool) {
	m, ok := x.arena[id]
	if !ok {
		return Marker{}, false
	}
	return *m, true
}

// SetRange moves the marker with id to r.
func (x *Index) SetRange(id ID, r buffer.Range) bool {
	m, ok := x.arena[id]
	if !ok {
		return false
	}
	x.unlink(id, m.Range.Start)
	m.Range = r.Normalize()
	x.link(id, m.Range.Start)
	x.changed()
	return true
}

// Remove deletes the marker with id. It returns false if there was none.
func (x *Index) Remove(id ID) bool {
	if !x.remove(id) {
		return false
	}
	x.changed()
	return true
}

// ClearSet removes every marker in ids.
func (x *Index) ClearSet(ids []ID) {
	removed := false
	for _, id := range ids {
		removed = x.remove(id) || removed
	}
	if removed {
		x.changed()
	}
}

// Clear removes every marker matching types.
func (x *Index) Clear(types Type) {
	var ids []ID
	x.ForEach(types, buffer.Forward, 0, maxLocation, func(m *Marker) bool {
		ids = append(ids, m.ID)
		return true
	})
	for _, id := range ids {
		x.remove(id)
	}
	x.changed()
}

// Hide sets every marker matching types to DisplayHidden.
func (x *Index) Hide(types Type) {
	x.Show(types, DisplayHidden)
}

// Show sets the display flags of every marker matching types.
func (x *Index) Show(types Type, display Display) {
	x.ForEach(types, buffer.Forward, 0, maxLocation, func(m *Marker) bool {
		m.Display = display
		return true
	})
	x.changed()
}

// Markers returns copies of the markers matching types in start order.
func (x *Index) Markers(types Type) []Marker {
	var out []Marker
	x.ForEach(types, buffer.Forward, 0, maxLocation, func(m *Marker) bool {
		out = append(out, *m)
		return true
	})
	return out
}

// At returns the markers matching types that contain loc.
func (x *Index) At(loc buffer.Location, types Type) []Marker {
	var out []Marker
	x.ForEach(types, buffer.Forward, 0, loc, func(m *Marker) bool {
		if m.ContainsLocation(loc) {
			out = append(out, *m)
		}
		return true
	})
	return out
}

const maxLocation = buffer.Location(int(^uint(0) >> 1))

// ForEach visits the markers matching types whose start lies in
// [begin, end], in dir order. Visiting stops when fn returns false. fn may
// change a marker's display fields but must not move or remove markers.
func (x *Index) ForEach(types Type, dir buffer.Direction, begin, end buffer.Location, fn func(m *Marker) bool) {
	lo, _ := slices.BinarySearch(x.starts, begin)
	hi, found := slices.BinarySearch(x.starts, end)
	if found {
		hi++
	}
	if lo >= hi {
		return
	}

	visit := func(ids []ID) bool {
		for i := range ids {
			id := ids[i]
			if dir == buffer.Backward {
				id = ids[len(ids)-1-i]
			}
			m := x.arena[id]
			if m.Type&types == 0 {
				continue
			}
			if !fn(m) {
				return false
			}
		}
		return true
	}

	if dir == buffer.Forward {
		for _, pos := range x.starts[lo:hi] {
			if !visit(x.byPos[pos]) {
				return
			}
		}
		return
	}
	for i := hi - 1; i >= lo; i-- {
		pos := x.starts[i]
		if !visit(x.byPos[pos]) {
			return
		}
	}
}

// FindNext returns the first marker matching types that starts after loc
// (Forward) or before it (Backward). When there is none the search wraps
// around and the first marker from the far end is returned.
func (x *Index) FindNext(loc buffer.Location, dir buffer.Direction, types Type) (Marker, bool) {
	loc = max(0, loc)

	var found *Marker
	search := func(accept func(start buffer.Location) bool) {
		x.ForEach(types, dir, 0, maxLocation, func(m *Marker) bool {
			if !accept(m.Range.Start) {
				return true
			}
			found = m
			return false
		})
	}

	if dir == buffer.Forward {
		search(func(s buffer.Location) bool { return s > loc })
	} else {
		search(func(s buffer.Location) bool { return s < loc })
	}
	if found == nil {
		search(func(buffer.Location) bool { return true })
	}
	if found == nil {
		return Marker{}, false
	}
	return *found, true
}

// Edit tracking

// UpdateForInsert shifts markers at or after start forward by the inserted
// length. A marker straddling start grows to keep covering its text.
func (x *Index) UpdateForInsert(start, end buffer.Location) {
	dist := end - start
	if dist <= 0 {
		return
	}
	x.reshape(func(m *Marker) {
		switch {
		case m.Range.End <= start:
		case m.Range.Start >= start:
			m.Range = m.Range.Shift(dist)
		default:
			m.Range.End += dist
		}
	})
}

// UpdateForDelete adjusts markers for removal of [start, end). Markers after
// the range shift back, markers before it are untouched, and overlapping
// markers lose the overlapped part.
func (x *Index) UpdateForDelete(start, end buffer.Location) {
	if end <= start {
		return
	}
	mapLoc := func(loc buffer.Location) buffer.Location {
		switch {
		case loc <= start:
			return loc
		case loc <= end:
			return start
		default:
			return loc - (end - start)
		}
	}
	x.reshape(func(m *Marker) {
		if start >= m.Range.End {
			return
		}
		m.Range = buffer.Range{Start: mapLoc(m.Range.Start), End: mapLoc(m.Range.End)}
	})
}

// reshape applies fn to every marker and rebuilds the position index.
func (x *Index) reshape(fn func(m *Marker)) {
	if len(x.arena) == 0 {
		return
	}
	for _, m := range x.arena {
		fn(m)
	}
	x.rekey()
}

func (x *Index) rekey() {
	x.starts = x.starts[:0]
	clear(x.byPos)
	ids := make([]ID, 0, len(x.arena))
	for id := range x.arena {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		x.link(id, x.arena[id].Range.Start)
	}
}

func (x *Index) link(id ID, pos buffer.Location) {
	ids, ok := x.byPos[pos]
	if !ok {
		i, _ := slices.BinarySearch(x.starts, pos)
		x.starts = slices.Insert(x.starts, i, pos)
	}
	i, _ := slices.BinarySearch(ids, id)
	x.byPos[pos] = slices.Insert(ids, i, id)
}

func (x *Index) unlink(id ID, pos buffer.Location) {
	ids := slices.DeleteFunc(x.byPos[pos], func(o ID) bool { return o == id })
	if len(ids) > 0 {
		x.byPos[pos] = ids
		return
	}
	delete(x.byPos, pos)
	if i, ok := slices.BinarySearch(x.starts, pos); ok {
		x.starts = slices.Delete(x.starts, i, i+1)
	}
}

func (x *Index) remove(id ID) bool {
	m, ok := x.arena[id]
	if !ok {
		return false
	}
	x.unlink(id, m.Range.Start)
	delete(x.arena, id)
	return true
}
