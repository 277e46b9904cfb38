package buffer

// LineLocation names a position on the line containing a location.
type LineLocation uint8

const (
	// LineNone yields InvalidLocation.
	LineNone LineLocation = iota
	// LineFirstGraphChar is the first printable non-space character.
	LineFirstGraphChar
	// LineLastGraphChar is the last printable non-space character.
	LineLastGraphChar
	// LineLastNonCR is the last character before the newline.
	LineLastNonCR
	// LineBegin is the first character of the line.
	LineBegin
	// BeyondLineEnd is one past the newline, the next line's start.
	BeyondLineEnd
	// LineCRBegin is the newline itself (or the sentinel on the last line).
	LineCRBegin
)

// IsGraph reports whether c is a printable, non-space character. Bytes of
// multi-byte UTF-8 sequences count as graphic so a run of them is never split.
func IsGraph(c byte) bool {
	return (c > ' ' && c < 127) || c >= 0x80
}

// Valid returns true if loc addresses a byte of the buffer.
func (b *Buffer) Valid(loc Location) bool {
	return loc >= 0 && int(loc) < b.text.Len()
}

// Clamp limits loc to [0, EndLocation()].
func (b *Buffer) Clamp(loc Location) Location {
	loc = min(loc, Location(b.text.Len()-1))
	return max(loc, 0)
}

// ClampToVisibleLine clamps loc and keeps it off the line's newline.
func (b *Buffer) ClampToVisibleLine(loc Location) Location {
	loc = b.Clamp(loc)
	return min(b.LinePos(loc, LineLastNonCR), loc)
}

// MotionBegin clamps *loc in place. It returns true if the location changed
// or is not at the buffer start.
func (b *Buffer) MotionBegin(loc *Location) bool {
	clamped := b.Clamp(*loc)
	if clamped != *loc {
		*loc = clamped
		return true
	}
	return *loc != 0
}

// LinePos returns the location of kind on the line containing loc. Results
// are clamped to the buffer and never cross onto a neighbouring line, except
// BeyondLineEnd which names the next line's first character.
func (b *Buffer) LinePos(loc Location, kind LineLocation) Location {
	if kind == LineNone {
		return InvalidLocation
	}

	size := Location(b.text.Len())
	at := func(l Location) byte { return b.text.At(int(l)) }

	loc = b.Clamp(loc)

	// On the newline, step back so an empty line finds itself.
	if at(loc) == '\n' {
		loc--
	}
	for loc >= 0 && at(loc) != '\n' {
		loc--
	}
	loc++

	switch kind {
	case BeyondLineEnd:
		for loc < size && at(loc) != '\n' && at(loc) != 0 {
			loc++
		}
		return b.Clamp(loc + 1)

	case LineCRBegin:
		for loc < size && at(loc) != '\n' && at(loc) != 0 {
			loc++
		}
		return loc

	case LineFirstGraphChar:
		for loc < size && !IsGraph(at(loc)) && at(loc) != '\n' {
			loc++
		}
		return b.Clamp(loc)

	case LineLastNonCR:
		start := loc
		for loc < size && at(loc) != '\n' && at(loc) != 0 {
			loc++
		}
		if start != loc {
			loc--
		}
		return b.Clamp(loc)

	case LineLastGraphChar:
		for loc < size && at(loc) != '\n' && at(loc) != 0 {
			loc++
		}
		for loc > 0 && loc < size && !IsGraph(at(loc)) {
			loc--
		}
		return b.Clamp(loc)

	default:
		return b.Clamp(loc)
	}
}

// LineEnds returns a copy of the line-end offsets. Each entry is the offset
// just past a line's newline; the last entry equals Len().
func (b *Buffer) LineEnds() []Location {
	out := make([]Location, len(b.lineEnds))
	copy(out, b.lineEnds)
	return out
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lineEnds)
}

// Line returns the zero-based line containing loc.
func (b *Buffer) Line(loc Location) int {
	idx := b.lowerBound(loc)
	if idx < len(b.lineEnds) && loc >= b.lineEnds[idx] {
		idx++
	}
	return min(max(0, idx), len(b.lineEnds)-1)
}

// Column returns the byte offset of loc from the start of its line.
func (b *Buffer) Column(loc Location) int {
	return int(loc - b.LinePos(loc, LineBegin))
}

// LineOffsets returns the [start, end) range of line, where end is just
// past the newline. ok is false if the line does not exist.
func (b *Buffer) LineOffsets(line int) (r Range, ok bool) {
	if line < 0 || line >= len(b.lineEnds) {
		return Range{}, false
	}
	r.End = b.lineEnds[line]
	if line > 0 {
		r.Start = b.lineEnds[line-1]
	}
	return r, true
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line int) string {
	r, ok := b.LineOffsets(line)
	if !ok {
		return ""
	}
	s := b.Slice(r.Start, r.End)
	if n := len(s); n > 0 && (s[n-1] == '\n' || s[n-1] == 0) {
		s = s[:n-1]
	}
	return s
}

// OffsetByChars walks count bytes from loc (backwards for negative counts),
// stopping at the buffer end, and clamps the result to the line position
// limit and the buffer. Pass LineNone for no line limit.
func (b *Buffer) OffsetByChars(loc Location, count int, limit LineLocation) Location {
	dir := Location(1)
	if count < 0 {
		dir = -1
		count = -count
	}

	clampLoc := b.LinePos(loc, limit)
	size := Location(b.text.Len())

	current := loc
	for i := 0; i < count; i++ {
		if dir < 0 {
			current += dir
		}
		if current >= size {
			break
		}
		current = max(0, current)
		if b.text.At(int(current)) == '\n' && current+dir >= size {
			break
		}
		if dir > 0 {
			current += dir
		}
	}

	if clampLoc != InvalidLocation {
		current = min(clampLoc, current)
	}
	return b.Clamp(current)
}
