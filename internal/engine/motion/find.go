package motion

import (
	"strings"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// FindOnLine searches for ch from start in dir without crossing a newline,
// as f and F. A match under the cursor is skipped. If there is no match the
// start location is returned.
func FindOnLine(t Text, start buffer.Location, ch byte, dir buffer.Direction) buffer.Location {
	entry := start
	SkipOne(t, func(c byte) bool { return c == ch }, &start, dir)
	Skip(t, func(c byte) bool { return c != ch && c != '\n' }, &start, dir)

	if t.Valid(start) && t.ByteAt(start) == ch {
		return start
	}
	return entry
}

// TillOnLine is FindOnLine stopping one character short of the match, as t
// and T. It returns start when there is no match.
func TillOnLine(t Text, start buffer.Location, ch byte, dir buffer.Direction) buffer.Location {
	found := FindOnLine(t, start, ch, dir)
	if found == start {
		return start
	}
	return found - dir.Step()
}

// Find returns the first location at or after start where needle occurs,
// or InvalidLocation.
func Find(t Text, start buffer.Location, needle string) buffer.Location {
	if start < 0 || start > t.EndLocation() {
		return buffer.InvalidLocation
	}
	hay := t.Slice(start, t.EndLocation()+1)
	idx := strings.Index(hay, needle)
	if idx < 0 {
		return buffer.InvalidLocation
	}
	return start + buffer.Location(idx)
}

// FindBackward returns the last location before start where needle occurs,
// or InvalidLocation.
func FindBackward(t Text, start buffer.Location, needle string) buffer.Location {
	if needle == "" || start <= 0 {
		return buffer.InvalidLocation
	}
	start = min(start, t.EndLocation()+1)
	// A match may begin before start and run past it.
	hay := t.Slice(0, min(start+buffer.Location(len(needle))-1, t.EndLocation()+1))
	idx := strings.LastIndex(hay, needle)
	if idx < 0 {
		return buffer.InvalidLocation
	}
	return buffer.Location(idx)
}

// Search finds needle from start in dir, wrapping around the buffer ends.
// A match at start itself is only accepted after wrapping. wrapped reports
// whether the search went past an end.
func Search(t Text, start buffer.Location, needle string, dir buffer.Direction) (loc buffer.Location, wrapped bool) {
	if needle == "" {
		return buffer.InvalidLocation, false
	}
	if dir == buffer.Forward {
		if loc = Find(t, start+1, needle); loc != buffer.InvalidLocation {
			return loc, false
		}
		return Find(t, 0, needle), true
	}
	if loc = FindBackward(t, start, needle); loc != buffer.InvalidLocation {
		return loc, false
	}
	return FindBackward(t, t.EndLocation()+1, needle), true
}

var delimiterPairs = map[byte]struct {
	match byte
	dir   buffer.Direction
}{
	'(': {')', buffer.Forward},
	'[': {']', buffer.Forward},
	'{': {'}', buffer.Forward},
	')': {'(', buffer.Backward},
	']': {'[', buffer.Backward},
	'}': {'{', buffer.Backward},
}

// MatchingDelimiter implements %: from the first bracket at or after loc on
// its line, return the bracket that balances it.
func MatchingDelimiter(t Text, loc buffer.Location) (buffer.Location, bool) {
	loc = t.Clamp(loc)
	end := t.LinePos(loc, buffer.LineCRBegin)
	for loc < end {
		if _, ok := delimiterPairs[t.ByteAt(loc)]; ok {
			break
		}
		loc++
	}
	open := t.ByteAt(loc)
	pair, ok := delimiterPairs[open]
	if !ok {
		return buffer.InvalidLocation, false
	}

	depth := 0
	for cur := loc; t.Valid(cur); cur += pair.dir.Step() {
		switch t.ByteAt(cur) {
		case open:
			depth++
		case pair.match:
			depth--
			if depth == 0 {
				return cur, true
			}
		}
	}
	return buffer.InvalidLocation, false
}

// InnerPair returns the range strictly between the brackets enclosing loc,
// as i( and friends. With around set the brackets are included.
func InnerPair(t Text, loc buffer.Location, open, close byte, around bool) (buffer.Range, bool) {
	loc = t.Clamp(loc)

	// Walk back to the unbalanced opener.
	depth := 0
	start := buffer.InvalidLocation
	for cur := loc; cur >= 0; cur-- {
		c := t.ByteAt(cur)
		if c == close && cur != loc {
			depth++
		} else if c == open {
			if depth == 0 {
				start = cur
				break
			}
			depth--
		}
	}
	if start == buffer.InvalidLocation {
		return buffer.Range{}, false
	}
	end, ok := MatchingDelimiter(t, start)
	if !ok || end < loc {
		return buffer.Range{}, false
	}
	if around {
		return buffer.Range{Start: start, End: end + 1}, true
	}
	return buffer.Range{Start: start + 1, End: end}, true
}

// InnerQuote returns the range inside the quote pair around loc on its line,
// as i" and a". It returns false when the line has no enclosing pair.
func InnerQuote(t Text, loc buffer.Location, quote byte, around bool) (buffer.Range, bool) {
	loc = t.Clamp(loc)
	lineStart := t.LinePos(loc, buffer.LineBegin)
	lineEnd := t.LinePos(loc, buffer.LineCRBegin)

	var quotes []buffer.Location
	for cur := lineStart; cur < lineEnd; cur++ {
		if t.ByteAt(cur) == quote {
			quotes = append(quotes, cur)
		}
	}
	for i := 0; i+1 < len(quotes); i += 2 {
		open, close := quotes[i], quotes[i+1]
		if loc < open || loc > close {
			// A cursor before the first pair selects that pair, like Vim.
			if loc < open && i == 0 {
				return quoteRange(open, close, around), true
			}
			continue
		}
		return quoteRange(open, close, around), true
	}
	return buffer.Range{}, false
}

func quoteRange(open, close buffer.Location, around bool) buffer.Range {
	if around {
		return buffer.Range{Start: open, End: close + 1}
	}
	return buffer.Range{Start: open + 1, End: close}
}
