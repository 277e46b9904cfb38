package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// WordMotion returns the start of the next (or previous) word, as w and b.
//
// Forward: skip the word under the cursor and the blanks after it; when not
// on a word, skip to the next word character. Backward: from inside a word
// go to its start, otherwise skip blanks and go to the start of the word
// before them.
func WordMotion(t Text, start buffer.Location, class Class, dir buffer.Direction) buffer.Location {
	isWord := class.isWord()
	t.MotionBegin(&start)

	if dir == buffer.Forward {
		if Skip(t, isWord, &start, dir) {
			Skip(t, IsSpaceOrTerminal, &start, dir)
		} else {
			SkipNot(t, isWord, &start, dir)
		}
		return t.Clamp(start)
	}

	origin := start
	if Skip(t, isWord, &start, dir) {
		// Not on the first char of the word: its start is the answer.
		if origin != start+1 {
			SkipNot(t, isWord, &start, buffer.Forward)
			return t.Clamp(start)
		}
	} else {
		SkipNot(t, isWord, &start, dir)
	}

	Skip(t, IsSpace, &start, dir)
	if Skip(t, isWord, &start, dir) {
		SkipNot(t, isWord, &start, buffer.Forward)
	}
	return t.Clamp(start)
}

// EndWordMotion returns the last character of the next (or previous) word,
// as e and ge. A multi-byte last character is returned by its first byte.
func EndWordMotion(t Text, start buffer.Location, class Class, dir buffer.Direction) buffer.Location {
	isWord := class.isWord()
	t.MotionBegin(&start)

	if dir == buffer.Backward {
		if Skip(t, isWord, &start, dir) {
			Skip(t, IsSpace, &start, dir)
		} else {
			SkipNot(t, isWord, &start, dir)
		}
		return ClusterStart(t, start)
	}

	origin := start
	if Skip(t, isWord, &start, dir) {
		// Moved more than one char: we were inside a word, stop at its end.
		if origin != start-1 {
			SkipNot(t, isWord, &start, buffer.Backward)
			return ClusterStart(t, start)
		}
	} else {
		SkipNot(t, isWord, &start, dir)
	}

	Skip(t, IsSpaceOrNewline, &start, dir)
	if Skip(t, isWord, &start, dir) {
		SkipNot(t, isWord, &start, buffer.Backward)
	}
	return ClusterStart(t, start)
}

// ChangeWordMotion returns the end of what the cursor is over, used by cw.
// Unlike WordMotion a run of blanks counts as a word and trailing blanks are
// not included.
func ChangeWordMotion(t Text, start buffer.Location, class Class, dir buffer.Direction) buffer.Location {
	isWord := class.isWord()
	t.MotionBegin(&start)
	if !Skip(t, isWord, &start, dir) {
		SkipNot(t, isWord, &start, dir)
	}
	return ClusterStart(t, start)
}

// AWordMotion returns the range of aw: the word under the cursor with its
// trailing blanks, or a blank run with the word after it, or a punctuation
// run with its trailing blanks.
func AWordMotion(t Text, start buffer.Location, class Class) buffer.Range {
	isWord := class.isWord()

	r := buffer.Range{Start: start, End: start}
	t.MotionBegin(&start)

	switch {
	case Skip(t, isWord, &start, buffer.Backward):
		start++
		r.Start = start
		Skip(t, isWord, &start, buffer.Forward)
		Skip(t, IsSpace, &start, buffer.Forward)
		r.End = start

	case Skip(t, IsSpace, &start, buffer.Forward):
		Skip(t, isWord, &start, buffer.Forward)
		r.End = start

	case SkipNot(t, isWord, &start, buffer.Backward):
		Skip(t, IsSpace, &start, buffer.Forward)
		start++
		r.Start = start
		SkipNot(t, isWord, &start, buffer.Forward)
		Skip(t, IsSpace, &start, buffer.Forward)
		r.End = start
	}

	return clampRange(t, r)
}

// InnerWordMotion returns the range of iw: only the run of word, blank or
// punctuation characters under the cursor.
func InnerWordMotion(t Text, start buffer.Location, class Class) buffer.Range {
	isWordOrSep := class.isWordOrSep()
	isWord := class.isWord()
	t.MotionBegin(&start)

	var r buffer.Range
	switch {
	case SkipNot(t, isWordOrSep, &start, buffer.Forward):
		r.End = start
		start--
		SkipNot(t, isWordOrSep, &start, buffer.Backward)
		r.Start = start + 1

	case Skip(t, IsSpace, &start, buffer.Forward):
		r.End = start
		start--
		Skip(t, IsSpace, &start, buffer.Backward)
		r.Start = start + 1

	default:
		Skip(t, isWord, &start, buffer.Forward)
		r.End = start
		start--
		Skip(t, isWord, &start, buffer.Backward)
		r.Start = start + 1
	}
	return clampRange(t, r)
}

// StandardCtrlMotion implements Ctrl+Left and Ctrl+Right of a conventional
// editor. Start is where the cursor was (kept on its line), End is the
// destination.
func StandardCtrlMotion(t Text, cursor buffer.Location, dir buffer.Direction) buffer.Range {
	t.MotionBegin(&cursor)

	current := min(t.LinePos(cursor, buffer.LineLastNonCR), t.Clamp(cursor))
	r := buffer.Range{Start: current, End: current}

	if dir == buffer.Forward {
		Skip(t, IsSpaceOrTerminal, &current, dir)
		if Skip(t, IsWORDChar, &current, dir) {
			Skip(t, IsSpace, &current, dir)
		}
	} else {
		// On the first char of a word, step off it so we reach the previous one.
		if current > 0 && IsWORDChar(t.ByteAt(current)) && !IsWORDChar(t.ByteAt(current-1)) {
			current--
		}
		Skip(t, IsSpaceOrTerminal, &current, dir)
		if Skip(t, IsWORDChar, &current, dir) {
			current++
		}
	}

	r.End = t.Clamp(current)
	return r
}

func clampRange(t Text, r buffer.Range) buffer.Range {
	r.Start = t.Clamp(r.Start)
	r.End = max(t.Clamp(r.End), r.Start)
	return r
}
