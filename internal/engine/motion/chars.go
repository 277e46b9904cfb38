package motion

import "github.com/dshills/modalcore/internal/engine/buffer"

// Predicate classifies a byte.
type Predicate func(c byte) bool

// IsWordChar reports letters, digits, underscore and UTF-8 sequence bytes.
func IsWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c >= 0x80:
		return true
	}
	return false
}

// IsWORDChar reports any printable non-space byte.
func IsWORDChar(c byte) bool {
	return buffer.IsGraph(c)
}

// IsWordOrSep reports word characters, spaces, newlines and the sentinel.
func IsWordOrSep(c byte) bool {
	return IsWordChar(c) || c == ' ' || c == '\n' || c == 0
}

// IsWORDOrSep reports WORD characters, spaces, newlines and the sentinel.
func IsWORDOrSep(c byte) bool {
	return IsWORDChar(c) || c == ' ' || c == '\n' || c == 0
}

// IsSpace reports a space.
func IsSpace(c byte) bool {
	return c == ' '
}

// IsSpaceOrNewline reports a space or newline.
func IsSpaceOrNewline(c byte) bool {
	return c == ' ' || c == '\n'
}

// IsSpaceOrTerminal reports a space, newline or the sentinel.
func IsSpaceOrTerminal(c byte) bool {
	return c == ' ' || c == '\n' || c == 0
}

// IsNewlineOrEnd reports a newline or the sentinel.
func IsNewlineOrEnd(c byte) bool {
	return c == '\n' || c == 0
}
