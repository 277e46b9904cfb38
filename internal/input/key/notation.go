package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Notation errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses one key: a single character or a <...> group.
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	events, err := ParseKeys(spec)
	if err != nil {
		return Event{}, err
	}
	if len(events) != 1 {
		return Event{}, fmt.Errorf("%w: %q is %d keys", ErrInvalidSpec, spec, len(events))
	}
	return events[0], nil
}

// ParseKeys parses a key string in Vim notation into events.
func ParseKeys(s string) ([]Event, error) {
	var out []Event
	for len(s) > 0 {
		if s[0] == '<' {
			if end := strings.IndexByte(s, '>'); end > 1 {
				if ev, ok := parseGroup(s[1:end]); ok {
					out = append(out, ev)
					s = s[end+1:]
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size <= 1 {
			return out, fmt.Errorf("%w: invalid UTF-8", ErrInvalidSpec)
		}
		out = append(out, runeEvent(r))
		s = s[size:]
	}
	return out, nil
}

// MustParseKeys is ParseKeys for notation known to be valid.
func MustParseKeys(s string) []Event {
	events, err := ParseKeys(s)
	if err != nil {
		panic(err)
	}
	return events
}

// FormatKeys writes events in Vim notation. ParseKeys reads it back.
func FormatKeys(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.String())
	}
	return sb.String()
}

func runeEvent(r rune) Event {
	switch r {
	case '\n', '\r':
		return Event{Key: KeyEnter}
	case '\t':
		return Event{Key: KeyTab}
	case 0x1b:
		return Event{Key: KeyEscape}
	}
	return Event{Key: KeyRune, Rune: r}
}

// parseGroup parses the inside of <...>, e.g. "C-r", "S-F8", "Esc".
func parseGroup(inner string) (Event, bool) {
	var mods Modifier
	for len(inner) > 2 && inner[1] == '-' {
		m := modifierFromPrefix(inner[:1])
		if m == ModNone {
			return Event{}, false
		}
		mods = mods.With(m)
		inner = inner[2:]
	}

	if k := FromName(inner); k != KeyNone {
		return Event{Key: k, Modifiers: mods}, true
	}
	if r, ok := runeAliases[strings.ToLower(inner)]; ok {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, true
	}
	if r, size := utf8.DecodeRuneInString(inner); size == len(inner) && r != utf8.RuneError && mods != ModNone {
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, true
	}
	return Event{}, false
}
