package key

import "strings"

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if all bits of mod are set.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod && mod != ModNone
}

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

// HasCtrl returns true if Ctrl is held.
func (m Modifier) HasCtrl() bool { return m.Has(ModCtrl) }

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool { return m.Has(ModAlt) }

// HasMeta returns true if Meta is held.
func (m Modifier) HasMeta() bool { return m.Has(ModMeta) }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// prefixes lists modifiers in the order Vim notation writes them.
var prefixes = []struct {
	mod    Modifier
	prefix string
}{
	{ModCtrl, "C"},
	{ModAlt, "A"},
	{ModMeta, "D"},
	{ModShift, "S"},
}

// String returns the Vim prefix form, e.g. "C-S-".
func (m Modifier) String() string {
	var sb strings.Builder
	for _, p := range prefixes {
		if m.Has(p.mod) {
			sb.WriteString(p.prefix)
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// modifierFromPrefix maps a single notation letter to its modifier.
func modifierFromPrefix(s string) Modifier {
	switch strings.ToLower(s) {
	case "c":
		return ModCtrl
	case "a", "m":
		return ModAlt
	case "d":
		return ModMeta
	case "s":
		return ModShift
	}
	return ModNone
}
