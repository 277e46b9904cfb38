package register

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Errors returned by Store.
var (
	ErrInvalidRegister  = errors.New("invalid register")
	ErrReadOnlyRegister = errors.New("register is read-only")
	ErrNoClipboard      = errors.New("no clipboard available")
)

// Special register names.
const (
	Unnamed      = '"'
	LastYank     = '0'
	SmallDelete  = '-'
	BlackHole    = '_'
	LastInserted = '.'
	FileName     = '%'
	Alternate    = '#'
	LastCommand  = ':'
	LastSearch   = '/'
	Clipboard    = '+'
	Selection    = '*'
)

// Kind categorizes registers by behavior.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnnamed
	KindNamed
	KindNumbered
	KindLastYank
	KindSmallDelete
	KindBlackHole
	KindReadOnly
	KindClipboard
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnnamed:
		return "unnamed"
	case KindNamed:
		return "named"
	case KindNumbered:
		return "numbered"
	case KindLastYank:
		return "yank"
	case KindSmallDelete:
		return "small-delete"
	case KindBlackHole:
		return "black-hole"
	case KindReadOnly:
		return "read-only"
	case KindClipboard:
		return "clipboard"
	default:
		return "invalid"
	}
}

// KindOf returns the kind of the register called name.
func KindOf(name rune) Kind {
	switch {
	case name == Unnamed:
		return KindUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return KindNamed
	case name == LastYank:
		return KindLastYank
	case name >= '1' && name <= '9':
		return KindNumbered
	case name == SmallDelete:
		return KindSmallDelete
	case name == BlackHole:
		return KindBlackHole
	case name == LastInserted, name == FileName, name == Alternate, name == LastCommand, name == LastSearch:
		return KindReadOnly
	case name == Clipboard, name == Selection:
		return KindClipboard
	default:
		return KindInvalid
	}
}

// IsValid returns true if name is a register.
func IsValid(name rune) bool {
	return KindOf(name) != KindInvalid
}

// Register is the content of one register.
type Register struct {
	Text     string
	Linewise bool
}

// IsEmpty returns true if the register holds no text.
func (r Register) IsEmpty() bool {
	return r.Text == ""
}

// ClipboardProvider gives access to the system clipboard.
type ClipboardProvider interface {
	Get() (string, error)
	Set(text string) error
}

// Store holds the registers of one session.
type Store struct {
	regs      map[rune]Register
	clipboard ClipboardProvider
}

// Option configures a Store.
type Option func(*Store)

// WithClipboard proxies + and * to c.
func WithClipboard(c ClipboardProvider) Option {
	return func(s *Store) {
		s.clipboard = c
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{regs: make(map[rune]Register)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetClipboard replaces the clipboard provider. Nil disables + and *.
func (s *Store) SetClipboard(c ClipboardProvider) {
	s.clipboard = c
}

// HasClipboard returns true if + and * are usable.
func (s *Store) HasClipboard() bool {
	return s.clipboard != nil
}

// Get returns the register called name. Uppercase names read their
// lowercase register.
func (s *Store) Get(name rune) (Register, error) {
	switch KindOf(name) {
	case KindInvalid:
		return Register{}, fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	case KindBlackHole:
		return Register{}, nil
	case KindClipboard:
		if s.clipboard == nil {
			return Register{}, ErrNoClipboard
		}
		text, err := s.clipboard.Get()
		if err != nil {
			return Register{}, fmt.Errorf("clipboard: %w", err)
		}
		return Register{Text: text, Linewise: strings.HasSuffix(text, "\n")}, nil
	}
	return s.regs[unicode.ToLower(name)], nil
}

// Set writes a register the user named. Uppercase names append to their
// lowercase register; if either side is linewise the result is linewise.
func (s *Store) Set(name rune, r Register) error {
	switch KindOf(name) {
	case KindInvalid:
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	case KindBlackHole:
		return nil
	case KindReadOnly:
		return fmt.Errorf("%w: %q", ErrReadOnlyRegister, name)
	case KindClipboard:
		if s.clipboard == nil {
			return ErrNoClipboard
		}
		if err := s.clipboard.Set(r.Text); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		return nil
	}

	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		prev := s.regs[name]
		if prev.Linewise || r.Linewise {
			if prev.Text != "" && !strings.HasSuffix(prev.Text, "\n") {
				prev.Text += "\n"
			}
			prev.Linewise = true
		}
		prev.Text += r.Text
		r = prev
	}
	s.regs[name] = r
	return nil
}

// Yank records yanked text. With no register (0 or '"') it fills 0 and the
// unnamed register; an explicit register is filled along with unnamed.
func (s *Store) Yank(name rune, r Register) error {
	switch name {
	case 0, Unnamed:
		s.regs[LastYank] = r
	case BlackHole:
		return nil
	default:
		if err := s.Set(name, r); err != nil {
			return err
		}
		r, _ = s.Get(name)
	}
	s.regs[Unnamed] = r
	return nil
}

// Delete records deleted text. With no register, text within one line goes
// to '-', anything else shifts 1-9 down and lands in 1. The unnamed
// register always follows unless the black hole was named.
func (s *Store) Delete(name rune, r Register) error {
	switch name {
	case 0, Unnamed:
		if !r.Linewise && !strings.Contains(r.Text, "\n") {
			s.regs[SmallDelete] = r
		} else {
			s.shiftNumbered(r)
		}
	case BlackHole:
		return nil
	default:
		if err := s.Set(name, r); err != nil {
			return err
		}
		r, _ = s.Get(name)
	}
	s.regs[Unnamed] = r
	return nil
}

func (s *Store) shiftNumbered(r Register) {
	for n := '9'; n > '1'; n-- {
		s.regs[n] = s.regs[n-1]
	}
	s.regs['1'] = r
}

// SetReadOnly writes one of the engine-owned registers . % # : and /.
func (s *Store) SetReadOnly(name rune, text string) error {
	if KindOf(name) != KindReadOnly {
		return fmt.Errorf("%w: %q is not read-only", ErrInvalidRegister, name)
	}
	s.regs[name] = Register{Text: text}
	return nil
}

// Restore writes any stored register directly, bypassing append and
// read-only rules. It is used when reloading saved state.
func (s *Store) Restore(name rune, r Register) error {
	switch KindOf(name) {
	case KindInvalid, KindBlackHole, KindClipboard:
		return fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}
	s.regs[unicode.ToLower(name)] = r
	return nil
}

// displayOrder is the order :reg lists registers in.
const displayOrder = `"0123456789abcdefghijklmnopqrstuvwxyz-.:%#/`

// Each calls fn for every non-empty stored register in display order.
func (s *Store) Each(fn func(name rune, r Register)) {
	for _, name := range displayOrder {
		if r, ok := s.regs[name]; ok && !r.IsEmpty() {
			fn(name, r)
		}
	}
}

// Clear empties every stored register.
func (s *Store) Clear() {
	clear(s.regs)
}
