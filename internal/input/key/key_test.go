package key

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Esc", KeyEscape},
		{"escape", KeyEscape},
		{"CR", KeyEnter},
		{"bs", KeyBackspace},
		{"F8", KeyF8},
		{"f12", KeyF12},
		{"F13", KeyNone},
		{"F08", KeyNone},
		{"nope", KeyNone},
	}
	for _, tt := range tests {
		if got := FromName(tt.name); got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModifier(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.HasCtrl() || !m.HasShift() || m.HasAlt() {
		t.Errorf("flags of %v wrong", m)
	}
	if !m.Has(ModCtrl|ModShift) || m.Has(ModCtrl|ModAlt) {
		t.Error("Has should require every bit")
	}
	if got := m.String(); got != "C-S-" {
		t.Errorf("String() = %q, want %q", got, "C-S-")
	}
	if m.Without(ModShift) != ModCtrl {
		t.Error("Without(ModShift)")
	}
}

func TestParseKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []Event
	}{
		{"dw", []Event{{Key: KeyRune, Rune: 'd'}, {Key: KeyRune, Rune: 'w'}}},
		{"<Esc>", []Event{{Key: KeyEscape}}},
		{"<C-r>", []Event{{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl}}},
		{"<S-F8>", []Event{{Key: KeyF8, Modifiers: ModShift}}},
		{"<lt>", []Event{{Key: KeyRune, Rune: '<'}}},
		{"<b>", []Event{{Key: KeyRune, Rune: '<'}, {Key: KeyRune, Rune: 'b'}, {Key: KeyRune, Rune: '>'}}},
		{"a\n", []Event{{Key: KeyRune, Rune: 'a'}, {Key: KeyEnter}}},
		{"é", []Event{{Key: KeyRune, Rune: 'é'}}},
		{"<C-Space>", []Event{{Key: KeyRune, Rune: ' ', Modifiers: ModCtrl}}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeys(tt.in)
			if err != nil {
				t.Fatalf("ParseKeys() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseKeys() = %#v, want %#v", got, tt.want)
			}
			for i := range got {
				if !got[i].Equals(tt.want[i]) {
					t.Errorf("event %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("Parse(\"\") error = %v", err)
	}
	if _, err := Parse("ab"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("Parse(ab) error = %v", err)
	}
	ev, err := Parse("<C-w>")
	if err != nil || !ev.IsCtrl('w') {
		t.Errorf("Parse(<C-w>) = %#v, %v", ev, err)
	}
	if _, err := ParseKeys("a\xffb"); !errors.Is(err, ErrInvalidSpec) {
		t.Errorf("invalid UTF-8 error = %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, in := range []string{"dw", "ihello<Esc>", "<C-r>", "<S-F8>", "<lt>x", "a b", ":w<CR>"} {
		events := MustParseKeys(in)
		out := FormatKeys(events)
		back := MustParseKeys(out)
		if len(back) != len(events) {
			t.Fatalf("%q -> %q -> %d events", in, out, len(back))
		}
		for i := range back {
			if !back[i].Equals(events[i]) {
				t.Errorf("%q: event %d = %#v, want %#v", in, i, back[i], events[i])
			}
		}
	}
}

func TestEventPredicates(t *testing.T) {
	shiftA := Event{Key: KeyRune, Rune: 'A', Modifiers: ModShift}
	if shiftA.IsModified() || !shiftA.IsChar() {
		t.Error("Shift on a character is not a modifier")
	}
	ctrl := Event{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl}
	if ctrl.IsChar() || !ctrl.IsModified() || !ctrl.IsCtrl('r') || ctrl.IsCtrl('x') {
		t.Error("Ctrl+r predicates")
	}
	if !(Event{Key: KeyEscape}).IsEscape() || (Event{Key: KeyEscape, Modifiers: ModShift}).IsEscape() {
		t.Error("IsEscape")
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Event{Key: KeyRune, Rune: 'x'}},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModCtrl), Event{Key: KeyRune, Rune: 'r', Modifiers: ModCtrl}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Event{Key: KeyEnter}},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Event{Key: KeyTab}},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Event{Key: KeyEscape}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), Event{Key: KeyBackspace}},
		{"shift f8", tcell.NewEventKey(tcell.KeyF8, 0, tcell.ModShift), Event{Key: KeyF8, Modifiers: ModShift}},
		{"ctrl left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl), Event{Key: KeyLeft, Modifiers: ModCtrl}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromTcell(tt.ev)
			if !got.Equals(tt.want) {
				t.Errorf("FromTcell() = %#v, want %#v", got, tt.want)
			}
			if back := FromTcell(ToTcell(got)); !back.Equals(got) {
				t.Errorf("round trip = %#v, want %#v", back, got)
			}
		})
	}
}

func TestFromTcellControlCode(t *testing.T) {
	got := FromTcell(tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl))
	if !got.IsCtrl('r') {
		t.Errorf("FromTcell(KeyCtrlR) = %#v, want Ctrl+r", got)
	}
}
