package standard_test

import (
	"testing"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/mode/modetest"
	"github.com/dshills/modalcore/internal/input/register"
	"github.com/dshills/modalcore/internal/input/standard"
)

func newStandard(text string) (*standard.Standard, *modetest.Host) {
	h := modetest.NewHost(text)
	s := standard.New(h)
	s.Begin()
	return s, h
}

func feed(t *testing.T, s *standard.Standard, keys string) {
	t.Helper()
	if _, err := s.AddCommandText(keys); err != nil {
		t.Fatalf("AddCommandText(%q) error = %v", keys, err)
	}
}

func TestEditing(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		keys       string
		wantText   string
		wantCursor buffer.Location
	}{
		{"type", "", "abc", "abc", 3},
		{"type midline", "ac", "<Right>b", "abc", 2},
		{"enter", "ab", "<Right><CR>", "a\nb", 2},
		{"tab", "x", "<Tab>", "    x", 4},
		{"backspace", "abc", "<End><BS>", "ab", 2},
		{"backspace joins lines", "a\nb", "<Down><Home><BS>", "ab", 1},
		{"backspace at start", "abc", "<BS>", "abc", 0},
		{"delete", "abc", "<Del>", "bc", 0},
		{"delete joins lines", "a\nb", "<End><Del>", "ab", 1},
		{"home", "abc", "<End><Home>x", "xabc", 1},
		{"right wraps", "a\nb", "<Right><Right>x", "a\nxb", 3},
		{"left wraps", "a\nb", "<Down><Left>x", "ax\nb", 2},
		{"shift selection replaced", "hello world", "<S-Right><S-Right>X", "Xllo world", 1},
		{"ctrl shift right delete", "foo bar", "<C-S-Right><Del>", "bar", 0},
		{"left collapses selection", "abcd", "<S-Right><S-Right><Left>x", "xabcd", 1},
		{"escape drops selection", "abc", "<S-Right><Esc>x", "axbc", 2},
		{"select all", "abc\ndef", "<C-a>x", "x", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h := newStandard(tt.text)
			feed(t, s, tt.keys)
			if h.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", h.Text(), tt.wantText)
			}
			if s.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", s.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		keys       string
		wantCursor buffer.Location
	}{
		{"ctrl right", "foo bar", "<C-Right>", 4},
		{"ctrl right to end", "foo bar", "<C-Right><C-Right>", 7},
		{"ctrl left", "foo bar", "<End><C-Left>", 4},
		{"ctrl left to start", "foo bar", "<End><C-Left><C-Left>", 0},
		{"down keeps column", "abc\nd\nefg", "<End><Down><Down>", 9},
		{"down on last line", "ab", "<Down>", 2},
		{"up on first line", "ab", "<End><Up>", 0},
		{"ctrl end", "a\nb", "<C-End>", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h := newStandard(tt.text)
			feed(t, s, tt.keys)
			if s.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", s.Cursor(), tt.wantCursor)
			}
			if h.Text() != tt.text {
				t.Errorf("navigation changed text to %q", h.Text())
			}
		})
	}
}

func TestSelectionMode(t *testing.T) {
	s, h := newStandard("hello")
	if s.EditorMode() != mode.Insert {
		t.Fatalf("EditorMode() = %v, want Insert", s.EditorMode())
	}

	feed(t, s, "<S-Right><S-Right>")
	if s.EditorMode() != mode.Visual {
		t.Errorf("EditorMode() = %v, want Visual", s.EditorMode())
	}
	want := buffer.Range{Start: 0, End: 2}
	if s.VisualRange() != want {
		t.Errorf("VisualRange() = %v, want %v", s.VisualRange(), want)
	}
	if h.Buffer().Selection() != want {
		t.Errorf("buffer selection = %v, want %v", h.Buffer().Selection(), want)
	}

	feed(t, s, "<S-Left><S-Left>")
	if s.EditorMode() != mode.Insert {
		t.Errorf("empty selection should return to Insert, got %v", s.EditorMode())
	}
	if h.Buffer().HasSelection() {
		t.Error("buffer still has a selection")
	}
}

func TestUndoRedo(t *testing.T) {
	s, h := newStandard("abc")
	feed(t, s, "xy")
	if h.Text() != "xyabc" {
		t.Fatalf("text = %q", h.Text())
	}

	feed(t, s, "<C-z>")
	if h.Text() != "xabc" {
		t.Errorf("after undo text = %q, want %q", h.Text(), "xabc")
	}
	if s.Cursor() != 1 {
		t.Errorf("after undo cursor = %d, want 1", s.Cursor())
	}

	feed(t, s, "<C-y>")
	if h.Text() != "xyabc" {
		t.Errorf("after redo text = %q, want %q", h.Text(), "xyabc")
	}

	feed(t, s, "<C-z><C-r>")
	if h.Text() != "xyabc" {
		t.Errorf("Ctrl+r should redo, text = %q", h.Text())
	}
}

func TestReplaceSelectionUndoesInOneStep(t *testing.T) {
	s, h := newStandard("hello")
	feed(t, s, "<S-Right><S-Right>X")
	if h.Text() != "Xllo" {
		t.Fatalf("text = %q", h.Text())
	}
	feed(t, s, "<C-z>")
	if h.Text() != "hello" {
		t.Errorf("after undo text = %q, want %q", h.Text(), "hello")
	}
}

func TestCopyCutPaste(t *testing.T) {
	s, h := newStandard("foo bar")

	feed(t, s, "<C-S-Right><C-c>")
	if r, _ := h.Regs.Get(register.Unnamed); r.Text != "foo " {
		t.Errorf("unnamed = %q, want %q", r.Text, "foo ")
	}
	feed(t, s, "<End><C-v>")
	if h.Text() != "foo barfoo " {
		t.Errorf("after paste text = %q", h.Text())
	}

	s, h = newStandard("foo bar")
	feed(t, s, "<C-S-Right><C-x>")
	if h.Text() != "bar" {
		t.Errorf("after cut text = %q, want %q", h.Text(), "bar")
	}
	feed(t, s, "<End><C-v>")
	if h.Text() != "barfoo " {
		t.Errorf("after paste text = %q", h.Text())
	}
}

func TestCopyWithoutSelection(t *testing.T) {
	s, h := newStandard("foo")
	feed(t, s, "<C-c><C-x>")
	if h.Text() != "foo" {
		t.Errorf("text = %q", h.Text())
	}
	if r, _ := h.Regs.Get(register.Unnamed); !r.IsEmpty() {
		t.Errorf("unnamed = %q, want empty", r.Text)
	}
}

type clipboard struct{ text string }

func (c *clipboard) Get() (string, error)  { return c.text, nil }
func (c *clipboard) Set(text string) error { c.text = text; return nil }

func TestSystemClipboard(t *testing.T) {
	s, h := newStandard("foo bar")
	cb := &clipboard{}
	h.Regs.SetClipboard(cb)

	feed(t, s, "<C-S-Right><C-c>")
	if cb.text != "foo " {
		t.Errorf("clipboard = %q, want %q", cb.text, "foo ")
	}

	cb.text = "zz"
	feed(t, s, "<C-Home><C-v>")
	if h.Text() != "zzfoo bar" {
		t.Errorf("text = %q, want %q", h.Text(), "zzfoo bar")
	}
}

func TestLockedBuffer(t *testing.T) {
	s, h := newStandard("abc")
	h.Buffer().SetFlags(buffer.FlagLocked)

	feed(t, s, "x<Del>")
	if h.Text() != "abc" {
		t.Errorf("locked buffer changed to %q", h.Text())
	}
	if h.Status != "Buffer is locked" {
		t.Errorf("status = %q", h.Status)
	}
}

func TestTypeOverSelectionLockedKeepsSelection(t *testing.T) {
	s, h := newStandard("abcd")
	feed(t, s, "<S-Right><S-Right>")
	h.Buffer().SetFlags(buffer.FlagLocked)

	feed(t, s, "X")
	if h.Text() != "abcd" {
		t.Errorf("text = %q, want %q", h.Text(), "abcd")
	}
	if h.Win.Cursor() != 2 || !h.Buffer().HasSelection() {
		t.Errorf("cursor = %d selection = %v, want 2 and kept", h.Win.Cursor(), h.Buffer().HasSelection())
	}
	if h.History(h.Buffer()).InGroup() {
		t.Error("failed edit left an undo group open")
	}
}

func TestGlobalsReachStandard(t *testing.T) {
	s, h := newStandard("abc")
	feed(t, s, "<C-i>o<C-p><C-l>")
	if h.Swaps != 1 || h.Searches != 1 {
		t.Errorf("Swaps = %d, Searches = %d", h.Swaps, h.Searches)
	}
	if len(h.Splits) != 1 || h.Splits[0] != mode.SplitRight {
		t.Errorf("Splits = %v", h.Splits)
	}
	if h.Text() != "abc" {
		t.Errorf("globals typed into the buffer: %q", h.Text())
	}
}

func TestName(t *testing.T) {
	s, _ := newStandard("")
	if s.Name() != standard.Name {
		t.Errorf("Name() = %q", s.Name())
	}
}
