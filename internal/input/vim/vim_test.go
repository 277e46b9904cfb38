package vim_test

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/mode/modetest"
	"github.com/dshills/modalcore/internal/input/register"
	"github.com/dshills/modalcore/internal/input/vim"
)

func newVim(text string, opts ...vim.Option) (*vim.Vim, *modetest.Host) {
	h := modetest.NewHost(text)
	v := vim.New(h, opts...)
	v.Begin()
	return v, h
}

func feed(t *testing.T, v *vim.Vim, keys string) mode.Result {
	t.Helper()
	res, err := v.AddCommandText(keys)
	if err != nil {
		t.Fatalf("AddCommandText(%q) error = %v", keys, err)
	}
	return res
}

func TestNormalCommands(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		keys       string
		wantText   string
		wantCursor buffer.Location
	}{
		{"dw", "foo bar", "dw", "bar", 0},
		{"2d3w", "a b c d e f g h", "2d3w", "g h", 0},
		{"dw at line end keeps newline", "foo bar\nbaz", "wdw", "foo \nbaz", 3},
		{"de", "foo bar", "de", " bar", 0},
		{"dd", "one\ntwo\nthree", "dd", "two\nthree", 0},
		{"dd last line", "one\ntwo", "jdd", "one", 0},
		{"3dd", "a\nb\nc\nd", "3dd", "d", 0},
		{"dj", "a\nb\nc", "dj", "c", 0},
		{"x", "abc", "x", "bc", 0},
		{"2x", "abc", "2x", "c", 0},
		{"x at line end", "abc", "$x", "ab", 1},
		{"x on empty line", "\nabc", "x", "\nabc", 0},
		{"X", "abc", "$X", "ac", 1},
		{"D", "foo bar", "wD", "foo ", 3},
		{"d0", "foo bar", "wd0", "bar", 0},
		{"dtc", "abcabc", "dtc", "cabc", 0},
		{"dfc", "abcabc", "dfc", "abc", 0},
		{"dFa", "abcabc", "$dFa", "abcc", 3},
		{"diw", "foo bar baz", "wdiw", "foo  baz", 4},
		{"daw", "foo bar baz", "wdaw", "foo baz", 4},
		{"di(", "f(a, b)", "fadi(", "f()", 2},
		{"da[", "x[1] y", "f1da[", "x y", 1},
		{`di"`, `say "hi" now`, `di"`, `say "" now`, 5},
		{"d%", "(ab) c", "d%", " c", 0},
		{"dG", "a\nb\nc", "jdG", "a", 0},
		{"dgg", "a\nb\nc", "jdgg", "c", 0},
		{"J", "one\n  two", "J", "one two", 3},
		{"3J", "a\nb\nc", "3J", "a b c", 3},
		{"J onto empty line", "a\n\nb", "J", "a\nb", 0},
		{"rx", "abc", "rx", "xbc", 0},
		{"3rx", "abcd", "3rx", "xxxd", 2},
		{"r past end", "ab", "5rx", "ab", 0},
		{"tilde", "abc", "~", "Abc", 1},
		{"3 tilde", "abc", "3~", "ABC", 2},
		{"gUiw", "foo bar", "gUiw", "FOO bar", 0},
		{"guu", "FOO Bar", "guu", "foo bar", 0},
		{"g~w", "Foo bar", "g~w", "fOO bar", 0},
		{"indent", "a\nb", ">>", "    a\nb", 4},
		{"indent two lines", "a\nb", "2>>", "    a\n    b", 4},
		{"outdent", "      a", "<<", "  a", 2},
		{"indent skips empty", "a\n\nb", ">G", "    a\n\n    b", 4},
		{"p linewise", "one\ntwo\nthree", "ddp", "two\none\nthree", 4},
		{"P linewise", "one\ntwo", "jddP", "two\none", 0},
		{"p on last line", "one\ntwo", `yyjp`, "one\ntwo\none", 8},
		{"xp swaps", "ab", "xp", "ba", 1},
		{"ylP", "ab", "ylP", "aab", 0},
		{"3p", "ab", "yl3p", "aaaab", 3},
		{"dot repeats x", "abcd", "x.", "cd", 0},
		{"dot with count", "abcdef", "x3.", "ef", 0},
		{"dot repeats dd", "a\nb\nc", "dd.", "c", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, h := newVim(tt.text)
			feed(t, v, tt.keys)
			if got := h.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := v.Cursor(); got != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got, tt.wantCursor)
			}
			if v.EditorMode() != mode.Normal {
				t.Errorf("mode = %v, want NORMAL", v.EditorMode())
			}
		})
	}
}

func TestMotions(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want buffer.Location
	}{
		{"w", "foo bar", "w", 4},
		{"w across lines", "foo\nbar", "w", 4},
		{"b", "foo bar", "$b", 4},
		{"e", "foo bar", "e", 2},
		{"ge", "foo bar", "$ge", 2},
		{"W", "a.b c", "W", 4},
		{"count l", "abcdefghijkl", "10l", 10},
		{"l stops at last char", "abc", "5l", 2},
		{"h stops at line start", "abc\nde", "jlh3h", 4},
		{"zero after count", "abc", "$0", 0},
		{"caret", "   abc", "$^", 3},
		{"dollar", "abc\ndef", "$", 2},
		{"2 dollar", "abc\ndef", "2$", 6},
		{"G", "a\nb\nc", "G", 4},
		{"count G", "a\nb\nc", "2G", 2},
		{"gg", "a\nb\nc", "Ggg", 0},
		{"f", "abcabc", "fc", 2},
		{"f repeat", "abcabc", "fc;", 5},
		{"f repeat reverse", "abcabc", "fc;,", 2},
		{"f missing", "abc", "fz", 0},
		{"t repeat", "a b b", "tb;", 3},
		{"percent", "(a[b]c)", "%", 6},
		{"percent back", "(a[b]c)", "f]%", 2},
		{"paragraph", "a\nb\n\nc", "}", 4},
		{"paragraph back", "a\n\nb\nc", "G{", 2},
		{"goal column", "abcd\nx\nabcd", "llljj", 10},
		{"goal column short line", "abcd\nx\nabcd", "lllj", 5},
		{"goal after dollar", "ab\nabcd", "$j", 6},
		{"arrow keys", "ab\ncd", "<Right><Down><Left>", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, h := newVim(tt.text)
			feed(t, v, tt.keys)
			if got := v.Cursor(); got != tt.want {
				t.Errorf("cursor = %d, want %d", got, tt.want)
			}
			if h.Text() != tt.text {
				t.Errorf("motion changed text to %q", h.Text())
			}
		})
	}
}

func TestInsertUndoGroup(t *testing.T) {
	v, h := newVim("")
	feed(t, v, "ihello<Esc>")
	if h.Text() != "hello" {
		t.Fatalf("text = %q", h.Text())
	}
	if v.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", v.Cursor())
	}
	if v.EditorMode() != mode.Normal {
		t.Errorf("mode = %v", v.EditorMode())
	}

	feed(t, v, "u")
	if h.Text() != "" {
		t.Errorf("one undo should revert the session, text = %q", h.Text())
	}
	feed(t, v, "<C-r>")
	if h.Text() != "hello" {
		t.Errorf("redo text = %q", h.Text())
	}

	reg, _ := h.Regs.Get(register.LastInserted)
	if reg.Text != "hello" {
		t.Errorf(". register = %q", reg.Text)
	}
}

func TestHugeCountsAreBounded(t *testing.T) {
	v, h := newVim("")
	feed(t, v, "2147483647ix<Esc>")
	if n := len(h.Text()); n == 0 || n > vim.MaxRepeatBytes+1 {
		t.Errorf("insert with huge count produced %d bytes, want 1..%d", n, vim.MaxRepeatBytes+1)
	}

	v, h = newVim("y\n")
	feed(t, v, "yl999999999p")
	if n := len(h.Text()); n > vim.MaxRepeatBytes+len("y\n") {
		t.Errorf("put with huge count produced %d bytes, want at most %d", n, vim.MaxRepeatBytes+2)
	}
}

func TestInsertCommands(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		keys       string
		wantText   string
		wantCursor buffer.Location
	}{
		{"a", "ac", "abx<Esc>", "abxc", 2},
		{"A", "ab", "Acd<Esc>", "abcd", 3},
		{"I", "  ab", "$Ix<Esc>", "  xab", 2},
		{"o", "one\ntwo", "onew<Esc>", "one\nnew\ntwo", 6},
		{"O", "x", "Oabc<Esc>", "abc\nx", 2},
		{"count insert", "", "3ia<Esc>", "aaa", 2},
		{"count o", "x", "2oy<Esc>", "x\ny\ny", 4},
		{"cw", "foo bar", "cwbaz<Esc>", "baz bar", 2},
		{"cc", "one\ntwo", "ccx<Esc>", "x\ntwo", 0},
		{"C", "foo bar", "wCx<Esc>", "foo x", 4},
		{"s", "abc", "sx<Esc>", "xbc", 0},
		{"ci(", "f(a, b)", "faci(x<Esc>", "f(x)", 2},
		{"backspace", "", "iab<BS><Esc>", "a", 0},
		{"backspace joins lines", "a\nb", "ji<BS><Esc>", "ab", 0},
		{"enter", "ab", "a<CR><Esc>", "a\nb", 2},
		{"tab", "", "i<Tab>x<Esc>", "    x", 4},
		{"delete key", "abc", "i<Del><Esc>", "bc", 0},
		{"jk escape", "", "ihijk", "hi", 1},
		{"dot repeats insert", "", "ix<Esc>.", "xx", 0},
		{"dot repeats cw", "foo bar", "cwnew<Esc>w.", "new new", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, h := newVim(tt.text)
			feed(t, v, tt.keys)
			if got := h.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := v.Cursor(); got != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got, tt.wantCursor)
			}
			if v.EditorMode() != mode.Normal {
				t.Errorf("mode = %v, want NORMAL", v.EditorMode())
			}
		})
	}
}

func TestChangeUndoesInOneStep(t *testing.T) {
	v, h := newVim("foo bar")
	feed(t, v, "cwbaz<Esc>u")
	if h.Text() != "foo bar" {
		t.Errorf("text = %q, want %q", h.Text(), "foo bar")
	}
}

func TestInsertEscapeTimeout(t *testing.T) {
	now := time.Unix(1000, 0)
	v, h := newVim("", vim.WithClock(func() time.Time { return now }))

	feed(t, v, "ij")
	now = now.Add(time.Second)
	feed(t, v, "k")
	if h.Text() != "jk" {
		t.Errorf("text = %q, want jk", h.Text())
	}
	if v.EditorMode() != mode.Insert {
		t.Errorf("mode = %v, want INSERT", v.EditorMode())
	}
}

func TestInsertEscapeDisabled(t *testing.T) {
	s := vim.DefaultSettings()
	s.InsertEscape = ""
	v, h := newVim("", vim.WithSettings(s))
	feed(t, v, "ijk")
	if h.Text() != "jk" || v.EditorMode() != mode.Insert {
		t.Errorf("text = %q mode = %v", h.Text(), v.EditorMode())
	}
}

func TestRegisters(t *testing.T) {
	v, h := newVim("foo bar\nbaz")

	feed(t, v, "dw")
	if r, _ := h.Regs.Get(register.SmallDelete); r.Text != "foo " {
		t.Errorf("- register = %q", r.Text)
	}
	if r, _ := h.Regs.Get(register.Unnamed); r.Text != "foo " {
		t.Errorf("unnamed register = %q", r.Text)
	}

	feed(t, v, "dd")
	if r, _ := h.Regs.Get('1'); r.Text != "bar\n" || !r.Linewise {
		t.Errorf("1 register = %+v", r)
	}

	feed(t, v, `"ayy`)
	if r, _ := h.Regs.Get('a'); r.Text != "baz\n" || !r.Linewise {
		t.Errorf("a register = %+v", r)
	}
	if r, _ := h.Regs.Get(register.LastYank); r.Text != "" {
		t.Errorf("named yank should not touch 0, got %q", r.Text)
	}

	feed(t, v, `"Ayy"ap`)
	if h.Text() != "baz\nbaz\nbaz" {
		t.Errorf("text = %q", h.Text())
	}

	feed(t, v, `"_dd`)
	if r, _ := h.Regs.Get(register.Unnamed); r.Text != "baz\nbaz\n" {
		t.Errorf("black hole changed unnamed to %q", r.Text)
	}
}

type clipboard struct{ text string }

func (c *clipboard) Get() (string, error)  { return c.text, nil }
func (c *clipboard) Set(text string) error { c.text = text; return nil }

func TestClipboardRegister(t *testing.T) {
	v, h := newVim("foo bar")

	feed(t, v, `"+yw`)
	if !strings.Contains(h.Status, "clipboard") {
		t.Errorf("status = %q, want clipboard error", h.Status)
	}

	cb := &clipboard{}
	h.Regs.SetClipboard(cb)
	feed(t, v, `"+yw`)
	if cb.text != "foo " {
		t.Errorf("clipboard = %q", cb.text)
	}
	feed(t, v, `$"+p`)
	if h.Text() != "foo barfoo " {
		t.Errorf("text = %q", h.Text())
	}
}

func TestVisualMode(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		keys       string
		wantText   string
		wantCursor buffer.Location
	}{
		{"vd", "abcdef", "vlld", "def", 0},
		{"vx backwards", "abcdef", "$hhvhx", "abef", 2},
		{"Vd", "one\ntwo", "Vd", "two", 0},
		{"Vjd", "a\nb\nc", "Vjd", "c", 0},
		{"vU", "abc", "vlU", "ABc", 0},
		{"v~", "aBc", "v$~", "AbC", 0},
		{"viwd", "foo bar", "wviwd", "foo ", 3},
		{"v>", "a\nb", "vj>", "    a\n    b", 4},
		{"vJ", "a\nb\nc", "VjjJ", "a b c", 3},
		{"vc", "abc", "vlcx<Esc>", "xc", 0},
		{"o swaps anchor", "abcdef", "llvlohd", "aef", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, h := newVim(tt.text)
			feed(t, v, tt.keys)
			if got := h.Text(); got != tt.wantText {
				t.Errorf("text = %q, want %q", got, tt.wantText)
			}
			if got := v.Cursor(); got != tt.wantCursor {
				t.Errorf("cursor = %d, want %d", got, tt.wantCursor)
			}
			if v.EditorMode() != mode.Normal {
				t.Errorf("mode = %v, want NORMAL", v.EditorMode())
			}
			if h.Buffer().HasSelection() {
				t.Error("selection should be cleared")
			}
		})
	}
}

func TestVisualRange(t *testing.T) {
	v, h := newVim("abc\ndef")
	feed(t, v, "vl")
	if v.EditorMode() != mode.Visual {
		t.Fatalf("mode = %v", v.EditorMode())
	}
	if got := v.VisualRange(); got != buffer.NewRange(0, 2) {
		t.Errorf("VisualRange() = %v", got)
	}
	if h.Buffer().Selection() != buffer.NewRange(0, 2) {
		t.Errorf("Selection() = %v", h.Buffer().Selection())
	}

	feed(t, v, "V")
	if got := v.VisualRange(); got != buffer.NewRange(0, 4) {
		t.Errorf("line VisualRange() = %v", got)
	}
	feed(t, v, "y")
	if r, _ := h.Regs.Get(register.Unnamed); r.Text != "abc\n" || !r.Linewise {
		t.Errorf("yank = %+v", r)
	}

	feed(t, v, "v<Esc>")
	if v.EditorMode() != mode.Normal || h.Buffer().HasSelection() {
		t.Error("Esc should leave Visual mode")
	}
}

func TestExCommands(t *testing.T) {
	v, h := newVim("a\nb\nc\nd")

	feed(t, v, ":3<CR>")
	if v.Cursor() != 4 {
		t.Errorf(":3 cursor = %d, want 4", v.Cursor())
	}
	if r, _ := h.Regs.Get(register.LastCommand); r.Text != "3" {
		t.Errorf(": register = %q", r.Text)
	}

	feed(t, v, ":$<CR>")
	if v.Cursor() != 6 {
		t.Errorf(":$ cursor = %d, want 6", v.Cursor())
	}

	feed(t, v, ":nope<CR>")
	if h.Status != "Not an editor command: nope" {
		t.Errorf("status = %q", h.Status)
	}

	feed(t, v, ":w /out.txt<CR>")
	data, err := h.FS.Read("/out.txt")
	if err != nil || string(data) != "a\nb\nc\nd" {
		t.Errorf("written %q, %v", data, err)
	}
	if !strings.Contains(h.Status, "written") {
		t.Errorf("status = %q", h.Status)
	}

	feed(t, v, ":q<CR>")
	if h.Quits != 1 {
		t.Errorf("Quits = %d, want 1", h.Quits)
	}

	feed(t, v, "x:q<CR>")
	if h.Quits != 1 || !strings.Contains(h.Status, "No write") {
		t.Errorf("dirty :q quits = %d status = %q", h.Quits, h.Status)
	}
	feed(t, v, ":q!<CR>")
	if h.Quits != 2 {
		t.Errorf("Quits = %d, want 2", h.Quits)
	}
}

func TestExEscapeCancels(t *testing.T) {
	v, h := newVim("abc")
	feed(t, v, ":3<Esc>")
	if v.EditorMode() != mode.Normal || v.Cursor() != 0 {
		t.Errorf("mode = %v cursor = %d", v.EditorMode(), v.Cursor())
	}
	if h.Status != "" {
		t.Errorf("status = %q", h.Status)
	}
}

func TestExEdit(t *testing.T) {
	v, h := newVim("abc")
	_ = h.FS.Write("/other.txt", []byte("zz"))

	feed(t, v, ":e /other.txt<CR>")
	if h.Text() != "zz" {
		t.Errorf("text = %q", h.Text())
	}
	if r, _ := h.Regs.Get(register.FileName); r.Text != "/other.txt" {
		t.Errorf("%% register = %q", r.Text)
	}
}

func TestExRegisters(t *testing.T) {
	v, h := newVim("foo")
	feed(t, v, "yw:reg<CR>")
	if !strings.Contains(h.Status, `"0   foo`) {
		t.Errorf("status = %q", h.Status)
	}
}

func TestSearch(t *testing.T) {
	v, h := newVim("foo bar\nbar")

	feed(t, v, "/bar<CR>")
	if v.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", v.Cursor())
	}
	if r, _ := h.Regs.Get(register.LastSearch); r.Text != "bar" {
		t.Errorf("/ register = %q", r.Text)
	}
	if n := len(h.Markers(h.Buffer()).Markers(marker.TypeSearch)); n != 2 {
		t.Errorf("search markers = %d, want 2", n)
	}

	feed(t, v, "n")
	if v.Cursor() != 8 {
		t.Errorf("n cursor = %d, want 8", v.Cursor())
	}
	feed(t, v, "n")
	if v.Cursor() != 4 {
		t.Errorf("wrapped n cursor = %d, want 4", v.Cursor())
	}
	if !strings.Contains(h.Status, "BOTTOM") {
		t.Errorf("status = %q", h.Status)
	}
	feed(t, v, "N")
	if v.Cursor() != 8 {
		t.Errorf("N cursor = %d, want 8", v.Cursor())
	}

	feed(t, v, "/zzz<CR>")
	if v.Cursor() != 8 || !strings.Contains(h.Status, "Pattern not found") {
		t.Errorf("cursor = %d status = %q", v.Cursor(), h.Status)
	}
}

func TestIncrementalSearch(t *testing.T) {
	v, _ := newVim("abc abd")
	feed(t, v, "/abd")
	if v.EditorMode() != mode.Ex {
		t.Fatalf("mode = %v", v.EditorMode())
	}
	if v.Cursor() != 4 {
		t.Errorf("preview cursor = %d, want 4", v.Cursor())
	}
	feed(t, v, "<Esc>")
	if v.Cursor() != 0 {
		t.Errorf("cancel cursor = %d, want 0", v.Cursor())
	}
}

func TestLockedBuffer(t *testing.T) {
	v, h := newVim("foo bar")
	h.Buffer().SetFlags(buffer.FlagLocked)

	feed(t, v, "dw")
	if h.Text() != "foo bar" {
		t.Errorf("locked buffer changed to %q", h.Text())
	}
	if h.Status != "Buffer is locked" {
		t.Errorf("status = %q", h.Status)
	}
	if r, _ := h.Regs.Get(register.Unnamed); !r.IsEmpty() {
		t.Errorf("refused delete filled register with %q", r.Text)
	}
}

func TestPendingAndInvalid(t *testing.T) {
	s := vim.DefaultSettings()
	s.ShowNormalModeKeyStrokes = true
	v, h := newVim("foo bar", vim.WithSettings(s))

	if res := feed(t, v, "2d"); !res.NeedMoreChars {
		t.Error("2d should need more chars")
	}
	if h.Status != "2d" {
		t.Errorf("status = %q, want 2d", h.Status)
	}

	if res := feed(t, v, "z"); res.NeedMoreChars {
		t.Error("invalid key should end the command")
	}
	if h.Text() != "foo bar" || h.Status != "" {
		t.Errorf("text = %q status = %q", h.Text(), h.Status)
	}

	feed(t, v, "x")
	if h.Text() != "oo bar" {
		t.Errorf("parser not reset, text = %q", h.Text())
	}
}

func TestGlobalsReachVim(t *testing.T) {
	v, h := newVim("abc")
	if res := v.AddKeyPress(key.NewRuneEvent('i', key.ModCtrl)); !res.NeedMoreChars {
		t.Error("Ctrl+i should need more chars")
	}
	v.AddKeyPress(key.NewRuneEvent('o', key.ModNone))
	if h.Swaps != 1 {
		t.Errorf("Swaps = %d", h.Swaps)
	}
	if v.EditorMode() != mode.Normal || h.Text() != "abc" {
		t.Error("prefix key leaked into the mode")
	}

	feed(t, v, "<C-=>")
	if h.Font != 15 {
		t.Errorf("Font = %v", h.Font)
	}
}

func TestUndoCount(t *testing.T) {
	v, h := newVim("abcd")
	feed(t, v, "xxx2u")
	if h.Text() != "bcd" {
		t.Errorf("text = %q, want bcd", h.Text())
	}
}

func TestRegistryName(t *testing.T) {
	v, _ := newVim("")
	if v.Name() != vim.Name {
		t.Errorf("Name() = %q", v.Name())
	}
	var _ mode.Mode = v
}

func TestStateRoundTrip(t *testing.T) {
	v, _ := newVim("abcabc")
	feed(t, v, "fc/b<CR>")
	s := v.State()
	if s.FindKey != 'f' || s.FindChar != 'c' {
		t.Errorf("find state = %q %q", s.FindKey, s.FindChar)
	}
	if s.Search != "b" || !s.SearchForward {
		t.Errorf("search state = %+v", s)
	}

	w, _ := newVim("abcabc")
	w.RestoreState(s)
	feed(t, w, ";")
	if w.Cursor() != 2 {
		t.Errorf("; after restore cursor = %d, want 2", w.Cursor())
	}
	feed(t, w, "0n")
	if w.Cursor() != 1 {
		t.Errorf("n after restore cursor = %d, want 1", w.Cursor())
	}

	w.RestoreState(vim.State{FindKey: 'x', FindChar: 'c'})
	feed(t, w, "0;")
	if w.Cursor() != 0 {
		t.Errorf("; with no find moved to %d", w.Cursor())
	}
}
