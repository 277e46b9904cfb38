package history

import (
	"errors"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

const none = buffer.InvalidLocation

func TestCommandApply(t *testing.T) {
	tests := []struct {
		name string
		text string
		cmd  func(b *buffer.Buffer) *Command
		want string
	}{
		{"insert", "hello", func(b *buffer.Buffer) *Command {
			return NewInsert(b, 5, " world", none, none)
		}, "hello world"},
		{"delete", "hello world", func(b *buffer.Buffer) *Command {
			return NewDelete(b, 5, 11, none, none)
		}, "hello"},
		{"replace", "hello world", func(b *buffer.Buffer) *Command {
			return NewReplace(b, ReplaceReplace, 0, 5, "bye", none, none)
		}, "bye world"},
		{"fill in place", "hello world", func(b *buffer.Buffer) *Command {
			return NewReplace(b, ReplaceFill, 0, 5, "x", none, none)
		}, "xxxxx world"},
		{"fill keeps newlines", "ab\ncd", func(b *buffer.Buffer) *Command {
			return NewReplace(b, ReplaceFill, 1, 4, "-", none, none)
		}, "a-\n-d"},
		{"fill counts runes", "héllo", func(b *buffer.Buffer) *Command {
			return NewReplace(b, ReplaceFill, 1, 3, "e", none, none)
		}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewFromString(tt.text)
			before := b.LineEnds()
			cmd := tt.cmd(b)

			if err := cmd.Apply(Redo); err != nil {
				t.Fatalf("Apply(Redo) error = %v", err)
			}
			if b.Text() != tt.want {
				t.Errorf("after redo Text() = %q, want %q", b.Text(), tt.want)
			}
			if err := cmd.Apply(Undo); err != nil {
				t.Fatalf("Apply(Undo) error = %v", err)
			}
			if b.Text() != tt.text {
				t.Errorf("after undo Text() = %q, want %q", b.Text(), tt.text)
			}
			if !reflect.DeepEqual(b.LineEnds(), before) {
				t.Errorf("line ends = %v, want %v", b.LineEnds(), before)
			}
		})
	}
}

func TestAddCommandCursorAndRedoDiscard(t *testing.T) {
	b := buffer.NewFromString("abc")
	h := New()

	cur, err := h.AddCommand(NewInsert(b, 3, "d", 3, 4))
	if err != nil || cur != 4 {
		t.Fatalf("AddCommand() = %d, %v", cur, err)
	}

	cur, err = h.Undo()
	if err != nil || cur != 3 {
		t.Fatalf("Undo() = %d, %v", cur, err)
	}
	if !h.CanRedo() {
		t.Fatal("undo should leave something to redo")
	}

	if _, err := h.AddCommand(NewInsert(b, 0, "z", none, none)); err != nil {
		t.Fatal(err)
	}
	if h.CanRedo() {
		t.Error("a new command should discard the redo stack")
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New()
	if _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v", err)
	}
	if _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v", err)
	}
}

func TestLockedRefusal(t *testing.T) {
	b := buffer.NewFromString("abc")
	h := New()
	_, _ = h.AddCommand(NewInsert(b, 0, "x", none, none))
	_, _ = h.Undo()

	b.SetFlags(buffer.FlagLocked)
	_, err := h.AddCommand(NewInsert(b, 0, "y", none, none))
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("AddCommand() error = %v, want ErrLocked", err)
	}
	if b.Text() != "abc" {
		t.Errorf("Text() = %q, want unchanged", b.Text())
	}
	if h.UndoCount() != 0 || h.RedoCount() != 1 {
		t.Errorf("stacks = %d/%d, want 0/1", h.UndoCount(), h.RedoCount())
	}
}

func TestGroupUndo(t *testing.T) {
	b := buffer.NewFromString("start")
	h := New()

	h.BeginGroup()
	for i, s := range []string{"a", "b", "c"} {
		loc := buffer.Location(5 + i)
		if _, err := h.AddCommand(NewInsert(b, loc, s, loc, loc+1)); err != nil {
			t.Fatal(err)
		}
	}
	h.EndGroup()

	if b.Text() != "startabc" {
		t.Fatalf("Text() = %q", b.Text())
	}

	cur, err := h.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "start" {
		t.Errorf("one Undo() left %q, want %q", b.Text(), "start")
	}
	if cur != 5 {
		t.Errorf("cursor = %d, want 5", cur)
	}

	cur, _ = h.Redo()
	if b.Text() != "startabc" || cur != 8 {
		t.Errorf("Redo() = %q at %d", b.Text(), cur)
	}
}

func TestGroupOfOne(t *testing.T) {
	b := buffer.NewFromString("")
	h := New()

	h.BeginGroup()
	_, _ = h.AddCommand(NewInsert(b, 0, "a", none, none))
	h.EndGroup()
	_, _ = h.AddCommand(NewInsert(b, 1, "b", none, none))

	_, _ = h.Undo()
	if b.Text() != "a" {
		t.Errorf("Text() = %q, want %q", b.Text(), "a")
	}
	_, _ = h.Undo()
	if b.Text() != "" {
		t.Errorf("Text() = %q, want empty", b.Text())
	}
}

func TestNestedGroupsAndScope(t *testing.T) {
	b := buffer.NewFromString("")
	h := New()

	func() {
		defer h.GroupScope().End()
		_, _ = h.AddCommand(NewInsert(b, 0, "a", none, none))
		h.BeginGroup()
		_, _ = h.AddCommand(NewInsert(b, 1, "b", none, none))
		h.EndGroup()
		if !h.InGroup() {
			t.Error("inner EndGroup closed the outer group")
		}
		_, _ = h.AddCommand(NewInsert(b, 2, "c", none, none))
	}()

	_, _ = h.Undo()
	if b.Text() != "" {
		t.Errorf("Text() = %q, want empty", b.Text())
	}
}

func TestTransactionRollback(t *testing.T) {
	b := buffer.NewFromString("keep")
	h := New()
	boom := errors.New("boom")

	err := h.Transaction(func() error {
		if _, err := h.AddCommand(NewInsert(b, 4, "!", none, none)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v", err)
	}
	if b.Text() != "keep" || h.CanUndo() || h.CanRedo() {
		t.Errorf("rollback left %q undo=%v redo=%v", b.Text(), h.CanUndo(), h.CanRedo())
	}
}

func TestTransactionRollbackInsideGroup(t *testing.T) {
	b := buffer.NewFromString("")
	h := New()
	boom := errors.New("boom")

	h.BeginGroup()
	if _, err := h.AddCommand(NewInsert(b, 0, "outer", none, none)); err != nil {
		t.Fatal(err)
	}
	err := h.Transaction(func() error {
		if _, err := h.AddCommand(NewInsert(b, 5, "inner", none, none)); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Transaction() error = %v", err)
	}
	if b.Text() != "outer" || !h.InGroup() || h.UndoCount() != 1 {
		t.Fatalf("after rollback text=%q inGroup=%v undo=%d, want %q true 1",
			b.Text(), h.InGroup(), h.UndoCount(), "outer")
	}

	if _, err := h.AddCommand(NewInsert(b, 5, "!", none, none)); err != nil {
		t.Fatal(err)
	}
	h.EndGroup()
	if h.InGroup() {
		t.Fatal("group still open after EndGroup")
	}
	if _, err := h.Undo(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "" || h.CanUndo() {
		t.Errorf("Undo() left %q undo=%v, want the whole outer group reverted", b.Text(), h.CanUndo())
	}
}

func TestCancelGroupNested(t *testing.T) {
	b := buffer.NewFromString("")
	h := New()

	h.BeginGroup()
	_, _ = h.AddCommand(NewInsert(b, 0, "a", none, none))
	h.BeginGroup()
	_, _ = h.AddCommand(NewInsert(b, 1, "b", none, none))
	if err := h.CancelGroup(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "a" || !h.InGroup() {
		t.Errorf("CancelGroup() left %q inGroup=%v, want %q true", b.Text(), h.InGroup(), "a")
	}
	if err := h.CancelGroup(); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "" || h.InGroup() || h.CanUndo() {
		t.Errorf("outer CancelGroup() left %q inGroup=%v undo=%v", b.Text(), h.InGroup(), h.CanUndo())
	}
}

func TestMaxEntriesTrimsWholeGroups(t *testing.T) {
	b := buffer.NewFromString("")
	h := New(WithMaxEntries(3))

	h.BeginGroup()
	_, _ = h.AddCommand(NewInsert(b, 0, "a", none, none))
	_, _ = h.AddCommand(NewInsert(b, 1, "b", none, none))
	h.EndGroup()
	_, _ = h.AddCommand(NewInsert(b, 2, "c", none, none))
	_, _ = h.AddCommand(NewInsert(b, 3, "d", none, none))

	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", h.UndoCount())
	}
	_, _ = h.Undo()
	_, _ = h.Undo()
	if b.Text() != "ab" {
		t.Errorf("Text() = %q, want %q", b.Text(), "ab")
	}
}

func TestUndoRedoLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := buffer.NewFromString(rapid.StringMatching(`[a-c \n]{0,20}`).Draw(t, "text"))
		h := New()

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			end := int(b.EndLocation())
			s := buffer.Location(rapid.IntRange(0, end).Draw(t, "s"))
			e := buffer.Location(rapid.IntRange(int(s), end).Draw(t, "e"))
			cursor := buffer.Location(rapid.IntRange(0, end).Draw(t, "cursor"))

			var cmd *Command
			switch rapid.IntRange(0, 3).Draw(t, "kind") {
			case 0:
				cmd = NewInsert(b, s, rapid.StringMatching(`[xy\n]{1,3}`).Draw(t, "ins"), cursor, s)
			case 1:
				cmd = NewDelete(b, s, e, cursor, s)
			case 2:
				cmd = NewReplace(b, ReplaceReplace, s, e, rapid.StringMatching(`[z\n]{0,3}`).Draw(t, "rep"), cursor, s)
			default:
				cmd = NewReplace(b, ReplaceFill, s, e, "q", cursor, s)
			}

			text, lines := b.Text(), b.LineEnds()
			if _, err := h.AddCommand(cmd); err != nil {
				t.Fatalf("AddCommand(%v) error = %v", cmd, err)
			}
			afterText, afterLines := b.Text(), b.LineEnds()

			got, err := h.Undo()
			if err != nil {
				t.Fatalf("Undo() error = %v", err)
			}
			if b.Text() != text || !reflect.DeepEqual(b.LineEnds(), lines) || got != cursor {
				t.Fatalf("Undo(%v) = %q %v cursor %d, want %q %v cursor %d", cmd, b.Text(), b.LineEnds(), got, text, lines, cursor)
			}

			got, err = h.Redo()
			if err != nil {
				t.Fatalf("Redo() error = %v", err)
			}
			if b.Text() != afterText || !reflect.DeepEqual(b.LineEnds(), afterLines) || got != s {
				t.Fatalf("Redo(%v) = %q %v cursor %d", cmd, b.Text(), b.LineEnds(), got)
			}
		}
	})
}
