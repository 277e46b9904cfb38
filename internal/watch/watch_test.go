package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDelay(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatchFiresOnWrite(t *testing.T) {
	w := newWatcher(t)
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 4)
	if err := w.Add(path, func(p string) { changed <- p }); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !w.IsWatching(path) {
		t.Fatal("IsWatching() = false")
	}

	// Several writes in a burst coalesce into one call.
	for _, s := range []string{"two", "three", "four"} {
		if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-changed:
		if got != path {
			t.Errorf("handler path = %q, want %q", got, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}
}

func TestWatchIgnoresSiblings(t *testing.T) {
	w := newWatcher(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	called := make(chan string, 1)
	if err := w.Add(path, func(p string) { called <- p }); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-called:
		t.Errorf("handler called for %q", p)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemove(t *testing.T) {
	w := newWatcher(t)
	path := filepath.Join(t.TempDir(), "a.txt")

	if err := w.Remove(path); !errors.Is(err, ErrNotWatching) {
		t.Errorf("Remove() unwatched error = %v, want ErrNotWatching", err)
	}
	if err := w.Add(path, func(string) {}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := w.Remove(path); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
	if w.IsWatching(path) {
		t.Error("still watching after Remove")
	}
}

func TestClose(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Add(filepath.Join(t.TempDir(), "a"), func(string) {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Add() after Close error = %v, want ErrClosed", err)
	}
}

func TestFlush(t *testing.T) {
	w, err := New(WithDelay(time.Hour))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	path := filepath.Join(t.TempDir(), "a.txt")
	calls := 0
	if err := w.Add(path, func(string) { calls++ }); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for calls == 0 && time.Now().Before(deadline) {
		w.Flush()
		time.Sleep(10 * time.Millisecond)
	}
	if calls == 0 {
		t.Error("Flush did not run the pending handler")
	}
}
