// Package modetest provides an in-memory Host and Window for testing modes.
package modetest

import (
	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
	"github.com/dshills/modalcore/internal/vfs"
)

// Window is a single buffer view. SetCursor clamps to the buffer.
type Window struct {
	buf    *buffer.Buffer
	cursor buffer.Location
}

var _ mode.Window = (*Window)(nil)

// Buffer returns the shown buffer.
func (w *Window) Buffer() *buffer.Buffer { return w.buf }

// SetBuffer shows b with the cursor at its start.
func (w *Window) SetBuffer(b *buffer.Buffer) {
	w.buf = b
	w.cursor = 0
}

// Cursor returns the cursor.
func (w *Window) Cursor() buffer.Location { return w.cursor }

// SetCursor moves the cursor.
func (w *Window) SetCursor(loc buffer.Location) { w.cursor = w.buf.Clamp(loc) }

// Host records every collaborator call a mode makes.
type Host struct {
	Win  *Window
	FS   *vfs.MemFS
	Regs *register.Store

	Status     string
	Font       float64
	Splits     []mode.SplitMotion
	Searches   int
	Swaps      int
	SwapErr    error
	Quits      int
	MaxEntries int

	histories map[*buffer.Buffer]*history.History
	markers   map[*buffer.Buffer]*marker.Index
	files     map[string]*buffer.Buffer
}

var _ mode.Host = (*Host)(nil)

// NewHost returns a host whose window shows a buffer holding text.
func NewHost(text string) *Host {
	fs := vfs.NewMemFS()
	h := &Host{
		FS:         fs,
		Regs:       register.New(),
		Font:       14,
		MaxEntries: history.DefaultMaxEntries,
		histories:  make(map[*buffer.Buffer]*history.History),
		markers:    make(map[*buffer.Buffer]*marker.Index),
		files:      make(map[string]*buffer.Buffer),
	}
	h.Win = &Window{buf: buffer.NewFromString(text, buffer.WithFileSystem(fs))}
	return h
}

// Buffer returns the window's buffer.
func (h *Host) Buffer() *buffer.Buffer { return h.Win.buf }

// Text returns the window's buffer text.
func (h *Host) Text() string { return h.Win.buf.Text() }

// Window returns the single window.
func (h *Host) Window() mode.Window { return h.Win }

// History returns b's history, creating it on first use.
func (h *Host) History(b *buffer.Buffer) *history.History {
	hist, ok := h.histories[b]
	if !ok {
		hist = history.New(history.WithMaxEntries(h.MaxEntries))
		h.histories[b] = hist
	}
	return hist
}

// Markers returns b's marker index, creating and tracking it on first use.
func (h *Host) Markers(b *buffer.Buffer) *marker.Index {
	idx, ok := h.markers[b]
	if !ok {
		idx = marker.NewIndex(b.NotifyMarkersChanged)
		b.AddTracker(idx)
		h.markers[b] = idx
	}
	return idx
}

// Registers returns the register store.
func (h *Host) Registers() *register.Store { return h.Regs }

// SetCommandText records the status text.
func (h *Host) SetCommandText(text string) { h.Status = text }

// FontSize returns the font size.
func (h *Host) FontSize() float64 { return h.Font }

// SetFontSize records the font size.
func (h *Host) SetFontSize(size float64) { h.Font = size }

// MoveSplit records the motion.
func (h *Host) MoveSplit(dir mode.SplitMotion) { h.Splits = append(h.Splits, dir) }

// OpenSearch counts search requests.
func (h *Host) OpenSearch() { h.Searches++ }

// SwapAlternate counts swaps and returns SwapErr.
func (h *Host) SwapAlternate() error {
	h.Swaps++
	return h.SwapErr
}

// OpenFile loads path from FS, reusing a buffer already opened.
func (h *Host) OpenFile(path string) (*buffer.Buffer, error) {
	key := h.FS.Canonical(path)
	if b, ok := h.files[key]; ok {
		return b, nil
	}
	b := buffer.New(buffer.WithFileSystem(h.FS))
	if err := b.Load(path); err != nil {
		return nil, err
	}
	h.files[key] = b
	return b, nil
}

// Quit counts quit requests.
func (h *Host) Quit() { h.Quits++ }
