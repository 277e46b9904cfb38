package mode

import (
	"fmt"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/history"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/register"
)

// EditorMode is the editing state inside a mode.
type EditorMode uint8

const (
	// None is the state before Begin.
	None EditorMode = iota
	Normal
	Insert
	Visual
	Ex
)

// String returns the mode name as shown on the status line.
func (m EditorMode) String() string {
	switch m {
	case None:
		return "NONE"
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case Ex:
		return "EX"
	default:
		return fmt.Sprintf("EditorMode(%d)", m)
	}
}

// Result reports the outcome of one key press.
type Result struct {
	// NeedMoreChars is set while a command is incomplete, so the host can
	// keep buffering keys.
	NeedMoreChars bool
}

// Mode interprets keys for the host's active window.
type Mode interface {
	// Name is the registry name, e.g. "Vim".
	Name() string

	// Begin resets the mode for editing. It is called when the mode
	// becomes the global mode.
	Begin()

	AddKeyPress(ev key.Event) Result

	// AddCommandText feeds keys written in key notation.
	AddCommandText(text string) (Result, error)

	EditorMode() EditorMode
	SetEditorMode(m EditorMode)

	Undo() error
	Redo() error

	// VisualRange is the current selection, end exclusive.
	VisualRange() buffer.Range
}

// Window is a view onto a buffer with its own cursor.
type Window interface {
	Buffer() *buffer.Buffer
	SetBuffer(b *buffer.Buffer)
	Cursor() buffer.Location
	SetCursor(loc buffer.Location)
}

// SplitMotion names a direction to move focus between split windows.
type SplitMotion uint8

const (
	SplitLeft SplitMotion = iota
	SplitRight
	SplitUp
	SplitDown
)

// String returns the direction name.
func (s SplitMotion) String() string {
	switch s {
	case SplitLeft:
		return "left"
	case SplitRight:
		return "right"
	case SplitUp:
		return "up"
	case SplitDown:
		return "down"
	default:
		return "unknown"
	}
}

// Host is the editor the modes run inside.
type Host interface {
	// Window returns the active window, or nil.
	Window() Window

	History(b *buffer.Buffer) *history.History
	Markers(b *buffer.Buffer) *marker.Index
	Registers() *register.Store

	// SetCommandText shows status or command-line text.
	SetCommandText(text string)

	FontSize() float64
	SetFontSize(size float64)

	MoveSplit(dir SplitMotion)
	OpenSearch()

	// SwapAlternate shows the file sharing the current file's stem.
	SwapAlternate() error

	// OpenFile returns the buffer for path, loading it if needed.
	OpenFile(path string) (*buffer.Buffer, error)

	// Quit asks the host to close the active window.
	Quit()
}

// FeedKeys parses text as key notation and delivers each key to m. The
// result is that of the last key.
func FeedKeys(m Mode, text string) (Result, error) {
	events, err := key.ParseKeys(text)
	var res Result
	for _, ev := range events {
		res = m.AddKeyPress(ev)
	}
	return res, err
}
