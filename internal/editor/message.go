package editor

import "github.com/dshills/modalcore/internal/engine/buffer"

// MessageKind discriminates session notifications.
type MessageKind uint8

const (
	CommandTextChanged MessageKind = iota
	FontSizeChanged
	SearchRequested
	ConfigChanged
	BufferOpened
	BufferRemoved
	BufferReloaded
	WindowChanged
	QuitRequested
)

// String returns the message kind name.
func (k MessageKind) String() string {
	switch k {
	case CommandTextChanged:
		return "CommandTextChanged"
	case FontSizeChanged:
		return "FontSizeChanged"
	case SearchRequested:
		return "SearchRequested"
	case ConfigChanged:
		return "ConfigChanged"
	case BufferOpened:
		return "BufferOpened"
	case BufferRemoved:
		return "BufferRemoved"
	case BufferReloaded:
		return "BufferReloaded"
	case WindowChanged:
		return "WindowChanged"
	case QuitRequested:
		return "QuitRequested"
	default:
		return "Unknown"
	}
}

// Message is sent on the session's event bus.
type Message struct {
	Kind   MessageKind
	Buffer *buffer.Buffer
	Text   string
}
