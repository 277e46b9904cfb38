package buffer

// MessageKind discriminates buffer notifications.
type MessageKind uint8

const (
	// PreBufferChange is sent before any mutation with the range about to change.
	PreBufferChange MessageKind = iota
	TextAdded
	TextDeleted
	TextChanged
	Loaded
	MarkersChanged
)

// String returns the message kind name.
func (k MessageKind) String() string {
	switch k {
	case PreBufferChange:
		return "PreBufferChange"
	case TextAdded:
		return "TextAdded"
	case TextDeleted:
		return "TextDeleted"
	case TextChanged:
		return "TextChanged"
	case Loaded:
		return "Loaded"
	case MarkersChanged:
		return "MarkersChanged"
	default:
		return "Unknown"
	}
}

// Message describes a change to a buffer.
type Message struct {
	Kind   MessageKind
	Buffer *Buffer
	Range  Range
}

// Notifier receives buffer messages. Broadcast reports whether a handler
// consumed the message.
type Notifier interface {
	Broadcast(msg Message) bool
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg Message) bool

// Broadcast calls f(msg).
func (f NotifierFunc) Broadcast(msg Message) bool {
	return f(msg)
}

// RangeTracker keeps offsets of its own consistent with buffer edits.
// Both methods receive the half-open range affected by the edit and are
// called before the bytes move.
type RangeTracker interface {
	UpdateForInsert(start, end Location)
	UpdateForDelete(start, end Location)
}

func (b *Buffer) broadcast(kind MessageKind, start, end Location) {
	if b.notifier == nil {
		return
	}
	b.notifier.Broadcast(Message{Kind: kind, Buffer: b, Range: Range{Start: start, End: end}})
}

// NotifyMarkersChanged broadcasts MarkersChanged over the whole buffer.
func (b *Buffer) NotifyMarkersChanged() {
	b.broadcast(MarkersChanged, 0, b.EndLocation())
}
