package buffer

import (
	"bytes"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/gap"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrReplaceLength    = errors.New("replace must keep length and line structure")
	ErrLocked           = errors.New("buffer is locked")
	ErrReadOnly         = errors.New("buffer is read-only")
	ErrNoPath           = errors.New("buffer has no file path")
	ErrNoFileSystem     = errors.New("buffer has no file system")
)

// Buffer is the text store of one document.
type Buffer struct {
	id   uuid.UUID
	name string
	path string
	kind Type

	text     *gap.Buffer
	lineEnds []Location
	flags    Flags
	tabWidth int

	selection Range
	lastEdit  Location

	updateCount uint64
	lastUpdate  time.Time

	notifier Notifier
	trackers []RangeTracker
	fs       FileSystem
	log      *zap.Logger
}

// New creates a new buffer holding only the sentinel.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:       uuid.New(),
		text:     gap.FromBytes([]byte{0}),
		lineEnds: []Location{1},
		flags:    FlagTerminatedWithZero,
		tabWidth: 4,
		lastEdit: InvalidLocation,
		log:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content. The buffer is not
// marked dirty.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.SetText(s, true)
	return b
}

// Identity

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Name returns the short name of the buffer.
func (b *Buffer) Name() string {
	return b.name
}

// SetName sets the short name of the buffer.
func (b *Buffer) SetName(name string) {
	b.name = name
}

// DisplayName returns the file path if set, otherwise the name.
func (b *Buffer) DisplayName() string {
	if b.path == "" {
		return b.name
	}
	return b.path
}

// Type returns the buffer type.
func (b *Buffer) Type() Type {
	return b.kind
}

// SetType sets the buffer type.
func (b *Buffer) SetType(t Type) {
	b.kind = t
}

// Read Operations

// Len returns the total byte length, including the sentinel.
func (b *Buffer) Len() int {
	return b.text.Len()
}

// EndLocation returns the location of the sentinel.
func (b *Buffer) EndLocation() Location {
	return Location(max(0, b.text.Len()-1))
}

// ByteAt returns the byte at loc, or 0 when loc is outside the buffer.
func (b *Buffer) ByteAt(loc Location) byte {
	if !b.Valid(loc) {
		return 0
	}
	return b.text.At(int(loc))
}

// Text returns the content without the sentinel.
func (b *Buffer) Text() string {
	return string(b.text.Slice(0, int(b.EndLocation())))
}

// Bytes returns a copy of the full storage, including the sentinel.
func (b *Buffer) Bytes() []byte {
	return b.text.Bytes()
}

// Slice returns the text in [start, end), clamped to the buffer.
func (b *Buffer) Slice(start, end Location) string {
	start = max(start, 0)
	end = min(end, Location(b.text.Len()))
	if end <= start {
		return ""
	}
	return string(b.text.Slice(int(start), int(end)))
}

// IsEmpty returns true if the buffer holds only the sentinel.
func (b *Buffer) IsEmpty() bool {
	return b.text.Len() <= 1
}

// Flags and state

// Flags returns the current flags.
func (b *Buffer) Flags() Flags {
	return b.flags
}

// TestFlags returns true if all bits of mask are set.
func (b *Buffer) TestFlags(mask Flags) bool {
	return b.flags.Has(mask)
}

// SetFlags sets the bits of mask.
func (b *Buffer) SetFlags(mask Flags) {
	b.flags |= mask
}

// ClearFlags clears the bits of mask.
func (b *Buffer) ClearFlags(mask Flags) {
	b.flags &^= mask
}

// UpdateCount returns the number of mutations applied so far.
func (b *Buffer) UpdateCount() uint64 {
	return b.updateCount
}

// LastUpdateTime returns when the buffer last changed.
func (b *Buffer) LastUpdateTime() time.Time {
	return b.lastUpdate
}

// LastEditLocation returns the location recorded by SetLastEditLocation.
func (b *Buffer) LastEditLocation() Location {
	return b.lastEdit
}

// SetLastEditLocation records where the last edit happened.
func (b *Buffer) SetLastEditLocation(loc Location) {
	b.lastEdit = loc
}

// Selection returns the current selection.
func (b *Buffer) Selection() Range {
	return b.selection
}

// SetSelection sets the selection, ordering its ends.
func (b *Buffer) SetSelection(r Range) {
	b.selection = r.Normalize()
}

// HasSelection returns true if the selection is non-empty.
func (b *Buffer) HasSelection() bool {
	return b.selection.Start != b.selection.End
}

// ClearSelection empties the selection.
func (b *Buffer) ClearSelection() {
	b.selection = Range{}
}

// AddTracker registers t to be adjusted on every Insert and Delete.
func (b *Buffer) AddTracker(t RangeTracker) {
	b.trackers = append(b.trackers, t)
}

func (b *Buffer) markUpdate() {
	b.updateCount++
	b.lastUpdate = time.Now()
	b.SetFlags(FlagDirty)
}

// Write Operations

// Clear resets the buffer to the sentinel only. Notifications are sent only
// if there was content to remove.
func (b *Buffer) Clear() {
	changed := false
	if b.text.Len() > 1 {
		end := b.EndLocation()
		b.broadcast(PreBufferChange, 0, end)
		for _, t := range b.trackers {
			t.UpdateForDelete(0, end)
		}
		changed = true
	}

	b.text.Reset([]byte{0})
	b.lineEnds = []Location{1}
	b.SetFlags(FlagTerminatedWithZero)

	if changed {
		b.markUpdate()
		b.broadcast(TextDeleted, 0, b.EndLocation())
	}
}

// SetText replaces the whole content. Carriage returns are stripped and
// recorded with FlagStrippedCR; tabs are expanded to spaces. When fromFile is
// true a Loaded message is sent and the buffer is left clean, otherwise
// TextAdded is sent and the buffer is dirty.
func (b *Buffer) SetText(text string, fromFile bool) {
	b.Clear()
	b.ClearFlags(FlagStrippedCR)

	input := make([]byte, 0, len(text)+1)
	lineEnds := make([]Location, 0, bytes.Count([]byte(text), []byte{'\n'})+1)
	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '\r':
			b.flags |= FlagStrippedCR
		case '\t':
			for j := 0; j < b.tabWidth; j++ {
				input = append(input, ' ')
			}
		default:
			input = append(input, c)
			if c == '\n' {
				lineEnds = append(lineEnds, Location(len(input)))
			}
		}
	}

	if len(input) == 0 || input[len(input)-1] != 0 {
		b.flags |= FlagTerminatedWithZero
		input = append(input, 0)
	} else {
		b.flags &^= FlagTerminatedWithZero
	}
	lineEnds = append(lineEnds, Location(len(input)))

	b.text.Reset(input)
	b.lineEnds = lineEnds
	b.markUpdate()

	if fromFile {
		b.broadcast(Loaded, 0, Location(len(input)))
		b.ClearFlags(FlagDirty)
	} else {
		b.broadcast(TextAdded, 0, Location(len(input)))
	}
}

// lowerBound returns the index of the first line end >= loc.
func (b *Buffer) lowerBound(loc Location) int {
	return sort.Search(len(b.lineEnds), func(i int) bool { return b.lineEnds[i] >= loc })
}

// upperBound returns the index of the first line end > loc at or after from.
func (b *Buffer) upperBound(from int, loc Location) int {
	return from + sort.Search(len(b.lineEnds)-from, func(i int) bool { return b.lineEnds[from+i] > loc })
}

// Insert inserts text at loc. loc must lie in [0, EndLocation()] so the
// sentinel stays last.
func (b *Buffer) Insert(loc Location, text string) error {
	if loc < 0 || loc > b.EndLocation() {
		b.log.Debug("insert refused", zap.Int("offset", int(loc)), zap.Int("len", b.Len()))
		return ErrOffsetOutOfRange
	}
	if text == "" {
		return nil
	}

	dist := Location(len(text))
	b.broadcast(PreBufferChange, loc, loc+dist)
	for _, t := range b.trackers {
		t.UpdateForInsert(loc, loc+dist)
	}

	idx := b.lowerBound(loc)
	if idx < len(b.lineEnds) && b.lineEnds[idx] <= loc {
		idx++
	}

	var lines []Location
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, loc+Location(i+1))
		}
	}

	for i := idx; i < len(b.lineEnds); i++ {
		b.lineEnds[i] += dist
	}
	if len(lines) > 0 {
		b.lineEnds = append(b.lineEnds[:idx], append(lines, b.lineEnds[idx:]...)...)
	}

	b.text.Insert(int(loc), []byte(text))
	b.markUpdate()

	b.broadcast(TextAdded, loc, loc+dist)
	return nil
}

// Delete removes the bytes in [start, end). The sentinel can never be
// deleted, so end must not exceed EndLocation().
func (b *Buffer) Delete(start, end Location) error {
	if start < 0 || end > b.EndLocation() {
		b.log.Debug("delete refused", zap.Int("start", int(start)), zap.Int("end", int(end)))
		return ErrOffsetOutOfRange
	}
	if end < start {
		return ErrRangeInvalid
	}
	if start == end {
		return nil
	}

	b.broadcast(PreBufferChange, start, end)
	for _, t := range b.trackers {
		t.UpdateForDelete(start, end)
	}

	first := b.lowerBound(start)
	last := b.upperBound(first, end)
	if b.lineEnds[first] <= start {
		first++
	}

	diff := end - start
	for i := last; i < len(b.lineEnds); i++ {
		b.lineEnds[i] -= diff
	}
	if first < last {
		b.lineEnds = append(b.lineEnds[:first], b.lineEnds[last:]...)
	}

	b.text.Delete(int(start), int(end))
	b.markUpdate()

	b.broadcast(TextDeleted, start, end)
	return nil
}

// Replace overwrites [start, end) in place and broadcasts TextChanged.
// A single-byte text fills the whole range; otherwise text must be exactly
// end-start bytes. Neither the text nor the replaced range may contain a
// newline, so line ends never move. Length-changing replacement is a
// Delete followed by an Insert.
func (b *Buffer) Replace(start, end Location, text string) error {
	if start < 0 || end > b.EndLocation() {
		return ErrOffsetOutOfRange
	}
	if end < start {
		return ErrRangeInvalid
	}
	if text == "" || (len(text) != 1 && Location(len(text)) != end-start) {
		return ErrReplaceLength
	}
	if bytes.IndexByte([]byte(text), '\n') >= 0 || bytes.IndexByte(b.text.Slice(int(start), int(end)), '\n') >= 0 {
		return ErrReplaceLength
	}

	b.broadcast(PreBufferChange, start, end)
	for loc := start; loc < end; loc++ {
		c := text[0]
		if len(text) > 1 {
			c = text[loc-start]
		}
		b.text.Set(int(loc), c)
	}
	b.markUpdate()

	b.broadcast(TextChanged, start, end)
	return nil
}
