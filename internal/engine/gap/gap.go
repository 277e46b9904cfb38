// Package gap provides a gap buffer: a contiguous byte array with a movable
// hole at the edit point.
//
// Inserts and deletes at the gap are O(1) amortized; moving the gap costs
// time proportional to the distance moved. Interactive editing tends to
// happen near the previous edit, which keeps most moves short.
//
// Basic usage:
//
//	b := gap.FromString("hello world")
//	b.Insert(5, []byte(","))   // "hello, world"
//	b.Delete(0, 7)             // "world"
//	text := b.String()         // "world"
//
// A Buffer is not safe for concurrent use.
package gap

const minGrow = 64

// Buffer is a gap buffer of bytes.
type Buffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

// New creates an empty gap buffer.
func New() *Buffer {
	return &Buffer{data: make([]byte, minGrow), gapEnd: minGrow}
}

// FromBytes creates a gap buffer holding a copy of p, with the gap at the end.
func FromBytes(p []byte) *Buffer {
	data := make([]byte, len(p)+minGrow)
	copy(data, p)
	return &Buffer{data: data, gapStart: len(p), gapEnd: len(data)}
}

// FromString creates a gap buffer holding s.
func FromString(s string) *Buffer {
	return FromBytes([]byte(s))
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int {
	return len(b.data) - (b.gapEnd - b.gapStart)
}

func (b *Buffer) gapLen() int {
	return b.gapEnd - b.gapStart
}

// At returns the byte at logical index i. It panics if i is out of range,
// like a slice index.
func (b *Buffer) At(i int) byte {
	if i < b.gapStart {
		return b.data[i]
	}
	return b.data[i+b.gapLen()]
}

// Set overwrites the byte at logical index i.
func (b *Buffer) Set(i int, c byte) {
	if i < b.gapStart {
		b.data[i] = c
		return
	}
	b.data[i+b.gapLen()] = c
}

// moveGap positions the gap so that it starts at logical index pos.
func (b *Buffer) moveGap(pos int) {
	switch {
	case pos < b.gapStart:
		n := b.gapStart - pos
		copy(b.data[b.gapEnd-n:b.gapEnd], b.data[pos:b.gapStart])
		b.gapStart -= n
		b.gapEnd -= n
	case pos > b.gapStart:
		n := pos - b.gapStart
		copy(b.data[b.gapStart:b.gapStart+n], b.data[b.gapEnd:b.gapEnd+n])
		b.gapStart += n
		b.gapEnd += n
	}
}

// grow ensures the gap can hold at least n bytes.
func (b *Buffer) grow(n int) {
	if b.gapLen() >= n {
		return
	}
	size := len(b.data) * 2
	if need := b.Len() + n + minGrow; size < need {
		size = need
	}
	data := make([]byte, size)
	copy(data, b.data[:b.gapStart])
	tail := len(b.data) - b.gapEnd
	copy(data[size-tail:], b.data[b.gapEnd:])
	b.gapEnd = size - tail
	b.data = data
}

// Insert inserts p at logical index pos. pos must be in [0, Len()].
func (b *Buffer) Insert(pos int, p []byte) {
	if len(p) == 0 {
		return
	}
	b.grow(len(p))
	b.moveGap(pos)
	copy(b.data[b.gapStart:], p)
	b.gapStart += len(p)
}

// Delete removes the bytes in [start, end). The bounds must satisfy
// 0 <= start <= end <= Len().
func (b *Buffer) Delete(start, end int) {
	if end <= start {
		return
	}
	b.moveGap(start)
	b.gapEnd += end - start
}

// Reset replaces the whole content with a copy of p.
func (b *Buffer) Reset(p []byte) {
	nb := FromBytes(p)
	*b = *nb
}

// Slice returns a copy of the bytes in [start, end).
func (b *Buffer) Slice(start, end int) []byte {
	if end <= start {
		return nil
	}
	out := make([]byte, 0, end-start)
	if start < b.gapStart {
		stop := min(end, b.gapStart)
		out = append(out, b.data[start:stop]...)
		start = stop
	}
	if start < end {
		off := b.gapLen()
		out = append(out, b.data[start+off:end+off]...)
	}
	return out
}

// Bytes returns a copy of the whole content.
func (b *Buffer) Bytes() []byte {
	return b.Slice(0, b.Len())
}

// String returns the content as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}
