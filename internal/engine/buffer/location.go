package buffer

import "fmt"

// Location is a byte offset into a Buffer.
type Location int

// InvalidLocation denotes an unset or invalid location.
const InvalidLocation Location = -1

// Direction selects which way a search or motion walks.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Step returns +1 for Forward and -1 for Backward.
func (d Direction) Step() Location {
	if d == Backward {
		return -1
	}
	return 1
}

// Range represents a byte range in the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Location // Inclusive start position
	End   Location // Exclusive end position
}

// NewRange creates a new Range from start and end locations.
func NewRange(start, end Location) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in bytes.
func (r Range) Len() Location {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if both ends are set and Start <= End.
func (r Range) IsValid() bool {
	return r.Start >= 0 && r.Start <= r.End
}

// Normalize returns the range with Start and End ordered.
func (r Range) Normalize() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// ContainsLocation returns true if loc is within the range.
func (r Range) ContainsLocation(loc Location) bool {
	return loc >= r.Start && loc < r.End
}

// Intersects returns true if this range overlaps other.
func (r Range) Intersects(other Range) bool {
	return r.Start < other.End && r.End > other.Start
}

// Shift returns the range moved by delta.
func (r Range) Shift(delta Location) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}
