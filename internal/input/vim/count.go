package vim

import (
	"math"
	"strings"
)

// MaxCount caps typed counts so products cannot overflow.
const MaxCount = math.MaxInt32

// MaxRepeatBytes bounds the text a count can generate for a repeated insert
// or put.
const MaxRepeatBytes = 16 << 20

// CountState accumulates a typed count.
type CountState struct {
	Value  int
	Active bool
}

// Reset clears the count.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// AccumulateDigit adds an ASCII digit to the count and returns true if it
// was accepted. A 0 cannot start a count.
func (c *CountState) AccumulateDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	c.Value = min(c.Value*10+digit, MaxCount)
	return true
}

// Get returns the count, 1 when none was typed.
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// IsCountStart returns true for 1-9.
func IsCountStart(r rune) bool {
	return r >= '1' && r <= '9'
}

// CombineCounts multiplies the counts before and after an operator, each
// defaulting to 1, capped at MaxCount.
func CombineCounts(count1, count2 int) int {
	count1 = max(count1, 1)
	count2 = max(count2, 1)
	if count1 > MaxCount/count2 {
		return MaxCount
	}
	return count1 * count2
}

// RepeatText returns s repeated count times. The count is lowered so the
// result stays within MaxRepeatBytes, keeping at least one copy of s.
func RepeatText(s string, count int) string {
	if s == "" || count <= 0 {
		return ""
	}
	count = min(count, max(MaxRepeatBytes/len(s), 1))
	return strings.Repeat(s, count)
}
