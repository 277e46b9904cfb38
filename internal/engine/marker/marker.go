package marker

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// ID identifies a marker within its Index.
type ID uint64

// Type is a bitmask classifying markers.
type Type uint8

const (
	// TypeMessage marks diagnostics such as errors and warnings.
	TypeMessage Type = 1 << iota
	// TypeSearch marks search hits.
	TypeSearch

	// TypeAll matches every marker type.
	TypeAll = TypeMessage | TypeSearch
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeMessage:
		return "message"
	case TypeSearch:
		return "search"
	case TypeAll:
		return "all"
	}
	return "none"
}

// Display is a bitmask of how a marker is shown.
type Display uint8

const (
	DisplayHidden     Display = 0
	DisplayUnderline  Display = 1 << (iota - 1)
	DisplayBackground
	DisplayTooltip
	DisplayTooltipAtLine
	DisplayCursorTip
	DisplayCursorTipAtLine
	DisplayIndicator

	DisplayAll = DisplayUnderline | DisplayBackground | DisplayTooltip |
		DisplayTooltipAtLine | DisplayCursorTip | DisplayCursorTipAtLine | DisplayIndicator
)

var displayNames = []struct {
	flag Display
	name string
}{
	{DisplayUnderline, "underline"},
	{DisplayBackground, "background"},
	{DisplayTooltip, "tooltip"},
	{DisplayTooltipAtLine, "tooltip-at-line"},
	{DisplayCursorTip, "cursor-tip"},
	{DisplayCursorTipAtLine, "cursor-tip-at-line"},
	{DisplayIndicator, "indicator"},
}

// String returns the set flags joined with '|'.
func (d Display) String() string {
	if d == DisplayHidden {
		return "hidden"
	}
	var parts []string
	for _, n := range displayNames {
		if d&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// TipPos places a marker's tooltip relative to its line.
type TipPos uint8

const (
	TipAbove TipPos = iota
	TipBelow
	TipRight
)

// Marker is an annotated buffer range.
type Marker struct {
	ID          ID
	Range       buffer.Range
	Type        Type
	Display     Display
	Name        string
	Description string
	TipPos      TipPos

	TextColor       colorful.Color
	BackgroundColor colorful.Color
	HighlightColor  colorful.Color
}

// New returns a fully displayed marker of type t over r.
func New(r buffer.Range, t Type) Marker {
	return Marker{
		Range:           r,
		Type:            t,
		Display:         DisplayAll,
		TextColor:       colorful.Color{R: 1, G: 1, B: 1},
		BackgroundColor: colorful.Color{},
		HighlightColor:  colorful.Color{},
	}
}

// ContainsLocation returns true if loc lies inside the marker.
func (m Marker) ContainsLocation(loc buffer.Location) bool {
	return m.Range.ContainsLocation(loc)
}

// Intersects returns true if r overlaps the marker.
func (m Marker) Intersects(r buffer.Range) bool {
	return r.Start < m.Range.End && r.End > m.Range.Start
}

// IsVisible returns true unless the marker is hidden.
func (m Marker) IsVisible() bool {
	return m.Display != DisplayHidden
}
