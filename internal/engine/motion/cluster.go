package motion

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/modalcore/internal/engine/buffer"
)

// NextCluster returns the start of the grapheme cluster after the one at
// loc, never passing the line's newline.
func NextCluster(t Text, loc buffer.Location) buffer.Location {
	loc = ClusterStart(t, loc)
	end := t.LinePos(loc, buffer.LineCRBegin)
	if loc >= end {
		return loc
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(t.Slice(loc, end), -1)
	return loc + buffer.Location(max(1, len(cluster)))
}

// PrevCluster returns the start of the grapheme cluster before the one at
// loc, never leaving the line.
func PrevCluster(t Text, loc buffer.Location) buffer.Location {
	loc = ClusterStart(t, loc)
	begin := t.LinePos(loc, buffer.LineBegin)
	if loc <= begin {
		return begin
	}
	prev := begin
	eachCluster(t.Slice(begin, loc), func(offset int, _ string) bool {
		prev = begin + buffer.Location(offset)
		return true
	})
	return prev
}

// ClusterStart snaps loc back to the start of the grapheme cluster that
// contains it.
func ClusterStart(t Text, loc buffer.Location) buffer.Location {
	loc = t.Clamp(loc)
	if t.ByteAt(loc) < 0x80 {
		return loc
	}
	begin := t.LinePos(loc, buffer.LineBegin)
	end := t.LinePos(loc, buffer.LineCRBegin)
	start := loc
	eachCluster(t.Slice(begin, end), func(offset int, cluster string) bool {
		at := begin + buffer.Location(offset)
		if at+buffer.Location(len(cluster)) > loc {
			start = at
			return false
		}
		return true
	})
	return start
}

// DisplayColumn returns the terminal cell column of loc on its line.
func DisplayColumn(t Text, loc buffer.Location) int {
	loc = t.Clamp(loc)
	begin := t.LinePos(loc, buffer.LineBegin)
	return runewidth.StringWidth(t.Slice(begin, loc))
}

// LocationAtColumn returns the location on the line containing loc whose
// display column is closest to col without passing it. The result stays on
// the last character before the newline.
func LocationAtColumn(t Text, loc buffer.Location, col int) buffer.Location {
	begin := t.LinePos(loc, buffer.LineBegin)
	last := t.LinePos(loc, buffer.LineLastNonCR)
	end := t.LinePos(loc, buffer.LineCRBegin)

	target := begin
	width := 0
	eachCluster(t.Slice(begin, end), func(offset int, cluster string) bool {
		target = begin + buffer.Location(offset)
		width += runewidth.StringWidth(cluster)
		return width <= col
	})
	return min(target, last)
}

func eachCluster(s string, fn func(offset int, cluster string) bool) {
	state := -1
	offset := 0
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		if !fn(offset, cluster) {
			return
		}
		offset += len(cluster)
	}
}
