package vim

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/engine/marker"
	"github.com/dshills/modalcore/internal/engine/motion"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/mode"
	"github.com/dshills/modalcore/internal/input/register"
)

// handleEx edits the command line. ':' lines run as ex commands; '/' and
// '?' lines search incrementally from where the cursor was.
func (v *Vim) handleEx(ev key.Event) {
	switch {
	case ev.IsEscape():
		v.SetCursor(v.exStart)
		v.SwitchMode(mode.Normal)
		return

	case ev.IsEnter():
		text := string(v.exText)
		prefix := v.exPrefix
		v.SwitchMode(mode.Normal)
		if prefix == ':' {
			v.runEx(text)
		} else {
			v.runSearch(text, prefix)
		}
		return

	case ev.Is(key.KeyBackspace, key.ModNone):
		if len(v.exText) == 0 {
			v.SetCursor(v.exStart)
			v.SwitchMode(mode.Normal)
			return
		}
		v.exText = v.exText[:len(v.exText)-1]

	case ev.IsChar():
		v.exText = append(v.exText, ev.Rune)

	default:
		return
	}

	v.Host().SetCommandText(string(v.exPrefix) + string(v.exText))
	if v.exPrefix != ':' {
		v.incrementalSearch()
	}
}

func searchDir(prefix rune) buffer.Direction {
	if prefix == '?' {
		return buffer.Backward
	}
	return buffer.Forward
}

// incrementalSearch previews the match for the text typed so far.
func (v *Vim) incrementalSearch() {
	needle := string(v.exText)
	if needle == "" {
		v.SetCursor(v.exStart)
		return
	}
	if loc, _ := motion.Search(v.Buffer(), v.exStart, needle, searchDir(v.exPrefix)); loc != buffer.InvalidLocation {
		v.SetCursor(loc)
	} else {
		v.SetCursor(v.exStart)
	}
}

// runSearch completes a '/' or '?' command. An empty pattern repeats the
// last search in the new direction.
func (v *Vim) runSearch(needle string, prefix rune) {
	if needle == "" {
		needle = v.lastSearch
	}
	v.lastSearch = needle
	v.lastSearchDir = searchDir(prefix)
	_ = v.Host().Registers().SetReadOnly(register.LastSearch, needle)
	v.markSearchHits(needle)

	v.SetCursor(v.exStart)
	if loc, ok := v.searchFrom(v.exStart, needle, v.lastSearchDir); ok {
		v.SetCursor(loc)
		v.Host().SetCommandText(string(prefix) + needle)
	}
	v.clampNormal()
}

// markSearchHits replaces the buffer's search markers with one per match.
func (v *Vim) markSearchHits(needle string) {
	buf := v.Buffer()
	idx := v.Host().Markers(buf)
	if idx == nil {
		return
	}
	idx.Clear(marker.TypeSearch)
	if needle == "" {
		return
	}
	n := buffer.Location(len(needle))
	for loc := motion.Find(buf, 0, needle); loc != buffer.InvalidLocation; loc = motion.Find(buf, loc+n, needle) {
		idx.Add(marker.New(buffer.Range{Start: loc, End: loc + n}, marker.TypeSearch))
	}
}

// runEx runs one ex command line.
func (v *Vim) runEx(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	_ = v.Host().Registers().SetReadOnly(register.LastCommand, line)
	v.log.Info("ex command", zap.String("command", line))

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	if n, err := strconv.Atoi(name); err == nil {
		v.gotoLine(n)
		return
	}

	buf := v.Buffer()
	switch name {
	case "$":
		v.gotoLine(buf.LineCount())
	case "w", "write":
		v.write(arg)
	case "q", "quit":
		v.quit(false)
	case "q!", "quit!":
		v.quit(true)
	case "wq", "x", "xit":
		if v.write(arg) {
			v.quit(true)
		}
	case "e", "edit":
		v.edit(arg)
	case "reg", "registers", "di", "display":
		v.Host().SetCommandText(v.listRegisters())
	default:
		v.Host().SetCommandText(fmt.Sprintf("Not an editor command: %s", line))
	}
}

// gotoLine moves to the first non-blank of the 1-based line n.
func (v *Vim) gotoLine(n int) {
	buf := v.Buffer()
	line := min(max(n, 1), buf.LineCount()) - 1
	r, _ := buf.LineOffsets(line)
	v.SetCursor(buf.LinePos(r.Start, buffer.LineFirstGraphChar))
}

func (v *Vim) write(path string) bool {
	buf := v.Buffer()
	if path != "" {
		buf.SetFilePath(path)
	}
	n, err := buf.Save()
	if err != nil {
		v.log.Warn("write failed", zap.String("path", buf.FilePath()), zap.Error(err))
		v.report(err)
		return false
	}
	v.Host().SetCommandText(fmt.Sprintf("%q %dL, %dB written", buf.DisplayName(), buf.LineCount(), n))
	return true
}

func (v *Vim) quit(force bool) {
	if !force && v.Buffer().TestFlags(buffer.FlagDirty) {
		v.Host().SetCommandText("No write since last change (add ! to override)")
		return
	}
	v.Host().Quit()
}

func (v *Vim) edit(path string) {
	if path == "" {
		v.Host().SetCommandText("No file name")
		return
	}
	b, err := v.Host().OpenFile(path)
	if err != nil {
		v.log.Warn("edit failed", zap.String("path", path), zap.Error(err))
		v.report(err)
		return
	}
	v.Window().SetBuffer(b)
	_ = v.Host().Registers().SetReadOnly(register.FileName, b.FilePath())
	v.Host().SetCommandText(fmt.Sprintf("%q %dL", b.DisplayName(), b.LineCount()))
}

// listRegisters formats the non-empty registers, one per line.
func (v *Vim) listRegisters() string {
	var sb strings.Builder
	sb.WriteString("--- Registers ---")
	v.Host().Registers().Each(func(name rune, r register.Register) {
		text := strings.ReplaceAll(r.Text, "\n", "^J")
		fmt.Fprintf(&sb, "\n\"%c   %s", name, text)
	})
	return sb.String()
}
