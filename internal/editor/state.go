package editor

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/multierr"

	"github.com/dshills/modalcore/internal/engine/buffer"
	"github.com/dshills/modalcore/internal/input/register"
	"github.com/dshills/modalcore/internal/input/vim"
)

// stateVersion is written to every saved state and must match on load.
const stateVersion = 1

// ErrBadState is returned for state that is not a saved session.
var ErrBadState = errors.New("invalid session state")

type savedRegister struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Linewise bool   `json:"linewise,omitempty"`
}

type savedWindow struct {
	Path   string `json:"path"`
	Cursor int    `json:"cursor"`
}

// SaveState returns the session as a JSON document: the active mode, the
// font size, registers, the search and find memory, and the files shown
// in each window with their cursors. Windows on unsaved buffers are
// skipped.
func (s *Session) SaveState() ([]byte, error) {
	regs := []savedRegister{}
	s.regs.Each(func(name rune, r register.Register) {
		regs = append(regs, savedRegister{Name: string(name), Text: r.Text, Linewise: r.Linewise})
	})

	windows := []savedWindow{}
	active := 0
	for i, w := range s.windows {
		if w.buf.FilePath() == "" {
			continue
		}
		if i == s.active {
			active = len(windows)
		}
		windows = append(windows, savedWindow{Path: w.buf.FilePath(), Cursor: int(w.cursor)})
	}

	st := s.vim.State()
	modeName := ""
	if m := s.modes.Current(); m != nil {
		modeName = m.Name()
	}

	doc := "{}"
	var err error
	set := func(path string, v any) {
		if err == nil {
			doc, err = sjson.Set(doc, path, v)
		}
	}
	set("version", stateVersion)
	set("mode", modeName)
	set("font_size", s.fontSize)
	set("registers", regs)
	set("vim.search", st.Search)
	set("vim.search_forward", st.SearchForward)
	if st.FindKey != 0 {
		set("vim.find_key", string(st.FindKey))
		set("vim.find_char", int(st.FindChar))
	}
	set("windows", windows)
	set("active_window", active)
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return []byte(doc), nil
}

// LoadState restores a document written by SaveState. Files that can no
// longer be opened and registers that cannot be restored are skipped and
// reported together in the returned error; everything else is restored.
func (s *Session) LoadState(data []byte) error {
	if !gjson.ValidBytes(data) {
		return ErrBadState
	}
	root := gjson.ParseBytes(data)
	if v := root.Get("version"); v.Int() != stateVersion {
		return fmt.Errorf("%w: version %s", ErrBadState, v.Raw)
	}

	var errs error
	if name := root.Get("mode").String(); name != "" {
		errs = multierr.Append(errs, s.SetGlobalMode(name))
	}
	if fs := root.Get("font_size"); fs.Exists() {
		s.SetFontSize(fs.Float())
	}

	root.Get("registers").ForEach(func(_, r gjson.Result) bool {
		name, size := utf8.DecodeRuneInString(r.Get("name").String())
		if name == utf8.RuneError || size != len(r.Get("name").String()) {
			errs = multierr.Append(errs, fmt.Errorf("%w: register %s", ErrBadState, r.Get("name").Raw))
			return true
		}
		reg := register.Register{Text: r.Get("text").String(), Linewise: r.Get("linewise").Bool()}
		errs = multierr.Append(errs, s.regs.Restore(name, reg))
		return true
	})

	st := vim.State{
		Search:        root.Get("vim.search").String(),
		SearchForward: root.Get("vim.search_forward").Bool(),
		FindChar:      byte(root.Get("vim.find_char").Int()),
	}
	if key := root.Get("vim.find_key").String(); key != "" {
		st.FindKey, _ = utf8.DecodeRuneInString(key)
	}
	s.vim.RestoreState(st)

	errs = multierr.Append(errs, s.restoreWindows(root))
	return errs
}

func (s *Session) restoreWindows(root gjson.Result) error {
	var (
		errs   error
		opened []*Window
	)
	root.Get("windows").ForEach(func(_, w gjson.Result) bool {
		path := w.Get("path").String()
		if s.fs != nil && !s.fs.Exists(path) {
			errs = multierr.Append(errs, fmt.Errorf("restoring window: %w: %s", iofs.ErrNotExist, path))
			return true
		}
		b, err := s.FileBuffer(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return true
		}
		var win *Window
		if len(opened) == 0 {
			s.show(b)
			win = s.ActiveWindow()
		} else {
			win = s.Split(b)
		}
		win.SetCursor(buffer.Location(w.Get("cursor").Int()))
		opened = append(opened, win)
		return true
	})

	if len(opened) > 0 {
		i := int(root.Get("active_window").Int())
		if i >= 0 && i < len(opened) {
			for j, w := range s.windows {
				if w == opened[i] {
					s.active = j
				}
			}
		}
	}
	return errs
}
