package vim

import "github.com/dshills/modalcore/internal/engine/buffer"

// State is the search and find memory that n, N, ; and , replay. Hosts
// save it between sessions.
type State struct {
	Search        string
	SearchForward bool

	// FindKey is f, F, t or T, zero when no find was made.
	FindKey  rune
	FindChar byte
}

// State returns the current search and find memory.
func (v *Vim) State() State {
	s := State{Search: v.lastSearch, SearchForward: v.lastSearchDir == buffer.Forward}
	if v.lastFind.set {
		for key, m := range motions {
			if m.ID == v.lastFind.id && m.NeedsChar {
				s.FindKey = key
				s.FindChar = v.lastFind.ch
				break
			}
		}
	}
	return s
}

// RestoreState replaces the search and find memory. An unknown FindKey
// clears the find.
func (v *Vim) RestoreState(s State) {
	v.lastSearch = s.Search
	v.lastSearchDir = buffer.Backward
	if s.SearchForward {
		v.lastSearchDir = buffer.Forward
	}

	v.lastFind.set = false
	if m := GetMotion(s.FindKey); m != nil && m.NeedsChar && s.FindChar != 0 {
		v.lastFind.ch, v.lastFind.id, v.lastFind.set = s.FindChar, m.ID, true
	}
}
