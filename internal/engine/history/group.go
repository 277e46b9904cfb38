package history

// GroupScope closes a group on End, for use with defer:
//
//	defer h.GroupScope().End()
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope begins a group and returns its scope.
func (h *History) GroupScope() *GroupScope {
	h.BeginGroup()
	return &GroupScope{history: h, active: true}
}

// End closes the group. Only the first call has an effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Transaction runs fn inside a group. If fn fails the commands it added are
// reverted and the error is returned.
func (h *History) Transaction(fn func() error) error {
	h.BeginGroup()
	if err := fn(); err != nil {
		if cerr := h.CancelGroup(); cerr != nil {
			return cerr
		}
		return err
	}
	h.EndGroup()
	return nil
}
