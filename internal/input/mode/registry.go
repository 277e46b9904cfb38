package mode

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrUnknownMode is returned when selecting a mode that was never registered.
var ErrUnknownMode = errors.New("unknown mode")

// ChangeFunc is called after the global mode changes. from is nil for the
// first selection.
type ChangeFunc func(from, to Mode)

// Registry holds the modes of one editor session and the active one.
type Registry struct {
	modes     map[string]Mode
	current   Mode
	callbacks []ChangeFunc
	log       *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		modes: make(map[string]Mode),
		log:   log.Named("mode"),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RegisterGlobalMode adds m, replacing any mode with the same name.
func (r *Registry) RegisterGlobalMode(m Mode) {
	r.modes[normalize(m.Name())] = m
}

// Unregister removes the mode called name. The active mode cannot be removed.
func (r *Registry) Unregister(name string) error {
	key := normalize(name)
	if r.current != nil && normalize(r.current.Name()) == key {
		return fmt.Errorf("cannot unregister current mode %s", name)
	}
	delete(r.modes, key)
	return nil
}

// SetGlobalMode activates the mode called name (case-insensitive) and
// calls its Begin.
func (r *Registry) SetGlobalMode(name string) error {
	next, ok := r.modes[normalize(name)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}

	prev := r.current
	r.current = next
	next.Begin()
	r.log.Debug("global mode", zap.String("mode", next.Name()))

	for _, cb := range r.callbacks {
		if cb != nil {
			cb(prev, next)
		}
	}
	return nil
}

// Current returns the active mode, or nil.
func (r *Registry) Current() Mode {
	return r.current
}

// Get returns the mode called name, or nil.
func (r *Registry) Get(name string) Mode {
	return r.modes[normalize(name)]
}

// Names returns the registered mode names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modes))
	for _, m := range r.modes {
		names = append(names, m.Name())
	}
	sort.Strings(names)
	return names
}

// OnChange registers fn for mode changes and returns a function that
// unregisters it.
func (r *Registry) OnChange(fn ChangeFunc) func() {
	r.callbacks = append(r.callbacks, fn)
	index := len(r.callbacks) - 1
	return func() {
		if index < len(r.callbacks) {
			r.callbacks[index] = nil
		}
	}
}
