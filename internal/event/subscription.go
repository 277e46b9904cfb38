package event

// Subscription is a registered handler on a Bus.
type Subscription[M any] struct {
	id        uint64
	handler   Handler[M]
	bus       *Bus[M]
	cancelled bool
}

// ID returns the subscription identifier, unique within its bus.
func (s *Subscription[M]) ID() uint64 {
	return s.id
}

// Cancel removes the subscription. Cancelling twice is a no-op.
func (s *Subscription[M]) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	s.bus.remove(s)
}

// IsActive returns true until Cancel is called.
func (s *Subscription[M]) IsActive() bool {
	return !s.cancelled
}
