package event

import (
	"slices"
	"sync/atomic"
)

// Handler receives a message and reports whether it consumed it.
type Handler[M any] func(msg M) bool

// Bus is an ordered, first-handler-wins message dispatcher.
type Bus[M any] struct {
	subs   []*Subscription[M]
	nextID uint64

	published atomic.Uint64
	handled   atomic.Uint64
}

// NewBus creates an empty bus.
func NewBus[M any]() *Bus[M] {
	return &Bus[M]{}
}

// Subscribe appends h to the delivery order.
func (b *Bus[M]) Subscribe(h Handler[M]) *Subscription[M] {
	s := b.newSubscription(h)
	b.subs = append(b.subs, s)
	return s
}

// SubscribeFirst puts h ahead of all current subscribers.
func (b *Bus[M]) SubscribeFirst(h Handler[M]) *Subscription[M] {
	s := b.newSubscription(h)
	b.subs = slices.Insert(b.subs, 0, s)
	return s
}

func (b *Bus[M]) newSubscription(h Handler[M]) *Subscription[M] {
	b.nextID++
	return &Subscription[M]{id: b.nextID, handler: h, bus: b}
}

// Publish delivers msg to subscribers in order and stops at the first that
// returns true. It returns whether the message was handled.
func (b *Bus[M]) Publish(msg M) bool {
	b.published.Add(1)

	// Snapshot so handlers can subscribe or cancel while we iterate.
	subs := slices.Clone(b.subs)
	for _, s := range subs {
		if s.cancelled {
			continue
		}
		if s.handler(msg) {
			b.handled.Add(1)
			return true
		}
	}
	return false
}

// Broadcast is Publish under the name notifier interfaces expect.
func (b *Bus[M]) Broadcast(msg M) bool {
	return b.Publish(msg)
}

// Len returns the number of active subscriptions.
func (b *Bus[M]) Len() int {
	return len(b.subs)
}

// Stats reports delivery counters.
func (b *Bus[M]) Stats() Stats {
	return Stats{Published: b.published.Load(), Handled: b.handled.Load()}
}

func (b *Bus[M]) remove(s *Subscription[M]) {
	b.subs = slices.DeleteFunc(b.subs, func(o *Subscription[M]) bool { return o == s })
}

// Stats contains bus counters.
type Stats struct {
	Published uint64
	Handled   uint64
}
