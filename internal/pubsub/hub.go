package pubsub

import (
	"sync"
	"sync/atomic"
)

// Hub notifies subscribers when their projection of a shared state changes.
//
// State is replaced wholesale on every Notify, so projections that return
// sub-values of the state (a slice head, a map entry) can be compared cheaply
// and subscribers watching unrelated parts never fire.
type Hub[S any] struct {
	mu    sync.Mutex
	state S
	subs  []*hubSub[S]
	next  uint64
}

type hubSub[S any] struct {
	id     uint64
	active atomic.Bool
	update func(S)
}

// NewHub creates a hub whose projections start from initial.
func NewHub[S any](initial S) *Hub[S] {
	return &Hub[S]{state: initial}
}

// Subscription is a handle returned by Select.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe stops notifications. Safe to call repeatedly and from inside a callback.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Identical compares with ==.
func Identical[V comparable](a, b V) bool {
	return a == b
}

// Select subscribes onChange to project(state). It returns the current
// projection; onChange fires later only when a Notify produces a projection
// that equal reports as different from the last one seen.
func Select[S, V any](h *Hub[S], project func(S) V, equal func(a, b V) bool, onChange func(V)) (V, *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.next++
	sub := &hubSub[S]{id: h.next}
	sub.active.Store(true)

	last := project(h.state)
	sub.update = func(state S) {
		fresh := project(state)
		if equal(last, fresh) {
			return
		}
		last = fresh
		if sub.active.Load() {
			onChange(fresh)
		}
	}
	h.subs = append(h.subs, sub)

	return last, &Subscription{cancel: func() { h.remove(sub) }}
}

func (h *Hub[S]) remove(sub *hubSub[S]) {
	sub.active.Store(false)

	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s.id == sub.id {
			h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
			return
		}
	}
}

// Notify publishes next as the current state. Callers must serialize Notify;
// subscribers added or removed by a callback take effect immediately but the
// in-flight pass only visits the subscribers present when it started.
func (h *Hub[S]) Notify(next S) {
	h.mu.Lock()
	h.state = next
	subs := make([]*hubSub[S], len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, sub := range subs {
		if !sub.active.Load() {
			continue
		}
		sub.update(next)
	}
}

// State returns the last notified state.
func (h *Hub[S]) State() S {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Len returns the number of live subscriptions.
func (h *Hub[S]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Clear drops every subscription.
func (h *Hub[S]) Clear() {
	h.mu.Lock()
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()

	for _, sub := range subs {
		sub.active.Store(false)
	}
}
