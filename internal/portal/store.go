package portal

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/pubsub"
)

// Span and attribute names recorded per dispatch.
const (
	SpanDispatch     = "portal.dispatch"
	AttrActions      = "portal.actions"
	AttrChannels     = "portal.channels"
	AttrSeq          = "portal.seq"
	AttrChanged      = "portal.changed"
	AttrLiveChannels = "portal.live_channels"
)

// Transition records one applied dispatch that changed the registry.
type Transition struct {
	Seq     uint64
	Actions []Action
	Before  *Snapshot
	After   *Snapshot
}

// Store owns one registry. Dispatches are applied one batch at a time; a
// dispatch made while subscribers are being notified is queued and applied
// after the current notification pass completes.
type Store struct {
	mu       sync.Mutex
	state    *Snapshot
	hub      *pubsub.Hub[*Snapshot]
	feed     *pubsub.Broker[Transition]
	tracer   trace.Tracer
	queue    []pending
	draining bool
	closed   bool
	seq      uint64
}

type pending struct {
	ctx     context.Context
	actions []Action
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	tracer     trace.Tracer
	feedBuffer int
}

// WithTracer records a span per dispatch.
func WithTracer(tracer trace.Tracer) StoreOption {
	return func(c *storeConfig) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithFeedBuffer sets the per-subscriber buffer of the transition feed.
func WithFeedBuffer(size int) StoreOption {
	return func(c *storeConfig) {
		c.feedBuffer = size
	}
}

// NewStore creates a store holding an empty registry.
func NewStore(opts ...StoreOption) *Store {
	cfg := storeConfig{
		tracer: noop.NewTracerProvider().Tracer("portal"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	initial := EmptySnapshot()
	return &Store{
		state:  initial,
		hub:    pubsub.NewHub(initial),
		feed:   pubsub.NewBrokerWithBuffer[Transition](cfg.feedBuffer),
		tracer: cfg.tracer,
	}
}

// Snapshot returns the current registry.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Feed returns the broker publishing every transition.
func (s *Store) Feed() *pubsub.Broker[Transition] {
	return s.feed
}

// Subscribers returns the number of live selector subscriptions.
func (s *Store) Subscribers() int {
	return s.hub.Len()
}

// Dispatch applies actions, in order, as a single transition. Subscribers are
// notified once, after all of them, and only if their selected value changed.
func (s *Store) Dispatch(ctx context.Context, actions ...Action) {
	if len(actions) == 0 {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		log.Debug(log.CatStore, "Dispatch after close ignored", "actions", describe(actions))
		return
	}
	s.queue = append(s.queue, pending{ctx: ctx, actions: actions})
	if s.draining {
		s.mu.Unlock()
		return
	}
	s.draining = true

	for len(s.queue) > 0 && !s.closed {
		next := s.queue[0]
		s.queue = s.queue[1:]

		_, span := s.tracer.Start(next.ctx, SpanDispatch,
			trace.WithAttributes(
				attribute.Int(AttrActions, len(next.actions)),
				attribute.String(AttrChannels, channels(next.actions)),
			))

		before := s.state
		after := before
		for _, a := range next.actions {
			after = Reduce(after, a)
		}
		s.state = after
		changed := after != before
		if changed {
			s.seq++
		}
		seq := s.seq
		s.mu.Unlock()

		span.SetAttributes(
			attribute.Bool(AttrChanged, changed),
			attribute.Int64(AttrSeq, int64(seq)),
			attribute.Int(AttrLiveChannels, after.Len()),
		)
		if changed {
			log.Debug(log.CatStore, "Transition", "seq", seq, "actions", describe(next.actions), "channels", after.Len())
			s.hub.Notify(after)
			s.feed.Publish(pubsub.TransitionEvent, Transition{
				Seq:     seq,
				Actions: next.actions,
				Before:  before,
				After:   after,
			})
		} else {
			log.Debug(log.CatStore, "No-op dispatch", "actions", describe(next.actions))
		}
		span.SetStatus(codes.Ok, "")
		span.End()

		s.mu.Lock()
	}

	s.queue = nil
	s.draining = false
	s.mu.Unlock()
}

// Watch subscribes onChange to the active entry of name. It returns the
// current active entry; onChange fires only when that entry changes.
func (s *Store) Watch(name Name, onChange func(*Entry)) (*Entry, *pubsub.Subscription) {
	return pubsub.Select(s.hub, func(snap *Snapshot) *Entry {
		return snap.Head(name)
	}, pubsub.Identical[*Entry], onChange)
}

// Observe subscribes onChange to an arbitrary projection of the registry.
func Observe[V any](s *Store, project func(*Snapshot) V, equal func(a, b V) bool, onChange func(V)) (V, *pubsub.Subscription) {
	return pubsub.Select(s.hub, project, equal, onChange)
}

// Close drops every subscription and closes the transition feed.
// Later dispatches are ignored.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.hub.Clear()
	s.feed.Close()
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func describe(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}

func channels(actions []Action) string {
	seen := make(map[Name]bool, len(actions))
	var names []string
	for _, a := range actions {
		if !seen[a.Name] {
			seen[a.Name] = true
			names = append(names, string(a.Name))
		}
	}
	return strings.Join(names, ",")
}
