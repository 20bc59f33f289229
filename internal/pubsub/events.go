// Package pubsub provides the publish/subscribe plumbing used by portal scopes:
// a buffered channel Broker for fan-out feeds, and a Hub that notifies
// subscribers only when their projection of a shared state changes.
package pubsub

import (
	"context"
	"time"
)

// EventType labels a published event.
type EventType string

const (
	// TransitionEvent carries a registry transition.
	TransitionEvent EventType = "transition"
	// LogEvent carries a formatted log line.
	LogEvent EventType = "log"
)

// Event is one published payload. Seq increases by one per Publish on a broker.
type Event[T any] struct {
	Type      EventType
	Seq       uint64
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
