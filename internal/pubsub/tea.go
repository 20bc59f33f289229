package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a Bubble Tea command that waits for the next event on ch
// and delivers it as a tea.Msg. It yields nil once ctx is done or ch closes.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return MapCmd(ctx, ch, func(e Event[T]) tea.Msg { return e })
}

// MapCmd is ListenCmd with the event converted by fn before delivery.
func MapCmd[T any](ctx context.Context, ch <-chan Event[T], fn func(Event[T]) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return fn(event)
		}
	}
}

// ContinuousListener keeps one broker subscription alive across Update calls.
// Call Listen again after handling each delivered event.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker until ctx is cancelled.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

// Listen returns a command delivering the next Event[T].
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return ListenCmd(l.ctx, l.ch)
}

// ListenAs returns a command delivering fn(next event).
func (l *ContinuousListener[T]) ListenAs(fn func(Event[T]) tea.Msg) tea.Cmd {
	return MapCmd(l.ctx, l.ch, fn)
}
