package portal

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/pubsub"
)

// Target renders the active entry of a channel, or its fallback when the
// channel is empty. A detached target renders nothing.
type Target struct {
	provider *Provider
	name     Name
	fallback Content
	style    lipgloss.Style
	zoneID   string
	wrap     int
	onChange func(*Entry)

	head    *Entry
	sub     *pubsub.Subscription
	changes int
}

// TargetOption configures a Target.
type TargetOption func(*Target)

// WithFallback sets the content shown while the channel is empty.
func WithFallback(c Content) TargetOption {
	return func(t *Target) { t.fallback = c }
}

// WithStyle sets the container style applied around whatever is rendered.
func WithStyle(s lipgloss.Style) TargetOption {
	return func(t *Target) { t.style = s }
}

// WithZoneID marks the container as a bubblezone zone so mouse events can be
// matched against it. Ignored unless a global zone manager exists.
func WithZoneID(id string) TargetOption {
	return func(t *Target) { t.zoneID = id }
}

// WithWrap word-wraps content to width cells before styling.
func WithWrap(width int) TargetOption {
	return func(t *Target) { t.wrap = width }
}

// WithOnChange registers fn to run whenever the active entry changes.
func WithOnChange(fn func(*Entry)) TargetOption {
	return func(t *Target) { t.onChange = fn }
}

// Target creates a detached target in the provider scope carried by ctx.
func (p *Portal) Target(ctx context.Context, name Name, opts ...TargetOption) (*Target, error) {
	pr, err := p.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	resolved, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}
	t := &Target{
		provider: pr,
		name:     resolved,
		style:    lipgloss.NewStyle(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Attach subscribes to the channel's active entry.
func (t *Target) Attach() {
	if t.sub != nil {
		return
	}
	t.head, t.sub = t.provider.store.Watch(t.name, t.receive)
	log.Debug(log.CatPortal, "Target attached", "channel", t.name, "empty", t.head == nil)
}

func (t *Target) receive(e *Entry) {
	t.head = e
	t.changes++
	if t.onChange != nil {
		t.onChange(e)
	}
}

// Detach unsubscribes. The target renders nothing until attached again.
func (t *Target) Detach() {
	if t.sub == nil {
		return
	}
	t.sub.Unsubscribe()
	t.sub = nil
	t.head = nil
	log.Debug(log.CatPortal, "Target detached", "channel", t.name)
}

// Name returns the channel the target displays.
func (t *Target) Name() Name { return t.name }

// Attached reports whether the target is subscribed.
func (t *Target) Attached() bool { return t.sub != nil }

// Active returns the entry being displayed, or nil.
func (t *Target) Active() *Entry { return t.head }

// Empty reports whether the target is showing its fallback.
func (t *Target) Empty() bool {
	return t.head == nil || t.head.Content == nil
}

// Changes returns how many times the active entry changed while attached.
func (t *Target) Changes() int { return t.changes }

// SetStyle replaces the container style.
func (t *Target) SetStyle(s lipgloss.Style) { t.style = s }

// SetFallback replaces the fallback content.
func (t *Target) SetFallback(c Content) { t.fallback = c }

// Body returns the unstyled content the target would display.
func (t *Target) Body() string {
	if t.sub == nil {
		return ""
	}
	var body string
	switch {
	case !t.Empty():
		body = t.head.Content.View()
	case t.fallback != nil:
		body = t.fallback.View()
	}
	if t.wrap > 0 {
		body = wordwrap.String(body, t.wrap)
	}
	return body
}

// View renders the container with the active content or the fallback.
func (t *Target) View() string {
	if t.sub == nil {
		return ""
	}
	out := t.style.Render(t.Body())
	if t.zoneID != "" && zone.DefaultManager != nil {
		out = zone.Mark(t.zoneID, out)
	}
	return out
}
