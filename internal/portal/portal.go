package portal

import (
	"context"
	"fmt"
	"slices"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/portal/internal/log"
	"github.com/zjrosen/portal/internal/pubsub"
)

// Portal is a family of channels. Providers, injectors and targets created
// from different Portals never interact, even when channel names collide.
type Portal struct {
	names  []Name
	closed bool
}

// New creates a portal. With names, only those channels are accepted and a
// name is mandatory; without, any name is accepted and an empty name means
// DefaultName.
func New(names ...Name) *Portal {
	p := &Portal{}
	for _, n := range names {
		if n == "" || slices.Contains(p.names, n) {
			continue
		}
		p.names = append(p.names, n)
	}
	p.closed = len(p.names) > 0
	return p
}

// Names returns the accepted channels. An open portal reports DefaultName.
func (p *Portal) Names() []Name {
	if !p.closed {
		return []Name{DefaultName}
	}
	return slices.Clone(p.names)
}

// Restricted reports whether the portal was created with explicit names.
func (p *Portal) Restricted() bool {
	return p.closed
}

// Resolve validates name against the portal's channel list.
func (p *Portal) Resolve(name Name) (Name, error) {
	if !p.closed {
		if name == "" {
			return DefaultName, nil
		}
		return name, nil
	}
	if name == "" {
		return "", ErrNameRequired
	}
	if !slices.Contains(p.names, name) {
		return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownChannel, name, p.names)
	}
	return name, nil
}

type scopeKey struct {
	portal *Portal
}

// Provider owns one isolated registry for a subtree.
type Provider struct {
	portal   *Portal
	store    *Store
	ctx      context.Context
	cancel   context.CancelFunc
	once     sync.Once
	listener *pubsub.ContinuousListener[Transition]
}

// TransitionMsg is delivered by Provider.Listen after the registry changes.
type TransitionMsg struct {
	Transition Transition
}

// NewProvider creates a provider with an empty registry.
func (p *Portal) NewProvider(opts ...StoreOption) *Provider {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore(opts...)
	log.Debug(log.CatPortal, "Provider created", "channels", fmt.Sprint(p.Names()))
	return &Provider{
		portal:   p,
		store:    store,
		ctx:      ctx,
		cancel:   cancel,
		listener: pubsub.NewContinuousListener(ctx, store.Feed()),
	}
}

// Context returns parent carrying this provider. Injectors and targets built
// from the returned context, or any context derived from it, use this registry.
func (pr *Provider) Context(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithValue(parent, scopeKey{portal: pr.portal}, pr)
}

// Store returns the provider's registry store.
func (pr *Provider) Store() *Store {
	return pr.store
}

// Snapshot returns the current registry.
func (pr *Provider) Snapshot() *Snapshot {
	return pr.store.Snapshot()
}

// Listen returns a command that waits for the next registry transition and
// delivers it as a TransitionMsg. Re-issue it after each message, the same
// way as any continuous Bubble Tea subscription.
func (pr *Provider) Listen() tea.Cmd {
	return pr.listener.ListenAs(func(e pubsub.Event[Transition]) tea.Msg {
		return TransitionMsg{Transition: e.Payload}
	})
}

// Close tears the scope down. Safe to call more than once.
func (pr *Provider) Close() {
	pr.once.Do(func() {
		pr.cancel()
		pr.store.Close()
		log.Debug(log.CatPortal, "Provider closed")
	})
}

// FromContext returns the nearest provider of this portal in ctx.
func (p *Portal) FromContext(ctx context.Context) (*Provider, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	pr, ok := ctx.Value(scopeKey{portal: p}).(*Provider)
	if !ok || pr == nil {
		return nil, ErrNoProvider
	}
	if pr.store.Closed() {
		return nil, ErrProviderClosed
	}
	return pr, nil
}
