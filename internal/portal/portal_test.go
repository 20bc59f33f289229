package portal

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

// scope creates a provider for p and returns a context carrying it.
func scope(t *testing.T, p *Portal) (*Provider, context.Context) {
	t.Helper()
	pr := p.NewProvider()
	t.Cleanup(pr.Close)
	return pr, pr.Context(context.Background())
}

func TestNew_OpenPortal(t *testing.T) {
	p := New()

	require.False(t, p.Restricted())
	require.Equal(t, []Name{DefaultName}, p.Names())

	name, err := p.Resolve("")
	require.NoError(t, err)
	require.Equal(t, DefaultName, name)

	name, err = p.Resolve("anything")
	require.NoError(t, err)
	require.Equal(t, Name("anything"), name)
}

func TestNew_RestrictedPortal(t *testing.T) {
	p := New("toHeader", "toFooter", "toHeader", "")

	require.True(t, p.Restricted())
	require.Equal(t, []Name{"toHeader", "toFooter"}, p.Names())

	_, err := p.Resolve("")
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = p.Resolve("toSidebar")
	require.ErrorIs(t, err, ErrUnknownChannel)
	require.Contains(t, err.Error(), "toSidebar")

	name, err := p.Resolve("toFooter")
	require.NoError(t, err)
	require.Equal(t, Name("toFooter"), name)
}

func TestNames_ReturnsCopy(t *testing.T) {
	p := New("a", "b")
	names := p.Names()
	names[0] = "z"

	require.Equal(t, []Name{"a", "b"}, p.Names())
}

func TestFromContext_MissingProvider(t *testing.T) {
	p := New()

	_, err := p.Injector(context.Background(), "", Text("Hello!"))
	require.ErrorIs(t, err, ErrNoProvider)

	_, err = p.Target(context.Background(), "")
	require.ErrorIs(t, err, ErrNoProvider)

	//nolint:staticcheck // SA1012: nil context is a usage defect we report
	_, err = p.FromContext(nil)
	require.ErrorIs(t, err, ErrNoProvider)
}

func TestFromContext_OtherPortalsProviderIsInvisible(t *testing.T) {
	p1, p2 := New(), New()
	_, ctx := scope(t, p1)

	_, err := p2.Injector(ctx, "", Text("x"))
	require.ErrorIs(t, err, ErrNoProvider)
}

func TestFromContext_ClosedProvider(t *testing.T) {
	p := New()
	pr := p.NewProvider()
	ctx := pr.Context(context.Background())
	pr.Close()
	pr.Close()

	_, err := p.Target(ctx, "")
	require.ErrorIs(t, err, ErrProviderClosed)
}

func TestFromContext_NestedProviderShadowsOuter(t *testing.T) {
	p := New()
	outer, outerCtx := scope(t, p)
	inner := p.NewProvider()
	t.Cleanup(inner.Close)
	innerCtx := inner.Context(outerCtx)

	got, err := p.FromContext(innerCtx)
	require.NoError(t, err)
	require.Same(t, inner, got)

	got, err = p.FromContext(outerCtx)
	require.NoError(t, err)
	require.Same(t, outer, got)
}

func TestInjectorTarget_RejectBadNames(t *testing.T) {
	p := New("toHeader", "toFooter")
	_, ctx := scope(t, p)

	_, err := p.Injector(ctx, "", Text("x"))
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = p.Target(ctx, "toNowhere")
	require.ErrorIs(t, err, ErrUnknownChannel)
}

func TestProvider_ListenDeliversTransitionMsg(t *testing.T) {
	p := New()
	pr, ctx := scope(t, p)

	inj, err := p.Injector(ctx, "", Text("Hello!"))
	require.NoError(t, err)
	inj.Attach()

	msg := pr.Listen()()
	tm, ok := msg.(TransitionMsg)
	require.True(t, ok, "got %T", msg)
	require.Equal(t, uint64(1), tm.Transition.Seq)
	require.Same(t, inj.Entry(), tm.Transition.After.Head(DefaultName))
	require.Same(t, pr.Snapshot(), tm.Transition.After)
}

func TestProvider_ListenAfterCloseYieldsNil(t *testing.T) {
	p := New()
	pr := p.NewProvider()
	pr.Close()

	var msg tea.Msg = pr.Listen()()
	require.Nil(t, msg)
}
