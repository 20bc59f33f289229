package portal

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func mustTarget(t *testing.T, p *Portal, ctx context.Context, name Name, opts ...TargetOption) *Target {
	t.Helper()
	target, err := p.Target(ctx, name, opts...)
	require.NoError(t, err)
	return target
}

func mustInjector(t *testing.T, p *Portal, ctx context.Context, name Name, c Content) *Injector {
	t.Helper()
	inj, err := p.Injector(ctx, name, c)
	require.NoError(t, err)
	return inj
}

func TestTarget_DetachedRendersNothing(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)
	mustInjector(t, p, ctx, "", Text("Hello!")).Attach()

	target := mustTarget(t, p, ctx, "", WithFallback(Text("fallback")))

	require.False(t, target.Attached())
	require.Empty(t, target.View())
	require.Empty(t, target.Body())
}

func TestTarget_AttachPicksUpExistingEntry(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)
	mustInjector(t, p, ctx, "", Text("Hello!")).Attach()

	target := mustTarget(t, p, ctx, "")
	target.Attach()

	require.Equal(t, "Hello!", target.View())
	require.Equal(t, 0, target.Changes(), "initial read is not a change")
}

func TestTarget_RendersActiveEntryOrFallback(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "c", WithFallback(Text("nothing here")))
	target.Attach()
	require.True(t, target.Empty())
	require.Equal(t, "nothing here", target.View())

	inj := mustInjector(t, p, ctx, "c", Text("x"))
	inj.Attach()
	require.False(t, target.Empty())
	require.Equal(t, "x", target.View())

	inj.Detach()
	require.Equal(t, "nothing here", target.View())
	require.Nil(t, target.Active())
}

func TestTarget_FallbackNeverShowsOtherChannels(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "c")
	target.Attach()
	mustInjector(t, p, ctx, "d", Text("for d")).Attach()

	require.Empty(t, strings.TrimSpace(target.View()))
	require.Equal(t, 0, target.Changes())
}

func TestTarget_NilContentFallsBack(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "", WithFallback(Text("fb")))
	target.Attach()
	mustInjector(t, p, ctx, "", nil).Attach()

	require.NotNil(t, target.Active())
	require.True(t, target.Empty())
	require.Equal(t, "fb", target.View())
}

func TestTarget_NewestWinsThenRevertsLIFO(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "slot")
	target.Attach()

	a := mustInjector(t, p, ctx, "slot", Text("A"))
	b := mustInjector(t, p, ctx, "slot", Text("B"))
	c := mustInjector(t, p, ctx, "slot", Text("C"))
	a.Attach()
	b.Attach()
	require.Equal(t, "B", target.View())

	b.Detach()
	require.Equal(t, "A", target.View())

	b.Attach()
	c.Attach()
	b.Detach()
	require.Equal(t, "C", target.View(), "detaching a queued entry keeps the head")

	c.Detach()
	require.Equal(t, "A", target.View())
}

func TestTarget_ChannelsAreIsolated(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	header := mustTarget(t, p, ctx, "header")
	footer := mustTarget(t, p, ctx, "footer")
	header.Attach()
	footer.Attach()

	mustInjector(t, p, ctx, "header", Text("H")).Attach()
	mustInjector(t, p, ctx, "footer", Text("F")).Attach()

	require.Equal(t, "H", header.View())
	require.Equal(t, "F", footer.View())
	require.Equal(t, 1, header.Changes())
	require.Equal(t, 1, footer.Changes())
}

func TestTarget_ScopesAreIsolated(t *testing.T) {
	p := New()
	_, ctx1 := scope(t, p)
	_, ctx2 := scope(t, p)

	t1 := mustTarget(t, p, ctx1, "")
	t2 := mustTarget(t, p, ctx2, "")
	t1.Attach()
	t2.Attach()

	mustInjector(t, p, ctx1, "", Text("one")).Attach()

	require.Equal(t, "one", t1.View())
	require.Empty(t, strings.TrimSpace(t2.View()))
	require.Equal(t, 0, t2.Changes())
}

func TestTarget_DoubleDetachOfInjectorKeepsOtherChannels(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	header := mustTarget(t, p, ctx, "header")
	header.Attach()
	mustInjector(t, p, ctx, "header", Text("H")).Attach()

	inj := mustInjector(t, p, ctx, "footer", Text("F"))
	inj.Attach()
	inj.Detach()
	inj.Detach()
	mustInjector(t, p, ctx, "footer", Text("never attached")).Detach()

	require.Equal(t, "H", header.View())
}

func TestTarget_StyleIsAppliedToContainer(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "", WithStyle(lipgloss.NewStyle().Border(lipgloss.RoundedBorder())))
	target.Attach()
	mustInjector(t, p, ctx, "", Text("boxed")).Attach()

	view := target.View()
	require.Contains(t, view, "╭")
	require.Contains(t, view, "boxed")
	require.Equal(t, "boxed", target.Body())

	target.SetStyle(lipgloss.NewStyle())
	require.Equal(t, "boxed", target.View())
}

func TestTarget_WrapBreaksLongContent(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "", WithWrap(10))
	target.Attach()
	mustInjector(t, p, ctx, "", Text("the quick brown fox jumps")).Attach()

	for _, line := range strings.Split(target.Body(), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 10)
	}
	require.Contains(t, target.Body(), "\n")
}

func TestTarget_ZoneMarksWhenManagerExists(t *testing.T) {
	zone.NewGlobal()
	defer func() {
		zone.Close()
		zone.DefaultManager = nil
	}()

	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "", WithZoneID("target"))
	target.Attach()
	mustInjector(t, p, ctx, "", Text("traveler")).Attach()

	view := target.View()
	require.NotEqual(t, "traveler", view, "marked output carries zone markers")
	require.Equal(t, "traveler", zone.Scan(view))
}

func TestTarget_OnChangeAndDetach(t *testing.T) {
	p := New()
	pr, ctx := scope(t, p)

	var got []*Entry
	target := mustTarget(t, p, ctx, "", WithOnChange(func(e *Entry) { got = append(got, e) }))
	target.Attach()
	target.Attach()
	require.Equal(t, 1, pr.Store().Subscribers())

	inj := mustInjector(t, p, ctx, "", Text("x"))
	inj.Attach()
	require.Equal(t, []*Entry{inj.Entry()}, got)

	target.Detach()
	target.Detach()
	require.Equal(t, 0, pr.Store().Subscribers())

	inj.Detach()
	require.Len(t, got, 1, "detached target hears nothing")
	require.Empty(t, target.View())
}

func TestTarget_SetFallback(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "")
	target.Attach()
	target.SetFallback(Text("later"))

	require.Equal(t, "later", target.View())
}

// One target on the default channel, an injector mounts and unmounts.
func TestScenario_BasicUsage(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	target := mustTarget(t, p, ctx, "", WithZoneID("target"))
	target.Attach()
	require.Empty(t, strings.TrimSpace(target.View()))

	inj := mustInjector(t, p, ctx, "", Text("Hello!"))
	inj.Attach()
	require.Contains(t, target.View(), "Hello!")

	inj.Detach()
	require.Empty(t, strings.TrimSpace(target.View()))
}

// Named channels, content routed to one of them.
func TestScenario_NamedChannels(t *testing.T) {
	p := New("toHeader", "toFooter")
	_, ctx := scope(t, p)

	target1 := mustTarget(t, p, ctx, "toHeader")
	target2 := mustTarget(t, p, ctx, "toFooter")
	target1.Attach()
	target2.Attach()

	mustInjector(t, p, ctx, "toHeader", Text("Hello!")).Attach()

	require.Contains(t, target1.View(), "Hello!")
	require.Empty(t, strings.TrimSpace(target2.View()))
}

// Host and component mount independently in any order.
func TestScenario_DynamicMounting(t *testing.T) {
	p := New()
	_, ctx := scope(t, p)

	host := mustTarget(t, p, ctx, "")
	component := mustInjector(t, p, ctx, "", Text("Hello!"))

	toggle := func(hasHost, hasComponent bool) {
		if hasHost {
			host.Attach()
		} else {
			host.Detach()
		}
		if hasComponent {
			component.Attach()
		} else {
			component.Detach()
		}
	}

	steps := []struct {
		host, component bool
		wantMounted     bool
		want            string
	}{
		{false, false, false, ""},
		{true, false, true, ""},
		{true, true, true, "Hello!"},
		{false, true, false, ""},
		{true, true, true, "Hello!"},
		{true, false, true, ""},
	}
	for i, step := range steps {
		toggle(step.host, step.component)

		require.Equal(t, step.wantMounted, host.Attached(), "step %d", i)
		require.Equal(t, step.want, strings.TrimSpace(host.View()), "step %d", i)
		require.Equal(t, step.component, component.Attached(), "step %d", i)
	}
}
