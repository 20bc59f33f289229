package pubsub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type state struct {
	a, b *int
}

func intp(n int) *int { return &n }

func TestSelect_ReturnsCurrentProjection(t *testing.T) {
	one := intp(1)
	hub := NewHub(state{a: one})

	got, sub := Select(hub, func(s state) *int { return s.a }, Identical[*int], func(*int) {})
	defer sub.Unsubscribe()

	require.Same(t, one, got)
	require.Equal(t, 1, hub.Len())
}

func TestNotify_FiresOnlyWhenProjectionChanges(t *testing.T) {
	a1, b1 := intp(1), intp(1)
	hub := NewHub(state{a: a1, b: b1})

	var aCalls, bCalls int
	_, subA := Select(hub, func(s state) *int { return s.a }, Identical[*int], func(*int) { aCalls++ })
	_, subB := Select(hub, func(s state) *int { return s.b }, Identical[*int], func(*int) { bCalls++ })
	defer subA.Unsubscribe()
	defer subB.Unsubscribe()

	b2 := intp(2)
	hub.Notify(state{a: a1, b: b2})
	require.Equal(t, 0, aCalls, "a untouched")
	require.Equal(t, 1, bCalls)

	hub.Notify(state{a: a1, b: b2})
	require.Equal(t, 1, bCalls, "same projection does not fire")
}

func TestNotify_DeliversFreshValue(t *testing.T) {
	hub := NewHub(0)

	var seen []int
	_, sub := Select(hub, func(s int) int { return s / 10 }, Identical[int], func(v int) { seen = append(seen, v) })
	defer sub.Unsubscribe()

	for _, s := range []int{1, 5, 12, 19, 20, 3} {
		hub.Notify(s)
	}
	require.Equal(t, []int{1, 2, 0}, seen)
}

func TestUnsubscribe_DuringNotify(t *testing.T) {
	hub := NewHub(0)

	var firstCalls, secondCalls int
	var second *Subscription
	_, first := Select(hub, func(s int) int { return s }, Identical[int], func(int) {
		firstCalls++
		second.Unsubscribe()
	})
	_, second = Select(hub, func(s int) int { return s }, Identical[int], func(int) { secondCalls++ })

	require.NotPanics(t, func() { hub.Notify(1) })
	require.Equal(t, 1, firstCalls)
	require.Equal(t, 0, secondCalls, "unsubscribed mid-pass must not fire")
	require.Equal(t, 1, hub.Len())

	first.Unsubscribe()
	first.Unsubscribe()
	require.Equal(t, 0, hub.Len())

	hub.Notify(2)
	require.Equal(t, 1, firstCalls)
}

func TestUnsubscribe_SelfDuringNotify(t *testing.T) {
	hub := NewHub(0)

	calls := 0
	var sub *Subscription
	_, sub = Select(hub, func(s int) int { return s }, Identical[int], func(int) {
		calls++
		sub.Unsubscribe()
	})

	hub.Notify(1)
	hub.Notify(2)
	require.Equal(t, 1, calls)
}

func TestSubscribeDuringNotify_SeesNewState(t *testing.T) {
	hub := NewHub(0)

	var late int
	var lateSub *Subscription
	_, sub := Select(hub, func(s int) int { return s }, Identical[int], func(int) {
		if lateSub == nil {
			late, lateSub = Select(hub, func(s int) int { return s }, Identical[int], func(int) {})
		}
	})
	defer sub.Unsubscribe()

	hub.Notify(5)
	require.Equal(t, 5, late)
	require.Equal(t, 5, hub.State())
	lateSub.Unsubscribe()
}

func TestClear_StopsAll(t *testing.T) {
	hub := NewHub(0)
	calls := 0
	for i := 0; i < 3; i++ {
		Select(hub, func(s int) int { return s }, Identical[int], func(int) { calls++ })
	}

	hub.Clear()
	hub.Notify(1)

	require.Equal(t, 0, calls)
	require.Equal(t, 0, hub.Len())
}

func TestNilSubscription_Unsubscribe(t *testing.T) {
	var sub *Subscription
	require.NotPanics(t, sub.Unsubscribe)
}
