package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadThroughCache_ComputesOnceThenHits(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("rt", DefaultExpiration, DefaultCleanupInterval)

	calls := 0
	rt := NewReadThroughCache[string, string, int](cache, func(ctx context.Context, n int) (string, error) {
		calls++
		return "value", nil
	}, false)

	for i := 0; i < 3; i++ {
		v, err := rt.Get(ctx, "key", i, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "value", v)
	}
	require.Equal(t, 1, calls)
}

func TestReadThroughCache_SkipCache(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("rt", DefaultExpiration, DefaultCleanupInterval)

	rt := NewReadThroughCache[string, int, int](cache, func(ctx context.Context, n int) (int, error) {
		return n * 2, nil
	}, true)

	v, err := rt.Get(ctx, "key", 4, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 8, v)
	require.Equal(t, 0, cache.Len())
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("rt", DefaultExpiration, DefaultCleanupInterval)
	boom := errors.New("boom")

	rt := NewReadThroughCache[string, int, int](cache, func(ctx context.Context, n int) (int, error) {
		return 0, boom
	}, false)

	_, err := rt.Get(ctx, "key", 1, time.Minute)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, cache.Len())
}
