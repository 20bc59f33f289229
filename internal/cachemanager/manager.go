// Package cachemanager provides typed TTL caches for expensive renders.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a typed key/value cache with per-item TTL.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	Len() int
}
