// Package cache is the client-side read cache: keyed server responses with
// a staleness window, collapsed in-flight loads and prefix invalidation.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

type Cache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	group     singleflight.Group
	staleTime time.Duration
	nowFunc   func() time.Time
}

func New(staleTime time.Duration) *Cache {
	if staleTime <= 0 {
		staleTime = 30 * time.Second
	}
	return &Cache{
		entries:   make(map[string]entry),
		staleTime: staleTime,
		nowFunc:   time.Now,
	}
}

// Fetch returns the cached value while it is inside the stale window,
// otherwise runs loader. Concurrent fetches for the same key collapse into
// one loader call; a failed read load is retried exactly once. Mutations
// never go through here.
func (c *Cache) Fetch(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if v, ok := c.fresh(key); ok {
		return v, nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		// a collapsed caller may arrive after the flight that filled the key
		if v, ok := c.fresh(key); ok {
			return v, nil
		}
		v, err := loader(ctx)
		if err != nil {
			v, err = loader(ctx)
		}
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[key] = entry{value: v, fetchedAt: c.nowFunc()}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Cache) fresh(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.nowFunc().Sub(e.fetchedAt) >= c.staleTime {
		return nil, false
	}
	return e.value, true
}

// Invalidate drops every entry under the given key prefixes. Dropping twice
// is the same as dropping once.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, p := range prefixes {
			if key == p || strings.HasPrefix(key, p+"?") || strings.HasPrefix(key, p+"/") {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Get is the typed front of Fetch.
func Get[T any](ctx context.Context, c *Cache, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache: key %q holds %T", key, v)
	}
	return t, nil
}
