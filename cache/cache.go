// Package cache provides a generic key-value store with per-entry
// expiration, bounded size, pluggable backing stores, and a periodic
// sweep of expired entries.
package cache

import (
	"context"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/quizforge/quizforge/types"
)

// Cache is a TTL cache over a pluggable backend. Entries past their expiry
// are logically absent even before they are physically purged; purging
// happens lazily on Get and periodically via the background sweep.
//
// Cache instances are meant to be constructed explicitly and passed to the
// components that need them, one instance per data category.
type Cache[V any] struct {
	backend    types.CacheBackend[V]
	ttl        time.Duration
	maxEntries int
	log        *charmlog.Logger

	// fallback holds entries that failed to reach a persistent backend.
	// Once a key degrades to memory it stays there for the lifetime of
	// this instance; it is never retried against the backend.
	mu       sync.Mutex
	fallback map[string]types.Entry[V]

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Stats reports the current number of live entries tracked.
type Stats struct {
	Size int
}

// New creates a Cache and starts its background sweep. Call Close to stop
// the sweep and release backend resources.
func New[V any](opts ...Option[V]) (*Cache[V], error) {
	cfg := newConfig[V]()
	if err := cfg.apply(opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Cache[V]{
		backend:    cfg.backend,
		ttl:        cfg.ttl,
		maxEntries: cfg.maxEntries,
		log:        cfg.logger,
		fallback:   make(map[string]types.Entry[V]),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	go c.janitor(cfg.sweepInterval)
	return c, nil
}

// Set stores data under key with expiry now + (ttlOverride or the
// configured TTL). If the store is at capacity and key is new, the
// oldest-inserted entry is evicted first. Write failures never reach the
// caller: the entry degrades to in-memory storage instead.
func (c *Cache[V]) Set(ctx context.Context, key string, data V, ttlOverride ...time.Duration) {
	now := time.Now()
	ttl := c.ttl
	if len(ttlOverride) > 0 && ttlOverride[0] > 0 {
		ttl = ttlOverride[0]
	}
	entry := types.Entry[V]{
		Data:      data,
		Key:       key,
		Timestamp: now,
		ExpiresAt: now.Add(ttl),
	}

	c.mu.Lock()
	if _, degraded := c.fallback[key]; degraded {
		c.fallback[key] = entry
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.evictIfFull(ctx, key)

	if err := c.backend.Set(ctx, key, entry); err != nil {
		c.log.Warn("cache write failed, degrading entry to memory", "key", key, "err", err)
		c.mu.Lock()
		c.fallback[key] = entry
		c.mu.Unlock()
	}
}

// evictIfFull removes the oldest-inserted entry when inserting key would
// exceed maxEntries. Eviction is insertion-order, not LRU.
func (c *Cache[V]) evictIfFull(ctx context.Context, key string) {
	exists, err := c.backend.Contains(ctx, key)
	if err != nil || exists {
		return
	}

	size, err := c.backend.Len(ctx)
	if err != nil {
		return
	}
	c.mu.Lock()
	size += len(c.fallback)
	c.mu.Unlock()
	if size < c.maxEntries {
		return
	}

	oldest, ok, err := c.backend.OldestKey(ctx)
	if err != nil || !ok {
		return
	}
	if err := c.backend.Delete(ctx, oldest); err != nil {
		c.log.Warn("cache eviction failed", "key", oldest, "err", err)
	}
}

// Get returns the payload for key if present and unexpired. Expired
// entries are deleted as a side effect of the read. Backend read failures
// are treated as misses.
func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	if entry, ok := c.fallback[key]; ok {
		if entry.Expired(now) {
			delete(c.fallback, key)
			c.mu.Unlock()
			return zero, false
		}
		c.mu.Unlock()
		return entry.Data, true
	}
	c.mu.Unlock()

	entry, found, err := c.backend.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed", "key", key, "err", err)
		return zero, false
	}
	if !found {
		return zero, false
	}
	if entry.Expired(now) {
		if err := c.backend.Delete(ctx, key); err != nil {
			c.log.Warn("lazy eviction failed", "key", key, "err", err)
		}
		return zero, false
	}
	return entry.Data, true
}

// Delete removes the entry for key if present.
func (c *Cache[V]) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.fallback, key)
	c.mu.Unlock()

	if err := c.backend.Delete(ctx, key); err != nil {
		c.log.Warn("cache delete failed", "key", key, "err", err)
	}
}

// Clear removes all entries belonging to this cache instance only. Other
// instances sharing the same physical store are unaffected because the
// backend scopes every operation to its namespace.
func (c *Cache[V]) Clear(ctx context.Context) {
	c.mu.Lock()
	c.fallback = make(map[string]types.Entry[V])
	c.mu.Unlock()

	if err := c.backend.Flush(ctx); err != nil {
		c.log.Warn("cache clear failed", "err", err)
	}
}

// GetOrSet returns the cached value for key if present and unexpired;
// otherwise it invokes producer, stores the result, and returns it.
// Producer errors propagate unchanged and nothing is stored. Concurrent
// callers may both run the producer for the same key; there is no
// single-flight guarantee.
func (c *Cache[V]) GetOrSet(ctx context.Context, key string, producer func(context.Context) (V, error), ttlOverride ...time.Duration) (V, error) {
	if data, ok := c.Get(ctx, key); ok {
		return data, nil
	}

	data, err := producer(ctx)
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(ctx, key, data, ttlOverride...)
	return data, nil
}

// GetStats returns the current number of live entries tracked.
func (c *Cache[V]) GetStats(ctx context.Context) Stats {
	size, err := c.backend.Len(ctx)
	if err != nil {
		c.log.Warn("cache stats failed", "err", err)
		size = 0
	}
	c.mu.Lock()
	size += len(c.fallback)
	c.mu.Unlock()
	return Stats{Size: size}
}

// janitor runs the periodic sweep until Close is called.
func (c *Cache[V]) janitor(interval time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep(context.Background())
		case <-c.stop:
			return
		}
	}
}

// sweep deletes all entries whose expiry has passed. It may race with a
// concurrent Set, which is safe: only entries already past expiry are
// removed, so no live entry is ever incorrectly deleted.
func (c *Cache[V]) sweep(ctx context.Context) {
	now := time.Now()
	removed := 0

	c.mu.Lock()
	for key, entry := range c.fallback {
		if entry.Expired(now) {
			delete(c.fallback, key)
			removed++
		}
	}
	c.mu.Unlock()

	keys, err := c.backend.Keys(ctx)
	if err != nil {
		c.log.Warn("cache sweep failed to list keys", "err", err)
		return
	}

	for _, key := range keys {
		entry, found, err := c.backend.Get(ctx, key)
		if err != nil {
			continue
		}
		// A missing entry here was either already purged or was corrupt
		// and deleted by the backend during the read.
		if !found {
			continue
		}
		if entry.Expired(now) {
			if err := c.backend.Delete(ctx, key); err == nil {
				removed++
			}
		}
	}

	if removed > 0 {
		c.log.Debug("cache sweep removed expired entries", "count", removed)
	}
}

// Close stops the background sweep and closes the backend. Safe to call
// more than once.
func (c *Cache[V]) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.stop)
		<-c.done
		err = c.backend.Close()
	})
	return err
}
