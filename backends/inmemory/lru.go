package inmemory

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/quizforge/quizforge/types"
)

// LRUBackend implements CacheBackend with recency-based eviction.
// It is an alternative to OrderedBackend for callers that prefer hot
// entries to survive capacity pressure; OldestKey still answers by
// insertion time so the cache's eviction contract holds either way.
type LRUBackend[V any] struct {
	mu    sync.RWMutex
	cache *lru.Cache[string, types.Entry[V]]
}

// NewLRUBackend creates a new LRU backend.
func NewLRUBackend[V any](config types.BackendConfig) (*LRUBackend[V], error) {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = 100
	}
	lruCache, err := lru.New[string, types.Entry[V]](capacity)
	if err != nil {
		return nil, err
	}
	return &LRUBackend[V]{cache: lruCache}, nil
}

// Set stores an entry in the LRU cache.
func (b *LRUBackend[V]) Set(ctx context.Context, key string, entry types.Entry[V]) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Add(key, entry)
	return nil
}

// Get retrieves an entry from the LRU cache.
func (b *LRUBackend[V]) Get(ctx context.Context, key string) (types.Entry[V], bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if entry, ok := b.cache.Get(key); ok {
		return entry, true, nil
	}
	return types.Entry[V]{}, false, nil
}

// Delete removes an entry from the LRU cache.
func (b *LRUBackend[V]) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Remove(key)
	return nil
}

// Contains checks for key presence without affecting recency.
func (b *LRUBackend[V]) Contains(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Contains(key), nil
}

// Flush clears all entries from the LRU cache.
func (b *LRUBackend[V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cache.Purge()
	return nil
}

// Len returns the number of entries in the LRU cache.
func (b *LRUBackend[V]) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Len(), nil
}

// Keys returns all keys in the LRU cache.
func (b *LRUBackend[V]) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.cache.Keys(), nil
}

// OldestKey returns the key with the earliest insertion timestamp.
func (b *LRUBackend[V]) OldestKey(ctx context.Context) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var oldest string
	found := false
	for _, key := range b.cache.Keys() {
		entry, ok := b.cache.Peek(key)
		if !ok {
			continue
		}
		if !found {
			oldest = key
			found = true
			continue
		}
		if prev, ok := b.cache.Peek(oldest); ok && entry.Timestamp.Before(prev.Timestamp) {
			oldest = key
		}
	}
	return oldest, found, nil
}

// Close closes the LRU backend (no-op for in-memory).
func (b *LRUBackend[V]) Close() error {
	return nil
}
