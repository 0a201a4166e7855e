package inmemory

import (
	"context"
	"sync"

	"github.com/quizforge/quizforge/types"
)

// OrderedBackend implements CacheBackend with insertion-order bookkeeping.
// It keeps a queue of keys in insertion order so capacity eviction can
// remove the oldest-inserted entry regardless of access recency.
type OrderedBackend[V any] struct {
	mu      sync.RWMutex
	entries map[string]types.Entry[V]
	queue   []string
}

// NewOrderedBackend creates a new insertion-ordered in-memory backend.
func NewOrderedBackend[V any](config types.BackendConfig) (*OrderedBackend[V], error) {
	return &OrderedBackend[V]{
		entries: make(map[string]types.Entry[V]),
		queue:   make([]string, 0, config.Capacity),
	}, nil
}

// Set stores an entry. Updating an existing key keeps its insertion slot.
func (b *OrderedBackend[V]) Set(ctx context.Context, key string, entry types.Entry[V]) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[key]; exists {
		b.entries[key] = entry
		return nil
	}

	b.entries[key] = entry
	b.queue = append(b.queue, key)
	return nil
}

// Get retrieves an entry by key.
func (b *OrderedBackend[V]) Get(ctx context.Context, key string) (types.Entry[V], bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if entry, ok := b.entries[key]; ok {
		return entry, true, nil
	}
	return types.Entry[V]{}, false, nil
}

// Delete removes an entry by key.
func (b *OrderedBackend[V]) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[key]; !exists {
		return nil
	}

	delete(b.entries, key)
	for i, qKey := range b.queue {
		if qKey == key {
			b.queue = append(b.queue[:i], b.queue[i+1:]...)
			break
		}
	}
	return nil
}

// Contains checks if a key exists.
func (b *OrderedBackend[V]) Contains(ctx context.Context, key string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, exists := b.entries[key]
	return exists, nil
}

// Flush clears all entries.
func (b *OrderedBackend[V]) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = make(map[string]types.Entry[V])
	b.queue = b.queue[:0]
	return nil
}

// Len returns the number of entries.
func (b *OrderedBackend[V]) Len(ctx context.Context) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.entries), nil
}

// Keys returns all keys.
func (b *OrderedBackend[V]) Keys(ctx context.Context) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keys := make([]string, len(b.queue))
	copy(keys, b.queue)
	return keys, nil
}

// OldestKey returns the key of the oldest-inserted live entry.
func (b *OrderedBackend[V]) OldestKey(ctx context.Context) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.queue) == 0 {
		return "", false, nil
	}
	return b.queue[0], true, nil
}

// Close closes the backend (no-op for in-memory).
func (b *OrderedBackend[V]) Close() error {
	return nil
}
