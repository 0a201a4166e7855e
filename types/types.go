package types

import (
	"context"
	"time"
)

// Entry holds a cached payload together with its TTL bookkeeping.
// An entry is logically absent once the current time passes ExpiresAt,
// whether or not it has been physically purged.
type Entry[V any] struct {
	Data      V         `json:"data"`
	Key       string    `json:"key"`
	Timestamp time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the entry is past its expiry at the given time.
func (e Entry[V]) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// CacheBackend defines the interface for cache storage backends.
// This allows for pluggable storage systems including in-memory and Redis.
type CacheBackend[V any] interface {
	// Set stores an entry under key.
	Set(ctx context.Context, key string, entry Entry[V]) error

	// Get retrieves an entry by key.
	Get(ctx context.Context, key string) (Entry[V], bool, error)

	// Delete removes an entry by key.
	Delete(ctx context.Context, key string) error

	// Contains checks if a key exists without retrieving the value.
	Contains(ctx context.Context, key string) (bool, error)

	// Flush clears all entries belonging to this backend's namespace.
	Flush(ctx context.Context) error

	// Len returns the number of entries in this backend's namespace.
	Len(ctx context.Context) (int, error)

	// Keys returns all keys in this backend's namespace.
	Keys(ctx context.Context) ([]string, error)

	// OldestKey returns the key of the oldest-inserted entry, if any.
	// Capacity eviction is insertion-order, not recency, so the backend
	// tracks insertion age rather than access age.
	OldestKey(ctx context.Context) (string, bool, error)

	// Close closes the backend and releases resources.
	Close() error
}

// BackendConfig provides configuration options for backends.
type BackendConfig struct {
	// For in-memory backends
	Capacity int

	// Namespace prefixes every stored key so that multiple logical caches
	// can share one physical store without seeing each other's entries.
	Namespace string

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
}

// BackendType represents the type of cache backend.
type BackendType string

const (
	BackendMemory BackendType = "memory"
	BackendLRU    BackendType = "lru"
	BackendRedis  BackendType = "redis"
)
