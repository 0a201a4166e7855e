package cache

import (
	"errors"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/quizforge/quizforge/backends"
	"github.com/quizforge/quizforge/types"
)

const (
	// DefaultTTL is the expiry applied when Set is called without an
	// override.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxEntries bounds the number of live entries before
	// insertion-order eviction kicks in.
	DefaultMaxEntries = 100

	// DefaultSweepInterval is how often the background sweep scans for
	// expired entries.
	DefaultSweepInterval = 5 * time.Minute
)

// Option represents a configuration option for a Cache.
type Option[V any] func(*config[V]) error

type config[V any] struct {
	backend       types.CacheBackend[V]
	ttl           time.Duration
	maxEntries    int
	sweepInterval time.Duration
	logger        *charmlog.Logger
}

func newConfig[V any]() *config[V] {
	return &config[V]{
		ttl:           DefaultTTL,
		maxEntries:    DefaultMaxEntries,
		sweepInterval: DefaultSweepInterval,
		logger:        charmlog.Default().With("component", "cache"),
	}
}

func (c *config[V]) apply(opts ...Option[V]) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *config[V]) validate() error {
	if c.backend == nil {
		// Memory is the default backend when none was configured.
		backend, err := backends.New[V](types.BackendMemory, types.BackendConfig{
			Capacity: c.maxEntries,
		})
		if err != nil {
			return err
		}
		c.backend = backend
	}
	if c.ttl <= 0 {
		return errors.New("ttl must be positive")
	}
	if c.maxEntries <= 0 {
		return errors.New("max entries must be positive")
	}
	if c.sweepInterval <= 0 {
		return errors.New("sweep interval must be positive")
	}
	return nil
}

// WithMemoryBackend sets up the insertion-ordered in-memory backend.
func WithMemoryBackend[V any]() Option[V] {
	return func(cfg *config[V]) error {
		backend, err := backends.New[V](types.BackendMemory, types.BackendConfig{
			Capacity: cfg.maxEntries,
		})
		if err != nil {
			return err
		}
		cfg.backend = backend
		return nil
	}
}

// WithLRUBackend sets up the LRU in-memory backend variant.
func WithLRUBackend[V any](capacity int) Option[V] {
	return func(cfg *config[V]) error {
		backend, err := backends.New[V](types.BackendLRU, types.BackendConfig{
			Capacity: capacity,
		})
		if err != nil {
			return err
		}
		cfg.backend = backend
		return nil
	}
}

// WithRedisBackend sets up a Redis backend. The namespace scopes this
// cache's keys so instances sharing one Redis database stay isolated.
func WithRedisBackend[V any](addr string, db int, namespace string) Option[V] {
	return func(cfg *config[V]) error {
		backend, err := backends.New[V](types.BackendRedis, types.BackendConfig{
			ConnectionString: addr,
			Database:         db,
			Namespace:        namespace,
		})
		if err != nil {
			return err
		}
		cfg.backend = backend
		return nil
	}
}

// WithBackend allows using a pre-configured backend.
func WithBackend[V any](backend types.CacheBackend[V]) Option[V] {
	return func(cfg *config[V]) error {
		if backend == nil {
			return errors.New("backend cannot be nil")
		}
		cfg.backend = backend
		return nil
	}
}

// WithTTL sets the default time-to-live for entries.
func WithTTL[V any](ttl time.Duration) Option[V] {
	return func(cfg *config[V]) error {
		cfg.ttl = ttl
		return nil
	}
}

// WithMaxEntries sets the capacity before insertion-order eviction.
func WithMaxEntries[V any](n int) Option[V] {
	return func(cfg *config[V]) error {
		cfg.maxEntries = n
		return nil
	}
}

// WithSweepInterval sets how often expired entries are swept.
func WithSweepInterval[V any](interval time.Duration) Option[V] {
	return func(cfg *config[V]) error {
		cfg.sweepInterval = interval
		return nil
	}
}

// WithLogger sets the logger used for storage degradation and sweep events.
func WithLogger[V any](logger *charmlog.Logger) Option[V] {
	return func(cfg *config[V]) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}
