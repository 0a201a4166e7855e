// Package backends wires backend implementations to their type constants.
package backends

import (
	"errors"

	"github.com/quizforge/quizforge/backends/inmemory"
	"github.com/quizforge/quizforge/backends/remote"
	"github.com/quizforge/quizforge/types"
)

var ErrUnsupportedBackend = errors.New("unsupported backend type")

// New creates a cache backend of the specified type.
func New[V any](backendType types.BackendType, config types.BackendConfig) (types.CacheBackend[V], error) {
	switch backendType {
	case types.BackendMemory:
		return inmemory.NewOrderedBackend[V](config)
	case types.BackendLRU:
		return inmemory.NewLRUBackend[V](config)
	case types.BackendRedis:
		return remote.NewRedisBackend[V](config)
	default:
		return nil, ErrUnsupportedBackend
	}
}
