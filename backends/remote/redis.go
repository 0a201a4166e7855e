// Package remote provides cache backends that live outside the process,
// so entries survive restarts and can be shared between runs.
package remote

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge/types"
)

const defaultPrefix = "quizforge:"

// RedisBackend implements CacheBackend using Redis. Every key is stored
// under the configured namespace prefix so multiple logical caches can
// share one Redis database without interfering with each other.
type RedisBackend[V any] struct {
	client *redis.Client
	prefix string
}

// redisDocument is the serialized form of a cache entry. Timestamps are
// stored as Unix milliseconds. No cross-version compatibility is promised
// beyond being able to read what the same build wrote.
type redisDocument[V any] struct {
	Data      V      `json:"data"`
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
	ExpiresAt int64  `json:"expiresAt"`
}

// parseRedisURL parses a Redis URL and returns redis.Options
func parseRedisURL(connectionString string) (*redis.Options, error) {
	if strings.HasPrefix(connectionString, "redis://") || strings.HasPrefix(connectionString, "rediss://") {
		parsedURL, err := url.Parse(connectionString)
		if err != nil {
			return nil, fmt.Errorf("invalid Redis URL: %w", err)
		}

		opts := &redis.Options{
			Addr: parsedURL.Host,
		}

		if parsedURL.Scheme == "rediss" {
			opts.TLSConfig = &tls.Config{
				MinVersion: tls.VersionTLS12,
			}
		}

		if parsedURL.User != nil {
			opts.Username = parsedURL.User.Username()
			if password, ok := parsedURL.User.Password(); ok {
				opts.Password = password
			}
		}

		if parsedURL.Path != "" && parsedURL.Path != "/" {
			dbStr := strings.TrimPrefix(parsedURL.Path, "/")
			if db, err := strconv.Atoi(dbStr); err == nil {
				opts.DB = db
			}
		}

		return opts, nil
	}

	// Simple host:port address
	return &redis.Options{
		Addr: connectionString,
	}, nil
}

// NewRedisBackend creates a new Redis backend.
func NewRedisBackend[V any](config types.BackendConfig) (*RedisBackend[V], error) {
	opts, err := parseRedisURL(config.ConnectionString)
	if err != nil {
		return nil, err
	}

	if config.Username != "" {
		opts.Username = config.Username
	}
	if config.Password != "" {
		opts.Password = config.Password
	}
	if config.Database != 0 {
		opts.DB = config.Database
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	prefix := config.Namespace
	if prefix == "" {
		prefix = defaultPrefix
	}

	return &RedisBackend[V]{
		client: client,
		prefix: prefix,
	}, nil
}

func (b *RedisBackend[V]) keyString(key string) string {
	return b.prefix + key
}

// Set stores an entry as a JSON document.
func (b *RedisBackend[V]) Set(ctx context.Context, key string, entry types.Entry[V]) error {
	doc := redisDocument[V]{
		Data:      entry.Data,
		Key:       key,
		Timestamp: entry.Timestamp.UnixMilli(),
		ExpiresAt: entry.ExpiresAt.UnixMilli(),
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if err := b.client.Set(ctx, b.keyString(key), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to set entry in Redis: %w", err)
	}
	return nil
}

// Get retrieves an entry. Documents that fail to deserialize are treated
// as corrupt: they are deleted outright and reported as a miss.
func (b *RedisBackend[V]) Get(ctx context.Context, key string) (types.Entry[V], bool, error) {
	redisKey := b.keyString(key)

	result, err := b.client.Get(ctx, redisKey).Result()
	if err == redis.Nil {
		return types.Entry[V]{}, false, nil
	}
	if err != nil {
		return types.Entry[V]{}, false, fmt.Errorf("failed to get entry from Redis: %w", err)
	}

	var doc redisDocument[V]
	if err := json.Unmarshal([]byte(result), &doc); err != nil {
		b.client.Del(ctx, redisKey)
		return types.Entry[V]{}, false, nil
	}

	entry := types.Entry[V]{
		Data:      doc.Data,
		Key:       key,
		Timestamp: time.UnixMilli(doc.Timestamp),
		ExpiresAt: time.UnixMilli(doc.ExpiresAt),
	}
	return entry, true, nil
}

// Delete removes an entry.
func (b *RedisBackend[V]) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.keyString(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete entry from Redis: %w", err)
	}
	return nil
}

// Contains checks if a key exists.
func (b *RedisBackend[V]) Contains(ctx context.Context, key string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.keyString(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence in Redis: %w", err)
	}
	return exists > 0, nil
}

// scanKeys collects all Redis keys under this backend's prefix.
func (b *RedisBackend[V]) scanKeys(ctx context.Context) ([]string, error) {
	pattern := b.prefix + "*"
	var keys []string
	var cursor uint64

	for {
		result, nextCursor, err := b.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys from Redis: %w", err)
		}

		keys = append(keys, result...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

// Flush clears all entries under this backend's prefix only.
func (b *RedisBackend[V]) Flush(ctx context.Context) error {
	keys, err := b.scanKeys(ctx)
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := b.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to flush Redis: %w", err)
		}
	}
	return nil
}

// Len returns the number of entries under this backend's prefix.
func (b *RedisBackend[V]) Len(ctx context.Context) (int, error) {
	keys, err := b.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// Keys returns all keys under this backend's prefix, without the prefix.
func (b *RedisBackend[V]) Keys(ctx context.Context) ([]string, error) {
	redisKeys, err := b.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(redisKeys))
	for _, redisKey := range redisKeys {
		if len(redisKey) > len(b.prefix) {
			keys = append(keys, redisKey[len(b.prefix):])
		}
	}
	return keys, nil
}

// OldestKey returns the key with the earliest stored timestamp. Corrupt
// documents are skipped; eviction will reach them via Get or the sweep.
func (b *RedisBackend[V]) OldestKey(ctx context.Context) (string, bool, error) {
	keys, err := b.Keys(ctx)
	if err != nil {
		return "", false, err
	}

	var oldest string
	var oldestTS time.Time
	found := false

	for _, key := range keys {
		entry, ok, err := b.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		if !found || entry.Timestamp.Before(oldestTS) {
			oldest = key
			oldestTS = entry.Timestamp
			found = true
		}
	}
	return oldest, found, nil
}

// Close closes the Redis connection.
func (b *RedisBackend[V]) Close() error {
	return b.client.Close()
}
