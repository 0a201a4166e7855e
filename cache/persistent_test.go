package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_PersistentBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	newRedisCache := func(t *testing.T, namespace string) *Cache[string] {
		t.Helper()
		c, err := New[string](WithRedisBackend[string](mr.Addr(), 0, namespace))
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	t.Run("round trip", func(t *testing.T) {
		c := newRedisCache(t, "rt:")
		c.Set(ctx, "k", "v")

		got, ok := c.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("expired entry is lazily evicted", func(t *testing.T) {
		c := newRedisCache(t, "exp:")
		c.Set(ctx, "k", "v", time.Millisecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.GetStats(ctx).Size)
	})

	t.Run("clear only touches own namespace", func(t *testing.T) {
		a := newRedisCache(t, "a:")
		b := newRedisCache(t, "b:")

		a.Set(ctx, "k", "from-a")
		b.Set(ctx, "k", "from-b")

		a.Clear(ctx)

		assert.Equal(t, 0, a.GetStats(ctx).Size)
		got, ok := b.Get(ctx, "k")
		require.True(t, ok)
		assert.Equal(t, "from-b", got)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		c := newRedisCache(t, "cor:")
		require.NoError(t, mr.Set("cor:bad", "{not json"))

		_, ok := c.Get(ctx, "bad")
		assert.False(t, ok)
		assert.False(t, mr.Exists("cor:bad"))
	})

	t.Run("insertion-order eviction", func(t *testing.T) {
		c, err := New[string](
			WithRedisBackend[string](mr.Addr(), 0, "evict:"),
			WithMaxEntries[string](2),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })

		c.Set(ctx, "a", "1")
		time.Sleep(2 * time.Millisecond) // distinct insertion timestamps
		c.Set(ctx, "b", "2")
		time.Sleep(2 * time.Millisecond)
		c.Set(ctx, "c", "3")

		assert.Equal(t, 2, c.GetStats(ctx).Size)
		_, ok := c.Get(ctx, "a")
		assert.False(t, ok, "first-inserted key must be evicted")
		_, ok = c.Get(ctx, "c")
		assert.True(t, ok)
	})
}
