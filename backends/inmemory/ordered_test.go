package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/quizforge/quizforge/types"
)

func newEntry(key, value string) types.Entry[string] {
	now := time.Now()
	return types.Entry[string]{
		Data:      value,
		Key:       key,
		Timestamp: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestOrderedBackend_BasicOperations(t *testing.T) {
	ctx := context.Background()
	backend, err := NewOrderedBackend[string](types.BackendConfig{Capacity: 10})
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	defer func() { _ = backend.Close() }()

	if n, _ := backend.Len(ctx); n != 0 {
		t.Errorf("expected empty backend, got length %d", n)
	}

	if err := backend.Set(ctx, "key1", newEntry("key1", "value1")); err != nil {
		t.Fatalf("failed to set entry: %v", err)
	}

	entry, found, err := backend.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("failed to get entry: %v", err)
	}
	if !found {
		t.Fatal("expected to find key1")
	}
	if entry.Data != "value1" {
		t.Errorf("expected value1, got %s", entry.Data)
	}

	exists, err := backend.Contains(ctx, "key1")
	if err != nil {
		t.Fatalf("failed to check contains: %v", err)
	}
	if !exists {
		t.Error("expected key1 to exist")
	}

	if err := backend.Delete(ctx, "key1"); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, found, _ := backend.Get(ctx, "key1"); found {
		t.Error("expected key1 to be gone after delete")
	}
}

func TestOrderedBackend_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	backend, _ := NewOrderedBackend[string](types.BackendConfig{Capacity: 10})
	defer func() { _ = backend.Close() }()

	for _, key := range []string{"first", "second", "third"} {
		if err := backend.Set(ctx, key, newEntry(key, key)); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	oldest, found, err := backend.OldestKey(ctx)
	if err != nil {
		t.Fatalf("OldestKey: %v", err)
	}
	if !found || oldest != "first" {
		t.Errorf("oldest = %q (found=%v), want \"first\"", oldest, found)
	}

	// Updating an existing key must not change its insertion slot.
	if err := backend.Set(ctx, "first", newEntry("first", "updated")); err != nil {
		t.Fatalf("update first: %v", err)
	}
	oldest, _, _ = backend.OldestKey(ctx)
	if oldest != "first" {
		t.Errorf("oldest after update = %q, want \"first\"", oldest)
	}

	// Deleting the oldest promotes the next-inserted key.
	if err := backend.Delete(ctx, "first"); err != nil {
		t.Fatalf("delete first: %v", err)
	}
	oldest, _, _ = backend.OldestKey(ctx)
	if oldest != "second" {
		t.Errorf("oldest after delete = %q, want \"second\"", oldest)
	}

	keys, err := backend.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "second" || keys[1] != "third" {
		t.Errorf("keys = %v, want [second third]", keys)
	}
}

func TestOrderedBackend_Flush(t *testing.T) {
	ctx := context.Background()
	backend, _ := NewOrderedBackend[string](types.BackendConfig{Capacity: 10})
	defer func() { _ = backend.Close() }()

	_ = backend.Set(ctx, "a", newEntry("a", "1"))
	_ = backend.Set(ctx, "b", newEntry("b", "2"))

	if err := backend.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if n, _ := backend.Len(ctx); n != 0 {
		t.Errorf("expected empty backend after flush, got %d", n)
	}
	if _, found, _ := backend.OldestKey(ctx); found {
		t.Error("expected no oldest key after flush")
	}
}

func TestLRUBackend_OldestKeyByInsertionTime(t *testing.T) {
	ctx := context.Background()
	backend, err := NewLRUBackend[string](types.BackendConfig{Capacity: 10})
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	defer func() { _ = backend.Close() }()

	base := time.Now()
	for i, key := range []string{"first", "second", "third"} {
		entry := types.Entry[string]{
			Data:      key,
			Key:       key,
			Timestamp: base.Add(time.Duration(i) * time.Second),
			ExpiresAt: base.Add(time.Hour),
		}
		if err := backend.Set(ctx, key, entry); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}

	// Touch "first" so recency differs from insertion age.
	if _, _, err := backend.Get(ctx, "first"); err != nil {
		t.Fatalf("get: %v", err)
	}

	oldest, found, err := backend.OldestKey(ctx)
	if err != nil {
		t.Fatalf("OldestKey: %v", err)
	}
	if !found || oldest != "first" {
		t.Errorf("oldest = %q (found=%v), want \"first\" by insertion timestamp", oldest, found)
	}
}
