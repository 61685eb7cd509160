package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetReturnsStoredValueWithinTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 16)
	store.Set(context.Background(), "GET /v1/leagues/123/teams?season=2024", "payload")

	v, ok := store.Get(context.Background(), "GET /v1/leagues/123/teams?season=2024")
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if got, _ := v.(string); got != "payload" {
		t.Fatalf("unexpected cached value: %v", v)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(30*time.Second, 16)
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")

	now = now.Add(31 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected miss after TTL expiry")
	}
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 16)
	store.Set(context.Background(), "a", 1)
	store.Set(context.Background(), "b", 2)

	store.Clear(context.Background())

	if store.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d entries", store.Len())
	}
	if _, ok := store.Get(context.Background(), "a"); ok {
		t.Fatalf("expected miss after clear")
	}
}

func TestStore_CapacityEvictsExpiredThenOldest(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 2)
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "old", "a")
	now = now.Add(time.Second)
	store.Set(context.Background(), "new", "b")
	now = now.Add(time.Second)

	// No entries expired yet, so the oldest insertion goes.
	store.Set(context.Background(), "third", "c")

	if _, ok := store.Get(context.Background(), "old"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok := store.Get(context.Background(), "new"); !ok {
		t.Fatalf("expected newer entry to survive eviction")
	}
	if _, ok := store.Get(context.Background(), "third"); !ok {
		t.Fatalf("expected inserted entry to be present")
	}

	// Let both remaining entries expire; the next insert sweeps them.
	now = now.Add(2 * time.Minute)
	store.Set(context.Background(), "fresh", "d")
	if store.Len() != 1 {
		t.Fatalf("expected expired entries swept on insert, got %d", store.Len())
	}
}

func TestStore_GetOrLoadCollapsesConcurrentLoaders(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 64)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				t.Errorf("GetOrLoad failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "value" {
				t.Errorf("unexpected loaded value: %v", v)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoadServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, 64)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}
