package cache

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_GetSetInvalidate(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	// Get on empty store
	val, ok := store.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if val != nil {
		t.Error("Get on empty store should return nil value")
	}

	key := "page:id=abc"
	value := []byte(`{"object":"page"}`)
	if err := store.Set(ctx, key, value, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	// Invalidate reports whether the entry existed
	if removed := store.Invalidate(ctx, key); !removed {
		t.Error("Invalidate of existing key should report true")
	}
	if removed := store.Invalidate(ctx, key); removed {
		t.Error("Invalidate of missing key should report false")
	}

	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after Invalidate should return ok=false")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	key := "search:query=meeting"
	value := []byte(`{"results":[]}`)

	if err := store.Set(ctx, key, value, 50*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Present just before expiry
	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get before expiry should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	time.Sleep(100 * time.Millisecond)

	// Gone after expiry, and removed from the table
	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after expiry should return ok=false")
	}
	stats := store.Stats()
	if stats.Size != 0 {
		t.Errorf("expired entry should be removed, size = %d", stats.Size)
	}
	if stats.Evictions != 1 {
		t.Errorf("expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestMemoryStore_SetOverwrite(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	key := "page:id=abc"
	if err := store.Set(ctx, key, []byte("v1"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, key, []byte("v2"), 5*time.Minute); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Fatal("Get after overwrite should return ok=true")
	}
	if string(got) != "v2" {
		t.Errorf("Get returned %q, want %q", got, "v2")
	}
}

func TestMemoryStore_ZeroTTL(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	if err := store.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set with TTL=0 failed: %v", err)
	}
	if _, ok := store.Get(ctx, "key"); ok {
		t.Error("Set with TTL=0 should not store anything")
	}
}

func TestMemoryStore_InvalidatePattern(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	keys := []string{
		"database_query:database_id=A",
		"database_query:database_id=B",
		"page:id=A",
	}
	for _, k := range keys {
		if err := store.Set(ctx, k, []byte("x"), 5*time.Minute); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	removed := store.InvalidatePattern(ctx, regexp.MustCompile(`database_query.*A`))
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}

	if _, ok := store.Get(ctx, "database_query:database_id=A"); ok {
		t.Error("matched key should be gone")
	}
	if _, ok := store.Get(ctx, "database_query:database_id=B"); !ok {
		t.Error("non-matching query key should remain")
	}
	if _, ok := store.Get(ctx, "page:id=A"); !ok {
		t.Error("non-matching page key should remain")
	}
}

func TestMemoryStore_InvalidatePatternNoMatch(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	if err := store.Set(ctx, "page:id=abc", []byte("x"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Zero matches is a no-op, never an error
	if removed := store.InvalidatePattern(ctx, regexp.MustCompile(`comment.*`)); removed != 0 {
		t.Errorf("expected 0 removals, got %d", removed)
	}
	if removed := store.InvalidatePattern(ctx, nil); removed != 0 {
		t.Errorf("nil pattern should remove nothing, got %d", removed)
	}
	if _, ok := store.Get(ctx, "page:id=abc"); !ok {
		t.Error("unrelated entry should survive a no-match invalidation")
	}
}

func TestMemoryStore_PatternSeesNamespace(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	if err := store.Set(ctx, "page:id=abc", []byte("x"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Patterns match over the full key, namespace prefix included.
	if removed := store.InvalidatePattern(ctx, regexp.MustCompile(`^ws:page:`)); removed != 1 {
		t.Errorf("anchored namespace pattern should match, removed = %d", removed)
	}
}

func TestMemoryStore_InvalidatePrefix(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	for _, k := range []string{"search:query=a", "search:query=b", "page:id=a"} {
		if err := store.Set(ctx, k, []byte("x"), 5*time.Minute); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	if removed := store.InvalidatePrefix(ctx, "search:"); removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	if _, ok := store.Get(ctx, "page:id=a"); !ok {
		t.Error("entry outside the prefix should remain")
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key := fmt.Sprintf("page:id=%d", i)
		if err := store.Set(ctx, key, []byte("x"), 5*time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	store.Get(ctx, "page:id=0")
	store.Get(ctx, "page:id=missing")

	if removed := store.Clear(ctx); removed != 3 {
		t.Fatalf("Clear removed %d, want 3", removed)
	}

	stats := store.Stats()
	if stats.Size != 0 || stats.Hits != 0 || stats.Misses != 0 || stats.Sets != 0 {
		t.Errorf("Clear should reset counters, got %+v", stats)
	}
}

func TestMemoryStore_StatsAccuracy(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	const hits, misses = 7, 4

	if err := store.Set(ctx, "key", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	for i := 0; i < hits; i++ {
		if _, ok := store.Get(ctx, "key"); !ok {
			t.Fatal("expected hit")
		}
	}
	for i := 0; i < misses; i++ {
		if _, ok := store.Get(ctx, fmt.Sprintf("missing-%d", i)); ok {
			t.Fatal("expected miss")
		}
	}

	stats := store.Stats()
	if stats.Hits != hits {
		t.Errorf("Hits = %d, want %d", stats.Hits, hits)
	}
	if stats.Misses != misses {
		t.Errorf("Misses = %d, want %d", stats.Misses, misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Size != 1 {
		t.Errorf("Size = %d, want 1", stats.Size)
	}
}

func TestMemoryStore_NamespaceIsolation(t *testing.T) {
	a := NewMemoryStore("a")
	b := NewMemoryStore("b")
	ctx := context.Background()

	if err := a.Set(ctx, "page:id=1", []byte("from-a"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := b.Get(ctx, "page:id=1"); ok {
		t.Error("stores with different namespaces must not share entries")
	}
}

func TestMemoryStore_EnableDisable(t *testing.T) {
	store := NewMemoryStore("ws")

	if !store.Enabled() {
		t.Error("store should start enabled")
	}
	store.Disable()
	if store.Enabled() {
		t.Error("store should report disabled after Disable")
	}

	// Disabling must not clear entries
	ctx := context.Background()
	store.Enable()
	if err := store.Set(ctx, "key", []byte("v"), 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	store.Disable()
	store.Enable()
	if _, ok := store.Get(ctx, "key"); !ok {
		t.Error("entry cached before Disable should survive re-enable")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore("ws")
	ctx := context.Background()

	const numGoroutines = 50
	const opsPerGoroutine = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				key := fmt.Sprintf("key-%d", j%5)
				switch j % 4 {
				case 0:
					_ = store.Set(ctx, key, []byte("v"), time.Minute)
				case 1:
					_, _ = store.Get(ctx, key)
				case 2:
					_ = store.Invalidate(ctx, key)
				case 3:
					_ = store.InvalidateMatching(ctx, func(k string) bool {
						return k == "ws:key-0"
					})
				}
			}
		}(i)
	}

	wg.Wait()
}

// Verify MemoryStore implements Store at compile time
var _ Store = (*MemoryStore)(nil)
