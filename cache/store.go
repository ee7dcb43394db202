package cache

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryStore is an in-memory Store implementation. One instance owns
// one namespace; all keys are stored under that prefix so unrelated
// callers sharing a process cannot collide.
type MemoryStore struct {
	mu        sync.RWMutex
	namespace string
	entries   map[string]*storeEntry
	enabled   atomic.Bool

	hits          atomic.Int64
	misses        atomic.Int64
	sets          atomic.Int64
	evictions     atomic.Int64
	invalidations atomic.Int64
}

type storeEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates a new in-memory store for the given namespace.
// The namespace is fixed for the lifetime of the store.
func NewMemoryStore(namespace string) *MemoryStore {
	s := &MemoryStore{
		namespace: namespace,
		entries:   make(map[string]*storeEntry),
	}
	s.enabled.Store(true)
	return s
}

// Namespace returns the prefix applied to every key.
func (s *MemoryStore) Namespace() string {
	return s.namespace
}

func (s *MemoryStore) qualify(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

// Get retrieves a value from the store. Returns (nil, false) on miss.
// An expired entry is removed and counted as both an eviction and a
// miss.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	qk := s.qualify(key)

	s.mu.RLock()
	entry, ok := s.entries[qk]
	s.mu.RUnlock()

	if !ok {
		s.misses.Add(1)
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		// Expired - clean up lazily. Recheck under the write lock in
		// case a concurrent Set replaced the entry.
		s.mu.Lock()
		if cur, still := s.entries[qk]; still && cur == entry {
			delete(s.entries, qk)
			s.evictions.Add(1)
		}
		s.mu.Unlock()
		s.misses.Add(1)
		return nil, false
	}

	s.hits.Add(1)
	return entry.value, true
}

// Set stores a value with the given TTL. TTL<=0 means don't cache.
// Last writer wins for concurrent sets on the same key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	s.mu.Lock()
	s.entries[s.qualify(key)] = &storeEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	s.mu.Unlock()
	s.sets.Add(1)

	return nil
}

// Invalidate removes a single entry. Reports whether it existed.
func (s *MemoryStore) Invalidate(_ context.Context, key string) bool {
	qk := s.qualify(key)

	s.mu.Lock()
	_, ok := s.entries[qk]
	if ok {
		delete(s.entries, qk)
	}
	s.mu.Unlock()

	if ok {
		s.invalidations.Add(1)
	}
	return ok
}

// InvalidateMatching removes every entry whose full key (namespace
// prefix included) satisfies pred. Returns the number removed; zero
// matches is a no-op.
func (s *MemoryStore) InvalidateMatching(_ context.Context, pred func(key string) bool) int {
	if pred == nil {
		return 0
	}

	s.mu.Lock()
	removed := 0
	for k := range s.entries {
		if pred(k) {
			delete(s.entries, k)
			removed++
		}
	}
	s.mu.Unlock()

	if removed > 0 {
		s.invalidations.Add(int64(removed))
	}
	return removed
}

// InvalidatePattern removes every entry whose full key matches the
// compiled pattern.
func (s *MemoryStore) InvalidatePattern(ctx context.Context, pattern *regexp.Regexp) int {
	if pattern == nil {
		return 0
	}
	return s.InvalidateMatching(ctx, pattern.MatchString)
}

// InvalidatePrefix removes every entry whose unqualified key starts
// with prefix.
func (s *MemoryStore) InvalidatePrefix(ctx context.Context, prefix string) int {
	qp := s.qualify(prefix)
	return s.InvalidateMatching(ctx, func(key string) bool {
		return strings.HasPrefix(key, qp)
	})
}

// Clear removes all entries in the namespace and resets the counters.
func (s *MemoryStore) Clear(_ context.Context) int {
	s.mu.Lock()
	removed := len(s.entries)
	s.entries = make(map[string]*storeEntry)
	s.mu.Unlock()

	s.ResetStats()
	return removed
}

// Stats returns a snapshot of the counters. It never mutates state.
func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	size := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Hits:          s.hits.Load(),
		Misses:        s.misses.Load(),
		Sets:          s.sets.Load(),
		Evictions:     s.evictions.Load(),
		Invalidations: s.invalidations.Load(),
		Size:          size,
	}
}

// ResetStats zeroes all counters without touching entries.
func (s *MemoryStore) ResetStats() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.evictions.Store(0)
	s.invalidations.Store(0)
}

// Enable re-opens the store gate. Entries cached before a Disable are
// served again if their TTL has not elapsed.
func (s *MemoryStore) Enable() {
	s.enabled.Store(true)
}

// Disable closes the store gate consulted by the fetch coordinator.
// Existing entries are kept.
func (s *MemoryStore) Disable() {
	s.enabled.Store(false)
}

// Enabled reports whether the store gate is open.
func (s *MemoryStore) Enabled() bool {
	return s.enabled.Load()
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
