package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrNilStore    = errors.New("cache: store is nil")
	ErrNilProducer = errors.New("cache: producer is nil")
	ErrInvalidKey  = errors.New("cache: key is invalid")
	ErrKeyTooLong  = errors.New("cache: key exceeds max length")
)

// Store is the interface for caching workspace API read results.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Keys: callers pass unqualified keys; implementations apply their
//     namespace prefix before storage, and predicates observe the full
//     prefixed key.
//   - Errors: Get never errors; it returns (nil, false) on miss.
type Store interface {
	// Get retrieves a cached value. Returns (nil, false) on miss or
	// after expiry; an expired entry is removed by the read that
	// finds it.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL. TTL<=0 means no caching.
	// An existing entry for the key is overwritten unconditionally.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes exactly one entry. Reports whether it existed.
	Invalidate(ctx context.Context, key string) bool

	// InvalidateMatching removes every entry whose full key satisfies
	// pred and returns the number removed. A predicate matching
	// nothing is a no-op, never an error.
	InvalidateMatching(ctx context.Context, pred func(key string) bool) int

	// Clear removes all entries in the namespace and resets counters.
	// Returns the number of entries removed.
	Clear(ctx context.Context) int

	// Stats returns a read-only snapshot of the counters.
	Stats() Stats

	// Enable and Disable toggle the store-wide gate consulted by the
	// fetch coordinator. Disabling does not clear entries.
	Enable()
	Disable()
	Enabled() bool
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
