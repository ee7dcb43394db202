package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Producer performs the real work on a cache miss. It is the only
// operation in this package allowed to block; its duration is bounded
// by the remote collaborator, not by the cache.
type Producer func(ctx context.Context) ([]byte, error)

// FetchOptions controls one GetOrFetch call.
type FetchOptions struct {
	// TTL for the entry written on a miss. Zero means the policy
	// default.
	TTL time.Duration

	// Bypass skips the store entirely for this call: the producer
	// always runs, nothing is read, written, or counted.
	Bypass bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithSingleFlight coalesces concurrent misses for the same key into
// one producer invocation. Off by default: without it two concurrent
// callers missing on the same key both invoke the producer.
func WithSingleFlight() FetcherOption {
	return func(f *Fetcher) {
		f.sf = new(singleflight.Group)
	}
}

// Fetcher makes the cache transparent to callers that only want a
// value, computed however is cheapest. It holds no state of its own
// beyond the store and policy it reads.
type Fetcher struct {
	store  Store
	policy Policy
	sf     *singleflight.Group
}

// NewFetcher creates a fetch coordinator over the given store.
func NewFetcher(store Store, policy Policy, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		store:  store,
		policy: policy,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetOrFetch returns the cached value for key, or invokes producer and
// caches its result.
//
// With Bypass set, or the store disabled, or a policy that disables
// caching, the producer runs directly and the store is not touched.
// On a hit the producer is never invoked. On a miss a successful
// producer result is stored with the effective TTL; a producer failure
// propagates unchanged and is never cached.
func (f *Fetcher) GetOrFetch(ctx context.Context, key string, producer Producer, opts FetchOptions) ([]byte, error) {
	if producer == nil {
		return nil, ErrNilProducer
	}
	if f.store == nil {
		return nil, ErrNilStore
	}

	if opts.Bypass || !f.store.Enabled() || !f.policy.ShouldCache() {
		return producer(ctx)
	}

	// Key generation problems are a caller bug; degrade to a direct
	// call rather than failing the request.
	if err := ValidateKey(key); err != nil {
		return producer(ctx)
	}

	if cached, ok := f.store.Get(ctx, key); ok {
		return cached, nil
	}

	if f.sf != nil {
		v, err, _ := f.sf.Do(key, func() (any, error) {
			return f.fetch(ctx, key, producer, opts)
		})
		if err != nil {
			return nil, err
		}
		return v.([]byte), nil
	}

	return f.fetch(ctx, key, producer, opts)
}

func (f *Fetcher) fetch(ctx context.Context, key string, producer Producer, opts FetchOptions) ([]byte, error) {
	result, err := producer(ctx)
	if err != nil {
		// Don't cache errors
		return result, err
	}

	_ = f.store.Set(ctx, key, result, f.policy.EffectiveTTL(opts.TTL))
	return result, nil
}
