package cache

import "time"

// TTL tiers for workspace reads. Callers pick the tier per operation;
// the cache itself attaches no meaning to them.
const (
	// TTLVolatile suits listings, queries, search results, and
	// comments, which change with every nearby write.
	TTLVolatile = 5 * time.Minute

	// TTLResource suits individual resource reads (a page, a block,
	// a database definition).
	TTLResource = 15 * time.Minute

	// TTLIdentity suits user and identity data, which rarely changes.
	TTLIdentity = 1 * time.Hour
)

// Policy configures caching behavior.
type Policy struct {
	// DefaultTTL is the TTL to use when a call specifies none.
	// If zero, caching is disabled by default.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Per-call TTLs are clamped
	// to this. If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the default caching policy.
// DefaultTTL: 5 minutes, MaxTTL: 1 hour.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: TTLVolatile,
		MaxTTL:     TTLIdentity,
	}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.DefaultTTL > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}

	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}

	return ttl
}
