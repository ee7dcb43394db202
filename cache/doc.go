// Package cache provides a namespaced, TTL-bounded read cache for
// remote workspace API calls.
//
// It provides a Store interface with a memory implementation,
// deterministic key derivation from operation parameters, TTL tier
// policies, and a get-or-fetch coordinator that never caches errors.
package cache
