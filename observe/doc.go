// Package observe provides telemetry for workspace API calls and the
// read cache in front of them.
//
// It wires OpenTelemetry tracing and metrics together with a
// structured JSON logger behind one Observer, with noop fallbacks when
// a subsystem is disabled. Metrics cover remote request counts and
// latency plus cache hit/miss/invalidation activity.
package observe
