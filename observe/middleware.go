package observe

import (
	"context"
	"time"
)

// CallFunc is the signature of one remote workspace API call.
type CallFunc func(ctx context.Context) ([]byte, error)

// Middleware wraps remote API calls with observability (tracing,
// metrics, logging). Cache hits never pass through it; only calls
// that actually reach the remote API are traced and timed here.
//
// Contract:
//   - Concurrency: Call is safe for concurrent use.
//   - Errors: errors from the wrapped call are recorded and propagated
//     unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Call runs fn inside a span, records its duration, and logs the outcome.
func (m *Middleware) Call(ctx context.Context, meta OpMeta, fn CallFunc) ([]byte, error) {
	ctx, span := m.tracer.StartSpan(ctx, meta)

	start := time.Now()
	result, err := fn(ctx)
	duration := time.Since(start)

	m.tracer.EndSpan(span, err)
	m.metrics.RecordRequest(ctx, meta, duration, err)

	opLogger := m.logger.WithOp(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}

	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		opLogger.Error(ctx, "api call failed", fields...)
	} else {
		opLogger.Debug(ctx, "api call completed", fields...)
	}

	return result, err
}

// CacheLookup records a cache consult for a read operation.
func (m *Middleware) CacheLookup(ctx context.Context, meta OpMeta, hit bool) {
	m.metrics.RecordCacheLookup(ctx, meta, hit)
	if hit {
		m.logger.WithOp(meta).Debug(ctx, "cache hit")
	}
}

// Invalidated records cache entries removed by a write operation.
func (m *Middleware) Invalidated(ctx context.Context, meta OpMeta, removed int) {
	m.metrics.RecordInvalidation(ctx, meta, removed)
	if removed > 0 {
		m.logger.WithOp(meta).Debug(ctx, "cache invalidated",
			Field{Key: "removed", Value: removed})
	}
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}

// NoopMiddleware returns a Middleware that records nothing. Useful for
// callers that opt out of telemetry entirely.
func NoopMiddleware() *Middleware {
	return NewMiddleware(newNoopTracer(), noopMetrics{}, &noopLogger{})
}

// noopMetrics discards all measurements.
type noopMetrics struct{}

func (noopMetrics) RecordRequest(context.Context, OpMeta, time.Duration, error) {}
func (noopMetrics) RecordCacheLookup(context.Context, OpMeta, bool)             {}
func (noopMetrics) RecordInvalidation(context.Context, OpMeta, int)             {}
