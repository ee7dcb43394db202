package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records workspace API and cache activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRequest records one remote API call with its duration and
	// error status. Cache hits never reach this method.
	RecordRequest(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordCacheLookup records one consult of the read cache.
	RecordCacheLookup(ctx context.Context, meta OpMeta, hit bool)

	// RecordInvalidation records entries removed by a write operation.
	RecordInvalidation(ctx context.Context, meta OpMeta, removed int)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter         metric.Meter
	requestCount  metric.Int64Counter
	errorCount    metric.Int64Counter
	durationHist  metric.Float64Histogram
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	invalidations metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	return newMetrics(meter)
}

func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	requestCount, err := meter.Int64Counter(
		"workspace.api.requests",
		metric.WithDescription("Total number of remote API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"workspace.api.errors",
		metric.WithDescription("Total number of failed remote API calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"workspace.api.duration_ms",
		metric.WithDescription("Remote API call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"workspace.cache.hits",
		metric.WithDescription("Read operations answered from the cache"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"workspace.cache.misses",
		metric.WithDescription("Read operations that required a remote call"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	invalidations, err := meter.Int64Counter(
		"workspace.cache.invalidations",
		metric.WithDescription("Cache entries removed by write operations"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:         meter,
		requestCount:  requestCount,
		errorCount:    errorCount,
		durationHist:  durationHist,
		cacheHits:     cacheHits,
		cacheMisses:   cacheMisses,
		invalidations: invalidations,
	}, nil
}

func (m *metricsImpl) attrs(meta OpMeta) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("workspace.op", meta.Op),
	}
	if meta.Resource != "" {
		attrs = append(attrs, attribute.String("workspace.resource", meta.Resource))
	}
	return metric.WithAttributes(attrs...)
}

// RecordRequest records metrics for one remote API call.
func (m *metricsImpl) RecordRequest(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := m.attrs(meta)

	m.requestCount.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
}

// RecordCacheLookup records a cache hit or miss for a read operation.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, meta OpMeta, hit bool) {
	opt := m.attrs(meta)
	if hit {
		m.cacheHits.Add(ctx, 1, opt)
	} else {
		m.cacheMisses.Add(ctx, 1, opt)
	}
}

// RecordInvalidation records cache entries removed by a write.
func (m *metricsImpl) RecordInvalidation(ctx context.Context, meta OpMeta, removed int) {
	if removed <= 0 {
		return
	}
	m.invalidations.Add(ctx, int64(removed), m.attrs(meta))
}

// Ensure metricsImpl implements Metrics
var _ Metrics = (*metricsImpl)(nil)
