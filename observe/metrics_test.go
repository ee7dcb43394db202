package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	// All record paths must be safe to call.
	ctx := context.Background()
	meta := OpMeta{Op: "database_query", Resource: "database"}

	metrics.RecordRequest(ctx, meta, 42*time.Millisecond, nil)
	metrics.RecordRequest(ctx, meta, 42*time.Millisecond, errors.New("boom"))
	metrics.RecordCacheLookup(ctx, meta, true)
	metrics.RecordCacheLookup(ctx, meta, false)
	metrics.RecordInvalidation(ctx, meta, 5)
	metrics.RecordInvalidation(ctx, meta, 0)  // no-op
	metrics.RecordInvalidation(ctx, meta, -1) // no-op
}

func TestNewMetrics_NoResourceAttr(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	// Resource-less metadata must not panic attribute building.
	metrics.RecordRequest(context.Background(), OpMeta{Op: "me"}, time.Millisecond, nil)
}
