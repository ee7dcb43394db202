package observe

import (
	"context"
	"errors"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name:    "missing service name",
			cfg:     Config{},
			wantErr: ErrMissingServiceName,
		},
		{
			name: "valid minimal",
			cfg:  Config{ServiceName: "docspace"},
		},
		{
			name: "invalid tracing exporter",
			cfg: Config{
				ServiceName: "docspace",
				Tracing:     TracingConfig{Enabled: true, Exporter: "carrier-pigeon"},
			},
			wantErr: ErrInvalidTracingExporter,
		},
		{
			name: "invalid sample pct",
			cfg: Config{
				ServiceName: "docspace",
				Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.5},
			},
			wantErr: ErrInvalidSamplePct,
		},
		{
			name: "invalid metrics exporter",
			cfg: Config{
				ServiceName: "docspace",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "pushgateway"},
			},
			wantErr: ErrInvalidMetricsExporter,
		},
		{
			name: "invalid log level",
			cfg: Config{
				ServiceName: "docspace",
				Logging:     LoggingConfig{Enabled: true, Level: "verbose"},
			},
			wantErr: ErrInvalidLogLevel,
		},
		{
			name: "disabled subsystems skip validation",
			cfg: Config{
				ServiceName: "docspace",
				Tracing:     TracingConfig{Enabled: false, Exporter: "carrier-pigeon"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewObserver_AllDisabled(t *testing.T) {
	ctx := context.Background()

	obs, err := NewObserver(ctx, Config{ServiceName: "docspace"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if obs.Tracer() == nil {
		t.Error("Tracer should never be nil")
	}
	if obs.Meter() == nil {
		t.Error("Meter should never be nil")
	}
	if obs.Logger() == nil {
		t.Error("Logger should never be nil")
	}

	// Shutdown with nothing running is a no-op
	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
	// Shutdown is idempotent
	if err := obs.Shutdown(ctx); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}

func TestNewObserver_InvalidConfig(t *testing.T) {
	if _, err := NewObserver(context.Background(), Config{}); err == nil {
		t.Error("NewObserver with empty config should fail")
	}
}

func TestNewObserver_NoneExporters(t *testing.T) {
	ctx := context.Background()

	obs, err := NewObserver(ctx, Config{
		ServiceName: "docspace",
		Tracing:     TracingConfig{Enabled: true, Exporter: "none", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "none"},
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(ctx)

	_, span := obs.Tracer().Start(ctx, "test-span")
	span.End()
}
