// Package config loads client settings from the environment.
//
// Every knob is a DOCSPACE_* variable. The token value may reference
// another variable with ${VAR} syntax, so deployments can point at a
// secret injected under a different name without copying it.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/docspace/cache"
)

// Sentinel errors for configuration loading.
var (
	ErrTokenRequired = errors.New("config: DOCSPACE_TOKEN is required")
	ErrInvalidTTL    = errors.New("config: cache TTL must be positive")
	ErrTTLAboveMax   = errors.New("config: cache TTL exceeds max TTL")
)

// Config is the full environment-driven configuration.
type Config struct {
	// Token is the integration token. Supports ${VAR} indirection.
	Token string `env:"DOCSPACE_TOKEN"`

	// BaseURL overrides the API endpoint, mainly for testing.
	BaseURL string `env:"DOCSPACE_BASE_URL" envDefault:"https://api.docspace.io"`

	// UserAgent is sent on every request.
	UserAgent string `env:"DOCSPACE_USER_AGENT" envDefault:"docspace-go/0.1.0"`

	// CacheNamespace prefixes every cache key.
	CacheNamespace string `env:"DOCSPACE_CACHE_NAMESPACE" envDefault:"docspace"`

	// CacheTTL is the default TTL applied when an operation does not
	// choose its own tier.
	CacheTTL time.Duration `env:"DOCSPACE_CACHE_TTL" envDefault:"5m"`

	// CacheMaxTTL caps every TTL, tier choices included.
	CacheMaxTTL time.Duration `env:"DOCSPACE_CACHE_MAX_TTL" envDefault:"1h"`

	// CacheDisabled starts the client with the cache gate closed.
	CacheDisabled bool `env:"DOCSPACE_CACHE_DISABLED"`

	// SingleFlight coalesces concurrent misses for the same key.
	SingleFlight bool `env:"DOCSPACE_SINGLE_FLIGHT"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"DOCSPACE_LOG_LEVEL" envDefault:"info"`

	// TracingExporter is one of otlp, stdout, none.
	TracingExporter string `env:"DOCSPACE_TRACING_EXPORTER" envDefault:"none"`

	// MetricsExporter is one of otlp, prometheus, stdout, none.
	MetricsExporter string `env:"DOCSPACE_METRICS_EXPORTER" envDefault:"none"`
}

// Load reads the environment, resolves token indirection, and
// validates the result.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	token, err := ExpandEnvStrict(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("config: resolving DOCSPACE_TOKEN: %w", err)
	}
	cfg.Token = token

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded values for consistency.
func (c *Config) Validate() error {
	if c.Token == "" {
		return ErrTokenRequired
	}
	if c.CacheTTL <= 0 || c.CacheMaxTTL <= 0 {
		return ErrInvalidTTL
	}
	if c.CacheTTL > c.CacheMaxTTL {
		return ErrTTLAboveMax
	}
	return nil
}

// Policy returns the cache policy the configuration describes.
func (c *Config) Policy() cache.Policy {
	return cache.Policy{
		DefaultTTL: c.CacheTTL,
		MaxTTL:     c.CacheMaxTTL,
	}
}
