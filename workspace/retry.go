package workspace

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient remote failures.
// Retry policy lives entirely in this client; the cache layer never
// retries.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 200ms
	InitialDelay time.Duration

	// MaxDelay caps the maximum delay between retries.
	// Default: 5s
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	// Default: 2.0
	Multiplier float64

	// Jitter adds randomness to delays to prevent thundering herd.
	// Default: true
	Jitter bool
}

func defaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// retrier runs operations with exponential backoff on retryable errors.
type retrier struct {
	config RetryConfig
}

func newRetrier(config RetryConfig) *retrier {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 200 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	return &retrier{config: config}
}

// execute runs op, retrying while retryable(err) holds and attempts
// remain. Context cancellation during a backoff wait aborts with
// ctx.Err().
func (r *retrier) execute(ctx context.Context, op func(context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay(attempt)):
		}
	}

	return lastErr
}

func (r *retrier) delay(attempt int) time.Duration {
	multiplier := math.Pow(r.config.Multiplier, float64(attempt-1))
	delay := time.Duration(float64(r.config.InitialDelay) * multiplier)

	if delay > r.config.MaxDelay {
		delay = r.config.MaxDelay
	}

	if r.config.Jitter && delay > 0 {
		// Up to 25% jitter
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += time.Duration(rand.Int64N(int64(delay / 4)))
	}

	return delay
}
