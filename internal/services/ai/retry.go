// File: internal/services/ai/retry.go
package ai

import (
	"context"
	"errors"
	"time"
)

// RetryConfig defines simple retry behavior for gateway calls.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryConfig provides sensible defaults.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
	}
}

// RetryWithBackoff executes fn, retrying transport-level gateway failures with
// a fixed delay. Provider rejections and config errors are never retried: the
// provider already saw the request once, and the call is only idempotent
// because nothing is persisted until it succeeds.
func RetryWithBackoff(ctx context.Context, config *RetryConfig, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		lastErr = err

		var gwErr *GatewayError
		if errors.As(err, &gwErr) && !gwErr.Retryable() {
			return err
		}

		// Don't wait after the last attempt.
		if attempt < config.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(config.Delay):
			}
		}
	}

	return lastErr
}
