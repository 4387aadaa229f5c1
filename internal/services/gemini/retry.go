// File: internal/services/gemini/retry.go
package gemini

import (
	"context"
	"errors"
	"time"
)

// RetryPolicy defines bounded exponential-backoff behavior
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	BackoffFactor float64
}

// ChatRetryPolicy suits latency-sensitive conversational calls: the user
// can always resend, so one retry is enough.
func ChatRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1, InitialDelay: 1 * time.Second, BackoffFactor: 2}
}

// DetailRetryPolicy suits expensive structured generation, which is worth
// a longer budget before giving up.
func DetailRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, InitialDelay: 2 * time.Second, BackoffFactor: 2}
}

// WithRetry executes fn with bounded retries. Failures classified as
// non-retryable (credential, validation, quota, shape) are re-raised
// immediately. An explicit loop, not recursion.
func WithRetry(ctx context.Context, policy RetryPolicy, logger Logger, fn func(ctx context.Context) (string, error)) (string, error) {
	delay := policy.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("retrying generation", "attempt", attempt, "max_retries", policy.MaxRetries, "delay", delay.String())
			select {
			case <-ctx.Done():
				// Only an expired deadline is a timeout; a cancelled
				// caller must not see the "connection too slow" message.
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return "", NewTimeoutError(ctx.Err())
				}
				return "", ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * policy.BackoffFactor)
		}

		text, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Info("generation succeeded after retry", "attempts", attempt+1)
			}
			return text, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			logger.Debug("not retrying non-retryable error", "error", err)
			return "", err
		}
	}

	logger.Error("generation failed after all retries", "attempts", policy.MaxRetries+1, "error", lastErr)
	return "", lastErr
}
