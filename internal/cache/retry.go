package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tartampluch/go-panchanga/internal/config"
)

// RetryableError marks a transient failure (timeout, 5xx) worth retrying.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn up to config.RetryAttempts times, doubling the
// delay from config.RetryBaseDelay. Only retryable errors are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return retry(ctx, config.RetryAttempts, config.RetryBaseDelay, fn)
}

func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			slog.Debug(config.MsgRetrying,
				slog.String(config.LogKeyComponent, config.CompCache),
				slog.Int(config.LogKeyAttempt, i+1),
				slog.Any(config.LogKeyError, err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
