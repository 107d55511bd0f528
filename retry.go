package golingo

import (
	"context"
	"errors"
	"time"

	"github.com/ZaguanLabs/golingo/payload"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// Retry runs fn with exponential backoff while it fails with a
// retryable error. Cancellation of ctx stops retrying with a CancelledError.
func Retry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, &CancelledError{Cause: err}
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return zero, &CancelledError{Cause: ctx.Err()}
			case <-timer.C:
			}
		}
	}

	return zero, lastErr
}

// IsRetryable reports whether err is a transient server failure.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, ErrCancelled) {
		return false
	}

	var serverErr *ServerError
	return errors.As(err, &serverErr)
}

// RetryingTranslator wraps a ChunkTranslator with retry logic.
type RetryingTranslator struct {
	next   ChunkTranslator
	config RetryConfig
}

// NewRetryingTranslator creates a translator that retries server errors.
func NewRetryingTranslator(next ChunkTranslator, cfg RetryConfig) *RetryingTranslator {
	return &RetryingTranslator{
		next:   next,
		config: cfg,
	}
}

// TranslateChunk implements ChunkTranslator with retry logic.
func (t *RetryingTranslator) TranslateChunk(ctx context.Context, req ChunkRequest) (*payload.Payload, error) {
	return Retry(ctx, t.config, func() (*payload.Payload, error) {
		return t.next.TranslateChunk(ctx, req)
	})
}

var _ ChunkTranslator = (*RetryingTranslator)(nil)
