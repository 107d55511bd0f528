package golingo

import (
	"context"
	"errors"
	"fmt"
)

// ErrCancelled is matched by every error caused by a cancelled or expired
// context, so callers can use errors.Is(err, ErrCancelled).
var ErrCancelled = errors.New("localization cancelled")

// ValidationError indicates invalid configuration or parameters. It is
// returned before any network activity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ServerError indicates a 5xx response from the remote API. It is usually
// transient and safe to retry.
type ServerError struct {
	StatusCode int
	Status     string // e.g. "502 Bad Gateway"
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s. %s. This may be due to temporary service issues",
		e.StatusCode, e.Status, e.Body)
}

// InvalidRequestError indicates a 400 response. Retrying without changing
// the input will not help.
type InvalidRequestError struct {
	Status string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Status)
}

// RemoteRejectedError indicates an error reported inside a successful
// response envelope.
type RemoteRejectedError struct {
	Message string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("remote rejected request: %s", e.Message)
}

// UnknownHTTPError covers every other non-2xx response.
type UnknownHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UnknownHTTPError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Body)
}

// RecognitionError indicates a non-5xx failure of locale recognition.
type RecognitionError struct {
	StatusCode int
	Body       string
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("error recognizing locale (%d): %s", e.StatusCode, e.Body)
}

// CancelledError indicates the caller's context was cancelled or its
// deadline passed. It unwraps to the context error and matches ErrCancelled.
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrCancelled, e.Cause)
	}
	return ErrCancelled.Error()
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// asCancelled converts err into a CancelledError when the caller's ctx is
// done.
func asCancelled(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var cancelled *CancelledError
	if errors.As(err, &cancelled) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &CancelledError{Cause: ctxErr}
	}
	// Transport timeouts with a live ctx are ordinary failures.
	return err
}
