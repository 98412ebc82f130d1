package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend is returned when the cache backend cannot be reached.
var ErrBackend = errors.New("cache backend unavailable")

// transientError marks a failure worth retrying, such as a refused
// connection while Redis is still starting.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// connectAttempts and connectDelay bound how long a backend is waited for.
// The delay doubles after every failed attempt.
var (
	connectAttempts = 3
	connectDelay    = 200 * time.Millisecond
)

// withRetry runs fn until it succeeds, returns a non-transient error, or
// connectAttempts is exhausted. The returned error is unwrapped from its
// transient marker.
func withRetry(ctx context.Context, fn func() error) error {
	delay := connectDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		if attempt == connectAttempts {
			return errors.Unwrap(err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}
