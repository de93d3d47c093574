package cache

import (
	"context"
	"errors"
	"time"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
)

// transientError marks a backend failure worth another attempt, such as a
// network timeout. Anything else fails immediately.
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

// backoff retries transient failures with a doubling delay.
type backoff struct {
	attempts int
	delay    time.Duration
}

// remoteBackoff is used by the network backends; tests shorten it.
var remoteBackoff = backoff{attempts: 3, delay: 100 * time.Millisecond}

// do runs fn until it succeeds, fails permanently or runs out of attempts.
// Exhausted retries surface as CACHE_UNAVAILABLE.
func (b backoff) do(ctx context.Context, op string, fn func() error) error {
	delay := b.delay
	var err error
	for i := range b.attempts {
		if err = fn(); err == nil || !isTransient(err) {
			return err
		}
		if i == b.attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return apperr.Wrap(apperr.ErrCodeCacheUnavailable, errors.Unwrap(err), "%s failed after %d attempts", op, b.attempts)
}
