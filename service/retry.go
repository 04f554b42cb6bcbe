package service

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// permanentError marks an error that withRetry must not retry, such as a
// rejected credential.
type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }

// permanent wraps err so withRetry gives up on it immediately.
func permanent(err error) error {
	return permanentError{err: err}
}

// withRetry runs f up to attempts times with exponential backoff between
// tries. If you cancel the context passed to it retries stop. An error
// wrapped with permanent is returned unwrapped without further attempts.
func withRetry(ctx context.Context, attempts int, backoff time.Duration, f func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(backoff)))
			sleep := time.Duration(math.Pow(2, float64(attempt-1)))*backoff + jitter
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err = f()
		if err == nil {
			return nil
		}
		if perm, ok := err.(permanentError); ok {
			return perm.err
		}
	}
	return err
}
