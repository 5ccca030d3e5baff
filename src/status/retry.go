package status

import (
	"context"
	"errors"
	"time"
)

// Retryer re-attempts a status post on transient failure. Attempts
// includes the first try; backoff doubles after each failure. Client
// faults (4xx) are terminal; retrying a rejected payload cannot
// succeed. Reporting failure never alters the pipeline's own terminal
// state; the caller decides how loudly to surface it.
type Retryer struct {
	Attempts int
	Backoff  time.Duration
}

// Report posts result via r, retrying per the policy.
func (ry Retryer) Report(ctx context.Context, r Reporter, result BuildResult) error {
	attempts := ry.Attempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := ry.Backoff
	var lastErr error

	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		lastErr = r.Report(ctx, result)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// retryable reports whether an error is worth another attempt: network
// faults and server-side (5xx) responses are; anything the server
// explicitly rejected (4xx) is not.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}
