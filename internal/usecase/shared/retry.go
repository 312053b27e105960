package shared

import (
	"context"
	"log/slog"
	"time"

	"vehicle-rental/internal/pkg/errs"
)

var ErrMaxRetriesExceeded = errs.New("operation failed after max retries")

type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Retry runs fn until it succeeds, ctx ends or the attempts are used up.
// The wait grows linearly with the attempt number.
func Retry(ctx context.Context, policy RetryPolicy, op string, fn func(ctx context.Context) error) error {
	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		waitTime := time.Duration(attempt) * policy.Backoff
		slog.Warn("retrying after failure",
			"op", op,
			"attempt", attempt,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return errs.Wrap(ctx.Err(), op)
		case <-time.After(waitTime):
		}
	}

	return errs.Mark(errs.Wrapf(err, "%s failed after %d attempts", op, attempts), ErrMaxRetriesExceeded)
}
