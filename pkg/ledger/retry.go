package ledger

import (
	"context"
	"time"

	"cosmossdk.io/log"
)

// retryBudget bounds one retry scope: a fixed number of attempts separated by
// a fixed interval. No jitter, no exponential backoff -- the network is slow
// and eventually consistent, a fixed cadence is enough.
type retryBudget struct {
	name       string
	attempts   int
	interval   time.Duration
	logRetries bool
}

// retryCall runs call until it yields a non-nil result without error, up to
// budget.attempts times. Any error, and any nil result, counts as a failed
// attempt. Classification of failures into retryable vs fatal is the caller's
// concern; this helper treats everything as retryable and reports the last
// cause through RetryExhaustedError once the budget is spent.
func retryCall[T any](ctx context.Context, logger log.Logger, b retryBudget, call func(context.Context) (*T, error)) (*T, error) {
	var last error
	for attempt := 1; attempt <= b.attempts; attempt++ {
		res, err := call(ctx)
		if err == nil && res != nil {
			return res, nil
		}
		if err != nil {
			last = err
		}
		if attempt < b.attempts {
			if b.logRetries {
				logger.Warn(b.name+" failed, retrying",
					"interval", b.interval.String(),
					"attempt", attempt,
					"err", last,
				)
			}
			if err := sleepCtx(ctx, b.interval); err != nil {
				return nil, err
			}
		}
	}
	return nil, &RetryExhaustedError{Op: b.name, Attempts: b.attempts, Last: last}
}

// sleepCtx pauses for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
