package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"
)

func TestRetryCall_SucceedsOnLastAttempt(t *testing.T) {
	calls := 0
	res, err := retryCall(context.Background(), log.NewNopLogger(), retryBudget{
		name:     "test call",
		attempts: 3,
		interval: time.Millisecond,
	}, func(ctx context.Context) (*int, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("boom %d", calls)
		}
		v := 7
		return &v, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, *res)
	require.Equal(t, 3, calls)
}

func TestRetryCall_ExhaustsBudget(t *testing.T) {
	calls := 0
	cause := errors.New("connection refused")
	_, err := retryCall(context.Background(), log.NewNopLogger(), retryBudget{
		name:     "test call",
		attempts: 4,
		interval: time.Millisecond,
	}, func(ctx context.Context) (*int, error) {
		calls++
		return nil, cause
	})
	require.Equal(t, 4, calls)

	var exhausted *RetryExhaustedError
	require.ErrorAs(t, err, &exhausted)
	require.Equal(t, 4, exhausted.Attempts)
	require.Equal(t, "test call", exhausted.Op)
	require.ErrorIs(t, err, cause)
}

func TestRetryCall_NilResultIsFailure(t *testing.T) {
	calls := 0
	res, err := retryCall(context.Background(), log.NewNopLogger(), retryBudget{
		name:     "test call",
		attempts: 2,
		interval: time.Millisecond,
	}, func(ctx context.Context) (*int, error) {
		calls++
		if calls == 1 {
			return nil, nil // absent result, no error
		}
		v := 1
		return &v, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, *res)
	require.Equal(t, 2, calls)
}

func TestRetryCall_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := retryCall(ctx, log.NewNopLogger(), retryBudget{
		name:     "test call",
		attempts: 5,
		interval: time.Hour,
	}, func(ctx context.Context) (*int, error) {
		calls++
		return nil, errors.New("boom")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
