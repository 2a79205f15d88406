package ledger

import (
	"context"
	"errors"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
)

// CodeOK is the response code of a successful broadcast or execution.
const CodeOK uint32 = 0

// BroadcastTx submits a signed transaction in sync mode and waits for its
// confirmed record. Broadcast and confirmation run under independent budgets:
// broadcasting retries transport failures at the message-level budget, while
// confirmation polls with many more, quieter attempts -- a confirmation delay
// is expected behavior, not an anomaly worth warning about.
func (c *Client) BroadcastTx(ctx context.Context, tx *txtypes.Tx) (*TxResult, error) {
	return c.broadcastTx(ctx, tx, c.cfg.TotalMsgRetries)
}

func (c *Client) broadcastTx(ctx context.Context, tx *txtypes.Tx, retries int) (*TxResult, error) {
	raw, err := marshalTx(tx)
	if err != nil {
		return nil, err
	}

	ack, err := retryCall(ctx, c.logger, retryBudget{
		name:       "transaction broadcasting",
		attempts:   retries,
		interval:   c.cfg.MsgRetryInterval,
		logRetries: true,
	}, func(ctx context.Context) (*BroadcastResult, error) {
		return c.backend.BroadcastSync(ctx, raw)
	})
	if err != nil {
		return nil, err
	}

	// A non-zero code in the sync ack means the node refused the transaction
	// outright: wrong sequence, bad signature, insufficient fee. The caller
	// decides whether to rebuild and resubmit.
	if ack.Code != CodeOK {
		return nil, &BroadcastRejectedError{Code: ack.Code, RawLog: ack.RawLog}
	}

	return c.waitForTx(ctx, ack.TxHash)
}

// waitForTx polls for the transaction record by hash until it appears or the
// confirmation budget runs out. The record's own response code is never
// inspected here; interpreting it is the caller's job.
func (c *Client) waitForTx(ctx context.Context, txHash string) (*TxResult, error) {
	res, err := retryCall(ctx, c.logger, retryBudget{
		name:       "getting tx response",
		attempts:   c.cfg.ConfirmRetries,
		interval:   c.cfg.ConfirmInterval,
		logRetries: false,
	}, func(ctx context.Context) (*TxResult, error) {
		return c.backend.TxByHash(ctx, txHash)
	})
	if err != nil {
		var exhausted *RetryExhaustedError
		if errors.As(err, &exhausted) {
			return nil, &ConfirmTimeoutError{TxHash: txHash, Last: exhausted.Last}
		}
		return nil, err
	}
	return res, nil
}
