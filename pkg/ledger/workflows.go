package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/google/uuid"
)

// The contract workflows share one shape: build the message, build and sign
// a fresh transaction, broadcast and confirm, then extract or pass through
// the result. An outer loop, budgeted separately from the per-step budgets,
// reruns the whole sequence when the broadcast was rejected -- the usual
// cause is a stale sequence number, which the rebuild fixes by re-querying
// the account. Whole-workflow retries sleep the longer FailedRetryInterval
// to give chain state time to settle.

// DeployContract stores wasm bytecode on chain and returns the assigned code
// id together with the confirmed transaction record.
func (c *Client) DeployContract(ctx context.Context, key *Key, wasmCode []byte, opts ...CallOption) (uint64, *TxResult, error) {
	co := c.callOptions(c.cfg.TotalMsgRetries, opts)
	logger := c.logger.With("op", "deploy", "op_id", uuid.NewString())

	var lastErr error
	for attempt := 0; attempt < co.retries; attempt++ {
		msg, err := BuildStoreCodeMsg(key.Address(), wasmCode)
		if err != nil {
			return 0, nil, err
		}

		res, err := c.sendSingleSigner(ctx, msg, key, co.gasLimit)
		if err != nil {
			if !isRejected(err) {
				return 0, nil, err
			}
			lastErr = err
			logger.Warn("failed to deploy contract code, broadcast rejected", "err", err)
			if serr := sleepCtx(ctx, c.cfg.FailedRetryInterval); serr != nil {
				return 0, nil, serr
			}
			continue
		}

		codeID, err := ExtractCodeID(res.RawLog)
		if err != nil {
			return 0, nil, err
		}
		return codeID, res, nil
	}

	return 0, nil, &RetryExhaustedError{Op: "deploying contract code", Attempts: co.retries, Last: lastErr}
}

// DeployContractFile reads wasm bytecode from disk and deploys it.
func (c *Client) DeployContractFile(ctx context.Context, key *Key, path string, opts ...CallOption) (uint64, *TxResult, error) {
	wasmCode, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("reading contract bytecode: %w", err)
	}
	return c.DeployContract(ctx, key, wasmCode, opts...)
}

// InstantiateContract creates a contract instance from a stored code id and
// returns its address together with the confirmed transaction record.
// Beyond rejected broadcasts, a raw log the extractor cannot make sense of is
// also retried here: instantiate logs are free-form and occasionally slow to
// settle into their final shape.
func (c *Client) InstantiateContract(ctx context.Context, key *Key, codeID uint64, initMsg any, label string, opts ...CallOption) (string, *TxResult, error) {
	co := c.callOptions(c.cfg.TotalMsgRetries, opts)
	logger := c.logger.With("op", "instantiate", "op_id", uuid.NewString())

	var lastErr error
	for attempt := 0; attempt < co.retries; attempt++ {
		msg, err := BuildInstantiateMsg(key.Address(), codeID, initMsg, label, co.funds)
		if err != nil {
			return "", nil, err
		}

		res, err := c.sendSingleSigner(ctx, msg, key, co.gasLimit)
		if err != nil {
			if !isRejected(err) {
				return "", nil, err
			}
			lastErr = err
			logger.Warn("failed to instantiate contract, broadcast rejected", "err", err)
			if serr := sleepCtx(ctx, c.cfg.FailedRetryInterval); serr != nil {
				return "", nil, serr
			}
			continue
		}

		contractAddress, err := ExtractContractAddress(res.RawLog)
		if err != nil {
			lastErr = err
			logger.Warn("failed to parse instantiate response", "raw_log", res.RawLog, "err", err)
			if serr := sleepCtx(ctx, c.cfg.FailedRetryInterval); serr != nil {
				return "", nil, serr
			}
			continue
		}
		return contractAddress, res, nil
	}

	return "", nil, &RetryExhaustedError{Op: "instantiating contract", Attempts: co.retries, Last: lastErr}
}

// ExecuteContract invokes a contract and returns the confirmed transaction
// record along with its application-level response code. A non-zero code
// signals a failure inside the contract, not a client failure, so it is
// returned rather than raised; interpreting it is the caller's business.
func (c *Client) ExecuteContract(ctx context.Context, key *Key, contractAddress string, execMsg any, opts ...CallOption) (*TxResult, uint32, error) {
	co := c.callOptions(c.cfg.SendRetries, opts)
	logger := c.logger.With("op", "execute", "op_id", uuid.NewString())

	var lastErr error
	for attempt := 0; attempt < co.retries; attempt++ {
		msg, err := BuildExecuteMsg(key.Address(), contractAddress, execMsg, co.funds)
		if err != nil {
			return nil, 0, err
		}

		res, err := c.sendSingleSigner(ctx, msg, key, co.gasLimit)
		if err != nil {
			if !isRejected(err) {
				return nil, 0, err
			}
			lastErr = err
			logger.Warn("failed to execute contract, broadcast rejected", "err", err)
			if serr := sleepCtx(ctx, c.cfg.FailedRetryInterval); serr != nil {
				return nil, 0, serr
			}
			continue
		}

		return res, res.Code, nil
	}

	return nil, 0, &RetryExhaustedError{Op: "executing contract", Attempts: co.retries, Last: lastErr}
}

// QueryContractState runs a read-only smart query against a contract. No
// signing is involved; failures are retried at the message-level budget.
func (c *Client) QueryContractState(ctx context.Context, contractAddress string, queryMsg any, opts ...CallOption) (json.RawMessage, error) {
	co := c.callOptions(c.cfg.TotalMsgRetries, opts)

	queryData, err := json.Marshal(queryMsg)
	if err != nil {
		return nil, &EncodingError{Msg: "query payload", Cause: err}
	}

	res, err := retryCall(ctx, c.logger, retryBudget{
		name:       "getting contract state",
		attempts:   co.retries,
		interval:   c.cfg.FailedRetryInterval,
		logRetries: true,
	}, func(ctx context.Context) (*json.RawMessage, error) {
		data, err := c.backend.SmartContractState(ctx, contractAddress, queryData)
		if err != nil {
			return nil, err
		}
		raw := json.RawMessage(data)
		return &raw, nil
	})
	if err != nil {
		return nil, err
	}
	return *res, nil
}

// sendSingleSigner builds, signs, broadcasts and confirms one message from
// one signer. The transaction is always built fresh so the signed sequence
// reflects current chain state.
func (c *Client) sendSingleSigner(ctx context.Context, msg *codectypes.Any, key *Key, gasLimit uint64) (*TxResult, error) {
	tx, err := c.BuildTransaction(ctx,
		[]*codectypes.Any{msg},
		[]string{key.Address()},
		[][]byte{key.PubKeyBytes()},
		nil, "", gasLimit,
	)
	if err != nil {
		return nil, err
	}
	if err := c.SignTransaction(ctx, tx, key); err != nil {
		return nil, err
	}
	return c.BroadcastTx(ctx, tx)
}

func isRejected(err error) bool {
	var rejected *BroadcastRejectedError
	return errors.As(err, &rejected)
}
