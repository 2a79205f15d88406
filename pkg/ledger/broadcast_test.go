package ledger

import (
	"context"
	"fmt"
	"testing"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	"github.com/stretchr/testify/require"
)

func signedTestTx(t *testing.T, c *Client, key *Key) *txtypes.Tx {
	t.Helper()
	tx, err := c.BuildTransaction(context.Background(),
		[]*codectypes.Any{buildTestMsg(t, key)},
		[]string{key.Address()}, [][]byte{key.PubKeyBytes()},
		nil, "", DefaultGasLimit)
	require.NoError(t, err)
	require.NoError(t, c.SignTransaction(context.Background(), tx, key))
	return tx
}

func TestBroadcastTx_Rejected(t *testing.T) {
	backend := &fakeBackend{
		broadcastFn: func([]byte) (*BroadcastResult, error) {
			return &BroadcastResult{Code: 32, RawLog: "account sequence mismatch"}, nil
		},
	}
	c := newTestClient(t, backend, nil)

	_, err := c.BroadcastTx(context.Background(), signedTestTx(t, c, testKey(t)))

	var rejected *BroadcastRejectedError
	require.ErrorAs(t, err, &rejected)
	require.Equal(t, uint32(32), rejected.Code)
	require.Contains(t, rejected.Error(), "account sequence mismatch")
	// A rejection is an answer, not a transport failure: no broadcast retry.
	require.Equal(t, 1, backend.broadcastCalls)
	require.Equal(t, 0, backend.txByHashCalls)
}

func TestBroadcastTx_RetriesTransportFailure(t *testing.T) {
	backend := &fakeBackend{}
	backend.broadcastFn = func([]byte) (*BroadcastResult, error) {
		if backend.broadcastCalls == 1 {
			return nil, fmt.Errorf("connection refused")
		}
		return &BroadcastResult{TxHash: "AB12CD", Code: CodeOK}, nil
	}
	c := newTestClient(t, backend, nil)

	res, err := c.BroadcastTx(context.Background(), signedTestTx(t, c, testKey(t)))
	require.NoError(t, err)
	require.Equal(t, "AB12CD", res.TxHash)
	require.Equal(t, 2, backend.broadcastCalls)
}

func TestBroadcastTx_PollsUntilIndexed(t *testing.T) {
	backend := &fakeBackend{}
	backend.txByHashFn = func(hash string) (*TxResult, error) {
		if backend.txByHashCalls < 3 {
			return nil, nil
		}
		return &TxResult{TxHash: hash, Height: 100, Code: CodeOK}, nil
	}
	c := newTestClient(t, backend, nil)

	res, err := c.BroadcastTx(context.Background(), signedTestTx(t, c, testKey(t)))
	require.NoError(t, err)
	require.Equal(t, int64(100), res.Height)
	require.Equal(t, 3, backend.txByHashCalls)
}

func TestBroadcastTx_ConfirmTimeout(t *testing.T) {
	backend := &fakeBackend{
		txByHashFn: func(string) (*TxResult, error) { return nil, nil },
	}
	c := newTestClient(t, backend, nil)

	_, err := c.BroadcastTx(context.Background(), signedTestTx(t, c, testKey(t)))

	var timeout *ConfirmTimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, "AB12CD", timeout.TxHash)
	require.Equal(t, 3, backend.txByHashCalls)
}
