package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccount_BaseAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/auth/v1beta1/accounts/wasm1signer", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"account": {
				"@type": "/cosmos.auth.v1beta1.BaseAccount",
				"address": "wasm1signer",
				"account_number": "42",
				"sequence": "7"
			}
		}`))
	}))
	defer server.Close()

	acc, err := New(server.URL).Account(context.Background(), "wasm1signer")
	require.NoError(t, err)
	require.Equal(t, "wasm1signer", acc.Address)
	require.Equal(t, uint64(42), acc.AccountNumber)
	require.Equal(t, uint64(7), acc.Sequence)
}

func TestAccount_ModuleAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"account": {
				"@type": "/cosmos.vesting.v1beta1.ContinuousVestingAccount",
				"base_account": {
					"address": "wasm1vested",
					"account_number": "9",
					"sequence": "2"
				}
			}
		}`))
	}))
	defer server.Close()

	acc, err := New(server.URL).Account(context.Background(), "wasm1vested")
	require.NoError(t, err)
	require.Equal(t, "wasm1vested", acc.Address)
	require.Equal(t, uint64(9), acc.AccountNumber)
	require.Equal(t, uint64(2), acc.Sequence)
}

func TestAccount_UnexpectedType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"account": {"@type": "/custom.Account"}}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Account(context.Background(), "wasm1odd")
	require.Error(t, err)
	require.Contains(t, err.Error(), `unexpected account type "/custom.Account"`)
}

func TestAccount_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code": 5, "message": "account not found"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Account(context.Background(), "wasm1missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "account wasm1missing not found")
}

func TestAccount_EmptyAddress(t *testing.T) {
	_, err := New("http://localhost:1317").Account(context.Background(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "address is required")
}

func TestBalance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/bank/v1beta1/balances/wasm1holder/by_denom", r.URL.Path)
		require.Equal(t, "stake", r.URL.Query().Get("denom"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": {"denom": "stake", "amount": "1000000"}}`))
	}))
	defer server.Close()

	coin, err := New(server.URL).Balance(context.Background(), "wasm1holder", "stake")
	require.NoError(t, err)
	require.Equal(t, "stake", coin.Denom)
	require.Equal(t, int64(1000000), coin.Amount.Int64())
}

func TestBalance_MissingIsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"balance": {}}`))
	}))
	defer server.Close()

	coin, err := New(server.URL).Balance(context.Background(), "wasm1empty", "stake")
	require.NoError(t, err)
	require.Equal(t, "stake", coin.Denom)
	require.True(t, coin.Amount.IsZero())
}

func TestAllBalances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cosmos/bank/v1beta1/balances/wasm1holder", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"balances": [
				{"denom": "atom", "amount": "55"},
				{"denom": "stake", "amount": "1000000"}
			]
		}`))
	}))
	defer server.Close()

	coins, err := New(server.URL).AllBalances(context.Background(), "wasm1holder")
	require.NoError(t, err)
	require.Len(t, coins, 2)
	require.Equal(t, int64(55), coins.AmountOf("atom").Int64())
	require.Equal(t, int64(1000000), coins.AmountOf("stake").Int64())
}
