// Package grpc adapts a Cosmos SDK gRPC node to the ledger client's backend
// interfaces.
package grpc

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	"github.com/cosmos/cosmos-sdk/client/grpc/cmtservice"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	ledgertypes "github.com/altuslabsxyz/cosmos-ledger/pkg/ledger/types"
)

// Client talks to the node over gRPC using the SDK's generated service
// clients.
type Client struct {
	conn *grpc.ClientConn
	cdc  *codec.ProtoCodec
	auth authtypes.QueryClient
	bank banktypes.QueryClient
	tx   txtypes.ServiceClient
	wasm wasmtypes.QueryClient
	cmt  cmtservice.ServiceClient
}

// New creates a gRPC backend for the given target, e.g. "localhost:9090".
func New(target string, secure bool) (*Client, error) {
	creds := insecure.NewCredentials()
	if secure {
		creds = credentials.NewTLS(&tls.Config{})
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("connecting to node: %w", err)
	}

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)

	return &Client{
		conn: conn,
		cdc:  codec.NewProtoCodec(registry),
		auth: authtypes.NewQueryClient(conn),
		bank: banktypes.NewQueryClient(conn),
		tx:   txtypes.NewServiceClient(conn),
		wasm: wasmtypes.NewQueryClient(conn),
		cmt:  cmtservice.NewServiceClient(conn),
	}, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Account queries the signing metadata for address. Anything other than a
// base account cannot be used for signing.
func (c *Client) Account(ctx context.Context, address string) (*ledgertypes.Account, error) {
	res, err := c.auth.Account(ctx, &authtypes.QueryAccountRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}
	if res.Account == nil || !strings.HasSuffix(res.Account.TypeUrl, "auth.v1beta1.BaseAccount") {
		return nil, fmt.Errorf("unexpected account type %q", res.Account.GetTypeUrl())
	}

	var account authtypes.BaseAccount
	if err := c.cdc.Unmarshal(res.Account.Value, &account); err != nil {
		return nil, fmt.Errorf("unpacking account: %w", err)
	}
	return &ledgertypes.Account{
		Address:       account.Address,
		AccountNumber: account.AccountNumber,
		Sequence:      account.Sequence,
	}, nil
}

// Balance returns the amount address holds of denom.
func (c *Client) Balance(ctx context.Context, address, denom string) (sdk.Coin, error) {
	res, err := c.bank.Balance(ctx, &banktypes.QueryBalanceRequest{Address: address, Denom: denom})
	if err != nil {
		return sdk.Coin{}, fmt.Errorf("querying balance: %w", err)
	}
	if res.Balance == nil {
		return sdk.NewInt64Coin(denom, 0), nil
	}
	return *res.Balance, nil
}

// AllBalances returns every coin address holds.
func (c *Client) AllBalances(ctx context.Context, address string) (sdk.Coins, error) {
	res, err := c.bank.AllBalances(ctx, &banktypes.QueryAllBalancesRequest{Address: address})
	if err != nil {
		return nil, fmt.Errorf("querying balances: %w", err)
	}
	return res.Balances, nil
}

// BroadcastSync submits signed transaction bytes in sync mode.
func (c *Client) BroadcastSync(ctx context.Context, txBytes []byte) (*ledgertypes.BroadcastResult, error) {
	res, err := c.tx.BroadcastTx(ctx, &txtypes.BroadcastTxRequest{
		TxBytes: txBytes,
		Mode:    txtypes.BroadcastMode_BROADCAST_MODE_SYNC,
	})
	if err != nil {
		return nil, fmt.Errorf("broadcasting tx: %w", err)
	}
	return &ledgertypes.BroadcastResult{
		TxHash: res.TxResponse.TxHash,
		Code:   res.TxResponse.Code,
		RawLog: res.TxResponse.RawLog,
	}, nil
}

// TxByHash fetches the confirmed transaction record, or (nil, nil) while the
// transaction is not yet indexed.
func (c *Client) TxByHash(ctx context.Context, hash string) (*ledgertypes.TxResult, error) {
	res, err := c.tx.GetTx(ctx, &txtypes.GetTxRequest{Hash: hash})
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting tx: %w", err)
	}

	r := res.TxResponse
	return &ledgertypes.TxResult{
		TxHash:    r.TxHash,
		Height:    r.Height,
		Code:      r.Code,
		RawLog:    r.RawLog,
		GasWanted: r.GasWanted,
		GasUsed:   r.GasUsed,
		Timestamp: r.Timestamp,
	}, nil
}

// SmartContractState runs a read-only smart query and returns the contract's
// JSON answer.
func (c *Client) SmartContractState(ctx context.Context, contractAddr string, queryData []byte) ([]byte, error) {
	res, err := c.wasm.SmartContractState(ctx, &wasmtypes.QuerySmartContractStateRequest{
		Address:   contractAddr,
		QueryData: queryData,
	})
	if err != nil {
		return nil, fmt.Errorf("querying contract state: %w", err)
	}
	return res.Data, nil
}

// NetworkID returns the network id the node advertises.
func (c *Client) NetworkID(ctx context.Context) (string, error) {
	res, err := c.cmt.GetNodeInfo(ctx, &cmtservice.GetNodeInfoRequest{})
	if err != nil {
		return "", fmt.Errorf("getting node info: %w", err)
	}
	return res.DefaultNodeInfo.Network, nil
}
