package ledger

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/altuslabsxyz/cosmos-ledger/pkg/ledger/types"
)

// Aliases so callers of this package rarely need to import the types package
// directly.
type (
	// Account is the per-address signing metadata tracked by the chain.
	Account = ledgertypes.Account

	// BroadcastResult is the node's synchronous acknowledgment of a broadcast.
	BroadcastResult = ledgertypes.BroadcastResult

	// TxResult is the record of a transaction after inclusion and processing.
	TxResult = ledgertypes.TxResult
)

// AccountQuery resolves signing metadata for an address.
type AccountQuery interface {
	Account(ctx context.Context, address string) (*Account, error)
}

// BankQuery reads native-asset balances.
type BankQuery interface {
	Balance(ctx context.Context, address, denom string) (sdk.Coin, error)
	AllBalances(ctx context.Context, address string) (sdk.Coins, error)
}

// TxService submits signed transactions and fetches their records.
// TxByHash returns (nil, nil) while the transaction is not yet indexed.
type TxService interface {
	BroadcastSync(ctx context.Context, txBytes []byte) (*BroadcastResult, error)
	TxByHash(ctx context.Context, hash string) (*TxResult, error)
}

// WasmQuery performs read-only smart queries against a contract.
type WasmQuery interface {
	SmartContractState(ctx context.Context, contractAddr string, queryData []byte) ([]byte, error)
}

// NodeInfo reports the network id the node advertises.
type NodeInfo interface {
	NetworkID(ctx context.Context) (string, error)
}

// Backend bundles the node-facing capabilities a Client needs. The REST and
// gRPC transport adapters both satisfy it.
type Backend interface {
	AccountQuery
	BankQuery
	TxService
	WasmQuery
	NodeInfo
}

// FaucetClient requests a testnet top-up for an address and reports the
// HTTP status of the claim.
type FaucetClient interface {
	Claim(ctx context.Context, address string) (int, error)
}
