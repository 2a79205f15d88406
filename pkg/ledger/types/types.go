// Package types holds the transport-neutral data model shared by the ledger
// client and its transport adapters.
package types

// Account is the per-address signing metadata tracked by the chain.
type Account struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// BroadcastResult is the node's synchronous acknowledgment of a broadcast.
// A zero Code means the transaction was admitted to the mempool; it says
// nothing about inclusion in a block.
type BroadcastResult struct {
	TxHash string
	Code   uint32
	RawLog string
}

// TxResult is the record of a transaction after inclusion and processing.
// RawLog is the node-defined event payload; a non-zero Code signals an
// application-level failure inside the executed message.
type TxResult struct {
	TxHash    string
	Height    int64
	Code      uint32
	RawLog    string
	GasWanted int64
	GasUsed   int64
	Timestamp string
}
