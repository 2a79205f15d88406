package ledger

import "fmt"

// RetryExhaustedError is returned when an operation kept failing until its
// retry budget ran out. It carries the last underlying cause.
type RetryExhaustedError struct {
	Op       string
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Last }

// BroadcastRejectedError is returned when the node's synchronous broadcast
// acknowledgment carries a non-zero code. The transaction never entered the
// mempool; a stale sequence number is the usual cause, so workflows rebuild
// and resubmit.
type BroadcastRejectedError struct {
	Code   uint32
	RawLog string
}

func (e *BroadcastRejectedError) Error() string {
	return fmt.Sprintf("transaction cannot be broadcast (code %d): %s", e.Code, e.RawLog)
}

// ConfirmTimeoutError is returned when a broadcast was accepted but the
// transaction record never showed up within the confirmation budget.
type ConfirmTimeoutError struct {
	TxHash string
	Last   error
}

func (e *ConfirmTimeoutError) Error() string {
	return fmt.Sprintf("transaction %s was not confirmed in time: %v", e.TxHash, e.Last)
}

func (e *ConfirmTimeoutError) Unwrap() error { return e.Last }

// MalformedResponseError is returned when a confirmed transaction's raw log
// does not contain the expected marker, or cannot be parsed at all.
type MalformedResponseError struct {
	What   string
	RawLog string
	Cause  error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response, %s not found: %s", e.What, e.RawLog)
}

func (e *MalformedResponseError) Unwrap() error { return e.Cause }

// EncodingError is returned by message builders when a payload cannot be
// serialized. Pure encode failures are never retried.
type EncodingError struct {
	Msg   string
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding %s: %v", e.Msg, e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// NodeUnavailableError is returned by CheckAvailability when the node is
// unreachable or advertises a different network id.
type NodeUnavailableError struct {
	Endpoint string
	Cause    error
}

func (e *NodeUnavailableError) Error() string {
	return fmt.Sprintf("ledger node is not available at %s: %v", e.Endpoint, e.Cause)
}

func (e *NodeUnavailableError) Unwrap() error { return e.Cause }

// ErrUnexpectedAccountType is returned when an account query yields something
// other than a base account. Signing cannot proceed, so this is never retried.
var ErrUnexpectedAccountType = fmt.Errorf("unexpected account type")

// ErrMissingAccountNumber is returned when signing is attempted before the
// signer's account number could be resolved.
var ErrMissingAccountNumber = fmt.Errorf("getting account number failed")
