package ledger

import (
	"fmt"
	"time"
)

// DefaultGasLimit is the gas ceiling applied when a workflow does not supply
// its own. Transactions above this limit are rejected by the node.
const DefaultGasLimit = 3_000_000

// DefaultFaucetThreshold is the minimum balance EnsureFunds tops an address
// up to when no explicit amount is given.
const DefaultFaucetThreshold = 500_000_000

const (
	defaultMsgRetryInterval    = 2 * time.Second
	defaultFailedRetryInterval = 10 * time.Second
	defaultFaucetRetryInterval = 20 * time.Second
	defaultConfirmInterval     = 2 * time.Second
	defaultSendRetries         = 5
	defaultTotalMsgRetries     = 10
	defaultConfirmRetries      = 30
)

// Config carries the connection and retry settings for a Client.
// Exactly one of RESTEndpoint and GRPCEndpoint must be set.
type Config struct {
	// ChainID is the network id the node must advertise.
	ChainID string

	// RESTEndpoint is the gRPC-gateway (LCD) base URL, e.g. "http://localhost:1317".
	RESTEndpoint string

	// GRPCEndpoint is the gRPC target, e.g. "localhost:9090".
	GRPCEndpoint string

	// GRPCSecure enables TLS on the gRPC channel.
	GRPCSecure bool

	// AddressPrefix is the bech32 human-readable prefix of the chain.
	AddressPrefix string

	// FaucetURL enables the faucet branch of EnsureFunds when non-empty.
	FaucetURL string

	// ValidatorKey enables the validator branch of EnsureFunds when set.
	ValidatorKey *Key

	// MsgRetryInterval is the pause between message-level retry attempts.
	MsgRetryInterval time.Duration

	// FailedRetryInterval is the pause between whole-workflow attempts after
	// a rejected broadcast.
	FailedRetryInterval time.Duration

	// FaucetRetryInterval is the pause between faucet top-up rounds.
	FaucetRetryInterval time.Duration

	// ConfirmInterval is the pause between confirmation polls.
	ConfirmInterval time.Duration

	// SendRetries bounds the outer loop of ExecuteContract.
	SendRetries int

	// TotalMsgRetries bounds message-level budgets and the outer loops of
	// DeployContract and InstantiateContract.
	TotalMsgRetries int

	// ConfirmRetries bounds the confirmation poll.
	ConfirmRetries int
}

// withDefaults fills in the zero-valued retry knobs.
func (c Config) withDefaults() Config {
	if c.AddressPrefix == "" {
		c.AddressPrefix = "cosmos"
	}
	if c.MsgRetryInterval == 0 {
		c.MsgRetryInterval = defaultMsgRetryInterval
	}
	if c.FailedRetryInterval == 0 {
		c.FailedRetryInterval = defaultFailedRetryInterval
	}
	if c.FaucetRetryInterval == 0 {
		c.FaucetRetryInterval = defaultFaucetRetryInterval
	}
	if c.ConfirmInterval == 0 {
		c.ConfirmInterval = defaultConfirmInterval
	}
	if c.SendRetries == 0 {
		c.SendRetries = defaultSendRetries
	}
	if c.TotalMsgRetries == 0 {
		c.TotalMsgRetries = defaultTotalMsgRetries
	}
	if c.ConfirmRetries == 0 {
		c.ConfirmRetries = defaultConfirmRetries
	}
	return c
}

// validate rejects configurations that cannot produce a working client.
func (c Config) validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("chain id is required")
	}
	if c.RESTEndpoint != "" && c.GRPCEndpoint != "" {
		return fmt.Errorf("only one node type can be specified")
	}
	if c.RESTEndpoint == "" && c.GRPCEndpoint == "" {
		return fmt.Errorf("no node address specified")
	}
	return nil
}
