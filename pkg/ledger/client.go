package ledger

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/cosmos-ledger/internal/transport/faucet"
	grpctransport "github.com/altuslabsxyz/cosmos-ledger/internal/transport/grpc"
	"github.com/altuslabsxyz/cosmos-ledger/internal/transport/rest"
)

// Client deploys, instantiates and invokes contracts on a Cosmos SDK chain,
// transfers funds and runs read-only queries, with layered retry budgets
// across the build/sign/broadcast/confirm pipeline.
//
// A Client is safe for concurrent use. Two concurrent transactions from the
// same signer may still race on the sequence number; the loser's broadcast is
// rejected and the workflow-level retry rebuilds it with a fresh sequence.
type Client struct {
	cfg      Config
	logger   log.Logger
	backend  Backend
	faucet   FaucetClient
	accounts *accountDirectory
}

// New connects a Client to the node named in cfg. Exactly one of
// cfg.RESTEndpoint and cfg.GRPCEndpoint must be set.
func New(cfg Config, logger log.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var backend Backend
	if cfg.RESTEndpoint != "" {
		backend = rest.New(cfg.RESTEndpoint)
	} else {
		b, err := grpctransport.New(cfg.GRPCEndpoint, cfg.GRPCSecure)
		if err != nil {
			return nil, fmt.Errorf("connecting to %s: %w", cfg.GRPCEndpoint, err)
		}
		backend = b
	}

	var faucetClient FaucetClient
	if cfg.FaucetURL != "" {
		faucetClient = faucet.New(cfg.FaucetURL)
	}

	return newClient(cfg, logger, backend, faucetClient), nil
}

// NewWithBackend builds a Client on a caller-supplied backend. Used by tests
// and by applications that bring their own transport.
func NewWithBackend(cfg Config, logger log.Logger, backend Backend, faucetClient FaucetClient) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.ChainID == "" {
		return nil, fmt.Errorf("chain id is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	return newClient(cfg, logger, backend, faucetClient), nil
}

func newClient(cfg Config, logger log.Logger, backend Backend, faucetClient FaucetClient) *Client {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Client{
		cfg:      cfg,
		logger:   logger.With("module", "ledger"),
		backend:  backend,
		faucet:   faucetClient,
		accounts: newAccountDirectory(),
	}
}

// Config returns the effective configuration, defaults applied.
func (c *Client) Config() Config { return c.cfg }

// CheckAvailability makes one best-effort round trip and verifies the node
// advertises the configured chain id. Any failure, wrong id included, means
// the node is unusable; there is nothing to retry.
func (c *Client) CheckAvailability(ctx context.Context) error {
	endpoint := c.cfg.RESTEndpoint
	if endpoint == "" {
		endpoint = c.cfg.GRPCEndpoint
	}
	network, err := c.backend.NetworkID(ctx)
	if err != nil {
		return &NodeUnavailableError{Endpoint: endpoint, Cause: err}
	}
	if network != c.cfg.ChainID {
		return &NodeUnavailableError{
			Endpoint: endpoint,
			Cause:    fmt.Errorf("bad chain id: node reports %q, expected %q", network, c.cfg.ChainID),
		}
	}
	return nil
}

// CallOption tweaks a single workflow invocation.
type CallOption func(*callOptions)

type callOptions struct {
	funds    sdk.Coins
	gasLimit uint64
	retries  int
}

func (c *Client) callOptions(defaultRetries int, opts []CallOption) callOptions {
	co := callOptions{gasLimit: DefaultGasLimit, retries: defaultRetries}
	for _, opt := range opts {
		opt(&co)
	}
	return co
}

// WithFunds attaches coins to an instantiate or execute message.
func WithFunds(funds sdk.Coins) CallOption {
	return func(o *callOptions) { o.funds = funds }
}

// WithGasLimit overrides the default gas limit for one call.
func WithGasLimit(gasLimit uint64) CallOption {
	return func(o *callOptions) { o.gasLimit = gasLimit }
}

// WithRetries overrides the workflow's retry budget for one call.
func WithRetries(retries int) CallOption {
	return func(o *callOptions) {
		if retries > 0 {
			o.retries = retries
		}
	}
}
