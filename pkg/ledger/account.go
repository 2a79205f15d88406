package ledger

import (
	"context"
	"sync"
)

// accountDirectory caches account numbers per address. Account numbers never
// change for the lifetime of an account, so entries are never invalidated.
// Sequence numbers are deliberately NOT cached here: every transaction build
// re-queries the node so the signed sequence is as fresh as possible.
type accountDirectory struct {
	mu      sync.Mutex
	numbers map[string]uint64
}

func newAccountDirectory() *accountDirectory {
	return &accountDirectory{numbers: make(map[string]uint64)}
}

func (d *accountDirectory) lookup(address string) (uint64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.numbers[address]
	return n, ok
}

func (d *accountDirectory) store(address string, number uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.numbers[address] = number
}

// QueryAccount fetches signing metadata for address, retrying transport
// failures at the message-level budget. The account number is cached for
// later ensureAccountNumber calls.
func (c *Client) QueryAccount(ctx context.Context, address string) (*Account, error) {
	acc, err := retryCall(ctx, c.logger, retryBudget{
		name:       "querying account data",
		attempts:   c.cfg.TotalMsgRetries,
		interval:   c.cfg.MsgRetryInterval,
		logRetries: true,
	}, func(ctx context.Context) (*Account, error) {
		return c.backend.Account(ctx, address)
	})
	if err != nil {
		return nil, err
	}
	c.accounts.store(address, acc.AccountNumber)
	return acc, nil
}

// ensureAccountNumber resolves the signer's account number, querying the node
// only when the directory has no entry yet. Lookups can fail when the address
// was never funded; signing must not proceed in that case.
func (c *Client) ensureAccountNumber(ctx context.Context, key *Key) (uint64, error) {
	if n, ok := c.accounts.lookup(key.Address()); ok {
		return n, nil
	}
	acc, err := c.QueryAccount(ctx, key.Address())
	if err != nil {
		return 0, err
	}
	return acc.AccountNumber, nil
}
