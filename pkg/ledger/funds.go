package ledger

import (
	"context"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SendFunds transfers coins from key's address to toAddress and waits for
// confirmation. Transfers run single-attempt at the workflow level: the
// inner broadcast and confirmation budgets are enough for so simple an
// operation.
func (c *Client) SendFunds(ctx context.Context, key *Key, toAddress string, amount sdk.Coins, opts ...CallOption) (*TxResult, error) {
	co := c.callOptions(1, opts)

	msg, err := BuildSendMsg(key.Address(), toAddress, amount)
	if err != nil {
		return nil, err
	}
	return c.sendSingleSigner(ctx, msg, key, co.gasLimit)
}

// GetBalance returns the amount address holds of denom, retrying transport
// failures at the message-level budget.
func (c *Client) GetBalance(ctx context.Context, address, denom string) (sdkmath.Int, error) {
	coin, err := retryCall(ctx, c.logger, retryBudget{
		name:       "getting balance",
		attempts:   c.cfg.TotalMsgRetries,
		interval:   c.cfg.MsgRetryInterval,
		logRetries: true,
	}, func(ctx context.Context) (*sdk.Coin, error) {
		coin, err := c.backend.Balance(ctx, address, denom)
		if err != nil {
			return nil, err
		}
		return &coin, nil
	})
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return coin.Amount, nil
}

// GetBalances returns every coin address holds.
func (c *Client) GetBalances(ctx context.Context, address string) (sdk.Coins, error) {
	coins, err := retryCall(ctx, c.logger, retryBudget{
		name:       "getting balances",
		attempts:   c.cfg.TotalMsgRetries,
		interval:   c.cfg.MsgRetryInterval,
		logRetries: true,
	}, func(ctx context.Context) (*sdk.Coins, error) {
		balances, err := c.backend.AllBalances(ctx, address)
		if err != nil {
			return nil, err
		}
		return &balances, nil
	})
	if err != nil {
		return nil, err
	}
	return *coins, nil
}

// EnsureFunds tops up the given addresses from the faucet when one is
// configured, otherwise from the validator key. amounts is required for the
// validator branch.
func (c *Client) EnsureFunds(ctx context.Context, addresses []string, amounts sdk.Coins) error {
	switch {
	case c.faucet != nil:
		return c.refillFromFaucet(ctx, addresses)
	case c.cfg.ValidatorKey != nil:
		if amounts.Empty() {
			return fmt.Errorf("amounts are required for validator refill")
		}
		return c.refillFromValidator(ctx, addresses, amounts)
	default:
		return fmt.Errorf("faucet or validator was not specified, cannot refill addresses")
	}
}

// refillFromFaucet polls each address's balance and requests a claim while it
// sits below the threshold. The below-threshold loop has no attempt cap --
// it ends only when the balance crosses the threshold or ctx is cancelled.
// Transport failures do consume a bounded error budget.
func (c *Client) refillFromFaucet(ctx context.Context, addresses []string) error {
	threshold := sdkmath.NewInt(DefaultFaucetThreshold)

	for _, address := range addresses {
		failures := 0
		for {
			balances, err := c.GetBalances(ctx, address)
			if err != nil {
				failures++
				if failures >= c.cfg.TotalMsgRetries {
					return fmt.Errorf("refilling %s from faucet: %w", address, err)
				}
				c.logger.Error("failed to refill balance from faucet",
					"address", address,
					"interval", c.cfg.FaucetRetryInterval.String(),
					"err", err,
				)
				if serr := sleepCtx(ctx, c.cfg.FaucetRetryInterval); serr != nil {
					return serr
				}
				continue
			}

			balance := sdkmath.ZeroInt()
			if len(balances) > 0 {
				balance = balances[0].Amount
			}

			if balance.LT(threshold) {
				c.logger.Info("refilling balance from faucet", "address", address, "balance", balance.String())
				status, err := c.faucet.Claim(ctx, address)
				if err != nil {
					c.logger.Error("faucet claim failed", "address", address, "err", err)
				} else if status != http.StatusOK {
					c.logger.Error("faucet claim refused", "address", address, "status", status)
				}
				// Give the faucet transaction time to land before re-checking.
				if serr := sleepCtx(ctx, c.cfg.FaucetRetryInterval); serr != nil {
					return serr
				}
				continue
			}

			c.logger.Info("balance is sufficient", "address", address, "balance", balance.String())
			break
		}
	}
	return nil
}

// refillFromValidator sends the required amounts to each address from the
// validator account. Intended for local nets where the validator holds the
// supply.
func (c *Client) refillFromValidator(ctx context.Context, addresses []string, amounts sdk.Coins) error {
	for _, address := range addresses {
		if _, err := c.SendFunds(ctx, c.cfg.ValidatorKey, address, amounts); err != nil {
			return fmt.Errorf("refilling %s from validator: %w", address, err)
		}
	}
	return nil
}
