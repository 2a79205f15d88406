package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ledgertypes "github.com/altuslabsxyz/cosmos-ledger/pkg/ledger/types"
)

// accountWrapper handles both base and module account shapes; module accounts
// nest the signing metadata under base_account.
type accountWrapper struct {
	Type          string `json:"@type"`
	Address       string `json:"address"`
	AccountNumber string `json:"account_number"`
	Sequence      string `json:"sequence"`

	BaseAccount *struct {
		Address       string `json:"address"`
		AccountNumber string `json:"account_number"`
		Sequence      string `json:"sequence"`
	} `json:"base_account"`
}

// Account queries the signing metadata for address.
func (c *Client) Account(ctx context.Context, address string) (*ledgertypes.Account, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}

	body, err := c.get(ctx, "/cosmos/auth/v1beta1/accounts/"+address)
	if err == errNotFound {
		return nil, fmt.Errorf("account %s not found", address)
	}
	if err != nil {
		return nil, err
	}

	var resp struct {
		Account accountWrapper `json:"account"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing account response: %w", err)
	}
	return parseAccount(&resp.Account)
}

func parseAccount(wrapper *accountWrapper) (*ledgertypes.Account, error) {
	address, accountNumStr, seqStr := wrapper.Address, wrapper.AccountNumber, wrapper.Sequence
	if wrapper.BaseAccount != nil {
		address = wrapper.BaseAccount.Address
		accountNumStr = wrapper.BaseAccount.AccountNumber
		seqStr = wrapper.BaseAccount.Sequence
	}
	if accountNumStr == "" {
		return nil, fmt.Errorf("unexpected account type %q", wrapper.Type)
	}

	accountNumber, err := strconv.ParseUint(accountNumStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing account number: %w", err)
	}
	sequence, err := strconv.ParseUint(seqStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing sequence: %w", err)
	}

	return &ledgertypes.Account{
		Address:       address,
		AccountNumber: accountNumber,
		Sequence:      sequence,
	}, nil
}

type coinJSON struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

func (c coinJSON) toCoin() (sdk.Coin, error) {
	amount, ok := sdkmath.NewIntFromString(c.Amount)
	if !ok {
		return sdk.Coin{}, fmt.Errorf("parsing amount %q", c.Amount)
	}
	return sdk.Coin{Denom: c.Denom, Amount: amount}, nil
}

// Balance returns the amount address holds of denom. A missing balance is a
// zero coin, not an error.
func (c *Client) Balance(ctx context.Context, address, denom string) (sdk.Coin, error) {
	path := fmt.Sprintf("/cosmos/bank/v1beta1/balances/%s/by_denom?denom=%s", address, denom)
	body, err := c.get(ctx, path)
	if err != nil {
		return sdk.Coin{}, err
	}

	var resp struct {
		Balance coinJSON `json:"balance"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return sdk.Coin{}, fmt.Errorf("parsing balance response: %w", err)
	}
	if resp.Balance.Amount == "" {
		return sdk.Coin{Denom: denom, Amount: sdkmath.ZeroInt()}, nil
	}
	return resp.Balance.toCoin()
}

// AllBalances returns every coin address holds.
func (c *Client) AllBalances(ctx context.Context, address string) (sdk.Coins, error) {
	body, err := c.get(ctx, "/cosmos/bank/v1beta1/balances/"+address)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Balances []coinJSON `json:"balances"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing balances response: %w", err)
	}

	coins := make(sdk.Coins, 0, len(resp.Balances))
	for _, b := range resp.Balances {
		coin, err := b.toCoin()
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}
	return coins, nil
}
