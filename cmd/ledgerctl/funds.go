package main

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/cosmos-ledger/pkg/ledger"
)

// NewEnsureFundsCmd creates the ensure-funds subcommand.
func NewEnsureFundsCmd() *cobra.Command {
	var amountsStr string

	cmd := &cobra.Command{
		Use:   "ensure-funds <address>...",
		Short: "Top up addresses from the faucet or the signing key",
		Long: `Top up each address until it holds a working balance.

With --faucet configured, claims are requested from the faucet and the
balance is polled until it crosses the threshold. Without a faucet, --amounts
is required and the coins are sent from the signing key.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var amounts sdk.Coins
			if amountsStr != "" {
				parsed, err := sdk.ParseCoinsNormalized(amountsStr)
				if err != nil {
					return fmt.Errorf("parsing amounts %q: %w", amountsStr, err)
				}
				amounts = parsed
			}

			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			// Without a faucet the signing key acts as the funding source.
			if faucetURL == "" {
				key, err := loadSigningKey()
				if err != nil {
					return err
				}
				cfg := client.Config()
				cfg.ValidatorKey = key
				client, err = ledger.New(cfg, logger)
				if err != nil {
					return err
				}
			}

			if err := client.EnsureFunds(cmd.Context(), args, amounts); err != nil {
				return err
			}

			color.Green("✓ all %d addresses funded", len(args))
			return nil
		},
	}

	cmd.Flags().StringVar(&amountsStr, "amounts", "", "Coins to send per address when no faucet is configured")
	return cmd
}
