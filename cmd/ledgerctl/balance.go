package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewBalanceCmd creates the balance subcommand.
func NewBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Show an address's balance of the configured denom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			amount, err := client.GetBalance(cmd.Context(), args[0], denom)
			if err != nil {
				return err
			}

			fmt.Printf("%s%s\n", amount.String(), denom)
			return nil
		},
	}
}

// NewBalancesCmd creates the balances subcommand.
func NewBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances <address>",
		Short: "Show every coin an address holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			coins, err := client.GetBalances(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if coins.Empty() {
				fmt.Println("no balances")
				return nil
			}
			for _, coin := range coins {
				fmt.Printf("%s%s\n", coin.Amount.String(), coin.Denom)
			}
			return nil
		},
	}
}
