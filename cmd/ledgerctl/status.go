package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the node is reachable and serves the configured chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			if err := client.CheckAvailability(cmd.Context()); err != nil {
				color.Red("✗ node is not available")
				return err
			}

			color.Green("✓ node is available (chain-id %s)", chainID)
			return nil
		},
	}
}
