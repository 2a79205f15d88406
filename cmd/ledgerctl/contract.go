package main

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/cosmos-ledger/pkg/ledger"
)

// NewDeployCmd creates the deploy subcommand.
func NewDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <wasm-file>",
		Short: "Store contract bytecode on chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := loadSigningKey()
			if err != nil {
				return err
			}
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			codeID, res, err := client.DeployContractFile(cmd.Context(), key, args[0], callOpts()...)
			if err != nil {
				return err
			}

			color.Green("✓ contract code stored")
			fmt.Printf("  code id:  %d\n  tx hash:  %s\n  gas used: %d\n", codeID, res.TxHash, res.GasUsed)
			return nil
		},
	}
}

// NewInstantiateCmd creates the instantiate subcommand.
func NewInstantiateCmd() *cobra.Command {
	var label string
	var fundsStr string

	cmd := &cobra.Command{
		Use:   "instantiate <code-id> <init-json>",
		Short: "Create a contract instance from stored code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var codeID uint64
			if _, err := fmt.Sscanf(args[0], "%d", &codeID); err != nil {
				return fmt.Errorf("parsing code id %q: %w", args[0], err)
			}
			initMsg, err := parseJSONArg(args[1])
			if err != nil {
				return err
			}
			opts, err := fundsOpts(fundsStr)
			if err != nil {
				return err
			}

			key, err := loadSigningKey()
			if err != nil {
				return err
			}
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			address, res, err := client.InstantiateContract(cmd.Context(), key, codeID, initMsg, label, opts...)
			if err != nil {
				return err
			}

			color.Green("✓ contract instantiated")
			fmt.Printf("  address: %s\n  tx hash: %s\n", address, res.TxHash)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "contract", "Human-readable contract label")
	cmd.Flags().StringVar(&fundsStr, "funds", "", "Coins to send with the message, e.g. 1000stake")
	return cmd
}

// NewExecuteCmd creates the execute subcommand.
func NewExecuteCmd() *cobra.Command {
	var fundsStr string

	cmd := &cobra.Command{
		Use:   "execute <contract-address> <msg-json>",
		Short: "Invoke a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			execMsg, err := parseJSONArg(args[1])
			if err != nil {
				return err
			}
			opts, err := fundsOpts(fundsStr)
			if err != nil {
				return err
			}

			key, err := loadSigningKey()
			if err != nil {
				return err
			}
			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			res, code, err := client.ExecuteContract(cmd.Context(), key, args[0], execMsg, opts...)
			if err != nil {
				return err
			}
			if code != ledger.CodeOK {
				color.Red("✗ contract returned code %d", code)
				fmt.Printf("  tx hash: %s\n  raw log: %s\n", res.TxHash, res.RawLog)
				return fmt.Errorf("execution failed with code %d", code)
			}

			color.Green("✓ contract executed")
			fmt.Printf("  tx hash:  %s\n  gas used: %d\n", res.TxHash, res.GasUsed)
			return nil
		},
	}

	cmd.Flags().StringVar(&fundsStr, "funds", "", "Coins to send with the message, e.g. 1000stake")
	return cmd
}

// NewQueryCmd creates the query subcommand.
func NewQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <contract-address> <msg-json>",
		Short: "Run a read-only smart query against a contract",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			queryMsg, err := parseJSONArg(args[1])
			if err != nil {
				return err
			}

			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			state, err := client.QueryContractState(cmd.Context(), args[0], queryMsg)
			if err != nil {
				return err
			}

			fmt.Println(string(state))
			return nil
		},
	}
}

func parseJSONArg(arg string) (json.RawMessage, error) {
	if !json.Valid([]byte(arg)) {
		return nil, fmt.Errorf("invalid JSON: %s", arg)
	}
	return json.RawMessage(arg), nil
}

func fundsOpts(fundsStr string) ([]ledger.CallOption, error) {
	opts := callOpts()
	if fundsStr == "" {
		return opts, nil
	}
	funds, err := sdk.ParseCoinsNormalized(fundsStr)
	if err != nil {
		return nil, fmt.Errorf("parsing funds %q: %w", fundsStr, err)
	}
	return append(opts, ledger.WithFunds(funds)), nil
}
