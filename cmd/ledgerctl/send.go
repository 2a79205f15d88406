package main

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// NewSendCmd creates the send subcommand.
func NewSendCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "send <to-address> <amount>",
		Short: "Transfer coins to an address",
		Long: `Transfer coins from the signing key's address to another address.

The amount uses the standard coin notation, e.g. "1000stake" or
"500uatom,1000stake".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toAddress := args[0]
			amount, err := sdk.ParseCoinsNormalized(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			key, err := loadSigningKey()
			if err != nil {
				return err
			}

			if !skipConfirm {
				ok, err := confirmSend(key.Address(), toAddress, amount)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("aborted")
					return nil
				}
			}

			client, err := newLedgerClient()
			if err != nil {
				return err
			}

			res, err := client.SendFunds(cmd.Context(), key, toAddress, amount, callOpts()...)
			if err != nil {
				return err
			}

			color.Green("✓ sent %s to %s", amount.String(), toAddress)
			fmt.Printf("  tx hash: %s\n  height:  %d\n", res.TxHash, res.Height)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirmSend(from, to string, amount sdk.Coins) (bool, error) {
	fmt.Printf("\nSending:\n")
	fmt.Printf("  From:   %s\n", from)
	fmt.Printf("  To:     %s\n", to)
	fmt.Printf("  Amount: %s\n", amount.String())
	fmt.Println()

	prompt := promptui.Prompt{
		Label:     "Proceed",
		IsConfirm: true,
		Default:   "y",
	}

	_, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
