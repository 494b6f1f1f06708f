package cli

import (
	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/output"
)

// newSendCmd builds the send command.
func newSendCmd() *cobra.Command {
	var to, amount, tokenSymbol, memo string

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send from the active account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txID, err := svc.SendTransaction(cmd.Context(), to, amount, tokenSymbol, memo)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"txId": txID})
			}
			output.Successf("Transaction submitted: %s", txID)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to send")
	cmd.Flags().StringVar(&tokenSymbol, "token", "", "token symbol (native coin when omitted)")
	cmd.Flags().StringVar(&memo, "memo", "", "optional memo")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
