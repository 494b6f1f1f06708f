package cli

import (
	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/output"
)

// newBalanceCmd builds the balance command group.
func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show and refresh balances",
	}

	cmd.AddCommand(
		newBalanceShowCmd(),
		newBalanceTokensCmd(),
	)
	return cmd
}

func newBalanceShowCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active account's native balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			acct, err := svc.ActiveAccount()
			if err != nil {
				return err
			}

			balance := acct.CachedBalance
			if !cached {
				if balance, err = svc.RefreshBalance(cmd.Context()); err != nil {
					return err
				}
			}
			if balance == "" {
				balance = "0"
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{
					"address": acct.Address,
					"chain":   acct.ChainID.String(),
					"balance": balance,
				})
			}
			return formatter.Printf("%s (%s): %s\n", acct.Address, acct.ChainID, balance)
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "show the cached balance without refreshing")
	return cmd
}

func newBalanceTokensCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Show native token balances on the iTani chain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cached {
				if _, err := svc.RefreshTokenBalances(cmd.Context()); err != nil {
					return err
				}
			}

			balances, err := svc.TokenBalances()
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				out := make([]map[string]string, 0, len(balances))
				for _, b := range balances {
					out = append(out, map[string]string{
						"symbol":    b.Symbol,
						"raw":       b.RawBalance,
						"formatted": b.Formatted(),
					})
				}
				return formatter.Print(out)
			}

			tbl := output.NewTable("TOKEN", "BALANCE")
			for _, b := range balances {
				tbl.AddRow(b.Symbol, b.Formatted())
			}
			return tbl.Render(formatter.Writer())
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "show cached balances without refreshing")
	return cmd
}
