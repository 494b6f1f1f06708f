package cli

import (
	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/output"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// newChainCmd builds the chain command group.
func newChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "List and switch chains",
	}

	cmd.AddCommand(
		newChainListCmd(),
		newChainSwitchCmd(),
		newChainNetworkCmd(),
	)
	return cmd
}

func newChainListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available chains",
		RunE: func(_ *cobra.Command, _ []string) error {
			active := svc.ActiveChain()
			chains := svc.Chains()

			if formatter.IsJSON() {
				out := make([]map[string]any, 0, len(chains))
				for _, id := range chains {
					out = append(out, map[string]any{
						"chain":  id.String(),
						"active": id == active,
						"native": id.IsNative(),
					})
				}
				return formatter.Print(out)
			}

			tbl := output.NewTable("CHAIN", "ACTIVE")
			for _, id := range chains {
				marker := ""
				if id == active {
					marker = "*"
				}
				tbl.AddRow(id.String(), marker)
			}
			return tbl.Render(formatter.Writer())
		},
	}
}

func newChainSwitchCmd() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "switch <chain>",
		Short: "Select the active chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := chain.ID(args[0])

			done, err := svc.SwitchChain(cmd.Context(), id)
			if err != nil {
				return err
			}

			// The native chain refreshes token balances in the background;
			// --wait surfaces that refresh's outcome instead of detaching.
			if wait {
				if err := <-done; err != nil {
					return err
				}
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"activeChain": id.String()})
			}
			output.Successf("Switched to %s", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the follow-up balance refresh")
	return cmd
}

func newChainNetworkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "network <testnet|mainnet>",
		Short: "Select the iTani network mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var mode chain.NetworkMode
			switch args[0] {
			case string(chain.Testnet):
				mode = chain.Testnet
			case string(chain.Mainnet):
				mode = chain.Mainnet
			default:
				return walleterr.WithSuggestion(
					walleterr.WithDetails(walleterr.ErrInvalidInput, map[string]string{
						"mode": args[0],
					}),
					"use 'testnet' or 'mainnet'",
				)
			}

			svc.SetNetworkMode(mode)

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"networkMode": string(mode)})
			}
			output.Successf("iTani network set to %s", mode)
			return nil
		},
	}
}
