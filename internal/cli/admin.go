package cli

import (
	"encoding/base64"
	"os"

	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/output"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// newAdminCmd builds the admin command group: the iTani-only operator and
// token factory operations.
func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "iTani chain operator and token factory operations",
	}

	cmd.AddCommand(
		newAdminDeployCmd(),
		newAdminMintCmd(),
		newAdminForceTransferCmd(),
		newAdminCreateTokenCmd(),
		newAdminCallCmd(),
	)
	return cmd
}

func newAdminDeployCmd() *cobra.Command {
	var name, wasmFile string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a WASM contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// #nosec G304 -- contract path is user-provided by design
			wasm, err := os.ReadFile(wasmFile)
			if err != nil {
				return walleterr.Wrap(err, "reading contract %s", wasmFile)
			}

			addr, err := svc.DeployContract(cmd.Context(), name, base64.StdEncoding.EncodeToString(wasm))
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"contract": addr})
			}
			output.Successf("Deployed %s at %s", name, addr)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "contract name")
	cmd.Flags().StringVar(&wasmFile, "wasm", "", "path to the WASM binary")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("wasm")
	return cmd
}

func newAdminMintCmd() *cobra.Command {
	var req chain.MintRequest

	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a new token through the token factory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txID, err := svc.MintTokens(cmd.Context(), req)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"txId": txID})
			}
			output.Successf("Minted %s: %s", req.Symbol, txID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TokenName, "name", "", "token name")
	cmd.Flags().StringVar(&req.Symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&req.TotalSupply, "supply", "", "total supply in base units")
	cmd.Flags().StringVar(&req.Description, "description", "", "token description")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("supply")
	return cmd
}

func newAdminForceTransferCmd() *cobra.Command {
	var from, to, symbol, amount string

	cmd := &cobra.Command{
		Use:   "force-transfer",
		Short: "Move tokens between addresses with operator authority",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txID, err := svc.ForceTransfer(cmd.Context(), from, to, symbol, amount)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"txId": txID})
			}
			output.Successf("Transferred %s %s: %s", amount, symbol, txID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source address")
	cmd.Flags().StringVar(&to, "to", "", "destination address")
	cmd.Flags().StringVar(&symbol, "token", "", "token symbol")
	cmd.Flags().StringVar(&amount, "amount", "", "amount in base units")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newAdminCreateTokenCmd() *cobra.Command {
	var req chain.CustomTokenRequest

	cmd := &cobra.Command{
		Use:   "create-token",
		Short: "Create a user-defined ITANI20 token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			txID, err := svc.CreateCustomToken(cmd.Context(), req)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"txId": txID})
			}
			output.Successf("Created token %s: %s", req.Symbol, txID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "token name")
	cmd.Flags().StringVar(&req.Symbol, "symbol", "", "token symbol")
	cmd.Flags().StringVar(&req.TotalSupply, "supply", "", "total supply in base units")
	cmd.Flags().StringVar(&req.Creator, "creator", "", "creator address (default: your iTani account)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("supply")
	return cmd
}

func newAdminCallCmd() *cobra.Command {
	var contract, method string
	var args []string

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Invoke a method on a deployed contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			callArgs := make([]any, len(args))
			for i, a := range args {
				callArgs[i] = a
			}

			result, err := svc.CallContract(cmd.Context(), contract, method, callArgs)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"result": result})
			}
			return formatter.Println(result)
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "contract name or address")
	cmd.Flags().StringVar(&method, "method", "", "method name")
	cmd.Flags().StringArrayVar(&args, "arg", nil, "method argument (repeatable)")
	_ = cmd.MarkFlagRequired("contract")
	_ = cmd.MarkFlagRequired("method")
	return cmd
}
