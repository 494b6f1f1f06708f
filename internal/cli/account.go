package cli

import (
	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/output"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// newAccountCmd builds the account command group.
func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create, import and inspect accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(),
		newAccountImportCmd(),
		newAccountRecoverCmd(),
		newAccountListCmd(),
		newAccountRevealCmd(),
	)
	return cmd
}

// resolveChainFlag parses a --chain value, defaulting to the active chain.
func resolveChainFlag(chainFlag string) (chain.ID, error) {
	if chainFlag == "" {
		return svc.ActiveChain(), nil
	}
	id, ok := chain.ParseID(chainFlag)
	if !ok {
		return "", walleterr.WithDetails(walleterr.ErrUnknownChain, map[string]string{
			"chain": chainFlag,
		})
	}
	return id, nil
}

func newAccountCreateCmd() *cobra.Command {
	var chainFlag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account with a fresh key",
		RunE: func(_ *cobra.Command, _ []string) error {
			chainID, err := resolveChainFlag(chainFlag)
			if err != nil {
				return err
			}

			acct, mnemonic, err := svc.CreateAccount(chainID)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{
					"address":  acct.Address,
					"chain":    acct.ChainID.String(),
					"mnemonic": mnemonic,
				})
			}

			output.Successf("Created %s account %s", acct.ChainID, acct.Address)
			output.Warn("Write down the recovery phrase. It is shown only once.")
			return formatter.Println(mnemonic)
		},
	}

	cmd.Flags().StringVar(&chainFlag, "chain", "", "chain for the new account (default: active chain)")
	return cmd
}

func newAccountImportCmd() *cobra.Command {
	var chainFlag, key string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an existing private key",
		RunE: func(_ *cobra.Command, _ []string) error {
			chainID, err := resolveChainFlag(chainFlag)
			if err != nil {
				return err
			}

			k, err := resolvePassword(key, "Private key (hex): ")
			if err != nil {
				return err
			}

			acct, err := svc.ImportAccount(chainID, k)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{
					"address": acct.Address,
					"chain":   acct.ChainID.String(),
				})
			}
			output.Successf("Imported %s account %s", acct.ChainID, acct.Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&chainFlag, "chain", "", "chain for the account (default: active chain)")
	cmd.Flags().StringVar(&key, "key", "", "private key hex (prompted when omitted)")
	return cmd
}

func newAccountRecoverCmd() *cobra.Command {
	var chainFlag, mnemonic string

	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover an account from a mnemonic",
		RunE: func(_ *cobra.Command, _ []string) error {
			chainID, err := resolveChainFlag(chainFlag)
			if err != nil {
				return err
			}

			m := mnemonic
			if m == "" {
				if m, err = promptLine("Recovery phrase: "); err != nil {
					return err
				}
			}

			acct, err := svc.RecoverAccount(chainID, m)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{
					"address": acct.Address,
					"chain":   acct.ChainID.String(),
				})
			}
			output.Successf("Recovered %s account %s", acct.ChainID, acct.Address)
			return nil
		},
	}

	cmd.Flags().StringVar(&chainFlag, "chain", "", "chain for the account (default: active chain)")
	cmd.Flags().StringVar(&mnemonic, "mnemonic", "", "recovery phrase (prompted when omitted)")
	return cmd
}

func newAccountListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your accounts",
		RunE: func(_ *cobra.Command, _ []string) error {
			accounts, err := svc.Accounts()
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(accounts)
			}

			if len(accounts) == 0 {
				return formatter.Println("no accounts")
			}

			tbl := output.NewTable("CHAIN", "ADDRESS", "BALANCE")
			for _, acct := range accounts {
				bal := acct.CachedBalance
				if bal == "" {
					bal = "-"
				}
				tbl.AddRow(acct.ChainID.String(), acct.Address, bal)
			}
			return tbl.Render(formatter.Writer())
		},
	}
}

func newAccountRevealCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the active account's private key",
		RunE: func(_ *cobra.Command, _ []string) error {
			pw, err := resolvePassword(password, "Password: ")
			if err != nil {
				return err
			}

			key, err := svc.RevealKey(pw)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"privateKey": key})
			}

			output.Warn("Anyone with this key controls the account.")
			return formatter.Println(key)
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}
