package cli

import (
	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/output"
)

// newAuthCmd builds the auth command group.
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Register, log in and log out",
	}

	cmd.AddCommand(
		newAuthRegisterCmd(),
		newAuthLoginCmd(),
		newAuthLogoutCmd(),
		newAuthWhoamiCmd(),
	)
	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(_ *cobra.Command, _ []string) error {
			if password == "" {
				var err error
				if password, err = promptNewPassword(); err != nil {
					return err
				}
			}

			if err := svc.Register(email, password); err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"status": "registered", "email": email})
			}
			output.Successf("Registered %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in",
		RunE: func(_ *cobra.Command, _ []string) error {
			pw, err := resolvePassword(password, "Password: ")
			if err != nil {
				return err
			}

			if err := svc.Login(email, pw); err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"status": "authenticated", "email": email})
			}
			output.Successf("Logged in as %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := svc.Logout(); err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"status": "logged_out"})
			}
			output.Success("Logged out")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user",
		RunE: func(_ *cobra.Command, _ []string) error {
			email, ok := svc.CurrentUser()
			if !ok {
				if formatter.IsJSON() {
					return formatter.Print(map[string]any{"authenticated": false})
				}
				return formatter.Println("not logged in")
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]any{
					"authenticated": true,
					"email":         email,
					"activeChain":   svc.ActiveChain().String(),
					"networkMode":   string(svc.NetworkMode()),
				})
			}
			return formatter.Printf("%s (chain: %s, network: %s)\n",
				email, svc.ActiveChain(), svc.NetworkMode())
		},
	}
}
