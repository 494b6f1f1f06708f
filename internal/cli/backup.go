package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/backup"
	"github.com/itani-network/kobswallet/internal/output"
	"github.com/itani-network/kobswallet/internal/store"
)

// backupService builds the backup service over the configured directories.
func backupService() *backup.Service {
	return backup.NewService(
		filepath.Join(cfg.Home, "backups"),
		store.New(cfg.DataDir(), logger),
	)
}

// newBackupCmd builds the backup command group.
func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export, verify and restore encrypted state backups",
	}

	cmd.AddCommand(
		newBackupCreateCmd(),
		newBackupVerifyCmd(),
		newBackupRestoreCmd(),
		newBackupListCmd(),
	)
	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	var passphrase string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Export wallet state as an encrypted archive",
		RunE: func(_ *cobra.Command, _ []string) error {
			pw := passphrase
			if pw == "" {
				var err error
				if pw, err = promptNewPassword(); err != nil {
					return err
				}
			}

			archive, path, err := backupService().Create(pw)
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]any{
					"path":     path,
					"users":    archive.Manifest.UserCount,
					"accounts": archive.Manifest.AccountCount,
				})
			}
			output.Successf("Backup written to %s (%d users, %d accounts)",
				path, archive.Manifest.UserCount, archive.Manifest.AccountCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "archive passphrase (prompted when omitted)")
	return cmd
}

func newBackupVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <archive>",
		Short: "Verify an archive's integrity",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			manifest, err := backupService().Verify(args[0])
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(manifest)
			}
			output.Successf("Archive OK: %d users, %d accounts, created %s",
				manifest.UserCount, manifest.AccountCount,
				manifest.CreatedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	var passphrase string
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <archive>",
		Short: "Replace wallet state with an archive's snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if !force {
				ok, err := promptConfirm("This overwrites the current wallet state. Continue?")
				if err != nil {
					return err
				}
				if !ok {
					return formatter.Println("aborted")
				}
			}

			pw, err := resolvePassword(passphrase, "Archive passphrase: ")
			if err != nil {
				return err
			}

			if err := backupService().Restore(args[0], pw); err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(map[string]string{"status": "restored"})
			}
			output.Success("Wallet state restored")
			return nil
		},
	}

	cmd.Flags().StringVar(&passphrase, "passphrase", "", "archive passphrase (prompted when omitted)")
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archives in the backup directory",
		RunE: func(_ *cobra.Command, _ []string) error {
			names, err := backupService().List()
			if err != nil {
				return err
			}

			if formatter.IsJSON() {
				return formatter.Print(names)
			}

			if len(names) == 0 {
				return formatter.Println("no backups")
			}
			for _, name := range names {
				if err := formatter.Println(name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
