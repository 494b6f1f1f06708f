package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

// newVersionCmd builds the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(_ *cobra.Command, _ []string) error {
			if formatter.IsJSON() {
				return formatter.Print(map[string]string{
					"version": Version,
					"commit":  Commit,
					"go":      runtime.Version(),
				})
			}

			if Commit != "" {
				return formatter.Printf("kobswallet %s (%s)\n", Version, Commit)
			}
			return formatter.Printf("kobswallet %s\n", Version)
		},
	}
}
