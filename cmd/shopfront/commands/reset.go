package commands

import (
	"github.com/spf13/cobra"

	"github.com/brandwik/shopfront/cmd/shopfront/handlers"
)

// Reset returns the command that clears saved onboarding progress.
//
// Optional flags:
//
//	--keep-accounts: Keep registered customer records, clear only form progress
func Reset() *cobra.Command {
	var configPath string
	var keepAccounts bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear saved onboarding progress",
		Long: `Clear the saved wizard state and start over.

By default everything is wiped under a fresh session. With --keep-accounts the
registered customer records survive, so a finished store stays reachable while
the form starts from the top.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Reset(cmd.Context(), configPath, keepAccounts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&keepAccounts, "keep-accounts", false, "Keep registered customer records")

	return cmd
}
