package commands

import (
	"github.com/spf13/cobra"

	"github.com/brandwik/shopfront/cmd/shopfront/handlers"
)

// Status returns the command that prints the current onboarding state.
func Status() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show onboarding and provisioning status",
		Long: `Show where onboarding stands: the saved step, the claimed address,
and the latest provisioning status if a build was started. Queries the
backend for a fresh build status when a site exists.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	return cmd
}
