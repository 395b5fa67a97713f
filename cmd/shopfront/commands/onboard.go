package commands

import (
	"github.com/spf13/cobra"

	"github.com/brandwik/shopfront/cmd/shopfront/handlers"
)

// Onboard returns the command that runs the onboarding wizard.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file
//	--plain: Log build progress as plain lines instead of the dashboard
//
// Environment variables:
//
//	SHOPFRONT_API_URL: Override the onboarding API base URL
func Onboard() *cobra.Command {
	var configPath string
	var plain bool

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Create your storefront",
		Long: `Walk through storefront onboarding.

The wizard claims a unique address, collects your business details and
credentials, registers the account, and watches provisioning until the store
is live. Every answer is saved immediately; rerun the command to resume an
interrupted session.

Examples:
  # Start or resume onboarding
  shopfront onboard

  # Resume with plain build output (no full-screen dashboard)
  shopfront onboard --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Onboard(cmd.Context(), configPath, plain)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&plain, "plain", false, "Plain build output instead of the dashboard")

	return cmd
}
