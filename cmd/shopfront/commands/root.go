// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing
// and flag binding. Command execution is delegated to handler functions in the
// handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the shopfront CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopfront",
		Short: "Provision an e-commerce storefront from your terminal",
	}

	cmd.AddCommand(Onboard())
	cmd.AddCommand(Status())
	cmd.AddCommand(Reset())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
