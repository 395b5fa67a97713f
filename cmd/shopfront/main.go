// Package main is the entry point for the shopfront CLI.
//
// shopfront walks a new merchant through onboarding: claim a storefront
// address, describe the business, register an account, and watch the store
// being provisioned. Progress is saved after every answer, so an interrupted
// run picks up where it stopped.
//
// Commands: onboard, status, reset, version.
//
// For detailed usage information, run:
//
//	shopfront --help
package main

import (
	"fmt"
	"os"

	"github.com/brandwik/shopfront/cmd/shopfront/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
