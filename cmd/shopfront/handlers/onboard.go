// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/config"
	"github.com/brandwik/shopfront/internal/state"
	"github.com/brandwik/shopfront/internal/wizard"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the CLI configuration.
	loadConfig = config.Load

	// openState opens the persisted wizard state for the config.
	openState = func(cfg *config.Config) (*state.Store, error) {
		path, err := cfg.ResolveStatePath()
		if err != nil {
			return nil, err
		}
		return state.Open(path)
	}

	// newAPIClient creates the onboarding API client.
	newAPIClient = api.NewClient

	// runWizard constructs and runs the onboarding wizard.
	runWizard = func(ctx context.Context, cfg *config.Config, client *api.Client, store *state.Store, opts ...wizard.Option) error {
		return wizard.New(cfg, client, store, opts...).Run(ctx)
	}

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// output is where handlers write user-facing text.
	output io.Writer = os.Stdout
)

// Onboard runs the onboarding wizard from the persisted step.
//
// The wizard needs an interactive terminal for its forms; without one the
// handler fails up front instead of garbling a pipe. A user abort is not an
// error: progress stays saved and the command says how to resume.
func Onboard(ctx context.Context, configPath string, plain bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if !isTerminal() {
		return errors.New("onboarding needs an interactive terminal; run shopfront from a TTY")
	}

	store, err := openState(cfg)
	if err != nil {
		return fmt.Errorf("failed to open saved state: %w", err)
	}

	opts := []wizard.Option{}
	if plain {
		opts = append(opts, wizard.WithPlainOutput())
	}

	err = runWizard(ctx, cfg, newAPIClient(cfg.Endpoint), store, opts...)
	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(output, "Onboarding canceled. Progress is saved; rerun `shopfront onboard` to continue.")
		return nil
	}
	return err
}
