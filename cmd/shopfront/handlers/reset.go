package handlers

import (
	"context"
	"fmt"
)

// Reset clears saved onboarding progress. With keepAccounts, registered
// customer records survive and only the form progress is wiped.
func Reset(_ context.Context, configPath string, keepAccounts bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, err := openState(cfg)
	if err != nil {
		return fmt.Errorf("failed to open saved state: %w", err)
	}

	if keepAccounts {
		store.ResetStepData()
		fmt.Fprintln(output, "Onboarding progress cleared. Registered accounts were kept.")
		return nil
	}

	store.ResetAll()
	fmt.Fprintln(output, "Onboarding state cleared.")
	return nil
}
