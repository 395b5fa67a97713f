package handlers

import (
	"context"
	"fmt"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/config"
	"github.com/brandwik/shopfront/internal/provision"
	"github.com/brandwik/shopfront/internal/state"
	"github.com/brandwik/shopfront/internal/wizard"
)

// loadState reads the persisted wizard state without wiring persistence; the
// status command never mutates anything.
var loadState = func(cfg *config.Config) (state.WizardState, error) {
	path, err := cfg.ResolveStatePath()
	if err != nil {
		return state.WizardState{}, err
	}
	return state.Load(path)
}

// fetchStoreStatus queries the backend for a fresh provisioning status.
var fetchStoreStatus = func(ctx context.Context, client *api.Client, siteID string) (*api.StoreStatus, error) {
	return client.GetStoreStatus(ctx, siteID)
}

var stepNames = map[int]string{
	wizard.StepPrompt:  "address",
	wizard.StepDetails: "details",
	wizard.StepBuild:   "build",
	wizard.StepReveal:  "complete",
}

// Status prints the saved onboarding position and, when a site exists, the
// live provisioning status.
func Status(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	st, err := loadState(cfg)
	if err != nil {
		return fmt.Errorf("failed to read saved state: %w", err)
	}

	name := stepNames[st.CurrentStep]
	if name == "" {
		name = fmt.Sprintf("step %d", st.CurrentStep)
	}
	fmt.Fprintf(output, "Step:     %s\n", name)

	if st.StepData.SiteName != "" {
		fmt.Fprintf(output, "Address:  https://%s.%s\n", st.StepData.SiteName, cfg.MainSiteDomain)
	}
	if st.LeadID != "" {
		fmt.Fprintf(output, "Lead:     %s\n", st.LeadID)
	}
	if st.CustomerID != "" {
		fmt.Fprintf(output, "Customer: %s\n", st.CustomerID)
	}
	if st.Error != "" {
		fmt.Fprintf(output, "Error:    %s\n", st.Error)
	}

	siteID := st.SiteID()
	if siteID == "" {
		return nil
	}

	status, err := fetchStoreStatus(ctx, newAPIClient(cfg.Endpoint), siteID)
	if err != nil {
		return fmt.Errorf("failed to fetch build status: %w", err)
	}

	s := provision.Status(status.Status)
	fmt.Fprintf(output, "Build:    %s (%d%%)\n", s, s.Floor())
	for _, entry := range status.Timeline {
		fmt.Fprintf(output, "  - %s\n", entry)
	}
	return nil
}
