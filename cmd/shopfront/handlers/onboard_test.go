package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandwik/shopfront/internal/api"
	"github.com/brandwik/shopfront/internal/config"
	"github.com/brandwik/shopfront/internal/state"
	"github.com/brandwik/shopfront/internal/wizard"
)

// saveAndRestoreFactories snapshots the package's factory variables and
// restores them after the test.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origLoadConfig := loadConfig
	origOpenState := openState
	origNewAPIClient := newAPIClient
	origRunWizard := runWizard
	origIsTerminal := isTerminal
	origOutput := output
	origLoadState := loadState
	origFetchStoreStatus := fetchStoreStatus

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		openState = origOpenState
		newAPIClient = origNewAPIClient
		runWizard = origRunWizard
		isTerminal = origIsTerminal
		output = origOutput
		loadState = origLoadState
		fetchStoreStatus = origFetchStoreStatus
	})
}

func stubCommon(t *testing.T) *bytes.Buffer {
	t.Helper()

	loadConfig = func(string) (*config.Config, error) {
		return config.Default(), nil
	}
	openState = func(*config.Config) (*state.Store, error) {
		return state.New(), nil
	}
	isTerminal = func() bool { return true }

	out := &bytes.Buffer{}
	output = out
	return out
}

func TestOnboard_RequiresTerminal(t *testing.T) {
	saveAndRestoreFactories(t)
	stubCommon(t)
	isTerminal = func() bool { return false }

	err := Onboard(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestOnboard_RunsWizard(t *testing.T) {
	saveAndRestoreFactories(t)
	stubCommon(t)

	var called bool
	var gotOpts int
	runWizard = func(_ context.Context, cfg *config.Config, client *api.Client, store *state.Store, opts ...wizard.Option) error {
		called = true
		gotOpts = len(opts)
		require.NotNil(t, cfg)
		require.NotNil(t, client)
		require.NotNil(t, store)
		return nil
	}

	require.NoError(t, Onboard(context.Background(), "", false))
	assert.True(t, called)
	assert.Equal(t, 0, gotOpts)
}

func TestOnboard_PlainFlagPassesOption(t *testing.T) {
	saveAndRestoreFactories(t)
	stubCommon(t)

	var gotOpts int
	runWizard = func(_ context.Context, _ *config.Config, _ *api.Client, _ *state.Store, opts ...wizard.Option) error {
		gotOpts = len(opts)
		return nil
	}

	require.NoError(t, Onboard(context.Background(), "", true))
	assert.Equal(t, 1, gotOpts)
}

func TestOnboard_UserAbortIsNotAnError(t *testing.T) {
	saveAndRestoreFactories(t)
	out := stubCommon(t)

	runWizard = func(context.Context, *config.Config, *api.Client, *state.Store, ...wizard.Option) error {
		return huh.ErrUserAborted
	}

	require.NoError(t, Onboard(context.Background(), "", false))
	assert.Contains(t, out.String(), "Progress is saved")
}

func TestOnboard_WizardErrorPropagates(t *testing.T) {
	saveAndRestoreFactories(t)
	stubCommon(t)

	boom := errors.New("store build failed")
	runWizard = func(context.Context, *config.Config, *api.Client, *state.Store, ...wizard.Option) error {
		return boom
	}

	err := Onboard(context.Background(), "", false)
	assert.ErrorIs(t, err, boom)
}

func TestOnboard_ConfigErrorPropagates(t *testing.T) {
	saveAndRestoreFactories(t)
	stubCommon(t)

	loadConfig = func(string) (*config.Config, error) {
		return nil, errors.New("bad config")
	}

	err := Onboard(context.Background(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad config")
}
