package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	cmd := Root()

	require.NotNil(t, cmd)
	assert.Equal(t, "shopfront", cmd.Use)

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "onboard")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "reset")
	assert.Contains(t, names, "version")
	assert.Contains(t, names, "completion")
}

func TestOnboard(t *testing.T) {
	cmd := Onboard()

	require.NotNil(t, cmd)
	assert.Equal(t, "onboard", cmd.Use)

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)

	plain := cmd.Flags().Lookup("plain")
	require.NotNil(t, plain)
	assert.Equal(t, "false", plain.DefValue)
}

func TestStatus(t *testing.T) {
	cmd := Status()

	require.NotNil(t, cmd)
	assert.Equal(t, "status", cmd.Use)
	require.NotNil(t, cmd.Flags().Lookup("config"))
}

func TestReset(t *testing.T) {
	cmd := Reset()

	require.NotNil(t, cmd)
	assert.Equal(t, "reset", cmd.Use)

	keep := cmd.Flags().Lookup("keep-accounts")
	require.NotNil(t, keep)
	assert.Equal(t, "false", keep.DefValue)
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2026-08-28")

	cmd := Version()
	require.NotNil(t, cmd)
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "1.2.3", version)
}

func TestCompletion_RejectsUnknownShell(t *testing.T) {
	cmd := Completion()
	cmd.SetArgs([]string{"tcsh"})
	assert.Error(t, cmd.Execute())
}
