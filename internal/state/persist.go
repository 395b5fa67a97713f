package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath returns the state file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "shopfront", "state.json"), nil
}

// Load reads a persisted WizardState from path. A missing file yields a fresh
// initial state; a corrupt file is an error so the caller can decide whether
// to start over.
func Load(path string) (WizardState, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, fs.ErrNotExist) {
		return Initial(), nil
	}
	if err != nil {
		return WizardState{}, fmt.Errorf("failed to read state file: %w", err)
	}

	var st WizardState
	if err := json.Unmarshal(data, &st); err != nil {
		return WizardState{}, fmt.Errorf("failed to parse state file: %w", err)
	}
	if st.SessionID == "" {
		st = Initial()
	}
	if st.Users == nil {
		st.Users = map[string]CustomerRecord{}
	}
	if st.StepData.Features == nil {
		st.StepData.Features = []string{}
	}
	return st, nil
}

// Save writes the state to path atomically (temp file + rename).
func Save(path string, st WizardState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Open restores the state at path (or starts fresh) and returns a store that
// persists back to the same file after every mutation.
func Open(path string) (*Store, error) {
	st, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewFrom(st, func(w WizardState) error {
		return Save(path, w)
	}), nil
}
