// Package config loads the CLI configuration: where the onboarding API
// lives, the public domain suffix for provisioned stores, and where wizard
// state is persisted between runs.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/brandwik/shopfront/internal/api"
)

// Environment overrides, applied after the file is read.
const (
	EnvEndpoint   = "SHOPFRONT_API_URL"
	EnvMainDomain = "SHOPFRONT_MAIN_DOMAIN"
)

// DefaultMainSiteDomain is the public suffix stores are served under.
const DefaultMainSiteDomain = "brandwik.com"

// Config is the CLI configuration.
type Config struct {
	// Endpoint is the onboarding API base URL.
	Endpoint string `yaml:"endpoint"`

	// MainSiteDomain is appended to the subdomain to form the store address.
	MainSiteDomain string `yaml:"main_site_domain"`

	// StatePath overrides where wizard state is persisted.
	StatePath string `yaml:"state_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Endpoint:       api.DefaultEndpoint,
		MainSiteDomain: DefaultMainSiteDomain,
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "shopfront", "config.yaml"), nil
}

// LoadFile reads and parses the configuration from a YAML file, fills in
// defaults, and validates the result.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Load resolves the effective configuration. An explicit path must exist; an
// empty path falls back to the default file when present, else to built-in
// defaults. Environment overrides win over the file in either case.
func Load(path string) (*Config, error) {
	var cfg *Config

	switch {
	case path != "":
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		defaultPath, err := DefaultPath()
		if err == nil {
			if _, statErr := os.Stat(defaultPath); statErr == nil {
				loaded, loadErr := LoadFile(defaultPath)
				if loadErr != nil {
					return nil, loadErr
				}
				cfg = loaded
			}
		}
		if cfg == nil {
			cfg = Default()
		}
	}

	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvMainDomain); v != "" {
		cfg.MainSiteDomain = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = api.DefaultEndpoint
	}
	if c.MainSiteDomain == "" {
		c.MainSiteDomain = DefaultMainSiteDomain
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint must be an absolute URL, got %q", c.Endpoint)
	}
	if c.MainSiteDomain == "" {
		return fmt.Errorf("main_site_domain must not be empty")
	}
	return nil
}

// ResolveStatePath returns the effective state file path.
func (c *Config) ResolveStatePath() (string, error) {
	if c.StatePath != "" {
		return c.StatePath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "shopfront", "state.json"), nil
}
