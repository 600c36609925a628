package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathEnv overrides config discovery.
const PathEnv = "CINESEARCH_CONFIG"

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cinesearch", "config.toml")
}

// Discover finds the config file using the standard search order.
// Search order:
//  1. CINESEARCH_CONFIG environment variable
//  2. ./config.toml (current directory)
//  3. $XDG_CONFIG_HOME/cinesearch/config.toml
//  4. /etc/cinesearch/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv(PathEnv); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", PathEnv, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./config.toml",
		DefaultPath(),
		"/etc/cinesearch/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, strings.Join(paths, ", "))
}

// Resolve loads the config at path, or the discovered one when path is
// empty. With nothing to discover it falls back to Default. The returned
// path is empty in that case.
func Resolve(path string) (*Config, string, error) {
	if path == "" {
		found, err := Discover()
		if err != nil {
			if !IsNotFound(err) {
				return nil, "", err
			}
			cfg := Default()
			if errs := cfg.Validate(); len(errs) > 0 {
				return nil, "", &ConfigError{Errors: errs}
			}
			return cfg, "", nil
		}
		path = found
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
