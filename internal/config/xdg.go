// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "uwtype", "config.toml")
}

// DefaultDBPath returns the default path for the SQLite score database.
// UWTYPE_DB overrides it, so one board database can be shared.
func DefaultDBPath() string {
	if v := os.Getenv("UWTYPE_DB"); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), "uwtype", "scores.db")
}

// DefaultTokenPath returns the path of the signed profile session.
func DefaultTokenPath() string {
	return filepath.Join(XDGDataHome(), "uwtype", "session.jwt")
}

// DefaultSecretPath returns the path of the token signing secret.
func DefaultSecretPath() string {
	return filepath.Join(XDGDataHome(), "uwtype", "secret")
}
