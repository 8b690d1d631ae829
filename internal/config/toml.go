// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test    TestConfig    `toml:"test"`
	Board   BoardConfig   `toml:"board"`
	Profile ProfileConfig `toml:"profile"`
}

// TestConfig maps typing-test settings.
type TestConfig struct {
	CharsPerWord *int     `toml:"chars-per-word"`
	MaxWPM       *float64 `toml:"max-wpm"`
}

// BoardConfig maps leaderboard settings.
type BoardConfig struct {
	TopIndividuals *int `toml:"top"`
	TopFaculties   *int `toml:"faculties"`
}

// ProfileConfig maps default profile metadata used at login.
type ProfileConfig struct {
	Program *string `toml:"program"`
	Faculty *string `toml:"faculty"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
