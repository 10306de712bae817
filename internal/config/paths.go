package config

import (
	"os"
	"path/filepath"
)

// ProjectConfigPath returns the project-level config path, relative to
// the working directory.
func ProjectConfigPath() string {
	return ".relnotes.yml"
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return ".relnotes.json"
}

// UserConfigPath returns the XDG-compliant user config path,
// ~/.config/relnotes/config.yml by default.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relnotes", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "relnotes", "config.yml"), nil
}
