// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "aprendemos"

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

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// DefaultDataDir returns the directory holding the database.
func DefaultDataDir() string {
	if v := os.Getenv(EnvDataDir); v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), AppName)
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), AppName+".db")
}

// DBPath returns the database path inside dataDir, or the default path.
func DBPath(dataDir string) string {
	if dataDir == "" {
		return DefaultDBPath()
	}
	return filepath.Join(dataDir, AppName+".db")
}

// DefaultLessonDir returns the directory scanned for extra lesson files.
func DefaultLessonDir() string {
	return filepath.Join(XDGConfigHome(), AppName, "lessons")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), AppName, AppName+".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), AppName, "config.toml")
}

// DefaultEnvPath returns the optional .env file next to the config file.
func DefaultEnvPath() string {
	return filepath.Join(XDGConfigHome(), AppName, ".env")
}
