// Package config resolves packcal's settings from viper, the environment and
// built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}

// DefaultDatabasePath is where the purchase log lives when database.path is unset.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "packcal.db")
	}
	return filepath.Join(home, ".local", "share", "packcal", "packcal.db")
}

// DatabasePath resolves database.path with ~ and environment expansion.
func DatabasePath() string {
	if v := viper.GetString("database.path"); v != "" {
		return ExpandPath(v)
	}
	return DefaultDatabasePath()
}
