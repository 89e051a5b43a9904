// Package config resolves process configuration: environment variables,
// the --config flag, and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/classtimer/internal/constants"
)

// Env holds the raw environment values.
type Env struct {
	DB        string `env:"CLASSTIMER_DB"`
	ConfigDir string `env:"CLASSTIMER_CONFIG_DIR"`
	Debug     bool   `env:"CLASSTIMER_DEBUG" envDefault:"false"`
	Notify    bool   `env:"CLASSTIMER_NOTIFY" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Source names where the storage target came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

// KeyringLookup returns a stored connection string. Implementations return
// an error when none is stored or the keyring is unavailable.
type KeyringLookup func() (string, error)

// ResolveTarget picks the storage target: an explicit flag wins, then
// CLASSTIMER_DB, then a connection string in the OS keyring, then the
// default SQLite path.
func ResolveTarget(flag string, e Env, lookup KeyringLookup) (string, Source) {
	if flag != "" && flag != constants.DefaultConfigPath {
		return flag, SourceFlag
	}
	if e.DB != "" {
		return e.DB, SourceEnv
	}
	if lookup != nil {
		if connStr, err := lookup(); err == nil && connStr != "" {
			return connStr, SourceKeyring
		}
	}
	return constants.DefaultConfigPath, SourceDefault
}

// IsPostgres reports whether target is a PostgreSQL connection string.
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ConfigDir is where logs and other per-user files live. CLASSTIMER_CONFIG_DIR
// wins; a SQLite target keeps them next to the database file; otherwise the
// OS user config directory is used.
func ConfigDir(target string, e Env) (string, error) {
	if e.ConfigDir != "" {
		return ExpandPath(e.ConfigDir)
	}
	if target != "" && !IsPostgres(target) {
		path, err := ExpandPath(target)
		if err != nil {
			return "", err
		}
		return filepath.Dir(path), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(errors.New("failed to resolve config directory"), err)
	}
	return filepath.Join(dir, constants.AppName), nil
}
