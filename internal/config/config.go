// Package config loads taskdb configuration.
//
// Configuration comes from .taskdb/config.yaml (or $HOME/.taskdb),
// overridable with TASKDB_* environment variables; the CLI wires the
// file discovery through viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/randalmurphal/taskdb/internal/db/driver"
	storeerr "github.com/randalmurphal/taskdb/internal/errors"
)

// StorageConfig selects the storage engine and location.
type StorageConfig struct {
	// Dialect is "sqlite" (default) or "postgres".
	Dialect string `mapstructure:"dialect" yaml:"dialect"`
	// Path is the SQLite database file. Ignored for postgres.
	Path string `mapstructure:"path" yaml:"path"`
	// DSN is the postgres connection string. Ignored for sqlite.
	DSN string `mapstructure:"dsn" yaml:"dsn"`
	// StrictUpdates makes edits of unknown task ids fail instead of
	// silently doing nothing.
	StrictUpdates bool `mapstructure:"strict_updates" yaml:"strict_updates"`
}

// Config is the root configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Dialect: string(driver.DialectSQLite),
			Path:    DefaultDBPath(),
		},
	}
}

// DefaultDBPath returns ~/.taskdb/tasks.db, falling back to a relative
// path when the home directory cannot be resolved.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskdb", "tasks.db")
	}
	return filepath.Join(home, ".taskdb", "tasks.db")
}

// Load resolves the configuration from viper on top of the defaults.
func Load() (*Config, error) {
	viper.SetDefault("storage.dialect", string(driver.DialectSQLite))
	viper.SetDefault("storage.path", DefaultDBPath())
	viper.SetDefault("storage.strict_updates", false)

	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, storeerr.ErrConfigInvalid("storage", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	dialect, err := driver.ParseDialect(c.Storage.Dialect)
	if err != nil {
		return storeerr.ErrConfigInvalid("storage.dialect", err.Error())
	}
	if dialect == driver.DialectPostgres && c.Storage.DSN == "" {
		return storeerr.ErrConfigInvalid("storage.dsn", "postgres dialect requires a connection string")
	}
	return nil
}

// Dialect returns the parsed storage dialect.
func (c *Config) Dialect() driver.Dialect {
	dialect, err := driver.ParseDialect(c.Storage.Dialect)
	if err != nil {
		return driver.DialectSQLite
	}
	return dialect
}

// StorageDSN returns the DSN to open for the configured dialect.
func (c *Config) StorageDSN() string {
	if c.Dialect() == driver.DialectPostgres {
		return c.Storage.DSN
	}
	return c.Storage.Path
}
