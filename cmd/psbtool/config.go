// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcpsbt/store"
	"github.com/btcsuite/btcwallet/walletdb"
	_ "github.com/btcsuite/btcwallet/walletdb/bdb" // Register bdb driver.
	_ "github.com/jackc/pgx/v5/stdlib"             // Register pgx driver.
	"github.com/spf13/viper"
	_ "modernc.org/sqlite" // Register sqlite driver.
)

// Supported store backends.
const (
	backendBdb      = "bdb"
	backendSQLite   = "sqlite"
	backendPostgres = "postgres"
)

// Config holds the environment-driven settings of the tool. All values
// are read from PSBTOOL_-prefixed environment variables.
type Config struct {
	// Datadir is the directory holding file-backed databases.
	Datadir string

	// StoreBackend selects the packet store backend: bdb, sqlite or
	// postgres.
	StoreBackend string

	// PostgresDSN is the connection string used when StoreBackend is
	// postgres.
	PostgresDSN string
}

var (
	// Env var names, resolved under the PSBTOOL_ prefix.
	envDatadir      = "DATADIR"
	envStoreBackend = "STORE_BACKEND"
	envPostgresDSN  = "POSTGRES_DSN"

	defaultDatadir = btcutilAppDataDir()

	activeConfig *Config
)

// btcutilAppDataDir returns the default data directory for the tool.
func btcutilAppDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".psbtool")
}

// loadConfig reads the tool configuration from the environment.
func loadConfig() (*Config, error) {
	viper.SetEnvPrefix("PSBTOOL")
	viper.AutomaticEnv()

	viper.SetDefault(envDatadir, defaultDatadir)
	viper.SetDefault(envStoreBackend, backendBdb)

	cfg := &Config{
		Datadir:      viper.GetString(envDatadir),
		StoreBackend: viper.GetString(envStoreBackend),
		PostgresDSN:  viper.GetString(envPostgresDSN),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case backendBdb, backendSQLite:

	case backendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("backend %q requires "+
				"PSBTOOL_POSTGRES_DSN", c.StoreBackend)
		}

	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}

	return nil
}

// setConfig installs the active configuration for command actions.
func setConfig(cfg *Config) {
	activeConfig = cfg
}

// openStore opens the configured packet store backend. The returned
// cleanup function closes the underlying database.
func openStore() (store.Store, func(), error) {
	cfg := activeConfig

	if err := os.MkdirAll(cfg.Datadir, 0o700); err != nil {
		return nil, nil, err
	}

	switch cfg.StoreBackend {
	case backendBdb:
		dbPath := filepath.Join(cfg.Datadir, "psbt.db")
		db, err := walletdb.Create(
			"bdb", dbPath, true, time.Second*10, false,
		)
		if err != nil {
			return nil, nil, err
		}

		s, err := store.NewKVStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return s, func() { _ = db.Close() }, nil

	case backendSQLite:
		dbPath := filepath.Join(cfg.Datadir, "psbt.sqlite")
		dsn := dbPath + "?_pragma=busy_timeout=5000"

		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, nil, err
		}

		s, err := store.NewSQLiteStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return s, func() { _ = db.Close() }, nil

	case backendPostgres:
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}

		s, err := store.NewPostgresStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return s, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q",
			cfg.StoreBackend)
	}
}
