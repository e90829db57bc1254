// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"database/sql"
)

// NewSQLiteStore creates a new SQLite-backed packet store, applying any
// pending schema migrations first.
func NewSQLiteStore(db *sql.DB) (*SQLStore, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	if err := ApplySQLiteMigrations(db); err != nil {
		return nil, err
	}

	return &SQLStore{
		db:      db,
		queries: sqliteQueries,
	}, nil
}
