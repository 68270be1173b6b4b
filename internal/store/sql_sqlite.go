// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/migrations"
)

// NewConnectSQLite opens the client database file, applies the sync metadata
// migrations and clears hook suspensions left behind by a crashed apply.
//
// Transactions start with BEGIN IMMEDIATE so that a writer never has to
// upgrade a read lock, and the pool holds one connection: SQLite has a
// single writer anyway.
func NewConnectSQLite(ctx context.Context, cfg config.ClientDB, log *logger.Logger) (*DB, error) {
	if err := createLocalDBDirIfNotExists(cfg.DSN); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
		return nil, err
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}

	if err = migrations.MigrateClient(conn); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error migrating database")
		conn.Close()
		return nil, err
	}

	db := &DB{
		DB:     conn,
		logger: log,
	}

	if err = db.clearHookSuspensions(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	log.Debug().Str("func", "NewConnectSQLite").Str("dsn", cfg.DSN).Msg("connected to database successfully")
	return db, nil
}

func sqliteDSN(path string) string {
	params := url.Values{}
	params.Set("_busy_timeout", "5000")
	params.Set("_txlock", "immediate")
	params.Set("_foreign_keys", "on")
	return "file:" + path + "?" + params.Encode()
}

func createLocalDBDirIfNotExists(dbFile string) error {
	dir := filepath.Dir(dbFile)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating DB directory: %w", err)
	}
	return nil
}

// clearHookSuspensions removes suspension rows that outlived the apply
// transaction that created them.
func (db *DB) clearHookSuspensions(ctx context.Context) error {
	res, err := db.ExecContext(ctx, `DELETE FROM sync_hook_suspension`)
	if err != nil {
		db.logger.Err(err).Str("func", "DB.clearHookSuspensions").Msg("failed to clear hook suspensions")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		db.logger.Warn().Str("func", "DB.clearHookSuspensions").Int64("tables", n).Msg("cleared stale hook suspensions")
	}
	return nil
}
