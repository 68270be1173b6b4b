// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// ClientStorages groups the repositories of the client database. They share
// one connection pool, owned by the value and released by Close.
type ClientStorages struct {
	Tracking      TrackingRepository
	Configuration ConfigurationRepository
	Changes       ChangeRepository
	Entities      EntityRepository

	db *DB
}

// NewClientStorages opens the SQLite file named by cfg.DB.DSN, creating it
// and its directory when missing, applies the sync metadata migrations and
// wires the repositories to it.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return newClientStorages(db, logger), nil
}

func newClientStorages(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Tracking:      NewTrackingRepository(db, logger),
		Configuration: NewConfigurationRepository(db, logger),
		Changes:       NewChangeRepository(db, logger),
		Entities:      NewEntityRepository(db, logger),
		db:            db,
	}
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
