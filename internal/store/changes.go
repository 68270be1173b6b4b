// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

// changeRepository computes outbound deltas from the tracking tables and
// applies inbound changes to the data tables of the client database.
type changeRepository struct {
	*DB
	logger *logger.Logger
}

// NewChangeRepository constructs a [ChangeRepository] over db.
func NewChangeRepository(db *DB, logger *logger.Logger) ChangeRepository {
	return &changeRepository{
		DB:     db,
		logger: logger,
	}
}
