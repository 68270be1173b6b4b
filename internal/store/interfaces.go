// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ServerEntity is a row of the service's entity table.
type ServerEntity struct {
	models.Entity
	Version       int64
	OriginReplica string
}

// ServerChangeRepository is the PostgreSQL store of the reference sync service.
//
// Upload work happens inside InTx so every change of one upload commits or
// rolls back together.
type ServerChangeRepository interface {
	// EnsureReplica registers replicaID for scope if it is new.
	EnsureReplica(ctx context.Context, scope, replicaID string) error
	// InTx runs fn inside one transaction serialized per scope.
	InTx(ctx context.Context, scope string, fn func(tx ServerChangeTx) error) error
	// ChangesSince returns up to limit rows of scope with a version greater
	// than after that did not originate from replicaID, ordered by version.
	ChangesSince(ctx context.Context, scope, replicaID string, after int64, limit int) ([]ServerEntity, error)
	// GetEntity returns the row with the given service id.
	GetEntity(ctx context.Context, scope, id string) (ServerEntity, error)
	// IsRetryable reports whether err is a transient storage failure.
	IsRetryable(err error) bool
}

// ServerChangeTx is the transactional half of [ServerChangeRepository].
type ServerChangeTx interface {
	// FindByID returns the row with the given service id.
	FindByID(ctx context.Context, scope, id string) (ServerEntity, error)
	// FindByKey returns the row with the given type and canonical key.
	FindByKey(ctx context.Context, scope string, ref models.EntityRef) (ServerEntity, error)
	// Insert stores a new row and returns it with its version.
	Insert(ctx context.Context, scope, replicaID string, e models.Entity) (ServerEntity, error)
	// Update overwrites the row identified by e.ID and returns it with its
	// new version.
	Update(ctx context.Context, scope, replicaID string, e models.Entity) (ServerEntity, error)
}
