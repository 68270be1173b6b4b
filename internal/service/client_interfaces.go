// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// SyncContext sequences the sync sessions of one client database and one
// scope. At most one session is active at a time.
type SyncContext interface {
	// LoadSchema creates the configuration and tables on first use and
	// validates them afterwards. It runs once per SyncContext.
	LoadSchema(ctx context.Context) error

	// BeginSession opens a session.
	BeginSession() error

	// GetChangeSet extracts the local changes and registers them under state.
	GetChangeSet(ctx context.Context, state string) (models.ChangeBatch, error)

	// OnChangeSetUploaded applies the service's answer to the batch
	// registered under state.
	OnChangeSetUploaded(ctx context.Context, state string, response models.UploadResponse) error

	// UploadSucceeded marks every row of the batch registered under state
	// as uploaded.
	UploadSucceeded(ctx context.Context, state string) error

	// SaveChangeSet applies downloaded changes and persists the anchor.
	SaveChangeSet(ctx context.Context, changeSet models.ChangeSet) error

	// EndSession closes the session. It always succeeds.
	EndSession()

	Synchronizer
}

// Synchronizer runs a whole session: upload, then download until the
// service reports the last batch.
type Synchronizer interface {
	Synchronize(ctx context.Context) (models.SyncResult, error)
}

// SyncJob runs Synchronize periodically in the background.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
