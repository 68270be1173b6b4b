// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter carries change sets between a client replica and the sync
// service.
//
// [SyncAdapter] hides the protocol from the orchestrator. The HTTP
// implementation ([NewHTTPSyncAdapter]) maps response status codes to the
// sentinel errors in errors.go so callers can match them with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_adapter_mock.go -package=mock

// SyncAdapter exchanges change sets with the sync service.
type SyncAdapter interface {
	// Upload sends the local changes of one session and returns the
	// service's verdict on them.
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error)

	// Download fetches the next page of changes the replica has not seen.
	Download(ctx context.Context, req models.DownloadRequest) (models.ChangeSet, error)

	// GetEntity fetches the current service copy of an entity through its
	// edit URI.
	GetEntity(ctx context.Context, editURI string) (models.Entity, error)
}
