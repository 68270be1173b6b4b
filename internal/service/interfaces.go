// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the reconciliation logic of the reference sync service.
type SyncService interface {
	// Upload applies the changes of one client session. Conflicts and
	// rejected rows are reported in the response, not as errors.
	Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error)

	// Download returns the next page of changes the requesting replica has
	// not seen, with the anchor that acknowledges them.
	Download(ctx context.Context, req models.DownloadRequest) (models.ChangeSet, error)

	// GetEntity returns the current copy of an entity by service id.
	GetEntity(ctx context.Context, scope, id string) (models.Entity, error)

	// IsRetryable reports whether err is a transient storage failure.
	IsRetryable(err error) bool
}

// ConflictResolver settles a conflict between the service row and a client
// change made against an older version of it. For [models.Merge] it also
// returns the merged entity.
type ConflictResolver interface {
	Resolve(ctx context.Context, server, client models.Entity) (models.ResolutionKind, models.Entity, error)
}

// AppInfoService exposes build information of the running service.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
