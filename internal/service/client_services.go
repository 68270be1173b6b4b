// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/internal/store"
)

// ClientServices groups the services of the sync client.
type ClientServices struct {
	SyncContext SyncContext
	SyncJob     SyncJob
}

func NewClientServices(storages *store.ClientStorages, syncAdapter adapter.SyncAdapter, registry *schema.Registry, cfg config.ClientSync, logger *logger.Logger) *ClientServices {
	syncCtx := NewSyncContext(storages, syncAdapter, registry, cfg, logger)

	return &ClientServices{
		SyncContext: syncCtx,
		SyncJob:     NewSyncJob(syncCtx, logger),
	}
}
