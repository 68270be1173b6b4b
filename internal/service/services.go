// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

// Services groups the services of the sync service.
type Services struct {
	SyncService    SyncService
	AppInfoService AppInfoService
}

// NewServices wires the services of the sync service. The conflict policy
// comes from cfg.Sync.ConflictPolicy.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	resolver, err := NewPolicyResolver(models.ResolutionKind(cfg.Sync.ConflictPolicy))
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		SyncService:    NewSyncService(storages.ChangeRepository, resolver, logger),
		AppInfoService: appInfo,
	}, nil
}
