// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the settings the sync service needs at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DB.DatabaseURI == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	switch cfg.Sync.ConflictPolicy {
	case "server-wins", "client-wins", "merge":
	default:
		return fmt.Errorf("%w: unknown conflict policy %q", ErrInvalidSyncConfigs, cfg.Sync.ConflictPolicy)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Sync.Scope == "" || cfg.Sync.BatchSize < 0 || cfg.Sync.DownloadBatchSize < 0 {
		return ErrInvalidSyncConfigs
	}

	u, err := url.Parse(cfg.Sync.ServiceURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: bad service uri %q", ErrInvalidSyncConfigs, cfg.Sync.ServiceURI)
	}

	return nil
}
