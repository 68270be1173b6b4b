// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// GetServerConfig builds and validates the sync service configuration.
func GetServerConfig() (*StructuredConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	if cfg.Sync.ConflictPolicy == "" {
		cfg.Sync.ConflictPolicy = defaultConflictPolicy
	}

	return cfg, cfg.validate()
}
