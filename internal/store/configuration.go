// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	readConfiguration = `SELECT ScopeName, ServiceUri, LastSyncDate, AnchorBlob, Configuration
		FROM sync_configuration
		WHERE ScopeName = ?`

	saveConfiguration = `INSERT INTO sync_configuration (ScopeName, ServiceUri, LastSyncDate, AnchorBlob, Configuration)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (ScopeName) DO UPDATE SET
			ServiceUri = excluded.ServiceUri,
			LastSyncDate = excluded.LastSyncDate,
			AnchorBlob = excluded.AnchorBlob,
			Configuration = excluded.Configuration`
)

// configurationRepository persists the per-scope anchor record.
type configurationRepository struct {
	*DB
	logger *logger.Logger
}

// NewConfigurationRepository constructs a [ConfigurationRepository] over db.
func NewConfigurationRepository(db *DB, logger *logger.Logger) ConfigurationRepository {
	return &configurationRepository{
		DB:     db,
		logger: logger,
	}
}

// ReadConfiguration loads the record of scope. It returns
// [ErrConfigurationNotFound] when the scope was never synchronized.
func (r *configurationRepository) ReadConfiguration(ctx context.Context, scope string) (models.Configuration, error) {
	log := logger.FromContext(ctx)

	var (
		cfg       models.Configuration
		lastSync  int64
		typesJSON string
	)
	err := r.QueryRowContext(ctx, readConfiguration, scope).
		Scan(&cfg.ScopeName, &cfg.ServiceURI, &lastSync, &cfg.AnchorBlob, &typesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Configuration{}, ErrConfigurationNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "configurationRepository.ReadConfiguration").Str("scope", scope).Msg("failed to read sync configuration")
		return models.Configuration{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(typesJSON), &cfg.RegisteredTypes); err != nil {
		log.Err(err).Str("func", "configurationRepository.ReadConfiguration").Str("scope", scope).Msg("failed to decode registered types")
		return models.Configuration{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	cfg.LastSyncDate = fromMillis(lastSync)

	return cfg, nil
}

// SaveConfiguration upserts the record in a single statement, so the anchor
// and the sync date always change together.
func (r *configurationRepository) SaveConfiguration(ctx context.Context, cfg models.Configuration) error {
	log := logger.FromContext(ctx)

	types := slices.Clone(cfg.RegisteredTypes)
	slices.Sort(types)
	if types == nil {
		types = []string{}
	}
	typesJSON, err := json.Marshal(types)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	_, err = r.ExecContext(ctx, saveConfiguration,
		cfg.ScopeName, cfg.ServiceURI, toMillis(cfg.LastSyncDate), cfg.AnchorBlob, string(typesJSON))
	if err != nil {
		log.Err(err).Str("func", "configurationRepository.SaveConfiguration").Str("scope", cfg.ScopeName).Msg("failed to save sync configuration")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ValidateConfiguration checks that a stored record was created for
// expectedURI and the same set of entity types. Any difference is reported
// as [ErrConfigurationMismatch].
func ValidateConfiguration(cfg models.Configuration, expectedURI string, expectedTypes []string) error {
	if cfg.ServiceURI != expectedURI {
		return fmt.Errorf("%w: scope %q was created for %q, not %q",
			ErrConfigurationMismatch, cfg.ScopeName, cfg.ServiceURI, expectedURI)
	}

	stored := slices.Clone(cfg.RegisteredTypes)
	expected := slices.Clone(expectedTypes)
	slices.Sort(stored)
	slices.Sort(expected)

	if len(stored) != len(expected) {
		return fmt.Errorf("%w: scope %q has %d registered types, got %d",
			ErrConfigurationMismatch, cfg.ScopeName, len(stored), len(expected))
	}
	if !slices.Equal(stored, expected) {
		return fmt.Errorf("%w: scope %q registered types %v, got %v",
			ErrConfigurationMismatch, cfg.ScopeName, stored, expected)
	}

	return nil
}
