// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/adapter"
	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/metrics"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

type syncContext struct {
	tracking      store.TrackingRepository
	configuration store.ConfigurationRepository
	changes       store.ChangeRepository
	adapter       adapter.SyncAdapter
	registry      *schema.Registry
	cfg           config.ClientSync
	inFlight      *InFlightRegistry
	states        utils.IDGenerator
	now           func() time.Time

	schemaMu     sync.Mutex
	schemaLoaded bool
	current      models.Configuration

	sessionMu     sync.Mutex
	sessionActive bool

	logger *logger.Logger
}

// NewSyncContext wires a [SyncContext] for the scope and service named in
// cfg. registry lists the synced entity types in apply order.
func NewSyncContext(storages *store.ClientStorages, syncAdapter adapter.SyncAdapter, registry *schema.Registry, cfg config.ClientSync, logger *logger.Logger) SyncContext {
	return &syncContext{
		tracking:      storages.Tracking,
		configuration: storages.Configuration,
		changes:       storages.Changes,
		adapter:       syncAdapter,
		registry:      registry,
		cfg:           cfg,
		inFlight:      NewInFlightRegistry(),
		states:        utils.NewUUIDGenerator(),
		now:           time.Now,
		logger:        logger.WithScope(cfg.Scope),
	}
}

func (s *syncContext) LoadSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	if s.schemaLoaded {
		return nil
	}

	log := logger.FromContext(ctx)

	cfg, err := s.configuration.ReadConfiguration(ctx, s.cfg.Scope)
	switch {
	case errors.Is(err, store.ErrConfigurationNotFound):
		for _, d := range s.registry.Descriptors() {
			if err = ctx.Err(); err != nil {
				return err
			}
			if err = s.tracking.CreateTrackingSchema(ctx, d); err != nil {
				log.Err(err).Str("func", "syncContext.LoadSchema").Str("table", d.Table).Msg("failed to create tracking schema")
				return fmt.Errorf("create tracking schema for %s: %w", d.Table, err)
			}
		}

		cfg = models.Configuration{
			ScopeName:       s.cfg.Scope,
			ServiceURI:      s.cfg.ServiceURI,
			RegisteredTypes: s.registry.TypeNames(),
		}
		if err = s.configuration.SaveConfiguration(ctx, cfg); err != nil {
			log.Err(err).Str("func", "syncContext.LoadSchema").Msg("failed to save initial configuration")
			return fmt.Errorf("save configuration: %w", err)
		}
		log.Info().Int("tables", s.registry.Len()).Msg("sync scope provisioned")
	case err != nil:
		log.Err(err).Str("func", "syncContext.LoadSchema").Msg("failed to read configuration")
		return fmt.Errorf("read configuration: %w", err)
	default:
		if err = store.ValidateConfiguration(cfg, s.cfg.ServiceURI, s.registry.TypeNames()); err != nil {
			log.Error().Err(err).Str("func", "syncContext.LoadSchema").Msg("local database belongs to another configuration")
			return err
		}
	}

	s.current = cfg
	s.schemaLoaded = true
	return nil
}

func (s *syncContext) BeginSession() error {
	s.schemaMu.Lock()
	loaded := s.schemaLoaded
	s.schemaMu.Unlock()
	if !loaded {
		return ErrSchemaNotLoaded
	}

	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	if s.sessionActive {
		return ErrSessionAlreadyActive
	}
	s.sessionActive = true
	return nil
}

func (s *syncContext) EndSession() {
	s.sessionMu.Lock()
	s.sessionActive = false
	s.sessionMu.Unlock()
}

func (s *syncContext) requireSession() error {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	if !s.sessionActive {
		return ErrNoActiveSession
	}
	return nil
}

func (s *syncContext) anchorBlob() []byte {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	return s.current.AnchorBlob
}

func (s *syncContext) adoptAnchor(blob []byte) {
	if len(blob) == 0 {
		return
	}
	s.schemaMu.Lock()
	s.current.AnchorBlob = blob
	s.schemaMu.Unlock()
}

func (s *syncContext) GetChangeSet(ctx context.Context, state string) (models.ChangeBatch, error) {
	if err := s.requireSession(); err != nil {
		return models.ChangeBatch{}, err
	}

	// Dirty flags decide what is pending, so the watermark stays at zero.
	batch, err := s.changes.ExtractChanges(ctx, s.registry.Descriptors(), time.Time{}, s.cfg.BatchSize)
	if err != nil {
		return models.ChangeBatch{}, fmt.Errorf("extract changes: %w", err)
	}
	batch.State = state
	batch.AnchorBlob = s.anchorBlob()

	s.inFlight.Register(state, batch)

	logger.FromContext(ctx).Debug().Str("state", state).Int("rows", batch.Len()).Msg("change set registered")
	return batch, nil
}

func (s *syncContext) OnChangeSetUploaded(ctx context.Context, state string, response models.UploadResponse) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if response.Error != "" {
		return fmt.Errorf("%w: %s", ErrUploadRejected, response.Error)
	}

	batch, ok := s.inFlight.Get(state)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchNotRegistered, state)
	}
	guard := store.WithPendingGuard(batch.Snapshot())
	descriptors := s.registry.Descriptors()

	if len(response.Conflicts) > 0 {
		live := make([]models.Entity, 0, len(response.Conflicts))
		for _, c := range response.Conflicts {
			live = append(live, c.Live)
			metrics.Conflicts.WithLabelValues(string(c.Resolution)).Inc()
		}
		if _, err := s.changes.ApplyChanges(ctx, descriptors, live, guard); err != nil {
			return s.applyError("apply conflict winners", err)
		}
	}

	if len(response.UpdatedItems) > 0 {
		if _, err := s.changes.ApplyChanges(ctx, descriptors, response.UpdatedItems, guard); err != nil {
			return s.applyError("apply updated items", err)
		}
	}

	if err := s.uploadSucceeded(ctx, state, response.UpdatedItems, s.rejectedRows(response.Errors)); err != nil {
		return err
	}

	s.adoptAnchor(response.ServerBlob)
	metrics.EntitiesUploaded.Add(float64(batch.Len()))
	return nil
}

func (s *syncContext) UploadSucceeded(ctx context.Context, state string) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	return s.uploadSucceeded(ctx, state, nil, nil)
}

func (s *syncContext) uploadSucceeded(ctx context.Context, state string, stamps []models.Entity, skip map[models.EntityRef]struct{}) error {
	// Take makes a second acknowledgement of the same state fail.
	batch, ok := s.inFlight.Take(state)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBatchNotRegistered, state)
	}

	if err := s.changes.AcknowledgeUpload(ctx, s.registry.Descriptors(), batch, stamps, skip); err != nil {
		s.inFlight.Register(state, batch)
		return s.applyError("acknowledge upload", err)
	}
	return nil
}

// rejectedRows returns the rows the service refused; they stay pending.
func (s *syncContext) rejectedRows(syncErrors []models.SyncError) map[models.EntityRef]struct{} {
	skip := make(map[models.EntityRef]struct{}, len(syncErrors))
	for _, e := range syncErrors {
		d, err := s.registry.Lookup(e.Error.TypeName)
		if err != nil {
			continue
		}
		keys, err := d.CanonicalKeys(e.Error.Keys)
		if err != nil {
			continue
		}
		skip[models.EntityRef{TypeName: d.TypeName, Key: models.KeyString(keys)}] = struct{}{}
	}
	return skip
}

func (s *syncContext) SaveChangeSet(ctx context.Context, changeSet models.ChangeSet) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	started := time.Now()
	if _, err := s.changes.ApplyChanges(ctx, s.registry.Descriptors(), changeSet.Entities); err != nil {
		return s.applyError("apply change set", err)
	}
	metrics.ApplyDuration.Observe(time.Since(started).Seconds())
	s.countApplied(changeSet.Entities)

	s.schemaMu.Lock()
	cfg := s.current
	s.schemaMu.Unlock()

	if len(changeSet.ServerBlob) > 0 {
		cfg.AnchorBlob = changeSet.ServerBlob
	}
	cfg.LastSyncDate = s.now().UTC()

	if err := s.configuration.SaveConfiguration(ctx, cfg); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncContext.SaveChangeSet").Msg("failed to persist anchor")
		return fmt.Errorf("save configuration: %w", err)
	}

	s.schemaMu.Lock()
	s.current = cfg
	s.schemaMu.Unlock()
	return nil
}

func (s *syncContext) countApplied(entities []models.Entity) {
	for _, e := range entities {
		d, err := s.registry.Lookup(e.TypeName)
		if err != nil {
			continue
		}
		metrics.EntitiesApplied.WithLabelValues(d.Table).Inc()
	}
}

func (s *syncContext) applyError(step string, err error) error {
	if errors.Is(err, schema.ErrUnknownType) {
		return fmt.Errorf("%s: %w: %w", step, ErrUnknownEntityType, err)
	}
	return fmt.Errorf("%s: %w", step, err)
}

func (s *syncContext) Synchronize(ctx context.Context) (result models.SyncResult, err error) {
	ctx = s.logger.WithContext(ctx)
	log := logger.FromContext(ctx)

	defer func() {
		status := metrics.StatusOK
		if err != nil {
			status = metrics.StatusFailed
		}
		metrics.SyncSessions.WithLabelValues(status).Inc()
	}()

	if err = s.LoadSchema(ctx); err != nil {
		return result, err
	}
	if err = s.BeginSession(); err != nil {
		return result, err
	}
	defer s.EndSession()

	// States are never reused, so a batch left after a failed upload is
	// dropped; its rows are still dirty and are extracted again next time.
	state := s.states.Generate()
	defer s.inFlight.Discard(state)

	batch, err := s.GetChangeSet(ctx, state)
	if err != nil {
		return result, err
	}

	if batch.Len() > 0 {
		response, err := s.adapter.Upload(ctx, models.UploadRequest{
			ScopeName:  s.cfg.Scope,
			AnchorBlob: batch.AnchorBlob,
			Entities:   batch.Entities(),
		})
		if err != nil {
			log.Err(err).Str("func", "syncContext.Synchronize").Str("state", state).Msg("upload failed")
			return result, fmt.Errorf("upload: %w", err)
		}

		if err = s.OnChangeSetUploaded(ctx, state, response); err != nil {
			return result, err
		}

		result.Uploaded = batch.Len() - len(response.Errors)
		result.Conflicts = response.Conflicts
		result.Errors = response.Errors
	}

	for {
		if err = ctx.Err(); err != nil {
			return result, err
		}

		changeSet, err := s.adapter.Download(ctx, models.DownloadRequest{
			ScopeName:  s.cfg.Scope,
			AnchorBlob: s.anchorBlob(),
			BatchSize:  s.cfg.DownloadBatchSize,
		})
		if err != nil {
			log.Err(err).Str("func", "syncContext.Synchronize").Msg("download failed")
			return result, fmt.Errorf("download: %w", err)
		}

		if err = s.SaveChangeSet(ctx, changeSet); err != nil {
			return result, err
		}
		result.Downloaded += len(changeSet.Entities)

		if changeSet.IsLastBatch {
			break
		}
	}

	log.Info().
		Int("uploaded", result.Uploaded).
		Int("downloaded", result.Downloaded).
		Int("conflicts", len(result.Conflicts)).
		Int("errors", len(result.Errors)).
		Msg("synchronization finished")
	return result, nil
}
