// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-offline-sync/internal/anchor"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/metrics"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	defaultDownloadBatchSize = 100
	maxDownloadBatchSize     = 1000
)

type syncService struct {
	repo     store.ServerChangeRepository
	resolver ConflictResolver
	replicas utils.IDGenerator

	logger *logger.Logger
}

// NewSyncService constructs the reconciliation service over repo. resolver
// settles every ETag conflict.
func NewSyncService(repo store.ServerChangeRepository, resolver ConflictResolver, logger *logger.Logger) SyncService {
	return &syncService{
		repo:     repo,
		resolver: resolver,
		replicas: utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// EditURI returns the resource path of a service entity.
func EditURI(scope, id string) string {
	return "/api/sync/" + url.PathEscape(scope) + "/entities/" + url.PathEscape(id)
}

func (s *syncService) IsRetryable(err error) bool {
	return s.repo.IsRetryable(err)
}

// replicaAnchor decodes blob and issues a replica id on first contact.
func (s *syncService) replicaAnchor(ctx context.Context, scope string, blob []byte) (anchor.Anchor, error) {
	a, err := anchor.Decode(blob)
	if err != nil {
		return anchor.Anchor{}, fmt.Errorf("%w: %w", ErrInvalidAnchor, err)
	}
	if a.ReplicaID == "" {
		a.ReplicaID = s.replicas.Generate()
	}

	err = s.repo.EnsureReplica(ctx, scope, a.ReplicaID)
	if errors.Is(err, store.ErrReplicaNotFound) {
		return anchor.Anchor{}, fmt.Errorf("%w: %w", ErrInvalidAnchor, err)
	}
	if err != nil {
		return anchor.Anchor{}, err
	}
	return a, nil
}

// Upload applies req inside one transaction. Changes of a replica are never
// sent back to it, so the anchor version does not move.
func (s *syncService) Upload(ctx context.Context, req models.UploadRequest) (resp models.UploadResponse, err error) {
	log := logger.FromContext(ctx)
	defer func() { countRequest("upload", err) }()

	if req.ScopeName == "" {
		return models.UploadResponse{}, fmt.Errorf("%w: empty scope", ErrInvalidDataProvided)
	}

	a, err := s.replicaAnchor(ctx, req.ScopeName, req.AnchorBlob)
	if err != nil {
		log.Err(err).Str("func", "syncService.Upload").Str("scope", req.ScopeName).Msg("failed to resolve replica")
		return models.UploadResponse{}, err
	}

	err = s.repo.InTx(ctx, req.ScopeName, func(tx store.ServerChangeTx) error {
		resp = models.UploadResponse{}
		u := uploader{tx: tx, resolver: s.resolver, scope: req.ScopeName, replica: a.ReplicaID}
		for _, e := range req.Entities {
			if err := u.apply(ctx, e, &resp); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "syncService.Upload").Str("scope", req.ScopeName).Msg("upload rolled back")
		return models.UploadResponse{}, err
	}

	resp.ServerBlob, err = anchor.Encode(a)
	if err != nil {
		return models.UploadResponse{}, err
	}
	resp.IsLastBatch = true

	for _, c := range resp.Conflicts {
		metrics.Conflicts.WithLabelValues(string(c.Resolution)).Inc()
	}

	log.Info().
		Str("scope", req.ScopeName).
		Str("replica_id", a.ReplicaID).
		Int("entities", len(req.Entities)).
		Int("updated", len(resp.UpdatedItems)).
		Int("conflicts", len(resp.Conflicts)).
		Int("errors", len(resp.Errors)).
		Msg("upload applied")
	return resp, nil
}

// uploader applies the entities of one upload within its transaction.
type uploader struct {
	tx       store.ServerChangeTx
	resolver ConflictResolver
	scope    string
	replica  string
}

func (u uploader) apply(ctx context.Context, e models.Entity, resp *models.UploadResponse) error {
	if e.TypeName == "" || len(e.Keys) == 0 {
		resp.Errors = append(resp.Errors, models.SyncError{Error: e, Description: "entity has no type name or keys"})
		return nil
	}

	var (
		existing store.ServerEntity
		err      error
	)
	if e.ID == "" {
		existing, err = u.tx.FindByKey(ctx, u.scope, e.Ref())
	} else {
		existing, err = u.tx.FindByID(ctx, u.scope, e.ID)
	}

	switch {
	case errors.Is(err, store.ErrEntityNotFound):
		return u.create(ctx, e, resp)
	case err != nil:
		return err
	}

	if e.ID != "" && existing.ETag == e.ETag {
		stored, err := u.tx.Update(ctx, u.scope, u.replica, e)
		if err != nil {
			return err
		}
		resp.UpdatedItems = append(resp.UpdatedItems, u.identity(stored, e))
		return nil
	}

	return u.conflict(ctx, existing, e, resp)
}

// create handles a change the service has no row for.
func (u uploader) create(ctx context.Context, e models.Entity, resp *models.UploadResponse) error {
	if e.IsTombstone {
		// Nothing to delete; acknowledge so the client drops the tombstone.
		resp.UpdatedItems = append(resp.UpdatedItems, e)
		return nil
	}
	if e.ID != "" {
		resp.Errors = append(resp.Errors, models.SyncError{Error: e, Description: "unknown entity id " + e.ID})
		return nil
	}

	stored, err := u.tx.Insert(ctx, u.scope, u.replica, e)
	if err != nil {
		return err
	}
	resp.UpdatedItems = append(resp.UpdatedItems, u.identity(stored, e))
	return nil
}

func (u uploader) conflict(ctx context.Context, existing store.ServerEntity, client models.Entity, resp *models.UploadResponse) error {
	server := u.live(existing)

	kind, merged, err := u.resolver.Resolve(ctx, server, client)
	if err != nil {
		return err
	}

	var toStore models.Entity
	switch kind {
	case models.ServerWins:
		resp.Conflicts = append(resp.Conflicts, models.Conflict{Live: server, Losing: client, Resolution: kind})
		return nil
	case models.ClientWins:
		toStore = client
	case models.Merge:
		if err = validateMerge(client, merged); err != nil {
			resp.Errors = append(resp.Errors, models.SyncError{Live: &server, Error: client, Description: err.Error()})
			return nil
		}
		toStore = merged
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConflictPolicy, kind)
	}

	toStore.ID = existing.ID
	stored, err := u.tx.Update(ctx, u.scope, u.replica, toStore)
	if err != nil {
		return err
	}

	losing := client
	if kind == models.ClientWins {
		losing = server
	}
	resp.Conflicts = append(resp.Conflicts, models.Conflict{Live: u.live(stored), Losing: losing, Resolution: kind})
	return nil
}

// identity is the updated item returned for an accepted change.
func (u uploader) identity(stored store.ServerEntity, sent models.Entity) models.Entity {
	item := u.live(stored)
	item.TempID = sent.TempID
	return item
}

func (u uploader) live(stored store.ServerEntity) models.Entity {
	e := stored.Entity
	e.EditURI = EditURI(u.scope, e.ID)
	return e
}

// Download returns rows written by other replicas after the anchor version.
func (s *syncService) Download(ctx context.Context, req models.DownloadRequest) (cs models.ChangeSet, err error) {
	log := logger.FromContext(ctx)
	defer func() { countRequest("download", err) }()

	if req.ScopeName == "" {
		return models.ChangeSet{}, fmt.Errorf("%w: empty scope", ErrInvalidDataProvided)
	}

	a, err := s.replicaAnchor(ctx, req.ScopeName, req.AnchorBlob)
	if err != nil {
		log.Err(err).Str("func", "syncService.Download").Str("scope", req.ScopeName).Msg("failed to resolve replica")
		return models.ChangeSet{}, err
	}

	limit := req.BatchSize
	switch {
	case limit <= 0:
		limit = defaultDownloadBatchSize
	case limit > maxDownloadBatchSize:
		limit = maxDownloadBatchSize
	}

	rows, err := s.repo.ChangesSince(ctx, req.ScopeName, a.ReplicaID, a.Version, limit)
	if err != nil {
		log.Err(err).Str("func", "syncService.Download").Str("scope", req.ScopeName).Msg("failed to read changes")
		return models.ChangeSet{}, err
	}

	cs.Entities = make([]models.Entity, 0, len(rows))
	for _, row := range rows {
		e := row.Entity
		e.EditURI = EditURI(req.ScopeName, e.ID)
		cs.Entities = append(cs.Entities, e)
		a.Version = row.Version
	}
	cs.IsLastBatch = len(rows) < limit

	cs.ServerBlob, err = anchor.Encode(a)
	if err != nil {
		return models.ChangeSet{}, err
	}

	log.Debug().
		Str("scope", req.ScopeName).
		Str("replica_id", a.ReplicaID).
		Int64("version", a.Version).
		Int("entities", len(cs.Entities)).
		Msg("changes served")
	return cs, nil
}

func (s *syncService) GetEntity(ctx context.Context, scope, id string) (models.Entity, error) {
	row, err := s.repo.GetEntity(ctx, scope, id)
	if errors.Is(err, store.ErrEntityNotFound) {
		return models.Entity{}, ErrEntityNotFound
	}
	if err != nil {
		return models.Entity{}, err
	}

	e := row.Entity
	e.EditURI = EditURI(scope, e.ID)
	return e, nil
}

func countRequest(op string, err error) {
	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusFailed
	}
	metrics.ServerRequests.WithLabelValues(op, status).Inc()
}
