// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

// serverChangeRepository is the PostgreSQL implementation of
// [ServerChangeRepository]. Entities are schema-less: keys and values are
// kept as JSONB documents.
type serverChangeRepository struct {
	*DB
	logger *logger.Logger
}

// NewServerChangeRepository constructs a [ServerChangeRepository] over db.
func NewServerChangeRepository(db *DB, logger *logger.Logger) ServerChangeRepository {
	return &serverChangeRepository{
		DB:     db,
		logger: logger,
	}
}

// EnsureReplica registers replicaID under scope. A replica id already known
// under another scope is reported as [ErrReplicaNotFound].
func (r *serverChangeRepository) EnsureReplica(ctx context.Context, scope, replicaID string) error {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(replicaID) {
		return ErrReplicaNotFound
	}

	if _, err := r.ExecContext(ctx, registerReplica, replicaID, scope); err != nil {
		log.Err(err).
			Str("func", "serverChangeRepository.EnsureReplica").
			Str("replica_id", replicaID).
			Msg("failed to register replica")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	var registeredScope string
	if err := r.QueryRowContext(ctx, findReplicaScope, replicaID).Scan(&registeredScope); err != nil {
		log.Err(err).
			Str("func", "serverChangeRepository.EnsureReplica").
			Str("replica_id", replicaID).
			Msg("failed to read replica")
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if registeredScope != scope {
		return ErrReplicaNotFound
	}
	return nil
}

// InTx runs fn in a transaction holding the advisory lock of scope.
func (r *serverChangeRepository) InTx(ctx context.Context, scope string, fn func(tx ServerChangeTx) error) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "serverChangeRepository.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, lockScope, scope); err != nil {
		log.Err(err).Str("func", "serverChangeRepository.InTx").Str("scope", scope).Msg("failed to lock scope")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = fn(&serverChangeTx{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "serverChangeRepository.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func (r *serverChangeRepository) ChangesSince(ctx context.Context, scope, replicaID string, after int64, limit int) ([]ServerEntity, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildChangesSinceQuery(scope, replicaID, after, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "serverChangeRepository.ChangesSince").
			Str("scope", scope).
			Int64("after", after).
			Msg("failed to execute query for changes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]ServerEntity, 0, limit)
	for rows.Next() {
		item, scanErr := scanServerEntity(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "serverChangeRepository.ChangesSince").
				Str("scope", scope).
				Msg("failed to scan entity row")
			return nil, scanErr
		}
		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "serverChangeRepository.ChangesSince").
			Str("scope", scope).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (r *serverChangeRepository) GetEntity(ctx context.Context, scope, id string) (ServerEntity, error) {
	return findEntity(ctx, r.DB, scope, sq.Eq{"id": id}, id)
}

// serverChangeTx is the [ServerChangeTx] handed to InTx callbacks.
type serverChangeTx struct {
	tx *sql.Tx
}

func (t *serverChangeTx) FindByID(ctx context.Context, scope, id string) (ServerEntity, error) {
	return findEntity(ctx, t.tx, scope, sq.Eq{"id": id}, id)
}

func (t *serverChangeTx) FindByKey(ctx context.Context, scope string, ref models.EntityRef) (ServerEntity, error) {
	return findEntity(ctx, t.tx, scope, sq.Eq{"type_name": ref.TypeName, "entity_key": ref.Key}, "")
}

// Insert stores e under a fresh service id and the next version.
func (t *serverChangeTx) Insert(ctx context.Context, scope, replicaID string, e models.Entity) (ServerEntity, error) {
	log := logger.FromContext(ctx)

	keys, err := json.Marshal(e.Keys)
	if err != nil {
		return ServerEntity{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	payload, err := encodePayload(e)
	if err != nil {
		return ServerEntity{}, err
	}

	version, err := t.nextVersion(ctx)
	if err != nil {
		return ServerEntity{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return ServerEntity{}, err
	}

	stored := ServerEntity{
		Entity:        e,
		Version:       version,
		OriginReplica: replicaID,
	}
	stored.ID = id.String()
	stored.ETag = utils.ETag(version, payload)
	stored.TempID = ""

	_, err = t.tx.ExecContext(ctx, insertEntity,
		stored.ID,
		scope,
		e.TypeName,
		e.KeyString(),
		keys,
		payload,
		e.IsTombstone,
		stored.ETag,
		version,
		nullableUUID(replicaID),
	)
	if err != nil {
		log.Err(err).
			Str("func", "serverChangeTx.Insert").
			Str("scope", scope).
			Str("type_name", e.TypeName).
			Msg("failed to insert entity")
		return ServerEntity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return stored, nil
}

// Update overwrites the row e.ID with the values and tombstone flag of e.
func (t *serverChangeTx) Update(ctx context.Context, scope, replicaID string, e models.Entity) (ServerEntity, error) {
	log := logger.FromContext(ctx)

	if !utils.IsUUID(e.ID) {
		return ServerEntity{}, ErrEntityNotFound
	}

	payload, err := encodePayload(e)
	if err != nil {
		return ServerEntity{}, err
	}

	version, err := t.nextVersion(ctx)
	if err != nil {
		return ServerEntity{}, err
	}
	etag := utils.ETag(version, payload)

	res, err := t.tx.ExecContext(ctx, updateEntity,
		scope,
		e.ID,
		payload,
		e.IsTombstone,
		etag,
		version,
		nullableUUID(replicaID),
	)
	if err != nil {
		log.Err(err).
			Str("func", "serverChangeTx.Update").
			Str("scope", scope).
			Str("id", e.ID).
			Msg("failed to update entity")
		return ServerEntity{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ServerEntity{}, ErrEntityNotFound
	}

	stored := ServerEntity{
		Entity:        e,
		Version:       version,
		OriginReplica: replicaID,
	}
	stored.ETag = etag
	stored.TempID = ""
	if stored.IsTombstone {
		stored.Values = nil
	}
	return stored, nil
}

func (t *serverChangeTx) nextVersion(ctx context.Context) (int64, error) {
	var version int64
	if err := t.tx.QueryRowContext(ctx, nextVersion).Scan(&version); err != nil {
		return 0, fmt.Errorf("%w: next version: %w", ErrScanningRow, err)
	}
	return version, nil
}

type rowQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// findEntity returns the single row of scope matching pred. id, when set, is
// checked to be a UUID first so a malformed id reads as not found.
func findEntity(ctx context.Context, q rowQueryer, scope string, pred sq.Eq, id string) (ServerEntity, error) {
	if id != "" && !utils.IsUUID(id) {
		return ServerEntity{}, ErrEntityNotFound
	}

	query, args, err := selectServerEntities().
		Where(sq.Eq{"scope_name": scope}).
		Where(pred).
		ToSql()
	if err != nil {
		return ServerEntity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	item, err := scanServerEntity(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return ServerEntity{}, ErrEntityNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "findEntity").Str("scope", scope).Msg("failed to scan entity")
		return ServerEntity{}, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanServerEntity(row rowScanner) (ServerEntity, error) {
	var (
		item    ServerEntity
		keys    []byte
		payload []byte
		origin  sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.TypeName,
		&keys,
		&payload,
		&item.IsTombstone,
		&item.ETag,
		&item.Version,
		&origin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ServerEntity{}, err
	}
	if err != nil {
		return ServerEntity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal(keys, &item.Keys); err != nil {
		return ServerEntity{}, fmt.Errorf("%w: keys: %w", ErrEncodingPayload, err)
	}
	if len(payload) > 0 && !item.IsTombstone {
		if err = json.Unmarshal(payload, &item.Values); err != nil {
			return ServerEntity{}, fmt.Errorf("%w: payload: %w", ErrEncodingPayload, err)
		}
	}
	item.OriginReplica = origin.String
	return item, nil
}

// encodePayload returns the JSON document stored for e. Tombstones have no
// payload.
func encodePayload(e models.Entity) ([]byte, error) {
	if e.IsTombstone {
		return nil, nil
	}
	values := e.Values
	if values == nil {
		values = map[string]any{}
	}
	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}
	return payload, nil
}

func nullableUUID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
