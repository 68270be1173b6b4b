// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/models"
)

// trackingRepository provisions data and tracking tables and their change
// hooks in the client SQLite database.
type trackingRepository struct {
	*DB
	logger *logger.Logger
}

// NewTrackingRepository constructs a [TrackingRepository] over db.
func NewTrackingRepository(db *DB, logger *logger.Logger) TrackingRepository {
	return &trackingRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateTrackingSchema creates the data table, its tracking table, the
// tracking indexes and the change hooks in one transaction. Data rows that
// exist without a tracking row are tracked as dirty inserts. Running it again
// is a no-op.
func (r *trackingRepository) CreateTrackingSchema(ctx context.Context, d schema.TableDescriptor) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "trackingRepository.CreateTrackingSchema").Str("table", d.Table).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	statements := []string{createDataTableSQL(d), createTrackingTableSQL(d)}
	statements = append(statements, createTrackingIndexesSQL(d)...)
	for _, stmt := range statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			log.Err(err).Str("func", "trackingRepository.CreateTrackingSchema").Str("table", d.Table).Msg("failed to create tracking schema")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = installChangeHooks(ctx, tx, d); err != nil {
		log.Err(err).Str("func", "trackingRepository.CreateTrackingSchema").Str("table", d.Table).Msg("failed to install change hooks")
		return err
	}

	res, err := tx.ExecContext(ctx, backfillTrackingSQL(d))
	if err != nil {
		log.Err(err).Str("func", "trackingRepository.CreateTrackingSchema").Str("table", d.Table).Msg("failed to backfill tracking rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "trackingRepository.CreateTrackingSchema").Str("table", d.Table).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	backfilled, _ := res.RowsAffected()
	log.Debug().Str("table", d.Table).Int64("backfilled", backfilled).Msg("tracking schema ready")
	return nil
}

// InstallChangeHooks drops and recreates the insert, update and delete hooks
// of the table on their own, so they follow the current descriptor.
func (r *trackingRepository) InstallChangeHooks(ctx context.Context, d schema.TableDescriptor) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "trackingRepository.InstallChangeHooks").Str("table", d.Table).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = installChangeHooks(ctx, tx, d); err != nil {
		log.Err(err).Str("func", "trackingRepository.InstallChangeHooks").Str("table", d.Table).Msg("failed to install change hooks")
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func installChangeHooks(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor) error {
	for _, stmt := range changeHooksSQL(d) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}
	return nil
}

// GetTrackingRow returns the tracking row of the given primary key.
func (r *trackingRepository) GetTrackingRow(ctx context.Context, d schema.TableDescriptor, keys map[string]any) (models.TrackingRow, error) {
	log := logger.FromContext(ctx)

	keyArgs, err := d.KeyArgs(keys)
	if err != nil {
		return models.TrackingRow{}, err
	}

	query, args, err := sq.Select(trackingColumns(d, "")...).
		From(quoteIdent(d.TrackingTable())).
		Where(keyPredicate(d, "", keyArgs)).
		ToSql()
	if err != nil {
		return models.TrackingRow{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := newTrackingScan(d)
	err = r.QueryRowContext(ctx, query, args...).Scan(row.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.TrackingRow{}, ErrTrackingRowNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "trackingRepository.GetTrackingRow").Str("table", d.Table).Msg("failed to scan tracking row")
		return models.TrackingRow{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row.trackingRow(), nil
}

// withSuspendedHooks runs fn with the change hooks of table disabled for
// statements executed on tx. The suspension row is removed again before
// returning, whatever fn returns; a rollback removes it as well.
func withSuspendedHooks(ctx context.Context, tx *sql.Tx, table string, fn func() error) (err error) {
	if _, err = tx.ExecContext(ctx, suspendHooksSQL, table); err != nil {
		return fmt.Errorf("%w: suspend hooks: %w", ErrExecutingStatement, err)
	}
	defer func() {
		_, restoreErr := tx.ExecContext(context.WithoutCancel(ctx), restoreHooksSQL, table)
		if restoreErr != nil && err == nil {
			err = fmt.Errorf("%w: restore hooks: %w", ErrExecutingStatement, restoreErr)
		}
	}()

	return fn()
}

// trackingColumns lists the tracking table columns prefixed by alias.
func trackingColumns(d schema.TableDescriptor, alias string) []string {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	cols := quoteIdents(d.KeyNames(), prefix)
	for _, c := range schema.TrackingColumns {
		cols = append(cols, prefix+c)
	}
	return cols
}

// keyPredicate matches the primary key columns (prefixed by alias) against
// coerced key values.
func keyPredicate(d schema.TableDescriptor, alias string, keyArgs []any) sq.Eq {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	eq := sq.Eq{}
	for i, name := range d.KeyNames() {
		eq[prefix+quoteIdent(name)] = keyArgs[i]
	}
	return eq
}

// trackingScan holds scan destinations for [trackingColumns].
type trackingScan struct {
	keyCols     []schema.Column
	keys        []any
	isTombstone bool
	isDirty     bool
	id          sql.NullString
	etag        sql.NullString
	editURI     sql.NullString
	lastMod     int64
}

func newTrackingScan(d schema.TableDescriptor) *trackingScan {
	cols := d.KeyColumns()
	return &trackingScan{keyCols: cols, keys: make([]any, len(cols))}
}

func (s *trackingScan) dest() []any {
	dest := make([]any, 0, len(s.keys)+6)
	for i := range s.keys {
		dest = append(dest, &s.keys[i])
	}
	return append(dest, &s.isTombstone, &s.isDirty, &s.id, &s.etag, &s.editURI, &s.lastMod)
}

func (s *trackingScan) keyMap() map[string]any {
	keys := make(map[string]any, len(s.keyCols))
	for i, c := range s.keyCols {
		keys[c.Name] = c.Normalize(s.keys[i])
	}
	return keys
}

func (s *trackingScan) trackingRow() models.TrackingRow {
	return models.TrackingRow{
		Keys:         s.keyMap(),
		IsTombstone:  s.isTombstone,
		IsDirty:      s.isDirty,
		ID:           s.id.String,
		ETag:         s.etag.String,
		EditURI:      s.editURI.String,
		LastModified: fromMillis(s.lastMod),
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
