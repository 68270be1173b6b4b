// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/models"
)

// entityRepository is the application's access path to synced data tables.
// It issues plain statements only; the change hooks do the tracking.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] over db.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) Insert(ctx context.Context, d schema.TableDescriptor, e models.Entity) error {
	log := logger.FromContext(ctx)

	keyArgs, err := d.KeyArgs(e.Keys)
	if err != nil {
		return err
	}
	valueArgs, err := d.ValueArgs(e.Values)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert(quoteIdent(d.Table)).
		Columns(append(quoteIdents(d.KeyNames(), ""), quoteIdents(d.ValueNames(), "")...)...).
		Values(append(keyArgs, valueArgs...)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "entityRepository.Insert").Str("table", d.Table).Msg("failed to insert row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *entityRepository) Update(ctx context.Context, d schema.TableDescriptor, e models.Entity) error {
	log := logger.FromContext(ctx)

	keyArgs, err := d.KeyArgs(e.Keys)
	if err != nil {
		return err
	}

	names, values, err := d.PresentValueArgs(e.Values)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	update := sq.Update(quoteIdent(d.Table))
	for i, name := range names {
		update = update.Set(quoteIdent(name), values[i])
	}

	query, args, err := update.Where(keyPredicate(d, "", keyArgs)).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.Update").Str("table", d.Table).Msg("failed to update row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntityNotFound
	}
	return nil
}

func (r *entityRepository) Delete(ctx context.Context, d schema.TableDescriptor, keys map[string]any) error {
	log := logger.FromContext(ctx)

	keyArgs, err := d.KeyArgs(keys)
	if err != nil {
		return err
	}

	query, args, err := sq.Delete(quoteIdent(d.Table)).Where(keyPredicate(d, "", keyArgs)).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.Delete").Str("table", d.Table).Msg("failed to delete row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntityNotFound
	}
	return nil
}

func (r *entityRepository) Get(ctx context.Context, d schema.TableDescriptor, keys map[string]any) (models.Entity, error) {
	keyArgs, err := d.KeyArgs(keys)
	if err != nil {
		return models.Entity{}, err
	}

	query, args, err := sq.Select(quoteIdents(columnNames(d), "")...).
		From(quoteIdent(d.Table)).
		Where(keyPredicate(d, "", keyArgs)).
		ToSql()
	if err != nil {
		return models.Entity{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	raw := make([]any, len(d.Columns))
	dest := make([]any, len(raw))
	for i := range raw {
		dest[i] = &raw[i]
	}
	err = r.QueryRowContext(ctx, query, args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entity{}, ErrEntityNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "entityRepository.Get").Str("table", d.Table).Msg("failed to scan row")
		return models.Entity{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rowEntity(d, raw), nil
}

func (r *entityRepository) List(ctx context.Context, d schema.TableDescriptor) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(quoteIdents(columnNames(d), "")...).
		From(quoteIdent(d.Table)).
		OrderBy(quoteIdents(d.KeyNames(), "")...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "entityRepository.List").Str("table", d.Table).Msg("failed to query rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entities := make([]models.Entity, 0)
	for rows.Next() {
		raw := make([]any, len(d.Columns))
		dest := make([]any, len(raw))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err = rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entities = append(entities, rowEntity(d, raw))
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entities, nil
}

func columnNames(d schema.TableDescriptor) []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Name
	}
	return out
}

// rowEntity converts a scanned row, in descriptor column order, to an entity.
func rowEntity(d schema.TableDescriptor, raw []any) models.Entity {
	e := models.Entity{
		TypeName: d.TypeName,
		Keys:     make(map[string]any),
		Values:   make(map[string]any),
	}
	for i, c := range d.Columns {
		if c.PrimaryKey {
			e.Keys[c.Name] = c.Normalize(raw[i])
		} else {
			e.Values[c.Name] = c.Normalize(raw[i])
		}
	}
	return e
}
