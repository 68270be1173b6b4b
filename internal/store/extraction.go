// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

// ExtractChanges collects dirty and tombstoned rows modified after since,
// table by table in descriptor order and row by row in tracking insertion
// order. When maxBatchRows is positive the batch holds at most that many
// rows, possibly stopping in the middle of a table.
//
// Tombstones of rows the service never acknowledged are dropped instead of
// being sent.
func (r *changeRepository) ExtractChanges(ctx context.Context, descriptors []schema.TableDescriptor, since time.Time, maxBatchRows int) (models.ChangeBatch, error) {
	log := logger.FromContext(ctx)

	var batch models.ChangeBatch
	for _, d := range descriptors {
		limit := 0
		if maxBatchRows > 0 {
			limit = maxBatchRows - len(batch.Items)
			if limit <= 0 {
				break
			}
		}

		items, err := r.extractTable(ctx, d, since, limit)
		if err != nil {
			log.Err(err).
				Str("func", "changeRepository.ExtractChanges").
				Str("table", d.Table).
				Msg("failed to extract changes")
			return models.ChangeBatch{}, err
		}
		batch.Items = append(batch.Items, items...)
	}

	if maxBatchRows > 0 && len(batch.Items) > maxBatchRows {
		batch.Items = batch.Items[:maxBatchRows]
	}

	log.Debug().Int("rows", len(batch.Items)).Msg("changes extracted")
	return batch, nil
}

func (r *changeRepository) extractTable(ctx context.Context, d schema.TableDescriptor, since time.Time, limit int) ([]models.TrackedEntity, error) {
	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	pruned, err := tx.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = 1 AND (%s IS NULL OR %s = '')`,
		quoteIdent(d.TrackingTable()), colIsTombstone, colID, colID))
	if err != nil {
		return nil, fmt.Errorf("%w: prune tombstones: %w", ErrExecutingStatement, err)
	}

	query, args, err := buildExtractQuery(d, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	valueCols := d.ValueColumns()
	items := make([]models.TrackedEntity, 0, 16)
	for rows.Next() {
		tracking := newTrackingScan(d)
		values := make([]any, len(valueCols))
		dest := tracking.dest()
		for i := range values {
			dest = append(dest, &values[i])
		}

		if err = rows.Scan(dest...); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		item := models.TrackedEntity{
			Entity: models.Entity{
				TypeName:    d.TypeName,
				Keys:        tracking.keyMap(),
				IsTombstone: tracking.isTombstone,
				ID:          tracking.id.String,
				ETag:        tracking.etag.String,
				EditURI:     tracking.editURI.String,
			},
			LastModified: fromMillis(tracking.lastMod),
		}
		if !item.IsTombstone {
			item.Values = make(map[string]any, len(valueCols))
			for i, c := range valueCols {
				item.Values[c.Name] = c.Normalize(values[i])
			}
		}
		if item.ID == "" {
			item.TempID = utils.StableID(d.TypeName, models.KeyString(item.Keys))
		}

		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	rows.Close()

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	if n, _ := pruned.RowsAffected(); n > 0 {
		logger.FromContext(ctx).Debug().Str("table", d.Table).Int64("pruned", n).Msg("dropped unsynced tombstones")
	}

	return items, nil
}

// buildExtractQuery selects tracking columns plus the non-key data columns
// of rows that are dirty or tombstoned and changed after since.
func buildExtractQuery(d schema.TableDescriptor, since time.Time, limit int) (string, []any, error) {
	join := make([]string, 0, len(d.KeyNames()))
	for _, k := range d.KeyNames() {
		q := quoteIdent(k)
		join = append(join, fmt.Sprintf("t.%s = d.%s", q, q))
	}

	cols := append(trackingColumns(d, "t"), quoteIdents(d.ValueNames(), "d.")...)

	builder := sq.Select(cols...).
		From(quoteIdent(d.TrackingTable()) + " AS t").
		LeftJoin(quoteIdent(d.Table) + " AS d ON " + strings.Join(join, " AND ")).
		Where(sq.Or{
			sq.Eq{"t." + colIsTombstone: 1},
			sq.Eq{"t." + colIsDirty: 1},
		}).
		Where(sq.Gt{"t." + colLastModified: toMillis(since)}).
		OrderBy("t.rowid")

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return builder.ToSql()
}
