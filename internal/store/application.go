// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/models"
)

type applyOptions struct {
	pending map[models.EntityRef]time.Time
}

// ApplyOption tunes [ChangeRepository.ApplyChanges].
type ApplyOption func(*applyOptions)

// WithPendingGuard protects rows changed locally after they were extracted.
// snapshot maps every extracted row to the LastModifiedDate it had at
// extraction time. A row whose tracking state moved on since then only gets
// the service identity (Id, ETag, EditUri) stamped; its data and dirty flag
// are left alone so the local change is uploaded next time.
func WithPendingGuard(snapshot map[models.EntityRef]time.Time) ApplyOption {
	return func(o *applyOptions) {
		o.pending = snapshot
	}
}

// ApplyChanges writes entities delivered by the service into the data and
// tracking tables without marking them as local changes. Tables are applied
// in descriptor order, each in its own transaction with its change hooks
// suspended; a failing row rolls back its whole table. It returns the number
// of entities applied by committed tables.
func (r *changeRepository) ApplyChanges(ctx context.Context, descriptors []schema.TableDescriptor, entities []models.Entity, opts ...ApplyOption) (int, error) {
	log := logger.FromContext(ctx)

	var o applyOptions
	for _, opt := range opts {
		opt(&o)
	}

	groups, err := groupByType(descriptors, entities)
	if err != nil {
		log.Err(err).Str("func", "changeRepository.ApplyChanges").Msg("unknown entity type in change set")
		return 0, err
	}

	applied := 0
	for _, d := range descriptors {
		group := groups[d.TypeName]
		if len(group) == 0 {
			continue
		}
		if err = ctx.Err(); err != nil {
			return applied, err
		}

		if err = r.applyTable(ctx, d, group, o); err != nil {
			log.Err(err).
				Str("func", "changeRepository.ApplyChanges").
				Str("table", d.Table).
				Msg("failed to apply changes, table rolled back")
			return applied, err
		}
		applied += len(group)
		log.Debug().Str("table", d.Table).Int("rows", len(group)).Msg("changes applied")
	}

	return applied, nil
}

func groupByType(descriptors []schema.TableDescriptor, entities []models.Entity) (map[string][]models.Entity, error) {
	groups := make(map[string][]models.Entity, len(descriptors))
	for _, d := range descriptors {
		groups[d.TypeName] = nil
	}
	for _, e := range entities {
		if _, ok := groups[e.TypeName]; !ok {
			return nil, fmt.Errorf("%w: %q", schema.ErrUnknownType, e.TypeName)
		}
		groups[e.TypeName] = append(groups[e.TypeName], e)
	}
	return groups, nil
}

func (r *changeRepository) applyTable(ctx context.Context, d schema.TableDescriptor, entities []models.Entity, o applyOptions) error {
	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	err = withSuspendedHooks(ctx, tx, d.Table, func() error {
		for _, e := range entities {
			if err := applyEntity(ctx, tx, d, e, o); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

func applyEntity(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, e models.Entity, o applyOptions) error {
	if e.IsTombstone {
		return applyTombstone(ctx, tx, d, e, o)
	}

	keyArgs, err := d.KeyArgs(e.Keys)
	if err != nil {
		return err
	}

	if o.pending != nil {
		changed, err := changedSinceExtraction(ctx, tx, d, e, keyArgs, o.pending)
		if err != nil {
			return err
		}
		if changed {
			return stampIdentity(ctx, tx, d, keyArgs, e)
		}
	}

	valueNames, valueArgs, err := d.PresentValueArgs(e.Values)
	if err != nil {
		return err
	}
	exists, err := upsertDataRow(ctx, tx, d, keyArgs, valueNames, valueArgs)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return upsertTrackingRow(ctx, tx, d, keyArgs, e)
}

func applyTombstone(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, e models.Entity, o applyOptions) error {
	keyArgs, found, err := resolveLocalKeys(ctx, tx, d, e)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if o.pending != nil {
		changed, err := changedSinceExtraction(ctx, tx, d, e, keyArgs, o.pending)
		if err != nil {
			return err
		}
		if changed {
			return nil
		}
	}

	for _, table := range []string{d.Table, d.TrackingTable()} {
		query, args, err := sq.Delete(quoteIdent(table)).
			Where(keyPredicate(d, "", keyArgs)).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: delete from %s: %w", ErrExecutingStatement, table, err)
		}
	}
	return nil
}

// resolveLocalKeys finds the local primary key of a deleted service entity:
// by its service id when the tracking table knows it, by the keys it
// carries otherwise. found is false when neither identifies a row.
func resolveLocalKeys(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, e models.Entity) (keyArgs []any, found bool, err error) {
	if e.ID != "" {
		query, args, err := sq.Select(quoteIdents(d.KeyNames(), "")...).
			From(quoteIdent(d.TrackingTable())).
			Where(sq.Eq{colID: e.ID}).
			Limit(1).
			ToSql()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		keys := make([]any, len(d.KeyNames()))
		dest := make([]any, len(keys))
		for i := range keys {
			dest[i] = &keys[i]
		}
		err = tx.QueryRowContext(ctx, query, args...).Scan(dest...)
		switch {
		case err == nil:
			return keys, true, nil
		case !errors.Is(err, sql.ErrNoRows):
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
	}

	if len(e.Keys) == 0 {
		return nil, false, nil
	}
	keyArgs, err = d.KeyArgs(e.Keys)
	if err != nil {
		return nil, false, err
	}
	return keyArgs, true, nil
}

// changedSinceExtraction reports whether the tracking row of e differs from
// the state recorded in snapshot. Rows absent from snapshot are unchanged.
func changedSinceExtraction(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, e models.Entity, keyArgs []any, snapshot map[models.EntityRef]time.Time) (bool, error) {
	ref, err := canonicalRef(d, e.Keys)
	if err != nil {
		return false, err
	}
	extracted, ok := snapshot[ref]
	if !ok {
		return false, nil
	}

	current, found, err := trackingLastModified(ctx, tx, d, keyArgs)
	if err != nil {
		return false, err
	}
	return !found || current != toMillis(extracted), nil
}

func trackingLastModified(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, keyArgs []any) (int64, bool, error) {
	query, args, err := sq.Select(colLastModified).
		From(quoteIdent(d.TrackingTable())).
		Where(keyPredicate(d, "", keyArgs)).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var lastMod int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&lastMod)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return lastMod, true, nil
}

// upsertDataRow writes the given value columns of the row, inserting it if
// it does not exist. Columns not listed keep their stored value. exists is
// false when there is no row afterwards, as for an identity-only entity of a
// row unknown locally.
func upsertDataRow(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, keyArgs []any, valueNames []string, valueArgs []any) (exists bool, err error) {
	if len(valueNames) > 0 {
		update := sq.Update(quoteIdent(d.Table))
		for i, name := range valueNames {
			update = update.Set(quoteIdent(name), valueArgs[i])
		}
		query, args, err := update.Where(keyPredicate(d, "", keyArgs)).ToSql()
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, fmt.Errorf("%w: update %s: %w", ErrExecutingStatement, d.Table, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return true, nil
		}
	}

	query, args, err := sq.Insert(quoteIdent(d.Table)).
		Options("OR IGNORE").
		Columns(append(quoteIdents(d.KeyNames(), ""), quoteIdents(valueNames, "")...)...).
		Values(append(append([]any{}, keyArgs...), valueArgs...)...).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: insert into %s: %w", ErrExecutingStatement, d.Table, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return true, nil
	}
	return dataRowExists(ctx, tx, d, keyArgs)
}

func dataRowExists(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, keyArgs []any) (bool, error) {
	query, args, err := sq.Select("1").
		From(quoteIdent(d.Table)).
		Where(keyPredicate(d, "", keyArgs)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return true, nil
}

// upsertTrackingRow marks the row clean and records its service identity.
// Empty identity fields keep the stored value.
func upsertTrackingRow(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, keyArgs []any, e models.Entity) error {
	keys := quoteIdents(d.KeyNames(), "")
	suffix := fmt.Sprintf(`ON CONFLICT (%s) DO UPDATE SET
    %s = 0,
    %s = 0,
    %s,
    %s = MAX(excluded.%s, %s + 1)`,
		strings.Join(keys, ", "),
		colIsTombstone,
		colIsDirty,
		strings.Join(keepIdentitySQL("excluded."), ",\n    "),
		colLastModified, colLastModified, colLastModified)

	values := append(append([]any{}, keyArgs...), 0, 0, e.ID, e.ETag, e.EditURI, sq.Expr(nowMillisSQL))
	query, args, err := sq.Insert(quoteIdent(d.TrackingTable())).
		Columns(append(keys, colIsTombstone, colIsDirty, colID, colETag, colEditURI, colLastModified)...).
		Values(values...).
		Suffix(suffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: upsert %s: %w", ErrExecutingStatement, d.TrackingTable(), err)
	}
	return nil
}

// stampIdentity records the service identity of a row without touching its
// dirty state.
func stampIdentity(ctx context.Context, tx *sql.Tx, d schema.TableDescriptor, keyArgs []any, e models.Entity) error {
	query, args, err := stampBuilder(d, keyArgs, e).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: stamp %s: %w", ErrExecutingStatement, d.TrackingTable(), err)
	}
	return nil
}

func stampBuilder(d schema.TableDescriptor, keyArgs []any, e models.Entity) sq.UpdateBuilder {
	return sq.Update(quoteIdent(d.TrackingTable())).
		Set(colID, sq.Expr("COALESCE(NULLIF(?, ''), "+colID+")", e.ID)).
		Set(colETag, sq.Expr("COALESCE(NULLIF(?, ''), "+colETag+")", e.ETag)).
		Set(colEditURI, sq.Expr("COALESCE(NULLIF(?, ''), "+colEditURI+")", e.EditURI)).
		Where(keyPredicate(d, "", keyArgs))
}

func keepIdentitySQL(source string) []string {
	out := make([]string, 0, 3)
	for _, c := range []string{colID, colETag, colEditURI} {
		out = append(out, fmt.Sprintf("%s = COALESCE(NULLIF(%s%s, ''), %s)", c, source, c, c))
	}
	return out
}

func canonicalRef(d schema.TableDescriptor, keys map[string]any) (models.EntityRef, error) {
	canonical, err := d.CanonicalKeys(keys)
	if err != nil {
		return models.EntityRef{}, err
	}
	return models.EntityRef{TypeName: d.TypeName, Key: models.KeyString(canonical)}, nil
}

// AcknowledgeUpload moves the rows of an uploaded batch out of the pending
// state once the service accepted them. Tombstones lose their tracking row;
// other rows are marked clean and stamped with the identity found in stamps.
// A row is only touched if its tracking state is still the one observed at
// extraction, so local changes made during the upload stay pending. Rows in
// skip are left as they are.
func (r *changeRepository) AcknowledgeUpload(ctx context.Context, descriptors []schema.TableDescriptor, batch models.ChangeBatch, stamps []models.Entity, skip map[models.EntityRef]struct{}) error {
	log := logger.FromContext(ctx)

	byType := make(map[string]schema.TableDescriptor, len(descriptors))
	for _, d := range descriptors {
		byType[d.TypeName] = d
	}

	identities := make(map[models.EntityRef]models.Entity, len(stamps))
	for _, s := range stamps {
		d, ok := byType[s.TypeName]
		if !ok {
			continue
		}
		ref, err := canonicalRef(d, s.Keys)
		if err != nil {
			continue
		}
		identities[ref] = s
	}

	groups := make(map[string][]models.TrackedEntity, len(descriptors))
	for _, item := range batch.Items {
		if _, ok := byType[item.TypeName]; !ok {
			return fmt.Errorf("%w: %q", schema.ErrUnknownType, item.TypeName)
		}
		if _, skipped := skip[item.Ref()]; skipped {
			continue
		}
		groups[item.TypeName] = append(groups[item.TypeName], item)
	}

	for _, d := range descriptors {
		items := groups[d.TypeName]
		if len(items) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.acknowledgeTable(ctx, d, items, identities); err != nil {
			log.Err(err).
				Str("func", "changeRepository.AcknowledgeUpload").
				Str("table", d.Table).
				Msg("failed to acknowledge upload")
			return err
		}
	}

	log.Debug().Int("rows", batch.Len()).Int("skipped", len(skip)).Msg("upload acknowledged")
	return nil
}

func (r *changeRepository) acknowledgeTable(ctx context.Context, d schema.TableDescriptor, items []models.TrackedEntity, identities map[models.EntityRef]models.Entity) error {
	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, item := range items {
		keyArgs, err := d.KeyArgs(item.Keys)
		if err != nil {
			return err
		}
		unchanged := sq.Eq{colLastModified: toMillis(item.LastModified)}

		var query string
		var args []any
		if item.IsTombstone {
			query, args, err = sq.Delete(quoteIdent(d.TrackingTable())).
				Where(keyPredicate(d, "", keyArgs)).
				Where(sq.Eq{colIsTombstone: 1}).
				Where(unchanged).
				ToSql()
		} else {
			query, args, err = stampBuilder(d, keyArgs, identities[item.Ref()]).
				Set(colIsDirty, 0).
				Where(unchanged).
				ToSql()
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
