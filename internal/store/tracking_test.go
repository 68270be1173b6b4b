// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/models"
)

func notesDescriptor() schema.TableDescriptor {
	return schema.NewTable("note", "notes").
		Key("id", schema.Integer).
		Field("title", schema.Text).
		Field("done", schema.Boolean).
		MustBuild()
}

func newTestClientDB(t *testing.T) (*DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "client.db")
	db, err := NewConnectSQLite(context.Background(), config.ClientDB{DSN: path}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, path
}

// newTestClient returns client repositories over a fresh database with the
// notes table provisioned.
func newTestClient(t *testing.T) *ClientStorages {
	t.Helper()
	db, _ := newTestClientDB(t)
	storages := newClientStorages(db, logger.Nop())
	require.NoError(t, storages.Tracking.CreateTrackingSchema(context.Background(), notesDescriptor()))
	return storages
}

func noteKeys(id int64) map[string]any {
	return map[string]any{"id": id}
}

func insertNote(t *testing.T, s *ClientStorages, id int64, title string) {
	t.Helper()
	require.NoError(t, s.Entities.Insert(context.Background(), notesDescriptor(), models.Entity{
		TypeName: "note",
		Keys:     noteKeys(id),
		Values:   map[string]any{"title": title, "done": false},
	}))
}

func trackingRow(t *testing.T, s *ClientStorages, id int64) models.TrackingRow {
	t.Helper()
	row, err := s.Tracking.GetTrackingRow(context.Background(), notesDescriptor(), noteKeys(id))
	require.NoError(t, err)
	return row
}

func TestCreateTrackingSchema_Idempotent(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()

	insertNote(t, s, 1, "a")
	require.NoError(t, s.Tracking.CreateTrackingSchema(ctx, notesDescriptor()))
	require.NoError(t, s.Tracking.InstallChangeHooks(ctx, notesDescriptor()))

	rows, err := s.Entities.List(ctx, notesDescriptor())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, trackingRow(t, s, 1).IsDirty)
}

func TestCreateTrackingSchema_KeyNamedID(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info('notes_tracking') ORDER BY cid`)
	require.NoError(t, err)
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		columns = append(columns, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, append([]string{"id"}, schema.TrackingColumns...), columns)
}

func TestInstallChangeHooks_RecreatesDroppedHook(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `DROP TRIGGER "notes_ai"`)
	require.NoError(t, err)
	require.NoError(t, s.Tracking.InstallChangeHooks(ctx, notesDescriptor()))
	require.NoError(t, s.Tracking.InstallChangeHooks(ctx, notesDescriptor()))

	var hooks int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger' AND tbl_name = 'notes'`).Scan(&hooks))
	assert.Equal(t, 3, hooks)

	insertNote(t, s, 1, "tracked again")
	assert.True(t, trackingRow(t, s, 1).IsDirty)
}

func TestCreateTrackingSchema_BackfillsExistingRows(t *testing.T) {
	db, _ := newTestClientDB(t)
	ctx := context.Background()
	d := notesDescriptor()

	_, err := db.ExecContext(ctx, createDataTableSQL(d))
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO "notes" ("id", "title", "done") VALUES (1, 'legacy', 0), (2, 'older', 1)`)
	require.NoError(t, err)

	s := newClientStorages(db, logger.Nop())
	require.NoError(t, s.Tracking.CreateTrackingSchema(ctx, d))

	for _, id := range []int64{1, 2} {
		row := trackingRow(t, s, id)
		assert.True(t, row.IsDirty)
		assert.False(t, row.IsTombstone)
		assert.Empty(t, row.ID)
	}
}

func TestChangeHooks_InsertUpdateDelete(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()
	d := notesDescriptor()

	insertNote(t, s, 1, "a")
	inserted := trackingRow(t, s, 1)
	assert.True(t, inserted.IsDirty)
	assert.False(t, inserted.IsTombstone)
	assert.False(t, inserted.LastModified.IsZero())

	require.NoError(t, s.Entities.Update(ctx, d, models.Entity{Keys: noteKeys(1), Values: map[string]any{"title": "b"}}))
	updated := trackingRow(t, s, 1)
	assert.True(t, updated.LastModified.After(inserted.LastModified))

	require.NoError(t, s.Entities.Delete(ctx, d, noteKeys(1)))
	deleted := trackingRow(t, s, 1)
	assert.True(t, deleted.IsTombstone)
	assert.True(t, deleted.IsDirty)
	assert.True(t, deleted.LastModified.After(updated.LastModified))

	// re-inserting a deleted key revives the tracking row
	insertNote(t, s, 1, "again")
	revived := trackingRow(t, s, 1)
	assert.False(t, revived.IsTombstone)
	assert.True(t, revived.LastModified.After(deleted.LastModified))
}

func TestChangeHooks_PrimaryKeyChange(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()

	insertNote(t, s, 1, "a")
	_, err := s.Tracking.(*trackingRepository).ExecContext(ctx, `UPDATE "notes" SET "id" = 2 WHERE "id" = 1`)
	require.NoError(t, err)

	old := trackingRow(t, s, 1)
	assert.True(t, old.IsTombstone)
	assert.True(t, old.IsDirty)

	moved := trackingRow(t, s, 2)
	assert.False(t, moved.IsTombstone)
	assert.True(t, moved.IsDirty)
}

func TestWithSuspendedHooks(t *testing.T) {
	db, _ := newTestClientDB(t)
	s := newClientStorages(db, logger.Nop())
	ctx := context.Background()
	require.NoError(t, s.Tracking.CreateTrackingSchema(ctx, notesDescriptor()))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	err = withSuspendedHooks(ctx, tx, "notes", func() error {
		_, err := tx.ExecContext(ctx, `INSERT INTO "notes" ("id", "title") VALUES (9, 'quiet')`)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	_, err = s.Tracking.GetTrackingRow(ctx, notesDescriptor(), noteKeys(9))
	assert.ErrorIs(t, err, ErrTrackingRowNotFound)

	var suspended int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_hook_suspension`).Scan(&suspended))
	assert.Zero(t, suspended)

	// hooks are live again after the suspension ends
	insertNote(t, s, 10, "loud")
	assert.True(t, trackingRow(t, s, 10).IsDirty)
}

func TestNewConnectSQLite_ClearsStaleSuspensions(t *testing.T) {
	db, path := newTestClientDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, suspendHooksSQL, "notes")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := NewConnectSQLite(ctx, config.ClientDB{DSN: path}, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	var suspended int
	require.NoError(t, reopened.QueryRowContext(ctx, `SELECT COUNT(*) FROM sync_hook_suspension`).Scan(&suspended))
	assert.Zero(t, suspended)
}

func TestGetTrackingRow_NotFound(t *testing.T) {
	s := newTestClient(t)

	_, err := s.Tracking.GetTrackingRow(context.Background(), notesDescriptor(), noteKeys(404))
	assert.ErrorIs(t, err, ErrTrackingRowNotFound)
}
