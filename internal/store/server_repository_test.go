// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	testReplica = "0190b3a0-0000-7000-8000-000000000001"
	testEntity  = "0190b3a0-0000-7000-8000-0000000000aa"
)

func newTestServerRepo(t *testing.T) (ServerChangeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	l := logger.Nop()
	repo := NewServerChangeRepository(&DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()}, l)
	return repo, mock
}

func entityRows() *sqlmock.Rows {
	return sqlmock.NewRows(serverEntityColumns)
}

func TestEnsureReplica(t *testing.T) {
	t.Run("registers new replica", func(t *testing.T) {
		repo, mock := newTestServerRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_replicas")).
			WithArgs(testReplica, "notes").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT scope_name")).
			WithArgs(testReplica).
			WillReturnRows(sqlmock.NewRows([]string{"scope_name"}).AddRow("notes"))

		assert.NoError(t, repo.EnsureReplica(context.Background(), "notes", testReplica))
	})

	t.Run("replica of another scope", func(t *testing.T) {
		repo, mock := newTestServerRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_replicas")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT scope_name")).
			WillReturnRows(sqlmock.NewRows([]string{"scope_name"}).AddRow("tasks"))

		assert.ErrorIs(t, repo.EnsureReplica(context.Background(), "notes", testReplica), ErrReplicaNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		repo, _ := newTestServerRepo(t)
		assert.ErrorIs(t, repo.EnsureReplica(context.Background(), "notes", "not-a-uuid"), ErrReplicaNotFound)
	})
}

func TestInTx_CommitsInsert(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WithArgs("notes").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("nextval")).WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(12)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_entities")).
		WithArgs(sqlmock.AnyArg(), "notes", "note", `{"id":1}`, []byte(`{"id":1}`), []byte(`{"title":"a"}`), false, sqlmock.AnyArg(), int64(12), testReplica).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var got ServerEntity
	err := repo.InTx(ctx, "notes", func(tx ServerChangeTx) error {
		var err error
		got, err = tx.Insert(ctx, "notes", testReplica, models.Entity{
			TypeName: "note",
			Keys:     map[string]any{"id": float64(1)},
			Values:   map[string]any{"title": "a"},
			TempID:   "tmp",
		})
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), got.Version)
	assert.NotEmpty(t, got.ID)
	assert.NotEmpty(t, got.ETag)
	assert.Empty(t, got.TempID)
	assert.Equal(t, testReplica, got.OriginReplica)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	boom := errors.New("stop")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InTx(context.Background(), "notes", func(ServerChangeTx) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestServerChangeTx_UpdateMissingRow(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("nextval")).WillReturnRows(sqlmock.NewRows([]string{"nextval"}).AddRow(int64(13)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sync_entities")).
		WithArgs("notes", testEntity, sqlmock.AnyArg(), true, sqlmock.AnyArg(), int64(13), testReplica).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.InTx(ctx, "notes", func(tx ServerChangeTx) error {
		_, err := tx.Update(ctx, "notes", testReplica, models.Entity{TypeName: "note", ID: testEntity, IsTombstone: true})
		return err
	})
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestServerChangeTx_FindByKey(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	ctx := context.Background()
	ref := models.EntityRef{TypeName: "note", Key: `{"id":1}`}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_entities WHERE scope_name = $1")).
		WithArgs("notes", `{"id":1}`, "note").
		WillReturnRows(entityRows().AddRow(testEntity, "note", []byte(`{"id":1}`), []byte(`{"title":"a"}`), false, `"e1"`, int64(4), nil))
	mock.ExpectCommit()

	err := repo.InTx(ctx, "notes", func(tx ServerChangeTx) error {
		got, err := tx.FindByKey(ctx, "notes", ref)
		require.NoError(t, err)
		assert.Equal(t, testEntity, got.ID)
		assert.Equal(t, map[string]any{"title": "a"}, got.Values)
		assert.Empty(t, got.OriginReplica)
		return nil
	})
	require.NoError(t, err)
}

func TestChangesSince(t *testing.T) {
	repo, mock := newTestServerRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_entities WHERE scope_name = $1 AND version > $2 AND origin_replica IS DISTINCT FROM $3::uuid ORDER BY version LIMIT 2")).
		WithArgs("notes", int64(3), testReplica).
		WillReturnRows(entityRows().
			AddRow(testEntity, "note", []byte(`{"id":1}`), []byte(`{"title":"a"}`), false, `"e4"`, int64(4), "0190b3a0-0000-7000-8000-000000000002").
			AddRow(testEntity, "note", []byte(`{"id":2}`), nil, true, `"e5"`, int64(5), nil))

	rows, err := repo.ChangesSince(context.Background(), "notes", testReplica, 3, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(4), rows[0].Version)
	assert.Equal(t, "a", rows[0].Values["title"])
	assert.True(t, rows[1].IsTombstone)
	assert.Nil(t, rows[1].Values)
	assert.Equal(t, float64(2), rows[1].Keys["id"])
}

func TestChangesSince_QueryError(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_entities")).WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})

	_, err := repo.ChangesSince(context.Background(), "notes", testReplica, 0, 10)
	require.ErrorIs(t, err, ErrExecutingQuery)
	assert.True(t, repo.IsRetryable(err))
}

func TestGetEntity(t *testing.T) {
	repo, mock := newTestServerRepo(t)
	ctx := context.Background()

	_, err := repo.GetEntity(ctx, "notes", "not-a-uuid")
	assert.ErrorIs(t, err, ErrEntityNotFound)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_entities")).
		WithArgs("notes", testEntity).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetEntity(ctx, "notes", testEntity)
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestBuildChangesSinceQuery_FirstContact(t *testing.T) {
	_, args, err := buildChangesSinceQuery("notes", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"notes", int64(0), nil}, args)
}
