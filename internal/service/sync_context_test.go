// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/mock"
	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/internal/store"
	"github.com/MKhiriev/go-offline-sync/models"
)

const (
	testScope      = "notes"
	testServiceURI = "http://sync.local"
)

func notesTable() schema.TableDescriptor {
	return schema.NewTable("note", "notes").
		Key("id", schema.Integer).
		RequiredField("title", schema.Text).
		MustBuild()
}

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	registry, err := schema.NewRegistry(notesTable())
	require.NoError(t, err)
	return registry
}

type syncContextMocks struct {
	tracking      *mock.MockTrackingRepository
	configuration *mock.MockConfigurationRepository
	changes       *mock.MockChangeRepository
	adapter       *mock.MockSyncAdapter
}

func newTestSyncContext(t *testing.T, ctrl *gomock.Controller) (*syncContext, syncContextMocks) {
	t.Helper()
	m := syncContextMocks{
		tracking:      mock.NewMockTrackingRepository(ctrl),
		configuration: mock.NewMockConfigurationRepository(ctrl),
		changes:       mock.NewMockChangeRepository(ctrl),
		adapter:       mock.NewMockSyncAdapter(ctrl),
	}
	storages := &store.ClientStorages{
		Tracking:      m.tracking,
		Configuration: m.configuration,
		Changes:       m.changes,
	}
	cfg := config.ClientSync{Scope: testScope, ServiceURI: testServiceURI, DownloadBatchSize: 10}

	sc := NewSyncContext(storages, m.adapter, testRegistry(t), cfg, logger.Nop()).(*syncContext)
	return sc, m
}

func storedConfiguration() models.Configuration {
	return models.Configuration{
		ScopeName:       testScope,
		ServiceURI:      testServiceURI,
		AnchorBlob:      []byte(`{"replica_id":"r1","version":3}`),
		RegisteredTypes: []string{"note"},
	}
}

// loadedSession loads a valid stored configuration and opens a session.
func loadedSession(t *testing.T, sc *syncContext, m syncContextMocks) {
	t.Helper()
	m.configuration.EXPECT().ReadConfiguration(gomock.Any(), testScope).Return(storedConfiguration(), nil)
	require.NoError(t, sc.LoadSchema(context.Background()))
	require.NoError(t, sc.BeginSession())
}

func TestSyncContext_LoadSchema_FirstRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	ctx := context.Background()

	m.configuration.EXPECT().ReadConfiguration(ctx, testScope).Return(models.Configuration{}, store.ErrConfigurationNotFound)
	m.tracking.EXPECT().CreateTrackingSchema(ctx, notesTable()).Return(nil)
	m.configuration.EXPECT().SaveConfiguration(ctx, models.Configuration{
		ScopeName:       testScope,
		ServiceURI:      testServiceURI,
		RegisteredTypes: []string{"note"},
	}).Return(nil)

	require.NoError(t, sc.LoadSchema(ctx))
	// memoized: no further repository calls
	require.NoError(t, sc.LoadSchema(ctx))
}

func TestSyncContext_LoadSchema_Mismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)

	other := storedConfiguration()
	other.ServiceURI = "http://other.local"
	m.configuration.EXPECT().ReadConfiguration(gomock.Any(), testScope).Return(other, nil)

	err := sc.LoadSchema(context.Background())
	require.ErrorIs(t, err, store.ErrConfigurationMismatch)

	assert.ErrorIs(t, sc.BeginSession(), ErrSchemaNotLoaded)
}

func TestSyncContext_LoadSchema_CreateFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	boom := errors.New("disk full")

	m.configuration.EXPECT().ReadConfiguration(gomock.Any(), testScope).Return(models.Configuration{}, store.ErrConfigurationNotFound)
	m.tracking.EXPECT().CreateTrackingSchema(gomock.Any(), gomock.Any()).Return(boom)

	require.ErrorIs(t, sc.LoadSchema(context.Background()), boom)
	assert.False(t, sc.schemaLoaded)
}

func TestSyncContext_LoadSchema_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.configuration.EXPECT().ReadConfiguration(ctx, testScope).Return(models.Configuration{}, store.ErrConfigurationNotFound)

	require.ErrorIs(t, sc.LoadSchema(ctx), context.Canceled)
}

func TestSyncContext_SessionGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	ctx := context.Background()

	require.ErrorIs(t, sc.BeginSession(), ErrSchemaNotLoaded)

	_, err := sc.GetChangeSet(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoActiveSession)
	assert.ErrorIs(t, sc.OnChangeSetUploaded(ctx, "s1", models.UploadResponse{}), ErrNoActiveSession)
	assert.ErrorIs(t, sc.UploadSucceeded(ctx, "s1"), ErrNoActiveSession)
	assert.ErrorIs(t, sc.SaveChangeSet(ctx, models.ChangeSet{}), ErrNoActiveSession)

	loadedSession(t, sc, m)
	assert.ErrorIs(t, sc.BeginSession(), ErrSessionAlreadyActive)

	sc.EndSession()
	sc.EndSession()
	assert.NoError(t, sc.BeginSession())
}

func TestSyncContext_GetChangeSet_RegistersBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)

	extracted := models.ChangeBatch{Items: []models.TrackedEntity{{
		Entity: models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(1)}, TempID: "tmp"},
	}}}
	m.changes.EXPECT().ExtractChanges(gomock.Any(), []schema.TableDescriptor{notesTable()}, time.Time{}, 0).Return(extracted, nil)

	batch, err := sc.GetChangeSet(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", batch.State)
	assert.Equal(t, storedConfiguration().AnchorBlob, batch.AnchorBlob)

	registered, ok := sc.inFlight.Get("s1")
	require.True(t, ok)
	assert.Equal(t, batch, registered)
}

func TestSyncContext_OnChangeSetUploaded_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	sc.inFlight.Register("s1", models.ChangeBatch{State: "s1"})

	err := sc.OnChangeSetUploaded(context.Background(), "s1", models.UploadResponse{Error: "scope closed"})

	require.ErrorIs(t, err, ErrUploadRejected)
	assert.Equal(t, 1, sc.inFlight.Len())
}

func TestSyncContext_OnChangeSetUploaded_NotRegistered(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)

	err := sc.OnChangeSetUploaded(context.Background(), "unknown", models.UploadResponse{})
	assert.ErrorIs(t, err, ErrBatchNotRegistered)
}

func TestSyncContext_OnChangeSetUploaded_AppliesAndAcknowledges(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	ctx := context.Background()

	ok := models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(1)}}
	conflicting := models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(2)}}
	rejected := models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(3)}}
	batch := models.ChangeBatch{State: "s1", Items: []models.TrackedEntity{
		{Entity: ok, LastModified: time.UnixMilli(10)},
		{Entity: conflicting, LastModified: time.UnixMilli(11)},
		{Entity: rejected, LastModified: time.UnixMilli(12)},
	}}
	sc.inFlight.Register("s1", batch)

	live := conflicting
	live.ID = "srv-2"
	updated := ok
	updated.ID = "srv-1"
	wireRejected := rejected
	wireRejected.Keys = map[string]any{"id": float64(3)}

	response := models.UploadResponse{
		ServerBlob:   []byte(`{"replica_id":"r1","version":3}`),
		Conflicts:    []models.Conflict{{Live: live, Losing: conflicting, Resolution: models.ServerWins}},
		Errors:       []models.SyncError{{Error: wireRejected, Description: "bad"}},
		UpdatedItems: []models.Entity{updated},
	}

	descriptors := []schema.TableDescriptor{notesTable()}
	gomock.InOrder(
		m.changes.EXPECT().ApplyChanges(ctx, descriptors, []models.Entity{live}, gomock.Any()).Return(1, nil),
		m.changes.EXPECT().ApplyChanges(ctx, descriptors, []models.Entity{updated}, gomock.Any()).Return(1, nil),
		m.changes.EXPECT().AcknowledgeUpload(ctx, descriptors, batch, []models.Entity{updated}, map[models.EntityRef]struct{}{
			rejected.Ref(): {},
		}).Return(nil),
	)

	require.NoError(t, sc.OnChangeSetUploaded(ctx, "s1", response))
	assert.Equal(t, 0, sc.inFlight.Len())
	assert.Equal(t, response.ServerBlob, sc.anchorBlob())
}

func TestSyncContext_UploadSucceeded_AcknowledgesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	ctx := context.Background()

	batch := models.ChangeBatch{State: "s1", Items: []models.TrackedEntity{{
		Entity: models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(1)}},
	}}}
	sc.inFlight.Register("s1", batch)

	m.changes.EXPECT().AcknowledgeUpload(ctx, []schema.TableDescriptor{notesTable()}, batch, nil, nil).Return(nil)

	require.NoError(t, sc.UploadSucceeded(ctx, "s1"))
	assert.ErrorIs(t, sc.UploadSucceeded(ctx, "s1"), ErrBatchNotRegistered)
}

func TestSyncContext_UploadSucceeded_FailureKeepsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	ctx := context.Background()
	busy := errors.New("database is locked")

	batch := models.ChangeBatch{State: "s1"}
	sc.inFlight.Register("s1", batch)

	gomock.InOrder(
		m.changes.EXPECT().AcknowledgeUpload(ctx, gomock.Any(), batch, nil, nil).Return(busy),
		m.changes.EXPECT().AcknowledgeUpload(ctx, gomock.Any(), batch, nil, nil).Return(nil),
	)

	require.ErrorIs(t, sc.UploadSucceeded(ctx, "s1"), busy)
	assert.Equal(t, 1, sc.inFlight.Len())

	require.NoError(t, sc.UploadSucceeded(ctx, "s1"))
	assert.Equal(t, 0, sc.inFlight.Len())
}

func TestSyncContext_OnChangeSetUploaded_ApplyFailsKeepsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	sc.inFlight.Register("s1", models.ChangeBatch{State: "s1"})

	m.changes.EXPECT().ApplyChanges(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, schema.ErrUnknownType)

	err := sc.OnChangeSetUploaded(context.Background(), "s1", models.UploadResponse{
		UpdatedItems: []models.Entity{{TypeName: "ghost"}},
	})
	require.ErrorIs(t, err, ErrUnknownEntityType)
	assert.Equal(t, 1, sc.inFlight.Len())
}

func TestSyncContext_SaveChangeSet_PersistsAnchor(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sc.now = func() time.Time { return now }
	ctx := context.Background()

	cs := models.ChangeSet{
		ServerBlob: []byte(`{"replica_id":"r1","version":9}`),
		Entities:   []models.Entity{{TypeName: "note", Keys: map[string]any{"id": float64(4)}, ID: "srv-4"}},
	}

	want := storedConfiguration()
	want.AnchorBlob = cs.ServerBlob
	want.LastSyncDate = now

	m.changes.EXPECT().ApplyChanges(ctx, []schema.TableDescriptor{notesTable()}, cs.Entities).Return(1, nil)
	m.configuration.EXPECT().SaveConfiguration(ctx, want).Return(nil)

	require.NoError(t, sc.SaveChangeSet(ctx, cs))
	assert.Equal(t, cs.ServerBlob, sc.anchorBlob())
}

func TestSyncContext_SaveChangeSet_ApplyFailsKeepsAnchor(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	loadedSession(t, sc, m)
	boom := errors.New("constraint failed")

	m.changes.EXPECT().ApplyChanges(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, boom)

	err := sc.SaveChangeSet(context.Background(), models.ChangeSet{ServerBlob: []byte(`{"version":10}`)})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, storedConfiguration().AnchorBlob, sc.anchorBlob())
}

func TestSyncContext_Synchronize_DownloadsUntilLastBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)

	first := models.ChangeSet{ServerBlob: []byte(`{"replica_id":"r1","version":5}`), Entities: []models.Entity{{TypeName: "note", Keys: map[string]any{"id": float64(1)}}}}
	last := models.ChangeSet{ServerBlob: []byte(`{"replica_id":"r1","version":6}`), IsLastBatch: true, Entities: []models.Entity{{TypeName: "note", Keys: map[string]any{"id": float64(2)}}}}

	m.configuration.EXPECT().ReadConfiguration(gomock.Any(), testScope).Return(storedConfiguration(), nil)
	m.changes.EXPECT().ExtractChanges(gomock.Any(), gomock.Any(), time.Time{}, 0).Return(models.ChangeBatch{}, nil)
	gomock.InOrder(
		m.adapter.EXPECT().Download(gomock.Any(), models.DownloadRequest{ScopeName: testScope, AnchorBlob: storedConfiguration().AnchorBlob, BatchSize: 10}).Return(first, nil),
		m.adapter.EXPECT().Download(gomock.Any(), models.DownloadRequest{ScopeName: testScope, AnchorBlob: first.ServerBlob, BatchSize: 10}).Return(last, nil),
	)
	m.changes.EXPECT().ApplyChanges(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil).Times(2)
	m.configuration.EXPECT().SaveConfiguration(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	result, err := sc.Synchronize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Uploaded)
	assert.Equal(t, 2, result.Downloaded)
	assert.Equal(t, last.ServerBlob, sc.anchorBlob())

	// the session was released
	require.NoError(t, sc.BeginSession())
}

func TestSyncContext_Synchronize_UploadFailureLeavesRowsPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	sc, m := newTestSyncContext(t, ctrl)
	unavailable := errors.New("connection refused")

	batch := models.ChangeBatch{Items: []models.TrackedEntity{{
		Entity: models.Entity{TypeName: "note", Keys: map[string]any{"id": int64(1)}, TempID: "tmp"},
	}}}

	m.configuration.EXPECT().ReadConfiguration(gomock.Any(), testScope).Return(storedConfiguration(), nil)
	m.changes.EXPECT().ExtractChanges(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(batch, nil)
	m.adapter.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(models.UploadResponse{}, unavailable)

	_, err := sc.Synchronize(context.Background())
	require.ErrorIs(t, err, unavailable)

	assert.Equal(t, 0, sc.inFlight.Len())
	require.NoError(t, sc.BeginSession())
}
