// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offline-sync/models"
)

func TestEntityRepository_CRUD(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()
	d := notesDescriptor()

	insertNote(t, s, 2, "second")
	insertNote(t, s, 1, "first")

	list, err := s.Entities.List(ctx, d)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].Keys["id"])
	assert.Equal(t, "note", list[0].TypeName)

	// only the given values change
	require.NoError(t, s.Entities.Update(ctx, d, models.Entity{Keys: noteKeys(1), Values: map[string]any{"done": true}}))
	got, err := s.Entities.Get(ctx, d, noteKeys(1))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "first", "done": true}, got.Values)

	require.NoError(t, s.Entities.Delete(ctx, d, noteKeys(1)))
	_, err = s.Entities.Get(ctx, d, noteKeys(1))
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEntityRepository_MissingRows(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()
	d := notesDescriptor()

	err := s.Entities.Update(ctx, d, models.Entity{Keys: noteKeys(9), Values: map[string]any{"title": "x"}})
	assert.ErrorIs(t, err, ErrEntityNotFound)

	assert.ErrorIs(t, s.Entities.Delete(ctx, d, noteKeys(9)), ErrEntityNotFound)

	// nothing to set is not an error
	assert.NoError(t, s.Entities.Update(ctx, d, models.Entity{Keys: noteKeys(9)}))
}

func TestEntityRepository_InvalidInput(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()
	d := notesDescriptor()

	err := s.Entities.Insert(ctx, d, models.Entity{Keys: map[string]any{}, Values: map[string]any{"title": "x"}})
	assert.Error(t, err)

	insertNote(t, s, 1, "dup")
	err = s.Entities.Insert(ctx, d, models.Entity{Keys: noteKeys(1), Values: map[string]any{"title": "dup"}})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}
