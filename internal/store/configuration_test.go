// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offline-sync/models"
)

func TestConfigurationRepository_ReadSave(t *testing.T) {
	s := newTestClient(t)
	ctx := context.Background()

	_, err := s.Configuration.ReadConfiguration(ctx, "notes")
	require.ErrorIs(t, err, ErrConfigurationNotFound)

	cfg := models.Configuration{
		ScopeName:       "notes",
		ServiceURI:      "http://sync.local",
		RegisteredTypes: []string{"tag", "note"},
	}
	require.NoError(t, s.Configuration.SaveConfiguration(ctx, cfg))

	got, err := s.Configuration.ReadConfiguration(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []string{"note", "tag"}, got.RegisteredTypes)
	assert.True(t, got.LastSyncDate.IsZero())
	assert.Empty(t, got.AnchorBlob)

	synced := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	got.AnchorBlob = []byte(`{"version":3}`)
	got.LastSyncDate = synced
	require.NoError(t, s.Configuration.SaveConfiguration(ctx, got))

	again, err := s.Configuration.ReadConfiguration(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":3}`), again.AnchorBlob)
	assert.True(t, synced.Equal(again.LastSyncDate))
}

func TestValidateConfiguration(t *testing.T) {
	stored := models.Configuration{
		ScopeName:       "notes",
		ServiceURI:      "http://sync.local",
		RegisteredTypes: []string{"note", "tag"},
	}

	tests := []struct {
		name    string
		uri     string
		types   []string
		wantErr bool
	}{
		{name: "same", uri: "http://sync.local", types: []string{"tag", "note"}},
		{name: "other service", uri: "http://other.local", types: []string{"note", "tag"}, wantErr: true},
		{name: "missing type", uri: "http://sync.local", types: []string{"note"}, wantErr: true},
		{name: "different type", uri: "http://sync.local", types: []string{"note", "task"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfiguration(stored, tt.uri, tt.types)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfigurationMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}
