// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validClientConfig() *ClientConfig {
	return NewClientConfig(&StructuredConfig{
		App:     App{TokenSignKey: "secret"},
		Storage: Storage{DB: DB{DSN: "client.db"}},
		Adapter: Adapter{RequestTimeout: 5 * time.Second},
		Workers: Workers{SyncInterval: time.Minute},
		Sync:    Sync{Scope: "notes", ServiceURI: "http://localhost:8080"},
	})
}

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := validClientConfig()

	assert.Equal(t, defaultDownloadBatchSize, cfg.Sync.DownloadBatchSize)
	assert.Equal(t, defaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.ServiceURI)
	assert.NoError(t, cfg.validate())
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		want   error
	}{
		{name: "empty dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = "" }, want: ErrInvalidStorageConfigs},
		{name: "in-memory dsn", mutate: func(c *ClientConfig) { c.Storage.DB.DSN = ":memory:" }, want: ErrInvalidStorageConfigs},
		{name: "no timeout", mutate: func(c *ClientConfig) { c.Adapter.RequestTimeout = 0 }, want: ErrInvalidAdapterConfigs},
		{name: "no interval", mutate: func(c *ClientConfig) { c.Workers.SyncInterval = 0 }, want: ErrInvalidWorkerConfigs},
		{name: "no sign key", mutate: func(c *ClientConfig) { c.App.TokenSignKey = "" }, want: ErrInvalidAppConfigs},
		{name: "no scope", mutate: func(c *ClientConfig) { c.Sync.Scope = "" }, want: ErrInvalidSyncConfigs},
		{name: "negative batch", mutate: func(c *ClientConfig) { c.Sync.BatchSize = -1 }, want: ErrInvalidSyncConfigs},
		{name: "relative uri", mutate: func(c *ClientConfig) { c.Sync.ServiceURI = "/api" }, want: ErrInvalidSyncConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClientConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.want)
		})
	}
}

func TestStructuredConfig_Validate(t *testing.T) {
	valid := func() *StructuredConfig {
		return &StructuredConfig{
			App:     App{TokenSignKey: "secret"},
			Storage: Storage{DB: DB{DatabaseURI: "postgres://localhost/sync"}},
			Server:  Server{HTTPAddress: ":8080"},
			Sync:    Sync{ConflictPolicy: "server-wins"},
		}
	}
	assert.NoError(t, valid().validate())

	tests := []struct {
		name   string
		mutate func(*StructuredConfig)
		want   error
	}{
		{name: "no address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, want: ErrInvalidServerConfigs},
		{name: "no database", mutate: func(c *StructuredConfig) { c.Storage.DB.DatabaseURI = "" }, want: ErrInvalidStorageConfigs},
		{name: "no sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, want: ErrInvalidAppConfigs},
		{name: "unknown policy", mutate: func(c *StructuredConfig) { c.Sync.ConflictPolicy = "coin-flip" }, want: ErrInvalidSyncConfigs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.want)
		})
	}
}
