// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultDownloadBatchSize = 100
	defaultTokenDuration     = time.Hour
	defaultConflictPolicy    = "server-wins"
)

// ClientApp holds the token settings a client mints its replica token with.
type ClientApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ClientAdapter holds outbound transport settings.
type ClientAdapter struct {
	// ServiceURI is the sync service base URL.
	ServiceURI string
	// RequestTimeout bounds one request.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs.
	SyncInterval time.Duration
}

// ClientSync holds the sync scope and batching parameters.
type ClientSync struct {
	Scope             string
	ServiceURI        string
	BatchSize         int
	DownloadBatchSize int
}

// ClientConfig is the client view of [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
	LogFile string
}

// GetClientConfig builds and validates the client configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields relevant to the client and fills defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
		},
		Adapter: ClientAdapter{
			ServiceURI:     cfg.Sync.ServiceURI,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
		Sync: ClientSync{
			Scope:             cfg.Sync.Scope,
			ServiceURI:        cfg.Sync.ServiceURI,
			BatchSize:         cfg.Sync.BatchSize,
			DownloadBatchSize: cfg.Sync.DownloadBatchSize,
		},
		LogFile: cfg.Log.File,
	}

	if clientCfg.Sync.DownloadBatchSize == 0 {
		clientCfg.Sync.DownloadBatchSize = defaultDownloadBatchSize
	}
	if clientCfg.App.TokenDuration == 0 {
		clientCfg.App.TokenDuration = defaultTokenDuration
	}

	return clientCfg
}
