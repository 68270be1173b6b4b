// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// sync client and the reference sync service. It is populated by merging a
// .env file, environment variables, command-line flags and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the database settings of both sides.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and request timeout of the service.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds outbound transport settings of the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings of the client.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the scope, endpoint and batching parameters.
	Sync Sync `envPrefix:"SYNC_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token and versioning settings.
type App struct {
	// TokenSignKey is the HS256 key replica tokens are signed with.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of replica tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is how long a client-minted token stays valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups database settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection strings for both database backends.
type DB struct {
	// DSN is the client SQLite file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`

	// DatabaseURI is the service PostgreSQL connection string.
	// Env: STORAGE_DB_DATABASE_URI
	DatabaseURI string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings of the sync service.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds outbound transport settings.
type Adapter struct {
	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background job settings.
type Workers struct {
	// SyncInterval is the period of the client sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Sync holds synchronization parameters.
type Sync struct {
	// Scope is the name of the synchronized scope.
	// Env: SYNC_SCOPE
	Scope string `env:"SCOPE"`

	// ServiceURI is the base URL of the sync service.
	// Env: SYNC_SERVICE_URI
	ServiceURI string `env:"SERVICE_URI"`

	// BatchSize caps the number of rows uploaded per session; 0 means no cap.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// DownloadBatchSize is the page size requested from the service.
	// Env: SYNC_DOWNLOAD_BATCH_SIZE
	DownloadBatchSize int `env:"DOWNLOAD_BATCH_SIZE"`

	// ConflictPolicy is the service-side resolution for ETag conflicts:
	// server-wins, client-wins or merge.
	// Env: SYNC_CONFLICT_POLICY
	ConflictPolicy string `env:"CONFLICT_POLICY"`
}

// Log holds log output settings.
type Log struct {
	// File is the client log file; empty logs to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
// The first source holding a non-zero value for a field wins:
//  1. .env file
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from the sources above)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(flagArgs()).
		withJSON().
		build()
}
