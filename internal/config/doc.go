// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges, and validates the configuration of the
// sync client and the reference sync service.
//
// Configuration is assembled from multiple sources, merged with mergo so
// that the first source holding a non-zero value wins:
//  1. .env file (godotenv, exported into the environment)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The entry points are [GetClientConfig] and [GetServerConfig].
package config
