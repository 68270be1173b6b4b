// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client process: it prepares the local
// sync schema, runs the background workers and stops them on shutdown.
package client
