// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http is the REST transport of the sync service.
//
// Replicas upload and download change sets under /api/sync/{scope}; every
// request carries a bearer token whose subject must name the same scope.
package http
