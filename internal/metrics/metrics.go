// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the sync client and
// the sync service. Collectors register with the default registry, which
// the service exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session outcomes used as the status label of SyncSessions.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

var (
	// SyncSessions counts client sync sessions by outcome.
	SyncSessions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_sessions_total",
		Help: "Total number of sync sessions run by the client",
	}, []string{"status"})

	// EntitiesUploaded counts rows the client sent to the service.
	EntitiesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sync_entities_uploaded_total",
		Help: "Total number of entities uploaded to the sync service",
	})

	// EntitiesApplied counts service rows written into local tables.
	EntitiesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_entities_applied_total",
		Help: "Total number of service entities applied to local tables",
	}, []string{"table"})

	// Conflicts counts conflicts by how they were resolved. Both sides
	// report here: the service when resolving, the client when accepting.
	Conflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_conflicts_total",
		Help: "Total number of sync conflicts by resolution",
	}, []string{"resolution"})

	// ApplyDuration measures how long applying one inbound change set takes.
	ApplyDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sync_apply_duration_seconds",
		Help:    "Duration of applying an inbound change set in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// ServerRequests counts sync service operations by outcome.
	ServerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_server_requests_total",
		Help: "Total number of sync service requests by operation and status",
	}, []string{"op", "status"})
)
