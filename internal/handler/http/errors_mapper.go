// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-offline-sync/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrInvalidAnchor:         http.StatusBadRequest,
	service.ErrScopeMismatch:         http.StatusForbidden,
	service.ErrEntityNotFound:        http.StatusNotFound,
	service.ErrUnknownConflictPolicy: http.StatusInternalServerError,
}

// statusFromError maps a service error to a response status. Transient
// storage failures become 503 so replicas retry on their next tick.
func (h *Handler) statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	if h.services != nil && h.services.SyncService != nil && h.services.SyncService.IsRetryable(err) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
