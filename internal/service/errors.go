// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Session protocol errors of the client orchestrator.
var (
	ErrNoActiveSession      = errors.New("no active sync session")
	ErrSessionAlreadyActive = errors.New("sync session already active")
	ErrSchemaNotLoaded      = errors.New("sync schema not loaded")
	ErrBatchNotRegistered   = errors.New("change batch not registered")
	ErrUnknownEntityType    = errors.New("unknown entity type")
	ErrUploadRejected       = errors.New("upload rejected by sync service")
)

// Sync service errors.
var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrScopeMismatch         = errors.New("scope does not match token")
	ErrInvalidAnchor         = errors.New("invalid anchor")
	ErrEntityNotFound        = errors.New("entity not found")
	ErrInvalidMerge          = errors.New("merge result does not match the conflicting entity")
	ErrUnknownConflictPolicy = errors.New("unknown conflict policy")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
