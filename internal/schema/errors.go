// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import "errors"

var (
	// ErrInvalidDescriptor is returned when a table descriptor cannot be
	// used for synchronization.
	ErrInvalidDescriptor = errors.New("invalid table descriptor")

	// ErrDuplicateType is returned when two descriptors share a type name
	// or a table name.
	ErrDuplicateType = errors.New("entity type already registered")

	// ErrUnknownType is returned when an entity names a type that was never
	// registered.
	ErrUnknownType = errors.New("unknown entity type")

	// ErrInvalidValue is returned when a wire value does not fit its column.
	ErrInvalidValue = errors.New("invalid column value")

	// ErrMissingKey is returned when an entity lacks a primary-key column.
	ErrMissingKey = errors.New("missing primary key value")
)
