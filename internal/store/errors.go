// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrConfigurationNotFound is returned by ReadConfiguration when the scope
	// has never been synchronized.
	ErrConfigurationNotFound = errors.New("sync configuration not found")

	// ErrConfigurationMismatch is returned when a stored configuration was
	// created for another service URI or another set of entity types.
	ErrConfigurationMismatch = errors.New("sync configuration mismatch")

	// ErrTrackingRowNotFound is returned when no tracking row exists for a key.
	ErrTrackingRowNotFound = errors.New("tracking row not found")

	// ErrEntityNotFound is returned when a data row or a service entity does
	// not exist.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrReplicaNotFound is returned when an anchor names a replica the
	// service never issued.
	ErrReplicaNotFound = errors.New("replica not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DDL or DML
	// statement (CREATE, INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingPayload is returned when a row cannot be converted to or
	// from its JSON form.
	ErrEncodingPayload = errors.New("failed to encode payload")
)
