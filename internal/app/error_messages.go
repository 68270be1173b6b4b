// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the response messages written by the sync service
// handlers and middleware, so every route words its failures the same way.
package app

const (
	// MsgInvalidJSON is returned when a request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgScopeMismatch is returned when the body names a scope other than
	// the one in the route.
	MsgScopeMismatch = "scope in body does not match route"

	// MsgUploadFailed is returned when an upload could not be applied.
	MsgUploadFailed = "error applying upload"

	// MsgDownloadFailed is returned when changes could not be read.
	MsgDownloadFailed = "error reading changes"

	// MsgEntityFailed is returned when an entity could not be fetched.
	MsgEntityFailed = "error getting entity"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token cannot be
	// verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgForeignScope is returned when the token was issued for another
	// scope.
	MsgForeignScope = "token is not valid for this scope"
)
