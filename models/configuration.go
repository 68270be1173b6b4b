// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Configuration is the persisted anchor record of one sync scope.
//
// ServiceURI and RegisteredTypes are fixed when the record is first created;
// AnchorBlob and LastSyncDate move forward together every time inbound
// changes have been durably applied.
type Configuration struct {
	// ScopeName is the primary key of the record.
	ScopeName string

	// ServiceURI is the endpoint the local database was initialised against.
	ServiceURI string

	// LastSyncDate is the time of the last durable commit of server changes.
	LastSyncDate time.Time

	// AnchorBlob is the opaque knowledge marker issued by the service.
	AnchorBlob []byte

	// RegisteredTypes is the sorted list of registered entity type names.
	RegisteredTypes []string
}
