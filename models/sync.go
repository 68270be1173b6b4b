// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ResolutionKind names how a conflict between a client change and the
// service's current row was settled.
type ResolutionKind string

const (
	// ServerWins keeps the service row and discards the client change.
	ServerWins ResolutionKind = "server-wins"
	// ClientWins overwrites the service row with the client change.
	ClientWins ResolutionKind = "client-wins"
	// Merge stores a merged row produced by a resolver.
	Merge ResolutionKind = "merge"
)

// Valid reports whether k is one of the known resolution kinds.
func (k ResolutionKind) Valid() bool {
	switch k {
	case ServerWins, ClientWins, Merge:
		return true
	default:
		return false
	}
}

// Conflict pairs the row that won (Live) with the row that lost.
type Conflict struct {
	Live       Entity         `json:"live"`
	Losing     Entity         `json:"losing"`
	Resolution ResolutionKind `json:"resolution"`
}

// SyncError reports a client change the service could not apply.
type SyncError struct {
	// Live is the service's current row, when one exists.
	Live *Entity `json:"live,omitempty"`
	// Error is the client change that failed.
	Error Entity `json:"error"`
	// Description is a human readable reason.
	Description string `json:"description"`
}

// TrackedEntity is an extracted entity plus the tracking watermark observed
// at extraction time.
type TrackedEntity struct {
	Entity
	LastModified time.Time
}

// ChangeBatch is the outbound delta of one session.
type ChangeBatch struct {
	// State is the session token the batch is registered under.
	State string
	// AnchorBlob is the anchor the batch was computed against.
	AnchorBlob []byte
	// Items holds the extracted rows in extraction order.
	Items []TrackedEntity
}

// Entities returns the batch rows in transport form.
func (b ChangeBatch) Entities() []Entity {
	entities := make([]Entity, 0, len(b.Items))
	for _, item := range b.Items {
		entities = append(entities, item.Entity)
	}
	return entities
}

// Snapshot returns the extraction-time watermark of every row in the batch.
func (b ChangeBatch) Snapshot() map[EntityRef]time.Time {
	snapshot := make(map[EntityRef]time.Time, len(b.Items))
	for _, item := range b.Items {
		snapshot[item.Ref()] = item.LastModified
	}
	return snapshot
}

// Len returns the number of extracted rows.
func (b ChangeBatch) Len() int {
	return len(b.Items)
}

// ChangeSet is an inbound batch of server changes.
type ChangeSet struct {
	ServerBlob  []byte   `json:"server_blob"`
	IsLastBatch bool     `json:"is_last_batch"`
	Entities    []Entity `json:"entities"`
}

// UploadRequest is sent by the client with its outbound delta.
type UploadRequest struct {
	ScopeName  string   `json:"scope_name"`
	AnchorBlob []byte   `json:"anchor_blob"`
	Entities   []Entity `json:"entities"`
}

// UploadResponse is the service's answer to an UploadRequest.
type UploadResponse struct {
	// ServerBlob is the new anchor.
	ServerBlob []byte `json:"server_blob"`
	// IsLastBatch is set when the service has no more changes pending for
	// the upload's session.
	IsLastBatch bool `json:"is_last_batch"`
	// Conflicts lists the rows that conflicted and how they were settled.
	Conflicts []Conflict `json:"conflicts,omitempty"`
	// Errors lists rows the service rejected.
	Errors []SyncError `json:"errors,omitempty"`
	// UpdatedItems carries service ids and tags for accepted rows.
	UpdatedItems []Entity `json:"updated_items,omitempty"`
	// Error is set when the service rejected the upload as a whole.
	Error string `json:"error,omitempty"`
}

// DownloadRequest asks for changes the replica has not incorporated yet.
type DownloadRequest struct {
	ScopeName  string `json:"scope_name"`
	AnchorBlob []byte `json:"anchor_blob"`
	BatchSize  int    `json:"batch_size"`
}

// SyncResult summarises one full synchronization.
type SyncResult struct {
	Uploaded   int
	Downloaded int
	Conflicts  []Conflict
	Errors     []SyncError
}
