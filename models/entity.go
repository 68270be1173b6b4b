// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Entity is the transport form of a single synchronized row.
//
// Keys holds the primary-key columns and Values every other column. A
// tombstone carries only Keys (and the service identity fields); its Values
// are nil because the data row no longer exists locally.
type Entity struct {
	// TypeName identifies the registered entity type (and therefore the
	// local table) the row belongs to.
	TypeName string `json:"type_name"`

	// Keys maps primary-key column names to their values.
	Keys map[string]any `json:"keys"`

	// Values maps the remaining column names to their values.
	Values map[string]any `json:"values,omitempty"`

	// IsTombstone marks a deleted row whose delete still has to be propagated.
	IsTombstone bool `json:"is_tombstone"`

	// ID is the service-issued identifier. Empty until the service has
	// acknowledged the row at least once.
	ID string `json:"id,omitempty"`

	// ETag is the last known service version token of the row.
	ETag string `json:"etag,omitempty"`

	// EditURI locates the row on the service.
	EditURI string `json:"edit_uri,omitempty"`

	// TempID correlates a not-yet-acknowledged row within one upload.
	TempID string `json:"temp_id,omitempty"`
}

// KeyString returns a canonical string form of the entity's primary key.
// Map keys are sorted by encoding/json, so equal keys give equal strings.
func (e Entity) KeyString() string {
	return KeyString(e.Keys)
}

// KeyString is the canonical string form of a primary key value map.
func KeyString(keys map[string]any) string {
	payload, err := json.Marshal(keys)
	if err != nil {
		names := slices.Sorted(maps.Keys(keys))
		return strings.Join(names, ",")
	}
	return string(payload)
}

// Ref returns the (type, key) reference of the entity.
func (e Entity) Ref() EntityRef {
	return EntityRef{TypeName: e.TypeName, Key: e.KeyString()}
}

// EntityRef identifies a row across tables by type name and canonical key.
type EntityRef struct {
	TypeName string
	Key      string
}
