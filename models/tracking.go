// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TrackingRow is the shadow record kept for every row of a synchronized
// table. It shares the primary key of the data row and survives the data
// row's deletion as a tombstone until the delete has been acknowledged.
type TrackingRow struct {
	Keys         map[string]any
	IsTombstone  bool
	IsDirty      bool
	ID           string
	ETag         string
	EditURI      string
	LastModified time.Time
}
