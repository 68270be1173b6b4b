// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package anchor encodes the knowledge marker the sync service hands to
// replicas. Clients store the encoded blob verbatim and never look inside.
package anchor

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned for a blob that is not a valid anchor.
var ErrMalformed = errors.New("malformed anchor blob")

// Anchor identifies a replica and the last service version it has seen.
type Anchor struct {
	ReplicaID string `json:"replica_id"`
	Version   int64  `json:"version"`
}

// IsZero reports whether the anchor was never issued.
func (a Anchor) IsZero() bool {
	return a.ReplicaID == "" && a.Version == 0
}

// Encode returns the blob form of a.
func Encode(a Anchor) ([]byte, error) {
	blob, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return blob, nil
}

// Decode parses a blob. An empty blob is the zero anchor of a first sync.
func Decode(blob []byte) (Anchor, error) {
	var a Anchor
	if len(blob) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(blob, &a); err != nil {
		return Anchor{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if a.Version < 0 {
		return Anchor{}, fmt.Errorf("%w: negative version %d", ErrMalformed, a.Version)
	}
	return a, nil
}
