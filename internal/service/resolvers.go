// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"maps"

	"github.com/MKhiriev/go-offline-sync/models"
)

// MergeFunc combines the service row and a conflicting client change.
type MergeFunc func(server, client models.Entity) models.Entity

// policyResolver applies one fixed resolution to every conflict.
type policyResolver struct {
	kind  models.ResolutionKind
	merge MergeFunc
}

// NewPolicyResolver returns a resolver that always answers kind. Merges use
// [FieldMerge].
func NewPolicyResolver(kind models.ResolutionKind) (ConflictResolver, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConflictPolicy, kind)
	}
	return &policyResolver{kind: kind, merge: FieldMerge}, nil
}

// NewMergeResolver returns a resolver that merges every conflict with merge.
func NewMergeResolver(merge MergeFunc) ConflictResolver {
	return &policyResolver{kind: models.Merge, merge: merge}
}

func (r *policyResolver) Resolve(_ context.Context, server, client models.Entity) (models.ResolutionKind, models.Entity, error) {
	if r.kind != models.Merge {
		return r.kind, models.Entity{}, nil
	}
	return models.Merge, r.merge(server, client), nil
}

// FieldMerge keeps the service values and overlays every non-null value the
// client sent. A deletion on either side wins over an edit.
func FieldMerge(server, client models.Entity) models.Entity {
	merged := client
	merged.Values = nil

	if server.IsTombstone || client.IsTombstone {
		merged.IsTombstone = true
		return merged
	}

	merged.Values = make(map[string]any, len(server.Values)+len(client.Values))
	maps.Copy(merged.Values, server.Values)
	for k, v := range client.Values {
		if v != nil {
			merged.Values[k] = v
		}
	}
	return merged
}

// validateMerge checks that a merge result still describes the conflicting
// row. Field values are the resolver's responsibility.
func validateMerge(client, merged models.Entity) error {
	if merged.TypeName != client.TypeName {
		return fmt.Errorf("%w: type %q, want %q", ErrInvalidMerge, merged.TypeName, client.TypeName)
	}
	if merged.KeyString() != client.KeyString() {
		return fmt.Errorf("%w: key %s, want %s", ErrInvalidMerge, merged.KeyString(), client.KeyString())
	}
	return nil
}
