// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"

	"github.com/MKhiriev/go-offline-sync/models"
)

// Mapper converts between an application type and its row form.
type Mapper[T any] interface {
	// Row returns the column values of v, keys included.
	Row(v T) map[string]any
	// Scan builds a value from the column values of a row.
	Scan(row map[string]any) (T, error)
}

// Typed binds a descriptor to a Mapper so application code can move between
// T and wire entities without name-based lookups at runtime.
type Typed[T any] struct {
	Descriptor TableDescriptor
	Mapper     Mapper[T]
}

// Register adds d to r and returns its typed binding.
func Register[T any](r *Registry, d TableDescriptor, m Mapper[T]) (Typed[T], error) {
	if err := r.Add(d); err != nil {
		return Typed[T]{}, err
	}
	return Typed[T]{Descriptor: d, Mapper: m}, nil
}

// ToEntity splits v into key and value columns.
func (t Typed[T]) ToEntity(v T) models.Entity {
	row := t.Mapper.Row(v)
	e := models.Entity{
		TypeName: t.Descriptor.TypeName,
		Keys:     make(map[string]any),
		Values:   make(map[string]any),
	}
	for _, c := range t.Descriptor.Columns {
		if c.PrimaryKey {
			e.Keys[c.Name] = row[c.Name]
			continue
		}
		e.Values[c.Name] = row[c.Name]
	}
	return e
}

// FromEntity rebuilds a T from a live entity. Values are coerced and
// normalized per column so wire-decoded numbers scan like stored ones.
func (t Typed[T]) FromEntity(e models.Entity) (T, error) {
	var zero T
	if err := t.Descriptor.CheckEntity(e); err != nil {
		return zero, err
	}
	if e.IsTombstone {
		return zero, fmt.Errorf("%w: tombstone has no values", ErrInvalidValue)
	}

	row := make(map[string]any, len(t.Descriptor.Columns))
	for _, c := range t.Descriptor.Columns {
		src := e.Values
		if c.PrimaryKey {
			src = e.Keys
		}
		v, err := c.Coerce(src[c.Name])
		if err != nil {
			return zero, err
		}
		row[c.Name] = c.Normalize(v)
	}
	return t.Mapper.Scan(row)
}
