// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds the descriptors of every synchronized entity type.
// Lookups are by type name; iteration follows registration order, which is
// also the order tables are extracted and applied in.
type Registry struct {
	mu      sync.RWMutex
	byType  map[string]TableDescriptor
	byTable map[string]string
	order   []string
}

// NewRegistry builds a registry from the given descriptors.
func NewRegistry(descriptors ...TableDescriptor) (*Registry, error) {
	r := &Registry{
		byType:  make(map[string]TableDescriptor, len(descriptors)),
		byTable: make(map[string]string, len(descriptors)),
	}
	for _, d := range descriptors {
		if err := r.Add(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a descriptor.
func (r *Registry) Add(d TableDescriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[d.TypeName]; ok {
		return fmt.Errorf("%w: type %q", ErrDuplicateType, d.TypeName)
	}
	if owner, ok := r.byTable[d.Table]; ok {
		return fmt.Errorf("%w: table %q already used by %q", ErrDuplicateType, d.Table, owner)
	}
	r.byType[d.TypeName] = d
	r.byTable[d.Table] = d.TypeName
	r.order = append(r.order, d.TypeName)
	return nil
}

// Lookup returns the descriptor registered for typeName.
func (r *Registry) Lookup(typeName string) (TableDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byType[typeName]
	if !ok {
		return TableDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return d, nil
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []TableDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TableDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byType[name])
	}
	return out
}

// TypeNames returns the registered type names sorted lexically.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := slices.Clone(r.order)
	slices.Sort(out)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
