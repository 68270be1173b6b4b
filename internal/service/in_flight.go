// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-offline-sync/models"
)

// InFlightRegistry keeps the batches that were sent but not acknowledged
// yet, keyed by session state token.
type InFlightRegistry struct {
	mu      sync.Mutex
	batches map[string]models.ChangeBatch
}

func NewInFlightRegistry() *InFlightRegistry {
	return &InFlightRegistry{batches: make(map[string]models.ChangeBatch)}
}

// Register stores batch under state, replacing any previous batch.
func (r *InFlightRegistry) Register(state string, batch models.ChangeBatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[state] = batch
}

// Get returns the batch registered under state.
func (r *InFlightRegistry) Get(state string) (models.ChangeBatch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[state]
	return batch, ok
}

// Take returns and removes the batch registered under state.
func (r *InFlightRegistry) Take(state string) (models.ChangeBatch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	batch, ok := r.batches[state]
	delete(r.batches, state)
	return batch, ok
}

// Discard forgets the batch registered under state.
func (r *InFlightRegistry) Discard(state string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.batches, state)
}

// Len returns the number of registered batches.
func (r *InFlightRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}
