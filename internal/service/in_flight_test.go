// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-offline-sync/models"
)

func TestInFlightRegistry(t *testing.T) {
	r := NewInFlightRegistry()
	batch := models.ChangeBatch{State: "s1", Items: []models.TrackedEntity{{Entity: note(1, "a")}}}

	_, ok := r.Get("s1")
	assert.False(t, ok)

	r.Register("s1", batch)
	got, ok := r.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, batch, got)
	assert.Equal(t, 1, r.Len())

	got, ok = r.Take("s1")
	assert.True(t, ok)
	assert.Equal(t, batch, got)
	assert.Equal(t, 0, r.Len())

	r.Register("s2", batch)
	r.Discard("s2")
	r.Discard("never registered")
	assert.Equal(t, 0, r.Len())
}

func TestInFlightRegistry_Concurrent(t *testing.T) {
	r := NewInFlightRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			state := fmt.Sprintf("s%d", i)
			r.Register(state, models.ChangeBatch{State: state})
			r.Get(state)
			if i%2 == 0 {
				r.Discard(state)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, r.Len())
}
