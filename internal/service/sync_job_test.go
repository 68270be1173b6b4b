// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/models"
)

type spySynchronizer struct {
	calls atomic.Int64
	err   error
}

func (s *spySynchronizer) Synchronize(_ context.Context) (models.SyncResult, error) {
	s.calls.Add(1)
	return models.SyncResult{}, s.err
}

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	job := NewSyncJob(&spySynchronizer{}, logger.Nop())
	require.NotNil(t, job)
}

func TestSyncJob_Start_SynchronizesRepeatedly(t *testing.T) {
	spy := &spySynchronizer{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}

func TestSyncJob_Start_RunsImmediately(t *testing.T) {
	spy := &spySynchronizer{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), time.Hour)
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Stop()
}

func TestSyncJob_KeepsRunningAfterFailure(t *testing.T) {
	spy := &spySynchronizer{err: errors.New("service unavailable")}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(45 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(2))
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySynchronizer{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, callsAfterStop, spy.calls.Load())
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewSyncJob(&spySynchronizer{}, logger.Nop())
	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_ContextCancel_StopsGoroutine(t *testing.T) {
	spy := &spySynchronizer{}
	job := NewSyncJob(spy, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)
	cancel()
	time.Sleep(15 * time.Millisecond)

	calls := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, spy.calls.Load())
	job.Stop()
}

func TestSyncJob_Restart(t *testing.T) {
	spy := &spySynchronizer{}
	job := NewSyncJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), int64(0))
}
