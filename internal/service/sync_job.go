// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
)

const defaultSyncInterval = 5 * time.Minute

type syncJob struct {
	syncer Synchronizer

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSyncJob creates a job that calls syncer.Synchronize on a ticker. The
// job is idle until Start is called.
func NewSyncJob(syncer Synchronizer, logger *logger.Logger) SyncJob {
	return &syncJob{syncer: syncer, logger: logger}
}

// Start stops any previously running job, then launches a goroutine that
// synchronizes immediately and then every interval. A non-positive interval
// defaults to 5 minutes. A failed run is logged and retried on the next
// tick. The goroutine exits when ctx is cancelled or Stop is called.
func (j *syncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			j.run(jobCtx)

			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
			}
		}
	}()
}

func (j *syncJob) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := j.syncer.Synchronize(ctx); err != nil && ctx.Err() == nil {
		j.logger.Err(err).Str("func", "syncJob.run").Msg("synchronization failed, retrying on next tick")
	}
}

// Stop cancels the background goroutine and blocks until it has exited.
// Calling it on a job that is not running is a no-op.
func (j *syncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
