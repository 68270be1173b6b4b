// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/mock"
	"github.com/MKhiriev/go-offline-sync/internal/service"
)

// orderWorker records its id into a shared slice on Run and Stop.
type orderWorker struct {
	id    int
	order *[]int
}

func (o *orderWorker) Run(context.Context) { *o.order = append(*o.order, o.id) }
func (o *orderWorker) Stop()              { *o.order = append(*o.order, -o.id) }

func TestWorkers_RunAndStopOrder(t *testing.T) {
	var order []int
	ws := &Workers{
		workers: []Worker{
			&orderWorker{id: 1, order: &order},
			&orderWorker{id: 2, order: &order},
			&orderWorker{id: 3, order: &order},
		},
		logger: logger.Nop(),
	}

	ws.Run(context.Background())
	ws.Stop()

	assert.Equal(t, []int{1, 2, 3, -3, -2, -1}, order)
}

func TestWorkers_Empty(t *testing.T) {
	ws := &Workers{logger: logger.Nop()}

	ws.Run(context.Background())
	ws.Stop()
}

func TestNewWorkers_DrivesSyncJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := mock.NewMockSyncJob(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		job.EXPECT().Start(ctx, 30*time.Second),
		job.EXPECT().Stop(),
	)

	ws := NewWorkers(&service.ClientServices{SyncJob: job}, config.ClientWorkers{SyncInterval: 30 * time.Second}, logger.Nop())
	ws.Run(ctx)
	ws.Stop()
}
