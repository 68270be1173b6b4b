// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/service"
)

var errNoServices = errors.New("client services are not set")

// Runner starts and stops background work.
type Runner interface {
	Run(ctx context.Context)
	Stop()
}

type App struct {
	services *service.ClientServices
	workers  Runner
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, workers Runner, logger *logger.Logger) (*App, error) {
	if services == nil || services.SyncContext == nil || workers == nil {
		return nil, errNoServices
	}
	return &App{services: services, workers: workers, logger: logger}, nil
}

// Run loads the sync schema, then runs the workers until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.services.SyncContext.LoadSchema(ctx); err != nil {
		return fmt.Errorf("load sync schema: %w", err)
	}

	a.workers.Run(ctx)
	a.logger.Info().Msg("client started")

	<-ctx.Done()

	a.workers.Stop()
	a.logger.Info().Msg("client stopped")
	return nil
}
