// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-offline-sync/internal/schema"
	"github.com/MKhiriev/go-offline-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// TrackingRepository provisions synced tables in the client database.
type TrackingRepository interface {
	CreateTrackingSchema(ctx context.Context, d schema.TableDescriptor) error
	InstallChangeHooks(ctx context.Context, d schema.TableDescriptor) error
	GetTrackingRow(ctx context.Context, d schema.TableDescriptor, keys map[string]any) (models.TrackingRow, error)
}

// ConfigurationRepository stores the anchor record of each sync scope.
type ConfigurationRepository interface {
	ReadConfiguration(ctx context.Context, scope string) (models.Configuration, error)
	SaveConfiguration(ctx context.Context, cfg models.Configuration) error
}

// ChangeRepository moves changes between the tracking tables and the wire.
type ChangeRepository interface {
	ExtractChanges(ctx context.Context, descriptors []schema.TableDescriptor, since time.Time, maxBatchRows int) (models.ChangeBatch, error)
	ApplyChanges(ctx context.Context, descriptors []schema.TableDescriptor, entities []models.Entity, opts ...ApplyOption) (int, error)
	AcknowledgeUpload(ctx context.Context, descriptors []schema.TableDescriptor, batch models.ChangeBatch, stamps []models.Entity, skip map[models.EntityRef]struct{}) error
}

// EntityRepository reads and writes rows of synced tables on behalf of the
// application.
type EntityRepository interface {
	Insert(ctx context.Context, d schema.TableDescriptor, e models.Entity) error
	Update(ctx context.Context, d schema.TableDescriptor, e models.Entity) error
	Delete(ctx context.Context, d schema.TableDescriptor, keys map[string]any) error
	Get(ctx context.Context, d schema.TableDescriptor, keys map[string]any) (models.Entity, error)
	List(ctx context.Context, d schema.TableDescriptor) ([]models.Entity, error)
}
