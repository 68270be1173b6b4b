// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-offline-sync/internal/config"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

type httpSyncAdapter struct {
	client *utils.HTTPClient
	app    config.ClientApp
	scope  string

	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs the HTTP implementation of [SyncAdapter] for
// scope. Every request carries a bearer token minted from appCfg whose
// subject is the scope name.
func NewHTTPSyncAdapter(adapterCfg config.ClientAdapter, appCfg config.ClientApp, scope string, logger *logger.Logger) (SyncAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.ServiceURI)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter service uri: %w", err)
	}
	if scope == "" {
		return nil, fmt.Errorf("empty sync scope")
	}

	return &httpSyncAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		app:    appCfg,
		scope:  scope,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpSyncAdapter) bearer() (string, error) {
	token, err := utils.GenerateJWTToken(h.app.TokenIssuer, h.scope, h.app.TokenDuration, h.app.TokenSignKey)
	if err != nil {
		return "", err
	}
	return "Bearer " + token.String(), nil
}

func (h *httpSyncAdapter) scopePath(op string) string {
	return "/api/sync/" + url.PathEscape(h.scope) + "/" + op
}

// Upload implements [SyncAdapter]. It POSTs req to
// POST /api/sync/{scope}/upload.
func (h *httpSyncAdapter) Upload(ctx context.Context, req models.UploadRequest) (models.UploadResponse, error) {
	var response models.UploadResponse

	auth, err := h.bearer()
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("upload token: %w", err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", auth).
		SetBody(req).
		SetResult(&response).
		Post(h.scopePath("upload"))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "httpSyncAdapter.Upload").Msg("upload request failed")
		return models.UploadResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResponse{}, err
	}

	return response, nil
}

// Download implements [SyncAdapter]. It POSTs req to
// POST /api/sync/{scope}/download.
func (h *httpSyncAdapter) Download(ctx context.Context, req models.DownloadRequest) (models.ChangeSet, error) {
	var changeSet models.ChangeSet

	auth, err := h.bearer()
	if err != nil {
		return models.ChangeSet{}, fmt.Errorf("download token: %w", err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", auth).
		SetBody(req).
		SetResult(&changeSet).
		Post(h.scopePath("download"))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "httpSyncAdapter.Download").Msg("download request failed")
		return models.ChangeSet{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChangeSet{}, err
	}

	return changeSet, nil
}

// GetEntity implements [SyncAdapter]. editURI is resolved against the
// service base URL.
func (h *httpSyncAdapter) GetEntity(ctx context.Context, editURI string) (models.Entity, error) {
	var entity models.Entity

	if editURI == "" {
		return models.Entity{}, fmt.Errorf("%w: empty edit uri", ErrNotFound)
	}

	auth, err := h.bearer()
	if err != nil {
		return models.Entity{}, fmt.Errorf("get entity token: %w", err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", auth).
		SetResult(&entity).
		Get(editURI)
	if err != nil {
		return models.Entity{}, fmt.Errorf("get entity request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Entity{}, err
	}

	return entity, nil
}
