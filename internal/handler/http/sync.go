// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-offline-sync/internal/app"
	"github.com/MKhiriev/go-offline-sync/internal/logger"
	"github.com/MKhiriev/go-offline-sync/internal/utils"
	"github.com/MKhiriev/go-offline-sync/models"
)

// requestScope returns the scope authorized for the request. A body naming
// another scope is rejected.
func requestScope(r *http.Request, bodyScope string) (string, bool) {
	scope, found := utils.GetScopeFromContext(r.Context())
	if !found {
		scope = chi.URLParam(r, "scope")
	}
	if bodyScope != "" && bodyScope != scope {
		return "", false
	}
	return scope, true
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.UploadRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	scope, ok := requestScope(r, req.ScopeName)
	if !ok {
		log.Error().Str("func", "*Handler.upload").Str("body_scope", req.ScopeName).Msg(app.MsgScopeMismatch)
		http.Error(w, app.MsgScopeMismatch, http.StatusBadRequest)
		return
	}
	req.ScopeName = scope

	resp, err := h.services.SyncService.Upload(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("error applying upload")
		http.Error(w, app.MsgUploadFailed, h.statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.upload").Msg("error writing response")
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.DownloadRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.download").Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	scope, ok := requestScope(r, req.ScopeName)
	if !ok {
		log.Error().Str("func", "*Handler.download").Str("body_scope", req.ScopeName).Msg(app.MsgScopeMismatch)
		http.Error(w, app.MsgScopeMismatch, http.StatusBadRequest)
		return
	}
	req.ScopeName = scope

	changes, err := h.services.SyncService.Download(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.download").Msg("error reading changes")
		http.Error(w, app.MsgDownloadFailed, h.statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, changes, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.download").Msg("error writing response")
	}
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	scope, _ := requestScope(r, "")
	id := chi.URLParam(r, "id")

	entity, err := h.services.SyncService.GetEntity(ctx, scope, id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getEntity").Str("id", id).Msg("error getting entity")
		http.Error(w, app.MsgEntityFailed, h.statusFromError(err))
		return
	}

	utils.WriteJSON(w, entity, http.StatusOK)
}
