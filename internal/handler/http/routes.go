// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Handle("/metrics", promhttp.Handler())
	})

	router.Route("/api/sync/{scope}", func(r chi.Router) {
		r.Use(h.auth, withGZip)

		r.Post("/upload", h.upload)
		r.Post("/download", h.download)
		r.Get("/entities/{id}", h.getEntity)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
