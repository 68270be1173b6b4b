// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-offline-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()

	n, err := WriteJSON(w, map[string]string{"error": "not found"}, http.StatusNotFound)

	require.NoError(t, err)
	assert.NotZero(t, n)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDecodeJSON(t *testing.T) {
	var req models.DownloadRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"scope_name":"notes","batch_size":10}`), &req))
	assert.Equal(t, "notes", req.ScopeName)
	assert.Equal(t, 10, req.BatchSize)

	tests := map[string]string{
		"unknown field": `{"scope":"notes"}`,
		"malformed":     `{"scope_name":`,
		"trailing data": `{"scope_name":"a"} {"scope_name":"b"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, DecodeJSON(strings.NewReader(body), &models.DownloadRequest{}))
		})
	}
}
