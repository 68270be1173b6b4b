// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides helpers shared by the sync client and service:
// context keys, id generation, JWT handling, HTTP response writing and the
// resty client constructor.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// ScopeCtxKey is the key under which the authenticated sync scope is stored.
var ScopeCtxKey = contextKey("scope")

// TraceIDCtxKey is the key under which the request trace id is stored.
var TraceIDCtxKey = contextKey("traceID")

// WithScope returns a copy of ctx carrying the authenticated scope name.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, ScopeCtxKey, scope)
}

// GetScopeFromContext returns the authenticated scope name stored in ctx.
// ok is false when none is present.
func GetScopeFromContext(ctx context.Context) (string, bool) {
	scope, ok := ctx.Value(ScopeCtxKey).(string)
	return scope, ok && scope != ""
}

// GetTraceIDFromContext returns the request trace id stored in ctx.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(TraceIDCtxKey).(string)
	return id, ok
}
