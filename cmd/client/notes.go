// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"github.com/MKhiriev/go-offline-sync/internal/schema"
)

// note is the sample synchronized type shipped with the client binary.
type note struct {
	ID    int64
	Title string
	Body  string
	Done  bool
}

type noteMapper struct{}

func (noteMapper) Row(n note) map[string]any {
	return map[string]any{"id": n.ID, "title": n.Title, "body": n.Body, "done": n.Done}
}

func (noteMapper) Scan(row map[string]any) (note, error) {
	n := note{}
	n.ID, _ = row["id"].(int64)
	n.Title, _ = row["title"].(string)
	n.Body, _ = row["body"].(string)
	n.Done, _ = row["done"].(bool)
	return n, nil
}

// newRegistry registers the synchronized types of the client.
func newRegistry() (*schema.Registry, error) {
	r, err := schema.NewRegistry()
	if err != nil {
		return nil, err
	}

	notes := schema.NewTable("note", "notes").
		Key("id", schema.Integer).
		RequiredField("title", schema.Text).
		Field("body", schema.Text).
		Field("done", schema.Boolean).
		MustBuild()
	if _, err = schema.Register[note](r, notes, noteMapper{}); err != nil {
		return nil, err
	}
	return r, nil
}
