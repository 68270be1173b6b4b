// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schema declares synchronized tables statically.
//
// A TableDescriptor names the entity type, its SQLite table and typed
// columns; the Registry resolves type names to descriptors; Typed binds a
// descriptor to an application type through a Mapper. Nothing in the sync
// engine inspects Go types at runtime.
package schema
