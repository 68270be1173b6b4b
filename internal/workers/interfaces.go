// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs of the sync client.
package workers

import "context"

// Worker is a background job. Run starts it without blocking; Stop blocks
// until it has exited.
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
