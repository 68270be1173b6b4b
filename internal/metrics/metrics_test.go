// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(SyncSessions.WithLabelValues(StatusOK))
	SyncSessions.WithLabelValues(StatusOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SyncSessions.WithLabelValues(StatusOK)))

	before = testutil.ToFloat64(Conflicts.WithLabelValues("merge"))
	Conflicts.WithLabelValues("merge").Add(2)
	assert.Equal(t, before+2, testutil.ToFloat64(Conflicts.WithLabelValues("merge")))
}

func TestCollectorNames(t *testing.T) {
	assert.Equal(t, 1, testutil.CollectAndCount(EntitiesUploaded, "sync_entities_uploaded_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(ApplyDuration, "sync_apply_duration_seconds"))
}
