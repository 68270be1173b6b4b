// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		blob    []byte
		want    Anchor
		wantErr bool
	}{
		{name: "empty blob is zero anchor", blob: nil, want: Anchor{}},
		{name: "issued anchor", blob: []byte(`{"replica_id":"r1","version":7}`), want: Anchor{ReplicaID: "r1", Version: 7}},
		{name: "garbage", blob: []byte(`not-json`), wantErr: true},
		{name: "negative version", blob: []byte(`{"replica_id":"r1","version":-1}`), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.blob)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	blob, err := Encode(Anchor{ReplicaID: "r2", Version: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"replica_id":"r2","version":3}`, string(blob))

	a, err := Decode(blob)
	require.NoError(t, err)
	assert.False(t, a.IsZero())
	assert.True(t, Anchor{}.IsZero())
}
