// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumn_Coerce(t *testing.T) {
	tests := []struct {
		name    string
		col     Column
		in      any
		want    any
		wantErr bool
	}{
		{name: "nil passes through", col: Column{Name: "a", Type: Integer}, in: nil, want: nil},
		{name: "json float to int", col: Column{Name: "a", Type: Integer}, in: float64(42), want: int64(42)},
		{name: "fractional float to int", col: Column{Name: "a", Type: Integer}, in: 1.5, wantErr: true},
		{name: "json number to int", col: Column{Name: "a", Type: Integer}, in: json.Number("7"), want: int64(7)},
		{name: "string to int", col: Column{Name: "a", Type: Integer}, in: "12", want: int64(12)},
		{name: "int to real", col: Column{Name: "a", Type: Real}, in: int64(3), want: float64(3)},
		{name: "text", col: Column{Name: "a", Type: Text}, in: "hello", want: "hello"},
		{name: "bytes to text", col: Column{Name: "a", Type: Text}, in: []byte("hi"), want: "hi"},
		{name: "number to text", col: Column{Name: "a", Type: Text}, in: 1.0, wantErr: true},
		{name: "base64 blob", col: Column{Name: "a", Type: Blob}, in: "AQID", want: []byte{1, 2, 3}},
		{name: "bad base64 blob", col: Column{Name: "a", Type: Blob}, in: "%%%", wantErr: true},
		{name: "bool", col: Column{Name: "a", Type: Boolean}, in: true, want: true},
		{name: "float to bool", col: Column{Name: "a", Type: Boolean}, in: float64(0), want: false},
		{name: "unexpected type", col: Column{Name: "a", Type: Integer}, in: []int{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.col.Coerce(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumn_Normalize(t *testing.T) {
	assert.Equal(t, "abc", Column{Type: Text}.Normalize([]byte("abc")))
	assert.Equal(t, []byte("abc"), Column{Type: Blob}.Normalize([]byte("abc")))
	assert.Equal(t, true, Column{Type: Boolean}.Normalize(int64(1)))
	assert.Equal(t, int64(5), Column{Type: Integer}.Normalize(int64(5)))
	assert.Nil(t, Column{Type: Integer}.Normalize(nil))
}

func TestColumnType_SQL(t *testing.T) {
	assert.Equal(t, "INTEGER", Integer.SQL())
	assert.Equal(t, "INTEGER", Boolean.SQL())
	assert.Equal(t, "REAL", Real.SQL())
	assert.Equal(t, "TEXT", Text.SQL())
	assert.Equal(t, "BLOB", Blob.SQL())
}
