// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ColumnType is the storage class of a synchronized column.
type ColumnType int

const (
	Integer ColumnType = iota
	Real
	Text
	Blob
	Boolean
)

// SQL returns the SQLite column type declaration.
func (t ColumnType) SQL() string {
	switch t {
	case Integer, Boolean:
		return "INTEGER"
	case Real:
		return "REAL"
	case Blob:
		return "BLOB"
	default:
		return "TEXT"
	}
}

func (t ColumnType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Text:
		return "text"
	case Blob:
		return "blob"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Column describes one column of a synchronized table.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	NotNull    bool
}

// Coerce converts a value decoded from the wire (JSON numbers arrive as
// float64, blobs as base64 strings) into the driver value stored in SQLite.
// nil is passed through.
func (c Column) Coerce(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	var (
		out any
		err error
	)
	switch c.Type {
	case Integer:
		out, err = toInt64(v)
	case Real:
		out, err = toFloat64(v)
	case Text:
		out, err = toText(v)
	case Blob:
		out, err = toBlob(v)
	case Boolean:
		out, err = toBool(v)
	default:
		err = fmt.Errorf("unsupported column type %d", c.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: column %q (%s): %w", ErrInvalidValue, c.Name, c.Type, err)
	}
	return out, nil
}

// Normalize converts a value scanned from SQLite into its wire form.
func (c Column) Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		if c.Type == Blob {
			out := make([]byte, len(val))
			copy(out, val)
			return out
		}
		return string(val)
	case int64:
		if c.Type == Boolean {
			return val != 0
		}
		return val
	default:
		return val
	}
}

func toInt64(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case float64:
		if val != math.Trunc(val) {
			return 0, fmt.Errorf("non-integral number %v", val)
		}
		return int64(val), nil
	case json.Number:
		return val.Int64()
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(val, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case int:
		return float64(val), nil
	case json.Number:
		return val.Float64()
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		return 0, fmt.Errorf("unexpected %T", v)
	}
}

func toText(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	case json.Number:
		return val.String(), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("unexpected %T", v)
	}
}

func toBlob(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case string:
		return base64.StdEncoding.DecodeString(val)
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case int64:
		return val != 0, nil
	case int:
		return val != 0, nil
	case float64:
		return val != 0, nil
	case string:
		return strconv.ParseBool(val)
	default:
		return false, fmt.Errorf("unexpected %T", v)
	}
}
