// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-offline-sync/models"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TrackingSuffix is appended to a data table name to form its tracking table.
const TrackingSuffix = "_tracking"

// Tracking table columns that follow the mirrored primary key. The prefix
// keeps them apart from common key names such as id.
const (
	ColIsTombstone  = "SyncIsTombstone"
	ColIsDirty      = "SyncIsDirty"
	ColID           = "SyncId"
	ColETag         = "SyncETag"
	ColEditURI      = "SyncEditUri"
	ColLastModified = "SyncLastModifiedDate"
)

// TrackingColumns lists the tracking metadata columns in table order.
var TrackingColumns = []string{ColIsTombstone, ColIsDirty, ColID, ColETag, ColEditURI, ColLastModified}

// TableDescriptor statically describes a synchronized table: its entity type
// name, the SQLite table it lives in and its columns in declaration order.
type TableDescriptor struct {
	TypeName string
	Table    string
	Columns  []Column
}

// NewTable starts a descriptor for typeName stored in table.
func NewTable(typeName, table string) *TableDescriptor {
	return &TableDescriptor{TypeName: typeName, Table: table}
}

// Key appends a primary-key column.
func (d *TableDescriptor) Key(name string, t ColumnType) *TableDescriptor {
	d.Columns = append(d.Columns, Column{Name: name, Type: t, PrimaryKey: true, NotNull: true})
	return d
}

// Field appends a nullable non-key column.
func (d *TableDescriptor) Field(name string, t ColumnType) *TableDescriptor {
	d.Columns = append(d.Columns, Column{Name: name, Type: t})
	return d
}

// RequiredField appends a NOT NULL non-key column.
func (d *TableDescriptor) RequiredField(name string, t ColumnType) *TableDescriptor {
	d.Columns = append(d.Columns, Column{Name: name, Type: t, NotNull: true})
	return d
}

// Build validates the descriptor and returns it by value.
func (d *TableDescriptor) Build() (TableDescriptor, error) {
	if err := d.Validate(); err != nil {
		return TableDescriptor{}, err
	}
	return *d, nil
}

// MustBuild is Build for static declarations; it panics on an invalid descriptor.
func (d *TableDescriptor) MustBuild() TableDescriptor {
	td, err := d.Build()
	if err != nil {
		panic(err)
	}
	return td
}

// Validate checks names, key presence and column uniqueness.
func (d TableDescriptor) Validate() error {
	if d.TypeName == "" {
		return fmt.Errorf("%w: empty type name", ErrInvalidDescriptor)
	}
	if !identifier.MatchString(d.Table) {
		return fmt.Errorf("%w: bad table name %q", ErrInvalidDescriptor, d.Table)
	}
	seen := make(map[string]struct{}, len(d.Columns))
	keys := 0
	for _, c := range d.Columns {
		if !identifier.MatchString(c.Name) {
			return fmt.Errorf("%w: bad column name %q in %s", ErrInvalidDescriptor, c.Name, d.Table)
		}
		// SQLite column names are case-insensitive.
		folded := strings.ToLower(c.Name)
		if _, dup := seen[folded]; dup {
			return fmt.Errorf("%w: duplicate column %q in %s", ErrInvalidDescriptor, c.Name, d.Table)
		}
		if c.PrimaryKey && isTrackingColumn(c.Name) {
			return fmt.Errorf("%w: key column %q clashes with tracking columns", ErrInvalidDescriptor, c.Name)
		}
		seen[folded] = struct{}{}
		if c.PrimaryKey {
			keys++
		}
	}
	if keys == 0 {
		return fmt.Errorf("%w: %s has no primary key", ErrInvalidDescriptor, d.Table)
	}
	return nil
}

func isTrackingColumn(name string) bool {
	for _, c := range TrackingColumns {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// TrackingTable returns the name of the table's tracking table.
func (d TableDescriptor) TrackingTable() string {
	return d.Table + TrackingSuffix
}

// KeyColumns returns the primary-key columns in declaration order.
func (d TableDescriptor) KeyColumns() []Column {
	return d.filter(true)
}

// ValueColumns returns the non-key columns in declaration order.
func (d TableDescriptor) ValueColumns() []Column {
	return d.filter(false)
}

func (d TableDescriptor) filter(key bool) []Column {
	out := make([]Column, 0, len(d.Columns))
	for _, c := range d.Columns {
		if c.PrimaryKey == key {
			out = append(out, c)
		}
	}
	return out
}

// KeyNames returns the primary-key column names.
func (d TableDescriptor) KeyNames() []string {
	return names(d.KeyColumns())
}

// ValueNames returns the non-key column names.
func (d TableDescriptor) ValueNames() []string {
	return names(d.ValueColumns())
}

func names(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

// KeyArgs returns the coerced primary-key values of e in key column order.
func (d TableDescriptor) KeyArgs(keys map[string]any) ([]any, error) {
	cols := d.KeyColumns()
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		v, ok := keys[c.Name]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingKey, d.Table, c.Name)
		}
		coerced, err := c.Coerce(v)
		if err != nil {
			return nil, err
		}
		args = append(args, coerced)
	}
	return args, nil
}

// ValueArgs returns the coerced non-key values of e in column order.
// Columns absent from values are stored as NULL.
func (d TableDescriptor) ValueArgs(values map[string]any) ([]any, error) {
	cols := d.ValueColumns()
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		coerced, err := c.Coerce(values[c.Name])
		if err != nil {
			return nil, err
		}
		args = append(args, coerced)
	}
	return args, nil
}

// PresentValueArgs is ValueArgs restricted to the non-key columns that
// values carries. It returns their names along with the coerced values.
func (d TableDescriptor) PresentValueArgs(values map[string]any) ([]string, []any, error) {
	names := make([]string, 0, len(values))
	args := make([]any, 0, len(values))
	for _, c := range d.ValueColumns() {
		v, ok := values[c.Name]
		if !ok {
			continue
		}
		coerced, err := c.Coerce(v)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, c.Name)
		args = append(args, coerced)
	}
	return names, args, nil
}

// CanonicalKeys returns keys normalized through the key columns, so the
// same row has the same key map whether it came from SQLite or the wire.
func (d TableDescriptor) CanonicalKeys(keys map[string]any) (map[string]any, error) {
	args, err := d.KeyArgs(keys)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(args))
	for i, c := range d.KeyColumns() {
		out[c.Name] = c.Normalize(args[i])
	}
	return out, nil
}

// CheckEntity verifies that e belongs to this table and carries every key.
func (d TableDescriptor) CheckEntity(e models.Entity) error {
	if e.TypeName != d.TypeName {
		return fmt.Errorf("%w: %q is not %q", ErrUnknownType, e.TypeName, d.TypeName)
	}
	_, err := d.KeyArgs(e.Keys)
	return err
}
