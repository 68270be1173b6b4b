// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-offline-sync/internal/schema"
)

// nowMillisSQL is the current time in Unix milliseconds as SQLite computes it.
const nowMillisSQL = `CAST((julianday('now') - 2440587.5) * 86400000 AS INTEGER)`

const (
	suspendHooksSQL = `INSERT OR REPLACE INTO sync_hook_suspension (TableName) VALUES (?)`
	restoreHooksSQL = `DELETE FROM sync_hook_suspension WHERE TableName = ?`
)

const (
	colIsTombstone  = schema.ColIsTombstone
	colIsDirty      = schema.ColIsDirty
	colID           = schema.ColID
	colETag         = schema.ColETag
	colEditURI      = schema.ColEditURI
	colLastModified = schema.ColLastModified
)

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteIdents(names []string, prefix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = prefix + quoteIdent(n)
	}
	return out
}

func columnDef(c schema.Column) string {
	def := quoteIdent(c.Name) + " " + c.Type.SQL()
	if c.NotNull {
		def += " NOT NULL"
	}
	return def
}

func createDataTableSQL(d schema.TableDescriptor) string {
	defs := make([]string, 0, len(d.Columns)+1)
	for _, c := range d.Columns {
		defs = append(defs, columnDef(c))
	}
	defs = append(defs, "PRIMARY KEY ("+strings.Join(quoteIdents(d.KeyNames(), ""), ", ")+")")
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)", quoteIdent(d.Table), strings.Join(defs, ",\n    "))
}

func createTrackingTableSQL(d schema.TableDescriptor) string {
	keys := d.KeyColumns()
	defs := make([]string, 0, len(keys)+7)
	for _, c := range keys {
		defs = append(defs, columnDef(c))
	}
	defs = append(defs,
		colIsTombstone+" INTEGER NOT NULL DEFAULT 0",
		colIsDirty+" INTEGER NOT NULL DEFAULT 1",
		colID+" TEXT",
		colETag+" TEXT",
		colEditURI+" TEXT",
		colLastModified+" INTEGER NOT NULL DEFAULT 0",
		"PRIMARY KEY ("+strings.Join(quoteIdents(d.KeyNames(), ""), ", ")+")",
	)
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)", quoteIdent(d.TrackingTable()), strings.Join(defs, ",\n    "))
}

func createTrackingIndexesSQL(d schema.TableDescriptor) []string {
	tracking := d.TrackingTable()
	return []string{
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quoteIdent(tracking+"_lmd"), quoteIdent(tracking), colLastModified),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quoteIdent(tracking+"_id"), quoteIdent(tracking), colID),
	}
}

// backfillTrackingSQL creates dirty tracking rows for data rows that were
// present before tracking was installed. Existing tracking rows are kept.
func backfillTrackingSQL(d schema.TableDescriptor) string {
	keys := strings.Join(quoteIdents(d.KeyNames(), ""), ", ")
	return fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s, %s, %s, %s)
SELECT %s, 0, 1, %s FROM %s`,
		quoteIdent(d.TrackingTable()), keys, colIsTombstone, colIsDirty, colLastModified,
		keys, nowMillisSQL, quoteIdent(d.Table))
}

// markTrackingSQL upserts the tracking row of the row referenced by alias
// (NEW or OLD) as dirty, with the given tombstone flag. The last modified date
// strictly increases per row even within one millisecond.
func markTrackingSQL(d schema.TableDescriptor, alias string, tombstone int) string {
	keys := quoteIdents(d.KeyNames(), "")
	return fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s)
    VALUES (%s, %d, 1, %s)
    ON CONFLICT (%s) DO UPDATE SET
        %s = excluded.%s,
        %s = 1,
        %s = MAX(excluded.%s, %s + 1);`,
		quoteIdent(d.TrackingTable()), strings.Join(keys, ", "), colIsTombstone, colIsDirty, colLastModified,
		strings.Join(quoteIdents(d.KeyNames(), alias+"."), ", "), tombstone, nowMillisSQL,
		strings.Join(keys, ", "),
		colIsTombstone, colIsTombstone,
		colIsDirty,
		colLastModified, colLastModified, colLastModified)
}

// tombstoneOldKeySQL tombstones the tracking row of OLD when an update
// changed the primary key.
func tombstoneOldKeySQL(d schema.TableDescriptor) string {
	match := make([]string, 0, len(d.KeyNames()))
	changed := make([]string, 0, len(d.KeyNames()))
	for _, k := range d.KeyNames() {
		q := quoteIdent(k)
		match = append(match, fmt.Sprintf("%s = OLD.%s", q, q))
		changed = append(changed, fmt.Sprintf("OLD.%s IS NOT NEW.%s", q, q))
	}
	return fmt.Sprintf(`UPDATE %s SET %s = 1, %s = 1, %s = MAX(%s, %s + 1)
    WHERE %s AND (%s);`,
		quoteIdent(d.TrackingTable()), colIsTombstone, colIsDirty, colLastModified, nowMillisSQL, colLastModified,
		strings.Join(match, " AND "), strings.Join(changed, " OR "))
}

func hookGuardSQL(d schema.TableDescriptor) string {
	return fmt.Sprintf("WHEN NOT EXISTS (SELECT 1 FROM sync_hook_suspension WHERE TableName = '%s')",
		strings.ReplaceAll(d.Table, "'", "''"))
}

// changeHooksSQL drops and recreates the AFTER INSERT, UPDATE and DELETE
// triggers that maintain the tracking table.
func changeHooksSQL(d schema.TableDescriptor) []string {
	table := quoteIdent(d.Table)
	guard := hookGuardSQL(d)
	names := []string{d.Table + "_ai", d.Table + "_au", d.Table + "_ad"}

	insert := fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT ON %s
FOR EACH ROW %s
BEGIN
    %s
END`, quoteIdent(names[0]), table, guard, markTrackingSQL(d, "NEW", 0))

	update := fmt.Sprintf(`CREATE TRIGGER %s AFTER UPDATE ON %s
FOR EACH ROW %s
BEGIN
    %s
    %s
END`, quoteIdent(names[1]), table, guard, tombstoneOldKeySQL(d), markTrackingSQL(d, "NEW", 0))

	del := fmt.Sprintf(`CREATE TRIGGER %s AFTER DELETE ON %s
FOR EACH ROW %s
BEGIN
    %s
END`, quoteIdent(names[2]), table, guard, markTrackingSQL(d, "OLD", 1))

	stmts := make([]string, 0, 2*len(names))
	for _, name := range names {
		stmts = append(stmts, "DROP TRIGGER IF EXISTS "+quoteIdent(name))
	}
	return append(stmts, insert, update, del)
}
