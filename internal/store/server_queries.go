// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	registerReplica = `INSERT INTO sync_replicas (replica_id, scope_name)
		VALUES ($1, $2)
		ON CONFLICT (replica_id) DO NOTHING;`

	findReplicaScope = `SELECT scope_name
		FROM sync_replicas
		WHERE replica_id = $1;`

	// lockScope serializes uploads of one scope, so versions of a scope
	// become visible in increasing order.
	lockScope = `SELECT pg_advisory_xact_lock(hashtext($1));`

	nextVersion = `SELECT nextval('sync_entity_version_seq');`

	insertEntity = `INSERT INTO sync_entities (
			id,
			scope_name,
			type_name,
			entity_key,
			keys,
			payload,
			is_tombstone,
			etag,
			version,
			origin_replica
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	updateEntity = `UPDATE sync_entities
		SET payload = $3,
			is_tombstone = $4,
			etag = $5,
			version = $6,
			origin_replica = $7,
			updated_at = NOW()
		WHERE scope_name = $1 AND id = $2;`
)

var serverEntityColumns = []string{
	"id",
	"type_name",
	"keys",
	"payload",
	"is_tombstone",
	"etag",
	"version",
	"origin_replica",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func selectServerEntities() sq.SelectBuilder {
	return psql.Select(serverEntityColumns...).From("sync_entities")
}

// buildChangesSinceQuery selects the rows of scope newer than after that
// another replica wrote.
func buildChangesSinceQuery(scope, replicaID string, after int64, limit int) (string, []any, error) {
	var origin any
	if replicaID != "" {
		origin = replicaID
	}

	builder := selectServerEntities().
		Where(sq.Eq{"scope_name": scope}).
		Where(sq.Gt{"version": after}).
		Where(sq.Expr("origin_replica IS DISTINCT FROM ?::uuid", origin)).
		OrderBy("version")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	return builder.ToSql()
}
