// Package postgres is the reference Source implementation (spec.md
// §4.5): it executes the dialect-generated SQL from package rewrite
// against a pgxpool-backed connection pool, streams rows through a
// server-side cursor, and decodes each column straight from the
// PostgreSQL binary wire format into the Go values package codec
// expects — no intermediate row-object layer. Grounded on
// _examples/original_source/conecta-core/src/source/postgres.rs.
package postgres

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/extract"
	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/partition"
	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/rewrite"
	"github.com/surister/conecta/schema"
)

// Source is the Postgres backend. It satisfies source.Source
// structurally (package source does not import this package; this
// package does not import source, avoiding a cycle).
type Source struct {
	pool *pgxpool.Pool
}

// Open opens a pgxpool.Pool against uri. maxPoolSize, when non-zero,
// overrides pgxpool's own default max-connections sizing (spec.md §5:
// default equals the number of data queries — the caller, not this
// constructor, knows that count before a plan is resolved, so a zero
// maxPoolSize here leaves pgxpool's own default in effect).
// conecta.ReadSQL reopens the pool once it knows len(dataQueries),
// rather than running extraction through an under-sized pool;
// conecta.CreatePartitionPlan, which never extracts, does not.
func Open(ctx context.Context, uri string, maxPoolSize uint32) (src *Source, err error) {
	var cfg *pgxpool.Config
	if cfg, err = pgxpool.ParseConfig(uri); err != nil {
		return nil, perrors.Errorf("postgres: parsing connection string: %w", err)
	}
	if maxPoolSize > 0 {
		cfg.MaxConns = int32(maxPoolSize)
	}

	var pool *pgxpool.Pool
	if pool, err = pgxpool.NewWithConfig(ctx, cfg); err != nil {
		return nil, cerr.NewSourceConnectError(err)
	}
	return &Source{pool: pool}, nil
}

// Dialect implements partition.BoundsSource and source.Source.
func (s *Source) Dialect() rewrite.Dialect { return rewrite.Postgres{} }

// Validate implements source.Source: pings the pool.
func (s *Source) Validate(ctx context.Context) (err error) {
	if err = s.pool.Ping(ctx); err != nil {
		return cerr.NewSourceConnectError(err)
	}
	return nil
}

// Close implements source.Source.
func (s *Source) Close() (err error) {
	s.pool.Close()
	return nil
}

// FetchMinMax implements partition.BoundsSource: query is already
// rewrite.Postgres{}.MinMaxQuery(userQuery, column), a
// "SELECT MIN(col)::bigint, MAX(col)::bigint FROM (...) AS
// query_inner" statement, so the result row is exactly two nullable
// int8 scalars (spec.md §4.1).
func (s *Source) FetchMinMax(ctx context.Context, query string, column string) (min, max *int64, err error) {
	var row = s.pool.QueryRow(ctx, query)
	var minVal, maxVal pgtype.Int8
	if err = row.Scan(&minVal, &maxVal); err != nil {
		return nil, nil, cerr.NewQueryExecutionError(query, err)
	}
	if minVal.Valid {
		var v = minVal.Int64
		min = &v
	}
	if maxVal.Valid {
		var v = maxVal.Int64
		max = &v
	}
	return min, max, nil
}

// FetchCount implements partition.BoundsSource: query is already
// rewrite.Postgres{}.CountQuery(...), a "SELECT count(*) FROM (...) AS
// q_count" statement returning one int8 scalar.
func (s *Source) FetchCount(ctx context.Context, query string) (count int64, err error) {
	var row = s.pool.QueryRow(ctx, query)
	if err = row.Scan(&count); err != nil {
		return 0, cerr.NewQueryExecutionError(query, err)
	}
	return count, nil
}

// SchemaOf implements source.Source: it runs the schema probe
// (rewrite.Postgres{}.SchemaQuery — "... LIMIT 0") and reads column
// names/types from the prepared statement's field descriptions
// without ever materializing a row (spec.md §4.2).
func (s *Source) SchemaOf(ctx context.Context, query string) (sch schema.Schema, err error) {
	var probe = rewrite.Postgres{}.SchemaQuery(query)
	var rows pgx.Rows
	if rows, err = s.pool.Query(ctx, probe); err != nil {
		return schema.Schema{}, cerr.NewQueryExecutionError(probe, err)
	}
	defer rows.Close()

	var fields = rows.FieldDescriptions()
	var columns = make([]schema.Column, len(fields))
	for i, fd := range fields {
		var nt nativetype.Type
		var repr string
		if nt, repr, err = s.nativeTypeForOID(ctx, fd.DataTypeOID); err != nil {
			return schema.Schema{}, err
		}
		columns[i] = schema.Column{Name: fd.Name, DataType: nt, OriginalTypeRepr: repr}
	}
	if err = rows.Err(); err != nil {
		return schema.Schema{}, cerr.NewQueryExecutionError(probe, err)
	}
	return schema.Schema{Columns: columns}, nil
}

// nativeTypeForOID resolves a Postgres type OID to a NativeType via
// the static builtin-type table (decode.go), falling back to one
// pg_catalog lookup for extension types this module still recognizes
// by name (currently PostGIS's "geometry"/"geography", mapped to
// nativetype.PgGis — spec.md §3's opaque GIS variant).
func (s *Source) nativeTypeForOID(ctx context.Context, oid uint32) (nt nativetype.Type, originalTypeRepr string, err error) {
	if entry, ok := oidTable[oid]; ok {
		return entry.nativeType, entry.name, nil
	}

	var typname string
	if err = s.pool.QueryRow(ctx, "SELECT typname FROM pg_type WHERE oid = $1", oid).Scan(&typname); err != nil {
		return 0, "", perrors.Errorf("postgres: resolving type oid %d: %w", oid, err)
	}
	switch typname {
	case "geometry", "geography":
		return nativetype.PgGis, typname, nil
	default:
		return 0, typname, perrors.Errorf("%w: %q (oid %d)", nativetype.ErrUnsupportedType, typname, oid)
	}
}

// ProcessPartitionPlan implements source.Source, the extraction entry
// point (spec.md §4.5): it hands plan.DataQueries and plan.Counts to
// package extract's worker pool, with this Source as the per-
// partition RowSource.
func (s *Source) ProcessPartitionPlan(ctx context.Context, plan partition.Plan, sch schema.Schema, maxPoolSize int) (batches [][]arrow.Array, err error) {
	return extract.Run(ctx, s, sch, plan.DataQueries, extract.Options{
		MaxPoolSize: maxPoolSize,
		Counts:      plan.Counts,
	})
}

// StreamPartition implements extract.RowSource: it acquires one
// pooled connection for the lifetime of dataQuery's cursor (spec.md
// §4.4 step 1/§5: "holding it across the streaming cursor"), and
// decodes every column of every row straight from the wire via
// RawValues — pgx never materializes the full result set up front, so
// this never fetch_alls (spec.md §4.4 step 3).
func (s *Source) StreamPartition(ctx context.Context, sch schema.Schema, dataQuery string, onRow func(values []any) (err error)) (err error) {
	var conn *pgxpool.Conn
	if conn, err = s.pool.Acquire(ctx); err != nil {
		return cerr.NewSourcePoolExhaustedError(err)
	}
	defer conn.Release()

	var rows pgx.Rows
	if rows, err = conn.Query(ctx, dataQuery); err != nil {
		return cerr.NewQueryExecutionError(dataQuery, err)
	}
	defer rows.Close()

	var values = make([]any, len(sch.Columns))
	for rows.Next() {
		var raw = rows.RawValues()
		if len(raw) != len(sch.Columns) {
			return perrors.Errorf(
				"postgres: row has %d columns, schema has %d", len(raw), len(sch.Columns),
			)
		}
		for i, col := range sch.Columns {
			if values[i], err = decodeColumn(col.DataType, raw[i]); err != nil {
				return cerr.NewDecodeError(i, col.DataType, err)
			}
		}
		if err = onRow(values); err != nil {
			return err
		}
	}
	if err = rows.Err(); err != nil {
		return cerr.NewQueryExecutionError(dataQuery, err)
	}
	return nil
}
