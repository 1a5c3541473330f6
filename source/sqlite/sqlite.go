// Package sqlite is the scaffold Source backend (spec.md §6: SQLite
// support is explicitly reduced scope — no geometric types, no array
// columns, no binary wire protocol to decode since database/sql
// always hands back already-converted Go values). Grounded on
// _examples/haraldrudell-parl's sqliter.DataSource (prepare-execute-
// scan conventions), adapted from a generic SQL helper layer into a
// source.Source implementation.
package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/extract"
	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/partition"
	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/plog"
	"github.com/surister/conecta/psql"
	"github.com/surister/conecta/rewrite"
	"github.com/surister/conecta/schema"
	"github.com/surister/conecta/sqliter"
)

// Source is the SQLite backend. It satisfies source.Source
// structurally (package source does not import this package; this
// package does not import source, avoiding a cycle).
type Source struct {
	ds     *sqliter.DataSource
	schema *plog.DWrapper
}

// Open opens a SQLite database at uri (a "sqlite://" URI or bare file
// path — the "sqlite://" prefix, if present, is stripped since
// modernc.org/sqlite expects a plain filesystem path or ":memory:").
// maxPoolSize is accepted for interface symmetry with source/postgres
// but has no effect: database/sql's own internal connection pool
// governs SQLite access, and SQLite itself serializes writers, so
// capping concurrent readers here would just add a second pool on top
// of the driver's.
func Open(ctx context.Context, uri string, maxPoolSize uint32) (src *Source, err error) {
	var dsn = stripScheme(uri)

	var ds *sqliter.DataSource
	if ds, err = sqliter.NewDataSource(dsn); err != nil {
		return nil, cerr.NewSourceConnectError(err)
	}
	if err = ds.DB.PingContext(ctx); err != nil {
		return nil, cerr.NewSourceConnectError(err)
	}
	return &Source{ds: ds, schema: plog.NewDWrapper(plog.NewLog().Debug)}, nil
}

func stripScheme(uri string) string {
	const prefix = "sqlite://"
	if len(uri) >= len(prefix) && uri[:len(prefix)] == prefix {
		return uri[len(prefix):]
	}
	return uri
}

// Dialect implements partition.BoundsSource and source.Source.
func (s *Source) Dialect() rewrite.Dialect { return rewrite.SQLite{} }

// Validate implements source.Source. It pings the database and, as a
// SQLite-specific pre-flight check, reads back the pragmas the
// teacher's sqliter package already exposes (foreign_keys,
// journal_mode, busy_timeout) — useful for diagnosing a misconfigured
// file before a long-running partition extraction starts against it.
func (s *Source) Validate(ctx context.Context) (err error) {
	if err = s.ds.DB.PingContext(ctx); err != nil {
		return cerr.NewSourceConnectError(err)
	}
	if _, err = sqliter.Pragma(s.ds, ctx); err != nil {
		return cerr.NewSourceConnectError(err)
	}
	return nil
}

// Close implements source.Source.
func (s *Source) Close() (err error) {
	return s.ds.Close()
}

// FetchMinMax implements partition.BoundsSource.
func (s *Source) FetchMinMax(ctx context.Context, query string, column string) (min, max *int64, err error) {
	var row *sql.Row
	if row, err = s.ds.QueryRowContext(ctx, query); err != nil {
		return nil, nil, wrapQueryErr(query, err)
	}

	var minVal, maxVal sql.NullInt64
	if err = row.Scan(&minVal, &maxVal); err != nil {
		return nil, nil, wrapQueryErr(query, err)
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

// FetchCount implements partition.BoundsSource. Scanning goes through
// psql.ScanToInt, which also absorbs a nil *sql.Row/error pair from
// QueryRowContext uniformly instead of a separate nil check.
func (s *Source) FetchCount(ctx context.Context, query string) (count int64, err error) {
	var row, queryErr = s.ds.QueryRowContext(ctx, query)
	var n int
	if n, err = psql.ScanToInt(row, queryErr); err != nil {
		return 0, wrapQueryErr(query, err)
	}
	return int64(n), nil
}

// wrapQueryErr classifies a driver error via sqliter.Code: a busy
// database (another writer holding the file lock) is reported as pool
// exhaustion rather than a generic query failure, since the caller's
// retry/backoff policy for the two differs.
func wrapQueryErr(query string, err error) error {
	if code, _ := sqliter.Code(err); code == sqliter.CodeBusy {
		return cerr.NewSourcePoolExhaustedError(err)
	}
	return cerr.NewQueryExecutionError(query, err)
}

// SchemaOf implements source.Source: runs the "... LIMIT 0" probe and
// reads column names/declared types from database/sql's ColumnTypes,
// mapping SQLite's dynamic type affinities down to this module's
// reduced SQLite NativeType subset (spec.md §6's Non-goal: no
// geometric or array columns over this backend).
func (s *Source) SchemaOf(ctx context.Context, query string) (sch schema.Schema, err error) {
	var probe = rewrite.SQLite{}.SchemaQuery(query)

	var columns []schema.Column
	if err = s.ds.QueryContext(ctx, func(rows *sql.Rows) (err error) {
		var colTypes []*sql.ColumnType
		if colTypes, err = rows.ColumnTypes(); err != nil {
			return err
		}
		columns = make([]schema.Column, len(colTypes))
		for i, ct := range colTypes {
			s.schema.D("%s", psql.ColumnType(ct))
			columns[i] = schema.Column{
				Name:             ct.Name(),
				DataType:         nativeTypeForDecltype(ct.DatabaseTypeName()),
				OriginalTypeRepr: ct.DatabaseTypeName(),
			}
		}
		return nil
	}, probe); err != nil {
		return schema.Schema{}, wrapQueryErr(probe, err)
	}
	return schema.Schema{Columns: columns}, nil
}

// nativeTypeForDecltype maps SQLite's declared column type affinities
// (INTEGER, REAL, TEXT, BLOB, NUMERIC — see sqlite.org/datatype3.html
// §3.1) to this backend's reduced NativeType subset. Unrecognized
// affinities default to String, SQLite's most permissive storage
// class, rather than failing: unlike Postgres, SQLite's column types
// are advisory, not enforced, so an unusual declared type is not a
// schema error.
func nativeTypeForDecltype(decltype string) nativetype.Type {
	switch decltype {
	case "INTEGER", "INT", "BIGINT":
		return nativetype.I64
	case "REAL", "DOUBLE", "FLOAT":
		return nativetype.F64
	case "BLOB":
		return nativetype.Bytes
	case "BOOLEAN", "BOOL":
		return nativetype.Bool
	case "UUID":
		return nativetype.UUID
	case "DATETIME", "TIMESTAMP":
		return nativetype.TimestampWithoutTimeZone
	default:
		return nativetype.String
	}
}

// ProcessPartitionPlan implements source.Source.
func (s *Source) ProcessPartitionPlan(ctx context.Context, plan partition.Plan, sch schema.Schema, maxPoolSize int) (batches [][]arrow.Array, err error) {
	return extract.Run(ctx, s, sch, plan.DataQueries, extract.Options{
		MaxPoolSize: maxPoolSize,
		Counts:      plan.Counts,
	})
}

// StreamPartition implements extract.RowSource. database/sql scans
// every SQLite value through the driver's own any-typed conversion, so
// decoding here is a Go-type-switch over rows.Scan's output rather
// than a binary wire-format decode (contrast source/postgres).
func (s *Source) StreamPartition(ctx context.Context, sch schema.Schema, dataQuery string, onRow func(values []any) (err error)) (err error) {
	return s.ds.QueryContext(ctx, func(rows *sql.Rows) (err error) {
		var scanTargets = make([]any, len(sch.Columns))
		var scanValues = make([]any, len(sch.Columns))
		for i := range scanTargets {
			scanTargets[i] = &scanValues[i]
		}

		for rows.Next() {
			if err = rows.Scan(scanTargets...); err != nil {
				return err
			}

			var values = make([]any, len(sch.Columns))
			for i, col := range sch.Columns {
				if values[i], err = coerce(col, scanValues[i]); err != nil {
					return cerr.NewDecodeError(i, col.DataType, err)
				}
			}
			if err = onRow(values); err != nil {
				return err
			}
		}
		return rows.Err()
	}, dataQuery)
}

// coerce narrows database/sql's driver.Value (int64, float64, string,
// []byte, bool, or nil) to the exact Go representation package codec
// expects for col.DataType. Timestamps arrive in one of two SQLite text
// conventions (sqliter's DATETIME millisecond form, or an RFC3339
// nanosecond string) distinguished by the column's declared type name.
func coerce(col schema.Column, raw any) (value any, err error) {
	var nt = col.DataType
	if raw == nil {
		return nil, nil
	}

	switch nt {
	case nativetype.Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case int64:
			return sqliter.ToBool(int(v))
		}
	case nativetype.I64:
		if v, ok := raw.(int64); ok {
			return v, nil
		}
	case nativetype.F64:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		}
	case nativetype.Bytes:
		if v, ok := raw.([]byte); ok {
			return v, nil
		}
	case nativetype.String:
		switch v := raw.(type) {
		case string:
			return v, nil
		case []byte:
			return string(v), nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case float64:
			return strconv.FormatFloat(v, 'g', -1, 64), nil
		}
	case nativetype.UUID:
		switch v := raw.(type) {
		case string:
			return sqliter.ToUUID(v)
		case []byte:
			return sqliter.ToUUID(string(v))
		}
	case nativetype.TimestampWithoutTimeZone:
		var text string
		switch v := raw.(type) {
		case string:
			text = v
		case []byte:
			text = string(v)
		default:
			return nil, perrors.Errorf("sqlite: column value %T does not match declared type %s", raw, nt)
		}
		var t time.Time
		if col.OriginalTypeRepr == "TIMESTAMP" {
			t, err = sqliter.ToTime(text)
		} else {
			t, err = sqliter.DATETIMEtoTime(text)
		}
		if err != nil {
			return nil, err
		}
		return t.UTC().UnixMicro(), nil
	}
	return nil, perrors.Errorf("sqlite: column value %T does not match declared type %s", raw, nt)
}
