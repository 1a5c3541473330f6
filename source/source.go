// Package source defines the polymorphic capability set spec.md §4.5
// names over a backend, and dispatches a connection URI to the
// matching implementation (source/postgres, source/sqlite). Grounded
// on _examples/original_source/conecta-core/src/source/mod.rs and
// source/source.rs.
package source

import (
	"context"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/partition"
	"github.com/surister/conecta/schema"
	"github.com/surister/conecta/source/postgres"
	"github.com/surister/conecta/source/sqlite"
)

// Source is the full capability set the planner and extraction engine
// need from a backend. partition.BoundsSource (Dialect, FetchMinMax,
// FetchCount) is embedded so a Source satisfies the planner's
// narrower dependency structurally, without the planner importing
// this package (see partition/plan.go's doc comment on BoundsSource).
type Source interface {
	partition.BoundsSource

	// Validate runs backend-specific pre-flight checks (spec.md §4.5).
	Validate(ctx context.Context) (err error)
	// SchemaOf probes query for column names and NativeTypes via
	// Dialect().SchemaQuery, without materializing any row.
	SchemaOf(ctx context.Context, query string) (sch schema.Schema, err error)
	// ProcessPartitionPlan is the extraction entry point (spec.md
	// §4.5): it runs every plan.DataQueries entry against sch and
	// returns one []arrow.Array per partition, in plan.DataQueries
	// order, bounded to at most maxPoolSize concurrent partitions.
	ProcessPartitionPlan(ctx context.Context, plan partition.Plan, sch schema.Schema, maxPoolSize int) (batches [][]arrow.Array, err error)
	// Close releases the backend's connection pool.
	Close() (err error)
}

// Open dispatches uri's scheme to the matching Source constructor
// (spec.md §6): "postgres://", "postgresql://" (optional "+driver"
// suffix stripped, case sensitive) to source/postgres, "sqlite" to
// source/sqlite. Unknown schemes fail with cerr.ErrUnknownScheme.
//   - maxPoolSize, when non-zero, overrides the backend's default pool
//     size (spec.md §5: default equals the number of data queries).
func Open(ctx context.Context, uri string, maxPoolSize uint32) (src Source, err error) {
	var scheme, ok = schemeOf(uri)
	if !ok {
		return nil, cerr.NewUnknownSchemeError(uri)
	}
	switch scheme {
	case "postgres", "postgresql":
		return openPostgres(ctx, uri, maxPoolSize)
	case "sqlite":
		return openSQLite(ctx, uri, maxPoolSize)
	default:
		return nil, cerr.NewUnknownSchemeError(scheme)
	}
}

// openPostgres adapts source/postgres.Open's concrete return type to
// the Source interface.
func openPostgres(ctx context.Context, uri string, maxPoolSize uint32) (src Source, err error) {
	return postgres.Open(ctx, uri, maxPoolSize)
}

// openSQLite adapts source/sqlite.Open's concrete return type to the
// Source interface.
func openSQLite(ctx context.Context, uri string, maxPoolSize uint32) (src Source, err error) {
	return sqlite.Open(ctx, uri, maxPoolSize)
}

// schemeOf extracts uri's scheme, stripping an optional "+driver"
// qualifier (e.g. "postgresql+asyncpg" → "postgresql"). Matching is
// case sensitive per spec.md §6.
func schemeOf(uri string) (scheme string, ok bool) {
	var idx = strings.Index(uri, "://")
	if idx == -1 {
		return "", false
	}
	scheme = uri[:idx]
	if plus := strings.IndexByte(scheme, '+'); plus != -1 {
		scheme = scheme[:plus]
	}
	return scheme, true
}
