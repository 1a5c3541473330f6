// Package rewrite builds the dialect-specific SQL strings the planner
// and extraction engine need: bound-predicate wrapping, schema probes,
// min/max probes, count probes, and merged-count probes. Every
// operation is a pure string transformation of a user query. Grounded
// on _examples/original_source/conecta-core/src/source/postgres.rs.
package rewrite

// Bound is the half-open (or, for the last partition, closed) interval
// a bound-predicate wraps a query with.
type Bound struct {
	Start  int64
	Stop   int64
	IsLast bool
}

// Dialect builds the SQL strings spec.md §4.2 names, specific to one
// backend's SQL surface.
type Dialect interface {
	// WrapQueryWithBounds wraps q with a WHERE predicate restricting
	// column to [bound.Start, bound.Stop) or, if bound.IsLast,
	// [bound.Start, bound.Stop].
	WrapQueryWithBounds(q string, column string, bound Bound) string
	// SchemaQuery returns a form of q that returns zero rows but full
	// column metadata.
	SchemaQuery(q string) string
	// MinMaxQuery returns a query computing (MIN(column), MAX(column))
	// over q.
	MinMaxQuery(q string, column string) string
	// CountQuery returns a query computing COUNT(*) over q, optionally
	// narrowed to [min, max) when a range is given.
	CountQuery(q string, rangeMin, rangeMax *int64, column string) string
	// MergeCountQueries returns one statement summing COUNT(*) over
	// each of queries. Optional; unused by the planner (spec.md §9).
	MergeCountQueries(queries []string) string
	// ExtractTableName best-effort parses the outermost FROM target of
	// q. Not required for correctness of partitioned extraction
	// (spec.md §4.2).
	ExtractTableName(q string) (tableName string, ok bool)
}
