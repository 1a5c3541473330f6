package rewrite

import (
	"fmt"
	"strings"
)

// SQLite is the scaffold dialect used by the sqlite source (spec.md
// §6). SQLite has no native bigint cast; CAST(... AS INTEGER) is the
// closest equivalent and is sufficient for the 64-bit partitioning
// column values this package operates on.
type SQLite struct{}

var _ Dialect = SQLite{}

// WrapQueryWithBounds implements Dialect.
func (SQLite) WrapQueryWithBounds(q string, column string, bound Bound) string {
	var op = "<"
	if bound.IsLast {
		op = "<="
	}
	return fmt.Sprintf(
		"select * from (%s) as query_inner where %s >= %d and %s %s %d",
		q, column, bound.Start, column, op, bound.Stop,
	)
}

// SchemaQuery implements Dialect.
func (SQLite) SchemaQuery(q string) string {
	return fmt.Sprintf("select * from (%s) as query_inner limit 0", q)
}

// MinMaxQuery implements Dialect.
func (SQLite) MinMaxQuery(q string, column string) string {
	return fmt.Sprintf(
		"SELECT CAST(MIN(%s) AS INTEGER), CAST(MAX(%s) AS INTEGER) FROM (%s) as query_inner",
		column, column, q,
	)
}

// CountQuery implements Dialect.
func (SQLite) CountQuery(q string, rangeMin, rangeMax *int64, column string) string {
	var query = fmt.Sprintf("SELECT count(*) FROM (%s) as q_count", q)
	if rangeMin != nil && rangeMax != nil {
		query += fmt.Sprintf(" WHERE %s >= %d and %s < %d", column, *rangeMin, column, *rangeMax)
	}
	return query
}

// MergeCountQueries implements Dialect.
func (SQLite) MergeCountQueries(queries []string) string {
	var subqueries = make([]string, len(queries))
	for i, q := range queries {
		subqueries[i] = fmt.Sprintf(
			"(SELECT COUNT(*) FROM (%s) AS t%d)", strings.TrimRight(q, ";"), i,
		)
	}
	return "SELECT " + strings.Join(subqueries, " +\n       ") + ";"
}

// ExtractTableName implements Dialect.
func (SQLite) ExtractTableName(q string) (tableName string, ok bool) {
	return Postgres{}.ExtractTableName(q)
}
