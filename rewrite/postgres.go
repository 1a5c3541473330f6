package rewrite

import (
	"fmt"
	"strings"
)

// Postgres is the reference dialect (spec.md §6). The generated SQL
// forms are externally observable for debugging and partition-log
// serialization and must stay stable.
type Postgres struct{}

var _ Dialect = Postgres{}

// WrapQueryWithBounds implements Dialect.
//   - "select * from (<q>) as query_inner where <col> >= <lo> and <col> <{=} <hi>"
func (Postgres) WrapQueryWithBounds(q string, column string, bound Bound) (wrapped string) {
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
func (Postgres) SchemaQuery(q string) string {
	return fmt.Sprintf("select * from (%s) as query_inner limit 0", q)
}

// MinMaxQuery implements Dialect.
func (Postgres) MinMaxQuery(q string, column string) string {
	return fmt.Sprintf(
		"SELECT MIN(%s)::bigint, MAX(%s)::bigint FROM (%s) as query_inner",
		column, column, q,
	)
}

// CountQuery implements Dialect.
func (Postgres) CountQuery(q string, rangeMin, rangeMax *int64, column string) string {
	var query = fmt.Sprintf("SELECT count(*) FROM (%s) as q_count", q)
	if rangeMin != nil && rangeMax != nil {
		query += fmt.Sprintf(" WHERE %s >= %d and %s < %d", column, *rangeMin, column, *rangeMax)
	}
	return query
}

// MergeCountQueries implements Dialect. Optional; the planner does not
// call it (spec.md §9).
func (Postgres) MergeCountQueries(queries []string) string {
	var subqueries = make([]string, len(queries))
	for i, q := range queries {
		subqueries[i] = fmt.Sprintf(
			"(SELECT COUNT(*) FROM (%s) AS t%d)", strings.TrimRight(q, ";"), i,
		)
	}
	return "SELECT " + strings.Join(subqueries, " +\n       ") + ";"
}

// ExtractTableName implements Dialect as a best-effort scan of the
// outermost FROM target, not a full SQL parser (DESIGN.md: no corpus
// Go dependency supplies a SQL AST parser, and this operation is
// explicitly scoped to "not required for correctness" by spec.md
// §4.2).
func (Postgres) ExtractTableName(q string) (tableName string, ok bool) {
	var lower = strings.ToLower(q)
	var idx = strings.LastIndex(lower, " from ")
	if idx == -1 {
		return "", false
	}
	var rest = strings.TrimSpace(q[idx+len(" from "):])
	var end = len(rest)
	for i, r := range rest {
		switch r {
		case ' ', '\t', '\n', ',', ';', ')':
			end = i
		default:
			continue
		}
		break
	}
	tableName = rest[:end]
	return tableName, tableName != ""
}
