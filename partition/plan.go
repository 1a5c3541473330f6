package partition

import (
	"context"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/rewrite"
)

// BoundsSource is the narrow capability the planner needs from a live
// connection: fetching the partitioning column's min/max and/or a row
// count, and the dialect to rewrite bounds into sub-queries. A
// source.Source implementation satisfies this structurally; partition
// does not import package source to avoid a source→partition→source
// cycle (source.Source depends on schema, rewrite and nativetype, and
// the root package wires source into partition).
type BoundsSource interface {
	// FetchMinMax runs query (already wrapped by the dialect's
	// MinMaxQuery) and returns the partitioning column's bounds.
	// min/max are nil when the column is entirely NULL over query.
	FetchMinMax(ctx context.Context, query string, column string) (min, max *int64, err error)
	// FetchCount runs query (already wrapped by the dialect's
	// CountQuery) and returns the row count.
	FetchCount(ctx context.Context, query string) (count int64, err error)
	// Dialect returns the SQL-string builder for this source's backend.
	Dialect() rewrite.Dialect
}

// Plan is the fully-resolved output of CreatePartitionPlan: the
// partitioning column's bounds, optional row counts, the ordered list
// of independently executable data sub-queries, and the configuration
// they came from. The metadata queries run while resolving it
// (MIN/MAX, COUNT) are not recorded in the Plan.
type Plan struct {
	// MinValue/MaxValue are the partitioning column's observed or
	// user-supplied bounds, populated only when QueryPartitionMode is
	// OnePartitionedQuery.
	MinValue *int64 `json:"min_value,omitempty"`
	MaxValue *int64 `json:"max_value,omitempty"`
	// Counts holds one row-count per entry of DataQueries, populated
	// only when Preallocation was requested. Each count is fetched from
	// the source, except under NeedsCountAndMinMax, where one total is
	// fetched and split evenly across the sub-queries by distributeCount.
	Counts []int64 `json:"counts,omitempty"`
	// DataQueries is the ordered, non-empty list of independently
	// executable sub-queries.
	DataQueries []string `json:"data_queries"`
	// PartitionConfig is the validated configuration this plan was
	// derived from.
	PartitionConfig Config `json:"partition_config"`
}

// CreatePartitionPlan resolves config against a live source into a
// Plan, fetching whatever metadata config.NeededMetadataFromSource
// demands and generating config.PartitionNum bounded sub-queries when
// config.QueryPartitionMode is OnePartitionedQuery. Grounded on
// _examples/original_source/conecta-core/src/partition.rs's
// PartitionConfig::get_partitions.
func CreatePartitionPlan(ctx context.Context, src BoundsSource, config Config) (plan Plan, err error) {
	switch config.QueryPartitionMode {
	case PartitionedQueries:
		plan = Plan{DataQueries: config.Queries, PartitionConfig: config}
		if config.Preallocation {
			var dialect = src.Dialect()
			plan.Counts = make([]int64, len(config.Queries))
			for i, q := range config.Queries {
				if plan.Counts[i], err = src.FetchCount(ctx, dialect.CountQuery(q, nil, nil, "")); err != nil {
					return Plan{}, perrors.Errorf("partition: fetching row count for query %d: %w", i, err)
				}
			}
		}
		return plan, nil

	case OneUnpartitionedQuery:
		plan = Plan{DataQueries: []string{config.Queries[0]}, PartitionConfig: config}
		if config.Preallocation {
			var count int64
			if count, err = src.FetchCount(ctx, src.Dialect().CountQuery(config.Queries[0], nil, nil, "")); err != nil {
				return Plan{}, perrors.Errorf("partition: fetching row count: %w", err)
			}
			plan.Counts = []int64{count}
		}
		return plan, nil
	}

	// OnePartitionedQuery: config.PartitionOn and config.PartitionNum are
	// both non-nil (NewConfig's invariant).
	var query = config.Queries[0]
	var column = *config.PartitionOn
	var n = *config.PartitionNum

	var min, max int64
	switch {
	case config.PartitionRangeMin != nil && config.PartitionRangeMax != nil:
		min, max = *config.PartitionRangeMin, *config.PartitionRangeMax
	default:
		var minPtr, maxPtr *int64
		if minPtr, maxPtr, err = src.FetchMinMax(ctx, src.Dialect().MinMaxQuery(query, column), column); err != nil {
			return Plan{}, perrors.Errorf("partition: fetching min/max of %q: %w", column, err)
		}
		if minPtr == nil || maxPtr == nil {
			return Plan{}, cerr.NewNoBoundsAvailableError(column)
		}
		min, max = *minPtr, *maxPtr
	}

	var bounds []Bound
	if bounds, err = computeBounds(min, max, n); err != nil {
		return Plan{}, perrors.Errorf("partition: computing bounds: %w", err)
	}

	var dialect = src.Dialect()
	var dataQueries = make([]string, len(bounds))
	for i, b := range bounds {
		dataQueries[i] = dialect.WrapQueryWithBounds(query, column, rewrite.Bound{
			Start: b.Start, Stop: b.Stop, IsLast: b.IsLast,
		})
	}

	plan = Plan{
		MinValue:        &min,
		MaxValue:        &max,
		DataQueries:     dataQueries,
		PartitionConfig: config,
	}

	if config.Preallocation {
		switch config.NeededMetadataFromSource {
		case NeedsCountAndMinMax:
			var total int64
			if total, err = src.FetchCount(ctx, dialect.CountQuery(query, &min, &max, column)); err != nil {
				return Plan{}, perrors.Errorf("partition: fetching row count: %w", err)
			}
			plan.Counts = distributeCount(total, len(bounds))
		default:
			// Bounds were user-supplied (NeedsNone path never reaches
			// here with Preallocation set, since isPartitioningOneQuery
			// with preallocation always needs at least a count), so no
			// count has been fetched yet; fetch one count per sub-query
			// directly.
			plan.Counts = make([]int64, len(bounds))
			for i, dq := range dataQueries {
				if plan.Counts[i], err = src.FetchCount(ctx, dialect.CountQuery(dq, nil, nil, "")); err != nil {
					return Plan{}, perrors.Errorf("partition: fetching row count for partition %d: %w", i, err)
				}
			}
		}
	}

	return plan, nil
}

// distributeCount splits total evenly across n partitions, adding the
// remainder to the last so sum(result) == total exactly.
func distributeCount(total int64, n int) (counts []int64) {
	counts = make([]int64, n)
	var base = total / int64(n)
	for i := range counts {
		counts[i] = base
	}
	counts[n-1] += total - base*int64(n)
	return
}
