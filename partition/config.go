// Package partition validates partitioning configuration and plans
// the decomposition of a logical query into independently executable
// sub-queries. Grounded on
// _examples/original_source/conecta-core/src/partition.rs, reworked
// from panics into error returns per the perrors convention.
package partition

import (
	"github.com/surister/conecta/perrors"
)

// NeededMetadata is the metadata the planner must fetch from the
// source before it can generate bounded sub-queries.
type NeededMetadata uint8

const (
	// NeedsNone means no source round-trip is required before planning.
	NeedsNone NeededMetadata = iota
	// NeedsCount means a row count is required (for preallocation).
	NeedsCount
	// NeedsMinMax means partitioning bounds are required.
	NeedsMinMax
	// NeedsCountAndMinMax means both are required.
	NeedsCountAndMinMax
)

// Mode classifies how the configured queries are partitioned.
type Mode uint8

const (
	// OneUnpartitionedQuery is a single query executed as one partition.
	OneUnpartitionedQuery Mode = iota
	// OnePartitionedQuery is a single query split into partition_num
	// bounded sub-queries over partition_on.
	OnePartitionedQuery
	// PartitionedQueries is the user's own list of independent queries.
	PartitionedQueries
)

// Config is validated user input to the partition planner.
//   - constructed once via NewConfig; immutable thereafter
//   - shipped by value into Plan
type Config struct {
	// Queries is the non-empty ordered sequence of SQL strings.
	Queries []string `json:"queries"`
	// PartitionOn is the optional column name to partition on.
	PartitionOn *string `json:"partition_on,omitempty"`
	// PartitionNum is the optional count of partitions (>= 1).
	PartitionNum *uint16 `json:"partition_num,omitempty"`
	// PartitionRangeMin/Max is the optional inclusive-low/exclusive-high
	// partitioning range.
	PartitionRangeMin *int64 `json:"partition_range_min,omitempty"`
	PartitionRangeMax *int64 `json:"partition_range_max,omitempty"`
	// Preallocation requests builders sized to an exact row count.
	Preallocation bool `json:"preallocation"`

	// NeededMetadataFromSource is derived at construction time.
	NeededMetadataFromSource NeededMetadata `json:"needed_metadata_from_source"`
	// QueryPartitionMode is derived at construction time.
	QueryPartitionMode Mode `json:"query_partition_mode"`
}

// ErrInvalidConfiguration is the sentinel for every NewConfig
// validation failure (spec.md §7).
var ErrInvalidConfiguration = perrors.New("partition: invalid configuration")

// NewConfig validates and constructs a Config. Every invariant in
// spec.md §3 is checked here, before any I/O.
func NewConfig(
	queries []string,
	partitionOn *string,
	partitionNum *uint16,
	partitionRangeMin *int64,
	partitionRangeMax *int64,
	preallocation bool,
) (config Config, err error) {
	if len(queries) == 0 {
		return Config{}, perrors.Errorf("%w: queries must not be empty", ErrInvalidConfiguration)
	}

	var hasRange = partitionRangeMin != nil || partitionRangeMax != nil
	if (partitionOn != nil || partitionNum != nil || hasRange) && len(queries) > 1 {
		return Config{}, perrors.Errorf(
			"%w: cannot combine multiple queries with partition_on/partition_num/partition_range",
			ErrInvalidConfiguration,
		)
	}

	if partitionNum != nil && partitionOn == nil {
		return Config{}, perrors.Errorf(
			"%w: partition_num=%d requires partition_on", ErrInvalidConfiguration, *partitionNum,
		)
	}

	if hasRange && partitionOn == nil {
		return Config{}, perrors.Errorf(
			"%w: partition_range requires partition_on", ErrInvalidConfiguration,
		)
	}

	if partitionRangeMin != nil && partitionRangeMax != nil && *partitionRangeMin >= *partitionRangeMax {
		return Config{}, perrors.Errorf(
			"%w: partition_range min (%d) must be less than max (%d)",
			ErrInvalidConfiguration, *partitionRangeMin, *partitionRangeMax,
		)
	}

	var isPartitioningOneQuery = partitionOn != nil && partitionNum != nil && len(queries) == 1
	var neededMetadata NeededMetadata
	switch {
	case isPartitioningOneQuery && !hasRange && preallocation:
		neededMetadata = NeedsCountAndMinMax
	case isPartitioningOneQuery && !hasRange:
		neededMetadata = NeedsMinMax
	case preallocation:
		neededMetadata = NeedsCount
	default:
		neededMetadata = NeedsNone
	}

	var mode Mode
	switch {
	case partitionOn != nil && partitionNum != nil && len(queries) == 1:
		mode = OnePartitionedQuery
	case len(queries) > 1:
		mode = PartitionedQueries
	default:
		mode = OneUnpartitionedQuery
	}

	config = Config{
		Queries:                  queries,
		PartitionOn:              partitionOn,
		PartitionNum:             partitionNum,
		PartitionRangeMin:        partitionRangeMin,
		PartitionRangeMax:        partitionRangeMax,
		Preallocation:            preallocation,
		NeededMetadataFromSource: neededMetadata,
		QueryPartitionMode:       mode,
	}
	return
}
