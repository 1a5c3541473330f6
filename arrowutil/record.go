// Package arrowutil assembles the per-partition []arrow.Array slices
// package extract produces into arrow.Record batches, the shape
// downstream Arrow consumers (IPC writers, Parquet, Flight) expect
// rather than a bare array slice. Grounded on the Record-assembly
// pattern in _examples/other_examples's otel-arrow record-producer.go
// (RecordBuilder), adapted to this module's already-built-builder flow
// instead of building from an entity type.
package arrowutil

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/schema"
)

// MakeRecordBatch wraps one partition's columns (as produced by
// extract.Run's per-partition arrays) into a single arrow.Record.
// Every column must have the same length; this is the row count of
// the partition.
func MakeRecordBatch(sch schema.Schema, columns []arrow.Array) (record arrow.Record, err error) {
	if len(columns) != len(sch.Columns) {
		return nil, perrors.Errorf(
			"arrowutil: %d columns for a %d-column schema", len(columns), len(sch.Columns),
		)
	}

	var arrowSchema, ok = sch.ToArrow()
	if !ok {
		return nil, perrors.New("arrowutil: schema has a column with no Arrow mapping")
	}

	var numRows int64
	if len(columns) > 0 {
		numRows = int64(columns[0].Len())
	}
	for i, col := range columns {
		if int64(col.Len()) != numRows {
			return nil, perrors.Errorf(
				"arrowutil: column %d (%s) has %d rows, column 0 has %d",
				i, sch.Columns[i].Name, col.Len(), numRows,
			)
		}
	}

	return array.NewRecord(arrowSchema, columns, numRows), nil
}

// MakeRecordBatches wraps every partition's columns produced by
// extract.Run (one []arrow.Array per data query, in index order) into
// one arrow.Record per partition, preserving that order.
func MakeRecordBatches(sch schema.Schema, batches [][]arrow.Array) (records []arrow.Record, err error) {
	records = make([]arrow.Record, len(batches))
	for i, columns := range batches {
		if records[i], err = MakeRecordBatch(sch, columns); err != nil {
			return nil, perrors.Errorf("arrowutil: partition %d: %w", i, err)
		}
	}
	return records, nil
}
