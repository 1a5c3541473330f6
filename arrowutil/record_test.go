package arrowutil

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/rowbuilder"
	"github.com/surister/conecta/schema"
)

func TestMakeRecordBatch(t *testing.T) {
	sch := schema.Schema{Columns: []schema.Column{{Name: "id", DataType: nativetype.I64}}}
	builders, err := rowbuilder.NewBuilders(memory.DefaultAllocator, sch, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	b := builders[0].(*array.Int64Builder)
	b.AppendValues([]int64{1, 2, 3}, nil)
	arr := b.NewArray()
	defer arr.Release()

	record, err := MakeRecordBatch(sch, []arrow.Array{arr})
	if err != nil {
		t.Fatalf("MakeRecordBatch() error = %v", err)
	}
	defer record.Release()

	if record.NumRows() != 3 {
		t.Errorf("NumRows() = %d, want 3", record.NumRows())
	}
	if record.NumCols() != 1 {
		t.Errorf("NumCols() = %d, want 1", record.NumCols())
	}
}

func TestMakeRecordBatchColumnCountMismatch(t *testing.T) {
	sch := schema.Schema{Columns: []schema.Column{{Name: "id", DataType: nativetype.I64}}}
	if _, err := MakeRecordBatch(sch, nil); err == nil {
		t.Error("MakeRecordBatch() with a missing column should error")
	}
}

func TestMakeRecordBatches(t *testing.T) {
	sch := schema.Schema{Columns: []schema.Column{{Name: "id", DataType: nativetype.I64}}}

	makeArray := func(values []int64) arrow.Array {
		builders, err := rowbuilder.NewBuilders(memory.DefaultAllocator, sch, 0)
		if err != nil {
			t.Fatalf("NewBuilders() error = %v", err)
		}
		b := builders[0].(*array.Int64Builder)
		b.AppendValues(values, nil)
		return b.NewArray()
	}

	batches := [][]arrow.Array{
		{makeArray([]int64{1, 2})},
		{makeArray([]int64{3})},
	}
	defer func() {
		for _, batch := range batches {
			for _, col := range batch {
				col.Release()
			}
		}
	}()

	records, err := MakeRecordBatches(sch, batches)
	if err != nil {
		t.Fatalf("MakeRecordBatches() error = %v", err)
	}
	defer func() {
		for _, r := range records {
			r.Release()
		}
	}()

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].NumRows() != 2 || records[1].NumRows() != 1 {
		t.Errorf("record row counts = [%d %d], want [2 1]", records[0].NumRows(), records[1].NumRows())
	}
}
