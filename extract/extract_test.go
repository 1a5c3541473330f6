package extract

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/schema"

	"github.com/surister/conecta/nativetype"
)

// fakeRowSource streams canned rows per query, keyed by the query
// string itself, and counts the peak number of concurrently running
// StreamPartition calls.
type fakeRowSource struct {
	rows    map[string][][]any
	failOn  string
	active  int32
	peak    int32
}

func (f *fakeRowSource) StreamPartition(ctx context.Context, sch schema.Schema, dataQuery string, onRow func(values []any) (err error)) (err error) {
	var n = atomic.AddInt32(&f.active, 1)
	defer atomic.AddInt32(&f.active, -1)
	for {
		var p = atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}

	if dataQuery == f.failOn {
		return perrors.New("fake source: induced failure")
	}
	for _, row := range f.rows[dataQuery] {
		if err = onRow(row); err != nil {
			return err
		}
	}
	return nil
}

func testSchema() schema.Schema {
	return schema.Schema{Columns: []schema.Column{{Name: "id", DataType: nativetype.I64}}}
}

func TestRunOrdersBatchesByQueryIndex(t *testing.T) {
	src := &fakeRowSource{rows: map[string][][]any{
		"q0": {{int64(1)}, {int64(2)}},
		"q1": {{int64(10)}},
		"q2": {},
	}}
	batches, err := Run(context.Background(), src, testSchema(), []string{"q0", "q1", "q2"}, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("len(batches) = %d, want 3", len(batches))
	}
	if batches[0][0].(*array.Int64).Len() != 2 {
		t.Errorf("batches[0] has %d rows, want 2", batches[0][0].(*array.Int64).Len())
	}
	if batches[1][0].(*array.Int64).Len() != 1 {
		t.Errorf("batches[1] has %d rows, want 1", batches[1][0].(*array.Int64).Len())
	}
	if batches[2][0].(*array.Int64).Len() != 0 {
		t.Errorf("batches[2] has %d rows, want 0", batches[2][0].(*array.Int64).Len())
	}
}

func TestRunPropagatesFirstError(t *testing.T) {
	src := &fakeRowSource{
		rows:   map[string][][]any{"q0": {{int64(1)}}},
		failOn: "q1",
	}
	_, err := Run(context.Background(), src, testSchema(), []string{"q0", "q1"}, Options{})
	if err == nil {
		t.Fatal("Run() = nil error, want the induced failure")
	}
}

func TestRunRespectsMaxPoolSize(t *testing.T) {
	src := &fakeRowSource{rows: map[string][][]any{
		"q0": {{int64(1)}}, "q1": {{int64(2)}}, "q2": {{int64(3)}}, "q3": {{int64(4)}},
	}}
	_, err := Run(context.Background(), src, testSchema(), []string{"q0", "q1", "q2", "q3"}, Options{MaxPoolSize: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if src.peak > 2 {
		t.Errorf("peak concurrent partitions = %d, want <= 2", src.peak)
	}
}

func TestRunRejectsInvalidSchema(t *testing.T) {
	badSchema := schema.Schema{Columns: []schema.Column{{Name: "bad", DataType: nativetype.Type(255)}}}
	_, err := Run(context.Background(), &fakeRowSource{}, badSchema, []string{"q0"}, Options{})
	if err == nil {
		t.Error("Run() with an invalid schema should error before starting any worker")
	}
}

func TestRunRejectsEmptyQueries(t *testing.T) {
	_, err := Run(context.Background(), &fakeRowSource{}, testSchema(), nil, Options{})
	if err == nil {
		t.Error("Run() with no data queries should error")
	}
}
