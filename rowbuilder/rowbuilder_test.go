package rowbuilder

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/schema"
)

func TestNewBuildersCoversEveryType(t *testing.T) {
	var columns []schema.Column
	for typ := nativetype.Bool; typ.IsValid(); typ++ {
		columns = append(columns, schema.Column{Name: typ.String(), DataType: typ})
	}
	sch := schema.Schema{Columns: columns}

	builders, err := NewBuilders(memory.DefaultAllocator, sch, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	if len(builders) != len(columns) {
		t.Fatalf("len(builders) = %d, want %d", len(builders), len(columns))
	}
	for i, b := range builders {
		if b == nil {
			t.Errorf("builders[%d] (%s) is nil", i, columns[i].DataType)
		}
		b.Release()
	}
}

func TestNewBuildersGeometryIsPlainList(t *testing.T) {
	// BidimensionalPoint (and the other fixed-arity geometric types)
	// must build as a plain array.ListBuilder, not a
	// FixedSizeListBuilder: nativetype.ToArrow maps them all to
	// List(Float64), and array.NewRecord panics if a column's builder
	// produces an array type that disagrees with the schema field.
	sch := schema.Schema{Columns: []schema.Column{{Name: "p", DataType: nativetype.BidimensionalPoint}}}
	builders, err := NewBuilders(memory.DefaultAllocator, sch, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	defer builders[0].Release()

	if _, ok := builders[0].(*array.ListBuilder); !ok {
		t.Errorf("BidimensionalPoint builder is %T, want *array.ListBuilder", builders[0])
	}
}

func TestAsListBuilder(t *testing.T) {
	sch := schema.Schema{Columns: []schema.Column{
		{Name: "path", DataType: nativetype.Path},
		{Name: "id", DataType: nativetype.I64},
	}}
	builders, err := NewBuilders(memory.DefaultAllocator, sch, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	if _, err := AsListBuilder(builders[0]); err != nil {
		t.Errorf("AsListBuilder(path builder) error = %v, want nil", err)
	}
	if _, err := AsListBuilder(builders[1]); err == nil {
		t.Error("AsListBuilder(scalar builder) = nil error, want cerr.ErrBuilderTypeMismatch")
	}
}
