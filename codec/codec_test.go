package codec

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"

	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/rowbuilder"
	"github.com/surister/conecta/schema"
)

func TestAppendScalar(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()

	if err := Append(b, 0, nativetype.I64, int64(42)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := Append(b, 0, nativetype.I64, nil); err != nil {
		t.Fatalf("Append(nil) error = %v", err)
	}

	arr := b.NewArray().(*array.Int64)
	defer arr.Release()
	if arr.Len() != 2 {
		t.Fatalf("arr.Len() = %d, want 2", arr.Len())
	}
	if arr.Value(0) != 42 {
		t.Errorf("arr.Value(0) = %d, want 42", arr.Value(0))
	}
	if !arr.IsNull(1) {
		t.Error("arr.IsNull(1) = false, want true")
	}
}

func TestAppendTypeMismatch(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()

	if err := Append(b, 0, nativetype.I64, "not an int"); err == nil {
		t.Error("Append() with wrong Go type should error")
	}
}

func TestAppendUnsupportedType(t *testing.T) {
	b := array.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()

	if err := Append(b, 0, nativetype.Type(255), int64(1)); err == nil {
		t.Error("Append() with an out-of-range NativeType should error")
	}
}

func TestAppendUUID(t *testing.T) {
	builders, err := rowbuilder.NewBuilders(memory.DefaultAllocator, schema.Schema{
		Columns: []schema.Column{{Name: "id", DataType: nativetype.UUID}},
	}, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	defer builders[0].Release()

	id := uuid.New()
	if err := Append(builders[0], 0, nativetype.UUID, id); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	arr := builders[0].NewArray().(*array.FixedSizeBinary)
	defer arr.Release()
	if string(arr.Value(0)) != string(id[:]) {
		t.Error("appended UUID bytes do not round-trip")
	}
}

func TestAppendVec(t *testing.T) {
	builders, err := rowbuilder.NewBuilders(memory.DefaultAllocator, schema.Schema{
		Columns: []schema.Column{{Name: "tags", DataType: nativetype.VecI32}},
	}, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	defer builders[0].Release()

	a, b, c := int32(1), int32(2), int32(3)
	value := []*int32{&a, nil, &b, &c}
	if err := Append(builders[0], 0, nativetype.VecI32, value); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	arr := builders[0].NewArray().(*array.List)
	defer arr.Release()
	if arr.Len() != 1 {
		t.Fatalf("arr.Len() = %d, want 1", arr.Len())
	}
	values := arr.ListValues().(*array.Int32)
	if values.Len() != 4 {
		t.Fatalf("values.Len() = %d, want 4", values.Len())
	}
	if !values.IsNull(1) {
		t.Error("element 1 should be null")
	}
	if values.Value(0) != 1 || values.Value(2) != 2 || values.Value(3) != 3 {
		t.Errorf("values = [%d _ %d %d], want [1 _ 2 3]", values.Value(0), values.Value(2), values.Value(3))
	}
}

func TestAppendGeometryPoint(t *testing.T) {
	builders, err := rowbuilder.NewBuilders(memory.DefaultAllocator, schema.Schema{
		Columns: []schema.Column{{Name: "p", DataType: nativetype.BidimensionalPoint}},
	}, 0)
	if err != nil {
		t.Fatalf("NewBuilders() error = %v", err)
	}
	defer builders[0].Release()

	raw := make([]byte, 16)
	binary.BigEndian.PutUint64(raw[0:8], math.Float64bits(1.5))
	binary.BigEndian.PutUint64(raw[8:16], math.Float64bits(-2.5))

	if err := Append(builders[0], 0, nativetype.BidimensionalPoint, raw); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	arr := builders[0].NewArray().(*array.FixedSizeList)
	defer arr.Release()
	values := arr.ListValues().(*array.Float64)
	if values.Value(0) != 1.5 || values.Value(1) != -2.5 {
		t.Errorf("point = [%f %f], want [1.5 -2.5]", values.Value(0), values.Value(1))
	}
}

func TestDecodePolygon(t *testing.T) {
	raw := make([]byte, 32)
	binary.BigEndian.PutUint64(raw[0:8], math.Float64bits(1))
	binary.BigEndian.PutUint64(raw[8:16], math.Float64bits(2))
	binary.BigEndian.PutUint64(raw[16:24], math.Float64bits(3))
	binary.BigEndian.PutUint64(raw[24:32], math.Float64bits(4))

	coords, err := decodePolygon(raw)
	if err != nil {
		t.Fatalf("decodePolygon() error = %v", err)
	}
	want := []float64{1, 2, 3, 4}
	for i, c := range want {
		if coords[i] != c {
			t.Errorf("coords[%d] = %f, want %f", i, coords[i], c)
		}
	}
}

func TestDecodePolygonBadLength(t *testing.T) {
	if _, err := decodePolygon(make([]byte, 15)); err == nil {
		t.Error("decodePolygon() with a non-multiple-of-16 length should error")
	}
}
