// Package rowbuilder allocates one Arrow array.Builder per column of a
// schema, sized by an optional row-count capacity. Grounded on
// _examples/original_source/conecta-core/src/destination/arrow.rs's
// get_arrow_builders and spec.md §4.3.
package rowbuilder

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/schema"
)

// stringByteFactor is the byte-capacity heuristic spec.md §4.3 names
// for variable-length string builders: capacity rows × 1024 bytes.
const stringByteFactor = 1024

// NewBuilders allocates one builder per column of s. Scalar builders
// reserve capacity rows and string builders also reserve capacity ×
// stringByteFactor data bytes; list and binary builders are not
// pre-sized (capacity is 0 when preallocation is disabled, in which
// case every builder grows amortized). alloc is the memory.Allocator builders
// draw from; pass memory.DefaultAllocator when the caller has no
// reason to use a pooled one.
func NewBuilders(alloc memory.Allocator, s schema.Schema, capacity int) (builders []array.Builder, err error) {
	builders = make([]array.Builder, len(s.Columns))
	for i, col := range s.Columns {
		var dataType arrow.DataType
		var ok bool
		if dataType, ok = col.DataType.ToArrow(); !ok {
			return nil, nativetype.NewUnsupportedTypeError(col.DataType)
		}

		switch col.DataType {
		case nativetype.BidimensionalPoint, nativetype.Line, nativetype.Circle,
			nativetype.Box, nativetype.LineSegment:
			// Plain variable list, not FixedSizeList: nativetype.ToArrow
			// maps every one of these to List(Float64) (spec.md §8's
			// round-trip invariant), so the builder's Arrow type must
			// match or array.NewRecord panics on the schema/column
			// mismatch.
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Float64)
			continue
		case nativetype.String, nativetype.Char:
			var b = array.NewBuilder(alloc, arrow.BinaryTypes.String).(*array.StringBuilder)
			if capacity > 0 {
				b.ReserveData(capacity * stringByteFactor)
			}
			builders[i] = b
			continue
		case nativetype.VecString, nativetype.VecChar:
			builders[i] = array.NewListBuilder(alloc, arrow.BinaryTypes.String)
			continue
		case nativetype.VecBool:
			builders[i] = array.NewListBuilder(alloc, arrow.FixedWidthTypes.Boolean)
			continue
		case nativetype.VecByte:
			builders[i] = array.NewListBuilder(alloc, arrow.BinaryTypes.Binary)
			continue
		case nativetype.VecUUID:
			builders[i] = array.NewListBuilder(alloc, &arrow.FixedSizeBinaryType{ByteWidth: 16})
			continue
		case nativetype.VecI8:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Int8)
			continue
		case nativetype.VecI16:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Int16)
			continue
		case nativetype.VecI32:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Int32)
			continue
		case nativetype.VecI64:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Int64)
			continue
		case nativetype.VecF16:
			builders[i] = array.NewListBuilder(alloc, arrow.FixedWidthTypes.Float16)
			continue
		case nativetype.VecF32:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Float32)
			continue
		case nativetype.VecF64:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Float64)
			continue
		case nativetype.Path, nativetype.Polygon:
			builders[i] = array.NewListBuilder(alloc, arrow.PrimitiveTypes.Float64)
			continue
		case nativetype.PgGis, nativetype.Bytes:
			builders[i] = array.NewBuilder(alloc, arrow.BinaryTypes.Binary)
			continue
		}

		var b = array.NewBuilder(alloc, dataType)
		if capacity > 0 {
			b.Reserve(capacity)
		}
		builders[i] = b
	}
	return builders, nil
}

// ListBuilder narrows the subset of array.Builder operations the
// codec layer needs when appending into a variable- or fixed-arity
// list column, regardless of which concrete Arrow builder backs it.
type ListBuilder interface {
	array.Builder
	Append(bool)
	ValueBuilder() array.Builder
}

// AsListBuilder downcasts b to ListBuilder, returning
// cerr.ErrBuilderTypeMismatch if b is not list-shaped. Grounded on
// spec.md §4.4 step 5's required "downcast builder i to its concrete
// typed builder" failure mode.
func AsListBuilder(b array.Builder) (lb ListBuilder, err error) {
	switch v := b.(type) {
	case *array.ListBuilder:
		return v, nil
	case *array.FixedSizeListBuilder:
		return v, nil
	default:
		return nil, cerr.ErrBuilderTypeMismatch
	}
}
