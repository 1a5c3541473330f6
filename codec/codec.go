// Package codec implements the per-column decode/transform/append
// dispatch spec.md §4.4 names: given a driver-scanned value and a
// nativetype.Type, append it (or a null) to the matching Arrow
// builder. Grounded on _examples/original_source/conecta-core/src/lib.rs's
// append_column_value! macro, reworked from a downcast-or-panic macro
// into a dense ordinal-indexed dispatch table (spec.md §9) returning
// errors instead of panicking.
package codec

import (
	"encoding/binary"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/google/uuid"

	"github.com/surister/conecta/cerr"
	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/rowbuilder"
)

// Appender appends one decoded column value to its builder, or a null
// when value is nil. columnIndex and nativeType are carried into any
// returned error for diagnostics (spec.md §7's DecodeError fields).
type Appender func(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error)

// dispatch is the dense table spec.md §9 mandates: indexed by
// nativetype.Type ordinal, not a chain of if-else/string comparisons.
var dispatch [int(nativetype.PgGis) + 1]Appender

func init() {
	dispatch[nativetype.Bool] = appendScalar[bool, *array.BooleanBuilder]()
	dispatch[nativetype.Char] = appendScalar[string, *array.StringBuilder]()
	dispatch[nativetype.Bytes] = appendScalar[[]byte, *array.BinaryBuilder]()

	dispatch[nativetype.I8] = appendScalar[int8, *array.Int8Builder]()
	dispatch[nativetype.I16] = appendScalar[int16, *array.Int16Builder]()
	dispatch[nativetype.I32] = appendScalar[int32, *array.Int32Builder]()
	dispatch[nativetype.I64] = appendScalar[int64, *array.Int64Builder]()

	dispatch[nativetype.UI8] = appendScalar[uint8, *array.Uint8Builder]()
	dispatch[nativetype.UI16] = appendScalar[uint16, *array.Uint16Builder]()
	dispatch[nativetype.UI32] = appendScalar[uint32, *array.Uint32Builder]()
	dispatch[nativetype.UI64] = appendScalar[uint64, *array.Uint64Builder]()

	dispatch[nativetype.F16] = appendFloat16
	dispatch[nativetype.F32] = appendScalar[float32, *array.Float32Builder]()
	dispatch[nativetype.F64] = appendScalar[float64, *array.Float64Builder]()

	dispatch[nativetype.String] = appendScalar[string, *array.StringBuilder]()
	dispatch[nativetype.UUID] = appendUUID

	dispatch[nativetype.Date32] = appendDate32
	dispatch[nativetype.TimestampWithoutTimeZone] = appendTimestamp
	dispatch[nativetype.Time] = appendTime

	dispatch[nativetype.VecBool] = appendVec[bool]
	dispatch[nativetype.VecString] = appendVec[string]
	dispatch[nativetype.VecByte] = appendVec[[]byte]
	dispatch[nativetype.VecChar] = appendVec[string]
	dispatch[nativetype.VecI8] = appendVec[int8]
	dispatch[nativetype.VecI16] = appendVec[int16]
	dispatch[nativetype.VecI32] = appendVec[int32]
	dispatch[nativetype.VecI64] = appendVec[int64]
	dispatch[nativetype.VecF16] = appendVecFloat16
	dispatch[nativetype.VecF32] = appendVec[float32]
	dispatch[nativetype.VecF64] = appendVec[float64]
	dispatch[nativetype.VecUUID] = appendVecUUID

	dispatch[nativetype.BidimensionalPoint] = appendGeometry(2, decodePoint)
	dispatch[nativetype.Line] = appendGeometry(3, decodeFixedFloats(3))
	dispatch[nativetype.Circle] = appendGeometry(3, decodeFixedFloats(3))
	dispatch[nativetype.Box] = appendGeometry(4, decodeFixedFloats(4))
	dispatch[nativetype.LineSegment] = appendGeometry(4, decodeFixedFloats(4))
	dispatch[nativetype.Path] = appendGeometry(-1, decodePath)
	dispatch[nativetype.Polygon] = appendGeometry(-1, decodePolygon)

	dispatch[nativetype.PgGis] = appendScalar[[]byte, *array.BinaryBuilder]()
}

// Append decodes value (nil meaning the driver observed SQL NULL) into
// builder b for the column at columnIndex carrying nativeType, per the
// dispatch table above. It is the single entry point the extraction
// engine's row loop calls once per (row, column) pair.
func Append(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	if !nativeType.IsValid() || int(nativeType) >= len(dispatch) || dispatch[nativeType] == nil {
		return nativetype.NewUnsupportedTypeError(nativeType)
	}
	return dispatch[nativeType](b, columnIndex, nativeType, value)
}

// appendScalar builds an Appender for a NativeType whose driver value
// and builder append method require no transform beyond a type
// assertion (identity transform, per spec.md §4.4's table).
func appendScalar[V any, B interface {
	array.Builder
	AppendNull()
	Append(V)
}]() Appender {
	return func(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
		var typed, ok = b.(B)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		if value == nil {
			typed.AppendNull()
			return nil
		}
		var v, vOK = value.(V)
		if !vOK {
			return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
		}
		typed.Append(v)
		return nil
	}
}

// appendUUID implements the UUID row: "16-byte UUID, as_bytes
// transform, fixed binary(16) builder" (spec.md §4.4).
func appendUUID(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var typed, ok = b.(*array.FixedSizeBinaryBuilder)
	if !ok {
		return cerr.ErrBuilderTypeMismatch
	}
	if value == nil {
		typed.AppendNull()
		return nil
	}
	var id, idOK = value.(uuid.UUID)
	if !idOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	var bytes = id
	typed.Append(bytes[:])
	return nil
}

// appendDate32 implements "(d − 1970-01-01) in days → i32" (spec.md
// §4.4): value must be an int32 count of days since 1970-01-01, already
// reduced to that form by the caller's driver-specific scan
// path (source/postgres and source/sqlite each normalize their native
// date representation to this before calling Append).
func appendDate32(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var typed, ok = b.(*array.Date32Builder)
	if !ok {
		return cerr.ErrBuilderTypeMismatch
	}
	if value == nil {
		typed.AppendNull()
		return nil
	}
	var days, daysOK = value.(int32)
	if !daysOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	typed.Append(arrow.Date32(days))
	return nil
}

// appendTimestamp implements "utc_micros → i64" (spec.md §4.4).
func appendTimestamp(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var typed, ok = b.(*array.TimestampBuilder)
	if !ok {
		return cerr.ErrBuilderTypeMismatch
	}
	if value == nil {
		typed.AppendNull()
		return nil
	}
	var micros, microsOK = value.(int64)
	if !microsOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	typed.Append(arrow.Timestamp(micros))
	return nil
}

// appendTime implements "seconds_from_midnight·1e6 + nanos/1e3 → i64"
// (spec.md §4.4).
func appendTime(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var typed, ok = b.(*array.Time64Builder)
	if !ok {
		return cerr.ErrBuilderTypeMismatch
	}
	if value == nil {
		typed.AppendNull()
		return nil
	}
	var micros, microsOK = value.(int64)
	if !microsOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	typed.Append(arrow.Time64(micros))
	return nil
}

// appendVec implements "vector of Option<T> → identity → list-of-T"
// (spec.md §4.4): value is a []*T (nil element meaning NULL-in-list).
func appendVec[T any](b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var lb, lbErr = rowbuilder.AsListBuilder(b)
	if lbErr != nil {
		return lbErr
	}
	if value == nil {
		lb.AppendNull()
		return nil
	}
	var items, itemsOK = value.([]*T)
	if !itemsOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	lb.Append(true)
	var inner = lb.ValueBuilder()
	for _, item := range items {
		if item == nil {
			inner.AppendNull()
			continue
		}
		if err = appendValueBuilder(inner, any(*item)); err != nil {
			return cerr.NewDecodeError(columnIndex, nativeType, err)
		}
	}
	return nil
}

// appendVecUUID implements "vector of UUID, flatten: per-element
// append of 16 bytes, then close list → list-of-fixed-binary(16)"
// (spec.md §4.4).
func appendVecUUID(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var lb, lbErr = rowbuilder.AsListBuilder(b)
	if lbErr != nil {
		return lbErr
	}
	if value == nil {
		lb.AppendNull()
		return nil
	}
	var ids, idsOK = value.([]uuid.UUID)
	if !idsOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	lb.Append(true)
	var inner, innerOK = lb.ValueBuilder().(*array.FixedSizeBinaryBuilder)
	if !innerOK {
		return cerr.ErrBuilderTypeMismatch
	}
	for _, id := range ids {
		inner.Append(id[:])
	}
	return nil
}

// appendGeometry builds an Appender for the geometric NativeTypes
// (spec.md §4.4/§6): value is the raw big-endian wire bytes, decode
// turns it into a coordinate slice, and fixedArity is the Arrow list's
// declared element count (-1 for Path/Polygon's variable arity).
func appendGeometry(fixedArity int, decode func(raw []byte) (coords []float64, err error)) Appender {
	return func(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
		var lb, lbErr = rowbuilder.AsListBuilder(b)
		if lbErr != nil {
			return lbErr
		}
		if value == nil {
			lb.AppendNull()
			return nil
		}
		var raw, rawOK = value.([]byte)
		if !rawOK {
			return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
		}
		var coords []float64
		if coords, err = decode(raw); err != nil {
			return cerr.NewDecodeError(columnIndex, nativeType, err)
		}
		if fixedArity >= 0 && len(coords) != fixedArity {
			return cerr.NewDecodeError(columnIndex, nativeType, perrorsUnexpectedArity(fixedArity, len(coords)))
		}
		lb.Append(true)
		var inner, innerOK = lb.ValueBuilder().(*array.Float64Builder)
		if !innerOK {
			return cerr.ErrBuilderTypeMismatch
		}
		inner.AppendValues(coords, nil)
		return nil
	}
}

// decodePoint decodes Point: [x,y] (spec.md §6).
func decodePoint(raw []byte) (coords []float64, err error) {
	return decodeFixedFloats(2)(raw)
}

// decodeFixedFloats returns a decoder for geometric wire formats that
// are exactly n big-endian float64 values with no leading flag/count
// (Line, Circle, Box, LineSegment; spec.md §6).
func decodeFixedFloats(n int) func(raw []byte) ([]float64, error) {
	return func(raw []byte) (coords []float64, err error) {
		if len(raw) != n*8 {
			return nil, perrorsUnexpectedArity(n*8, len(raw))
		}
		coords = make([]float64, n)
		for i := 0; i < n; i++ {
			coords[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[i*8 : i*8+8]))
		}
		return coords, nil
	}
}

// decodePath decodes Path: [u8 open?, i32 count, (x,y)×count] (spec.md
// §6). The leading open-flag and point count are themselves carried
// as the first two elements of the returned coordinate slice
// (openFlag, count, x1,y1,...), matching spec.md §4.4's transform row
// verbatim.
func decodePath(raw []byte) (coords []float64, err error) {
	if len(raw) < 5 {
		return nil, perrorsUnexpectedArity(5, len(raw))
	}
	var openFlag = raw[0]
	var count = int32(binary.BigEndian.Uint32(raw[1:5]))
	var want = 5 + int(count)*16
	if len(raw) != want {
		return nil, perrorsUnexpectedArity(want, len(raw))
	}
	coords = make([]float64, 2+int(count)*2)
	coords[0] = float64(openFlag)
	coords[1] = float64(count)
	for i := 0; i < int(count); i++ {
		var off = 5 + i*16
		coords[2+i*2] = math.Float64frombits(binary.BigEndian.Uint64(raw[off : off+8]))
		coords[2+i*2+1] = math.Float64frombits(binary.BigEndian.Uint64(raw[off+8 : off+16]))
	}
	return coords, nil
}

// decodePolygon decodes Polygon: (x,y)×n, n inferred from byte count
// (spec.md §6).
func decodePolygon(raw []byte) (coords []float64, err error) {
	if len(raw)%16 != 0 {
		return nil, perrorsUnexpectedArity(0, len(raw)%16)
	}
	var n = len(raw) / 16
	coords = make([]float64, n*2)
	for i := 0; i < n; i++ {
		var off = i * 16
		coords[i*2] = math.Float64frombits(binary.BigEndian.Uint64(raw[off : off+8]))
		coords[i*2+1] = math.Float64frombits(binary.BigEndian.Uint64(raw[off+8 : off+16]))
	}
	return coords, nil
}

// perrorsUnexpectedArity reports a geometric wire-decode whose byte
// length didn't match what the format requires.
func perrorsUnexpectedArity(want, got int) (err error) {
	return perrors.Errorf("codec: unexpected byte count: want %d got %d", want, got)
}

// appendFloat16 implements the F16 row of spec.md §4.4's table: the
// driver hands back a float32 (no Go driver carries a native 16-bit
// float), narrowed to float16.Num at append time.
func appendFloat16(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var typed, ok = b.(*array.Float16Builder)
	if !ok {
		return cerr.ErrBuilderTypeMismatch
	}
	if value == nil {
		typed.AppendNull()
		return nil
	}
	var v, vOK = value.(float32)
	if !vOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	typed.Append(float16.New(v))
	return nil
}

// appendVecFloat16 implements VecF16: a vector of Option<float32>,
// identity-transformed element-wise into float16.Num, list-of-F16
// builder.
func appendVecFloat16(b array.Builder, columnIndex int, nativeType nativetype.Type, value any) (err error) {
	var lb, lbErr = rowbuilder.AsListBuilder(b)
	if lbErr != nil {
		return lbErr
	}
	if value == nil {
		lb.AppendNull()
		return nil
	}
	var items, itemsOK = value.([]*float32)
	if !itemsOK {
		return cerr.NewDecodeError(columnIndex, nativeType, cerr.ErrQueryExecution)
	}
	lb.Append(true)
	var inner, innerOK = lb.ValueBuilder().(*array.Float16Builder)
	if !innerOK {
		return cerr.ErrBuilderTypeMismatch
	}
	for _, item := range items {
		if item == nil {
			inner.AppendNull()
			continue
		}
		inner.Append(float16.New(*item))
	}
	return nil
}

// appendValueBuilder appends one already-unwrapped element value into
// an inner list-value builder, dispatching on value's concrete Go
// type. Used by appendVec's element loop, which hands this function
// one non-nil *T dereferenced to any.
func appendValueBuilder(b array.Builder, value any) (err error) {
	switch v := value.(type) {
	case bool:
		var typed, ok = b.(*array.BooleanBuilder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case string:
		var typed, ok = b.(*array.StringBuilder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case []byte:
		var typed, ok = b.(*array.BinaryBuilder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case int8:
		var typed, ok = b.(*array.Int8Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case int16:
		var typed, ok = b.(*array.Int16Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case int32:
		var typed, ok = b.(*array.Int32Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case int64:
		var typed, ok = b.(*array.Int64Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case float32:
		var typed, ok = b.(*array.Float32Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	case float64:
		var typed, ok = b.(*array.Float64Builder)
		if !ok {
			return cerr.ErrBuilderTypeMismatch
		}
		typed.Append(v)
	default:
		return perrors.Errorf("codec: unsupported list element type %T", value)
	}
	return nil
}
