// Package nativetype defines the canonical column-type enumeration this
// module carries between database drivers and Arrow, and its mapping
// to arrow.DataType.
package nativetype

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Type is the closed set of column types the extraction engine can
// carry. Every Type present in a schema.Schema must have both an
// arrow.DataType (ToArrow) and a decoder registered in package codec;
// the engine rejects schemas that fail this invariant.
type Type uint8

const (
	Bool Type = iota
	Char
	Bytes

	I8
	I16
	I32
	I64

	UI8
	UI16
	UI32
	UI64

	F16
	F32
	F64

	String
	UUID

	Date32
	TimestampWithoutTimeZone
	Time

	VecBool
	VecString
	VecByte
	VecUUID
	VecChar

	VecI8
	VecI16
	VecI32
	VecI64

	VecF16
	VecF32
	VecF64

	BidimensionalPoint
	Line
	Circle
	Box
	LineSegment
	Path
	Polygon
	PgGis

	typeCount
)

var names = [typeCount]string{
	Bool:  "Bool",
	Char:  "Char",
	Bytes: "Bytes",

	I8:  "I8",
	I16: "I16",
	I32: "I32",
	I64: "I64",

	UI8:  "UI8",
	UI16: "UI16",
	UI32: "UI32",
	UI64: "UI64",

	F16: "F16",
	F32: "F32",
	F64: "F64",

	String: "String",
	UUID:   "UUID",

	Date32:                   "Date32",
	TimestampWithoutTimeZone: "TimestampWithoutTimeZone",
	Time:                     "Time",

	VecBool:  "VecBool",
	VecString: "VecString",
	VecByte:  "VecByte",
	VecUUID:  "VecUUID",
	VecChar:  "VecChar",

	VecI8:  "VecI8",
	VecI16: "VecI16",
	VecI32: "VecI32",
	VecI64: "VecI64",

	VecF16: "VecF16",
	VecF32: "VecF32",
	VecF64: "VecF64",

	BidimensionalPoint: "BidimensionalPoint",
	Line:               "Line",
	Circle:             "Circle",
	Box:                "Box",
	LineSegment:        "LineSegment",
	Path:               "Path",
	Polygon:            "Polygon",
	PgGis:              "PgGis",
}

// String implements fmt.Stringer
func (t Type) String() string {
	if t >= typeCount {
		return "Type(?)"
	}
	return names[t]
}

// IsValid reports whether t is a known enum member, as opposed to a
// future extension value an older build does not recognize.
func (t Type) IsValid() bool {
	return t < typeCount
}

var arrowTypes = [typeCount]arrow.DataType{
	Bool:  arrow.FixedWidthTypes.Boolean,
	Char:  arrow.BinaryTypes.String,
	Bytes: arrow.BinaryTypes.Binary,

	I8:  arrow.PrimitiveTypes.Int8,
	I16: arrow.PrimitiveTypes.Int16,
	I32: arrow.PrimitiveTypes.Int32,
	I64: arrow.PrimitiveTypes.Int64,

	UI8:  arrow.PrimitiveTypes.Uint8,
	UI16: arrow.PrimitiveTypes.Uint16,
	UI32: arrow.PrimitiveTypes.Uint32,
	UI64: arrow.PrimitiveTypes.Uint64,

	F16: arrow.FixedWidthTypes.Float16,
	F32: arrow.PrimitiveTypes.Float32,
	F64: arrow.PrimitiveTypes.Float64,

	String: arrow.BinaryTypes.String,
	UUID:   &arrow.FixedSizeBinaryType{ByteWidth: 16},

	Date32:                   arrow.FixedWidthTypes.Date32,
	TimestampWithoutTimeZone: &arrow.TimestampType{Unit: arrow.Microsecond},
	Time:                     &arrow.Time64Type{Unit: arrow.Microsecond},

	VecBool:   arrow.ListOf(arrow.FixedWidthTypes.Boolean),
	VecString: arrow.ListOf(arrow.BinaryTypes.String),
	VecByte:   arrow.ListOf(arrow.BinaryTypes.Binary),
	VecUUID:   arrow.ListOf(&arrow.FixedSizeBinaryType{ByteWidth: 16}),
	VecChar:   arrow.ListOf(arrow.BinaryTypes.String),

	VecI8:  arrow.ListOf(arrow.PrimitiveTypes.Int8),
	VecI16: arrow.ListOf(arrow.PrimitiveTypes.Int16),
	VecI32: arrow.ListOf(arrow.PrimitiveTypes.Int32),
	VecI64: arrow.ListOf(arrow.PrimitiveTypes.Int64),

	VecF16: arrow.ListOf(arrow.FixedWidthTypes.Float16),
	VecF32: arrow.ListOf(arrow.PrimitiveTypes.Float32),
	VecF64: arrow.ListOf(arrow.PrimitiveTypes.Float64),

	// Geometric types are variable-length lists of float64 coordinates;
	// fixed arities (Point, Circle, Box, LineSegment) are still modeled
	// as List rather than FixedSizeList so Path/Polygon (variable
	// arity) share one Arrow shape, matching schema.rs's to_arrow.
	BidimensionalPoint: arrow.ListOf(arrow.PrimitiveTypes.Float64),
	Line:               arrow.ListOf(arrow.PrimitiveTypes.Float64),
	Circle:             arrow.ListOf(arrow.PrimitiveTypes.Float64),
	Box:                arrow.ListOf(arrow.PrimitiveTypes.Float64),
	LineSegment:        arrow.ListOf(arrow.PrimitiveTypes.Float64),
	Path:               arrow.ListOf(arrow.PrimitiveTypes.Float64),
	Polygon:            arrow.ListOf(arrow.PrimitiveTypes.Float64),
	PgGis:              arrow.BinaryTypes.Binary,
}

// ToArrow returns the arrow.DataType this Type is carried as.
//   - ok is false if t is not a recognized member of the enum
func (t Type) ToArrow() (dataType arrow.DataType, ok bool) {
	if !t.IsValid() {
		return
	}
	dataType = arrowTypes[t]
	ok = dataType != nil
	return
}
