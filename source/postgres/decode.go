package postgres

import (
	"encoding/binary"
	"math"

	"github.com/google/uuid"

	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/perrors"
)

// pgEpochDays is the offset, in days, from the Unix epoch
// (1970-01-01) to the Postgres epoch (2000-01-01) that "date"'s
// binary wire format counts from.
const pgEpochDays int32 = 10957

// pgEpochMicros is the same offset in microseconds, for "timestamp"'s
// binary wire format.
const pgEpochMicros int64 = 946684800000000

// oidEntry pairs a NativeType with the Postgres type name used as
// Column.OriginalTypeRepr (spec.md §3).
type oidEntry struct {
	nativeType nativetype.Type
	name       string
}

// oidTable maps builtin Postgres type OIDs to NativeType. OIDs are
// stable across Postgres versions (defined in pg_type.dat upstream).
// Extension types (e.g. PostGIS) are resolved separately via
// Source.nativeTypeForOID's pg_catalog fallback.
var oidTable = map[uint32]oidEntry{
	16: {nativetype.Bool, "bool"},
	17: {nativetype.Bytes, "bytea"},
	18: {nativetype.Char, "char"},
	21: {nativetype.I16, "int2"},
	23: {nativetype.I32, "int4"},
	20: {nativetype.I64, "int8"},
	700: {nativetype.F32, "float4"},
	701: {nativetype.F64, "float8"},
	25:   {nativetype.String, "text"},
	1042: {nativetype.String, "bpchar"},
	1043: {nativetype.String, "varchar"},
	2950: {nativetype.UUID, "uuid"},
	1082: {nativetype.Date32, "date"},
	1114: {nativetype.TimestampWithoutTimeZone, "timestamp"},
	1083: {nativetype.Time, "time"},

	600: {nativetype.BidimensionalPoint, "point"},
	628: {nativetype.Line, "line"},
	718: {nativetype.Circle, "circle"},
	603: {nativetype.Box, "box"},
	601: {nativetype.LineSegment, "lseg"},
	602: {nativetype.Path, "path"},
	604: {nativetype.Polygon, "polygon"},

	1000: {nativetype.VecBool, "_bool"},
	1001: {nativetype.VecByte, "_bytea"},
	1002: {nativetype.VecChar, "_char"},
	1005: {nativetype.VecI16, "_int2"},
	1007: {nativetype.VecI32, "_int4"},
	1016: {nativetype.VecI64, "_int8"},
	1021: {nativetype.VecF32, "_float4"},
	1022: {nativetype.VecF64, "_float8"},
	1009: {nativetype.VecString, "_text"},
	2951: {nativetype.VecUUID, "_uuid"},
}

// geometryPassthrough is the set of NativeTypes whose Postgres binary
// wire representation matches spec.md §6's frozen geometric formats
// byte-for-byte, decoded by package codec itself — this layer's only
// job for these types is copying the row buffer out (pgx reuses its
// internal buffer across Next() calls) before handing it to codec.
var geometryPassthrough = map[nativetype.Type]bool{
	nativetype.BidimensionalPoint: true,
	nativetype.Line:               true,
	nativetype.Circle:             true,
	nativetype.Box:                true,
	nativetype.LineSegment:        true,
	nativetype.Path:               true,
	nativetype.PgGis:              true,
	nativetype.Bytes:              true,
}

// decodeColumn decodes one column's raw binary wire value into the Go
// representation package codec expects for nt (spec.md §4.4's
// table). raw == nil means the driver observed SQL NULL.
func decodeColumn(nt nativetype.Type, raw []byte) (value any, err error) {
	if raw == nil {
		return nil, nil
	}

	if nt == nativetype.Polygon {
		// Postgres's "polygon" wire format is [i32 npts, (x,y)×npts];
		// codec.decodePolygon (spec.md §6) infers n from byte count
		// with no header, so the leading count is stripped here.
		if len(raw) < 4 {
			return nil, perrors.Errorf("postgres: polygon value too short: %d bytes", len(raw))
		}
		return cloneBytes(raw[4:]), nil
	}
	if geometryPassthrough[nt] {
		return cloneBytes(raw), nil
	}

	switch {
	case nt >= nativetype.VecBool && nt <= nativetype.VecChar, nt >= nativetype.VecI8 && nt <= nativetype.VecF64:
		return decodeVec(nt, raw)
	}

	return decodeScalar(nt, raw)
}

func cloneBytes(raw []byte) []byte {
	var cp = make([]byte, len(raw))
	copy(cp, raw)
	return cp
}

// decodeScalar decodes a non-array, non-geometry column's raw binary
// value per spec.md §4.4's table.
func decodeScalar(nt nativetype.Type, raw []byte) (value any, err error) {
	switch nt {
	case nativetype.Bool:
		if len(raw) != 1 {
			return nil, arityErr(1, len(raw))
		}
		return raw[0] != 0, nil
	case nativetype.Char, nativetype.String:
		return string(raw), nil
	case nativetype.I8:
		if len(raw) != 2 {
			return nil, arityErr(2, len(raw))
		}
		return int8(int16(binary.BigEndian.Uint16(raw))), nil
	case nativetype.I16:
		if len(raw) != 2 {
			return nil, arityErr(2, len(raw))
		}
		return int16(binary.BigEndian.Uint16(raw)), nil
	case nativetype.I32:
		if len(raw) != 4 {
			return nil, arityErr(4, len(raw))
		}
		return int32(binary.BigEndian.Uint32(raw)), nil
	case nativetype.I64:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		return int64(binary.BigEndian.Uint64(raw)), nil
	case nativetype.UI8:
		if len(raw) != 2 {
			return nil, arityErr(2, len(raw))
		}
		return uint8(binary.BigEndian.Uint16(raw)), nil
	case nativetype.UI16:
		if len(raw) != 4 {
			return nil, arityErr(4, len(raw))
		}
		return uint16(binary.BigEndian.Uint32(raw)), nil
	case nativetype.UI32:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		return uint32(binary.BigEndian.Uint64(raw)), nil
	case nativetype.UI64:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		return uint64(binary.BigEndian.Uint64(raw)), nil
	case nativetype.F16:
		if len(raw) != 4 {
			return nil, arityErr(4, len(raw))
		}
		return math.Float32frombits(binary.BigEndian.Uint32(raw)), nil
	case nativetype.F32:
		if len(raw) != 4 {
			return nil, arityErr(4, len(raw))
		}
		return math.Float32frombits(binary.BigEndian.Uint32(raw)), nil
	case nativetype.F64:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
	case nativetype.UUID:
		if len(raw) != 16 {
			return nil, arityErr(16, len(raw))
		}
		var id, idErr = uuid.FromBytes(raw)
		if idErr != nil {
			return nil, idErr
		}
		return id, nil
	case nativetype.Date32:
		if len(raw) != 4 {
			return nil, arityErr(4, len(raw))
		}
		return int32(binary.BigEndian.Uint32(raw)) + pgEpochDays, nil
	case nativetype.TimestampWithoutTimeZone:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		return int64(binary.BigEndian.Uint64(raw)) + pgEpochMicros, nil
	case nativetype.Time:
		if len(raw) != 8 {
			return nil, arityErr(8, len(raw))
		}
		// Postgres "time" is already microseconds since midnight —
		// identical to spec.md §4.4's Time representation.
		return int64(binary.BigEndian.Uint64(raw)), nil
	default:
		return nil, nativetype.NewUnsupportedTypeError(nt)
	}
}

// vecElement names the scalar NativeType each Vec* variant's elements
// decode as (spec.md §4.4's "vector of Option<T>" row). VecUUID and
// VecF16 are handled directly in decodeVec since their element Go
// representation (uuid.UUID, float32) doesn't fit the generic
// []*scalar shape uniformly with the others.
var vecElement = map[nativetype.Type]nativetype.Type{
	nativetype.VecBool:   nativetype.Bool,
	nativetype.VecString: nativetype.String,
	nativetype.VecChar:   nativetype.Char,
	nativetype.VecByte:   nativetype.Bytes,
	nativetype.VecI8:     nativetype.I8,
	nativetype.VecI16:    nativetype.I16,
	nativetype.VecI32:    nativetype.I32,
	nativetype.VecI64:    nativetype.I64,
	nativetype.VecF32:    nativetype.F32,
	nativetype.VecF64:    nativetype.F64,
}

// decodeVec decodes a Postgres array column into the []*T (or, for
// VecUUID, []uuid.UUID) shape package codec's appendVec/appendVecUUID/
// appendVecFloat16 expect.
func decodeVec(nt nativetype.Type, raw []byte) (value any, err error) {
	var elems [][]byte
	if elems, err = decodePgArray(raw); err != nil {
		return nil, err
	}

	switch nt {
	case nativetype.VecUUID:
		var out = make([]uuid.UUID, 0, len(elems))
		for _, e := range elems {
			if e == nil {
				continue
			}
			var id, idErr = uuid.FromBytes(e)
			if idErr != nil {
				return nil, idErr
			}
			out = append(out, id)
		}
		return out, nil
	case nativetype.VecF16:
		var out = make([]*float32, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var f = math.Float32frombits(binary.BigEndian.Uint32(e))
			out[i] = &f
		}
		return out, nil
	}

	var elemType, ok = vecElement[nt]
	if !ok {
		return nil, nativetype.NewUnsupportedTypeError(nt)
	}
	return decodeVecElements(elemType, elems)
}

// decodeVecElements builds the concrete []*T slice for elemType from
// per-element raw byte slices (nil meaning a NULL element), reusing
// decodeScalar so array decoding shares exactly the same wire-format
// logic as scalar column decoding.
func decodeVecElements(elemType nativetype.Type, elems [][]byte) (value any, err error) {
	switch elemType {
	case nativetype.Bool:
		var out = make([]*bool, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var b = v.(bool)
			out[i] = &b
		}
		return out, nil
	case nativetype.String, nativetype.Char:
		var out = make([]*string, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var s = string(e)
			out[i] = &s
		}
		return out, nil
	case nativetype.Bytes:
		var out = make([]*[]byte, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var b = cloneBytes(e)
			out[i] = &b
		}
		return out, nil
	case nativetype.I8:
		var out = make([]*int8, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(int8)
			out[i] = &x
		}
		return out, nil
	case nativetype.I16:
		var out = make([]*int16, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(int16)
			out[i] = &x
		}
		return out, nil
	case nativetype.I32:
		var out = make([]*int32, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(int32)
			out[i] = &x
		}
		return out, nil
	case nativetype.I64:
		var out = make([]*int64, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(int64)
			out[i] = &x
		}
		return out, nil
	case nativetype.F32:
		var out = make([]*float32, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(float32)
			out[i] = &x
		}
		return out, nil
	case nativetype.F64:
		var out = make([]*float64, len(elems))
		for i, e := range elems {
			if e == nil {
				continue
			}
			var v, decErr = decodeScalar(elemType, e)
			if decErr != nil {
				return nil, decErr
			}
			var x = v.(float64)
			out[i] = &x
		}
		return out, nil
	default:
		return nil, nativetype.NewUnsupportedTypeError(elemType)
	}
}

// decodePgArray parses the Postgres binary array wire format (1-D
// arrays only — this module's Vec* NativeTypes are themselves flat)
// into one raw byte slice per element, nil meaning a NULL element:
//
//	i32 ndim; i32 has-null flag; u32 element-type oid
//	per dimension: i32 size; i32 lower-bound
//	per element (row-major): i32 byte-length (-1 = NULL); byte-length bytes
func decodePgArray(raw []byte) (elems [][]byte, err error) {
	if len(raw) < 12 {
		return nil, perrors.Errorf("postgres: array header too short: %d bytes", len(raw))
	}
	var ndim = int32(binary.BigEndian.Uint32(raw[0:4]))
	if ndim == 0 {
		return nil, nil
	}
	if ndim != 1 {
		return nil, perrors.Errorf("postgres: multi-dimensional arrays are not supported (ndim=%d)", ndim)
	}

	var offset = 12
	if offset+8 > len(raw) {
		return nil, perrors.Errorf("postgres: truncated array dimension header")
	}
	var dimSize = int32(binary.BigEndian.Uint32(raw[offset : offset+4]))
	offset += 8

	elems = make([][]byte, dimSize)
	for i := int32(0); i < dimSize; i++ {
		if offset+4 > len(raw) {
			return nil, perrors.Errorf("postgres: truncated array at element %d", i)
		}
		var n = int32(binary.BigEndian.Uint32(raw[offset : offset+4]))
		offset += 4
		if n < 0 {
			continue
		}
		if offset+int(n) > len(raw) {
			return nil, perrors.Errorf("postgres: truncated array element %d", i)
		}
		elems[i] = raw[offset : offset+int(n)]
		offset += int(n)
	}
	return elems, nil
}

func arityErr(want, got int) (err error) {
	return perrors.Errorf("postgres: unexpected value length: want %d got %d", want, got)
}
