package nativetype

import (
	"github.com/surister/conecta/perrors"
)

// ErrUnsupportedType is returned when a column's backend type has no
// NativeType mapping, or a NativeType has no registered codec.
// The hot row loop fails loudly rather than skip the column (see
// SPEC_FULL.md §13).
var ErrUnsupportedType = perrors.New("nativetype: unsupported type")

// NewUnsupportedTypeError wraps ErrUnsupportedType with the offending
// type for diagnostics.
func NewUnsupportedTypeError(t Type) (err error) {
	return perrors.Errorf("%w: %s", ErrUnsupportedType, t)
}
