// Package cerr holds the shared error taxonomy (spec.md §7) that cuts
// across package boundaries — the sentinels a caller checks with
// errors.Is regardless of which package returned them.
//
// InvalidConfiguration lives in package partition and UnsupportedType
// lives in package nativetype since both are meaningful without this
// package; everything else that names a cross-cutting failure mode
// lives here.
package cerr

import (
	"fmt"

	"github.com/surister/conecta/nativetype"
	"github.com/surister/conecta/perrors"
	"github.com/surister/conecta/psql"
)

var (
	// ErrUnknownScheme: a connection URI did not resolve to a known
	// backend.
	ErrUnknownScheme = perrors.New("cerr: unknown scheme")
	// ErrNoBoundsAvailable: MIN/MAX returned NULL for a partitioning
	// column (the column is entirely NULL, or the query is empty).
	ErrNoBoundsAvailable = perrors.New("cerr: no bounds available")
	// ErrSourceConnect: acquiring a connection from the pool failed.
	ErrSourceConnect = perrors.New("cerr: source connect error")
	// ErrSourcePoolExhausted: the pool had no connection to give within
	// its wait policy.
	ErrSourcePoolExhausted = perrors.New("cerr: source pool exhausted")
	// ErrQueryExecution: the database rejected a generated statement.
	ErrQueryExecution = perrors.New("cerr: query execution error")
	// ErrBuilderTypeMismatch: the schema's NativeType disagrees with the
	// concrete builder the factory produced — a programmer error, not a
	// data error.
	ErrBuilderTypeMismatch = perrors.New("cerr: builder type mismatch")
)

// NewUnknownSchemeError wraps ErrUnknownScheme with the offending
// scheme.
func NewUnknownSchemeError(scheme string) (err error) {
	return perrors.Errorf("%w: %q", ErrUnknownScheme, scheme)
}

// NewNoBoundsAvailableError wraps ErrNoBoundsAvailable with the column
// and query that produced the all-NULL bounds.
func NewNoBoundsAvailableError(column string) (err error) {
	return perrors.Errorf("%w: column %q", ErrNoBoundsAvailable, column)
}

// NewQueryExecutionError wraps ErrQueryExecution with the statement the
// backend rejected and its underlying driver error. The generated
// partition/bounds/count queries are multi-line (rewrite package builds
// them with embedded newlines for readability); psql.TrimSql collapses
// them to a single line so the error message stays greppable in logs.
func NewQueryExecutionError(query string, cause error) (err error) {
	return perrors.Errorf("%w: %q: %v", ErrQueryExecution, psql.TrimSql(query), cause)
}

// NewSourceConnectError wraps ErrSourceConnect with the underlying
// driver error encountered while acquiring a connection.
func NewSourceConnectError(cause error) (err error) {
	return perrors.Errorf("%w: %v", ErrSourceConnect, cause)
}

// NewSourcePoolExhaustedError wraps ErrSourcePoolExhausted with the
// underlying driver error encountered while waiting for a pooled
// connection.
func NewSourcePoolExhaustedError(cause error) (err error) {
	return perrors.Errorf("%w: %v", ErrSourcePoolExhausted, cause)
}

// DecodeError is returned when a typed fetch of a row's column value
// fails for a reason other than the value being NULL (spec.md §4.4/§7).
// It carries the column index and native type for diagnostics.
type DecodeError struct {
	ColumnIndex int
	NativeType  nativetype.Type
	Cause       error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"cerr: decode error at column %d (%s): %s",
		e.ColumnIndex, e.NativeType, e.Cause,
	)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// NewDecodeError constructs a *DecodeError, itself wrapped with
// perrors.Errorf so it carries a stack trace like every other fallible
// operation in this module.
func NewDecodeError(columnIndex int, nativeType nativetype.Type, cause error) (err error) {
	return perrors.Errorf("%w", &DecodeError{
		ColumnIndex: columnIndex,
		NativeType:  nativeType,
		Cause:       cause,
	})
}
