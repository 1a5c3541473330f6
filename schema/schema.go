// Package schema defines the column metadata that flows from a source's
// schema probe through partitioning and extraction, to the caller.
package schema

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/surister/conecta/nativetype"
)

// Column is one column of a Schema.
//   - OriginalTypeRepr preserves the backend's native type name for
//     diagnostics; DataType drives all downstream decoding behavior.
type Column struct {
	Name             string          `json:"name"`
	DataType         nativetype.Type `json:"data_type"`
	OriginalTypeRepr string          `json:"original_type_repr"`
}

// Schema is the ordered sequence of Columns describing one result set.
// Schema is immutable once derived and is cloned by value across
// worker goroutines.
type Schema struct {
	Columns []Column `json:"columns"`
}

// ToArrow converts Schema to an *arrow.Schema. ok is false if any
// column carries a nativetype.Type with no Arrow mapping.
func (s Schema) ToArrow() (arrowSchema *arrow.Schema, ok bool) {
	var fields = make([]arrow.Field, len(s.Columns))
	for i, col := range s.Columns {
		dataType, typeOK := col.DataType.ToArrow()
		if !typeOK {
			return nil, false
		}
		fields[i] = arrow.Field{Name: col.Name, Type: dataType, Nullable: true}
	}
	return arrow.NewSchema(fields, nil), true
}

// Validate returns nativetype.ErrUnsupportedType-wrapped error for the
// first column whose DataType has no registered Arrow mapping.
//   - the extraction engine calls this before starting worker
//     goroutines (spec.md §3's invariant: every NativeType present in
//     a Schema must have both a defined Arrow encoding and a defined
//     decoding path, else the engine rejects the schema)
func (s Schema) Validate() (err error) {
	for _, col := range s.Columns {
		if _, ok := col.DataType.ToArrow(); !ok {
			return nativetype.NewUnsupportedTypeError(col.DataType)
		}
	}
	return
}

// Names returns the column names in order.
func (s Schema) Names() (names []string) {
	names = make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return
}
