package schema

import (
	"errors"
	"testing"

	"github.com/surister/conecta/nativetype"
)

func TestSchemaToArrow(t *testing.T) {
	s := Schema{Columns: []Column{
		{Name: "id", DataType: nativetype.I64},
		{Name: "name", DataType: nativetype.String},
	}}

	arrowSchema, ok := s.ToArrow()
	if !ok {
		t.Fatal("ToArrow() ok = false, want true")
	}
	if arrowSchema.NumFields() != 2 {
		t.Fatalf("NumFields() = %d, want 2", arrowSchema.NumFields())
	}
	if arrowSchema.Field(0).Name != "id" {
		t.Errorf("Field(0).Name = %q, want %q", arrowSchema.Field(0).Name, "id")
	}
}

func TestSchemaValidate(t *testing.T) {
	valid := Schema{Columns: []Column{{Name: "id", DataType: nativetype.I64}}}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	const bogus = nativetype.Type(255)
	invalid := Schema{Columns: []Column{{Name: "id", DataType: bogus}}}
	err := invalid.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want an error for an unmapped NativeType")
	}
	if !errors.Is(err, nativetype.ErrUnsupportedType) {
		t.Errorf("Validate() error does not wrap ErrUnsupportedType: %v", err)
	}
}

func TestSchemaNames(t *testing.T) {
	s := Schema{Columns: []Column{
		{Name: "a", DataType: nativetype.Bool},
		{Name: "b", DataType: nativetype.Bool},
	}}
	names := s.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", names)
	}
}
