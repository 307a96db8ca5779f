package datacls

import (
	"reflect"
)

// TypeHint is an opaque type descriptor carried by a field. The engine never
// checks values against it.
type TypeHint struct {
	Name string
	Type reflect.Type // nil when the hint is only a name (e.g. read from a file)
}

// Hint returns a name-only type descriptor.
func Hint(name string) TypeHint { return TypeHint{Name: name} }

// HintOf returns the descriptor of Go type T.
func HintOf[T any]() TypeHint {
	rt := reflect.TypeFor[T]()
	return TypeHint{Name: rt.String(), Type: rt}
}

func (h TypeHint) String() string {
	if h.Name == "" {
		return "any"
	}
	return h.Name
}

// noDefault is unexported so no caller can build a value equal to NoDefault.
type noDefault struct{}

func (noDefault) String() string { return "NoDefault" }

// NoDefault marks a field declared without a default value.
var NoDefault = noDefault{}

// FieldSpec is one declared field. Build it with Field; the zero value means
// "a field whose default is nil".
type FieldSpec struct {
	Name    string
	Type    TypeHint
	Default any
	// Factory, when set, produces the default on every construction.
	Factory func() any
}

// Field declares a field without a default.
func Field(name string, hint TypeHint) FieldSpec {
	return FieldSpec{Name: name, Type: hint, Default: NoDefault}
}

// WithDefault returns a copy of f defaulting to v.
func (f FieldSpec) WithDefault(v any) FieldSpec {
	f.Default = v
	f.Factory = nil
	return f
}

// WithFactory returns a copy of f whose default is produced by fn.
func (f FieldSpec) WithFactory(fn func() any) FieldSpec {
	f.Default = NoDefault
	f.Factory = fn
	return f
}

// HasDefault reports whether the field may be omitted by callers.
func (f FieldSpec) HasDefault() bool {
	if f.Factory != nil {
		return true
	}
	_, none := f.Default.(noDefault)
	return !none
}
