package datacls

import (
	"reflect"
	"strings"

	js "github.com/reoring/datacls/jsonschema"
)

// JSONSchema projects the declared fields into a JSON Schema object. Fields
// without defaults are required; literal defaults are exported, factories
// are not. Frozen types mark every property read-only.
func (t *Type) JSONSchema() (*js.Schema, error) {
	decls := t.decls
	if t.registry != nil {
		decls = t.registry.specs
	}
	props := make(map[string]*js.Schema, len(decls))
	order := make([]string, 0, len(decls))
	var req []string
	for _, f := range decls {
		ps := hintSchema(f.Type)
		if f.Factory == nil && f.HasDefault() {
			ps.Default = f.Default
		}
		if !f.HasDefault() {
			req = append(req, f.Name)
		}
		ps.ReadOnly = t.frozen
		props[f.Name] = ps
		order = append(order, f.Name)
	}
	return &js.Schema{
		Title:                t.name,
		Type:                 "object",
		Properties:           props,
		Required:             req,
		AdditionalProperties: false,
		PropertyOrder:        order,
	}, nil
}

// hintSchema maps a type hint to a JSON Schema type, preferring the Go type
// when the hint carries one.
func hintSchema(h TypeHint) *js.Schema {
	if h.Type != nil {
		return kindSchema(h.Type)
	}
	switch strings.ToLower(h.Name) {
	case "str", "string":
		return &js.Schema{Type: "string"}
	case "int", "integer", "int64", "int32":
		return &js.Schema{Type: "integer"}
	case "float", "number", "float64", "float32":
		return &js.Schema{Type: "number"}
	case "bool", "boolean":
		return &js.Schema{Type: "boolean"}
	case "list", "array", "[]any":
		return &js.Schema{Type: "array"}
	case "dict", "map", "object", "map[string]any":
		return &js.Schema{Type: "object"}
	case "time", "datetime", "time.time":
		return &js.Schema{Type: "string", Format: "date-time"}
	}
	return &js.Schema{}
}

var timeType = reflect.TypeFor[interface{ UnixNano() int64 }]()

func kindSchema(rt reflect.Type) *js.Schema {
	if rt.Implements(timeType) {
		return &js.Schema{Type: "string", Format: "date-time"}
	}
	switch rt.Kind() {
	case reflect.String:
		return &js.Schema{Type: "string"}
	case reflect.Bool:
		return &js.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &js.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &js.Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &js.Schema{Type: "array", Items: kindSchema(rt.Elem())}
	case reflect.Map, reflect.Struct:
		return &js.Schema{Type: "object"}
	case reflect.Pointer:
		return kindSchema(rt.Elem())
	}
	return &js.Schema{}
}
