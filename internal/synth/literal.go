package synth

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Literal renders v as Go literal source text. Only values with a literal
// form are accepted: nil, booleans, numbers, strings, and slices, arrays or
// maps built from those. Pointers, funcs, channels and structs fail.
func Literal(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "nil", nil
	case string:
		return strconv.Quote(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	}
	return literalValue(reflect.ValueOf(v))
}

func literalValue(rv reflect.Value) (string, error) {
	switch rv.Kind() {
	case reflect.Invalid:
		return "nil", nil
	case reflect.String:
		return strconv.Quote(rv.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return floatLiteral(rv.Float())
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		re, err := floatLiteral(real(c))
		if err != nil {
			return "", err
		}
		im, err := floatLiteral(imag(c))
		if err != nil {
			return "", err
		}
		return "complex(" + re + ", " + im + ")", nil
	case reflect.Interface:
		if rv.IsNil() {
			return "nil", nil
		}
		return literalValue(rv.Elem())
	case reflect.Slice:
		if rv.IsNil() {
			return "nil", nil
		}
		return sequenceLiteral(rv)
	case reflect.Array:
		return sequenceLiteral(rv)
	case reflect.Map:
		if rv.IsNil() {
			return "nil", nil
		}
		return mapLiteral(rv)
	}
	return "", fmt.Errorf("no literal form for %s value", rv.Type())
}

func floatLiteral(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("no literal form for %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

func sequenceLiteral(rv reflect.Value) (string, error) {
	parts := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := literalValue(rv.Index(i))
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return "[]any{" + strings.Join(parts, ", ") + "}", nil
}

func mapLiteral(rv reflect.Value) (string, error) {
	type kv struct{ k, v string }
	entries := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := literalValue(iter.Key())
		if err != nil {
			return "", err
		}
		v, err := literalValue(iter.Value())
		if err != nil {
			return "", err
		}
		entries = append(entries, kv{k: k, v: v})
	}
	// map iteration order is random; sort for a stable rendering
	sort.Slice(entries, func(i, j int) bool { return entries[i].k < entries[j].k })
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.k+": "+e.v)
	}
	return "map[any]any{" + strings.Join(parts, ", ") + "}", nil
}
