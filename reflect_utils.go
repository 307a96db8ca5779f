package datacls

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagName is the struct tag read by FromStruct and Scan.
const TagName = "datacls"

// ResolveFieldName applies the repository-wide rule to resolve a struct
// field's record field name.
// Priority: datacls:"name=..." > json tag name > field name; "-" disables the field.
func ResolveFieldName(sf reflect.StructField) string {
	if gt := sf.Tag.Get(TagName); gt != "" {
		if gt == "-" {
			return "-"
		}
		for _, p := range tagOptions(gt) {
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// tagOptions splits a datacls tag. "default=" swallows the rest of the tag
// so literals may contain commas.
func tagOptions(tag string) []string {
	var out []string
	for tag != "" {
		tag = strings.TrimSpace(tag)
		if strings.HasPrefix(tag, "default=") {
			out = append(out, tag)
			break
		}
		i := strings.IndexByte(tag, ',')
		if i < 0 {
			out = append(out, tag)
			break
		}
		out = append(out, tag[:i])
		tag = tag[i+1:]
	}
	return out
}

func tagDefault(sf reflect.StructField) (string, bool) {
	for _, p := range tagOptions(sf.Tag.Get(TagName)) {
		if strings.HasPrefix(p, "default=") {
			return strings.TrimPrefix(p, "default="), true
		}
	}
	return "", false
}

// decodeDefault reads a tag literal as YAML into a value of type t.
func decodeDefault(lit string, t reflect.Type) (any, error) {
	p := reflect.New(t)
	if err := yaml.Unmarshal([]byte(lit), p.Interface()); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

// PostIniter is implemented by a struct pointer that wants to run as the
// post-construction hook of the type FromStruct declares from it.
type PostIniter interface {
	PostInit(*Instance) error
}

var postIniterType = reflect.TypeFor[PostIniter]()

// FromStruct declares a bare record type from the exported fields of struct
// T, in field order. A field's default comes from its tag, e.g.
//
//	Age int `datacls:"default=23"`
//
// decoded as YAML into the field's type. When *T implements PostIniter, the
// hook receives the new instance after its values were scanned into a T.
func FromStruct[T any]() (*Type, error) {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, Issues{IssueAt("/", CodeInvalidType, fmt.Sprintf("FromStruct[T] requires struct T, got %s", rt))}
	}
	var (
		specs []FieldSpec
		iss   Issues
	)
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveFieldName(sf)
		if name == "-" || name == "" {
			continue
		}
		spec := Field(name, TypeHint{Name: sf.Type.String(), Type: sf.Type})
		if lit, ok := tagDefault(sf); ok {
			v, err := decodeDefault(lit, sf.Type)
			if err != nil {
				is := IssueAt("/"+name, CodeMalformedDefault, fmt.Sprintf("cannot read %q as %s", lit, sf.Type))
				is.Cause = err
				iss = AppendIssues(iss, is)
				continue
			}
			spec = spec.WithDefault(v)
		}
		specs = append(specs, spec)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	t, err := Define(rt.Name(), specs...)
	if err != nil {
		return nil, err
	}
	if reflect.PointerTo(rt).Implements(postIniterType) {
		t.WithPostInit(func(inst *Instance) error {
			p := reflect.New(rt)
			if err := Scan(inst, p.Interface()); err != nil {
				return err
			}
			return p.Interface().(PostIniter).PostInit(inst)
		})
	}
	return t, nil
}

// Scan copies the live values of r into the struct dst points to, matching
// fields by ResolveFieldName. Values are assigned or converted; nil leaves
// the zero value.
func Scan(r Record, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return Issues{IssueAt("/", CodeInvalidType, "Scan requires a non-nil pointer to a struct")}
	}
	sv := rv.Elem()
	st := sv.Type()
	fields := r.Fields()
	for i := range st.NumField() {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveFieldName(sf)
		if name == "-" || !fields.Has(name) {
			continue
		}
		val, err := r.Get(name)
		if err != nil {
			return err
		}
		fv := sv.Field(i)
		if val == nil {
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}
		vv := reflect.ValueOf(val)
		switch {
		case vv.Type().AssignableTo(fv.Type()):
			fv.Set(vv)
		case vv.Type().ConvertibleTo(fv.Type()) && (fv.Kind() != reflect.String || vv.Kind() == reflect.String):
			fv.Set(vv.Convert(fv.Type()))
		default:
			return Issues{IssueAt("/"+name, CodeInvalidType, fmt.Sprintf("cannot assign %s to %s", vv.Type(), fv.Type()))}
		}
	}
	return nil
}

// Decode scans r into a new T.
func Decode[T any](r Record) (T, error) {
	var out T
	err := Scan(r, &out)
	return out, err
}
