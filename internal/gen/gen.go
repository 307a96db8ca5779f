// Package gen renders augmented record types as static Go source: a struct,
// a constructor with functional options for defaulted fields, and the
// String and Equal methods the type was augmented with.
package gen

import (
	"bytes"
	"fmt"
	"go/token"
	"reflect"
	"strconv"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	datacls "github.com/reoring/datacls"
)

// Header is written at the top of every generated file.
const Header = "Code generated by datacls. DO NOT EDIT."

// File describes one generated Go file.
type File struct {
	Package string
	Types   []*datacls.Type
}

// RenderFile renders f as gofmt'ed Go source.
func RenderFile(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: package name is empty")
	}
	out := jen.NewFile(f.Package)
	out.HeaderComment(Header)
	seen := map[string]string{}
	for _, t := range f.Types {
		if !t.Augmented() {
			return nil, fmt.Errorf("gen: type %s is not augmented", t.Name())
		}
		m, err := newModel(t)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[m.goName]; dup {
			return nil, fmt.Errorf("gen: types %s and %s both render as %s", prev, t.Name(), m.goName)
		}
		seen[m.goName] = t.Name()
		m.render(out)
	}
	var buf bytes.Buffer
	if err := out.Render(&buf); err != nil {
		return nil, fmt.Errorf("gen: %w", err)
	}
	return buf.Bytes(), nil
}

// recvName is the receiver and local variable in generated code.
const recvName = "x"

type field struct {
	name     string // declared
	goName   string // exported struct field or getter
	store    string // struct field actually holding the value
	param    string
	typ      jen.Code
	compare  bool // values support ==
	literal  any
	defaults bool
}

type model struct {
	t      *datacls.Type
	goName string
	fields []field
}

func newModel(t *datacls.Type) (*model, error) {
	m := &model{t: t, goName: inflect.Camelize(t.Name())}
	if !token.IsIdentifier(m.goName) {
		return nil, fmt.Errorf("gen: type name %q is not a Go identifier", t.Name())
	}
	used := map[string]string{}
	for _, spec := range t.Fields().Specs() {
		f := field{name: spec.Name, goName: inflect.Camelize(spec.Name)}
		if !token.IsIdentifier(f.goName) || !token.IsExported(f.goName) {
			return nil, fmt.Errorf("gen: %s.%s has no exported Go name", t.Name(), spec.Name)
		}
		if prev, dup := used[f.goName]; dup {
			return nil, fmt.Errorf("gen: %s fields %s and %s both render as %s", t.Name(), prev, spec.Name, f.goName)
		}
		if (f.goName == "String" && t.HasRepr()) || (f.goName == "Equal" && t.HasEq()) {
			return nil, fmt.Errorf("gen: %s.%s collides with the generated %s method", t.Name(), spec.Name, f.goName)
		}
		used[f.goName] = spec.Name
		f.store = f.goName
		if t.Frozen() {
			f.store = inflect.CamelizeDownFirst(spec.Name)
			if token.IsKeyword(f.store) {
				f.store += "_"
			}
		}
		f.param = paramName(spec.Name)
		f.typ, f.compare = goType(spec.Type)
		if spec.HasDefault() {
			if spec.Factory != nil {
				return nil, fmt.Errorf("gen: %s.%s has a default factory, which has no source form", t.Name(), spec.Name)
			}
			if !literalKind(spec.Default) {
				return nil, fmt.Errorf("gen: %s.%s default %v has no source form", t.Name(), spec.Name, spec.Default)
			}
			f.defaults = true
			f.literal = spec.Default
		}
		m.fields = append(m.fields, f)
	}
	return m, nil
}

func paramName(name string) string {
	p := inflect.CamelizeDownFirst(name)
	if token.IsKeyword(p) || p == recvName || p == "opts" || p == "opt" || p == "err" {
		p += "_"
	}
	return p
}

func literalKind(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

func literal(v any) jen.Code {
	if v == nil {
		return jen.Nil()
	}
	rv := reflect.ValueOf(v)
	// jen.Lit renders named types by their underlying kind.
	switch rv.Kind() {
	case reflect.Bool:
		return jen.Lit(rv.Bool())
	case reflect.String:
		return jen.Lit(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return jen.Lit(int(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// Untyped decimal, so values above MaxInt64 keep their sign.
		return jen.Op(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return jen.Lit(rv.Float())
	default:
		return jen.Lit(rv.Complex())
	}
}

// goType maps a hint onto Go source. Bare names follow the usual
// annotation spellings.
func goType(h datacls.TypeHint) (jen.Code, bool) {
	if h.Type != nil {
		return reflectType(h.Type)
	}
	switch h.Name {
	case "str", "string":
		return jen.String(), true
	case "int":
		return jen.Int(), true
	case "float":
		return jen.Float64(), true
	case "bool":
		return jen.Bool(), true
	case "bytes":
		return jen.Index().Byte(), false
	case "list":
		return jen.Index().Interface(), false
	case "dict":
		return jen.Map(jen.String()).Interface(), false
	}
	return jen.Interface(), false
}

func reflectType(rt reflect.Type) (jen.Code, bool) {
	if rt.Name() != "" {
		if rt.PkgPath() == "" {
			return jen.Id(rt.Name()), rt.Comparable()
		}
		return jen.Qual(rt.PkgPath(), rt.Name()), rt.Comparable() && rt.Kind() != reflect.Interface
	}
	switch rt.Kind() {
	case reflect.Pointer:
		elem, _ := reflectType(rt.Elem())
		return jen.Op("*").Add(elem), false
	case reflect.Slice:
		elem, _ := reflectType(rt.Elem())
		return jen.Index().Add(elem), false
	case reflect.Array:
		elem, cmp := reflectType(rt.Elem())
		return jen.Index(jen.Lit(rt.Len())).Add(elem), cmp
	case reflect.Map:
		k, _ := reflectType(rt.Key())
		v, _ := reflectType(rt.Elem())
		return jen.Map(k).Add(v), false
	}
	return jen.Interface(), false
}

func (m *model) optionType() string { return m.goName + "Option" }

func (m *model) render(f *jen.File) {
	m.renderStruct(f)
	if m.t.HasInit() {
		m.renderOptions(f)
		m.renderConstructor(f)
	}
	if m.t.Frozen() {
		m.renderGetters(f)
	}
	if m.t.HasRepr() {
		m.renderString(f)
	}
	if m.t.HasEq() {
		m.renderEqual(f)
	}
}

func (m *model) renderStruct(f *jen.File) {
	var fields []jen.Code
	for _, fd := range m.fields {
		c := jen.Id(fd.store).Add(fd.typ)
		if !m.t.Frozen() {
			c = c.Tag(map[string]string{"json": fd.name})
		}
		fields = append(fields, c)
	}
	f.Commentf("%s is the %s record.", m.goName, m.t.Name())
	f.Type().Id(m.goName).Struct(fields...)
}

func (m *model) renderOptions(f *jen.File) {
	opt := m.optionType()
	var hasDefault bool
	for _, fd := range m.fields {
		if fd.defaults {
			hasDefault = true
			break
		}
	}
	if !hasDefault {
		return
	}
	f.Commentf("%s overrides a default in New%s.", opt, m.goName)
	f.Type().Id(opt).Func().Params(jen.Op("*").Id(m.goName))
	for _, fd := range m.fields {
		if !fd.defaults {
			continue
		}
		name := m.goName + "With" + fd.goName
		f.Commentf("%s sets %s.", name, fd.name)
		f.Func().Id(name).Params(jen.Id("v").Add(fd.typ)).Id(opt).Block(
			jen.Return(jen.Func().Params(jen.Id(recvName).Op("*").Id(m.goName)).Block(
				jen.Id(recvName).Dot(fd.store).Op("=").Id("v"),
			)),
		)
	}
}

func (m *model) renderConstructor(f *jen.File) {
	var (
		params []jen.Code
		dict   = jen.Dict{}
		hasOpt bool
	)
	for _, fd := range m.fields {
		if fd.defaults {
			hasOpt = true
			dict[jen.Id(fd.store)] = literal(fd.literal)
			continue
		}
		params = append(params, jen.Id(fd.param).Add(fd.typ))
		dict[jen.Id(fd.store)] = jen.Id(fd.param)
	}
	if hasOpt {
		params = append(params, jen.Id("opts").Op("...").Id(m.optionType()))
	}
	body := []jen.Code{jen.Id(recvName).Op(":=").Op("&").Id(m.goName).Values(dict)}
	if hasOpt {
		body = append(body, jen.For(jen.List(jen.Id("_"), jen.Id("opt")).Op(":=").Range().Id("opts")).Block(
			jen.Id("opt").Call(jen.Id(recvName)),
		))
	}
	ctor := "New" + m.goName
	if m.t.HasPostInit() {
		body = append(body,
			jen.If(jen.Err().Op(":=").Id(recvName).Dot("postInit").Call(), jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Nil(), jen.Err()),
			),
			jen.Return(jen.Id(recvName), jen.Nil()),
		)
		f.Commentf("%s constructs a %s and runs its postInit method.", ctor, m.goName)
		f.Func().Id(ctor).Params(params...).Params(jen.Op("*").Id(m.goName), jen.Error()).Block(body...)
		return
	}
	body = append(body, jen.Return(jen.Id(recvName)))
	f.Commentf("%s constructs a %s.", ctor, m.goName)
	f.Func().Id(ctor).Params(params...).Op("*").Id(m.goName).Block(body...)
}

func (m *model) recv() *jen.Statement {
	return jen.Params(jen.Id(recvName).Op("*").Id(m.goName))
}

func (m *model) renderGetters(f *jen.File) {
	for _, fd := range m.fields {
		f.Func().Add(m.recv()).Id(fd.goName).Params().Add(fd.typ).Block(
			jen.Return(jen.Id(recvName).Dot(fd.store)),
		)
	}
}

func (m *model) renderString(f *jen.File) {
	format := m.t.Name() + "("
	args := []jen.Code{}
	for i, fd := range m.fields {
		if i > 0 {
			format += ", "
		}
		format += fd.name + " = %v"
		args = append(args, jen.Id(recvName).Dot(fd.store))
	}
	format += ")"
	f.Func().Add(m.recv()).Id("String").Params().String().Block(
		jen.Return(jen.Qual("fmt", "Sprintf").Call(append([]jen.Code{jen.Lit(format)}, args...)...)),
	)
}

func (m *model) renderEqual(f *jen.File) {
	o := "o"
	var cond *jen.Statement
	for _, fd := range m.fields {
		var c *jen.Statement
		if fd.compare {
			c = jen.Id(recvName).Dot(fd.store).Op("==").Id(o).Dot(fd.store)
		} else {
			c = jen.Qual("reflect", "DeepEqual").Call(jen.Id(recvName).Dot(fd.store), jen.Id(o).Dot(fd.store))
		}
		if cond == nil {
			cond = c
			continue
		}
		cond = cond.Op("&&").Add(c)
	}
	if cond == nil {
		cond = jen.True()
	}
	f.Commentf("Equal compares every field of two %s values in declaration order.", m.goName)
	f.Func().Add(m.recv()).Id("Equal").Params(jen.Id(o).Op("*").Id(m.goName)).Bool().Block(
		jen.If(jen.Id(recvName).Op("==").Nil().Op("||").Id(o).Op("==").Nil()).Block(
			jen.Return(jen.Id(recvName).Op("==").Id(o)),
		),
		jen.Return(cond),
	)
}
