package synth

import (
	"strings"
)

// SelfParam is the name of the receiving instance in synthesized units.
const SelfParam = "self"

// Field is the synthesizer's view of one declared field.
type Field struct {
	Name       string
	Default    any
	HasDefault bool
	Factory    func() any
}

// Param is one parameter of a synthesized signature.
type Param struct {
	Name       string
	HasDefault bool
	// Literal is the rendered default ("<factory>" for factories, empty when required).
	Literal string

	value   any
	factory func() any
}

// DefaultValue returns the value bound when the caller omits the parameter.
// Factories run on every call.
func (p Param) DefaultValue() any {
	if p.factory != nil {
		return p.factory()
	}
	return p.value
}

// Signature is an ordered parameter list: required parameters first, then
// parameters with defaults, each group in declaration order.
type Signature struct {
	Func   string
	Params []Param
	index  map[string]int
}

// BuildSignature partitions fields into required and defaulted parameters,
// keeping relative order inside each group, and renders every default as a
// literal. A default without a literal form fails with CodeMalformedDefault.
func BuildSignature(fn string, fields []Field) (Signature, error) {
	required := make([]Param, 0, len(fields))
	defaulted := make([]Param, 0, len(fields))
	var errs Errors
	for _, f := range fields {
		if !f.HasDefault && f.Factory == nil {
			required = append(required, Param{Name: f.Name})
			continue
		}
		p := Param{Name: f.Name, HasDefault: true, value: f.Default, factory: f.Factory}
		if f.Factory != nil {
			p.Literal = "<factory>"
		} else {
			lit, err := Literal(f.Default)
			if err != nil {
				errs = append(errs, &Error{Code: CodeMalformedDefault, Param: f.Name, Detail: err.Error(), Cause: err})
				continue
			}
			p.Literal = lit
		}
		defaulted = append(defaulted, p)
	}
	if len(errs) > 0 {
		return Signature{}, errs
	}
	params := append(required, defaulted...)
	idx := make(map[string]int, len(params))
	for i, p := range params {
		idx[p.Name] = i
	}
	return Signature{Func: fn, Params: params, index: idx}, nil
}

// Lookup returns the position of the named parameter.
func (s Signature) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Required reports how many leading parameters have no default.
func (s Signature) Required() int {
	n := 0
	for _, p := range s.Params {
		if p.HasDefault {
			break
		}
		n++
	}
	return n
}

// String renders the signature the way it reads in a call: "Name(self, b, a = 1)".
func (s Signature) String() string {
	b := &strings.Builder{}
	b.WriteString(s.Func)
	b.WriteString("(")
	b.WriteString(SelfParam)
	for _, p := range s.Params {
		b.WriteString(", ")
		b.WriteString(p.Name)
		if p.HasDefault {
			b.WriteString(" = ")
			b.WriteString(p.Literal)
		}
	}
	b.WriteString(")")
	return b.String()
}
