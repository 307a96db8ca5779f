package datacls

import (
	"fmt"
	"sort"

	"github.com/reoring/datacls/internal/synth"
)

// Type is a record type: a name plus ordered field declarations. It starts
// bare; Augment attaches the generated behaviors to it in place.
//
// Augmentation is not synchronized. Augment a given *Type from one goroutine;
// once augmented it is read-only and may be shared.
type Type struct {
	name     string
	decls    []FieldSpec
	postInit func(*Instance) error

	registry *Registry
	sig      synth.Signature
	ctor     synth.Func
	repr     func(*Instance) string
	eq       func(*Instance, any) bool
	setattr  func(*Instance, string, any) error
	frozen   bool
}

// Define declares a bare record type. Field names must be unique and
// non-empty; whether they are usable as parameter names is checked when the
// constructor is synthesized.
func Define(name string, fields ...FieldSpec) (*Type, error) {
	var iss Issues
	if name == "" {
		iss = AppendIssues(iss, IssueAt("/", CodeInvalidName, "type name is empty"))
	}
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			iss = AppendIssues(iss, IssueAt(fmt.Sprintf("/%d", i), CodeInvalidName, "field name is empty"))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			iss = AppendIssues(iss, IssueAt("/"+f.Name, CodeDuplicateField, "field declared twice"))
			continue
		}
		seen[f.Name] = struct{}{}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	decls := make([]FieldSpec, len(fields))
	copy(decls, fields)
	return &Type{name: name, decls: decls}, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(name string, fields ...FieldSpec) *Type {
	t, err := Define(name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

// WithPostInit declares the post-construction hook. A generated constructor
// calls it as its last step; it must be declared before Augment.
func (t *Type) WithPostInit(fn func(*Instance) error) *Type {
	t.postInit = fn
	return t
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Declared returns the declared fields in order, augmented or not.
func (t *Type) Declared() []FieldSpec {
	out := make([]FieldSpec, len(t.decls))
	copy(out, t.decls)
	return out
}

// Fields returns the field registry. Callers must treat it as read-only.
// It is nil until the type is augmented.
func (t *Type) Fields() *Registry { return t.registry }

// Augmented reports whether Augment has run on t.
func (t *Type) Augmented() bool { return t.registry != nil }

// Frozen reports whether instances reject assignment.
func (t *Type) Frozen() bool { return t.frozen }

// HasInit reports whether a constructor was generated.
func (t *Type) HasInit() bool { return t.ctor != nil }

// HasRepr reports whether a rendering was generated.
func (t *Type) HasRepr() bool { return t.repr != nil }

// HasEq reports whether structural equality was generated.
func (t *Type) HasEq() bool { return t.eq != nil }

// HasPostInit reports whether a post-construction hook is declared.
func (t *Type) HasPostInit() bool { return t.postInit != nil }

// Signature renders the generated constructor's parameter list, or
// "Name(self)" when no constructor was generated.
func (t *Type) Signature() string {
	if t.ctor == nil {
		return t.name + "(" + synth.SelfParam + ")"
	}
	s := t.sig
	s.Func = t.name
	return s.String()
}

// KwArg is a keyword argument for Type.New.
type KwArg struct {
	Name  string
	Value any
}

// Kw passes v to the constructor parameter name.
func Kw(name string, v any) KwArg { return KwArg{Name: name, Value: v} }

// New constructs an instance. Positional arguments bind in signature order
// (fields without defaults first, then fields with defaults); KwArg values
// bind by name and must follow the positional ones.
func (t *Type) New(args ...any) (*Instance, error) {
	var call synth.Call
	for i, a := range args {
		kw, ok := a.(KwArg)
		if !ok {
			if len(call.Named) > 0 {
				return nil, Issues{IssueAt(fmt.Sprintf("/%d", i), CodePositionalAfterKeyword, "positional argument follows keyword argument")}
			}
			call.Positional = append(call.Positional, a)
			continue
		}
		call.Named = append(call.Named, synth.Arg{Name: kw.Name, Value: kw.Value})
	}
	return t.construct(call)
}

// NewFromMap constructs an instance binding every entry by name.
func (t *Type) NewFromMap(m map[string]any) (*Instance, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	call := synth.Call{Named: make([]synth.Arg, 0, len(keys))}
	for _, k := range keys {
		call.Named = append(call.Named, synth.Arg{Name: k, Value: m[k]})
	}
	return t.construct(call)
}

// NewFromOrdered constructs an instance binding every entry by name.
func (t *Type) NewFromOrdered(m OrderedMap) (*Instance, error) {
	call := synth.Call{Named: make([]synth.Arg, 0, m.Len())}
	for k, v := range m.All() {
		call.Named = append(call.Named, synth.Arg{Name: k, Value: v})
	}
	return t.construct(call)
}

// MustNew is like New but panics on error.
func (t *Type) MustNew(args ...any) *Instance {
	inst, err := t.New(args...)
	if err != nil {
		panic(err)
	}
	return inst
}
