package synth

import (
	"errors"
	"strings"
	"testing"
)

type recorder struct {
	stores []string
	vals   map[string]any
	hook   error
	hooked int
}

func (r *recorder) Store(name string, v any, supplied bool) {
	if r.vals == nil {
		r.vals = map[string]any{}
	}
	r.stores = append(r.stores, name)
	r.vals[name] = v
	_ = supplied
}

func (r *recorder) PostInit() error {
	r.hooked++
	return r.hook
}

func compile(t *testing.T, fields []Field, hook bool) Func {
	t.Helper()
	sig, err := BuildSignature("__init__", fields)
	if err != nil {
		t.Fatalf("signature: %v", err)
	}
	body := make([]Instr, 0, len(fields)+1)
	for _, f := range fields {
		body = append(body, Store(f.Name))
	}
	if hook {
		body = append(body, CallHook())
	}
	fn, err := Synthesize(Unit{Sig: sig, Body: body})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	return fn
}

func TestBuildSignature_Partition(t *testing.T) {
	sig, err := BuildSignature("f", []Field{
		{Name: "a", Default: 1, HasDefault: true},
		{Name: "b"},
		{Name: "c", Default: "x", HasDefault: true},
		{Name: "d"},
	})
	if err != nil {
		t.Fatalf("signature: %v", err)
	}
	if got, want := sig.String(), `f(self, b, d, a = 1, c = "x")`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
	if sig.Required() != 2 {
		t.Fatalf("required: %d", sig.Required())
	}
	if i, ok := sig.Lookup("c"); !ok || i != 3 {
		t.Fatalf("lookup c: %d %v", i, ok)
	}
}

func TestSynthesize_StoresInDeclarationOrder(t *testing.T) {
	fn := compile(t, []Field{{Name: "a", Default: 1, HasDefault: true}, {Name: "b"}}, true)
	r := &recorder{}
	if err := fn(r, Call{Positional: []any{2}}); err != nil {
		t.Fatalf("call: %v", err)
	}
	if strings.Join(r.stores, ",") != "a,b" {
		t.Fatalf("stores: %v", r.stores)
	}
	if r.vals["a"] != 1 || r.vals["b"] != 2 || r.hooked != 1 {
		t.Fatalf("state: %v hooked=%d", r.vals, r.hooked)
	}
}

func TestSynthesize_HookError(t *testing.T) {
	fn := compile(t, nil, true)
	boom := errors.New("boom")
	err := fn(&recorder{hook: boom}, Call{})
	var he *HookError
	if !errors.As(err, &he) || !errors.Is(err, boom) {
		t.Fatalf("expected HookError wrapping boom, got %v", err)
	}
}

func TestBind_Errors(t *testing.T) {
	sig, _ := BuildSignature("f", []Field{{Name: "a"}, {Name: "b", Default: 0, HasDefault: true}})
	cases := []struct {
		name string
		call Call
		code string
	}{
		{"too_many", Call{Positional: []any{1, 2, 3}}, CodeTooManyArguments},
		{"unexpected", Call{Named: []Arg{{Name: "a", Value: 1}, {Name: "z", Value: 1}}}, CodeUnexpectedArgument},
		{"duplicate", Call{Positional: []any{1}, Named: []Arg{{Name: "a", Value: 2}}}, CodeDuplicateArgument},
		{"missing", Call{Named: []Arg{{Name: "b", Value: 2}}}, CodeMissingArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := sig.Bind(tc.call)
			var errs Errors
			if !errors.As(err, &errs) || errs[0].Code != tc.code {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
		})
	}

	vals, supplied, err := sig.Bind(Call{Named: []Arg{{Name: "a", Value: 5}}})
	if err != nil || vals[0] != 5 || vals[1] != 0 || !supplied[0] || supplied[1] {
		t.Fatalf("bind: %v %v %v", vals, supplied, err)
	}
}

func TestSynthesize_RejectsShapeChanges(t *testing.T) {
	for _, name := range []string{"a, b", "self", "_", "type", "x y"} {
		t.Run(name, func(t *testing.T) {
			sig, err := BuildSignature("__init__", []Field{{Name: name}})
			if err != nil {
				t.Fatalf("signature: %v", err)
			}
			_, err = Synthesize(Unit{Sig: sig, Body: []Instr{Store(name)}})
			var errs Errors
			if !errors.As(err, &errs) || errs[0].Code != CodeSyntax {
				t.Fatalf("expected %s, got %v", CodeSyntax, err)
			}
		})
	}
}

func TestSynthesize_UndefinedStore(t *testing.T) {
	sig, _ := BuildSignature("__init__", []Field{{Name: "a"}})
	_, err := Synthesize(Unit{Sig: sig, Body: []Instr{Store("b")}})
	if err == nil || !strings.Contains(err.Error(), "undefined: b") {
		t.Fatalf("got %v", err)
	}
}

func TestLiteral(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "nil"},
		{"a\"b", `"a\"b"`},
		{true, "true"},
		{-3, "-3"},
		{uint8(7), "7"},
		{2.0, "2.0"},
		{1e21, "1e+21"},
		{complex(1, 2), "complex(1.0, 2.0)"},
		{[]int{1, 2}, "[]any{1, 2}"},
		{map[string]int{"b": 2, "a": 1}, `map[any]any{"a": 1, "b": 2}`},
	}
	for _, tc := range cases {
		got, err := Literal(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("Literal(%#v) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
	for _, bad := range []any{func() {}, make(chan int), struct{}{}, new(int)} {
		if _, err := Literal(bad); err == nil {
			t.Fatalf("Literal(%T) must fail", bad)
		}
	}
}
