package synth

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"
)

// Op is an instruction opcode of a synthesized body.
type Op uint8

const (
	OpStore Op = iota // copy the parameter named Field into the instance
	OpHook            // call the post-construction hook
)

// Instr is one step of a synthesized body.
type Instr struct {
	Op    Op
	Field string
}

// Store returns the instruction that copies parameter name into the instance.
func Store(name string) Instr { return Instr{Op: OpStore, Field: name} }

// CallHook returns the instruction that runs the post-construction hook.
func CallHook() Instr { return Instr{Op: OpHook} }

// Unit is a function to synthesize: a signature plus an instruction body.
type Unit struct {
	Sig  Signature
	Body []Instr
}

// Target is the scope a synthesized function runs against. Store is the
// write path of the constructor; it must not go through any interceptor.
type Target interface {
	Store(name string, v any, supplied bool)
	PostInit() error
}

// Arg is a keyword argument.
type Arg struct {
	Name  string
	Value any
}

// Call carries the arguments of one invocation. Named keeps caller order so
// duplicates can be reported.
type Call struct {
	Positional []any
	Named      []Arg
}

// Func is a synthesized, invocable unit.
type Func func(self Target, call Call) error

const (
	selfType     = "*Instance"
	defaultsVar  = "__defaults__"
	storeFunc    = "store"
	hookFunc     = "postInit"
	factoryMaker = "__factory__"
)

// Source renders the unit as Go source text.
func (u Unit) Source() string {
	b := &strings.Builder{}
	b.WriteString("package synthesized\n\n")
	b.WriteString("var " + defaultsVar + " = map[string]any{\n")
	for _, p := range u.Sig.Params {
		if !p.HasDefault {
			continue
		}
		lit := p.Literal
		if p.factory != nil {
			lit = factoryMaker + "()"
		}
		fmt.Fprintf(b, "\t%s: %s,\n", strconv.Quote(p.Name), lit)
	}
	b.WriteString("}\n\n")
	fmt.Fprintf(b, "func %s(%s %s", u.Sig.Func, SelfParam, selfType)
	for _, p := range u.Sig.Params {
		fmt.Fprintf(b, ", %s any", p.Name)
	}
	b.WriteString(") {\n")
	for _, in := range u.Body {
		switch in.Op {
		case OpStore:
			fmt.Fprintf(b, "\t%s(%s, %s, %s)\n", storeFunc, SelfParam, strconv.Quote(in.Field), in.Field)
		case OpHook:
			fmt.Fprintf(b, "\t%s(%s)\n", hookFunc, SelfParam)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// Synthesize compiles the unit's source once and returns the callable bound
// to it. Source that does not parse, or parses into a different parameter
// list than the signature declares, fails with CodeSyntax.
func Synthesize(u Unit) (Func, error) {
	src := u.Source()
	file, err := parser.ParseFile(token.NewFileSet(), u.Sig.Func+".go", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxErrors(u.Sig, err)
	}
	if err := verify(u, file); err != nil {
		return nil, err
	}
	body := make([]Instr, len(u.Body))
	copy(body, u.Body)
	for _, in := range body {
		if in.Op != OpStore {
			continue
		}
		if _, ok := u.Sig.Lookup(in.Field); !ok {
			return nil, Errors{{Code: CodeSyntax, Param: in.Field, Detail: "undefined: " + in.Field}}
		}
	}
	sig := u.Sig
	return func(self Target, call Call) error {
		vals, supplied, err := sig.Bind(call)
		if err != nil {
			return err
		}
		for _, in := range body {
			switch in.Op {
			case OpStore:
				i, _ := sig.Lookup(in.Field)
				self.Store(in.Field, vals[i], supplied[i])
			case OpHook:
				if err := self.PostInit(); err != nil {
					return &HookError{Err: err}
				}
			}
		}
		return nil
	}, nil
}

func syntaxErrors(sig Signature, err error) error {
	var out Errors
	for _, p := range sig.Params {
		if !token.IsIdentifier(p.Name) {
			out = append(out, &Error{Code: CodeSyntax, Param: p.Name, Detail: fmt.Sprintf("%q is not a valid parameter name", p.Name), Cause: err})
		}
	}
	if len(out) > 0 {
		return out
	}
	detail := err.Error()
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		detail = list[0].Msg
	}
	return Errors{{Code: CodeSyntax, Detail: detail, Cause: err}}
}

// verify checks the parsed declaration against the signature so that names
// which happen to parse (for example "a, b") cannot change its shape.
func verify(u Unit, file *ast.File) error {
	var fn *ast.FuncDecl
	for _, d := range file.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Name.Name == u.Sig.Func {
			fn = fd
			break
		}
	}
	if fn == nil {
		return Errors{{Code: CodeSyntax, Detail: "function " + u.Sig.Func + " not found in synthesized source"}}
	}
	want := make([]string, 0, len(u.Sig.Params)+1)
	want = append(want, SelfParam)
	for _, p := range u.Sig.Params {
		want = append(want, p.Name)
	}
	got := make([]string, 0, len(want))
	for _, f := range fn.Type.Params.List {
		for _, n := range f.Names {
			got = append(got, n.Name)
		}
	}
	if len(got) != len(want) {
		return Errors{{Code: CodeSyntax, Detail: fmt.Sprintf("parameter list has %d names, expected %d", len(got), len(want))}}
	}
	seen := make(map[string]struct{}, len(got))
	var errs Errors
	for i, name := range got {
		if name != want[i] {
			errs = append(errs, &Error{Code: CodeSyntax, Param: want[i], Detail: fmt.Sprintf("parameter %d parsed as %q", i, name)})
			continue
		}
		if name == "_" {
			errs = append(errs, &Error{Code: CodeSyntax, Param: name, Detail: "cannot use _ as value"})
			continue
		}
		if _, dup := seen[name]; dup {
			errs = append(errs, &Error{Code: CodeSyntax, Param: name, Detail: "duplicate argument " + name + " in function definition"})
			continue
		}
		seen[name] = struct{}{}
	}
	if len(errs) > 0 {
		return errs
	}
	if n := len(fn.Body.List); n != len(u.Body) {
		return Errors{{Code: CodeSyntax, Detail: fmt.Sprintf("body has %d statements, expected %d", n, len(u.Body))}}
	}
	return nil
}

// Bind resolves a call against the signature. It returns one value per
// parameter and whether the caller supplied it.
func (s Signature) Bind(call Call) ([]any, []bool, error) {
	vals := make([]any, len(s.Params))
	supplied := make([]bool, len(s.Params))
	if len(call.Positional) > len(s.Params) {
		return nil, nil, Errors{{
			Code:   CodeTooManyArguments,
			Detail: fmt.Sprintf("%s() takes %d positional arguments but %d were given", s.Func, len(s.Params), len(call.Positional)),
		}}
	}
	for i, v := range call.Positional {
		vals[i] = v
		supplied[i] = true
	}
	var errs Errors
	for _, a := range call.Named {
		i, ok := s.index[a.Name]
		if !ok {
			errs = append(errs, &Error{Code: CodeUnexpectedArgument, Param: a.Name, Detail: fmt.Sprintf("%s() got an unexpected keyword argument %q", s.Func, a.Name)})
			continue
		}
		if supplied[i] {
			errs = append(errs, &Error{Code: CodeDuplicateArgument, Param: a.Name, Detail: fmt.Sprintf("%s() got multiple values for argument %q", s.Func, a.Name)})
			continue
		}
		vals[i] = a.Value
		supplied[i] = true
	}
	for i, p := range s.Params {
		if supplied[i] {
			continue
		}
		if !p.HasDefault {
			errs = append(errs, &Error{Code: CodeMissingArgument, Param: p.Name, Detail: fmt.Sprintf("%s() missing required argument %q", s.Func, p.Name)})
			continue
		}
		vals[i] = p.DefaultValue()
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}
	return vals, supplied, nil
}
