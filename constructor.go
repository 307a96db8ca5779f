package datacls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/datacls/i18n"
	"github.com/reoring/datacls/internal/synth"
)

// initFunc names the synthesized initializer in its source unit.
const initFunc = "__init__"

// generateInit synthesizes the constructor from the registry. Stores follow
// declaration order; the hook call, when present, comes last.
func generateInit(t *Type, postInit bool) error {
	fields := make([]synth.Field, 0, t.registry.Len())
	for _, f := range t.registry.All() {
		fields = append(fields, synth.Field{Name: f.Name, Default: f.Default, HasDefault: f.HasDefault(), Factory: f.Factory})
	}
	sig, err := synth.BuildSignature(initFunc, fields)
	if err != nil {
		return synthesisError(t, err, "")
	}
	body := make([]synth.Instr, 0, len(fields)+1)
	for _, f := range fields {
		body = append(body, synth.Store(f.Name))
	}
	if postInit {
		body = append(body, synth.CallHook())
	}
	unit := synth.Unit{Sig: sig, Body: body}
	fn, err := synth.Synthesize(unit)
	if err != nil {
		return synthesisError(t, err, unit.Source())
	}
	t.sig = sig
	t.ctor = fn
	return nil
}

func synthesisError(t *Type, err error, src string) error {
	return &SynthesisError{Type: t.name, Issues: issuesFromSynth(err), Source: src}
}

// issuesFromSynth converts synthesizer errors into Issues at "/<param>".
func issuesFromSynth(err error) Issues {
	var errs synth.Errors
	if !errors.As(err, &errs) {
		return Issues{{Path: "/", Code: CodeSynthesis, Message: i18n.T(CodeSynthesis, nil), Hint: err.Error(), Cause: err}}
	}
	out := make(Issues, 0, len(errs))
	for _, e := range errs {
		path := "/"
		if e.Param != "" {
			path = "/" + e.Param
		}
		out = append(out, Issue{Path: path, Code: e.Code, Message: i18n.T(e.Code, nil), Hint: e.Detail, Cause: e.Cause})
	}
	return out
}

// initTarget is the constructor's view of an instance. Its Store is the only
// write path that skips the type's setter interceptor.
type initTarget struct{ inst *Instance }

func (it initTarget) Store(name string, v any, supplied bool) {
	it.inst.store(name, v, supplied)
}

// PostInit runs the hook declared now; a hook cleared after Augment is a no-op.
func (it initTarget) PostInit() error {
	if it.inst.typ.postInit == nil {
		return nil
	}
	return it.inst.typ.postInit(it.inst)
}

func (t *Type) construct(call synth.Call) (*Instance, error) {
	inst := newInstance(t)
	if t.ctor == nil {
		if n := len(call.Positional) + len(call.Named); n > 0 {
			return nil, Issues{IssueAt("/", CodeTooManyArguments, fmt.Sprintf("%s() takes no arguments (%d given)", t.name, n))}
		}
		return inst, nil
	}
	if err := t.ctor(initTarget{inst: inst}, call); err != nil {
		var he *synth.HookError
		if errors.As(err, &he) {
			return nil, fmt.Errorf("datacls: %s post-init: %w", t.name, he.Err)
		}
		iss := issuesFromSynth(err)
		for i := range iss {
			iss[i].Hint = rename(iss[i].Hint, t.name)
		}
		return nil, iss
	}
	return inst, nil
}

// rename reports call errors under the type's name rather than the unit's.
func rename(hint, typeName string) string {
	return strings.Replace(hint, initFunc+"()", typeName+"()", 1)
}
