package datacls_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	datacls "github.com/reoring/datacls"
)

func issuesOf(t *testing.T, err error) datacls.Issues {
	t.Helper()
	iss, ok := datacls.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %T: %v", err, err)
	}
	return iss
}

func TestNew_CallErrors(t *testing.T) {
	typ := testUser(t)
	cases := []struct {
		name string
		args []any
		code string
		path string
	}{
		{"missing", nil, datacls.CodeMissingArgument, "/Name"},
		{"too_many", []any{"a", 1, 2}, datacls.CodeTooManyArguments, "/"},
		{"unexpected", []any{datacls.Kw("Nick", "x"), datacls.Kw("Name", "a")}, datacls.CodeUnexpectedArgument, "/Nick"},
		{"duplicate", []any{"a", datacls.Kw("Name", "b")}, datacls.CodeDuplicateArgument, "/Name"},
		{"positional_after_keyword", []any{datacls.Kw("Name", "a"), 3}, datacls.CodePositionalAfterKeyword, "/1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := typ.New(tc.args...)
			iss := issuesOf(t, err)
			if iss[0].Code != tc.code || iss[0].Path != tc.path {
				t.Fatalf("got %s at %s, want %s at %s", iss[0].Code, iss[0].Path, tc.code, tc.path)
			}
		})
	}
}

func TestNew_HintsNameTheType(t *testing.T) {
	_, err := testUser(t).New()
	iss := issuesOf(t, err)
	if !strings.Contains(iss[0].Hint, `TestUser() missing required argument "Name"`) {
		t.Fatalf("hint: %q", iss[0].Hint)
	}
}

func TestNew_FromMapAndOrdered(t *testing.T) {
	typ := testUser(t)
	a, err := typ.NewFromMap(map[string]any{"Name": "Ana", "Age": 30})
	if err != nil {
		t.Fatalf("from map: %v", err)
	}
	m := datacls.NewOrderedMap(2)
	m.Set("Age", 30)
	m.Set("Name", "Ana")
	b, err := typ.NewFromOrdered(m)
	if err != nil {
		t.Fatalf("from ordered: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("%s != %s", a, b)
	}
	if _, err := typ.NewFromMap(map[string]any{"Name": "Ana", "Nick": "a"}); err == nil {
		t.Fatalf("unknown keys must be rejected")
	}
}

func TestPresence(t *testing.T) {
	typ := testUser(t)
	u := typ.MustNew("Antonio")
	p := u.Presence()
	if !p.Has("Name", datacls.PresenceSupplied) || !p.Has("Age", datacls.PresenceDefaultApplied) {
		t.Fatalf("presence after construction: %v", p)
	}
	if diff := cmp.Diff([]string{"Age"}, p.Defaulted(typ.Fields().Names())); diff != "" {
		t.Fatalf("defaulted (-want +got):\n%s", diff)
	}
	if err := u.Set("Age", 40); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := u.Presence()["Age"].String(); got != "default|assigned" {
		t.Fatalf("presence after assignment: %q", got)
	}
	if p["Age"] != datacls.PresenceDefaultApplied {
		t.Fatalf("Presence must return a copy")
	}
}

func TestSet_UnknownField(t *testing.T) {
	u := testUser(t).MustNew("Antonio")
	iss := issuesOf(t, u.Set("Nick", "a"))
	if !iss.HasCode(datacls.CodeUnknownField) {
		t.Fatalf("got %v", iss)
	}
	if _, err := u.Get("Nick"); err == nil {
		t.Fatalf("get of an undeclared field must fail")
	}
}

func TestFactoryDefault_RunsPerConstruction(t *testing.T) {
	n := 0
	typ := datacls.MustAugment(datacls.MustDefine("Counter",
		datacls.Field("id", datacls.Hint("int")).WithFactory(func() any { n++; return n }),
	))
	if got := typ.Signature(); got != "Counter(self, id = <factory>)" {
		t.Fatalf("signature: %q", got)
	}
	a, b := typ.MustNew(), typ.MustNew()
	if a.MustGet("id") != 1 || b.MustGet("id") != 2 {
		t.Fatalf("factory must run once per construction: %s %s", a, b)
	}
	typ.MustNew(9)
	if n != 2 {
		t.Fatalf("supplied values must skip the factory, ran %d times", n)
	}
}

func TestNoDefault_IsNotAString(t *testing.T) {
	typ := datacls.MustAugment(datacls.MustDefine("S",
		datacls.Field("tag", datacls.Hint("str")).WithDefault("NoDefault"),
		datacls.Field("name", datacls.Hint("str")),
	))
	if got, want := typ.Signature(), `S(self, name, tag = "NoDefault")`; got != want {
		t.Fatalf("signature: got %q want %q", got, want)
	}
	if v := typ.MustNew("x").MustGet("tag"); v != "NoDefault" {
		t.Fatalf("tag: %v", v)
	}
	if datacls.Field("a", datacls.Hint("int")).HasDefault() {
		t.Fatalf("Field without WithDefault has no default")
	}
	if !datacls.Field("a", datacls.Hint("int")).WithDefault(nil).HasDefault() {
		t.Fatalf("a nil default is still a default")
	}
}

var errTooYoung = errors.New("too young")

func TestPostInit_ErrorPropagates(t *testing.T) {
	typ := datacls.MustDefine("Adult", datacls.Field("age", datacls.Hint("int"))).
		WithPostInit(func(inst *datacls.Instance) error {
			if inst.MustGet("age").(int) < 18 {
				return errTooYoung
			}
			return nil
		})
	datacls.MustAugment(typ)
	if !typ.HasPostInit() {
		t.Fatalf("hook not detected")
	}
	if _, err := typ.New(12); !errors.Is(err, errTooYoung) {
		t.Fatalf("expected hook error, got %v", err)
	}
	if _, err := typ.New(30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostInit_ClearedAfterAugment(t *testing.T) {
	calls := 0
	typ := datacls.MustDefine("Tick", datacls.Field("n", datacls.Hint("int"))).
		WithPostInit(func(*datacls.Instance) error { calls++; return nil })
	datacls.MustAugment(typ)
	typ.WithPostInit(nil)
	inst, err := typ.New(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 || inst.MustGet("n") != 1 {
		t.Fatalf("calls=%d n=%v", calls, inst.MustGet("n"))
	}
}

func TestDefine_Rejects(t *testing.T) {
	_, err := datacls.Define("", datacls.Field("a", datacls.Hint("int")))
	if !issuesOf(t, err).HasCode(datacls.CodeInvalidName) {
		t.Fatalf("empty type name: %v", err)
	}
	_, err = datacls.Define("T", datacls.Field("a", datacls.Hint("int")), datacls.Field("a", datacls.Hint("str")))
	if iss := issuesOf(t, err); !iss.HasCode(datacls.CodeDuplicateField) || iss[0].Path != "/a" {
		t.Fatalf("duplicate field: %v", err)
	}
}
