package datacls_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"

	datacls "github.com/reoring/datacls"
)

type account struct {
	ID      string   `json:"id"`
	Plan    string   `datacls:"name=plan,default=free"`
	Seats   int      `datacls:"default=1"`
	Tags    []string `datacls:"default=[a, b]"`
	Ignored string   `datacls:"-"`
	secret  string
}

func (a *account) PostInit(*datacls.Instance) error {
	if a.Seats < 1 {
		return errNoSeats
	}
	return nil
}

var errNoSeats = errors.New("at least one seat")

func TestFromStruct(t *testing.T) {
	typ, err := datacls.FromStruct[account]()
	if err != nil {
		t.Fatalf("from struct: %v", err)
	}
	if typ.Name() != "account" {
		t.Fatalf("name: %q", typ.Name())
	}
	datacls.MustAugment(typ)
	if got, want := typ.Signature(), `account(self, id, plan = "free", Seats = 1, Tags = []any{"a", "b"})`; got != want {
		t.Fatalf("signature:\n got %s\nwant %s", got, want)
	}
	if !typ.HasPostInit() {
		t.Fatalf("PostIniter must be detected")
	}

	inst, err := typ.New("acme")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got, err := datacls.Decode[account](inst)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := account{ID: "acme", Plan: "free", Seats: 1, Tags: []string{"a", "b"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(account{})); diff != "" {
		t.Fatalf("decode (-want +got):\n%s", diff)
	}

	if _, err := typ.New("acme", datacls.Kw("Seats", 0)); !errors.Is(err, errNoSeats) {
		t.Fatalf("post-init error: %v", err)
	}
}

func TestFromStruct_Rejects(t *testing.T) {
	if _, err := datacls.FromStruct[int](); err == nil {
		t.Fatalf("non-struct must fail")
	}
	type bad struct {
		N int `datacls:"default=lots"`
	}
	_, err := datacls.FromStruct[bad]()
	iss, ok := datacls.AsIssues(err)
	if !ok || !iss.HasCode(datacls.CodeMalformedDefault) || iss[0].Path != "/N" {
		t.Fatalf("got %v", err)
	}
}

func TestScan(t *testing.T) {
	typ := testUser(t)
	u := typ.MustNew("Antonio")

	var dst struct {
		Name string
		Age  int64 // converted
		Nick string
	}
	if err := datacls.Scan(u, &dst); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if dst.Name != "Antonio" || dst.Age != 23 || dst.Nick != "" {
		t.Fatalf("scan: %+v", dst)
	}

	var wrong struct{ Age string }
	if err := datacls.Scan(u, &wrong); err == nil {
		t.Fatalf("int must not be scanned into a string")
	}
	if err := datacls.Scan(u, dst); err == nil {
		t.Fatalf("non-pointer must fail")
	}
}

func TestResolveFieldName(t *testing.T) {
	type s struct {
		A string `datacls:"name=alpha" json:"a"`
		B string `json:"b,omitempty"`
		C string `json:",omitempty"`
		D string `json:"-"`
		E string
	}
	var got []string
	rt := reflect.TypeFor[s]()
	for i := range rt.NumField() {
		got = append(got, datacls.ResolveFieldName(rt.Field(i)))
	}
	if diff := cmp.Diff([]string{"alpha", "b", "C", "-", "E"}, got); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}
