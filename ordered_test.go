package datacls_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	datacls "github.com/reoring/datacls"
)

func TestOrderedMap_JSONKeepsOrder(t *testing.T) {
	u := testUser(t).MustNew("Antonio")
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"Name":"Antonio","Age":23}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	var m datacls.OrderedMap
	if err := json.Unmarshal([]byte(`{"z":1,"a":{"n":2.5},"m":[1,"x"]}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, m.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	want := map[string]any{"z": int64(1), "a": map[string]any{"n": 2.5}, "m": []any{int64(1), "x"}}
	if diff := cmp.Diff(want, m.Map()); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`[1]`), &m); err == nil {
		t.Fatalf("non-object must fail")
	}
}

func TestOrderedMap_YAMLKeepsOrder(t *testing.T) {
	u := testUser(t).MustNew("Antonio")
	b, err := yaml.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), "Name: Antonio\nAge: 23\n"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	var m datacls.OrderedMap
	if err := yaml.Unmarshal([]byte("b: 1\na: two\n"), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, m.Keys()); diff != "" {
		t.Fatalf("keys (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("b"); v != 1 {
		t.Fatalf("b: %v", v)
	}
}

func TestOrderedMap_SetReplacesInPlace(t *testing.T) {
	m := datacls.NewOrderedMap(2)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	if got := m.String(); got != `{"a": 3, "b": 2}` {
		t.Fatalf("got %s", got)
	}
	o := datacls.NewOrderedMap(2)
	o.Set("b", 2)
	o.Set("a", 3)
	if !m.Equal(o) {
		t.Fatalf("keyed equality ignores order")
	}
	o.Set("a", 4)
	if m.Equal(o) {
		t.Fatalf("value change must break equality")
	}
}
