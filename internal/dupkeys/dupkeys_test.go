package dupkeys

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFind(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []Duplicate
	}{
		{"none", `{"a":1,"b":[1,2],"c":{"a":1}}`, nil},
		{"top", `{"a":1,"a":2}`, []Duplicate{{Path: "/a", Key: "a"}}},
		{"nested", `{"x":{"k":1,"k":2}}`, []Duplicate{{Path: "/x/k", Key: "k"}}},
		{"in_array", `[{"k":1},{"k":1,"k":2}]`, []Duplicate{{Path: "/1/k", Key: "k"}}},
		{"after_array", `{"a":[{"q":1}],"b":1,"b":{"x":[]},"a":0}`, []Duplicate{{Path: "/b", Key: "b"}, {Path: "/a", Key: "a"}}},
		{"escaped", `{"a/b":1,"a/b":2}`, []Duplicate{{Path: "/a~1b", Key: "a/b"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Find([]byte(tc.in), -1)
			if err != nil {
				t.Fatalf("find: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind_Limit(t *testing.T) {
	got, err := Find([]byte(`{"a":1,"a":2,"b":1,"b":2}`), 1)
	if err != nil || len(got) != 1 || got[0].Key != "a" {
		t.Fatalf("got %v, %v", got, err)
	}
	got, err = Find([]byte(`{"a":1,"a":2}`), 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("limit 0: got %v, %v", got, err)
	}
	got, err = Find([]byte(`{"a":1,"a":2,"a":3}`), -1)
	if err != nil || len(got) != 2 {
		t.Fatalf("unlimited: got %v, %v", got, err)
	}
}
