package datacls

import (
	"bytes"
	"fmt"
	"iter"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// OrderedMap is an ordered field-name to value mapping. Key order is the
// order keys were first set; equality ignores it.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty mapping with room for n keys.
func NewOrderedMap(n int) OrderedMap {
	return OrderedMap{keys: make([]string, 0, n), values: make(map[string]any, n)}
}

// Set stores v under k, appending k when it is new.
func (m *OrderedMap) Set(k string, v any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	if _, ok := m.values[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

// Get returns the value stored under k.
func (m OrderedMap) Get(k string) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Keys returns the keys in order.
func (m OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m OrderedMap) Len() int { return len(m.keys) }

// All iterates entries in order.
func (m OrderedMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy.
func (m OrderedMap) Map() map[string]any {
	out := make(map[string]any, len(m.keys))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// valueOptions make value comparison total: unexported struct fields are
// compared instead of panicking.
var valueOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal compares key sets and per-key values. Values with an Equal method
// (including nested instances) are compared through it.
func (m OrderedMap) Equal(o OrderedMap) bool {
	if len(m.keys) != len(o.keys) {
		return false
	}
	for _, k := range m.keys {
		ov, ok := o.values[k]
		if !ok {
			return false
		}
		if !valuesEqual(m.values[k], ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) (eq bool) {
	defer func() {
		// cmp panics on cyclic or otherwise unsupported values; treat as unequal
		if recover() != nil {
			eq = false
		}
	}()
	return cmp.Equal(a, b, valueOptions...)
}

// String renders the mapping like a Go map literal, keeping key order.
func (m OrderedMap) String() string {
	b := &bytes.Buffer{}
	b.WriteString("{")
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %v", strconv.Quote(k), m.values[k])
	}
	b.WriteString("}")
	return b.String()
}

// MarshalJSON writes keys in order.
func (m OrderedMap) MarshalJSON() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("datacls: encoding %q: %w", k, err)
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its top-level key order.
// Integral numbers decode as int64, others as float64.
func (m *OrderedMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Issues{IssueAt("/", CodeInvalidType, fmt.Sprintf("expected object, got %v", tok))}
	}
	*m = NewOrderedMap(8)
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		k, ok := kt.(string)
		if !ok {
			return Issues{IssueAt("/", CodeParseError, fmt.Sprintf("expected object key, got %v", kt))}
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m.Set(k, normalizeNumbers(v))
	}
	_, err = dec.Token()
	return err
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeNumbers(e)
		}
		return t
	}
	return v
}

// MarshalYAML emits a mapping node keeping key order.
func (m OrderedMap) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		kn := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		vn := &yaml.Node{}
		if err := vn.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("datacls: encoding %q: %w", k, err)
		}
		n.Content = append(n.Content, kn, vn)
	}
	return n, nil
}

// UnmarshalYAML reads a mapping node keeping its key order. A repeated key
// fails with CodeDuplicateKey.
func (m *OrderedMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return Issues{IssueAt("/", CodeInvalidType, fmt.Sprintf("expected mapping at line %d", value.Line))}
	}
	*m = NewOrderedMap(len(value.Content) / 2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k := value.Content[i]
		if _, dup := m.Get(k.Value); dup {
			return Issues{IssueAt("/"+k.Value, CodeDuplicateKey, fmt.Sprintf("key %q repeated at line %d", k.Value, k.Line))}
		}
		var v any
		if err := value.Content[i+1].Decode(&v); err != nil {
			return err
		}
		m.Set(k.Value, v)
	}
	return nil
}
