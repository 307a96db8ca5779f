// Package declfile loads bare record declarations, with their augmentation
// switches, from YAML or JSON documents and augments them.
//
// Document shape:
//
//	types:
//	  - name: TestUser
//	    frozen: true          # init/repr/eq default to true, frozen to false
//	    fields:
//	      - name: Name
//	        type: str
//	      - name: Age
//	        type: int
//	        default: 23       # "default: null" is a nil default; omit the key for none
package declfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	datacls "github.com/reoring/datacls"
	"github.com/reoring/datacls/internal/dupkeys"
)

// LoadYAML reads a YAML document and returns its augmented types in
// document order. opts apply before each type's own switches.
func LoadYAML(data []byte, opts ...datacls.Option) ([]*datacls.Type, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("declfile: %w", err)
	}
	return build(doc, opts)
}

// LoadJSON reads a JSON document and returns its augmented types in
// document order. opts apply before each type's own switches.
// Repeated keys are rejected rather than silently collapsed.
func LoadJSON(data []byte, opts ...datacls.Option) ([]*datacls.Type, error) {
	dups, err := dupkeys.Find(data, 1)
	if err != nil {
		return nil, fmt.Errorf("declfile: %w", err)
	}
	if len(dups) > 0 {
		return nil, issue(dups[0].Path, datacls.CodeDuplicateKey, "key "+strconv.Quote(dups[0].Key)+" appears more than once")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("declfile: %w", err)
	}
	return build(normalize(doc), opts)
}

// Load reads path and picks the format from its extension (.json, else YAML).
func Load(path string, opts ...datacls.Option) ([]*datacls.Type, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadJSON(data, opts...)
	}
	return LoadYAML(data, opts...)
}

// Find returns the type called name.
func Find(types []*datacls.Type, name string) (*datacls.Type, bool) {
	for _, t := range types {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	}
	return v
}
