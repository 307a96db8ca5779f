// Package codec encodes record instances through their ordered field-value
// view and decodes them back through the generated constructor.
package codec

import (
	"fmt"
	"sort"
	"strings"

	datacls "github.com/reoring/datacls"
)

// Codec converts between instances and one wire format.
type Codec interface {
	// Name is the format name ("json", "yaml", "msgpack").
	Name() string
	// Marshal encodes the ordered field-value view of r.
	Marshal(r datacls.Record) ([]byte, error)
	// Unmarshal decodes an object and passes its entries to t's constructor
	// as keyword arguments.
	Unmarshal(t *datacls.Type, data []byte) (*datacls.Instance, error)
}

var registry = map[string]Codec{
	"json":    JSON(),
	"yaml":    YAML(),
	"yml":     YAML(),
	"msgpack": MsgPack(),
}

// ByName returns the codec registered under name (case-insensitive).
func ByName(name string) (Codec, error) {
	if c, ok := registry[strings.ToLower(name)]; ok {
		return c, nil
	}
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("codec: unknown format %q (known: %s)", name, strings.Join(names, ", "))
}

// plain replaces nested records with their ordered mappings so encoders
// that know nothing about instances still see their fields.
func plain(v any) (any, error) {
	switch t := v.(type) {
	case datacls.Record:
		return mapping(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			p, err := plain(e)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	}
	return v, nil
}

func mapping(r datacls.Record) (datacls.OrderedMap, error) {
	m, err := datacls.AsOrderedMapping(r)
	if err != nil {
		return datacls.OrderedMap{}, err
	}
	out := datacls.NewOrderedMap(m.Len())
	for k, v := range m.All() {
		p, err := plain(v)
		if err != nil {
			return datacls.OrderedMap{}, err
		}
		out.Set(k, p)
	}
	return out, nil
}
