package declfile

import (
	"fmt"

	datacls "github.com/reoring/datacls"
)

func issue(path, code, hint string) datacls.Issues {
	return datacls.Issues{datacls.IssueAt(path, code, hint)}
}

func build(doc any, base []datacls.Option) ([]*datacls.Type, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, issue("/", datacls.CodeInvalidType, "document must be a mapping with a types list")
	}
	list, ok := root["types"].([]any)
	if !ok {
		return nil, issue("/types", datacls.CodeInvalidType, "types must be a list")
	}
	out := make([]*datacls.Type, 0, len(list))
	seen := map[string]struct{}{}
	for i, raw := range list {
		path := fmt.Sprintf("/types/%d", i)
		td, ok := raw.(map[string]any)
		if !ok {
			return nil, issue(path, datacls.CodeInvalidType, "type entry must be a mapping")
		}
		t, opts, err := buildType(path, td)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[t.Name()]; dup {
			return nil, issue(path+"/name", datacls.CodeDuplicateField, "type "+t.Name()+" declared twice")
		}
		seen[t.Name()] = struct{}{}
		all := append(append([]datacls.Option{}, base...), opts...)
		if _, err := datacls.Augment(t, all...); err != nil {
			return nil, fmt.Errorf("declfile: %s: %w", t.Name(), err)
		}
		out = append(out, t)
	}
	return out, nil
}

func buildType(path string, td map[string]any) (*datacls.Type, []datacls.Option, error) {
	name, _ := td["name"].(string)
	var opts []datacls.Option
	for _, sw := range []struct {
		key string
		opt func(bool) datacls.Option
	}{
		{"init", datacls.WithInit},
		{"repr", datacls.WithRepr},
		{"eq", datacls.WithEq},
		{"frozen", datacls.WithFrozen},
	} {
		raw, ok := td[sw.key]
		if !ok {
			continue
		}
		b, ok := raw.(bool)
		if !ok {
			return nil, nil, issue(path+"/"+sw.key, datacls.CodeInvalidType, sw.key+" must be a boolean")
		}
		opts = append(opts, sw.opt(b))
	}
	var specs []datacls.FieldSpec
	if rawFields, ok := td["fields"]; ok && rawFields != nil {
		fl, ok := rawFields.([]any)
		if !ok {
			return nil, nil, issue(path+"/fields", datacls.CodeInvalidType, "fields must be a list")
		}
		for j, rf := range fl {
			fpath := fmt.Sprintf("%s/fields/%d", path, j)
			fd, ok := rf.(map[string]any)
			if !ok {
				return nil, nil, issue(fpath, datacls.CodeInvalidType, "field entry must be a mapping")
			}
			fname, _ := fd["name"].(string)
			hint, _ := fd["type"].(string)
			spec := datacls.Field(fname, datacls.Hint(hint))
			if dv, ok := fd["default"]; ok {
				spec = spec.WithDefault(dv)
			}
			specs = append(specs, spec)
		}
	}
	t, err := datacls.Define(name, specs...)
	if err != nil {
		return nil, nil, err
	}
	return t, opts, nil
}
