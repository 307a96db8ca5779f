// Package dupkeys finds object keys that repeat inside one JSON object.
// Decoding into a map keeps only the last value of a repeated key, which
// would hide a conflicting constructor argument.
package dupkeys

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Duplicate is a key seen more than once in the same object.
type Duplicate struct {
	Path string // JSON pointer of the repeated member
	Key  string
}

type frame struct {
	object  bool
	path    string
	keys    map[string]struct{}
	key     string // current member (objects)
	index   int    // next element (arrays)
	wantKey bool
}

// Find walks data token by token and reports every repeated key, at any
// depth, in input order. limit < 0 means unlimited and limit == 0 finds
// nothing; otherwise the walk stops once limit duplicates were found. Malformed input returns the duplicates
// found so far together with the decoder error.
func Find(data []byte, limit int) ([]Duplicate, error) {
	if limit == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var (
		stack []*frame
		out   []Duplicate
	)
	top := func() *frame {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	// memberPath is the pointer of the value about to start in the top frame.
	memberPath := func() string {
		f := top()
		switch {
		case f == nil:
			return ""
		case f.object:
			return f.path + "/" + Escape(f.key)
		default:
			return f.path + "/" + strconv.Itoa(f.index)
		}
	}
	// valueDone advances the top frame past a finished value.
	valueDone := func() {
		if f := top(); f != nil {
			if f.object {
				f.wantKey = true
			} else {
				f.index++
			}
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				stack = append(stack, &frame{
					object:  d == '{',
					path:    memberPath(),
					keys:    map[string]struct{}{},
					wantKey: d == '{',
				})
			case '}', ']':
				stack = stack[:len(stack)-1]
				valueDone()
			}
			continue
		}
		if f := top(); f != nil && f.object && f.wantKey {
			k, _ := tok.(string)
			if _, seen := f.keys[k]; seen {
				out = append(out, Duplicate{Path: f.path + "/" + Escape(k), Key: k})
				if limit >= 0 && len(out) >= limit {
					return out, nil
				}
			}
			f.keys[k] = struct{}{}
			f.key = k
			f.wantKey = false
			continue
		}
		valueDone()
	}
}

// Escape encodes a key as a JSON pointer reference token.
func Escape(key string) string {
	if !strings.ContainsAny(key, "~/") {
		return key
	}
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}
