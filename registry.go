package datacls

import (
	"iter"
)

// Registry is the ordered, read-only field registry of an augmented type.
// Iteration order is declaration order. A nil *Registry behaves as empty.
type Registry struct {
	specs []FieldSpec
	index map[string]int
}

func newRegistry(decls []FieldSpec) *Registry {
	r := &Registry{
		specs: make([]FieldSpec, len(decls)),
		index: make(map[string]int, len(decls)),
	}
	copy(r.specs, decls)
	for i, f := range r.specs {
		r.index[f.Name] = i
	}
	return r
}

// Len returns the number of fields.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}

// Names returns field names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.specs))
	for i, f := range r.specs {
		out[i] = f.Name
	}
	return out
}

// Get returns the named field.
func (r *Registry) Get(name string) (FieldSpec, bool) {
	if r == nil {
		return FieldSpec{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return r.specs[i], true
}

// Has reports whether name is a declared field.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// At returns the i-th field in declaration order.
func (r *Registry) At(i int) FieldSpec { return r.specs[i] }

// All iterates fields in declaration order.
func (r *Registry) All() iter.Seq2[string, FieldSpec] {
	return func(yield func(string, FieldSpec) bool) {
		if r == nil {
			return
		}
		for _, f := range r.specs {
			if !yield(f.Name, f) {
				return
			}
		}
	}
}

// Specs returns a copy of the fields in declaration order.
func (r *Registry) Specs() []FieldSpec {
	if r == nil {
		return nil
	}
	out := make([]FieldSpec, len(r.specs))
	copy(out, r.specs)
	return out
}
