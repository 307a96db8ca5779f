package datacls

func generateEq(t *Type) { t.eq = structuralEqual }

// structuralEqual compares the ordered field-value views of i and other.
// Anything without a Record view, or whose view cannot be read, is unequal.
func structuralEqual(i *Instance, other any) bool {
	r, ok := other.(Record)
	if !ok || r == nil {
		return false
	}
	if o, ok := other.(*Instance); ok && o == nil {
		return false
	}
	a, err := AsOrderedMapping(i)
	if err != nil {
		return false
	}
	b, err := AsOrderedMapping(r)
	if err != nil {
		return false
	}
	return a.Equal(b)
}

// Equal reports whether other equals i: structurally when equality was
// generated for the type, by identity otherwise.
func (i *Instance) Equal(other any) bool {
	if i == nil {
		o, ok := other.(*Instance)
		return ok && o == nil
	}
	if i.typ.eq == nil {
		o, ok := other.(*Instance)
		return ok && o == i
	}
	return i.typ.eq(i, other)
}
