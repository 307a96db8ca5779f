package datacls

// Instance is a value of a record type. Its fields are written once by the
// generated constructor; afterwards Set goes through the type's setter,
// which rejects every write when the type is frozen.
type Instance struct {
	typ      *Type
	values   map[string]any
	presence PresenceMap
}

func newInstance(t *Type) *Instance {
	return &Instance{
		typ:      t,
		values:   make(map[string]any, t.registry.Len()),
		presence: make(PresenceMap, t.registry.Len()),
	}
}

// store writes a field without consulting the setter interceptor.
func (i *Instance) store(name string, v any, supplied bool) {
	i.values[name] = v
	if supplied {
		i.presence[name] |= PresenceSupplied
	} else {
		i.presence[name] |= PresenceDefaultApplied
	}
}

// Type returns the record type of i.
func (i *Instance) Type() *Type { return i.typ }

// Fields returns the registry of i's type.
func (i *Instance) Fields() *Registry { return i.typ.registry }

// Get returns the live value of a field. A field never written falls back
// to its declared default, as a class attribute would.
func (i *Instance) Get(name string) (any, error) {
	f, ok := i.typ.registry.Get(name)
	if !ok {
		return nil, Issues{IssueAt("/"+name, CodeUnknownField, i.typ.name+" has no field "+name)}
	}
	if v, ok := i.values[name]; ok {
		return v, nil
	}
	if f.Factory == nil && f.HasDefault() {
		return f.Default, nil
	}
	return nil, Issues{IssueAt("/"+name, CodeUnsetField, i.typ.name+" instance has no value for "+name)}
}

// MustGet is like Get but panics on error.
func (i *Instance) MustGet(name string) any {
	v, err := i.Get(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Set assigns a declared field through the type's setter.
func (i *Instance) Set(name string, v any) error {
	if i.typ.setattr == nil {
		return assignField(i, name, v)
	}
	return i.typ.setattr(i, name, v)
}

// assignField is the setter installed on every augmented type until a
// freeze replaces it.
func assignField(i *Instance, name string, v any) error {
	if !i.typ.registry.Has(name) {
		return Issues{IssueAt("/"+name, CodeUnknownField, i.typ.name+" has no field "+name)}
	}
	i.values[name] = v
	i.presence[name] |= PresenceAssigned
	return nil
}

// Presence returns a copy of the per-field presence flags.
func (i *Instance) Presence() PresenceMap {
	out := make(PresenceMap, len(i.presence))
	for k, v := range i.presence {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the ordered field-value view.
func (i *Instance) MarshalJSON() ([]byte, error) {
	m, err := AsOrderedMapping(i)
	if err != nil {
		return nil, err
	}
	return m.MarshalJSON()
}

// MarshalYAML encodes the ordered field-value view.
func (i *Instance) MarshalYAML() (any, error) {
	m, err := AsOrderedMapping(i)
	if err != nil {
		return nil, err
	}
	return m.MarshalYAML()
}
