package datacls

// Record is anything exposing a field registry and live field values.
// *Instance implements it.
type Record interface {
	Fields() *Registry
	Get(name string) (any, error)
}

// AsOrderedMapping reads every registered field of r, in registry order,
// from its live state.
func AsOrderedMapping(r Record) (OrderedMap, error) {
	fields := r.Fields()
	m := NewOrderedMap(fields.Len())
	for name := range fields.All() {
		v, err := r.Get(name)
		if err != nil {
			return OrderedMap{}, err
		}
		m.Set(name, v)
	}
	return m, nil
}
