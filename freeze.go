package datacls

// makeFrozen installs the rejecting setter. There is no way back.
func makeFrozen(t *Type) {
	t.frozen = true
	t.setattr = rejectAssign
}

func rejectAssign(i *Instance, name string, _ any) error {
	return &FrozenError{Type: i.typ.name, Field: name}
}
