package datacls

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

func generateRepr(t *Type) { t.repr = renderFields }

// renderFields renders "Name(f1 = v1, f2 = v2)" in registry order.
func renderFields(i *Instance) string {
	b := &strings.Builder{}
	b.WriteString(i.typ.name)
	b.WriteString("(")
	n := 0
	for name := range i.typ.registry.All() {
		if n > 0 {
			b.WriteString(", ")
		}
		n++
		v, err := i.Get(name)
		if err != nil {
			fmt.Fprintf(b, "%s = <unset>", name)
			continue
		}
		fmt.Fprintf(b, "%s = %v", name, v)
	}
	b.WriteString(")")
	return b.String()
}

// String renders i with the generated representation, or as
// "<Name object at 0x...>" when none was generated.
func (i *Instance) String() string {
	if i.typ.repr == nil {
		return fmt.Sprintf("<%s object at %p>", i.typ.name, i)
	}
	return i.typ.repr(i)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// GoString renders a detailed dump of the type name and the live values.
func (i *Instance) GoString() string {
	m, err := AsOrderedMapping(i)
	if err != nil {
		return i.typ.name + "{" + err.Error() + "}"
	}
	b := &strings.Builder{}
	b.WriteString(i.typ.name)
	b.WriteString("{\n")
	for k, v := range m.All() {
		fmt.Fprintf(b, "  %s: %s", k, strings.TrimSuffix(dumpConfig.Sdump(v), "\n"))
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
