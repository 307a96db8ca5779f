package datacls

import (
	"strings"
)

// Presence is the bit flag recorded per field of an instance.
type Presence uint8

const (
	PresenceSupplied       Presence = 1 << iota // The caller passed a value to the constructor.
	PresenceDefaultApplied                      // The constructor used the declared default.
	PresenceAssigned                            // Set replaced the value after construction.
)

// PresenceMap maps field names to Presence flags.
type PresenceMap map[string]Presence

// Has reports whether field carries every bit of p.
func (pm PresenceMap) Has(field string, p Presence) bool {
	return pm[field]&p == p
}

// Defaulted lists the fields that took their declared default, in the order
// of names.
func (pm PresenceMap) Defaulted(names []string) []string {
	var out []string
	for _, n := range names {
		if pm.Has(n, PresenceDefaultApplied) {
			out = append(out, n)
		}
	}
	return out
}

func (p Presence) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	if p&PresenceSupplied != 0 {
		parts = append(parts, "supplied")
	}
	if p&PresenceDefaultApplied != 0 {
		parts = append(parts, "default")
	}
	if p&PresenceAssigned != 0 {
		parts = append(parts, "assigned")
	}
	return strings.Join(parts, "|")
}
