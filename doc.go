// Package datacls augments bare record types with generated behavior.
//
// A record type declares only ordered fields (name, type hint, optional
// default). Augment attaches, once:
//
// - a constructor whose parameters put fields without defaults first
// - a rendering "Name(f1 = v1, f2 = v2)"
// - structural equality over the ordered field-value view
// - a read-only field registry (Fields) and AsOrderedMapping
// - optionally, frozen instances that reject every assignment
//
// Design policy:
// - Keep only public APIs in the root package; put the synthesizer under internal/.
// - Place the builder DSL under dsl/, file loading under declfile/, codecs under codec/, and the CLI under cmd/datacls.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	user := datacls.MustDefine("User",
//	    datacls.Field("Age", datacls.HintOf[int]()).WithDefault(1),
//	    datacls.Field("Name", datacls.HintOf[string]()),
//	)
//	datacls.MustAugment(user, datacls.Frozen())
//
//	u, err := user.New("Antonio")          // User(Age = 1, Name = Antonio)
//	u, err = user.New(datacls.Kw("Name", "Jeyson"), datacls.Kw("Age", 49))
//	m, err := datacls.AsOrderedMapping(u)  // {"Age": 49, "Name": "Jeyson"}
//	err = u.Set("Age", 50)                 // *FrozenError
package datacls
