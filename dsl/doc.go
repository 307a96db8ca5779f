// Package dsl provides a fluent builder for datacls record types.
//
// Overview
//   - Record(name) starts a declaration; Field(name, hint) appends a field in order.
//   - Default(v) / DefaultFunc(fn) give the last field a default value or factory.
//   - PostInit(fn) declares the post-construction hook.
//   - Options(...) / Frozen() record augmentation switches.
//   - Build() returns the bare type; Augment()/MustAugment() also augment it.
//
// Hints
//   - String()/Int()/Float()/Bool()/Time()/Any() and Of[T]() carry a Go type.
//   - Named(name) carries only a name. Hints are metadata; values are never checked.
//
// Example
//
//	user := dsl.Record("TestUser").
//	    Field("Name", dsl.String()).
//	    Field("Age", dsl.Int()).Default(23).
//	    PostInit(func(u *datacls.Instance) error { return nil }).
//	    Frozen().
//	    MustAugment()
//
//	u, _ := user.New("Antonio")
//	fmt.Println(u) // TestUser(Name = Antonio, Age = 23)
package dsl
