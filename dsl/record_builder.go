package dsl

import (
	datacls "github.com/reoring/datacls"
)

type recordBuilder struct {
	name     string
	fields   []datacls.FieldSpec
	postInit func(*datacls.Instance) error
	opts     []datacls.Option
}

type fieldStep struct {
	b   *recordBuilder
	idx int
}

// Record creates a new record builder. Fields keep the order they are added in.
func Record(name string) *recordBuilder {
	return &recordBuilder{name: name}
}

// Field declares a field without a default.
func (b *recordBuilder) Field(name string, hint datacls.TypeHint) *fieldStep {
	b.fields = append(b.fields, datacls.Field(name, hint))
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

// Default sets a default for the current field.
func (f *fieldStep) Default(v any) *recordBuilder {
	f.b.fields[f.idx] = f.b.fields[f.idx].WithDefault(v)
	return f.b
}

// DefaultFunc sets a default factory for the current field; it runs on every
// construction that omits the field.
func (f *fieldStep) DefaultFunc(fn func() any) *recordBuilder {
	f.b.fields[f.idx] = f.b.fields[f.idx].WithFactory(fn)
	return f.b
}

// Forward helpers to keep chaining ergonomics.
func (f *fieldStep) Field(name string, hint datacls.TypeHint) *fieldStep {
	return f.b.Field(name, hint)
}
func (f *fieldStep) PostInit(fn func(*datacls.Instance) error) *recordBuilder {
	return f.b.PostInit(fn)
}
func (f *fieldStep) Options(opts ...datacls.Option) *recordBuilder { return f.b.Options(opts...) }
func (f *fieldStep) Frozen() *recordBuilder                        { return f.b.Frozen() }
func (f *fieldStep) Build() (*datacls.Type, error)                 { return f.b.Build() }
func (f *fieldStep) Augment() (*datacls.Type, error)               { return f.b.Augment() }
func (f *fieldStep) MustAugment() *datacls.Type                    { return f.b.MustAugment() }

// PostInit declares the post-construction hook.
func (b *recordBuilder) PostInit(fn func(*datacls.Instance) error) *recordBuilder {
	b.postInit = fn
	return b
}

// Options records augmentation options applied by Augment.
func (b *recordBuilder) Options(opts ...datacls.Option) *recordBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// Frozen requests frozen instances.
func (b *recordBuilder) Frozen() *recordBuilder { return b.Options(datacls.Frozen()) }

// Build returns the bare, not yet augmented type.
func (b *recordBuilder) Build() (*datacls.Type, error) {
	t, err := datacls.Define(b.name, b.fields...)
	if err != nil {
		return nil, err
	}
	if b.postInit != nil {
		t.WithPostInit(b.postInit)
	}
	return t, nil
}

// Augment builds the type and augments it with the recorded options.
func (b *recordBuilder) Augment() (*datacls.Type, error) {
	t, err := b.Build()
	if err != nil {
		return nil, err
	}
	return datacls.Augment(t, b.opts...)
}

// MustAugment is like Augment but panics on error.
func (b *recordBuilder) MustAugment() *datacls.Type {
	t, err := b.Augment()
	if err != nil {
		panic(err)
	}
	return t
}
