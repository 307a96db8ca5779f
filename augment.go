package datacls

import (
	"log/slog"
)

// Augment attaches the generated behaviors to t in place and returns t.
//
// Steps run in a fixed order: field registry, accessors, constructor (with
// the post-construction hook when one is declared), rendering, equality and
// finally the freeze, so that the constructor is built before the setter it
// must not go through is installed. A failing step aborts the augmentation;
// steps that already ran stay installed.
//
// Augmenting again only installs behaviors. Nothing installed earlier is
// removed, so a frozen type stays frozen.
func Augment(t *Type, opts ...Option) (*Type, error) {
	o := buildOptions(opts)
	log := o.logger().With(slog.String("type", t.name))

	t.registry = newRegistry(t.decls)
	log.Debug("registry built", slog.String("step", "fields"), slog.Int("fields", t.registry.Len()))

	if t.setattr == nil {
		t.setattr = assignField
	}

	if o.Init {
		hook := t.postInit != nil
		if err := generateInit(t, hook); err != nil {
			log.Debug("constructor synthesis failed", slog.String("step", "init"), slog.Any("error", err))
			return t, err
		}
		log.Debug("constructor installed", slog.String("step", "init"), slog.String("signature", t.Signature()), slog.Bool("post_init", hook))
	}
	if o.Repr {
		generateRepr(t)
		log.Debug("representation installed", slog.String("step", "repr"))
	}
	if o.Eq {
		generateEq(t)
		log.Debug("equality installed", slog.String("step", "eq"))
	}
	if o.Frozen {
		makeFrozen(t)
		log.Debug("instances frozen", slog.String("step", "freeze"))
	}
	return t, nil
}

// MustAugment is like Augment but panics on error.
func MustAugment(t *Type, opts ...Option) *Type {
	t, err := Augment(t, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Wrap returns the deferred form of Augment: the returned function augments
// whatever type it is later applied to with opts.
func Wrap(opts ...Option) func(*Type) (*Type, error) {
	return func(t *Type) (*Type, error) { return Augment(t, opts...) }
}
