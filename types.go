package datacls

import (
	"io"
	"log/slog"
)

// Options are the augmentation switches. The four behaviors are independent.
type Options struct {
	Init   bool // generate the constructor
	Repr   bool // generate the field rendering
	Eq     bool // generate structural equality
	Frozen bool // reject assignment after construction
	// Logger receives one Debug record per installed behavior. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions enables the constructor, rendering and equality, and leaves
// instances mutable.
func DefaultOptions() Options {
	return Options{Init: true, Repr: true, Eq: true}
}

// Option adjusts Options.
type Option func(*Options)

// WithInit toggles constructor generation.
func WithInit(on bool) Option { return func(o *Options) { o.Init = on } }

// WithRepr toggles rendering generation.
func WithRepr(on bool) Option { return func(o *Options) { o.Repr = on } }

// WithEq toggles equality generation.
func WithEq(on bool) Option { return func(o *Options) { o.Eq = on } }

// WithFrozen toggles immutability.
func WithFrozen(on bool) Option { return func(o *Options) { o.Frozen = on } }

// Frozen is shorthand for WithFrozen(true).
func Frozen() Option { return WithFrozen(true) }

// WithLogger sets the logger used while augmenting.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithOptions replaces every switch with o.
func WithOptions(o Options) Option { return func(dst *Options) { *dst = o } }

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return discardLogger
	}
	return o.Logger
}
