package assemble

import (
	"log/slog"

	"github.com/fredbi/echartgen/pkg/axis"
	"github.com/fredbi/echartgen/pkg/render"
)

// Option configures an [Assembler].
type Option func(*options)

type options struct {
	registry *axis.Registry
	ids      render.IDGenerator
	l        *slog.Logger
}

// WithRegistry sets the axis registry passed to chart builders.
func WithRegistry(r *axis.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithIDGenerator sets the generator of chart identifiers.
//
// Defaults to random UUIDs.
func WithIDGenerator(ids render.IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithLogger sets the logger of the [Assembler].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			return
		}

		o.l = l
	}
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		l: slog.Default().With(slog.String("module", "assemble")),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}
