package builder

import (
	"log/slog"

	"github.com/fredbi/echartgen/pkg/axis"
	"github.com/fredbi/echartgen/pkg/render"
)

// Option configures a [Builder].
type Option func(*options)

type options struct {
	registry *axis.Registry
	ids      render.IDGenerator
	l        *slog.Logger
}

func optionsWithDefaults(opts []Option) options {
	o := options{
		registry: axis.Default(),
		ids:      render.RandomIDs(),
		l:        slog.Default().With(slog.String("module", "builder")),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithRegistry sets the axis registry used to classify and serialize host types.
//
// Defaults to [axis.Default].
func WithRegistry(r *axis.Registry) Option {
	return func(o *options) {
		if r == nil {
			return
		}

		o.registry = r
	}
}

// WithIDGenerator sets the generator of chart identifiers.
//
// Defaults to random UUIDs.
func WithIDGenerator(ids render.IDGenerator) Option {
	return func(o *options) {
		if ids == nil {
			return
		}

		o.ids = ids
	}
}

// WithLogger sets the logger of the builder.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			return
		}

		o.l = l
	}
}
