package dataload

import "log/slog"

// Option configures a [Loader].
type Option func(*options)

type options struct {
	baseDir string
	l       *slog.Logger
}

// WithBaseDir sets the directory against which relative data files are resolved.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithLogger sets the logger of the [Loader].
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
		l: slog.Default().With(slog.String("module", "dataload")),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}
