package chart

import "log/slog"

// Theme constants from go-echarts.
const (
	ThemeRoma = "roma"
)

const (
	defaultWidth  = "900px"
	defaultHeight = "500px"
)

// Option configures the rendering of charts with go-echarts.
type Option func(*options)

type options struct {
	Theme string
	l     *slog.Logger
}

// WithTheme sets the color theme.
func WithTheme(theme string) Option {
	return func(o *options) {
		if theme == "" {
			return
		}

		o.Theme = theme
	}
}

// WithLogger sets the logger.
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
		Theme: ThemeRoma,
		l:     slog.Default().With(slog.String("module", "chart")),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}
