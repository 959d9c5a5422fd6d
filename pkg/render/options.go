package render

import "log/slog"

// PageOption configures a [Page].
type PageOption func(*pageOptions)

type pageOptions struct {
	title           string
	description     string
	assets          []string
	forceTransforms bool
	l               *slog.Logger
}

func pageOptionsWithDefaults(opts []PageOption) pageOptions {
	o := pageOptions{
		assets: []string{EChartsAsset, EcStatAsset},
		l:      slog.Default().With(slog.String("module", "render")),
	}

	for _, apply := range opts {
		apply(&o)
	}

	return o
}

// WithTitle sets the title of the page.
func WithTitle(title string) PageOption {
	return func(o *pageOptions) {
		o.title = title
	}
}

// WithDescription sets a description of the page, in markdown.
func WithDescription(markdown string) PageOption {
	return func(o *pageOptions) {
		o.description = markdown
	}
}

// WithAssets replaces the script assets loaded by the page.
//
// The ECharts library must come first. Defaults to the ECharts and ecStat CDN distributions.
func WithAssets(urls ...string) PageOption {
	return func(o *pageOptions) {
		if len(urls) == 0 {
			return
		}

		o.assets = urls
	}
}

// WithTransforms registers the ecStat transforms even when no chart seems to use them.
func WithTransforms(enabled bool) PageOption {
	return func(o *pageOptions) {
		o.forceTransforms = enabled
	}
}

// WithLogger sets the logger of the page.
func WithLogger(l *slog.Logger) PageOption {
	return func(o *pageOptions) {
		if l == nil {
			return
		}

		o.l = l
	}
}
