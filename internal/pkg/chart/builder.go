package chart

import (
	"log/slog"

	"github.com/fredbi/echartgen/pkg/render"
)

// Builder converts assembled charts into a go-echarts [Page].
type Builder struct {
	options

	opts []Option
}

// New chart [Builder]. The options apply to every chart.
//
// The builder embeds a [slog.Logger] to croak about warnings and issues.
func New(opts ...Option) *Builder {
	return &Builder{
		options: optionsWithDefaults(opts),
		opts:    opts,
	}
}

// BuildPage creates a page with all charts.
//
// Charts are validated when the page is built, so that a broken document fails early.
func (b *Builder) BuildPage(title string, sources ...render.Renderable) (*Page, error) {
	page := NewPage(title)

	for _, source := range sources {
		chart, err := NewChart(source, b.opts...)
		if err != nil {
			return nil, err
		}

		if _, err := chart.Build(); err != nil {
			return nil, err
		}

		page.AddChart(chart)
		b.l.Info("added chart", slog.String("chart_id", chart.ID), slog.String("title", chart.Title()))
	}

	b.l.Info("added charts", slog.Int("charts", len(page.Charts)))

	return page, nil
}
