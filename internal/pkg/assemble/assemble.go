// Package assemble turns the charts of a configuration into rendered charts.
//
// The host types of the axes are chosen from the configured axis types:
// numbers for value and log axes, strings for category axes and [time.Time] for time axes.
package assemble

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fredbi/echartgen/internal/pkg/config"
	"github.com/fredbi/echartgen/internal/pkg/dataload"
	"github.com/fredbi/echartgen/pkg/builder"
	"github.com/fredbi/echartgen/pkg/model"
	"github.com/fredbi/echartgen/pkg/render"
)

// Assembler builds the charts described by a [config.Config], with points from a [dataload.Loader].
type Assembler struct {
	options

	cfg    *config.Config
	loader *dataload.Loader
}

// New [Assembler] for a configuration.
func New(cfg *config.Config, loader *dataload.Loader, opts ...Option) *Assembler {
	return &Assembler{
		options: optionsWithDefaults(opts),
		cfg:     cfg,
		loader:  loader,
	}
}

// Charts builds all the charts of the configuration, in order.
func (a *Assembler) Charts() ([]render.Renderable, error) {
	charts := make([]render.Renderable, 0, len(a.cfg.Charts))

	for _, def := range a.cfg.Charts {
		chart, err := a.Chart(def)
		if err != nil {
			return nil, err
		}

		charts = append(charts, chart)
		a.l.Info("added chart", slog.String("chart_id", def.ID), slog.String("id", chart.ChartID()))
	}

	a.l.Info("added charts", slog.Int("charts", len(charts)))

	return charts, nil
}

// Page builds all the charts on a page.
func (a *Assembler) Page() (*render.Page, error) {
	charts, err := a.Charts()
	if err != nil {
		return nil, err
	}

	page := render.NewPage(
		render.WithTitle(a.cfg.Name),
		render.WithDescription(a.cfg.Description),
		render.WithAssets(a.cfg.Render.Assets...),
	)

	for _, chart := range charts {
		page.AddChart(chart)
	}

	return page, nil
}

// Chart builds a single chart.
func (a *Assembler) Chart(def config.Chart) (render.Renderable, error) {
	var (
		chart render.Renderable
		err   error
	)

	switch def.XAxis.Type {
	case config.AxisValue, config.AxisLog:
		chart, err = build(a, def, dataload.Float)
	case config.AxisCategory:
		chart, err = build(a, def, func(v any) (string, error) {
			return dataload.Text(v), nil
		})
	case config.AxisTime:
		layout := def.XAxis.Layout
		chart, err = build(a, def, func(v any) (time.Time, error) {
			return dataload.Time(v, layout)
		})
	default:
		return nil, fmt.Errorf("chart %q: unsupported x axis type %q", def.ID, def.XAxis.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", def.ID, err)
	}

	return chart, nil
}

func (a *Assembler) builderOptions() []builder.Option {
	return []builder.Option{
		builder.WithRegistry(a.registry),
		builder.WithIDGenerator(a.ids),
		builder.WithLogger(a.l),
	}
}

// build a chart with x values of type X and y values as numbers.
//
// Regression and clustering are only allowed when X is classified as a value.
func build[X any](a *Assembler, def config.Chart, convert func(any) (X, error)) (render.Renderable, error) {
	b := builder.New[X, float64](a.builderOptions()...)

	b.Title(def.Title)

	xAxis := model.NewAxis[X](def.XAxis.Name)
	if def.XAxis.Inverse {
		xAxis.Inverse = model.Bool(true)
	}
	b.XAxis(xAxis)

	yAxis := model.NewAxis[float64](def.YAxis.Name)
	if def.YAxis.Inverse {
		yAxis.Inverse = model.Bool(true)
	}
	b.YAxis(yAxis)

	if def.XAxis.Type == config.AxisLog {
		b.XLogScale()
	}
	if def.YAxis.Type == config.AxisLog {
		b.YLogScale()
	}

	if def.ShowLegend(a.cfg.Render) {
		b.EnableLegend()
	}

	var values *builder.ValueBuilder[X, float64]
	if def.NeedsValueAxes() {
		var err error
		values, err = builder.CheckValue(b)
		if err != nil {
			return nil, err
		}
	}

	for _, s := range def.Series {
		points, err := a.loader.Load(s)
		if err != nil {
			return nil, err
		}

		data, err := dataset(points, convert)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.ID, err)
		}
		labelled := data.Kind() == model.DatasetLabelledSource

		switch {
		case s.Regression != nil:
			values.AddRegressionSeries(s.Title, data, s.Regression.Method, s.Regression.Order)
		case s.Clusters > 0:
			source := b.AddDataset(data)
			visualise(b, s, values.AddClusteringDataset(source, s.Clusters), labelled)
		case s.Sort != nil:
			source := b.AddDataset(data)
			visualise(b, s, b.AddSortDataset(source, s.Sort.Dimension(), s.Sort.Order), labelled)
		default:
			visualise(b, s, b.AddDataset(data), labelled)
		}

		a.l.Debug("added series",
			slog.String("chart_id", def.ID),
			slog.String("series_id", s.ID),
			slog.Int("points", len(points)),
		)
	}

	// the environment is known once the benchmark files are parsed
	if subtitle := a.subtitle(def); subtitle != "" {
		b.Subtitle(subtitle)
	}

	width, height, err := def.Size(a.cfg.Render)
	if err != nil {
		return nil, err
	}

	chart, err := b.Build(width, height)
	if err != nil {
		return nil, err
	}

	return chart, nil
}

// visualise draws the dataset at index.
func visualise[X any](b *builder.Builder[X, float64], s config.SeriesDef, index int, labelled bool) {
	if index < 0 {
		// the builder has failed: the error is reported by Build
		return
	}

	series := model.Series[X, float64]{
		Type: s.Type,
		Name: s.Title,
		Data: model.DatasetIndex[X, float64](index),
	}

	if s.Smooth {
		series.Smooth = model.Bool(true)
	}

	if labelled {
		series.Encode = model.LabelledEncode()
	}

	b.AddSeriesDirect(series)
}

func dataset[X any](points []dataload.Point, convert func(any) (X, error)) (model.Dataset[X, float64], error) {
	if dataload.HasLabels(points) {
		rows := make([]model.Labelled[X, float64], 0, len(points))
		for i, p := range points {
			x, err := convert(p.X)
			if err != nil {
				return model.Dataset[X, float64]{}, fmt.Errorf("point %d: %w", i, err)
			}

			rows = append(rows, model.L(x, p.Y, p.Label))
		}

		return model.LabelledSource(rows...), nil
	}

	rows := make([]model.Pair[X, float64], 0, len(points))
	for i, p := range points {
		x, err := convert(p.X)
		if err != nil {
			return model.Dataset[X, float64]{}, fmt.Errorf("point %d: %w", i, err)
		}

		rows = append(rows, model.P(x, p.Y))
	}

	return model.Source(rows...), nil
}

// subtitle of a chart, defaulting to the benchmark environment when the chart shows benchmarks.
//
// It must be called after the series are loaded.
func (a *Assembler) subtitle(def config.Chart) string {
	if def.Subtitle != "" {
		return def.Subtitle
	}

	for _, s := range def.Series {
		if s.Benchmark == nil {
			continue
		}

		if a.cfg.Environment != "" {
			return a.cfg.Environment
		}

		return a.loader.Environment()
	}

	return ""
}
