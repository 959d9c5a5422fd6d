// Package builder assembles the option document of a chart.
//
// A [Builder] accumulates title, axes, datasets and series, then [Builder.Build] hands the
// document over to a [render.Chart]. Methods chain:
//
//	chart, err := builder.New[string, float64]().
//		Title("Throughput").
//		XAxisLabel("day").
//		AddSeries("requests", model.SeriesBar, model.Values[string](12, 15, 9)).
//		Build(render.Pixels(800), render.Pixels(600))
//
// Errors are sticky: the first failing call is recorded, leaves the document untouched,
// and turns every subsequent call into a no-op. The error is returned by [Builder.Build].
//
// Regression and clustering transforms are only available on a [ValueBuilder], when both axes hold values.
package builder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fredbi/echartgen/pkg/model"
	"github.com/fredbi/echartgen/pkg/render"
)

var (
	// ErrFinalized is returned when a builder is used after [Builder.Build].
	ErrFinalized = errors.New("builder is finalized")

	// ErrInvalidTransform is returned when a dataset transform cannot be built from its parameters.
	ErrInvalidTransform = errors.New("invalid dataset transform")
)

const (
	dataSuffix       = " (data)"
	regressionSuffix = " (regression)"

	scatterSymbolSize = 8
	legendMargin      = 20
)

// Builder assembles the option document of a chart with x values of type X and y values of type Y.
//
// A [Builder] is not safe for concurrent use.
type Builder[X, Y any] struct {
	options

	opts  *model.Options[X, Y]
	err   error
	built bool
}

// New builder with unnamed axes.
func New[X, Y any](opts ...Option) *Builder[X, Y] {
	return &Builder[X, Y]{
		options: optionsWithDefaults(opts),
		opts:    model.New[X, Y](),
	}
}

// NewWithAxes builds a [Builder] with preconfigured axes.
func NewWithAxes[X, Y any](x model.Axis[X], y model.Axis[Y], opts ...Option) *Builder[X, Y] {
	b := New[X, Y](opts...)
	b.opts.XAxis = x
	b.opts.YAxis = y

	return b
}

// Err returns the first error recorded by the builder.
func (b *Builder[X, Y]) Err() error {
	return b.err
}

// DatasetCount is the number of datasets added so far.
func (b *Builder[X, Y]) DatasetCount() int {
	if b.opts == nil {
		return 0
	}

	return len(b.opts.Dataset)
}

// SeriesCount is the number of series added so far.
func (b *Builder[X, Y]) SeriesCount() int {
	if b.opts == nil {
		return 0
	}

	return len(b.opts.Series)
}

// Title sets the text of the title, centered.
func (b *Builder[X, Y]) Title(text string) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	t := b.title()
	t.Text = text
	t.Left = model.Ref(model.At(model.Center))

	return b
}

// Subtitle sets the subtext of the title. An empty title is created if needed.
func (b *Builder[X, Y]) Subtitle(text string) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.title().Subtext = text

	return b
}

// SetTitle replaces the title.
func (b *Builder[X, Y]) SetTitle(title model.Title) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.Title = &title

	return b
}

func (b *Builder[X, Y]) title() *model.Title {
	if b.opts.Title == nil {
		b.opts.Title = &model.Title{}
	}

	return b.opts.Title
}

// XAxisLabel sets the name of the x axis.
func (b *Builder[X, Y]) XAxisLabel(name string) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.XAxis.Name = name

	return b
}

// YAxisLabel sets the name of the y axis.
func (b *Builder[X, Y]) YAxisLabel(name string) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.YAxis.Name = name

	return b
}

// XAxis replaces the x axis.
func (b *Builder[X, Y]) XAxis(a model.Axis[X]) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.XAxis = a

	return b
}

// YAxis replaces the y axis.
func (b *Builder[X, Y]) YAxis(a model.Axis[Y]) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.YAxis = a

	return b
}

// XLogScale switches the x axis to a logarithmic scale.
//
// It records [axis.ErrUnsupportedAxisKind] if X is not a value type.
func (b *Builder[X, Y]) XLogScale() *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	if err := b.opts.XAxis.SetLogScale(b.registry); err != nil {
		b.fail(fmt.Errorf("x axis: %w", err))
	}

	return b
}

// YLogScale switches the y axis to a logarithmic scale.
//
// It records [axis.ErrUnsupportedAxisKind] if Y is not a value type.
func (b *Builder[X, Y]) YLogScale() *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	if err := b.opts.YAxis.SetLogScale(b.registry); err != nil {
		b.fail(fmt.Errorf("y axis: %w", err))
	}

	return b
}

// Grid replaces the drawing area settings.
func (b *Builder[X, Y]) Grid(g model.Grid) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.Grid = &g

	return b
}

// Tooltip replaces the tooltip. A nil tooltip removes it.
func (b *Builder[X, Y]) Tooltip(t *model.Tooltip) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.Tooltip = t

	return b
}

// EnableLegend shows a vertical legend on the right of the chart, and reserves room for it.
//
// An existing legend is moved, other settings are kept. Calling EnableLegend again has no further effect.
func (b *Builder[X, Y]) EnableLegend() *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	if b.opts.Legend == nil {
		b.opts.Legend = &model.Legend{}
	}

	legend := b.opts.Legend
	legend.Orient = model.OrientVertical
	legend.Right = model.Ref(model.Percent(0))
	legend.Top = model.Ref(model.Percent(legendMargin))
	legend.Bottom = model.Ref(model.Percent(legendMargin))

	if b.opts.Grid == nil {
		b.opts.Grid = &model.Grid{}
	}

	b.opts.Grid.Right = model.Ref(model.Percent(legendMargin))

	return b
}

// Extra sets an additional top-level property of the option document.
func (b *Builder[X, Y]) Extra(key string, value any) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.opts.Extra = b.opts.Extra.With(key, value)

	return b
}

// AddDataset appends a dataset and returns its index.
//
// Transform datasets must refer to a dataset added before. It returns -1 if the builder has failed.
func (b *Builder[X, Y]) AddDataset(ds model.Dataset[X, Y]) int {
	if !b.mutable() {
		return -1
	}

	if upstream, ok := ds.Upstream(); ok {
		if err := b.checkUpstream(upstream); err != nil {
			b.fail(err)

			return -1
		}
	}

	return b.appendDataset(ds)
}

// AddSource appends a dataset of (x, y) rows and returns its index.
func (b *Builder[X, Y]) AddSource(rows ...model.Pair[X, Y]) int {
	return b.AddDataset(model.Source(rows...))
}

// AddLabelledSource appends a dataset of (x, y, label) rows and returns its index.
func (b *Builder[X, Y]) AddLabelledSource(rows ...model.Labelled[X, Y]) int {
	return b.AddDataset(model.LabelledSource(rows...))
}

// AddSortDataset appends a dataset sorting the dataset at index source on a dimension,
// and returns its index.
func (b *Builder[X, Y]) AddSortDataset(source, dimension int, order model.SortOrder) int {
	if !b.mutable() {
		return -1
	}

	switch order {
	case "", model.SortAsc, model.SortDesc:
	default:
		b.fail(fmt.Errorf("sort order %q: %w", order, ErrInvalidTransform))

		return -1
	}

	if dimension < 0 || dimension >= b.width(source) {
		b.fail(fmt.Errorf("sort dimension %d of dataset %d: %w", dimension, source, ErrInvalidTransform))

		return -1
	}

	return b.AddDataset(model.FromDataset[X, Y](source, model.SortConfig{Dimension: dimension, Order: order}))
}

// AddDatasetVisualisation appends a series drawing the dataset at index.
//
// A labelled source shows its labels in the tooltip.
// When no dataset exists at index, no series is added.
func (b *Builder[X, Y]) AddDatasetVisualisation(label string, kind model.SeriesType, index int) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	if index < 0 || index >= len(b.opts.Dataset) {
		b.l.Warn("no dataset to visualize: series skipped",
			slog.String("series", label),
			slog.Int("dataset_index", index),
			slog.Int("datasets", len(b.opts.Dataset)),
		)

		return b
	}

	series := model.Series[X, Y]{
		Type:   kind,
		Name:   label,
		Smooth: model.Bool(true),
		Data:   model.DatasetIndex[X, Y](index),
	}

	if b.opts.Dataset[index].Kind() == model.DatasetLabelledSource {
		series.Encode = model.LabelledEncode()
	}

	b.appendSeries(series)

	return b
}

// AddSeries appends a series with inline data.
func (b *Builder[X, Y]) AddSeries(label string, kind model.SeriesType, data model.SeriesData[X, Y]) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.appendSeries(model.Series[X, Y]{
		Type: kind,
		Name: label,
		Data: data,
	})

	return b
}

// AddSeriesDirect appends a series as is.
func (b *Builder[X, Y]) AddSeriesDirect(series model.Series[X, Y]) *Builder[X, Y] {
	if !b.mutable() {
		return b
	}

	b.appendSeries(series)

	return b
}

// Build hands the option document over to a [render.Chart], with a fresh identifier.
//
// The builder is finalized: any later call fails with [ErrFinalized].
func (b *Builder[X, Y]) Build(width, height render.Size) (*render.Chart[X, Y], error) {
	if b.built {
		return nil, ErrFinalized
	}

	if b.err != nil {
		return nil, b.err
	}

	id := b.ids()
	if id == "" {
		return nil, errors.New("chart identifier generator returned an empty identifier")
	}

	chart := render.NewChart(id, width, height, b.opts, b.registry)
	b.opts = nil
	b.built = true

	b.l.Debug("chart built",
		slog.String("chart_id", id),
		slog.Int("datasets", len(chart.Options.Dataset)),
		slog.Int("series", len(chart.Options.Series)),
	)

	return chart, nil
}

// mutable tells whether the builder accepts changes, and records [ErrFinalized] if it is finalized.
func (b *Builder[X, Y]) mutable() bool {
	if b.err != nil {
		return false
	}

	if b.built {
		b.err = ErrFinalized

		return false
	}

	return true
}

func (b *Builder[X, Y]) fail(err error) {
	if b.err == nil {
		b.err = err
		b.l.Debug("builder failed", slog.String("error", err.Error()))
	}
}

func (b *Builder[X, Y]) appendDataset(ds model.Dataset[X, Y]) int {
	index := len(b.opts.Dataset)
	b.opts.Dataset = append(b.opts.Dataset, ds)

	return index
}

func (b *Builder[X, Y]) appendSeries(s model.Series[X, Y]) {
	b.opts.Series = append(b.opts.Series, s)
}

func (b *Builder[X, Y]) checkUpstream(upstream int) error {
	if upstream < 0 || upstream >= len(b.opts.Dataset) {
		return fmt.Errorf("transform from dataset %d, with %d datasets: %w", upstream, len(b.opts.Dataset), ErrInvalidTransform)
	}

	return nil
}

// width is the number of dimensions of the rows of the dataset at index, or 0 if there is no such dataset.
func (b *Builder[X, Y]) width(index int) int {
	const (
		pairWidth     = 2
		labelledWidth = 3
	)

	if index < 0 || index >= len(b.opts.Dataset) {
		return 0
	}

	ds := b.opts.Dataset[index]
	switch ds.Kind() {
	case model.DatasetLabelledSource:
		return labelledWidth
	case model.DatasetTransform:
		upstream, _ := ds.Upstream()
		if upstream >= index {
			return 0
		}

		w := b.width(upstream)
		for _, t := range ds.Transforms() {
			switch t.(type) {
			case model.RegressionConfig:
				w = pairWidth
			case model.ClusteringConfig:
				w++
			}
		}

		return w
	default:
		return pairWidth
	}
}
