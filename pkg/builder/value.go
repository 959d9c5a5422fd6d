package builder

import (
	"fmt"

	"github.com/fredbi/echartgen/pkg/axis"
	"github.com/fredbi/echartgen/pkg/model"
)

// ValueBuilder is a [Builder] for charts with values on both axes.
//
// It adds the ecStat transforms which only make sense on numbers: regression and clustering.
//
// Obtain a [ValueBuilder] with [NewValue] or [Value] for built-in numeric types, or with [CheckValue]
// for other types classified as values.
type ValueBuilder[X, Y any] struct {
	*Builder[X, Y]
}

// NewValue builds a [ValueBuilder] for built-in numeric types.
func NewValue[X, Y axis.Number](opts ...Option) *ValueBuilder[X, Y] {
	return &ValueBuilder[X, Y]{Builder: New[X, Y](opts...)}
}

// Value extends a [Builder] on built-in numeric types.
func Value[X, Y axis.Number](b *Builder[X, Y]) *ValueBuilder[X, Y] {
	return &ValueBuilder[X, Y]{Builder: b}
}

// CheckValue extends a [Builder] if both its axes are classified as values in the builder's registry.
//
// It fails with an [*axis.UnsupportedAxisKindError] otherwise. The builder is left untouched.
func CheckValue[X, Y any](b *Builder[X, Y]) (*ValueBuilder[X, Y], error) {
	if err := checkValueAxes[X, Y](b.registry, "value transforms"); err != nil {
		return nil, err
	}

	return &ValueBuilder[X, Y]{Builder: b}, nil
}

func checkValueAxes[X, Y any](r *axis.Registry, op string) error {
	kind, err := axis.KindOf[X](r)
	if err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if kind != axis.KindValue {
		return axis.NewUnsupportedAxisKindError(op, "x", kind)
	}

	kind, err = axis.KindOf[Y](r)
	if err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	if kind != axis.KindValue {
		return axis.NewUnsupportedAxisKindError(op, "y", kind)
	}

	return nil
}

// valueOp tells whether a value transform may be added.
//
// A registry may classify a built-in numeric type otherwise, so the axes are checked again.
func (v *ValueBuilder[X, Y]) valueOp(op string) bool {
	if !v.mutable() {
		return false
	}

	if err := checkValueAxes[X, Y](v.registry, op); err != nil {
		v.fail(err)

		return false
	}

	return true
}

func regressionConfig(method model.RegressionMethod, order int) (model.RegressionConfig, error) {
	if !method.IsValid() {
		return model.RegressionConfig{}, fmt.Errorf("regression method %q: %w", method, ErrInvalidTransform)
	}

	cfg := model.RegressionConfig{Method: method}
	if method == model.RegressionPolynomial {
		if order < 0 {
			return model.RegressionConfig{}, fmt.Errorf("polynomial order %d: %w", order, ErrInvalidTransform)
		}

		cfg.Order = order
	}

	return cfg, nil
}

// AddRegressionDataset appends a dataset fitting a regression on the dataset at index source,
// and returns its index.
//
// The order is only used by the polynomial method. An order of 0 leaves the default of ecStat.
func (v *ValueBuilder[X, Y]) AddRegressionDataset(source int, method model.RegressionMethod, order int) int {
	if !v.valueOp("regression") {
		return -1
	}

	cfg, err := regressionConfig(method, order)
	if err != nil {
		v.fail(err)

		return -1
	}

	return v.AddDataset(model.FromDataset[X, Y](source, cfg))
}

// AddLinearRegressionDataset appends a linear regression of the dataset at index source.
func (v *ValueBuilder[X, Y]) AddLinearRegressionDataset(source int) int {
	return v.AddRegressionDataset(source, model.RegressionLinear, 0)
}

// AddPolynomialRegressionDataset appends a polynomial regression of the dataset at index source.
//
// The order must be at least 1.
func (v *ValueBuilder[X, Y]) AddPolynomialRegressionDataset(source, order int) int {
	if order < 1 {
		if v.mutable() {
			v.fail(fmt.Errorf("polynomial order %d: %w", order, ErrInvalidTransform))
		}

		return -1
	}

	return v.AddRegressionDataset(source, model.RegressionPolynomial, order)
}

// AddExponentialRegressionDataset appends an exponential regression of the dataset at index source.
func (v *ValueBuilder[X, Y]) AddExponentialRegressionDataset(source int) int {
	return v.AddRegressionDataset(source, model.RegressionExponential, 0)
}

// AddLogarithmicRegressionDataset appends a logarithmic regression of the dataset at index source.
func (v *ValueBuilder[X, Y]) AddLogarithmicRegressionDataset(source int) int {
	return v.AddRegressionDataset(source, model.RegressionLogarithmic, 0)
}

// AddRegressionSeries draws data points with their regression curve.
//
// It appends, in order: a dataset with the data, a regression dataset derived from it,
// a scatter series named "<label> (data)" and a smooth line series named "<label> (regression)".
func (v *ValueBuilder[X, Y]) AddRegressionSeries(label string, data model.Dataset[X, Y], method model.RegressionMethod, order int) *ValueBuilder[X, Y] {
	if !v.valueOp("regression") {
		return v
	}

	cfg, err := regressionConfig(method, order)
	if err != nil {
		v.fail(err)

		return v
	}

	if upstream, ok := data.Upstream(); ok {
		if err := v.checkUpstream(upstream); err != nil {
			v.fail(err)

			return v
		}
	}

	source := v.appendDataset(data)
	transform := v.appendDataset(model.FromDataset[X, Y](source, cfg))

	scatter := model.Series[X, Y]{
		Type:       model.SeriesScatter,
		Name:       label + dataSuffix,
		Data:       model.DatasetIndex[X, Y](source),
		Symbol:     model.SymbolCircle,
		SymbolSize: model.Float(scatterSymbolSize),
	}
	if data.Kind() == model.DatasetLabelledSource {
		scatter.Encode = model.LabelledEncode()
	}

	v.appendSeries(scatter)
	v.appendSeries(model.Series[X, Y]{
		Type:   model.SeriesLine,
		Name:   label + regressionSuffix,
		Smooth: model.Bool(true),
		Data:   model.DatasetIndex[X, Y](transform),
		Symbol: model.SymbolNone,
	})

	return v
}

// AddLinearRegressionSeries draws data points with a linear regression.
func (v *ValueBuilder[X, Y]) AddLinearRegressionSeries(label string, data model.Dataset[X, Y]) *ValueBuilder[X, Y] {
	return v.AddRegressionSeries(label, data, model.RegressionLinear, 0)
}

// AddPolynomialRegressionSeries draws data points with a polynomial regression.
//
// The order must be at least 1.
func (v *ValueBuilder[X, Y]) AddPolynomialRegressionSeries(label string, data model.Dataset[X, Y], order int) *ValueBuilder[X, Y] {
	if order < 1 {
		if v.mutable() {
			v.fail(fmt.Errorf("polynomial order %d: %w", order, ErrInvalidTransform))
		}

		return v
	}

	return v.AddRegressionSeries(label, data, model.RegressionPolynomial, order)
}

// AddExponentialRegressionSeries draws data points with an exponential regression.
func (v *ValueBuilder[X, Y]) AddExponentialRegressionSeries(label string, data model.Dataset[X, Y]) *ValueBuilder[X, Y] {
	return v.AddRegressionSeries(label, data, model.RegressionExponential, 0)
}

// AddLogarithmicRegressionSeries draws data points with a logarithmic regression.
func (v *ValueBuilder[X, Y]) AddLogarithmicRegressionSeries(label string, data model.Dataset[X, Y]) *ValueBuilder[X, Y] {
	return v.AddRegressionSeries(label, data, model.RegressionLogarithmic, 0)
}

// AddClusteringDataset appends a dataset grouping the points of the dataset at index source
// into clusterCount clusters, and returns its index.
//
// Distances are computed on x and y. The cluster index of each point is appended as a new dimension.
func (v *ValueBuilder[X, Y]) AddClusteringDataset(source, clusterCount int) int {
	if !v.valueOp("clustering") {
		return -1
	}

	if clusterCount < 2 {
		v.fail(fmt.Errorf("%d clusters: %w", clusterCount, ErrInvalidTransform))

		return -1
	}

	width := v.width(source)
	if width == 0 {
		v.fail(fmt.Errorf("clustering dataset %d, with %d datasets: %w", source, v.DatasetCount(), ErrInvalidTransform))

		return -1
	}

	return v.AddDataset(model.FromDataset[X, Y](source, model.ClusteringConfig{
		ClusterCount:                clusterCount,
		OutputClusterIndexDimension: width,
		Dimensions:                  []int{0, 1},
	}))
}
