// Package model exposes the data model of an ECharts option document.
//
// The option document of a chart with x values of type X and y values of type Y is
// an [Options] value. Axis types are derived from the axis classification of X and Y
// (see package axis), and every host value is serialized by the strategy of its type.
//
// Optional components are pointers or empty values, and are omitted from the document when absent.
package model

import (
	"encoding/json"
	"fmt"

	"github.com/fredbi/echartgen/pkg/axis"
)

// Options is the option document of a cartesian chart.
type Options[X, Y any] struct {
	Title   *Title
	Grid    *Grid
	Tooltip *Tooltip
	Legend  *Legend
	Dataset []Dataset[X, Y]
	XAxis   Axis[X]
	YAxis   Axis[Y]
	Series  []Series[X, Y]
	Extra   Extra
}

// New option document, with the default tooltip.
func New[X, Y any]() *Options[X, Y] {
	return &Options[X, Y]{
		Tooltip: DefaultTooltip(),
		Series:  make([]Series[X, Y], 0),
	}
}

// Document builds the wire representation of the options as nested maps and slices,
// ready to be marshaled as JSON.
//
// A nil registry stands for [axis.Default].
func (o *Options[X, Y]) Document(r *axis.Registry) (map[string]any, error) {
	c, err := resolveCodecs[X, Y](r)
	if err != nil {
		return nil, err
	}

	doc := newObject(o.Extra)

	if o.Title != nil {
		doc["title"] = o.Title.document()
	}

	if o.Grid != nil {
		doc["grid"] = o.Grid.document()
	}

	if o.Tooltip != nil {
		doc["tooltip"] = o.Tooltip.document()
	}

	if o.Legend != nil {
		doc["legend"] = o.Legend.document()
	}

	if len(o.Dataset) > 0 {
		datasets := make([]any, 0, len(o.Dataset))
		for i := range o.Dataset {
			ds, err := o.Dataset[i].document(c, index("dataset", i))
			if err != nil {
				return nil, err
			}
			datasets = append(datasets, ds)
		}
		doc["dataset"] = datasets
	}

	xAxis, err := o.XAxis.document(c.x, "xAxis")
	if err != nil {
		return nil, err
	}
	doc["xAxis"] = xAxis

	yAxis, err := o.YAxis.document(c.y, "yAxis")
	if err != nil {
		return nil, err
	}
	doc["yAxis"] = yAxis

	if len(o.Series) > 0 {
		series := make([]any, 0, len(o.Series))
		for i := range o.Series {
			s, err := o.Series[i].document(c, index("series", i))
			if err != nil {
				return nil, err
			}
			series = append(series, s)
		}
		doc["series"] = series
	}

	return doc, nil
}

// Encode the options as JSON, with the axis classification of a registry.
//
// A nil registry stands for [axis.Default].
func (o *Options[X, Y]) Encode(r *axis.Registry) ([]byte, error) {
	doc, err := o.Document(r)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding option document: %w", err)
	}

	return b, nil
}

// MarshalJSON encodes the options with the default axis registry.
func (o *Options[X, Y]) MarshalJSON() ([]byte, error) {
	return o.Encode(nil)
}

// SeriesNames returns the names of the series, in order.
func (o *Options[X, Y]) SeriesNames() []string {
	names := make([]string, 0, len(o.Series))
	for _, s := range o.Series {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}

	return names
}
