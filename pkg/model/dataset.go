package model

import "slices"

// Labelled is a data point carrying a label, shown in the tooltip.
type Labelled[X, Y any] struct {
	X     X
	Y     Y
	Label string
}

// L builds a [Labelled] data point.
func L[X, Y any](x X, y Y, label string) Labelled[X, Y] {
	return Labelled[X, Y]{X: x, Y: y, Label: label}
}

// DatasetKind tells how a [Dataset] gets its rows.
type DatasetKind uint8

// Dataset kinds.
const (
	DatasetSource DatasetKind = iota
	DatasetLabelledSource
	DatasetTransform
)

// Dataset is a table of data points shared by series, or derived from another dataset by transforms.
//
// Use one of [Source], [LabelledSource] or [FromDataset] to build it.
// The zero value is an empty source.
type Dataset[X, Y any] struct {
	kind       DatasetKind
	source     []Pair[X, Y]
	labelled   []Labelled[X, Y]
	from       int
	transforms []Transform

	Extra Extra
}

// Source builds a dataset of (x, y) rows.
func Source[X, Y any](rows ...Pair[X, Y]) Dataset[X, Y] {
	return Dataset[X, Y]{kind: DatasetSource, source: rows}
}

// LabelledSource builds a dataset of (x, y, label) rows.
func LabelledSource[X, Y any](rows ...Labelled[X, Y]) Dataset[X, Y] {
	return Dataset[X, Y]{kind: DatasetLabelledSource, labelled: rows}
}

// FromDataset builds a dataset derived from the dataset at index by a chain of transforms.
func FromDataset[X, Y any](index int, transforms ...Transform) Dataset[X, Y] {
	return Dataset[X, Y]{kind: DatasetTransform, from: index, transforms: transforms}
}

// Kind of dataset.
func (d Dataset[X, Y]) Kind() DatasetKind {
	return d.kind
}

// Rows returns the (x, y) rows of a source.
//
// For a labelled source the labels are dropped. A transform dataset has no rows.
func (d Dataset[X, Y]) Rows() []Pair[X, Y] {
	switch d.kind {
	case DatasetSource:
		return d.source
	case DatasetLabelledSource:
		rows := make([]Pair[X, Y], 0, len(d.labelled))
		for _, r := range d.labelled {
			rows = append(rows, P(r.X, r.Y))
		}

		return rows
	default:
		return nil
	}
}

// LabelledRows returns the rows of a labelled source.
func (d Dataset[X, Y]) LabelledRows() []Labelled[X, Y] {
	if d.kind != DatasetLabelledSource {
		return nil
	}

	return d.labelled
}

// Upstream returns the index of the dataset a transform dataset is derived from.
func (d Dataset[X, Y]) Upstream() (int, bool) {
	return d.from, d.kind == DatasetTransform
}

// Transforms returns a copy of the transform chain.
func (d Dataset[X, Y]) Transforms() []Transform {
	return slices.Clone(d.transforms)
}

func (d *Dataset[X, Y]) document(c codecs[X, Y], path string) (map[string]any, error) {
	obj := newObject(d.Extra)

	switch d.kind {
	case DatasetLabelledSource:
		sourcePath := field(path, "source")
		rows := make([]any, 0, len(d.labelled))
		for i, r := range d.labelled {
			row, err := c.pair(r.X, r.Y, index(sourcePath, i))
			if err != nil {
				return nil, err
			}
			rows = append(rows, append(row, r.Label))
		}
		obj["source"] = rows

	case DatasetTransform:
		obj["fromDatasetIndex"] = d.from

		transformPath := field(path, "transform")
		switch len(d.transforms) {
		case 0:
		case 1:
			t, err := transformDocument(d.transforms[0], transformPath)
			if err != nil {
				return nil, err
			}
			obj["transform"] = t

		default:
			chain := make([]any, 0, len(d.transforms))
			for i, tr := range d.transforms {
				t, err := transformDocument(tr, index(transformPath, i))
				if err != nil {
					return nil, err
				}
				chain = append(chain, t)
			}
			obj["transform"] = chain
		}

	default:
		sourcePath := field(path, "source")
		rows := make([]any, 0, len(d.source))
		for i, r := range d.source {
			row, err := c.pair(r.X, r.Y, index(sourcePath, i))
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		obj["source"] = rows
	}

	return obj, nil
}
