package chart

import (
	"errors"
	"fmt"
	"slices"

	"github.com/fredbi/echartgen/internal/pkg/stat"
	"github.com/fredbi/echartgen/pkg/model"
)

var errUnsupportedTransform = errors.New("unsupported transform")

// datasets evaluates the datasets of a document, transforms included.
type datasets struct {
	docs     []datasetDoc
	rows     [][][]any
	done     []bool
	clusters map[int]int // dimension holding the cluster index, by dataset
}

func newDatasets(docs []datasetDoc) *datasets {
	return &datasets{
		docs:     docs,
		rows:     make([][][]any, len(docs)),
		done:     make([]bool, len(docs)),
		clusters: make(map[int]int),
	}
}

// ClusterDimension tells which dimension of an evaluated dataset holds the cluster index, if any.
func (d *datasets) ClusterDimension(index int) (int, bool) {
	dim, ok := d.clusters[index]

	return dim, ok
}

// Rows of the dataset at index.
//
// Transforms only refer to datasets declared before them, so the evaluation always terminates.
func (d *datasets) Rows(index int) ([][]any, error) {
	if index < 0 || index >= len(d.docs) {
		return nil, fmt.Errorf("no dataset %d among %d datasets", index, len(d.docs))
	}

	if d.done[index] {
		return d.rows[index], nil
	}

	doc := d.docs[index]
	rows := doc.Source

	if doc.FromDatasetIndex != nil {
		upstream := *doc.FromDatasetIndex
		if upstream >= index {
			return nil, fmt.Errorf("dataset %d derives from dataset %d declared after it", index, upstream)
		}

		var err error
		rows, err = d.Rows(upstream)
		if err != nil {
			return nil, err
		}

		transforms, err := doc.transforms()
		if err != nil {
			return nil, fmt.Errorf("dataset %d: %w", index, err)
		}

		if dim, ok := d.clusters[upstream]; ok {
			d.clusters[index] = dim
		}

		for _, t := range transforms {
			width := 0
			if len(rows) > 0 {
				width = len(rows[0])
			}

			rows, err = apply(t, rows)
			if err != nil {
				return nil, fmt.Errorf("dataset %d: %w", index, err)
			}

			switch model.TransformType(t.Type) {
			case model.TransformClustering:
				d.clusters[index] = width
			case model.TransformRegression:
				delete(d.clusters, index)
			}
		}
	}

	d.rows[index] = rows
	d.done[index] = true

	return rows, nil
}

func apply(t transformDoc, rows [][]any) ([][]any, error) {
	switch model.TransformType(t.Type) {
	case model.TransformRegression:
		return regression(t.Config, rows)
	case model.TransformClustering:
		return clustering(t.Config, rows)
	case model.TransformSort:
		dimension, _ := intConfig(t.Config, "dimension")
		order, _ := t.Config["order"].(string)

		return stat.Sort(rows, dimension, model.SortOrder(order))
	default:
		return nil, fmt.Errorf("%q: %w", t.Type, errUnsupportedTransform)
	}
}

// regression yields the fitted points, sorted along x.
func regression(cfg map[string]any, rows [][]any) ([][]any, error) {
	method, _ := cfg["method"].(string)
	if method == "" {
		method = string(model.RegressionLinear)
	}
	order, _ := intConfig(cfg, "order")

	xs, err := column(rows, 0)
	if err != nil {
		return nil, err
	}

	ys, err := column(rows, 1)
	if err != nil {
		return nil, err
	}

	curve, err := stat.Fit(model.RegressionMethod(method), order, xs, ys)
	if err != nil {
		return nil, err
	}

	points := stat.Sample(curve, xs)
	fitted := make([][]any, 0, len(points))
	for _, p := range points {
		fitted = append(fitted, []any{p[0], p[1]})
	}

	return fitted, nil
}

// clustering appends the cluster index of each row as a new dimension.
func clustering(cfg map[string]any, rows [][]any) ([][]any, error) {
	k, _ := intConfig(cfg, "clusterCount")

	dimensions := []int{0, 1}
	if raw, ok := cfg["dimensions"].([]any); ok && len(raw) > 0 {
		dimensions = dimensions[:0]
		for _, v := range raw {
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("clustering dimension %v: %w", v, stat.ErrOutOfDomain)
			}
			dimensions = append(dimensions, int(f))
		}
	}

	points := make([][]float64, len(rows))
	for _, dim := range dimensions {
		values, err := column(rows, dim)
		if err != nil {
			return nil, err
		}

		for i, v := range values {
			points[i] = append(points[i], v)
		}
	}

	assignments, err := stat.Cluster(points, k)
	if err != nil {
		return nil, fmt.Errorf("clustering: %w", err)
	}

	clustered := make([][]any, 0, len(rows))
	for i, row := range rows {
		clustered = append(clustered, append(slices.Clone(row), float64(assignments[i])))
	}

	return clustered, nil
}

// column extracts the numbers of a dimension.
func column(rows [][]any, dimension int) ([]float64, error) {
	values := make([]float64, 0, len(rows))
	for i, row := range rows {
		if dimension >= len(row) {
			return nil, fmt.Errorf("row %d has no dimension %d: %w", i, dimension, stat.ErrOutOfDomain)
		}

		f, ok := row[dimension].(float64)
		if !ok {
			return nil, fmt.Errorf("row %d, dimension %d: %v is not a number: %w", i, dimension, row[dimension], stat.ErrOutOfDomain)
		}

		values = append(values, f)
	}

	return values, nil
}

func intConfig(cfg map[string]any, key string) (int, bool) {
	f, ok := cfg[key].(float64)

	return int(f), ok
}
