package model

import (
	"errors"
	"fmt"

	"github.com/fredbi/echartgen/pkg/axis"
)

// Transform is a dataset transform: it derives a dataset from another one.
//
// Implementations are [RegressionConfig], [ClusteringConfig] and [SortConfig].
type Transform interface {
	TransformType() TransformType
	config(path string) (map[string]any, error)
}

var (
	errInvalidMethod   = errors.New("invalid regression method")
	errInvalidClusters = errors.New("clustering requires at least 2 clusters")
	errInvalidOrder    = errors.New("invalid sort order")
)

// RegressionConfig configures the ecStat regression transform.
//
// Order only applies to the polynomial method and is emitted only when positive.
type RegressionConfig struct {
	Method RegressionMethod
	Order  int
	Extra  Extra
}

func (RegressionConfig) TransformType() TransformType {
	return TransformRegression
}

func (c RegressionConfig) config(path string) (map[string]any, error) {
	obj := newObject(c.Extra)
	if c.Method != "" {
		if !c.Method.IsValid() {
			return nil, axis.NewSerializationError(field(path, "method"), fmt.Errorf("%q: %w", c.Method, errInvalidMethod))
		}

		obj["method"] = string(c.Method)
	}

	if c.Method == RegressionPolynomial && c.Order > 0 {
		obj["order"] = c.Order
	}

	return obj, nil
}

// ClusteringConfig configures the ecStat clustering transform.
//
// The transform appends the cluster index of each point as dimension OutputClusterIndexDimension.
type ClusteringConfig struct {
	ClusterCount                int
	OutputClusterIndexDimension int
	Dimensions                  []int // dimensions used to compute distances, all by default
	Extra                       Extra
}

func (ClusteringConfig) TransformType() TransformType {
	return TransformClustering
}

func (c ClusteringConfig) config(path string) (map[string]any, error) {
	if c.ClusterCount < 2 {
		return nil, axis.NewSerializationError(field(path, "clusterCount"), fmt.Errorf("%d: %w", c.ClusterCount, errInvalidClusters))
	}

	obj := newObject(c.Extra)
	obj["clusterCount"] = c.ClusterCount
	obj["outputType"] = "single"
	obj["outputClusterIndexDimension"] = c.OutputClusterIndexDimension
	if len(c.Dimensions) > 0 {
		obj["dimensions"] = c.Dimensions
	}

	return obj, nil
}

// SortConfig configures the built-in sort transform.
//
// The default order is ascending.
type SortConfig struct {
	Dimension int
	Order     SortOrder
	Extra     Extra
}

func (SortConfig) TransformType() TransformType {
	return TransformSort
}

func (c SortConfig) config(path string) (map[string]any, error) {
	order := c.Order
	switch order {
	case "":
		order = SortAsc
	case SortAsc, SortDesc:
	default:
		return nil, axis.NewSerializationError(field(path, "order"), fmt.Errorf("%q: %w", order, errInvalidOrder))
	}

	obj := newObject(c.Extra)
	obj["dimension"] = c.Dimension
	obj["order"] = string(order)

	return obj, nil
}

func transformDocument(t Transform, path string) (map[string]any, error) {
	cfg, err := t.config(field(path, "config"))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"type":   string(t.TransformType()),
		"config": cfg,
	}, nil
}
