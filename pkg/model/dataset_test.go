package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/fredbi/echartgen/pkg/axis"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func datasetsJSON(t *testing.T, datasets ...Dataset[float64, float64]) string {
	t.Helper()

	o := New[float64, float64]()
	o.Dataset = datasets

	doc, err := o.Document(nil)
	require.NoError(t, err)

	b, err := json.Marshal(doc["dataset"])
	require.NoError(t, err)

	return string(b)
}

func TestDataset(t *testing.T) {
	t.Run("source", func(t *testing.T) {
		assert.JSONEq(t,
			`[{"source": [[1, 2], [3, 4.5]]}]`,
			datasetsJSON(t, Source(P(1.0, 2.0), P(3.0, 4.5))),
		)
	})

	t.Run("empty source", func(t *testing.T) {
		assert.JSONEq(t, `[{"source": []}]`, datasetsJSON(t, Dataset[float64, float64]{}))
	})

	t.Run("labelled source", func(t *testing.T) {
		assert.JSONEq(t,
			`[{"source": [[1, 2, "first"], [3, 4, "second"]]}]`,
			datasetsJSON(t, LabelledSource(L(1.0, 2.0, "first"), L(3.0, 4.0, "second"))),
		)
	})

	t.Run("single transform is an object", func(t *testing.T) {
		assert.JSONEq(t,
			`[{"fromDatasetIndex": 0, "transform": {"type": "ecStat:regression", "config": {"method": "linear"}}}]`,
			datasetsJSON(t, FromDataset[float64, float64](0, RegressionConfig{Method: RegressionLinear})),
		)
	})

	t.Run("transform chain is an array", func(t *testing.T) {
		assert.JSONEq(t,
			`[{"fromDatasetIndex": 1, "transform": [
				{"type": "sort", "config": {"dimension": 0, "order": "asc"}},
				{"type": "ecStat:regression", "config": {"method": "polynomial", "order": 3}}
			]}]`,
			datasetsJSON(t, FromDataset[float64, float64](1,
				SortConfig{},
				RegressionConfig{Method: RegressionPolynomial, Order: 3},
			)),
		)
	})

	t.Run("extra properties", func(t *testing.T) {
		ds := Source(P(1.0, 1.0))
		ds.Extra = Extra{"dimensions": []string{"x", "y"}}

		assert.JSONEq(t, `[{"source": [[1, 1]], "dimensions": ["x", "y"]}]`, datasetsJSON(t, ds))
	})

	t.Run("accessors", func(t *testing.T) {
		ls := LabelledSource(L(1.0, 2.0, "a"))
		assert.Equal(t, DatasetLabelledSource, ls.Kind())
		assert.Equal(t, []Pair[float64, float64]{P(1.0, 2.0)}, ls.Rows())
		assert.Len(t, ls.LabelledRows(), 1)

		_, ok := ls.Upstream()
		assert.False(t, ok)

		tr := FromDataset[float64, float64](2, SortConfig{Order: SortDesc})
		up, ok := tr.Upstream()
		assert.True(t, ok)
		assert.Equal(t, 2, up)
		assert.Empty(t, tr.Rows())
		require.Len(t, tr.Transforms(), 1)
		assert.Equal(t, TransformSort, tr.Transforms()[0].TransformType())
	})
}

func TestRegressionOrder(t *testing.T) {
	tests := []struct {
		name   string
		config RegressionConfig
		want   string
	}{
		{"polynomial with order", RegressionConfig{Method: RegressionPolynomial, Order: 2}, `{"method": "polynomial", "order": 2}`},
		{"polynomial without order", RegressionConfig{Method: RegressionPolynomial}, `{"method": "polynomial"}`},
		{"linear ignores order", RegressionConfig{Method: RegressionLinear, Order: 2}, `{"method": "linear"}`},
		{"exponential ignores order", RegressionConfig{Method: RegressionExponential, Order: 4}, `{"method": "exponential"}`},
		{"logarithmic", RegressionConfig{Method: RegressionLogarithmic}, `{"method": "logarithmic"}`},
		{"default method", RegressionConfig{}, `{}`},
		{"extra", RegressionConfig{Method: RegressionLinear, Extra: Extra{"formulaOn": "end"}}, `{"method": "linear", "formulaOn": "end"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := transformDocument(tt.config, "t")
			require.NoError(t, err)
			assert.Equal(t, "ecStat:regression", doc["type"])

			b, err := json.Marshal(doc["config"])
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestTransformConfig(t *testing.T) {
	t.Run("clustering", func(t *testing.T) {
		doc, err := transformDocument(ClusteringConfig{ClusterCount: 3, OutputClusterIndexDimension: 2}, "t")
		require.NoError(t, err)

		b, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": "ecStat:clustering", "config": {
			"clusterCount": 3, "outputType": "single", "outputClusterIndexDimension": 2
		}}`, string(b))
	})

	t.Run("clustering dimensions", func(t *testing.T) {
		doc, err := transformDocument(ClusteringConfig{ClusterCount: 2, OutputClusterIndexDimension: 3, Dimensions: []int{0, 1}}, "t")
		require.NoError(t, err)

		b, err := json.Marshal(doc["config"])
		require.NoError(t, err)
		assert.JSONEq(t, `{"clusterCount": 2, "outputType": "single", "outputClusterIndexDimension": 3, "dimensions": [0, 1]}`, string(b))
	})

	t.Run("sort", func(t *testing.T) {
		doc, err := transformDocument(SortConfig{Dimension: 1, Order: SortDesc}, "t")
		require.NoError(t, err)

		b, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"type": "sort", "config": {"dimension": 1, "order": "desc"}}`, string(b))
	})

	t.Run("invalid configurations carry their path", func(t *testing.T) {
		for _, tt := range []struct {
			name      string
			transform Transform
			path      string
		}{
			{"too few clusters", ClusteringConfig{ClusterCount: 1}, "dataset[1].transform.config.clusterCount"},
			{"unknown method", RegressionConfig{Method: "quadratic"}, "dataset[1].transform.config.method"},
			{"unknown order", SortConfig{Order: "up"}, "dataset[1].transform.config.order"},
		} {
			t.Run(tt.name, func(t *testing.T) {
				o := New[float64, float64]()
				o.Dataset = append(o.Dataset, Source(P(1.0, 1.0)), FromDataset[float64, float64](0, tt.transform))

				_, err := o.Document(nil)
				require.Error(t, err)

				var target *axis.SerializationError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, tt.path, target.Path)
			})
		}
	})
}

func TestRegressionMethods(t *testing.T) {
	for _, m := range AllRegressionMethods() {
		assert.True(t, m.IsValid())
	}

	assert.False(t, RegressionMethod("quadratic").IsValid())
	assert.True(t, SeriesScatter.IsCartesian())
	assert.False(t, SeriesPie.IsCartesian())
}
