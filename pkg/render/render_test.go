package render

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/fredbi/echartgen/pkg/axis"
	"github.com/fredbi/echartgen/pkg/model"
	"github.com/google/uuid"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestSize(t *testing.T) {
	assert.Equal(t, "600px", Pixels(600).String())
	assert.Equal(t, "20%", Percent(20).String())
	assert.Equal(t, "12.5%", Percent(12.5).String())

	for _, tt := range []struct {
		input string
		want  Size
	}{
		{"600px", Pixels(600)},
		{"600", Pixels(600)},
		{" 50% ", Percent(50)},
	} {
		s, err := ParseSize(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, s)
	}

	for _, input := range []string{"", "px", "-1%", "12em", "1.5px"} {
		_, err := ParseSize(input)
		require.Error(t, err, "expected %q to fail", input)
	}

	var s Size
	require.NoError(t, s.UnmarshalText([]byte("80%")))
	assert.True(t, s.IsPercent())
	assert.Equal(t, 80.0, s.Value())

	text, err := Pixels(10).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "10px", string(text))
}

func TestIDGenerators(t *testing.T) {
	t.Run("random ids are UUIDs", func(t *testing.T) {
		gen := RandomIDs()
		a, b := gen(), gen()
		assert.NotEqual(t, a, b)

		id, err := uuid.Parse(a)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(4), id.Version())
	})

	t.Run("sequential ids", func(t *testing.T) {
		gen := SequentialIDs("chart")
		assert.Equal(t, "chart-1", gen())
		assert.Equal(t, "chart-2", gen())
	})
}

func sampleChart(id string) *Chart[float64, float64] {
	o := model.New[float64, float64]()
	o.Title = &model.Title{Text: "</script><b>sample</b>"}
	o.Series = append(o.Series, model.Series[float64, float64]{
		Type: model.SeriesLine,
		Data: model.Pairs(model.P(1.0, 2.0)),
	})

	return NewChart(id, Pixels(600), Percent(50), o, nil)
}

func TestChartRender(t *testing.T) {
	c := sampleChart("chart-1")

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, `<div class="echartgen-chart" id="chart-1" style="width: 600px; height: 50%;"></div>`)
	assert.Contains(t, out, `echarts.init(document.getElementById("chart-1"))`)
	assert.Contains(t, out, `chart.setOption({`)
	assert.Equal(t, 1, strings.Count(out, "</script>"), "option strings must not close the script element")

	assert.Equal(t, "chart-1", c.ChartID())
	width, height := c.Size()
	assert.Equal(t, "600px", width.String())
	assert.Equal(t, "50%", height.String())
	assert.False(t, c.UsesTransforms())
	assert.Equal(t, out, c.String())
}

func TestChartRenderEscapesID(t *testing.T) {
	c := sampleChart(`a"b<c`)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, `id="a&#34;b&lt;c"`)
	assert.Contains(t, out, `getElementById("a\"b\u003cc")`)
}

func TestChartRenderError(t *testing.T) {
	o := model.New[float64, float64]()
	o.Series = append(o.Series, model.Series[float64, float64]{
		Type: model.SeriesLine,
		Data: model.Values[float64](math.NaN()),
	})
	c := NewChart("bad", Pixels(1), Pixels(1), o, nil)

	err := c.Render(&bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, axis.ErrSerializationFailed)
	assert.True(t, strings.HasPrefix(c.String(), "<!--"))

	_, err = (&Chart[int, int]{ID: "empty"}).JSON()
	require.Error(t, err)
}

func TestPage(t *testing.T) {
	t.Run("standalone document", func(t *testing.T) {
		o := model.New[float64, float64]()
		o.Dataset = append(o.Dataset,
			model.Source(model.P(1.0, 1.0), model.P(2.0, 2.0)),
			model.FromDataset[float64, float64](0, model.RegressionConfig{Method: model.RegressionLinear}),
		)
		withRegression := NewChart("reg", Pixels(600), Pixels(400), o, nil)
		assert.True(t, withRegression.UsesTransforms())

		page := NewPage(
			WithTitle("Benchmarks"),
			WithDescription("Some **bold** claim.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"),
		)
		page.AddChart(sampleChart("plain")).AddChart(withRegression)
		require.Len(t, page.Charts(), 2)

		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf))
		out := buf.String()

		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
		assert.Contains(t, out, "<title>Benchmarks</title>")
		assert.Contains(t, out, `src="`+EChartsAsset+`"`)
		assert.Contains(t, out, `src="`+EcStatAsset+`"`)
		assert.Contains(t, out, "echarts.registerTransform(ecStat.transform.regression);")
		assert.Contains(t, out, "<strong>bold</strong>")
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, `id="plain"`)
		assert.Contains(t, out, `id="reg"`)
		assert.Contains(t, out, `"fromDatasetIndex":0`)
	})

	t.Run("transforms not registered when unused", func(t *testing.T) {
		page := NewPage(WithAssets("/static/echarts.js"))
		page.AddChart(sampleChart("plain"))

		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf))
		out := buf.String()

		assert.NotContains(t, out, "registerTransform")
		assert.NotContains(t, out, EcStatAsset)
		assert.Contains(t, out, `src="/static/echarts.js"`)
	})

	t.Run("raw HTML in the description is not rendered", func(t *testing.T) {
		page := NewPage(WithDescription("<script>alert(1)</script>"), WithTransforms(true))

		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf))
		out := buf.String()

		assert.NotContains(t, out, "alert(1)")
		assert.Contains(t, out, "registerTransform")
	})

	t.Run("transforms guarded without ecStat asset", func(t *testing.T) {
		var logs bytes.Buffer
		page := NewPage(
			WithAssets(EChartsAsset),
			WithTransforms(true),
			WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		)

		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf))
		out := buf.String()

		assert.Contains(t, out, `if (typeof ecStat !== "undefined")`)
		assert.NotContains(t, out, EcStatAsset)
		assert.Contains(t, logs.String(), "no ecStat asset is loaded")
	})

	t.Run("no warning with ecStat asset", func(t *testing.T) {
		var logs bytes.Buffer
		page := NewPage(WithTransforms(true), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

		require.NoError(t, page.Render(&bytes.Buffer{}))
		assert.NotContains(t, logs.String(), "level=WARN")
	})

	t.Run("chart errors abort the page", func(t *testing.T) {
		page := NewPage()
		page.AddChart(failing{})

		err := page.Render(&bytes.Buffer{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errFailing)
	})
}

var errFailing = errors.New("failing chart")

type failing struct{}

func (failing) ChartID() string { return "failing" }

func (failing) JSON() ([]byte, error) { return nil, errFailing }

func (failing) Render(io.Writer) error { return errFailing }
