// Package chart renders option documents with go-echarts.
//
// Datasets derived by transforms are evaluated in-process, since go-echarts pages do not load ecStat.
package chart

import (
	"fmt"
	"log/slog"

	"github.com/go-echarts/go-echarts/v2/charts"
	echartsopts "github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fredbi/echartgen/pkg/model"
	"github.com/fredbi/echartgen/pkg/render"
)

const (
	defaultFontSize = 12
	axisNameGap     = 32
	clusterSuffix   = " (cluster %d)"

	// room for the title and the x axis name, unless the document places the grid
	defaultGridTop    = "80"
	defaultGridBottom = "60"
)

// Sized is implemented by charts which know the size of their container, such as [render.Chart].
type Sized interface {
	Size() (width, height render.Size)
}

// Chart is an option document, ready to be converted into a go-echarts chart.
type Chart struct {
	options

	ID     string
	Width  string
	Height string

	doc  document
	data *datasets
}

// NewChart decodes the option document of a chart.
func NewChart(source render.Renderable, opts ...Option) (*Chart, error) {
	raw, err := source.JSON()
	if err != nil {
		return nil, err
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", source.ChartID(), err)
	}

	c := &Chart{
		options: optionsWithDefaults(opts),
		ID:      source.ChartID(),
		Width:   defaultWidth,
		Height:  defaultHeight,
		doc:     doc,
		data:    newDatasets(doc.Dataset),
	}

	if sized, ok := source.(Sized); ok {
		width, height := sized.Size()
		c.Width, c.Height = width.String(), height.String()
	}

	return c, nil
}

// Title of the chart.
func (c *Chart) Title() string {
	if c.doc.Title == nil {
		return ""
	}

	return c.doc.Title.Text
}

// Build creates the go-echarts chart from the option document.
//
// All series are overlapped on a line chart.
func (c *Chart) Build() (*charts.Line, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(c.globalOptions()...)

	categories := make([]any, 0)
	seen := make(map[string]struct{})

	for i, s := range c.doc.Series {
		series, err := c.series(s)
		if err != nil {
			return nil, fmt.Errorf("chart %q, series %d: %w", c.ID, i, err)
		}

		for _, part := range series {
			for _, p := range part.points {
				x, ok := p.x().(string)
				if !ok {
					continue
				}
				if _, found := seen[x]; !found {
					seen[x] = struct{}{}
					categories = append(categories, x)
				}
			}

			c.add(line, s, part)
		}

		c.l.Debug("added series",
			slog.String("chart_id", c.ID),
			slog.String("series", s.Name),
			slog.Int("parts", len(series)),
		)
	}

	if c.doc.XAxis.Type == "category" {
		if len(c.doc.XAxis.Data) > 0 {
			line.SetXAxis(c.doc.XAxis.Data)
		} else {
			line.SetXAxis(categories)
		}
	}

	return line, nil
}

func (c *Chart) globalOptions() []charts.GlobalOpts {
	var title echartsopts.Title
	if c.doc.Title != nil {
		title.Title = c.doc.Title.Text
		title.Left = "center"
		if c.doc.Title.Subtext != "" {
			title.Subtitle = c.doc.Title.Subtext
			title.SubtitleStyle = &echartsopts.TextStyle{
				FontStyle: "italic",
				FontSize:  defaultFontSize,
			}
		}
	}

	showLegend := c.doc.Legend != nil && (c.doc.Legend.Show == nil || *c.doc.Legend.Show)
	legend := echartsopts.Legend{
		Show: echartsopts.Bool(showLegend),
	}
	if showLegend {
		box := c.doc.Legend.boxDoc
		legend.Orient = c.doc.Legend.Orient
		legend.Left = position(box.Left)
		legend.Right = position(box.Right)
		legend.Top = position(box.Top)
		legend.Bottom = position(box.Bottom)
	}

	grid := echartsopts.Grid{
		Top:    defaultGridTop,
		Bottom: defaultGridBottom,
	}
	if c.doc.Grid != nil {
		box := c.doc.Grid.boxDoc
		grid.Left = position(box.Left)
		grid.Right = position(box.Right)
		if top := position(box.Top); top != "" {
			grid.Top = top
		}
		if bottom := position(box.Bottom); bottom != "" {
			grid.Bottom = bottom
		}
	}

	toolbox := echartsopts.Toolbox{
		Left: "right",
		Feature: &echartsopts.ToolBoxFeature{
			SaveAsImage: &echartsopts.ToolBoxFeatureSaveAsImage{
				Title: "Save as image",
			},
		},
	}

	xAxis := echartsopts.XAxis{
		Name:         c.doc.XAxis.Name,
		Type:         c.doc.XAxis.Type,
		NameLocation: "end",
		Scale:        echartsopts.Bool(c.doc.XAxis.Type != "category"),
		Inverse:      echartsopts.Bool(c.doc.XAxis.Inverse),
	}

	yAxis := echartsopts.YAxis{
		Name:         c.doc.YAxis.Name,
		Type:         c.doc.YAxis.Type,
		NameLocation: "end",
		NameGap:      axisNameGap,
		Scale:        echartsopts.Bool(c.doc.YAxis.Type != "category"),
		Inverse:      echartsopts.Bool(c.doc.YAxis.Inverse),
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(echartsopts.Initialization{
			ChartID: c.ID,
			Width:   c.Width,
			Height:  c.Height,
			Theme:   c.Theme,
		}),
		charts.WithToolboxOpts(toolbox),
		charts.WithTitleOpts(title),
		charts.WithLegendOpts(legend),
		charts.WithGridOpts(grid),
		charts.WithXAxisOpts(xAxis),
		charts.WithYAxisOpts(yAxis),
		charts.WithTooltipOpts(echartsopts.Tooltip{
			Show:    echartsopts.Bool(true),
			Trigger: "item",
			AxisPointer: &echartsopts.AxisPointer{
				Type: "cross",
			},
		}),
	}
}

// point is a data item: a [x, y] pair, or a y value placed by its index.
type point struct {
	name  string
	value any
}

func (p point) x() any {
	if pair, ok := p.value.([]any); ok && len(pair) > 0 {
		return pair[0]
	}

	return nil
}

// seriesPart is a series, or one cluster of a clustered series.
type seriesPart struct {
	name   string
	points []point
}

func (c *Chart) series(s seriesDoc) ([]seriesPart, error) {
	if s.DatasetIndex == nil {
		return []seriesPart{{name: s.Name, points: inlinePoints(s.Data)}}, nil
	}

	index := *s.DatasetIndex
	rows, err := c.data.Rows(index)
	if err != nil {
		return nil, err
	}

	xDim, yDim := s.Encode.dimensions()
	labelDim, labelled := s.Encode.label()

	points := make([]point, 0, len(rows))
	for i, row := range rows {
		if xDim >= len(row) || yDim >= len(row) {
			return nil, fmt.Errorf("row %d of dataset %d has %d dimensions", i, index, len(row))
		}

		p := point{value: []any{row[xDim], row[yDim]}}
		if labelled && labelDim < len(row) {
			p.name = fmt.Sprint(row[labelDim])
		}

		points = append(points, p)
	}

	clusterDim, clustered := c.data.ClusterDimension(index)
	if !clustered {
		return []seriesPart{{name: s.Name, points: points}}, nil
	}

	var parts []seriesPart
	byCluster := make(map[int]int)
	for i, row := range rows {
		cluster := 0
		if clusterDim < len(row) {
			if f, ok := row[clusterDim].(float64); ok {
				cluster = int(f)
			}
		}

		at, found := byCluster[cluster]
		if !found {
			at = len(parts)
			byCluster[cluster] = at
			parts = append(parts, seriesPart{name: s.Name + fmt.Sprintf(clusterSuffix, cluster+1)})
		}

		parts[at].points = append(parts[at].points, points[i])
	}

	return parts, nil
}

// inlinePoints converts inline series data: values, [x, y] pairs or {name, value} objects.
func inlinePoints(data []any) []point {
	points := make([]point, 0, len(data))
	for _, item := range data {
		if obj, ok := item.(map[string]any); ok {
			name, _ := obj["name"].(string)
			points = append(points, point{name: name, value: obj["value"]})

			continue
		}

		points = append(points, point{value: item})
	}

	return points
}

func (c *Chart) add(line *charts.Line, s seriesDoc, part seriesPart) {
	switch model.SeriesType(s.Type) {
	case model.SeriesBar:
		data := make([]echartsopts.BarData, 0, len(part.points))
		for _, p := range part.points {
			data = append(data, echartsopts.BarData{Name: p.name, Value: p.value})
		}

		bar := charts.NewBar()
		bar.AddSeries(part.name, data)
		line.Overlap(bar)

	case model.SeriesScatter:
		data := make([]echartsopts.ScatterData, 0, len(part.points))
		for _, p := range part.points {
			data = append(data, echartsopts.ScatterData{
				Name:       p.name,
				Value:      p.value,
				Symbol:     s.Symbol,
				SymbolSize: int(s.SymbolSize),
			})
		}

		scatter := charts.NewScatter()
		scatter.AddSeries(part.name, data)
		line.Overlap(scatter)

	default:
		if s.Type != string(model.SeriesLine) {
			c.l.Warn("unsupported series type drawn as a line",
				slog.String("chart_id", c.ID),
				slog.String("series", s.Name),
				slog.String("type", s.Type),
			)
		}

		data := make([]echartsopts.LineData, 0, len(part.points))
		for _, p := range part.points {
			data = append(data, echartsopts.LineData{Name: p.name, Value: p.value})
		}

		lineOpts := echartsopts.LineChart{
			Smooth: echartsopts.Bool(s.Smooth),
		}
		switch {
		case s.Symbol == string(model.SymbolNone):
			lineOpts.ShowSymbol = echartsopts.Bool(false)
		case s.ShowSymbol != nil:
			lineOpts.ShowSymbol = echartsopts.Bool(*s.ShowSymbol)
		}

		line.AddSeries(part.name, data, charts.WithLineChartOpts(lineOpts))
	}
}
