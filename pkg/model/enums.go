package model

// SeriesType is the ECharts type of a series.
type SeriesType string

// Series types known to ECharts.
const (
	SeriesLine          SeriesType = "line"
	SeriesBar           SeriesType = "bar"
	SeriesPie           SeriesType = "pie"
	SeriesScatter       SeriesType = "scatter"
	SeriesEffectScatter SeriesType = "effectScatter"
	SeriesRadar         SeriesType = "radar"
	SeriesTree          SeriesType = "tree"
	SeriesTreemap       SeriesType = "treemap"
	SeriesSunburst      SeriesType = "sunburst"
	SeriesBoxplot       SeriesType = "boxplot"
	SeriesCandlestick   SeriesType = "candlestick"
	SeriesHeatmap       SeriesType = "heatmap"
	SeriesMap           SeriesType = "map"
	SeriesParallel      SeriesType = "parallel"
	SeriesLines         SeriesType = "lines"
	SeriesGraph         SeriesType = "graph"
	SeriesSankey        SeriesType = "sankey"
	SeriesFunnel        SeriesType = "funnel"
	SeriesGauge         SeriesType = "gauge"
	SeriesPictorialBar  SeriesType = "pictorialBar"
	SeriesThemeRiver    SeriesType = "themeRiver"
	SeriesCustom        SeriesType = "custom"
)

// IsCartesian reports whether the series type is drawn on x/y axes.
func (s SeriesType) IsCartesian() bool {
	switch s {
	case SeriesLine, SeriesBar, SeriesScatter, SeriesEffectScatter, SeriesBoxplot,
		SeriesCandlestick, SeriesHeatmap, SeriesPictorialBar, SeriesCustom:
		return true
	default:
		return false
	}
}

// Symbol is the marker drawn at each data point.
type Symbol string

// Symbols known to ECharts.
const (
	SymbolEmptyCircle Symbol = "emptyCircle"
	SymbolCircle      Symbol = "circle"
	SymbolRect        Symbol = "rect"
	SymbolRoundRect   Symbol = "roundRect"
	SymbolTriangle    Symbol = "triangle"
	SymbolDiamond     Symbol = "diamond"
	SymbolPin         Symbol = "pin"
	SymbolArrow       Symbol = "arrow"
	SymbolNone        Symbol = "none"
)

// TooltipTrigger selects what triggers the tooltip.
type TooltipTrigger string

// Tooltip triggers.
const (
	TriggerItem TooltipTrigger = "item"
	TriggerAxis TooltipTrigger = "axis"
	TriggerNone TooltipTrigger = "none"
)

// AxisPointerType is the style of the axis pointer.
type AxisPointerType string

// Axis pointer types.
const (
	PointerLine   AxisPointerType = "line"
	PointerShadow AxisPointerType = "shadow"
	PointerCross  AxisPointerType = "cross"
	PointerNone   AxisPointerType = "none"
)

// LegendOrient is the layout direction of the legend.
type LegendOrient string

// Legend orientations.
const (
	OrientHorizontal LegendOrient = "horizontal"
	OrientVertical   LegendOrient = "vertical"
)

// AreaOrigin is the origin of the filled area under a line.
type AreaOrigin string

// Area origins.
const (
	OriginAuto  AreaOrigin = "auto"
	OriginStart AreaOrigin = "start"
	OriginEnd   AreaOrigin = "end"
)

// RegressionMethod is the regression model fitted by the ecStat regression transform.
type RegressionMethod string

// Regression methods supported by ecStat.
const (
	RegressionLinear      RegressionMethod = "linear"
	RegressionExponential RegressionMethod = "exponential"
	RegressionLogarithmic RegressionMethod = "logarithmic"
	RegressionPolynomial  RegressionMethod = "polynomial"
)

// IsValid reports whether the method is one supported by ecStat.
func (m RegressionMethod) IsValid() bool {
	switch m {
	case RegressionLinear, RegressionExponential, RegressionLogarithmic, RegressionPolynomial:
		return true
	default:
		return false
	}
}

// AllRegressionMethods returns the regression methods supported by ecStat.
func AllRegressionMethods() []RegressionMethod {
	return []RegressionMethod{
		RegressionLinear,
		RegressionExponential,
		RegressionLogarithmic,
		RegressionPolynomial,
	}
}

// SortOrder is the order of the sort transform.
type SortOrder string

// Sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TransformType is the type tag of a dataset transform.
type TransformType string

// Transform types.
//
// The ecStat tags are an external library convention and must be reproduced verbatim.
const (
	TransformRegression TransformType = "ecStat:regression"
	TransformClustering TransformType = "ecStat:clustering"
	TransformSort       TransformType = "sort"
)
