// Package config loads the YAML description of a page of charts.
package config

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredbi/echartgen/pkg/model"
	"github.com/fredbi/echartgen/pkg/render"
)

//go:embed default_config.yaml
var efs embed.FS

// Config holds the description of a page of charts.
type Config struct {
	Name        string
	Description string
	Environment string
	Render      Rendering
	Outputs     Output `mapstructure:"-"`
	Metrics     []Metric
	Charts      []Chart

	baseDir     string
	metricIndex map[MetricName]Metric
	chartIndex  map[string]Chart
}

// GetMetric retrieves a metric definition by its [MetricName].
func (c Config) GetMetric(id MetricName) (Metric, bool) {
	v, ok := c.metricIndex[id]

	return v, ok
}

// GetChart retrieves a chart definition by its ID.
func (c Config) GetChart(id string) (Chart, bool) {
	v, ok := c.chartIndex[id]

	return v, ok
}

// ResolvePath resolves a data file path relative to the directory of the configuration file.
func (c Config) ResolvePath(file string) string {
	if file == "" || file == "-" || filepath.IsAbs(file) || c.baseDir == "" {
		return file
	}

	return filepath.Join(c.baseDir, file)
}

// BaseDir is the directory against which relative data files are resolved.
func (c Config) BaseDir() string {
	return c.baseDir
}

// EncodeYAML serializes a [Config] to YAML into the provided writer.
//
// Runtime-only fields (Outputs) are excluded from the output.
func (c *Config) EncodeYAML(w io.Writer) error {
	var raw map[string]any

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Squash: true,
		Deep:   true,
		Result: &raw,
	})
	if err != nil {
		return fmt.Errorf("creating mapstructure decoder: %w", err)
	}

	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decoding config to map: %w", err)
	}

	return yaml.NewEncoder(w).Encode(raw)
}

// Engine selects how a page is rendered.
type Engine string

// Supported rendering engines.
const (
	// EngineNative renders the option documents produced by the builder, with ecStat transforms run in the browser.
	EngineNative Engine = "native"
	// EngineGoECharts renders through go-echarts, with transforms evaluated beforehand.
	EngineGoECharts Engine = "go-echarts"
)

// IsValid reports whether the engine is supported.
func (e Engine) IsValid() bool {
	return e == EngineNative || e == EngineGoECharts
}

// Rendering holds page-wide rendering settings.
type Rendering struct {
	Engine     Engine
	Theme      string
	Width      string
	Height     string
	Legend     bool
	Assets     []string
	Screenshot Screenshot
}

// Size returns the default chart size.
func (r Rendering) Size() (width, height render.Size, err error) {
	width, err = render.ParseSize(r.Width)
	if err != nil {
		return width, height, fmt.Errorf("render.width: %w", err)
	}

	height, err = render.ParseSize(r.Height)
	if err != nil {
		return width, height, fmt.Errorf("render.height: %w", err)
	}

	return width, height, nil
}

// Screenshot configures the headless Chrome screenshot used for PNG rendering.
type Screenshot struct {
	Height int64
	Width  int64
	Sleep  string
}

// SleepDuration parses the Sleep field as a [time.Duration].
func (s Screenshot) SleepDuration() time.Duration {
	d, err := time.ParseDuration(s.Sleep)
	if d == 0 || err != nil {
		return 0
	}

	return d
}

// Output holds the resolved output file paths for HTML and PNG rendering.
type Output struct {
	HTMLFile string
	PngFile  string
	IsTemp   bool
}

// Metric defines a benchmark metric with its display title and axis label.
type Metric struct {
	ID    MetricName
	Title string
	Axis  string
}

// AxisType tells how an axis of a chart is read and drawn.
type AxisType string

// Supported axis types.
const (
	AxisValue    AxisType = "value"
	AxisLog      AxisType = "log"
	AxisCategory AxisType = "category"
	AxisTime     AxisType = "time"
)

// IsValid reports whether the axis type is supported.
func (a AxisType) IsValid() bool {
	switch a {
	case AxisValue, AxisLog, AxisCategory, AxisTime:
		return true
	default:
		return false
	}
}

// IsNumeric reports whether the axis holds numbers.
func (a AxisType) IsNumeric() bool {
	return a == AxisValue || a == AxisLog
}

// AxisDef describes an axis of a chart.
type AxisDef struct {
	Name    string
	Type    AxisType
	Layout  string // time layout used to parse points on a time axis
	Inverse bool
}

// Chart describes a single chart on the page.
type Chart struct {
	ID       string
	Title    string
	Subtitle string
	Width    string
	Height   string
	Legend   *bool `mapstructure:",omitempty"`
	XAxis    AxisDef
	YAxis    AxisDef
	Series   []SeriesDef
}

// ShowLegend tells if the legend is shown, falling back to the page-wide setting.
func (c Chart) ShowLegend(r Rendering) bool {
	if c.Legend == nil {
		return r.Legend
	}

	return *c.Legend
}

// Size returns the size of the chart, falling back to the page-wide setting.
func (c Chart) Size(r Rendering) (width, height render.Size, err error) {
	width, height, err = r.Size()
	if err != nil {
		return width, height, err
	}

	if c.Width != "" {
		width, err = render.ParseSize(c.Width)
		if err != nil {
			return width, height, fmt.Errorf("charts.%s.width: %w", c.ID, err)
		}
	}

	if c.Height != "" {
		height, err = render.ParseSize(c.Height)
		if err != nil {
			return width, height, fmt.Errorf("charts.%s.height: %w", c.ID, err)
		}
	}

	return width, height, nil
}

// NeedsValueAxes reports whether some series of the chart use a transform that only applies to values.
func (c Chart) NeedsValueAxes() bool {
	for _, s := range c.Series {
		if s.Regression != nil || s.Clusters > 0 {
			return true
		}
	}

	return false
}

// SeriesDef describes a series: where its points come from, and how they are drawn.
//
// Exactly one source must be set: Data, Benchmark or Sheet.
type SeriesDef struct {
	ID         string
	Title      string
	Type       model.SeriesType
	Smooth     bool
	Data       [][]any          `mapstructure:",omitempty"` // inline rows: [x, y] or [x, y, label]
	Benchmark  *BenchmarkSource `mapstructure:",omitempty"`
	Sheet      *SheetSource     `mapstructure:",omitempty"`
	Regression *Regression      `mapstructure:",omitempty"`
	Sort       *Sort            `mapstructure:",omitempty"`
	Clusters   int              `mapstructure:",omitempty"`
}

// BenchmarkSource reads points from the output of "go test -bench", as text or JSON.
//
// Benchmarks are selected by the Match regexp. The x value is the capture group named "x",
// or the first capture group, or else the benchmark name. The y value is the Metric.
type BenchmarkSource struct {
	File   string
	JSON   bool
	Match  string
	Metric MetricName

	match *regexp.Regexp
}

// Matcher returns the compiled Match regexp.
func (b BenchmarkSource) Matcher() *regexp.Regexp {
	return b.match
}

// SheetSource reads points from the columns of a spreadsheet.
type SheetSource struct {
	File   string
	Sheet  string // defaults to the first sheet
	X      string // column name, e.g. "A"
	Y      string
	Label  string `mapstructure:",omitempty"`
	Header bool   // skip the first row
}

// Regression draws the points with a fitted curve.
type Regression struct {
	Method model.RegressionMethod
	Order  int
}

// Sort draws the points sorted along one dimension.
type Sort struct {
	By    string // "x" or "y"
	Order model.SortOrder
}

// Dimension is the index of the sorted dimension in a dataset row.
func (s Sort) Dimension() int {
	if s.By == "y" {
		return 1
	}

	return 0
}

// Load a configuration file from the local file system.
func Load(file string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	fsys := os.DirFS(filepath.Dir(file))
	pth := filepath.Join(".", filepath.Base(file))

	cfg, err = load(fsys, pth, cfg)
	if err != nil {
		return nil, err
	}

	cfg.baseDir = filepath.Dir(file)

	return cfg, nil
}

// LoadDefaults loads the default configuration from the embedded default_config.yaml.
func LoadDefaults() (*Config, error) {
	return loadDefaults()
}

func loadDefaults() (*Config, error) {
	return load(efs, "default_config.yaml", &Config{})
}

func load(fsys fs.FS, file string, cfg *Config) (*Config, error) {
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, err
	}

	var raw any
	err = yaml.Unmarshal(content, &raw)
	if err != nil {
		return nil, err
	}

	err = mapstructure.Decode(raw, cfg)
	if err != nil {
		return nil, err
	}

	if err = cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate builds indices, sets defaults and validates unique IDs.
func (c *Config) validate() error {
	c.metricIndex = make(map[MetricName]Metric, len(c.Metrics))
	c.chartIndex = make(map[string]Chart, len(c.Charts))

	if err := c.validateRendering(); err != nil {
		return err
	}

	if err := c.validateMetrics(); err != nil {
		return err
	}

	return c.validateCharts()
}

func (c *Config) validateRendering() error {
	if c.Render.Engine == "" {
		c.Render.Engine = EngineNative
	}

	if !c.Render.Engine.IsValid() {
		return fmt.Errorf("invalid render: unknown engine %q (should be one of %v)", c.Render.Engine, []Engine{EngineNative, EngineGoECharts})
	}

	if _, _, err := c.Render.Size(); err != nil {
		return fmt.Errorf("invalid render: %w", err)
	}

	return nil
}

func (c *Config) validateMetrics() error {
	for i, v := range c.Metrics {
		if v.ID == "" {
			return fmt.Errorf("invalid metrics: empty ID found: metrics[%d]", i)
		}
		if !v.ID.IsValid() {
			return fmt.Errorf("invalid metrics: invalid metric ID: metrics[%d]=%v (should be one of %v)", i, v.ID, AllMetricNames())
		}
		if v.Title == "" {
			v.Title = titleize(v.ID)
		}
		if v.Axis == "" {
			v.Axis = v.ID.Unit()
		}
		if _, ok := c.metricIndex[v.ID]; ok {
			return fmt.Errorf("invalid metrics: duplicate ID key found: %s", v.ID)
		}

		c.Metrics[i] = v
		c.metricIndex[v.ID] = v
	}

	return nil
}

func (c *Config) validateCharts() (err error) {
	for i, v := range c.Charts {
		v, err = c.validateChart(v, i)
		if err != nil {
			return err
		}

		c.Charts[i] = v
		c.chartIndex[v.ID] = v
	}

	return nil
}

func (c *Config) validateChart(v Chart, i int) (vv Chart, err error) {
	if v.ID == "" {
		return vv, fmt.Errorf("invalid charts: empty ID found: charts[%d]", i)
	}
	if _, ok := c.chartIndex[v.ID]; ok {
		return vv, fmt.Errorf("invalid charts: duplicate ID key found: %s", v.ID)
	}
	if v.Title == "" {
		v.Title = titleize(v.ID)
	}

	if _, _, err = v.Size(c.Render); err != nil {
		return vv, fmt.Errorf("invalid chart: %w", err)
	}

	if v.XAxis.Type == "" {
		v.XAxis.Type = AxisValue
	}
	if !v.XAxis.Type.IsValid() {
		return vv, fmt.Errorf("invalid chart: unknown axis type charts.%s.xAxis.type=%s", v.ID, v.XAxis.Type)
	}
	if v.XAxis.Type == AxisTime && v.XAxis.Layout == "" {
		v.XAxis.Layout = time.RFC3339
	}

	if v.YAxis.Type == "" {
		v.YAxis.Type = AxisValue
	}
	if !v.YAxis.Type.IsNumeric() {
		return vv, fmt.Errorf("invalid chart: the y axis only supports value or log types charts.%s.yAxis.type=%s", v.ID, v.YAxis.Type)
	}

	if len(v.Series) == 0 {
		return vv, fmt.Errorf("invalid chart: at least 1 series must be defined in a chart. charts.%s.series", v.ID)
	}

	seen := make(map[string]struct{}, len(v.Series))
	for j, s := range v.Series {
		s, err = c.validateSeries(v.ID, s, j)
		if err != nil {
			return vv, err
		}

		if _, dup := seen[s.ID]; dup {
			return vv, fmt.Errorf("invalid series: duplicate ID key found: charts.%s.series.%s", v.ID, s.ID)
		}
		seen[s.ID] = struct{}{}

		v.Series[j] = s
	}

	return v, nil
}

func (c *Config) validateSeries(chartID string, s SeriesDef, j int) (SeriesDef, error) {
	if s.ID == "" {
		if s.Title == "" {
			return s, fmt.Errorf("invalid series: empty ID found: charts.%s.series[%d]", chartID, j)
		}
		s.ID = strings.ToLower(strings.ReplaceAll(s.Title, " ", "-"))
	}
	if s.Title == "" {
		s.Title = titleize(s.ID)
	}

	if s.Type == "" {
		s.Type = model.SeriesLine
	}
	switch s.Type {
	case model.SeriesLine, model.SeriesBar, model.SeriesScatter:
	default:
		return s, fmt.Errorf("invalid series: unsupported series type charts.%s.series.%s.type=%s", chartID, s.ID, s.Type)
	}

	sources := 0
	if len(s.Data) > 0 {
		sources++
	}

	if s.Benchmark != nil {
		sources++
		if err := c.validateBenchmark(chartID, s.ID, s.Benchmark); err != nil {
			return s, err
		}
	}

	if s.Sheet != nil {
		sources++
		if err := validateSheet(chartID, s.ID, s.Sheet); err != nil {
			return s, err
		}
	}

	if sources != 1 {
		return s, fmt.Errorf("invalid series: exactly 1 source among data, benchmark and sheet must be set: charts.%s.series.%s", chartID, s.ID)
	}

	return s, validateTransforms(chartID, s)
}

func (c *Config) validateBenchmark(chartID, seriesID string, b *BenchmarkSource) error {
	if b.File == "" {
		return fmt.Errorf("invalid benchmark: missing file: charts.%s.series.%s.benchmark.file", chartID, seriesID)
	}

	if b.Metric == "" {
		b.Metric = MetricNsPerOp
	}

	metric, ok := ParseMetricName(b.Metric.String())
	if !ok {
		return fmt.Errorf("invalid benchmark: invalid metric: charts.%s.series.%s.benchmark.metric=%s (should be one of %v)", chartID, seriesID, b.Metric, AllMetricNames())
	}
	b.Metric = metric

	if b.Match == "" {
		return nil
	}

	match, err := regexp.Compile(b.Match)
	if err != nil {
		return fmt.Errorf("invalid regexp[charts.%s.series.%s.benchmark.match]: %w", chartID, seriesID, err)
	}
	b.match = match

	return nil
}

var rexColumn = regexp.MustCompile(`^[A-Za-z]{1,3}$`)

func validateSheet(chartID, seriesID string, s *SheetSource) error {
	if s.File == "" {
		return fmt.Errorf("invalid sheet: missing file: charts.%s.series.%s.sheet.file", chartID, seriesID)
	}

	for _, col := range []struct {
		name, value string
		required    bool
	}{
		{"x", s.X, true},
		{"y", s.Y, true},
		{"label", s.Label, false},
	} {
		if col.value == "" && !col.required {
			continue
		}

		if !rexColumn.MatchString(col.value) {
			return fmt.Errorf("invalid sheet: invalid column charts.%s.series.%s.sheet.%s=%q", chartID, seriesID, col.name, col.value)
		}
	}

	return nil
}

func validateTransforms(chartID string, s SeriesDef) error {
	transforms := 0

	if r := s.Regression; r != nil {
		transforms++

		if !r.Method.IsValid() {
			return fmt.Errorf("invalid regression: unknown method charts.%s.series.%s.regression.method=%s (should be one of %v)", chartID, s.ID, r.Method, model.AllRegressionMethods())
		}

		if r.Method == model.RegressionPolynomial && r.Order < 1 {
			return fmt.Errorf("invalid regression: the order of a polynomial regression must be at least 1: charts.%s.series.%s.regression.order=%d", chartID, s.ID, r.Order)
		}
	}

	if s.Clusters != 0 {
		transforms++

		if s.Clusters < 2 {
			return fmt.Errorf("invalid clustering: at least 2 clusters are needed: charts.%s.series.%s.clusters=%d", chartID, s.ID, s.Clusters)
		}
	}

	if o := s.Sort; o != nil {
		transforms++

		if o.By != "x" && o.By != "y" {
			return fmt.Errorf("invalid sort: charts.%s.series.%s.sort.by=%q (should be x or y)", chartID, s.ID, o.By)
		}

		if o.Order == "" {
			o.Order = model.SortAsc
		}

		if o.Order != model.SortAsc && o.Order != model.SortDesc {
			return fmt.Errorf("invalid sort: charts.%s.series.%s.sort.order=%q (should be asc or desc)", chartID, s.ID, o.Order)
		}
	}

	if transforms > 1 {
		return fmt.Errorf("invalid series: at most 1 of regression, clusters and sort may be set: charts.%s.series.%s", chartID, s.ID)
	}

	return nil
}

type str interface {
	~string
}

func titleize[T str](in T) string {
	caser := cases.Title(language.English, cases.NoLower) // the case is stateful: cannot declare it globally

	return caser.String(strings.Map(func(r rune) rune {
		switch r {
		case '_', '-':
			return ' '
		default:
			return r
		}
	}, string(in),
	))
}
