package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/fredbi/echartgen/pkg/model"
)

// GenerateInput holds the data needed by [Generate] to build a configuration
// from the content of benchmark files.
//
// This avoids importing the dataload package (which imports [config]).
type GenerateInput struct {
	Files     []string
	JSON      bool
	Functions []string
	Metrics   []MetricName
}

// Generate builds a [Config] from parsed benchmark data.
//
// It creates one bar chart per metric, with one series per benchmark function and file.
// Sub-benchmarks are shown as categories on the x axis.
func Generate(input GenerateInput) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		// embedded config must always parse
		panic(fmt.Sprintf("loading embedded defaults: %v", err))
	}

	cfg := &Config{
		Name:   "Generated Config",
		Render: defaults.Render,
	}

	defaultMetrics := make(map[MetricName]Metric, len(defaults.Metrics))
	for _, m := range defaults.Metrics {
		defaultMetrics[m.ID] = m
	}

	type function struct {
		id, name string
	}

	seen := make(map[string]struct{})
	functions := make([]function, 0, len(input.Functions))
	for _, name := range input.Functions {
		id := benchNameToID(name)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		functions = append(functions, function{id: id, name: name})
	}

	for _, name := range input.Metrics {
		metric, ok := defaultMetrics[name]
		if !ok {
			metric = Metric{
				ID:    name,
				Title: titleize(name),
				Axis:  name.Unit(),
			}
		}
		cfg.Metrics = append(cfg.Metrics, metric)

		chart := Chart{
			ID:    string(name),
			Title: metric.Title,
			XAxis: AxisDef{Name: "Benchmark", Type: AxisCategory},
			YAxis: AxisDef{Name: metric.Axis, Type: AxisValue},
		}

		for _, file := range input.Files {
			for _, fn := range functions {
				id := fn.id
				if len(input.Files) > 1 {
					id += "-" + fileToID(file)
				}

				chart.Series = append(chart.Series, SeriesDef{
					ID:    id,
					Title: titleize(id),
					Type:  model.SeriesBar,
					Benchmark: &BenchmarkSource{
						File:   file,
						JSON:   input.JSON,
						Match:  "^" + regexp.QuoteMeta(benchFunction(fn.name)) + `(?:/(?P<x>.+))?$`,
						Metric: name,
					},
				})
			}
		}

		cfg.Charts = append(cfg.Charts, chart)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("generated config: %w", err)
	}

	return cfg, nil
}

// benchFunction is the name of the top-level benchmark function, without sub-benchmarks nor GOMAXPROCS suffix.
func benchFunction(name string) string {
	name, _, _ = strings.Cut(name, "/")

	return TrimProcs(name)
}

// TrimProcs strips the GOMAXPROCS suffix like "-16".
func TrimProcs(name string) string {
	idx := strings.LastIndex(name, "-")
	if idx <= 0 {
		return name
	}

	suffix := name[idx+1:]
	if suffix == "" {
		return name
	}

	for _, r := range suffix {
		if r < '0' || r > '9' {
			return name
		}
	}

	return name[:idx]
}

// benchNameToID converts a benchmark function name to a kebab-case ID.
//
// It strips the "Benchmark" prefix, sub-benchmarks and the GOMAXPROCS suffix (e.g. "-16").
func benchNameToID(name string) string {
	id := strings.TrimPrefix(benchFunction(name), "Benchmark")
	// strip leading underscore (e.g. Benchmark_isEmpty -> isEmpty)
	id = strings.TrimPrefix(id, "_")

	id = strings.Map(func(r rune) rune {
		switch r {
		case '/', '_':
			return '-'
		default:
			return r
		}
	}, id)

	return strings.ToLower(id)
}

func fileToID(file string) string {
	base := file
	if idx := strings.LastIndexAny(base, `/\`); idx >= 0 {
		base = base[idx+1:]
	}
	base, _, _ = strings.Cut(base, ".")

	return strings.ToLower(base)
}
