package dataload

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"golang.org/x/tools/benchmark/parse"

	"github.com/fredbi/echartgen/internal/pkg/config"
)

// Set wraps [parse.Set] to include file and benchmark environment information.
type Set struct {
	parse.Set

	File        string
	Environment string
}

// Report summarizes the content of benchmark files.
type Report struct {
	Files        []string            `json:"analyzed_files"`
	Environments []string            `json:"environments"`
	Functions    []string            `json:"benchmark_functions"`
	Metrics      []config.MetricName `json:"benchmark_metrics"`
}

// Inspect parses benchmark files and reports about their content.
//
// The report feeds [config.Generate] when no configuration is provided.
func (l *Loader) Inspect(isJSON bool, files ...string) (Report, error) {
	var r Report
	seenFunctions := make(map[string]struct{})
	seenMetrics := make(map[config.MetricName]struct{})

	for _, file := range files {
		set, err := l.benchmarkSet(file, isJSON)
		if err != nil {
			return r, err
		}

		r.Files = append(r.Files, set.File)
		if !slices.Contains(r.Environments, set.Environment) {
			r.Environments = append(r.Environments, set.Environment)
		}

		for _, runs := range orderedRuns(set.Set) {
			name := config.TrimProcs(runs[0].Name)
			function, _, _ := strings.Cut(name, "/")
			if _, seen := seenFunctions[function]; !seen {
				seenFunctions[function] = struct{}{}
				r.Functions = append(r.Functions, function)
			}

			for _, bench := range runs {
				for _, metric := range config.AllMetricNames() {
					if _, ok := metricValue(bench, metric); !ok {
						continue
					}

					seenMetrics[metric] = struct{}{}
				}
			}
		}
	}

	for _, metric := range config.AllMetricNames() {
		if _, ok := seenMetrics[metric]; ok {
			r.Metrics = append(r.Metrics, metric)
		}
	}

	sort.Strings(r.Functions)

	return r, nil
}

// Environment of the benchmark files parsed so far, e.g. "linux amd64 cpu: ...".
func (l *Loader) Environment() string {
	files := make([]string, 0, len(l.sets))
	for file := range l.sets {
		files = append(files, file)
	}
	sort.Strings(files)

	var environments []string
	for _, file := range files {
		env := l.sets[file].Environment
		if env == unknownEnvironment || slices.Contains(environments, env) {
			continue
		}

		environments = append(environments, env)
	}

	return strings.Join(environments, ", ")
}

func (l *Loader) benchmark(src *config.BenchmarkSource) ([]Point, error) {
	isJSON := src.JSON || strings.EqualFold(filepath.Ext(src.File), ".json")

	set, err := l.benchmarkSet(src.File, isJSON)
	if err != nil {
		return nil, err
	}

	matcher := src.Matcher()
	var points []Point

	for _, runs := range orderedRuns(set.Set) {
		name := config.TrimProcs(runs[0].Name)
		x := name

		if matcher != nil {
			groups := matcher.FindStringSubmatch(name)
			if groups == nil {
				continue
			}

			if len(groups) > 1 {
				idx := matcher.SubexpIndex("x")
				if idx < 0 {
					idx = 1
				}

				if groups[idx] != "" {
					x = groups[idx]
				}
			}
		}

		var (
			sum   float64
			count int
		)
		for _, bench := range runs {
			value, ok := metricValue(bench, src.Metric)
			if !ok {
				continue
			}

			sum += value
			count++
		}

		if count == 0 {
			l.l.Warn("benchmark without the requested metric",
				slog.String("benchmark", name),
				slog.String("metric", src.Metric.String()),
			)

			continue
		}

		points = append(points, Point{
			X:     x,
			Y:     sum / float64(count),
			Label: name,
		})
	}

	return points, nil
}

// benchmarkSet parses a benchmark file, or returns the set already parsed.
func (l *Loader) benchmarkSet(file string, isJSON bool) (Set, error) {
	pth := l.resolve(file)
	if set, ok := l.sets[pth]; ok {
		return set, nil
	}

	var (
		reader io.ReadCloser
		err    error
	)

	if pth == "-" {
		reader = os.Stdin
	} else {
		reader, err = os.Open(pth)
		if err != nil {
			return Set{}, fmt.Errorf("input file %q: %w", file, err)
		}
		defer func() {
			_ = reader.Close()
		}()
	}

	set, err := ParseInput(reader, isJSON)
	if err != nil {
		return Set{}, fmt.Errorf("input file %q: %w", file, err)
	}

	set.File = file
	l.sets[pth] = set

	l.l.Info("benchmark input parsed",
		slog.String("file", file),
		slog.Int("benchmarks", len(set.Set)),
	)

	return set, nil
}

// ParseInput parses the output of "go test -bench", as text or as JSON events.
func ParseInput(r io.Reader, isJSON bool) (Set, error) {
	if isJSON {
		return parseJSON(r)
	}

	return parseText(r)
}

func parseText(r io.Reader) (Set, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Set{}, fmt.Errorf("reading input: %w", err)
	}

	return parseOutput(string(content))
}

// parseJSON parses JSON output from `go test -json -bench`.
// It extracts the Output fields from "output" events and feeds them
// to the standard benchmark parser.
func parseJSON(r io.Reader) (Set, error) {
	var textOutput strings.Builder
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event testEvent
		if err := json.Unmarshal(line, &event); err != nil { //nolint:musttag // JSON produced uses titleized keys expected by std json/encoding
			continue
		}

		if event.Action == "output" && event.Output != "" {
			textOutput.WriteString(event.Output)
		}
	}

	if err := scanner.Err(); err != nil {
		return Set{}, fmt.Errorf("scanning input: %w", err)
	}

	return parseOutput(textOutput.String())
}

func parseOutput(text string) (Set, error) {
	set, err := parse.ParseSet(strings.NewReader(text))
	if err != nil {
		return Set{}, fmt.Errorf("parsing benchmark output: %w", err)
	}

	return Set{
		Set:         set,
		Environment: extractEnvironment(text),
	}, nil
}

// orderedRuns returns the runs of each benchmark, in the order of their first appearance.
func orderedRuns(set parse.Set) [][]*parse.Benchmark {
	runs := make([][]*parse.Benchmark, 0, len(set))
	for _, benchmarks := range set {
		if len(benchmarks) == 0 {
			continue
		}

		runs = append(runs, benchmarks)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i][0].Ord < runs[j][0].Ord
	})

	return runs
}

func metricValue(bench *parse.Benchmark, metric config.MetricName) (float64, bool) {
	switch metric {
	case config.MetricNsPerOp:
		return bench.NsPerOp, bench.Measured&parse.NsPerOp != 0
	case config.MetricAllocsPerOp:
		return float64(bench.AllocsPerOp), bench.Measured&parse.AllocsPerOp != 0
	case config.MetricBytesPerOp:
		return float64(bench.AllocedBytesPerOp), bench.Measured&parse.AllocedBytesPerOp != 0
	case config.MetricMBPerS:
		return bench.MBPerS, bench.Measured&parse.MBPerS != 0
	default:
		return 0, false
	}
}

const unknownEnvironment = "unknown environment"

// extractEnvironment extracts environment information from benchmark output.
// It looks for goos, goarch, and cpu lines and combines them.
func extractEnvironment(text string) string {
	var parts []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, "goos: "):
			parts = append(parts, strings.TrimPrefix(line, "goos: "))
		case strings.HasPrefix(line, "goarch: "):
			parts = append(parts, strings.TrimPrefix(line, "goarch: "))
		case strings.HasPrefix(line, "cpu: "):
			cpu := strings.TrimPrefix(line, "cpu: ")
			cpu = strings.TrimSpace(cpu)
			parts = append(parts, "cpu: "+cpu)
		}
	}

	if len(parts) == 0 {
		return unknownEnvironment
	}

	return strings.Join(parts, " ")
}

// testEvent represents a single JSON event from `go test -json` output.
// See: https://pkg.go.dev/cmd/test2json
type testEvent struct {
	Time    string
	Action  string
	Package string
	Test    string
	Output  string
	Elapsed float64
}
