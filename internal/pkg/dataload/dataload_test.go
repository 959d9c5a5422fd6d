package dataload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"

	"github.com/fredbi/echartgen/internal/pkg/config"
)

func TestInline(t *testing.T) {
	series := mustLoadSeries(t, `
charts:
  - id: c
    xAxis:
      type: category
    series:
      - id: s
        data:
          - [Q1, 3]
          - [2, "4.5", two]
          - [3.5, 1, 3]
`)

	points, err := New().Load(series[0])
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.Equal(t, Point{X: "Q1", Y: 3}, points[0])
	assert.Equal(t, Point{X: float64(2), Y: 4.5, Label: "two"}, points[1])
	assert.Equal(t, Point{X: 3.5, Y: 1, Label: "3"}, points[2])
	assert.True(t, HasLabels(points))
	assert.False(t, HasLabels(points[:1]))
}

func TestInlineErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
	}{
		{"too short", [][]any{{1}}},
		{"too long", [][]any{{1, 2, "a", "b"}}},
		{"y not a number", [][]any{{1, "many"}}},
		{"y missing", [][]any{{1, nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Load(config.SeriesDef{ID: "s", Data: tt.rows})
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidData)
		})
	}

	t.Run("no source", func(t *testing.T) {
		_, err := New().Load(config.SeriesDef{ID: "s"})
		require.ErrorIs(t, err, ErrInvalidData)
	})
}

func TestBenchmark(t *testing.T) {
	for _, file := range []string{"run.txt", "run.json"} {
		t.Run(file, func(t *testing.T) {
			series := mustLoadSeries(t, `
charts:
  - id: c
    xAxis:
      type: category
    series:
      - id: encode
        benchmark:
          file: `+testdataPath(file)+`
          match: '^BenchmarkEncode/(?P<size>\w+)$'
      - id: bytes
        benchmark:
          file: `+testdataPath(file)+`
          match: '^BenchmarkEncode/(?P<x>\w+)$'
          metric: B/op
      - id: all
        benchmark:
          file: `+testdataPath(file)+`
      - id: throughput
        benchmark:
          file: `+testdataPath(file)+`
          metric: MB/s
`)
			loader := New()

			t.Run("runs are averaged, first capture group is x", func(t *testing.T) {
				points, err := loader.Load(series[0])
				require.NoError(t, err)

				require.Len(t, points, 2)
				assert.Equal(t, Point{X: "small", Y: 1100, Label: "BenchmarkEncode/small"}, points[0])
				assert.Equal(t, Point{X: "large", Y: 10000, Label: "BenchmarkEncode/large"}, points[1])
			})

			t.Run("named capture group is x", func(t *testing.T) {
				points, err := loader.Load(series[1])
				require.NoError(t, err)

				require.Len(t, points, 2)
				assert.Equal(t, "small", points[0].X)
				assert.InDelta(t, 128, points[0].Y, 1e-9)
			})

			t.Run("without matcher, the benchmark name is x", func(t *testing.T) {
				points, err := loader.Load(series[2])
				require.NoError(t, err)

				require.Len(t, points, 4)
				names := make([]any, 0, len(points))
				for _, p := range points {
					names = append(names, p.X)
				}
				assert.Equal(t, []any{"BenchmarkEncode/small", "BenchmarkEncode/large", "BenchmarkDecode/small", "BenchmarkCopy"}, names)
			})

			t.Run("benchmarks without the metric are skipped", func(t *testing.T) {
				points, err := loader.Load(series[3])
				require.NoError(t, err)

				require.Len(t, points, 1)
				assert.Equal(t, "BenchmarkCopy", points[0].X)
				assert.InDelta(t, 450.5, points[0].Y, 1e-9)
			})

			assert.Equal(t, "linux amd64 cpu: Intel(R) Core(TM) i7-10510U CPU @ 1.80GHz", loader.Environment())
		})
	}
}

func TestBenchmarkMissingFile(t *testing.T) {
	series := mustLoadSeries(t, `
charts:
  - id: c
    series:
      - id: s
        benchmark:
          file: missing.txt
`)

	_, err := New(WithBaseDir(t.TempDir())).Load(series[0])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestInspect(t *testing.T) {
	loader := New(WithBaseDir("testdata"))

	report, err := loader.Inspect(false, "run.txt")
	require.NoError(t, err)

	assert.Equal(t, []string{"run.txt"}, report.Files)
	assert.Equal(t, []string{"BenchmarkCopy", "BenchmarkDecode", "BenchmarkEncode"}, report.Functions)
	assert.Equal(t, []config.MetricName{
		config.MetricNsPerOp,
		config.MetricAllocsPerOp,
		config.MetricBytesPerOp,
		config.MetricMBPerS,
	}, report.Metrics)
	require.Len(t, report.Environments, 1)

	t.Run("a generated config loads the same benchmarks", func(t *testing.T) {
		cfg, err := config.Generate(config.GenerateInput{
			Files:     report.Files,
			Functions: report.Functions,
			Metrics:   report.Metrics,
		})
		require.NoError(t, err)

		chart, ok := cfg.GetChart(config.MetricNsPerOp.String())
		require.True(t, ok)
		require.Len(t, chart.Series, 3)

		var encode config.SeriesDef
		for _, s := range chart.Series {
			if s.ID == "encode" {
				encode = s
			}
		}

		points, err := loader.Load(encode)
		require.NoError(t, err)
		require.Len(t, points, 2)
		assert.Equal(t, "small", points[0].X)
		assert.Equal(t, "large", points[1].X)
	})
}

func TestParseInputNoEnvironment(t *testing.T) {
	set, err := ParseInput(strings.NewReader("BenchmarkX-4 100 12 ns/op\n"), false)
	require.NoError(t, err)

	assert.Equal(t, unknownEnvironment, set.Environment)
	assert.Len(t, set.Set, 1)
}

func TestSheet(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "measures.xlsx")

	f := excelize.NewFile()
	const sheetName = "Sheet1"
	require.NoError(t, f.SetCellValue(sheetName, "A1", "size"))
	require.NoError(t, f.SetCellValue(sheetName, "B1", "name"))
	require.NoError(t, f.SetCellValue(sheetName, "C1", "duration"))
	require.NoError(t, f.SetCellValue(sheetName, "A2", 10))
	require.NoError(t, f.SetCellValue(sheetName, "B2", "ten"))
	require.NoError(t, f.SetCellValue(sheetName, "C2", 1.5))
	require.NoError(t, f.SetCellValue(sheetName, "A4", 20))
	require.NoError(t, f.SetCellValue(sheetName, "B4", "twenty"))
	require.NoError(t, f.SetCellValue(sheetName, "C4", 3))
	require.NoError(t, f.SaveAs(file))
	require.NoError(t, f.Close())

	series := mustLoadSeries(t, `
charts:
  - id: c
    series:
      - id: labelled
        sheet:
          file: measures.xlsx
          x: A
          y: c
          label: B
          header: true
      - id: headers
        sheet:
          file: measures.xlsx
          sheet: Sheet1
          x: A
          y: C
      - id: missing
        sheet:
          file: measures.xlsx
          sheet: Nope
          x: A
          y: C
`)

	loader := New(WithBaseDir(dir))

	points, err := loader.Load(series[0])
	require.NoError(t, err)
	assert.Equal(t, []Point{
		{X: float64(10), Y: 1.5, Label: "ten"},
		{X: float64(20), Y: 3, Label: "twenty"},
	}, points)

	_, err = loader.Load(series[1])
	require.ErrorIs(t, err, ErrInvalidData)
	assert.Contains(t, err.Error(), "C1")

	_, err = loader.Load(series[2])
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	t.Run("Float", func(t *testing.T) {
		for _, v := range []any{2, int64(2), uint(2), float32(2), 2.0, " 2 ", "2e0"} {
			f, err := Float(v)
			require.NoError(t, err)
			assert.InDelta(t, 2.0, f, 1e-9)
		}

		_, err := Float(true)
		require.ErrorIs(t, err, ErrInvalidData)
	})

	t.Run("Text", func(t *testing.T) {
		assert.Equal(t, "1.5", Text(1.5))
		assert.Equal(t, "3", Text(3))
		assert.Equal(t, "a", Text("a"))
		assert.Empty(t, Text(nil))
	})

	t.Run("Time", func(t *testing.T) {
		want := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

		got, err := Time("2024-03-01", "2006-01-02")
		require.NoError(t, err)
		assert.True(t, want.Equal(got))

		got, err = Time(float64(want.UnixMilli()), time.RFC3339)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))

		got, err = Time(want, "")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		_, err = Time("yesterday", "2006-01-02")
		require.ErrorIs(t, err, ErrInvalidData)
	})
}

// helpers

func testdataPath(file string) string {
	abs, err := filepath.Abs(filepath.Join("testdata", file))
	if err != nil {
		panic(err)
	}

	return abs
}

func mustLoadSeries(t *testing.T, yamlContent string) []config.SeriesDef {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(yamlContent), 0o600))

	cfg, err := config.Load(file)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Charts)

	return cfg.Charts[0].Series
}
