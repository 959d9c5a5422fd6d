package testintegration

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/fredbi/echartgen/internal/pkg/assemble"
	"github.com/fredbi/echartgen/internal/pkg/chart"
	"github.com/fredbi/echartgen/internal/pkg/config"
	"github.com/fredbi/echartgen/internal/pkg/dataload"
	"github.com/fredbi/echartgen/pkg/render"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestEchartgen(t *testing.T) {
	t.Run("with sorting example", func(t *testing.T) {
		fixtureDir := filepath.Join("..", "..", "..", "examples")

		t.Run("should load config", func(t *testing.T) {
			cfg, err := config.Load(filepath.Join(fixtureDir, "echartgen.yaml"))
			require.NoError(t, err)
			require.NotNil(t, cfg)

			if testing.Verbose() {
				t.Log(spew.Sdump(cfg.Charts))
			}

			t.Run("should assemble charts", func(t *testing.T) {
				loader := dataload.New(dataload.WithBaseDir(cfg.BaseDir()))
				a := assemble.New(cfg, loader, assemble.WithIDGenerator(render.SequentialIDs("chart")))

				charts, err := a.Charts()
				require.NoError(t, err)
				require.Len(t, charts, len(cfg.Charts))

				for _, c := range charts {
					doc, err := c.JSON()
					require.NoError(t, err)
					require.True(t, json.Valid(doc))

					writeResult(t, c.ChartID()+".json", bytes.NewReader(doc))
				}

				assert.Contains(t, loader.Environment(), "AMD Ryzen 7 5800X")

				t.Run("should render native page", func(t *testing.T) {
					page := render.NewPage(render.WithTitle(cfg.Name), render.WithDescription(cfg.Description))
					for _, c := range charts {
						page.AddChart(c)
					}

					var buf bytes.Buffer
					require.NoError(t, page.Render(&buf))
					assert.Contains(t, buf.String(), "ecStat:clustering")

					writeResult(t, "native.html", &buf)
				})

				t.Run("should render go-echarts page", func(t *testing.T) {
					page, err := chart.New(chart.WithTheme(cfg.Render.Theme)).BuildPage(cfg.Name, charts...)
					require.NoError(t, err)
					require.Len(t, page.Charts, len(charts))

					if testing.Verbose() {
						t.Log(spew.Sdump(page.Charts[0].ID, page.Charts[0].Width, page.Charts[0].Height))
					}

					var buf bytes.Buffer
					require.NoError(t, page.Render(&buf))
					assert.Contains(t, buf.String(), "Sort (regression)")

					writeResult(t, "go-echarts.html", &buf)
				})
			})
		})
	})

	t.Run("with generated config", func(t *testing.T) {
		bench := filepath.Join("..", "..", "..", "examples", "bench.txt")

		loader := dataload.New()
		report, err := loader.Inspect(false, bench)
		require.NoError(t, err)

		cfg, err := config.Generate(config.GenerateInput{
			Files:     report.Files,
			Functions: report.Functions,
			Metrics:   report.Metrics,
		})
		require.NoError(t, err)

		if testing.Verbose() {
			t.Log(spew.Sdump(report))
		}

		page, err := assemble.New(cfg, loader).Page()
		require.NoError(t, err)
		require.Len(t, page.Charts(), len(report.Metrics))

		var buf bytes.Buffer
		require.NoError(t, page.Render(&buf))

		writeResult(t, "generated.html", &buf)
	})
}

func writeResult(t *testing.T, name string, rdr io.Reader) {
	t.Helper()

	file, err := os.Create(filepath.Join(t.TempDir(), name))
	require.NoError(t, err)
	defer func() {
		_ = file.Close()
	}()

	_, err = io.Copy(file, rdr)
	require.NoError(t, err)
}
