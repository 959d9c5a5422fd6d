// Package cmd owns the implementation details of the CLI command.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/fredbi/echartgen/internal/pkg/assemble"
	"github.com/fredbi/echartgen/internal/pkg/chart"
	"github.com/fredbi/echartgen/internal/pkg/config"
	"github.com/fredbi/echartgen/internal/pkg/dataload"
	"github.com/fredbi/echartgen/internal/pkg/image"
)

const stdio = "-"

// Command holds command line flags and executes the echartgen command.
//
// It knows how to load a configuration file in a [config.Config] and manage CLI flag configuration overrides.
// When benchmark files are passed as arguments, the configuration is generated from their content instead.
//
// The main purpose of this package is to deal with io's: opening and closing files.
type Command struct {
	Config      string
	OutputFile  string
	Engine      string
	IsJSON      bool
	Environment string
	Report      bool
	Inspect     bool
	DumpConfig  bool
	Png         bool
	L           *slog.Logger

	flags  *pflag.FlagSet
	stdout io.Writer
}

// NewCommand builds a CLI command with registered flags and an injected logger.
func NewCommand() *Command {
	// inject a structured logger
	cli := &Command{
		L:      slog.Default().With(slog.String("module", "main")),
		stdout: os.Stdout,
	}

	cli.registerFlags()

	return cli
}

// Parse command line flags and arguments.
//
// If no argument is passed, command line arguments (i.e. [os.Args]) are used.
func (c *Command) Parse(args ...string) error {
	if args == nil {
		args = os.Args[1:]
	}

	return c.flags.Parse(args)
}

// Fatalf logs an error message then exits. The output is spewed on both stderr and the structured logger output.
func (c *Command) Fatalf(err error) {
	c.L.Error(err.Error())
	log.Fatalf("%v", err)
}

// Execute the CLI with flags and extra arguments.
//
// Extra arguments are benchmark files. If none is passed, command line arguments left after flags are used.
func (c *Command) Execute(ctx context.Context, args ...string) error {
	if args == nil && c.flags != nil { // passing explicit args allows for testing Execute without altering [os.Args]
		args = c.flags.Args()
	}

	if c.Inspect {
		// just want to report about the content of the benchmark files
		return c.inspect(args)
	}

	cfg, cleanup, err := c.prepareConfig(args)
	if err != nil {
		return err
	}
	defer cleanup()

	if c.DumpConfig {
		return cfg.EncodeYAML(c.out())
	}

	loader := dataload.New(
		dataload.WithBaseDir(cfg.BaseDir()),
		dataload.WithLogger(c.L.With(slog.String("module", "dataload"))),
	)
	a := assemble.New(cfg, loader, assemble.WithLogger(c.L.With(slog.String("module", "assemble"))))

	if c.Report {
		return c.report(a)
	}

	// 1. load the data series and build a chart page
	htmlRenderer, err := c.buildPage(cfg, a)
	if err != nil {
		return err
	}

	// 2. render the page as HTML, possibly to stdout, possibly to temp file
	htmlWriter, htmlCloser, err := c.getWriter(cfg.Outputs.HTMLFile, "HTML")
	if err != nil {
		return err
	}

	if err := htmlRenderer.Render(htmlWriter); err != nil {
		htmlCloser()
		return fmt.Errorf("rendering page: %w", err)
	}

	htmlCloser()

	if cfg.Outputs.PngFile == "" {
		// html only: we're done
		return nil
	}

	// 3. convert the HTML page to a PNG image, possibly to stdout
	htmlReader, htmlCloser, err := getReader(cfg.Outputs.HTMLFile, "HTML")
	if err != nil {
		return err
	}
	defer htmlCloser()

	pngWriter, pngCloser, err := c.getWriter(cfg.Outputs.PngFile, "PNG")
	if err != nil {
		return err
	}
	defer pngCloser()

	screenshot := cfg.Render.Screenshot
	r := image.New(
		image.WithHeight(screenshot.Height),
		image.WithWidth(screenshot.Width),
		image.WithSleep(screenshot.SleepDuration()),
		image.WithLogger(c.L.With(slog.String("module", "image"))),
	)

	if err = r.Render(ctx, pngWriter, htmlReader); err != nil {
		return fmt.Errorf("rendering image: %w", err)
	}

	return nil
}

func (c *Command) registerFlags() {
	defaults := Command{
		Config:      "echartgen.yaml",
		OutputFile:  stdio,
		Engine:      "",
		Png:         false,
		IsJSON:      false,
		Environment: "",
		Report:      false,
		Inspect:     false,
		DumpConfig:  false,
	}

	c.flags = pflag.NewFlagSet("echartgen", pflag.ContinueOnError)
	c.flags.StringVarP(&c.Config, "config", "c", defaults.Config, "config file")
	c.flags.StringVarP(&c.OutputFile, "output", "o", defaults.OutputFile, "file output or - for standard output")
	c.flags.StringVar(&c.Engine, "engine", defaults.Engine, "rendering engine: native or go-echarts (overrides render.engine)")
	c.flags.BoolVar(&c.IsJSON, "json", defaults.IsJSON, "benchmark files passed as arguments are JSON test events")
	c.flags.StringVarP(&c.Environment, "environment", "e", defaults.Environment, "environment string shown as chart subtitle")
	c.flags.BoolVarP(&c.Report, "report", "r", defaults.Report, "write the JSON option document of every chart, no rendering")
	c.flags.BoolVar(&c.Inspect, "inspect", defaults.Inspect, "report benchmark contents only, no rendering")
	c.flags.BoolVar(&c.DumpConfig, "dump-config", defaults.DumpConfig, "write the effective configuration as YAML")
	c.flags.BoolVar(&c.Png, "png", defaults.Png, "enable PNG screenshot output")
}

func (c *Command) prepareConfig(args []string) (cfg *config.Config, cleanup func(), err error) {
	cfg, err = c.loadConfig(args)
	if err != nil {
		return nil, nil, err
	}

	if err = c.setConfig(cfg); err != nil {
		return nil, nil, fmt.Errorf("preparing config: %w", err)
	}

	if cfg.Outputs.IsTemp {
		cleanup = func() {
			_ = os.Remove(cfg.Outputs.HTMLFile)
		}

		return cfg, cleanup, nil
	}

	return cfg, func() {}, nil
}

// loadConfig loads the configuration file, or generates one when benchmark files are passed as arguments.
func (c *Command) loadConfig(args []string) (*config.Config, error) {
	if len(args) == 0 {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		return cfg, nil
	}

	report, err := c.inspectFiles(args)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Generate(config.GenerateInput{
		Files:     report.Files,
		JSON:      c.IsJSON,
		Functions: report.Functions,
		Metrics:   report.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("generating config: %w", err)
	}

	c.L.Info("configuration generated from benchmark files",
		slog.Int("files", len(report.Files)),
		slog.Int("charts", len(cfg.Charts)),
	)

	return cfg, nil
}

// apply CLI flags overrides to YAML config.
func (c *Command) setConfig(cfg *config.Config) error {
	if c.Environment != "" {
		cfg.Environment = c.Environment
	}

	if c.Engine != "" {
		engine := config.Engine(c.Engine)
		if !engine.IsValid() {
			return fmt.Errorf("invalid engine %q: expected %q or %q", c.Engine, config.EngineNative, config.EngineGoECharts)
		}

		cfg.Render.Engine = engine
	}

	if c.OutputFile != "" && c.OutputFile != stdio {
		// an outfile is defined: infer the PNG file from the HTML file provided
		cfg.Outputs.HTMLFile = inferHTMLFile(c.OutputFile)
		if cfg.Outputs.PngFile == "" && c.Png {
			cfg.Outputs.PngFile = inferImageFile(cfg.Outputs.HTMLFile)
		}
	}

	if c.Report || c.DumpConfig {
		return nil
	}

	switch {
	case cfg.Outputs.HTMLFile == "" && cfg.Outputs.PngFile == "":
		c.L.Info("output sent to standard output as HTML, no PNG image rendered")
		if c.Png {
			c.L.Info("set an output file to render a PNG image")
		}
		cfg.Outputs.HTMLFile = stdio
	case cfg.Outputs.HTMLFile == "" && cfg.Outputs.PngFile != "":
		c.L.Info("HTML generated as a temporary file to produce PNG")
		tmp, err := os.CreateTemp("", "echartgen.*.html")
		if err != nil {
			return err
		}
		cfg.Outputs.HTMLFile = tmp.Name()
		cfg.Outputs.IsTemp = true
		_ = tmp.Close()
	}

	return nil
}

// inspect produces a report that explores the input benchmarks.
func (c *Command) inspect(args []string) error {
	if len(args) == 0 {
		args = []string{stdio}
	}

	report, err := c.inspectFiles(args)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out())
	enc.SetIndent("", " ")

	return enc.Encode(report)
}

func (c *Command) inspectFiles(args []string) (dataload.Report, error) {
	loader := dataload.New(dataload.WithLogger(c.L.With(slog.String("module", "dataload"))))

	t0 := time.Now()
	report, err := loader.Inspect(c.IsJSON, args...)
	if err != nil {
		return report, fmt.Errorf("parsing files: %w", err)
	}
	c.L.Info("parsed input benchmarks", slog.Duration("duration", time.Since(t0)))

	return report, nil
}

// report writes the option document of every chart, keyed by chart ID.
func (c *Command) report(a *assemble.Assembler) error {
	charts, err := a.Charts()
	if err != nil {
		return err
	}

	documents := make(map[string]json.RawMessage, len(charts))
	for _, ch := range charts {
		doc, err := ch.JSON()
		if err != nil {
			return fmt.Errorf("chart %q: %w", ch.ChartID(), err)
		}

		documents[ch.ChartID()] = doc
	}

	enc := json.NewEncoder(c.out())
	enc.SetIndent("", " ")

	return enc.Encode(documents)
}

type pageRenderer interface {
	Render(w io.Writer) error
}

func (c *Command) buildPage(cfg *config.Config, a *assemble.Assembler) (pageRenderer, error) {
	switch cfg.Render.Engine {
	case config.EngineGoECharts:
		charts, err := a.Charts()
		if err != nil {
			return nil, err
		}

		b := chart.New(
			chart.WithTheme(cfg.Render.Theme),
			chart.WithLogger(c.L.With(slog.String("module", "chart"))),
		)

		page, err := b.BuildPage(cfg.Name, charts...)
		if err != nil {
			return nil, err
		}

		return page, nil
	default:
		page, err := a.Page()
		if err != nil {
			return nil, err
		}

		return page, nil
	}
}

func (c *Command) out() io.Writer {
	if c.stdout == nil {
		return os.Stdout
	}

	return c.stdout
}

func getReader(file, kind string) (rdr *os.File, cleanup func(), err error) {
	rdr, err = os.Open(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file: %q: %w", kind, file, err)
	}

	cleanup = func() {
		_ = rdr.Close()
	}

	return rdr, cleanup, nil
}

func (c *Command) getWriter(file, kind string) (wrt io.Writer, cleanup func(), err error) {
	if file == stdio {
		return c.out(), func() {}, nil
	}

	f, err := os.Create(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s file for writing: %q: %w", kind, file, err)
	}

	cleanup = func() {
		if err := f.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			c.L.Warn("closing file", slog.String("file", file), slog.String("error", err.Error()))
		}
	}

	return f, cleanup, nil
}

func inferHTMLFile(base string) string {
	ext := path.Ext(base)
	page, _ := strings.CutSuffix(base, ext)

	return page + ".html"
}

func inferImageFile(base string) string {
	ext := path.Ext(base)
	img, _ := strings.CutSuffix(base, ext)

	return img + ".png"
}
