package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Default script assets of a page.
const (
	EChartsAsset = "https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js"
	EcStatAsset  = "https://cdn.jsdelivr.net/npm/echarts-stat@1/dist/ecStat.min.js"
)

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.tmpl"))

type transformer interface {
	UsesTransforms() bool
}

// Page is a standalone HTML document showing several charts.
type Page struct {
	pageOptions

	charts []Renderable
	md     goldmark.Markdown
}

// NewPage builds an empty [Page].
func NewPage(opts ...PageOption) *Page {
	return &Page{
		pageOptions: pageOptionsWithDefaults(opts),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// AddChart appends a chart to the page.
func (p *Page) AddChart(c Renderable) *Page {
	p.charts = append(p.charts, c)

	return p
}

// Charts on the page, in order.
func (p *Page) Charts() []Renderable {
	return p.charts
}

type pageData struct {
	Title       string
	Description template.HTML
	Assets      []string
	Transforms  bool
	Charts      []template.HTML
}

// loadsEcStat tells if one of the assets looks like the ecStat distribution.
func loadsEcStat(assets []string) bool {
	for _, asset := range assets {
		lower := strings.ToLower(asset)
		if strings.Contains(lower, "ecstat") || strings.Contains(lower, "echarts-stat") {
			return true
		}
	}

	return false
}

// Render writes the HTML document.
func (p *Page) Render(w io.Writer) error {
	data := pageData{
		Title:  p.title,
		Assets: p.assets,
	}

	if p.description != "" {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(p.description), &buf); err != nil {
			return fmt.Errorf("converting page description: %w", err)
		}

		// goldmark does not render raw HTML unless configured to.
		data.Description = template.HTML(buf.String()) //nolint:gosec // sanitized by goldmark
	}

	data.Charts = make([]template.HTML, 0, len(p.charts))
	for _, c := range p.charts {
		var buf bytes.Buffer
		if err := c.Render(&buf); err != nil {
			return err
		}

		data.Charts = append(data.Charts, template.HTML(buf.String())) //nolint:gosec // script fragment with escaped values
		if t, ok := c.(transformer); ok && t.UsesTransforms() {
			data.Transforms = true
		}

		p.l.Debug("rendered chart", slog.String("chart_id", c.ChartID()))
	}

	data.Transforms = data.Transforms || p.forceTransforms
	if data.Transforms && !loadsEcStat(p.assets) {
		p.l.Warn("page uses ecStat transforms but no ecStat asset is loaded", slog.Any("assets", p.assets))
	}

	if err := pageTemplate.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	p.l.Info("rendered page", slog.String("title", p.title), slog.Int("charts", len(p.charts)))

	return nil
}
