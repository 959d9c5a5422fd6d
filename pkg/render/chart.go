// Package render bridges a finished option document to a web page.
//
// A [Chart] renders as a script fragment which mounts an ECharts instance on a DOM element.
// A [Page] assembles several charts into a standalone HTML document.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"

	"github.com/fredbi/echartgen/pkg/axis"
	"github.com/fredbi/echartgen/pkg/model"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var chartTemplate = template.Must(template.ParseFS(templatesFS, "templates/chart.tmpl"))

// Renderable is a chart ready to be rendered.
type Renderable interface {
	// ChartID is the identifier of the DOM element the chart is mounted on.
	ChartID() string

	// JSON is the option document.
	JSON() ([]byte, error)

	// Render writes the script fragment of the chart.
	Render(w io.Writer) error
}

// Chart is a built option document, with the size and identifier of its container.
type Chart[X, Y any] struct {
	ID      string
	Width   Size
	Height  Size
	Options *model.Options[X, Y]

	// Registry used to serialize the data. A nil registry stands for [axis.Default].
	Registry *axis.Registry
}

var _ Renderable = &Chart[float64, float64]{}

// NewChart wraps an option document for rendering.
func NewChart[X, Y any](id string, width, height Size, options *model.Options[X, Y], registry *axis.Registry) *Chart[X, Y] {
	return &Chart[X, Y]{
		ID:       id,
		Width:    width,
		Height:   height,
		Options:  options,
		Registry: registry,
	}
}

func (c *Chart[X, Y]) ChartID() string {
	return c.ID
}

// Size of the chart container.
func (c *Chart[X, Y]) Size() (width, height Size) {
	return c.Width, c.Height
}

func (c *Chart[X, Y]) JSON() ([]byte, error) {
	if c.Options == nil {
		return nil, fmt.Errorf("chart %q: no options", c.ID)
	}

	return c.Options.Encode(c.Registry)
}

// Document returns the option document as nested maps and slices.
func (c *Chart[X, Y]) Document() (map[string]any, error) {
	if c.Options == nil {
		return nil, fmt.Errorf("chart %q: no options", c.ID)
	}

	return c.Options.Document(c.Registry)
}

// UsesTransforms reports whether a dataset of the chart is derived with an ecStat transform.
func (c *Chart[X, Y]) UsesTransforms() bool {
	if c.Options == nil {
		return false
	}

	for _, ds := range c.Options.Dataset {
		for _, t := range ds.Transforms() {
			if strings.HasPrefix(string(t.TransformType()), "ecStat:") {
				return true
			}
		}
	}

	return false
}

func (c *Chart[X, Y]) Render(w io.Writer) error {
	option, err := c.JSON()
	if err != nil {
		return fmt.Errorf("rendering chart %q: %w", c.ID, err)
	}

	return renderFragment(w, c.ID, c.Width, c.Height, option)
}

// String renders the script fragment, or an HTML comment with the error.
func (c *Chart[X, Y]) String() string {
	var b strings.Builder
	if err := c.Render(&b); err != nil {
		return "<!-- " + html.EscapeString(err.Error()) + " -->"
	}

	return b.String()
}

type fragment struct {
	ElementID        string
	ElementIDLiteral string
	Width            string
	Height           string
	Option           string
}

func renderFragment(w io.Writer, id string, width, height Size, option []byte) error {
	// json.Marshal escapes <, > and &: the literal cannot close the script element.
	literal, err := json.Marshal(id)
	if err != nil {
		return err
	}

	return chartTemplate.ExecuteTemplate(w, "chart", fragment{
		ElementID:        html.EscapeString(id),
		ElementIDLiteral: string(literal),
		Width:            width.String(),
		Height:           height.String(),
		Option:           string(option),
	})
}
