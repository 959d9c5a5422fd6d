package chart

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// document is the subset of an ECharts option document that maps onto go-echarts.
type document struct {
	Title   *titleDoc    `json:"title"`
	Legend  *legendDoc   `json:"legend"`
	Grid    *gridDoc     `json:"grid"`
	XAxis   axisDoc      `json:"xAxis"`
	YAxis   axisDoc      `json:"yAxis"`
	Dataset []datasetDoc `json:"dataset"`
	Series  []seriesDoc  `json:"series"`
}

type titleDoc struct {
	Text    string `json:"text"`
	Subtext string `json:"subtext"`
}

type legendDoc struct {
	boxDoc

	Show   *bool  `json:"show"`
	Orient string `json:"orient"`
}

type gridDoc struct {
	boxDoc
}

// boxDoc holds the placement of a component: a number of pixels, a percentage or a keyword.
type boxDoc struct {
	Left   any `json:"left"`
	Right  any `json:"right"`
	Top    any `json:"top"`
	Bottom any `json:"bottom"`
}

func position(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	default:
		return ""
	}
}

type axisDoc struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Inverse bool   `json:"inverse"`
	Data    []any  `json:"data"`
}

type datasetDoc struct {
	Source           [][]any         `json:"source"`
	FromDatasetIndex *int            `json:"fromDatasetIndex"`
	Transform        json.RawMessage `json:"transform"`
}

type transformDoc struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

// transforms decodes a single transform or a chain of transforms.
func (d datasetDoc) transforms() ([]transformDoc, error) {
	if len(d.Transform) == 0 {
		return nil, nil
	}

	var chain []transformDoc
	if err := json.Unmarshal(d.Transform, &chain); err == nil {
		return chain, nil
	}

	var single transformDoc
	if err := json.Unmarshal(d.Transform, &single); err != nil {
		return nil, fmt.Errorf("decoding transform: %w", err)
	}

	return []transformDoc{single}, nil
}

type seriesDoc struct {
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Smooth       bool       `json:"smooth"`
	ShowSymbol   *bool      `json:"showSymbol"`
	Symbol       string     `json:"symbol"`
	SymbolSize   float64    `json:"symbolSize"`
	DatasetIndex *int       `json:"datasetIndex"`
	Data         []any      `json:"data"`
	Encode       *encodeDoc `json:"encode"`
}

type encodeDoc struct {
	X       int   `json:"x"`
	Y       int   `json:"y"`
	Tooltip []int `json:"tooltip"`
}

// label is the dimension holding the label shown in the tooltip, if any.
func (e *encodeDoc) label() (int, bool) {
	if e == nil || len(e.Tooltip) == 0 {
		return 0, false
	}

	return e.Tooltip[0], true
}

func (e *encodeDoc) dimensions() (x, y int) {
	if e == nil {
		return 0, 1
	}

	return e.X, e.Y
}

func decodeDocument(data []byte) (document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, fmt.Errorf("decoding option document: %w", err)
	}

	return doc, nil
}
