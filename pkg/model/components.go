package model

// Title of the chart.
type Title struct {
	Text    string
	Subtext string
	Link    string
	Left    *Position
	Top     *Position
	Extra   Extra
}

func (t *Title) document() map[string]any {
	obj := newObject(t.Extra)
	setString(obj, "text", t.Text)
	setString(obj, "subtext", t.Subtext)
	setString(obj, "link", t.Link)
	setPosition(obj, "left", t.Left)
	setPosition(obj, "top", t.Top)

	return obj
}

// Grid is the drawing area of a cartesian chart.
type Grid struct {
	Show            *bool
	Left            *Position
	Right           *Position
	Top             *Position
	Bottom          *Position
	ContainLabel    *bool
	BackgroundColor string
	BorderColor     string
	BorderWidth     *float64
	Extra           Extra
}

func (g *Grid) document() map[string]any {
	obj := newObject(g.Extra)
	setBool(obj, "show", g.Show)
	setPosition(obj, "left", g.Left)
	setPosition(obj, "right", g.Right)
	setPosition(obj, "top", g.Top)
	setPosition(obj, "bottom", g.Bottom)
	setBool(obj, "containLabel", g.ContainLabel)
	setString(obj, "backgroundColor", g.BackgroundColor)
	setString(obj, "borderColor", g.BorderColor)
	setFloat(obj, "borderWidth", g.BorderWidth)

	return obj
}

// Tooltip settings.
//
// The show flag is always emitted.
type Tooltip struct {
	Show        bool
	ShowDelay   *float64
	HideDelay   *float64
	Trigger     TooltipTrigger
	Formatter   string
	AxisPointer *AxisPointer
	Extra       Extra
}

// DefaultTooltip is the tooltip of a new chart: shown on items, with a cross pointer which does
// not snap to data points.
func DefaultTooltip() *Tooltip {
	return &Tooltip{
		Show:    true,
		Trigger: TriggerItem,
		AxisPointer: &AxisPointer{
			Type: PointerCross,
			Snap: Bool(false),
		},
	}
}

func (t *Tooltip) document() map[string]any {
	obj := newObject(t.Extra)
	obj["show"] = t.Show
	setFloat(obj, "showDelay", t.ShowDelay)
	setFloat(obj, "hideDelay", t.HideDelay)
	setString(obj, "trigger", t.Trigger)
	setString(obj, "formatter", t.Formatter)
	if t.AxisPointer != nil {
		obj["axisPointer"] = t.AxisPointer.document()
	}

	return obj
}

// AxisPointer is the indicator following the pointer when the tooltip is shown.
type AxisPointer struct {
	Type      AxisPointerType
	Snap      *bool
	Animation *bool
	Axis      string // "x", "y", "radius", "angle" or "auto"
	Extra     Extra
}

func (p *AxisPointer) document() map[string]any {
	obj := newObject(p.Extra)
	setString(obj, "type", p.Type)
	setBool(obj, "snap", p.Snap)
	setBool(obj, "animation", p.Animation)
	setString(obj, "axis", p.Axis)

	return obj
}

// Legend settings.
type Legend struct {
	Show   *bool
	Data   []string
	Orient LegendOrient
	Left   *Position
	Right  *Position
	Top    *Position
	Bottom *Position
	Extra  Extra
}

func (l *Legend) document() map[string]any {
	obj := newObject(l.Extra)
	setBool(obj, "show", l.Show)
	if len(l.Data) > 0 {
		obj["data"] = l.Data
	}
	setString(obj, "orient", l.Orient)
	setPosition(obj, "left", l.Left)
	setPosition(obj, "right", l.Right)
	setPosition(obj, "top", l.Top)
	setPosition(obj, "bottom", l.Bottom)

	return obj
}

// AreaStyle fills the area under a line series.
type AreaStyle struct {
	Color   string
	Origin  AreaOrigin
	Opacity *float64
	Extra   Extra
}

func (a *AreaStyle) document() map[string]any {
	obj := newObject(a.Extra)
	setString(obj, "color", a.Color)
	setString(obj, "origin", a.Origin)
	setFloat(obj, "opacity", a.Opacity)

	return obj
}

// Encode maps dataset dimensions to the visual channels of a series.
type Encode struct {
	X       int
	Y       int
	Tooltip []int
	Extra   Extra
}

// LabelledEncode is the mapping of a labelled source: x and y from the first two dimensions,
// and the label shown in the tooltip.
func LabelledEncode() *Encode {
	return &Encode{X: 0, Y: 1, Tooltip: []int{2}}
}

func (e *Encode) document() map[string]any {
	obj := newObject(e.Extra)
	obj["x"] = e.X
	obj["y"] = e.Y
	if len(e.Tooltip) > 0 {
		obj["tooltip"] = e.Tooltip
	}

	return obj
}
