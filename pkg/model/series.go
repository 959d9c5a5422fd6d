package model

// Pair is a data point of a cartesian chart.
type Pair[X, Y any] struct {
	X X
	Y Y
}

// P builds a [Pair].
func P[X, Y any](x X, y Y) Pair[X, Y] {
	return Pair[X, Y]{X: x, Y: y}
}

// Named is a named single value.
type Named[Y any] struct {
	Name  string
	Value Y
}

// NamedPair is a named data point.
type NamedPair[X, Y any] struct {
	Name string
	X    X
	Y    Y
}

type dataKind uint8

const (
	dataNone dataKind = iota
	dataValues
	dataPairs
	dataNamedValues
	dataNamedPairs
	dataIndex
)

// SeriesData is the data of a series: inline values or a reference to a dataset.
//
// Use one of [Values], [Pairs], [NamedValues], [NamedPairs] or [DatasetIndex] to build it.
// The zero value holds no data.
type SeriesData[X, Y any] struct {
	kind       dataKind
	values     []Y
	pairs      []Pair[X, Y]
	named      []Named[Y]
	namedPairs []NamedPair[X, Y]
	index      int
}

// Values builds series data from y values only. The x values are implied by the x axis.
func Values[X, Y any](values ...Y) SeriesData[X, Y] {
	return SeriesData[X, Y]{kind: dataValues, values: values}
}

// Pairs builds series data from (x, y) points.
func Pairs[X, Y any](pairs ...Pair[X, Y]) SeriesData[X, Y] {
	return SeriesData[X, Y]{kind: dataPairs, pairs: pairs}
}

// NamedValues builds series data from named y values.
func NamedValues[X, Y any](values ...Named[Y]) SeriesData[X, Y] {
	return SeriesData[X, Y]{kind: dataNamedValues, named: values}
}

// NamedPairs builds series data from named (x, y) points.
func NamedPairs[X, Y any](pairs ...NamedPair[X, Y]) SeriesData[X, Y] {
	return SeriesData[X, Y]{kind: dataNamedPairs, namedPairs: pairs}
}

// DatasetIndex builds series data which refers to a dataset by its position.
func DatasetIndex[X, Y any](i int) SeriesData[X, Y] {
	return SeriesData[X, Y]{kind: dataIndex, index: i}
}

// Index returns the dataset index, if the data refers to a dataset.
func (d SeriesData[X, Y]) Index() (int, bool) {
	return d.index, d.kind == dataIndex
}

// Len is the number of inline data points.
func (d SeriesData[X, Y]) Len() int {
	switch d.kind {
	case dataValues:
		return len(d.values)
	case dataPairs:
		return len(d.pairs)
	case dataNamedValues:
		return len(d.named)
	case dataNamedPairs:
		return len(d.namedPairs)
	default:
		return 0
	}
}

// Points returns the inline data as (x, y) points.
//
// Data without x values and dataset references yield no points.
func (d SeriesData[X, Y]) Points() []Pair[X, Y] {
	switch d.kind {
	case dataPairs:
		return d.pairs
	case dataNamedPairs:
		points := make([]Pair[X, Y], 0, len(d.namedPairs))
		for _, p := range d.namedPairs {
			points = append(points, P(p.X, p.Y))
		}

		return points
	default:
		return nil
	}
}

// YValues returns the y values of the inline data.
func (d SeriesData[X, Y]) YValues() []Y {
	switch d.kind {
	case dataValues:
		return d.values
	case dataNamedValues:
		ys := make([]Y, 0, len(d.named))
		for _, n := range d.named {
			ys = append(ys, n.Value)
		}

		return ys
	default:
		points := d.Points()
		ys := make([]Y, 0, len(points))
		for _, p := range points {
			ys = append(ys, p.Y)
		}

		return ys
	}
}

// apply sets the "data" or "datasetIndex" key of a series object.
func (d SeriesData[X, Y]) apply(obj map[string]any, c codecs[X, Y], path string) error {
	dataPath := field(path, "data")

	switch d.kind {
	case dataIndex:
		obj["datasetIndex"] = d.index

	case dataValues:
		data := make([]any, 0, len(d.values))
		for i, v := range d.values {
			w, err := encodeValue(c.y, v, index(dataPath, i))
			if err != nil {
				return err
			}
			data = append(data, w)
		}
		obj["data"] = data

	case dataPairs:
		data := make([]any, 0, len(d.pairs))
		for i, p := range d.pairs {
			point, err := c.pair(p.X, p.Y, index(dataPath, i))
			if err != nil {
				return err
			}
			data = append(data, point)
		}
		obj["data"] = data

	case dataNamedValues:
		data := make([]any, 0, len(d.named))
		for i, n := range d.named {
			w, err := encodeValue(c.y, n.Value, field(index(dataPath, i), "value"))
			if err != nil {
				return err
			}
			data = append(data, map[string]any{"name": n.Name, "value": w})
		}
		obj["data"] = data

	case dataNamedPairs:
		data := make([]any, 0, len(d.namedPairs))
		for i, p := range d.namedPairs {
			point, err := c.pair(p.X, p.Y, field(index(dataPath, i), "value"))
			if err != nil {
				return err
			}
			data = append(data, map[string]any{"name": p.Name, "value": point})
		}
		obj["data"] = data
	}

	return nil
}

// Series is one series of the chart.
type Series[X, Y any] struct {
	Type       SeriesType
	Name       string
	Smooth     *bool
	AreaStyle  *AreaStyle
	Data       SeriesData[X, Y]
	ShowSymbol *bool
	Symbol     Symbol
	SymbolSize *float64
	Encode     *Encode
	Extra      Extra
}

func (s *Series[X, Y]) document(c codecs[X, Y], path string) (map[string]any, error) {
	obj := newObject(s.Extra)
	setString(obj, "type", s.Type)
	setString(obj, "name", s.Name)
	setBool(obj, "smooth", s.Smooth)
	if s.AreaStyle != nil {
		obj["areaStyle"] = s.AreaStyle.document()
	}
	if err := s.Data.apply(obj, c, path); err != nil {
		return nil, err
	}
	setBool(obj, "showSymbol", s.ShowSymbol)
	setString(obj, "symbol", s.Symbol)
	setFloat(obj, "symbolSize", s.SymbolSize)
	if s.Encode != nil {
		obj["encode"] = s.Encode.document()
	}

	return obj, nil
}
