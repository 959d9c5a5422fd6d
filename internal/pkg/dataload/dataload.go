// Package dataload loads the raw points of a series: inline values, Go benchmark results or spreadsheets.
package dataload

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fredbi/echartgen/internal/pkg/config"
)

// ErrInvalidData is returned when a point cannot be read from its source.
var ErrInvalidData = errors.New("invalid data")

// Point is a raw data point, before it is converted to the host type of an axis.
//
// X is a float64, a string or a time.Time. The label is optional.
type Point struct {
	X     any
	Y     float64
	Label string
}

// HasLabels tells if any point is labelled.
func HasLabels(points []Point) bool {
	for _, p := range points {
		if p.Label != "" {
			return true
		}
	}

	return false
}

// Loader loads the points of series.
//
// Benchmark files are parsed once, then reused by all the series that refer to them.
type Loader struct {
	options

	sets map[string]Set
}

// New [Loader] ready to load series.
func New(opts ...Option) *Loader {
	return &Loader{
		options: optionsWithDefaults(opts),
		sets:    make(map[string]Set),
	}
}

// Load the points of a series from its source.
func (l *Loader) Load(series config.SeriesDef) ([]Point, error) {
	var (
		points []Point
		err    error
	)

	switch {
	case len(series.Data) > 0:
		points, err = inline(series.Data)
	case series.Benchmark != nil:
		points, err = l.benchmark(series.Benchmark)
	case series.Sheet != nil:
		points, err = l.sheet(series.Sheet)
	default:
		return nil, fmt.Errorf("series %q has no source: %w", series.ID, ErrInvalidData)
	}

	if err != nil {
		return nil, fmt.Errorf("loading series %q: %w", series.ID, err)
	}

	if len(points) == 0 {
		l.l.Warn("series without any data point", slog.String("series_id", series.ID))
	}

	return points, nil
}

func (l *Loader) resolve(file string) string {
	if file == "-" || filepath.IsAbs(file) || l.baseDir == "" {
		return file
	}

	return filepath.Join(l.baseDir, file)
}

func inline(rows [][]any) ([]Point, error) {
	points := make([]Point, 0, len(rows))

	for i, row := range rows {
		if len(row) < 2 || len(row) > 3 {
			return nil, fmt.Errorf("data[%d]: expected [x, y] or [x, y, label], got %d values: %w", i, len(row), ErrInvalidData)
		}

		y, err := Float(row[1])
		if err != nil {
			return nil, fmt.Errorf("data[%d][1]: %w", i, err)
		}

		p := Point{X: row[0], Y: y}
		if _, isString := row[0].(string); !isString {
			if x, err := Float(row[0]); err == nil {
				p.X = x
			}
		}

		if len(row) == 3 {
			p.Label = Text(row[2])
		}

		points = append(points, p)
	}

	return points, nil
}
