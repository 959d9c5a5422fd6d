package dataload

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fredbi/echartgen/internal/pkg/config"
)

func (l *Loader) sheet(src *config.SheetSource) ([]Point, error) {
	f, err := excelize.OpenFile(l.resolve(src.File))
	if err != nil {
		return nil, fmt.Errorf("spreadsheet %q: %w", src.File, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := src.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet %q, sheet %q: %w", src.File, sheet, err)
	}

	xCol, err := column(src.X)
	if err != nil {
		return nil, err
	}

	yCol, err := column(src.Y)
	if err != nil {
		return nil, err
	}

	labelCol := -1
	if src.Label != "" {
		labelCol, err = column(src.Label)
		if err != nil {
			return nil, err
		}
	}

	if src.Header && len(rows) > 0 {
		rows = rows[1:]
	}

	points := make([]Point, 0, len(rows))
	skipped := 0

	for i, row := range rows {
		x, y := cell(row, xCol), cell(row, yCol)
		if x == "" && y == "" {
			skipped++

			continue
		}

		value, err := Float(y)
		if err != nil {
			return nil, fmt.Errorf("sheet %q, cell %s%d: %w", sheet, strings.ToUpper(src.Y), rowNumber(i, src.Header), err)
		}

		p := Point{X: x, Y: value}
		if n, err := Float(x); err == nil {
			p.X = n
		}

		if labelCol >= 0 {
			p.Label = cell(row, labelCol)
		}

		points = append(points, p)
	}

	if skipped > 0 {
		l.l.Info("empty rows skipped", slog.String("file", src.File), slog.Int("rows", skipped))
	}

	return points, nil
}

// column converts a column name like "B" to a zero-based index.
func column(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}

	return n - 1, nil
}

func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[col])
}

func rowNumber(i int, header bool) int {
	if header {
		return i + 2
	}

	return i + 1
}
