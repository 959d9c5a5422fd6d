package stat

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/fredbi/echartgen/pkg/model"
)

// Sort returns the rows sorted along a dimension, as the ECharts sort transform does.
//
// Numbers compare numerically and come before other values, which compare as strings.
// The sort is stable. Rows too short to hold the dimension are an error.
func Sort(rows [][]any, dimension int, order model.SortOrder) ([][]any, error) {
	if order == "" {
		order = model.SortAsc
	}

	if order != model.SortAsc && order != model.SortDesc {
		return nil, fmt.Errorf("sort order %q: %w", order, ErrOutOfDomain)
	}

	for i, row := range rows {
		if dimension < 0 || dimension >= len(row) {
			return nil, fmt.Errorf("row %d has no dimension %d: %w", i, dimension, ErrOutOfDomain)
		}
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b []any) int {
		c := compare(a[dimension], b[dimension])
		if order == model.SortDesc {
			return -c
		}

		return c
	})

	return sorted, nil
}

func compare(a, b any) int {
	fa, aIsNumber := a.(float64)
	fb, bIsNumber := b.(float64)

	switch {
	case aIsNumber && bIsNumber:
		return cmp.Compare(fa, fb)
	case aIsNumber:
		return -1
	case bIsNumber:
		return 1
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}
