package dataload

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Float reads a number from a raw value.
//
// Strings are parsed.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %w", n, ErrInvalidData)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("%v (%T) is not a number: %w", v, v, ErrInvalidData)
	}
}

// Text formats a raw value as a string.
func Text(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case time.Time:
		return s.Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Time reads a point in time from a raw value.
//
// Strings are parsed with the given layout. Numbers are milliseconds since the Unix epoch.
func Time(v any, layout string) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(layout, strings.TrimSpace(t))
		if err != nil {
			return time.Time{}, fmt.Errorf("%q is not a time with layout %q: %w", t, layout, ErrInvalidData)
		}

		return parsed, nil
	default:
		ms, err := Float(v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%v (%T) is not a time: %w", v, v, ErrInvalidData)
		}

		return time.UnixMilli(int64(ms)).UTC(), nil
	}
}
