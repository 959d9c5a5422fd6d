package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type sizeUnit uint8

const (
	unitPixels sizeUnit = iota
	unitPercent
)

// Size is the width or height of a chart container: a number of pixels or a percentage
// of the enclosing element.
type Size struct {
	unit  sizeUnit
	value float64
}

var errInvalidSize = errors.New("invalid size")

// Pixels builds a [Size] in pixels, e.g. "600px".
func Pixels(px uint) Size {
	return Size{unit: unitPixels, value: float64(px)}
}

// Percent builds a [Size] relative to the enclosing element, e.g. "20%".
func Percent(pct float64) Size {
	return Size{unit: unitPercent, value: pct}
}

// ParseSize parses a size such as "600px", "600" or "20%".
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)

	if pct, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(pct, 64)
		if err != nil || f < 0 {
			return Size{}, fmt.Errorf("%q: %w", s, errInvalidSize)
		}

		return Percent(f), nil
	}

	px, _ := strings.CutSuffix(s, "px")
	n, err := strconv.ParseUint(px, 10, 0)
	if err != nil {
		return Size{}, fmt.Errorf("%q: %w", s, errInvalidSize)
	}

	return Pixels(uint(n)), nil
}

// IsPercent reports whether the size is relative to the enclosing element.
func (s Size) IsPercent() bool {
	return s.unit == unitPercent
}

// Value is the number of pixels or the percentage.
func (s Size) Value() float64 {
	return s.value
}

// String renders the size as a CSS length.
func (s Size) String() string {
	v := strconv.FormatFloat(s.value, 'f', -1, 64)
	if s.unit == unitPercent {
		return v + "%"
	}

	return v + "px"
}

// MarshalText renders the size as a CSS length.
func (s Size) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a size with [ParseSize].
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
