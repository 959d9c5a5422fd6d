package model

import (
	"encoding/json"
	"strconv"
)

// PositionKeyword is a named position in a container.
type PositionKeyword string

// Position keywords.
const (
	Left   PositionKeyword = "left"
	Right  PositionKeyword = "right"
	Top    PositionKeyword = "top"
	Bottom PositionKeyword = "bottom"
	Center PositionKeyword = "center"
	Middle PositionKeyword = "middle"
)

type positionKind uint8

const (
	positionKeyword positionKind = iota
	positionPixels
	positionPercent
	positionExpr
)

// Position of a component: a keyword, a number of pixels, a percentage of the container, or a raw expression.
type Position struct {
	kind    positionKind
	keyword PositionKeyword
	value   float64
	expr    string
}

// At builds a keyword [Position], e.g. At(Center).
func At(keyword PositionKeyword) Position {
	return Position{kind: positionKeyword, keyword: keyword}
}

// Pixels builds a [Position] in pixels. It serializes as a number.
func Pixels(px float64) Position {
	return Position{kind: positionPixels, value: px}
}

// Percent builds a [Position] relative to the container. It serializes as a string such as "20%".
func Percent(pct float64) Position {
	return Position{kind: positionPercent, value: pct}
}

// Expr builds a [Position] from a raw string.
func Expr(expr string) Position {
	return Position{kind: positionExpr, expr: expr}
}

// Ref is a shorthand to build a [*Position] for optional fields.
func Ref(p Position) *Position {
	return &p
}

// String renders the position as it appears in the option document.
func (p Position) String() string {
	switch p.kind {
	case positionPixels:
		return strconv.FormatFloat(p.value, 'f', -1, 64)
	case positionPercent:
		return FormatPercent(p.value)
	case positionExpr:
		return p.expr
	default:
		return string(p.keyword)
	}
}

func (p Position) wire() any {
	if p.kind == positionPixels {
		return p.value
	}

	return p.String()
}

// MarshalJSON renders the position as a JSON number (pixels) or a string.
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// FormatPercent formats a percentage such as "20%" or "12.5%".
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}
