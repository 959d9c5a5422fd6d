package axis

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

type wireType uint8

const (
	wireNull wireType = iota
	wireInt
	wireUint
	wireFloat
	wireFloat32
	wireString
)

// WireValue is a scalar of the option document: an integer, a floating point number or a string.
//
// The zero value is not a valid wire value and marshals as an error.
type WireValue struct {
	typ wireType
	i   int64
	u   uint64
	f   float64
	s   string
}

var errEmptyWireValue = errors.New("empty wire value")

// Int builds an integer [WireValue].
func Int(v int64) WireValue {
	return WireValue{typ: wireInt, i: v}
}

// Uint builds an unsigned integer [WireValue].
func Uint(v uint64) WireValue {
	return WireValue{typ: wireUint, u: v}
}

// Float builds a floating point [WireValue].
func Float(v float64) WireValue {
	return WireValue{typ: wireFloat, f: v}
}

// Float32 builds a single precision floating point [WireValue].
//
// It renders with the shortest representation of the float32, e.g. 0.1 and not 0.10000000149011612.
func Float32(v float32) WireValue {
	return WireValue{typ: wireFloat32, f: float64(v)}
}

// String builds a string [WireValue].
func String(v string) WireValue {
	return WireValue{typ: wireString, s: v}
}

// IsZero reports whether the value has never been set.
func (v WireValue) IsZero() bool {
	return v.typ == wireNull
}

// IsNumber reports whether the value is an integer or a float.
func (v WireValue) IsNumber() bool {
	return v.typ == wireInt || v.typ == wireUint || v.typ == wireFloat || v.typ == wireFloat32
}

// Float64 returns the numeric value as a float64.
//
// It returns false for strings and empty values.
func (v WireValue) Float64() (float64, bool) {
	switch v.typ {
	case wireInt:
		return float64(v.i), true
	case wireUint:
		return float64(v.u), true
	case wireFloat, wireFloat32:
		return v.f, true
	default:
		return 0, false
	}
}

// Interface returns the value as an int64, uint64, float64 or string.
func (v WireValue) Interface() any {
	switch v.typ {
	case wireInt:
		return v.i
	case wireUint:
		return v.u
	case wireFloat:
		return v.f
	case wireFloat32:
		return float32(v.f)
	case wireString:
		return v.s
	default:
		return nil
	}
}

// String renders the value as text, without quoting strings.
func (v WireValue) String() string {
	switch v.typ {
	case wireInt:
		return strconv.FormatInt(v.i, 10)
	case wireUint:
		return strconv.FormatUint(v.u, 10)
	case wireFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case wireFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case wireString:
		return v.s
	default:
		return ""
	}
}

// MarshalJSON renders the value as a JSON number or string.
func (v WireValue) MarshalJSON() ([]byte, error) {
	switch v.typ {
	case wireInt:
		return strconv.AppendInt(nil, v.i, 10), nil
	case wireUint:
		return strconv.AppendUint(nil, v.u, 10), nil
	case wireFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, errNotFinite
		}

		return json.Marshal(v.f)
	case wireFloat32:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, errNotFinite
		}

		return json.Marshal(float32(v.f))
	case wireString:
		return json.Marshal(v.s)
	default:
		return nil, errEmptyWireValue
	}
}
