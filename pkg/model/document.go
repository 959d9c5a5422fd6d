package model

import (
	"maps"
	"strconv"

	"github.com/fredbi/echartgen/pkg/axis"
)

// Extra holds arbitrary additional properties of a component.
//
// Extra properties are merged into the component's wire object. Typed fields take precedence
// over an extra property with the same key.
type Extra map[string]any

// With returns a copy of the extra properties with one more key.
func (e Extra) With(key string, value any) Extra {
	out := make(Extra, len(e)+1)
	maps.Copy(out, e)
	out[key] = value

	return out
}

// codecs holds the resolved serialization of both axis types.
type codecs[X, Y any] struct {
	x axis.Codec[X]
	y axis.Codec[Y]
}

func resolveCodecs[X, Y any](r *axis.Registry) (codecs[X, Y], error) {
	cx, err := axis.For[X](r)
	if err != nil {
		return codecs[X, Y]{}, err
	}

	cy, err := axis.For[Y](r)
	if err != nil {
		return codecs[X, Y]{}, err
	}

	return codecs[X, Y]{x: cx, y: cy}, nil
}

func (c codecs[X, Y]) pair(x X, y Y, path string) ([]any, error) {
	wx, err := c.x.Encode(x)
	if err != nil {
		return nil, axis.NewSerializationError(index(path, 0), err)
	}

	wy, err := c.y.Encode(y)
	if err != nil {
		return nil, axis.NewSerializationError(index(path, 1), err)
	}

	return []any{wx, wy}, nil
}

func encodeValue[T any](c axis.Codec[T], v T, path string) (axis.WireValue, error) {
	w, err := c.Encode(v)
	if err != nil {
		return axis.WireValue{}, axis.NewSerializationError(path, err)
	}

	return w, nil
}

// newObject starts a wire object from the extra properties.
func newObject(extra Extra) map[string]any {
	obj := make(map[string]any, len(extra)+4)
	maps.Copy(obj, extra)

	return obj
}

func setString[T ~string](obj map[string]any, key string, value T) {
	if value != "" {
		obj[key] = string(value)
	}
}

func setBool(obj map[string]any, key string, value *bool) {
	if value != nil {
		obj[key] = *value
	}
}

func setFloat(obj map[string]any, key string, value *float64) {
	if value != nil {
		obj[key] = *value
	}
}

func setPosition(obj map[string]any, key string, value *Position) {
	if value != nil {
		obj[key] = value.wire()
	}
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func field(path, name string) string {
	if path == "" {
		return name
	}

	return path + "." + name
}

// Bool is a shorthand to build a *bool for optional fields.
func Bool(v bool) *bool {
	return &v
}

// Float is a shorthand to build a *float64 for optional fields.
func Float(v float64) *float64 {
	return &v
}
