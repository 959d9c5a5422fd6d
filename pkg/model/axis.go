package model

import (
	"github.com/fredbi/echartgen/pkg/axis"
)

// Axis is a cartesian axis holding values of the host type T.
//
// The axis type emitted in the option document is derived from the classification of T, so that
// it cannot disagree with the data. The only exception is the log scale, which may be selected
// on value axes with [Axis.SetLogScale].
type Axis[T any] struct {
	Name    string
	Inverse *bool
	Data    []T // explicit category labels
	Extra   Extra

	log bool
}

// NewAxis builds a named axis.
func NewAxis[T any](name string) Axis[T] {
	return Axis[T]{Name: name}
}

// LogAxis builds a named axis with a logarithmic scale.
func LogAxis[T axis.Number](name string) Axis[T] {
	return Axis[T]{Name: name, log: true}
}

// SetLogScale switches the axis to a logarithmic scale.
//
// It fails with [axis.ErrUnsupportedAxisKind] if T is not classified as a value in the registry.
// A nil registry stands for [axis.Default].
func (a *Axis[T]) SetLogScale(r *axis.Registry) error {
	kind, err := axis.KindOf[T](r)
	if err != nil {
		return err
	}

	if kind != axis.KindValue {
		return axis.NewUnsupportedAxisKindError("log scale", "", kind)
	}

	a.log = true

	return nil
}

// IsLog reports whether the axis has a logarithmic scale.
func (a Axis[T]) IsLog() bool {
	return a.log
}

// Kind of the axis as emitted in the option document.
func (a Axis[T]) Kind(r *axis.Registry) (axis.Kind, error) {
	kind, err := axis.KindOf[T](r)
	if err != nil {
		return axis.KindUnknown, err
	}

	if a.log && kind == axis.KindValue {
		return axis.KindLog, nil
	}

	return kind, nil
}

func (a *Axis[T]) document(c axis.Codec[T], path string) (map[string]any, error) {
	obj := newObject(a.Extra)

	kind := c.Kind()
	if a.log && kind == axis.KindValue {
		kind = axis.KindLog
	}
	obj["type"] = kind.String()

	setString(obj, "name", a.Name)
	setBool(obj, "inverse", a.Inverse)

	if len(a.Data) > 0 {
		data := make([]any, 0, len(a.Data))
		for i, v := range a.Data {
			w, err := encodeValue(c, v, index(field(path, "data"), i))
			if err != nil {
				return nil, err
			}

			data = append(data, w)
		}

		obj["data"] = data
	}

	return obj, nil
}
