package axis

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupportedAxisKind indicates that an operation reserved to value axes was requested on
// an axis of another kind.
var ErrUnsupportedAxisKind = errors.New("unsupported axis kind")

// ErrSerializationFailed indicates that a host value could not be converted into a wire value.
var ErrSerializationFailed = errors.New("serialization failed")

// ErrUnregisteredType indicates that a host type has no axis classification.
var ErrUnregisteredType = errors.New("unregistered axis type")

var errNotFinite = errors.New("not a finite number")

// UnsupportedAxisKindError reports which operation was refused, on which axis.
type UnsupportedAxisKindError struct {
	Op   string // e.g. "regression"
	Axis string // "x", "y", or empty when the axis is not known
	Kind Kind
}

func (e *UnsupportedAxisKindError) Error() string {
	name := "axis"
	if e.Axis != "" {
		name = e.Axis + " axis"
	}

	return fmt.Sprintf("%s requires a value axis: %s is of kind %q: %v", e.Op, name, e.Kind, ErrUnsupportedAxisKind)
}

func (e *UnsupportedAxisKindError) Unwrap() error {
	return ErrUnsupportedAxisKind
}

// NewUnsupportedAxisKindError creates a new [UnsupportedAxisKindError].
func NewUnsupportedAxisKindError(op, axisName string, kind Kind) *UnsupportedAxisKindError {
	return &UnsupportedAxisKindError{
		Op:   op,
		Axis: axisName,
		Kind: kind,
	}
}

// SerializationError carries the path in the option document of a value that failed to serialize.
type SerializationError struct {
	Path string // e.g. "series[0].data[2][0]"
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("%v at %s: %v", ErrSerializationFailed, e.Path, e.Err)
}

func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerializationFailed, e.Err}
}

// NewSerializationError creates a new [SerializationError].
func NewSerializationError(path string, err error) *SerializationError {
	return &SerializationError{
		Path: path,
		Err:  err,
	}
}

// UnregisteredTypeError reports a host type that cannot be classified.
type UnregisteredTypeError struct {
	Type   reflect.Type
	Reason string
}

func (e *UnregisteredTypeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %v", ErrUnregisteredType, e.Type)
	}

	return fmt.Sprintf("%v: %v: %s", ErrUnregisteredType, e.Type, e.Reason)
}

func (e *UnregisteredTypeError) Unwrap() error {
	return ErrUnregisteredType
}
