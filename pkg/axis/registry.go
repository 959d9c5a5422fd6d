package axis

import (
	"fmt"
	"math"
	"reflect"
	"sync"
)

// Classifier is implemented by host types which know their own axis kind.
//
// AxisKind is called on the zero value of the type: it must not depend on the receiver's value.
type Classifier interface {
	AxisKind() Kind
}

// Marshaler is implemented by host types which provide their own wire representation.
//
// A type implementing [Classifier] but not [Marshaler] is serialized with the generic default
// of its underlying kind.
type Marshaler interface {
	MarshalAxisValue() (WireValue, error)
}

// Strategy converts a host value into a wire value.
type Strategy[T any] func(T) (WireValue, error)

// Number is the set of Go built-in numeric types, which are always classified as [KindValue].
//
// The set is exact: named types such as [time.Weekday] or [time.Duration] are not members,
// even though their underlying type is numeric.
type Number interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

type entry struct {
	kind   Kind
	encode func(any) (WireValue, error)
}

var (
	classifierType = reflect.TypeFor[Classifier]()
	marshalerType  = reflect.TypeFor[Marshaler]()
)

// Registry associates host types with an axis kind and a serialization strategy.
//
// A [Registry] is safe for concurrent use: extension packages typically register their types
// from an init function.
type Registry struct {
	mu       sync.RWMutex
	entries  map[reflect.Type]entry
	resolved map[reflect.Type]entry
	gen      uint64 // bumped by every registration

	resolving func() // called between a lookup and its caching
}

// NewRegistry builds a [Registry] which knows about the standard library time types.
func NewRegistry() *Registry {
	r := &Registry{
		entries:  make(map[reflect.Type]entry),
		resolved: make(map[reflect.Type]entry),
	}
	registerBuiltins(r)

	return r
}

// Register associates the host type T with an axis kind and a serialization strategy.
//
// Registering a type again replaces the previous association.
// Register panics if the kind is not one of [KindValue], [KindCategory] or [KindTime],
// or if the strategy is nil.
func Register[T any](r *Registry, kind Kind, strategy Strategy[T]) {
	switch kind {
	case KindValue, KindCategory, KindTime:
	default:
		panic(fmt.Sprintf("axis: cannot register %v with kind %q", reflect.TypeFor[T](), kind))
	}

	if strategy == nil {
		panic(fmt.Sprintf("axis: nil serialization strategy for %v", reflect.TypeFor[T]()))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[reflect.TypeFor[T]()] = entry{
		kind: kind,
		encode: func(v any) (WireValue, error) {
			return strategy(v.(T))
		},
	}
	r.gen++
	clear(r.resolved)
}

// Registered reports whether T has an explicit registration in this registry.
func Registered[T any](r *Registry) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[reflect.TypeFor[T]()]

	return ok
}

// Codec is the resolved classification of a host type: its axis kind and how to serialize it.
type Codec[T any] struct {
	kind   Kind
	encode func(any) (WireValue, error)
}

// Kind of axis the host type is classified as.
func (c Codec[T]) Kind() Kind {
	return c.kind
}

// Encode converts a host value into a wire value.
func (c Codec[T]) Encode(v T) (WireValue, error) {
	return c.encode(v)
}

// For resolves the [Codec] of the host type T.
//
// A nil registry stands for [Default].
//
// Resolution order: a self-describing type (implementing [Classifier]) comes first,
// then explicit registrations, then the generic default for types with a numeric or string
// underlying type.
func For[T any](r *Registry) (Codec[T], error) {
	if r == nil {
		r = Default()
	}

	e, err := r.resolve(reflect.TypeFor[T](), func() (Classifier, bool) {
		var zero T
		c, ok := any(zero).(Classifier)

		return c, ok
	})
	if err != nil {
		return Codec[T]{}, err
	}

	return Codec[T]{kind: e.kind, encode: e.encode}, nil
}

// MustFor is like [For] but panics if T cannot be classified.
func MustFor[T any](r *Registry) Codec[T] {
	c, err := For[T](r)
	if err != nil {
		panic(err)
	}

	return c
}

// KindOf returns the axis kind of the host type T.
func KindOf[T any](r *Registry) (Kind, error) {
	c, err := For[T](r)
	if err != nil {
		return KindUnknown, err
	}

	return c.Kind(), nil
}

func (r *Registry) resolve(typ reflect.Type, self func() (Classifier, bool)) (entry, error) {
	for {
		r.mu.RLock()
		e, ok := r.resolved[typ]
		gen := r.gen
		r.mu.RUnlock()
		if ok {
			return e, nil
		}

		e, err := r.lookup(typ, self)
		if err != nil {
			return entry{}, err
		}

		if r.resolving != nil {
			r.resolving()
		}

		r.mu.Lock()
		if r.gen != gen {
			// a registration happened during the lookup: resolve again
			r.mu.Unlock()

			continue
		}
		r.resolved[typ] = e
		r.mu.Unlock()

		return e, nil
	}
}

func (r *Registry) lookup(typ reflect.Type, self func() (Classifier, bool)) (entry, error) {
	if typ.Implements(classifierType) {
		classifier, ok := self()
		if !ok {
			return entry{}, &UnregisteredTypeError{Type: typ, Reason: "AxisKind cannot be called on a nil interface"}
		}

		kind := classifier.AxisKind()
		switch kind {
		case KindValue, KindCategory, KindTime:
		default:
			return entry{}, &UnregisteredTypeError{Type: typ, Reason: fmt.Sprintf("self-described kind %q is not a host kind", kind)}
		}

		if typ.Implements(marshalerType) {
			return entry{
				kind: kind,
				encode: func(v any) (WireValue, error) {
					return v.(Marshaler).MarshalAxisValue()
				},
			}, nil
		}

		encode, ok := defaultEncoder(typ)
		if !ok {
			return entry{}, &UnregisteredTypeError{Type: typ, Reason: "self-described type must implement axis.Marshaler"}
		}

		return entry{kind: kind, encode: encode}, nil
	}

	r.mu.RLock()
	e, ok := r.entries[typ]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	encode, ok := defaultEncoder(typ)
	if !ok {
		return entry{}, &UnregisteredTypeError{Type: typ}
	}

	if typ.Kind() == reflect.String {
		return entry{kind: KindCategory, encode: encode}, nil
	}

	return entry{kind: KindValue, encode: encode}, nil
}

// defaultEncoder is the identity conversion for types with a numeric or string underlying type.
func defaultEncoder(typ reflect.Type) (func(any) (WireValue, error), bool) {
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any) (WireValue, error) {
			return Int(reflect.ValueOf(v).Int()), nil
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return func(v any) (WireValue, error) {
			return Uint(reflect.ValueOf(v).Uint()), nil
		}, true
	case reflect.Float32:
		return func(v any) (WireValue, error) {
			f := float32(reflect.ValueOf(v).Float())
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return WireValue{}, fmt.Errorf("%v: %w", f, errNotFinite)
			}

			return Float32(f), nil
		}, true
	case reflect.Float64:
		return func(v any) (WireValue, error) {
			f := reflect.ValueOf(v).Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return WireValue{}, fmt.Errorf("%v: %w", f, errNotFinite)
			}

			return Float(f), nil
		}, true
	case reflect.String:
		return func(v any) (WireValue, error) {
			return String(reflect.ValueOf(v).String()), nil
		}, true
	default:
		return nil, false
	}
}
