package axis

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestKindOfBuiltins(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		kind func(*Registry) (Kind, error)
		want Kind
	}{
		{"int", KindOf[int], KindValue},
		{"int8", KindOf[int8], KindValue},
		{"int16", KindOf[int16], KindValue},
		{"int32", KindOf[int32], KindValue},
		{"int64", KindOf[int64], KindValue},
		{"uint", KindOf[uint], KindValue},
		{"uint8", KindOf[uint8], KindValue},
		{"uint16", KindOf[uint16], KindValue},
		{"uint32", KindOf[uint32], KindValue},
		{"uint64", KindOf[uint64], KindValue},
		{"float32", KindOf[float32], KindValue},
		{"float64", KindOf[float64], KindValue},
		{"string", KindOf[string], KindCategory},
		{"time.Time", KindOf[time.Time], KindTime},
		{"time.Weekday", KindOf[time.Weekday], KindCategory},
		{"time.Month", KindOf[time.Month], KindCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := tt.kind(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)

			again, err := tt.kind(r)
			require.NoError(t, err)
			assert.Equal(t, kind, again, "classification must be stable")
		})
	}
}

func TestKindOfWithIsolatedRegistry(t *testing.T) {
	r := NewRegistry()

	kind, err := KindOf[time.Time](r)
	require.NoError(t, err)
	assert.Equal(t, KindTime, kind)

	kind, err = KindOf[float64](r)
	require.NoError(t, err)
	assert.Equal(t, KindValue, kind)
}

func TestEncodeBuiltins(t *testing.T) {
	t.Run("date-time as epoch milliseconds", func(t *testing.T) {
		c := MustFor[time.Time](nil)
		v, err := c.Encode(time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, int64(1609459200000), v.Interface())
	})

	t.Run("date-time in another zone", func(t *testing.T) {
		paris := time.FixedZone("CET", 3600)
		c := MustFor[time.Time](nil)
		v, err := c.Encode(time.Date(2021, time.January, 1, 1, 0, 0, 0, paris))
		require.NoError(t, err)
		assert.Equal(t, int64(1609459200000), v.Interface())
	})

	t.Run("sub-millisecond precision is truncated", func(t *testing.T) {
		c := MustFor[time.Time](nil)
		v, err := c.Encode(time.Unix(0, 1_999_999))
		require.NoError(t, err)
		assert.Equal(t, int64(1), v.Interface())
	})

	t.Run("weekday as name", func(t *testing.T) {
		c := MustFor[time.Weekday](nil)
		v, err := c.Encode(time.Monday)
		require.NoError(t, err)
		assert.Equal(t, "Monday", v.Interface())
	})

	t.Run("month as name", func(t *testing.T) {
		c := MustFor[time.Month](nil)
		v, err := c.Encode(time.January)
		require.NoError(t, err)
		assert.Equal(t, "January", v.Interface())
	})

	t.Run("numbers pass through", func(t *testing.T) {
		v, err := MustFor[float64](nil).Encode(1.5)
		require.NoError(t, err)
		assert.Equal(t, 1.5, v.Interface())

		v, err = MustFor[int32](nil).Encode(-3)
		require.NoError(t, err)
		assert.Equal(t, int64(-3), v.Interface())

		v, err = MustFor[uint64](nil).Encode(math.MaxUint64)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), v.Interface())
	})

	t.Run("float32 keeps its shortest representation", func(t *testing.T) {
		v, err := MustFor[float32](nil).Encode(0.1)
		require.NoError(t, err)
		assert.Equal(t, float32(0.1), v.Interface())
		assert.Equal(t, "0.1", v.String())

		raw, err := v.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "0.1", string(raw))

		f, ok := v.Float64()
		require.True(t, ok)
		assert.InDelta(t, 0.1, f, 1e-7)

		_, err = MustFor[float32](nil).Encode(float32(math.Inf(1)))
		require.Error(t, err)
	})

	t.Run("strings pass through", func(t *testing.T) {
		v, err := MustFor[string](nil).Encode("First")
		require.NoError(t, err)
		assert.Equal(t, "First", v.Interface())
	})

	t.Run("non finite floats are rejected", func(t *testing.T) {
		_, err := MustFor[float64](nil).Encode(math.NaN())
		require.Error(t, err)

		_, err = MustFor[float32](nil).Encode(float32(math.Inf(1)))
		require.Error(t, err)
	})
}

type celsius float64

type grade string

type fiscalQuarter struct {
	year    int
	quarter int
}

func (fiscalQuarter) AxisKind() Kind { return KindCategory }

func (q fiscalQuarter) MarshalAxisValue() (WireValue, error) {
	if q.quarter < 1 || q.quarter > 4 {
		return WireValue{}, errors.New("invalid quarter")
	}

	return String(fmt.Sprintf("FY%dQ%d", q.year, q.quarter)), nil
}

type logLevel int

func (logLevel) AxisKind() Kind { return KindCategory }

type opaque struct{ v int }

func (opaque) AxisKind() Kind { return KindValue }

type point struct{ x, y float64 }

func TestSelfDescribedTypes(t *testing.T) {
	t.Run("named numeric type uses the generic default", func(t *testing.T) {
		c, err := For[celsius](nil)
		require.NoError(t, err)
		assert.Equal(t, KindValue, c.Kind())

		v, err := c.Encode(21.5)
		require.NoError(t, err)
		assert.Equal(t, 21.5, v.Interface())
	})

	t.Run("named string type uses the generic default", func(t *testing.T) {
		c, err := For[grade](nil)
		require.NoError(t, err)
		assert.Equal(t, KindCategory, c.Kind())
	})

	t.Run("classifier with marshaler", func(t *testing.T) {
		c, err := For[fiscalQuarter](nil)
		require.NoError(t, err)
		assert.Equal(t, KindCategory, c.Kind())

		v, err := c.Encode(fiscalQuarter{year: 2024, quarter: 3})
		require.NoError(t, err)
		assert.Equal(t, "FY2024Q3", v.Interface())

		_, err = c.Encode(fiscalQuarter{year: 2024, quarter: 7})
		require.Error(t, err)
	})

	t.Run("classifier overrides the generic default kind", func(t *testing.T) {
		c, err := For[logLevel](nil)
		require.NoError(t, err)
		assert.Equal(t, KindCategory, c.Kind())

		v, err := c.Encode(logLevel(2))
		require.NoError(t, err)
		assert.Equal(t, int64(2), v.Interface())
	})

	t.Run("classifier without a natural representation", func(t *testing.T) {
		_, err := For[opaque](nil)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrUnregisteredType)
	})
}

func TestRegistryExtension(t *testing.T) {
	r := NewRegistry()

	_, err := For[point](r)
	require.ErrorIs(t, err, ErrUnregisteredType)

	var target *UnregisteredTypeError
	require.ErrorAs(t, err, &target)
	assert.Contains(t, target.Error(), "point")

	Register[point](r, KindValue, func(p point) (WireValue, error) {
		return Float(p.x), nil
	})
	assert.True(t, Registered[point](r))
	assert.False(t, Registered[point](Default()), "registration must not leak into other registries")

	c, err := For[point](r)
	require.NoError(t, err)
	assert.Equal(t, KindValue, c.Kind())

	v, err := c.Encode(point{x: 3, y: 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Interface())

	t.Run("registering again replaces the strategy", func(t *testing.T) {
		Register[point](r, KindCategory, func(p point) (WireValue, error) {
			return String("p"), nil
		})

		c, err := For[point](r)
		require.NoError(t, err)
		assert.Equal(t, KindCategory, c.Kind())
	})

	t.Run("registry overrides the generic default", func(t *testing.T) {
		Register[celsius](r, KindCategory, func(c celsius) (WireValue, error) {
			return String(Float(float64(c)).String() + "°C"), nil
		})

		c, err := For[celsius](r)
		require.NoError(t, err)
		assert.Equal(t, KindCategory, c.Kind())

		v, err := c.Encode(21.5)
		require.NoError(t, err)
		assert.Equal(t, "21.5°C", v.Interface())
	})
}

func TestRegisterDuringResolution(t *testing.T) {
	r := NewRegistry()
	Register[point](r, KindValue, func(p point) (WireValue, error) {
		return Float(p.x), nil
	})

	var registered bool
	r.resolving = func() {
		if registered {
			return
		}
		registered = true

		Register[point](r, KindCategory, func(point) (WireValue, error) {
			return String("p"), nil
		})
	}

	c, err := For[point](r)
	require.NoError(t, err)
	assert.Equal(t, KindCategory, c.Kind())

	// the cache holds the latest registration
	r.resolving = nil
	c, err = For[point](r)
	require.NoError(t, err)
	assert.Equal(t, KindCategory, c.Kind())
}

func TestConcurrentResolution(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Go(func() {
			if i%2 == 0 {
				Register[celsius](r, KindValue, func(c celsius) (WireValue, error) {
					return Float(float64(c)), nil
				})

				return
			}

			_, err := For[celsius](r)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	kind, err := KindOf[celsius](r)
	require.NoError(t, err)
	assert.Equal(t, KindValue, kind)
}

func TestRegisterPanics(t *testing.T) {
	r := NewRegistry()

	assert.Panics(t, func() {
		Register[point](r, KindLog, func(point) (WireValue, error) { return Int(0), nil })
	})

	assert.Panics(t, func() {
		Register[point](r, KindUnknown, func(point) (WireValue, error) { return Int(0), nil })
	})

	assert.Panics(t, func() {
		Register[point](r, KindValue, nil)
	})
}

func TestUnclassifiableTypes(t *testing.T) {
	_, err := For[any](nil)
	require.ErrorIs(t, err, ErrUnregisteredType)

	_, err = For[[]int](nil)
	require.ErrorIs(t, err, ErrUnregisteredType)

	assert.Panics(t, func() {
		_ = MustFor[map[string]int](nil)
	})
}
