package axis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/go-openapi/testify/v2/assert"
	"github.com/go-openapi/testify/v2/require"
)

func TestKind(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "value", KindValue.String())
		assert.Equal(t, "category", KindCategory.String())
		assert.Equal(t, "time", KindTime.String())
		assert.Equal(t, "log", KindLog.String())
		assert.Equal(t, "kind(42)", Kind(42).String())
	})

	t.Run("IsValueCapable", func(t *testing.T) {
		assert.True(t, KindValue.IsValueCapable())
		assert.True(t, KindLog.IsValueCapable())
		assert.False(t, KindCategory.IsValueCapable())
		assert.False(t, KindTime.IsValueCapable())
		assert.False(t, KindUnknown.IsValueCapable())
	})

	t.Run("ParseKind", func(t *testing.T) {
		for _, k := range []Kind{KindValue, KindCategory, KindTime, KindLog} {
			parsed, err := ParseKind(k.String())
			require.NoError(t, err)
			assert.Equal(t, k, parsed)
		}

		parsed, err := ParseKind(" Time ")
		require.NoError(t, err)
		assert.Equal(t, KindTime, parsed)

		_, err = ParseKind("unknown")
		require.Error(t, err)

		_, err = ParseKind("radial")
		require.Error(t, err)
	})

	t.Run("text round trip", func(t *testing.T) {
		b, err := json.Marshal(map[string]Kind{"type": KindCategory})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"category"}`, string(b))

		var k Kind
		require.NoError(t, k.UnmarshalText([]byte("log")))
		assert.Equal(t, KindLog, k)

		_, err = KindUnknown.MarshalText()
		require.Error(t, err)
	})
}

func TestWireValue(t *testing.T) {
	tests := []struct {
		name  string
		value WireValue
		want  string
	}{
		{"int", Int(1609459200000), `1609459200000`},
		{"negative int", Int(-12), `-12`},
		{"uint", Uint(math.MaxUint64), `18446744073709551615`},
		{"float", Float(2.9), `2.9`},
		{"integral float", Float(3), `3`},
		{"string", String("Monday"), `"Monday"`},
		{"string with markup", String("</script>"), `"\u003c/script\u003e"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(b))
		})
	}

	t.Run("zero value does not marshal", func(t *testing.T) {
		var v WireValue
		assert.True(t, v.IsZero())

		_, err := json.Marshal(v)
		require.Error(t, err)
	})

	t.Run("Float64", func(t *testing.T) {
		f, ok := Int(3).Float64()
		assert.True(t, ok)
		assert.Equal(t, 3.0, f)

		_, ok = String("3").Float64()
		assert.False(t, ok)
		assert.False(t, String("3").IsNumber())
		assert.True(t, Float(1).IsNumber())
	})
}
