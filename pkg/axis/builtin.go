package axis

import (
	"fmt"
	"time"
)

var defaultRegistry = NewRegistry()

// Default returns the process-wide [Registry].
//
// Extension packages such as civilaxis register their types into it when imported.
func Default() *Registry {
	return defaultRegistry
}

func registerBuiltins(r *Registry) {
	Register[time.Time](r, KindTime, EpochMillis)
	Register[time.Weekday](r, KindCategory, Name[time.Weekday])
	Register[time.Month](r, KindCategory, Name[time.Month])
}

// EpochMillis converts a [time.Time] into the number of milliseconds elapsed since the Unix epoch.
//
// Sub-millisecond precision is truncated.
func EpochMillis(t time.Time) (WireValue, error) {
	return Int(t.UnixMilli()), nil
}

// Name converts an enumerated value into its display name, e.g. "Monday" or "January".
func Name[T fmt.Stringer](v T) (WireValue, error) {
	return String(v.String()), nil
}
