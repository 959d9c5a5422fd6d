// Package civilaxis registers the civil calendar types from cloud.google.com/go/civil as axis host types.
//
// Importing this package for its side effects registers the types into [axis.Default]:
//
//	import _ "github.com/fredbi/echartgen/pkg/civilaxis"
//
// Use [Register] to add them to another [axis.Registry].
package civilaxis

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/fredbi/echartgen/pkg/axis"
)

func init() {
	Register(axis.Default())
}

// Register the civil types into a registry.
//
//   - [civil.DateTime] is a time axis value, interpreted as UTC
//   - [civil.Date] is a time axis value, at midnight UTC
//   - [civil.Time] is a category axis value, formatted as "HH:MM:SS"
func Register(r *axis.Registry) {
	axis.Register[civil.DateTime](r, axis.KindTime, DateTimeMillis)
	axis.Register[civil.Date](r, axis.KindTime, DateMillis)
	axis.Register[civil.Time](r, axis.KindCategory, Clock)
}

// DateTimeMillis converts a [civil.DateTime] into milliseconds since the Unix epoch, as if in UTC.
func DateTimeMillis(dt civil.DateTime) (axis.WireValue, error) {
	if !dt.IsValid() {
		return axis.WireValue{}, fmt.Errorf("invalid civil date-time %v", dt)
	}

	return axis.EpochMillis(dt.In(time.UTC))
}

// DateMillis converts a [civil.Date] into milliseconds since the Unix epoch, at midnight UTC.
func DateMillis(d civil.Date) (axis.WireValue, error) {
	if !d.IsValid() {
		return axis.WireValue{}, fmt.Errorf("invalid civil date %v", d)
	}

	return axis.EpochMillis(d.In(time.UTC))
}

// Clock formats a [civil.Time] as "HH:MM:SS". Fractional seconds are dropped.
func Clock(t civil.Time) (axis.WireValue, error) {
	if !t.IsValid() {
		return axis.WireValue{}, fmt.Errorf("invalid time of day %02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	}

	return axis.String(fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)), nil
}
