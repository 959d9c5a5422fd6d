package config

import "strings"

// MetricName identifies a benchmark metric (e.g. "nsPerOp", "allocsPerOp").
type MetricName string

// Standard benchmark metric names.
const (
	MetricNsPerOp     MetricName = "nsPerOp"
	MetricAllocsPerOp MetricName = "allocsPerOp"
	MetricBytesPerOp  MetricName = "bytesPerOp"
	MetricMBPerS      MetricName = "MBytesPerS"
)

// String returns the metric name as a plain string.
func (m MetricName) String() string {
	return string(m)
}

// IsValid reports whether the metric name is one of the known benchmark metrics.
func (m MetricName) IsValid() bool {
	switch m {
	case MetricNsPerOp, MetricAllocsPerOp, MetricBytesPerOp, MetricMBPerS:
		return true
	default:
		return false
	}
}

// Unit is the unit printed by "go test -bench" for this metric.
func (m MetricName) Unit() string {
	switch m {
	case MetricNsPerOp:
		return "ns/op"
	case MetricAllocsPerOp:
		return "allocs/op"
	case MetricBytesPerOp:
		return "B/op"
	case MetricMBPerS:
		return "MB/s"
	default:
		return ""
	}
}

// ParseMetricName resolves a metric given either by name or by its benchmark unit, e.g. "ns/op".
//
// The match is case-insensitive.
func ParseMetricName(s string) (MetricName, bool) {
	for _, m := range AllMetricNames() {
		if strings.EqualFold(s, m.String()) || strings.EqualFold(s, m.Unit()) {
			return m, true
		}
	}

	return "", false
}

// AllMetricNames returns all known benchmark metric names.
func AllMetricNames() []MetricName {
	return []MetricName{
		MetricNsPerOp,
		MetricAllocsPerOp,
		MetricBytesPerOp,
		MetricMBPerS,
	}
}
