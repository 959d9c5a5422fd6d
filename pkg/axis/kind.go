// Package axis classifies host Go types into ECharts axis kinds and knows how to
// convert their values into the scalars found in an ECharts option document.
//
// Classification is open: a type may describe itself (see [Classifier] and [Marshaler]),
// or be registered into a [Registry] by an extension package. Types with a numeric or string
// underlying type fall back to a generic identity conversion.
package axis

import (
	"fmt"
	"strings"
)

// Kind is the kind of an ECharts cartesian axis.
type Kind uint8

// Supported axis kinds.
//
// [KindLog] is a presentation variant of [KindValue]: no host type is ever classified as such,
// it is only selected explicitly on an axis holding values.
const (
	KindUnknown Kind = iota
	KindValue
	KindCategory
	KindTime
	KindLog
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindValue:    "value",
	KindCategory: "category",
	KindTime:     "time",
	KindLog:      "log",
}

// String returns the ECharts token for this kind, e.g. "value".
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", k)
	}

	return kindNames[k]
}

// IsValid reports whether the kind is one of the known axis kinds.
func (k Kind) IsValid() bool {
	return k > KindUnknown && k <= KindLog
}

// IsValueCapable reports whether operations reserved to numeric axes (regression, clustering)
// are legal for this kind.
func (k Kind) IsValueCapable() bool {
	return k == KindValue || k == KindLog
}

// MarshalText renders the kind as its ECharts token.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid axis kind: %d", k)
	}

	return []byte(k.String()), nil
}

// UnmarshalText parses an ECharts axis type token.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// ParseKind parses an axis type token such as "value" or "time" (case insensitive).
func ParseKind(s string) (Kind, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if k == int(KindUnknown) {
			continue
		}

		if name == token {
			return Kind(k), nil
		}
	}

	return KindUnknown, fmt.Errorf("invalid axis kind %q: expected one of value, category, time, log", s)
}
